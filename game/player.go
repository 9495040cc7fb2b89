package game

// Player is one participant for the lifetime of a waitroom and the game it
// turns into. Lifetime stats (Total, Win, Advanced) come from the client at
// join time and are persisted by the stats collaborator, not mutated here,
// with one exception: calculateGameStats overwrites Win with the 0/1 win
// flag of the finished game, which is what the client expects on game-over.
type Player struct {
	Id       string `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
	Total    int    `json:"total"`
	Win      int    `json:"win"`
	Advanced int    `json:"advanced"`

	IsReady bool     `json:"isReady"`
	Order   int      `json:"order"`
	Score   int      `json:"score"`
	Words   []string `json:"words"`
	Notes   []string `json:"notes"`
	Rank    int      `json:"rank,omitempty"`

	// ConnId routes unicast messages and identifies the player on
	// disconnect. It stays in the payload because voice peers dial each
	// other by connection id.
	ConnId string `json:"socketId"`
}
