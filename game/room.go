package game

import (
	"sort"
	"sync"
)

const (
	// MaxPlayers is the waitroom capacity; seat indices run 0..3.
	MaxPlayers   = 4
	maxSeatIndex = MaxPlayers - 1

	// gameOverRound is the first non-playable round value. Rounds 0 and 1
	// are played; reaching 2 ends the game.
	gameOverRound = 2
)

// Lobby is the pre-game entity: up to four players waiting in one of the
// eight matchmaking slots. All fields are guarded by locker.
type Lobby struct {
	locker   sync.Mutex
	id       string
	settings Settings
	players  map[string]*Player

	// promoted flips when the lobby becomes a game. A promoted lobby must
	// never admit players again, even if a join raced the promotion.
	promoted bool
}

// Game is the active session. All fields are guarded by locker, including
// the timer handle.
type Game struct {
	locker         sync.Mutex
	id             string
	settings       Settings
	players        map[string]*Player
	round          int
	describerIndex int
	ratings        []float64
	timer          *Countdown

	// finished flips at game over. A finished game stays in the store for
	// the results screen; only departures may still mutate it.
	finished bool
}

func (l *Lobby) playerByConn(connId string) (*Player, bool) {
	for _, p := range l.players {
		if p.ConnId == connId {
			return p, true
		}
	}
	return nil, false
}

func (g *Game) playerByConn(connId string) (*Player, bool) {
	for _, p := range g.players {
		if p.ConnId == connId {
			return p, true
		}
	}
	return nil, false
}

// describer returns the player occupying the current describer seat.
func (g *Game) describer() (*Player, bool) {
	for _, p := range g.players {
		if p.Order == g.describerIndex {
			return p, true
		}
	}
	return nil, false
}

func (g *Game) seatOccupied(seat int) bool {
	for _, p := range g.players {
		if p.Order == seat {
			return true
		}
	}
	return false
}

// orderedPlayers returns the players sorted by seat index, i.e. join order.
func orderedPlayers(players map[string]*Player) []*Player {
	out := make([]*Player, 0, len(players))
	for _, p := range players {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

// Room is the tagged lobby-or-game variant the disconnect handler branches
// on. Exactly one of Lobby and Game is set, matching Kind.
type RoomKind int

const (
	KindLobby RoomKind = iota
	KindGame
)

type Room struct {
	Kind  RoomKind
	Lobby *Lobby
	Game  *Game
}
