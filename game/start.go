package game

// WordSupplier provides candidate secret words for a game. Implementations
// must return at least count distinct words.
type WordSupplier interface {
	ChooseWords(count int, level Difficulty) ([]string, error)
}

// roundsPerPlayer keeps the total number of turns comparable across party
// sizes: small parties describe three words each, larger ones two.
func roundsPerPlayer(playerCount int) int {
	if playerCount > 2 {
		return 2
	}
	return 3
}

// startGame promotes a lobby into a game: every player gets their own
// contiguous chunk of secret words (in join order) and a zeroed score. The
// word list carries one trailing empty sentinel that is never assigned, so
// the last slice can never run past the end. Caller holds the lobby lock.
func startGame(l *Lobby, supplier WordSupplier) (*Game, error) {
	perPlayer := roundsPerPlayer(len(l.players))
	words, err := supplier.ChooseWords(len(l.players)*perPlayer, l.settings.Level)
	if err != nil {
		return nil, err
	}
	words = append(words, "")

	for i, p := range orderedPlayers(l.players) {
		p.Score = 0
		p.Words = words[i*perPlayer : i*perPlayer+perPlayer]
	}

	l.promoted = true
	return &Game{
		id:       l.id,
		settings: l.settings,
		players:  l.players,
		round:    0,
	}, nil
}
