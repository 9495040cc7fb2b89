package game

const (
	guesserPoints   = 2
	describerPoints = 1
)

// awardCorrectGuess gives the guesser two points and the current describer
// one. An empty describer seat means the turn engine and the player records
// disagree, which callers must treat as fatal to the operation. Caller
// holds the game lock.
func (g *Game) awardCorrectGuess(guesserId string) error {
	describer, ok := g.describer()
	if !ok {
		return ErrDescriberNotFound
	}
	guesser, ok := g.players[guesserId]
	if !ok {
		return ErrPlayerNotFound
	}
	guesser.Score += guesserPoints
	describer.Score += describerPoints
	return nil
}

// calculateGameStats assigns each player a competition rank (ties share a
// rank) and a win flag: a player wins when their rank is at or below the
// mean rank of the room, so more than one player can win. The win flag
// overwrites the lifetime wins field the client sent at join time; the
// client reads it as a 0/1 flag on the results screen.
func calculateGameStats(players map[string]*Player) map[string]*Player {
	rankSum := 0
	for _, p := range players {
		rank := 1
		for _, other := range players {
			if other.Score > p.Score {
				rank++
			}
		}
		p.Rank = rank
		rankSum += rank
	}

	threshold := float64(rankSum) / float64(len(players))
	for _, p := range players {
		if float64(p.Rank) <= threshold {
			p.Win = 1
		} else {
			p.Win = 0
		}
	}
	return players
}
