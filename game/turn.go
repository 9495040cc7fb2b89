package game

// TurnResult is the outcome of one describer rotation step.
type TurnResult struct {
	Round          int
	DescriberIndex int
	RoundChanged   bool
}

// GameOver reports whether the rotation crossed into the terminal round.
func (t TurnResult) GameOver() bool {
	return t.Round >= gameOverRound
}

// advanceTurn moves the describer seat to the next occupied index, wrapping
// 3→0 and crossing a round boundary exactly once per wrap. The search is
// bounded: with at least one occupied seat the next describer is found
// within MaxPlayers steps, and an empty game fails fast instead of
// spinning. On a terminal result the round is persisted but the describer
// index is left untouched. Caller holds the game lock.
func (g *Game) advanceTurn() (TurnResult, error) {
	if len(g.players) == 0 {
		return TurnResult{}, ErrNoPlayersRemain
	}

	seat := g.describerIndex
	round := g.round
	for i := 0; i < MaxPlayers; i++ {
		if seat == maxSeatIndex {
			seat = 0
			round++
		} else {
			seat++
		}
		if !g.seatOccupied(seat) {
			continue
		}
		result := TurnResult{
			Round:          round,
			DescriberIndex: seat,
			RoundChanged:   round != g.round,
		}
		g.round = round
		if !result.GameOver() {
			g.describerIndex = seat
		}
		return result, nil
	}
	return TurnResult{}, ErrNoPlayersRemain
}
