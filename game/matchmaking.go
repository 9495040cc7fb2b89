package game

import "github.com/google/uuid"

func newLobby(settings Settings) *Lobby {
	return &Lobby{
		id:       uuid.NewString(),
		settings: settings,
		players:  make(map[string]*Player),
	}
}

// addPlayer admits a player into the lobby, seating them at the next free
// index. Caller holds the lobby lock.
func (l *Lobby) addPlayer(p *Player) error {
	if len(l.players) >= MaxPlayers {
		return ErrRoomFull
	}
	p.Order = len(l.players)
	p.IsReady = false
	l.players[p.Id] = p
	return nil
}

// readyToStart reports whether the lobby should be promoted: either the
// four seats are filled, or everyone present (at least two players, a
// party of one cannot play) has readied up.
func (l *Lobby) readyToStart() bool {
	if len(l.players) == MaxPlayers {
		return true
	}
	if len(l.players) < 2 {
		return false
	}
	for _, p := range l.players {
		if !p.IsReady {
			return false
		}
	}
	return true
}

// removePlayer drops a player and renumbers the seats behind them so the
// lobby keeps contiguous orders 0..N-1. Caller holds the lobby lock.
func (l *Lobby) removePlayer(playerId string) {
	departing, ok := l.players[playerId]
	if !ok {
		return
	}
	delete(l.players, playerId)
	for _, p := range l.players {
		if p.Order > departing.Order {
			p.Order--
		}
	}
}
