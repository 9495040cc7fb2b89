package game

import (
	"fmt"

	"github.com/Taosit/Lingpal-server/shared/logger"
)

// HandleDisconnect removes a departing connection's player from whichever
// room holds them and re-derives the session state. Called by the client
// pump when the connection drops, before the connection is released.
func (s *Service) HandleDisconnect(connId string) {
	defer s.hub.LeaveRoom(connId)

	roomId, ok := s.store.connRoom(connId)
	if !ok {
		return
	}
	s.store.dropConn(connId)

	room, ok := s.store.findRoom(roomId)
	if !ok {
		return
	}
	switch room.Kind {
	case KindLobby:
		s.handleLobbyDeparture(room.Lobby, connId)
	case KindGame:
		s.handleGameDeparture(room.Game, connId)
	}
}

// handleLobbyDeparture drops the player and closes the seat gap so the
// lobby keeps contiguous orders. An emptied lobby frees its waitroom slot.
func (s *Service) handleLobbyDeparture(l *Lobby, connId string) {
	l.locker.Lock()
	defer l.locker.Unlock()

	p, ok := l.playerByConn(connId)
	if !ok {
		return
	}
	l.removePlayer(p.Id)
	logger.Infof("room %s: %s left the waitroom", l.id, p.Username)

	if len(l.players) == 0 {
		s.store.clearLobby(l)
		return
	}
	s.hub.BroadcastExcept(l.id, connId, "update-players", l.players)
}

// handleGameDeparture removes the player without renumbering seats (the
// turn engine skips the gap), then decides whether the session can go on.
func (s *Service) handleGameDeparture(g *Game, connId string) {
	g.locker.Lock()
	defer g.locker.Unlock()

	leaver, ok := g.playerByConn(connId)
	if !ok {
		return
	}
	delete(g.players, leaver.Id)

	if g.finished {
		// Results-screen departure: the game already ended, so nothing
		// counts against the leaver and nobody is told. The room dies with
		// its last player.
		if len(g.players) == 0 {
			s.store.removeGame(g)
		}
		return
	}
	s.recordAbandon(leaver.Id)
	logger.Infof("room %s: %s left the game, %d remaining", g.id, leaver.Username, len(g.players))

	switch {
	case len(g.players) == 0:
		s.store.removeGame(g)

	case len(g.players) == 1:
		// One player cannot keep playing; end the game over the survivor.
		s.hub.BroadcastExcept(g.id, connId, "receive-message",
			createBotMessage(fmt.Sprintf("Player %s left the game. The game is over", leaver.Username)))
		players := calculateGameStats(g.players)
		s.hub.Broadcast(g.id, "game-over", players)
		s.recordResults(g)
		s.store.removeGame(g)

	default:
		s.hub.BroadcastExcept(g.id, connId, "receive-message",
			createBotMessage(fmt.Sprintf("Player %s left the game", leaver.Username)))
		if leaver.Order == g.describerIndex {
			s.skipDepartedDescriber(g, leaver, connId)
		} else {
			s.hub.BroadcastExcept(g.id, connId, "player-left", playerLeftPayload{
				DisconnectingPlayer: leaver,
				RemainingPlayers:    g.players,
			})
		}
	}
}

// skipDepartedDescriber hands the turn to the next present seat when the
// active describer walks out mid-turn. Caller holds the game lock.
func (s *Service) skipDepartedDescriber(g *Game, leaver *Player, connId string) {
	result, err := g.advanceTurn()
	if err != nil {
		logger.Criticalf("room %s: cannot skip departed describer: %v", g.id, err)
		return
	}
	if result.GameOver() {
		s.finishGame(g)
		return
	}

	nextDesc, nextRound := result.DescriberIndex, result.Round
	s.hub.BroadcastExcept(g.id, connId, "player-left", playerLeftPayload{
		DisconnectingPlayer: leaver,
		NextDesc:            &nextDesc,
		NextRound:           &nextRound,
		RemainingPlayers:    g.players,
	})

	describer, ok := g.describer()
	if !ok {
		logger.Criticalf("room %s: no player on describer seat %d after skip", g.id, g.describerIndex)
		return
	}
	s.announceDescriber(g, describer)
}
