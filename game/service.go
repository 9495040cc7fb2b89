package game

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Taosit/Lingpal-server/shared/logger"
)

// Broadcaster is the transport-side collaborator: it fans events out to
// every connection in a room, to everyone but one connection, or to one
// connection, and tracks which connections belong to which room.
type Broadcaster interface {
	Broadcast(roomId, event string, data any)
	BroadcastExcept(roomId, exceptConnId, event string, data any)
	SendTo(connId, event string, data any)
	JoinRoom(roomId, connId string)
	LeaveRoom(connId string)
}

// StatsRecorder persists lifetime player statistics. Implementations must
// tolerate being called concurrently; a nil recorder disables recording.
type StatsRecorder interface {
	RecordResult(ctx context.Context, playerId string, won, advanced bool) error
	RecordAbandon(ctx context.Context, playerId string) error
}

// Service owns the session store and implements one method per inbound
// event. Every method resolves the caller's room, takes that room's lock,
// mutates state, and derives the outbound broadcasts from the new state.
type Service struct {
	store *SessionStore
	hub   Broadcaster
	words WordSupplier
	stats StatsRecorder
}

func NewService(hub Broadcaster, words WordSupplier, stats StatsRecorder) *Service {
	return &Service{
		store: NewSessionStore(),
		hub:   hub,
		words: words,
		stats: stats,
	}
}

// Dispatch routes one decoded client event to its handler. Failures abort
// only this event: the error goes back to the triggering connection and
// nothing else is touched.
func (s *Service) Dispatch(connId, event string, data json.RawMessage) {
	var err error
	switch event {
	case "join-room":
		var payload joinRoomPayload
		if err = json.Unmarshal(data, &payload); err == nil {
			err = s.JoinRoom(connId, payload)
		}
	case "player-ready":
		err = s.PlayerReady(connId)
	case "start-round":
		err = s.StartRound(connId)
	case "set-timer":
		var seconds int
		if err = json.Unmarshal(data, &seconds); err == nil {
			err = s.SetTimer(connId, seconds)
		}
	case "save-notes":
		var notes []string
		if err = json.Unmarshal(data, &notes); err == nil {
			err = s.SaveNotes(connId, notes)
		}
	case "update-turn":
		err = s.UpdateTurn(connId)
	case "send-message":
		var payload sendMessagePayload
		if err = json.Unmarshal(data, &payload); err == nil {
			err = s.SendMessage(connId, payload)
		}
	case "voice-stream":
		var payload voiceStreamPayload
		if err = json.Unmarshal(data, &payload); err == nil {
			err = s.VoiceStream(connId, payload)
		}
	case "return-signal":
		var payload returnSignalPayload
		if err = json.Unmarshal(data, &payload); err == nil {
			err = s.ReturnSignal(connId, payload)
		}
	case "time-out":
		var word string
		if err = json.Unmarshal(data, &word); err == nil {
			err = s.TimeOut(connId, word)
		}
	case "send-rating":
		var rating float64
		if err = json.Unmarshal(data, &rating); err == nil {
			err = s.SendRating(connId, rating)
		}
	case "clear-ratings":
		err = s.ClearRatings(connId)
	default:
		logger.Warningf("unknown event %q from %s", event, connId)
		return
	}
	if err != nil {
		logger.Warningf("event %q from %s failed: %v", event, connId, err)
		s.hub.SendTo(connId, "error", errorPayload{Message: err.Error()})
	}
}

// JoinRoom admits the player into the waitroom slot matching their
// settings, creating the lobby on first join and promoting it into a game
// the moment the fourth seat fills.
func (s *Service) JoinRoom(connId string, payload joinRoomPayload) error {
	if !payload.Settings.Valid() {
		return ErrInvalidSettings
	}

	player := payload.Player
	player.ConnId = connId
	player.Words = nil

	for {
		l := s.store.getOrCreateLobby(payload.Settings)
		l.locker.Lock()
		if l.promoted {
			// Lost a race against a promotion; the slot has been cleared,
			// so the next lookup creates a fresh lobby.
			l.locker.Unlock()
			continue
		}
		if err := l.addPlayer(&player); err != nil {
			l.locker.Unlock()
			return err
		}
		s.hub.JoinRoom(l.id, connId)
		s.store.setConnRoom(connId, l.id)
		s.hub.Broadcast(l.id, "update-players", l.players)

		if len(l.players) == MaxPlayers {
			if err := s.promote(l); err != nil {
				l.locker.Unlock()
				return err
			}
		}
		// The join ack comes last: a client keying its state on it has
		// already seen the update-players (and start-game) broadcasts.
		s.hub.SendTo(connId, "room-joined", roomJoinedPayload{RoomId: l.id})
		l.locker.Unlock()
		return nil
	}
}

// PlayerReady toggles the caller's ready flag and promotes the lobby once
// everyone present is ready.
func (s *Service) PlayerReady(connId string) error {
	l, err := s.lobbyByConn(connId)
	if err != nil {
		return err
	}
	l.locker.Lock()
	defer l.locker.Unlock()
	p, ok := l.playerByConn(connId)
	if !ok {
		return ErrPlayerNotFound
	}
	p.IsReady = !p.IsReady
	s.hub.Broadcast(l.id, "update-players", l.players)
	if l.readyToStart() {
		return s.promote(l)
	}
	return nil
}

// promote turns the lobby into a running game and retires the waitroom
// slot. A failed word lookup leaves the lobby as it was. Caller holds the
// lobby lock.
func (s *Service) promote(l *Lobby) error {
	g, err := startGame(l, s.words)
	if err != nil {
		logger.Criticalf("room %s: could not start game: %v", l.id, err)
		return err
	}
	s.store.addGame(g)
	s.store.clearLobby(l)
	s.hub.Broadcast(g.id, "start-game", g.players)
	logger.Infof("room %s: game started with %d players", g.id, len(g.players))
	return nil
}

// StartRound tells the caller whether it is their turn to describe.
func (s *Service) StartRound(connId string) error {
	g, err := s.gameByConn(connId)
	if err != nil {
		return err
	}
	g.locker.Lock()
	defer g.locker.Unlock()
	describer, ok := g.describer()
	if !ok {
		return ErrDescriberNotFound
	}
	p, ok := g.playerByConn(connId)
	if !ok {
		return ErrPlayerNotFound
	}
	if p.Id == describer.Id {
		s.hub.SendTo(connId, "receive-message", createBotMessage("You are describing"))
	} else {
		s.hub.SendTo(connId, "receive-message",
			createBotMessage(fmt.Sprintf("%s is describing. Please wait", describer.Username)))
	}
	return nil
}

// SetTimer starts (or restarts) the room countdown.
func (s *Service) SetTimer(connId string, seconds int) error {
	g, err := s.gameByConn(connId)
	if err != nil {
		return err
	}
	g.locker.Lock()
	defer g.locker.Unlock()
	s.startCountdown(g, seconds)
	return nil
}

// SaveNotes stores the caller's scratchpad and shares the updated player
// mapping with the room.
func (s *Service) SaveNotes(connId string, notes []string) error {
	g, err := s.gameByConn(connId)
	if err != nil {
		return err
	}
	g.locker.Lock()
	defer g.locker.Unlock()
	p, ok := g.playerByConn(connId)
	if !ok {
		return ErrPlayerNotFound
	}
	p.Notes = notes
	s.hub.Broadcast(g.id, "update-players", g.players)
	return nil
}

// UpdateTurn rotates the describer seat after a turn ends. A rotation past
// the last round finishes the game instead.
func (s *Service) UpdateTurn(connId string) error {
	g, err := s.gameByConn(connId)
	if err != nil {
		return err
	}
	g.locker.Lock()
	defer g.locker.Unlock()

	result, err := g.advanceTurn()
	if err != nil {
		return err
	}
	if result.GameOver() {
		s.finishGame(g)
		return nil
	}

	s.hub.Broadcast(g.id, "turn-updated", turnUpdatedPayload{
		NextRound: result.Round,
		NextDesc:  result.DescriberIndex,
		Players:   g.players,
	})
	if result.RoundChanged {
		return nil
	}
	describer, ok := g.describer()
	if !ok {
		return ErrDescriberNotFound
	}
	s.announceDescriber(g, describer)
	return nil
}

// SendMessage filters and relays one chat message. A guesser naming the
// secret word scores; a describer trying to smuggle it through gets a
// private warning instead of a broadcast.
func (s *Service) SendMessage(connId string, payload sendMessagePayload) error {
	g, err := s.gameByConn(connId)
	if err != nil {
		return err
	}
	g.locker.Lock()
	defer g.locker.Unlock()

	sender, ok := g.playerByConn(connId)
	if !ok {
		return ErrPlayerNotFound
	}

	message := payload.Message
	isDescriber := message.IsDescriber != nil && *message.IsDescriber
	if isDescriber && isCheatAttempt(message.Text, payload.TargetWord) {
		s.hub.SendTo(connId, "receive-message",
			createBotMessage("This message cannot be sent. You cannot include the word in your message"))
		return nil
	}

	s.hub.Broadcast(g.id, "receive-message", message)

	if isDescriber || !ContainsTargetWord(message.Text, payload.TargetWord) {
		return nil
	}

	s.hub.SendTo(connId, "receive-message",
		createBotMessage(fmt.Sprintf("The correct word is %s. Well done!", payload.TargetWord)))
	s.hub.BroadcastExcept(g.id, connId, "receive-message",
		createBotMessage(fmt.Sprintf("The correct word is %s. %s got %d points", payload.TargetWord, sender.Username, guesserPoints)))

	g.cancelCountdown()
	if err := g.awardCorrectGuess(sender.Id); err != nil {
		logger.Criticalf("room %s: scoring failed: %v", g.id, err)
		return err
	}
	s.hub.Broadcast(g.id, "correct-answer", g.players)
	return nil
}

// VoiceStream forwards a voice signalling blob to its addressee. Pure
// pass-through, no state.
func (s *Service) VoiceStream(connId string, payload voiceStreamPayload) error {
	g, err := s.gameByConn(connId)
	if err != nil {
		return err
	}
	g.locker.Lock()
	receiver, ok := g.players[payload.ReceiverId]
	g.locker.Unlock()
	if !ok {
		return ErrReceiverNotFound
	}
	s.hub.SendTo(receiver.ConnId, "receive-voice-stream", map[string]any{
		"senderSocketId": connId,
		"signal":         payload.Signal,
	})
	return nil
}

// ReturnSignal completes the voice handshake in the other direction.
func (s *Service) ReturnSignal(connId string, payload returnSignalPayload) error {
	g, err := s.gameByConn(connId)
	if err != nil {
		return err
	}
	g.locker.Lock()
	receiver, ok := g.playerByConn(connId)
	g.locker.Unlock()
	if !ok {
		return ErrReceiverNotFound
	}
	s.hub.SendTo(payload.SenderConnId, "receive-return-signal", map[string]any{
		"receiverId": receiver.Id,
		"signal":     payload.Signal,
	})
	return nil
}

// TimeOut relays the end-of-turn messages after the countdown ran out. The
// caller is the describer, so the secret word goes to everyone else.
func (s *Service) TimeOut(connId string, word string) error {
	roomId, ok := s.store.connRoom(connId)
	if !ok {
		return ErrRoomNotFound
	}
	s.hub.SendTo(connId, "receive-message",
		createBotMessage("Time is up. No one got the correct word"))
	s.hub.BroadcastExcept(roomId, connId, "receive-message",
		createBotMessage(fmt.Sprintf("Time is up. The correct word is %s", word)))
	return nil
}

// SendRating appends an end-of-game satisfaction score and shares the
// running average.
func (s *Service) SendRating(connId string, rating float64) error {
	g, err := s.gameByConn(connId)
	if err != nil {
		return err
	}
	g.locker.Lock()
	defer g.locker.Unlock()
	g.ratings = append(g.ratings, rating)
	var total float64
	for _, r := range g.ratings {
		total += r
	}
	s.hub.Broadcast(g.id, "rating-update", total/float64(len(g.ratings)))
	return nil
}

func (s *Service) ClearRatings(connId string) error {
	g, err := s.gameByConn(connId)
	if err != nil {
		return err
	}
	g.locker.Lock()
	defer g.locker.Unlock()
	g.ratings = nil
	return nil
}

// finishGame computes the final standings, tells everyone where they
// landed and records lifetime stats. The game stays in the store so the
// results screen can still exchange ratings; the disconnect handler deletes
// it as the players leave. Caller holds the game lock.
func (s *Service) finishGame(g *Game) {
	g.cancelCountdown()
	g.finished = true
	players := calculateGameStats(g.players)
	for _, p := range players {
		s.hub.SendTo(p.ConnId, "receive-message",
			createBotMessage(fmt.Sprintf("Game is over, your rank is %d", p.Rank)))
	}
	s.hub.Broadcast(g.id, "game-over", players)
	s.recordResults(g)
	logger.Infof("room %s: game over", g.id)
}

// announceDescriber tells each player whether the next turn is theirs.
// Caller holds the game lock.
func (s *Service) announceDescriber(g *Game, describer *Player) {
	describerName := capitalize(describer.Username)
	for _, p := range g.players {
		label := describerName + " is"
		if p.Id == describer.Id {
			label = "You are"
		}
		s.hub.SendTo(p.ConnId, "receive-message", createBotMessage(label+" describing"))
	}
}

const statsTimeout = 5 * time.Second

// recordResults persists each player's finished game off the event path;
// a slow or failing stats store must never stall a room.
func (s *Service) recordResults(g *Game) {
	if s.stats == nil {
		return
	}
	advanced := g.settings.Level == DifficultyHard
	for _, p := range g.players {
		playerId, won := p.Id, p.Win == 1
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), statsTimeout)
			defer cancel()
			if err := s.stats.RecordResult(ctx, playerId, won, advanced); err != nil {
				logger.Warningf("recording result for %s failed: %v", playerId, err)
			}
		}()
	}
}

// recordAbandon counts a game against a player who left it running.
func (s *Service) recordAbandon(playerId string) {
	if s.stats == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), statsTimeout)
		defer cancel()
		if err := s.stats.RecordAbandon(ctx, playerId); err != nil {
			logger.Warningf("recording abandon for %s failed: %v", playerId, err)
		}
	}()
}

func (s *Service) gameByConn(connId string) (*Game, error) {
	roomId, ok := s.store.connRoom(connId)
	if !ok {
		return nil, ErrRoomNotFound
	}
	g, ok := s.store.game(roomId)
	if !ok {
		return nil, ErrRoomNotFound
	}
	return g, nil
}

func (s *Service) lobbyByConn(connId string) (*Lobby, error) {
	roomId, ok := s.store.connRoom(connId)
	if !ok {
		return nil, ErrRoomNotFound
	}
	l, ok := s.store.lobbyById(roomId)
	if !ok {
		return nil, ErrRoomNotFound
	}
	return l, nil
}
