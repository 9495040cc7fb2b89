package game

import "sync"

// SessionStore is the process-wide session state: the fixed waitroom grid
// keyed by settings, the active games by room id, and the connection→room
// index used to resolve inbound events. The store mutex guards only the
// maps; each lobby and game carries its own mutex so rooms never contend
// with each other.
type SessionStore struct {
	locker  sync.RWMutex
	lobbies map[Settings]*Lobby
	games   map[string]*Game
	conns   map[string]string
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		lobbies: make(map[Settings]*Lobby),
		games:   make(map[string]*Game),
		conns:   make(map[string]string),
	}
}

func (s *SessionStore) lobbyForSettings(settings Settings) (*Lobby, bool) {
	s.locker.RLock()
	defer s.locker.RUnlock()
	l, ok := s.lobbies[settings]
	return l, ok
}

// getOrCreateLobby returns the lobby occupying the slot for the given
// settings, creating one if the slot is empty. Callers must still recheck
// the promoted flag under the lobby lock, since a promotion may have raced
// the lookup.
func (s *SessionStore) getOrCreateLobby(settings Settings) *Lobby {
	s.locker.Lock()
	defer s.locker.Unlock()
	if l, ok := s.lobbies[settings]; ok {
		return l
	}
	l := newLobby(settings)
	s.lobbies[settings] = l
	return l
}

// clearLobby empties the slot, but only if it still holds the given lobby.
// A stale clear must not wipe a fresh lobby that reused the slot.
func (s *SessionStore) clearLobby(l *Lobby) {
	s.locker.Lock()
	defer s.locker.Unlock()
	if s.lobbies[l.settings] == l {
		delete(s.lobbies, l.settings)
	}
}

func (s *SessionStore) lobbyById(id string) (*Lobby, bool) {
	s.locker.RLock()
	defer s.locker.RUnlock()
	for _, l := range s.lobbies {
		if l.id == id {
			return l, true
		}
	}
	return nil, false
}

func (s *SessionStore) game(id string) (*Game, bool) {
	s.locker.RLock()
	defer s.locker.RUnlock()
	g, ok := s.games[id]
	return g, ok
}

func (s *SessionStore) addGame(g *Game) {
	s.locker.Lock()
	defer s.locker.Unlock()
	s.games[g.id] = g
}

// removeGame deletes the game and cancels its countdown so no orphaned
// timer keeps ticking for a dead room.
func (s *SessionStore) removeGame(g *Game) {
	s.locker.Lock()
	delete(s.games, g.id)
	s.locker.Unlock()
	if g.timer != nil {
		g.timer.Cancel()
		g.timer = nil
	}
}

// findRoom resolves a room id to the lobby or game holding it.
func (s *SessionStore) findRoom(id string) (Room, bool) {
	if g, ok := s.game(id); ok {
		return Room{Kind: KindGame, Game: g}, true
	}
	if l, ok := s.lobbyById(id); ok {
		return Room{Kind: KindLobby, Lobby: l}, true
	}
	return Room{}, false
}

func (s *SessionStore) setConnRoom(connId, roomId string) {
	s.locker.Lock()
	defer s.locker.Unlock()
	s.conns[connId] = roomId
}

func (s *SessionStore) connRoom(connId string) (string, bool) {
	s.locker.RLock()
	defer s.locker.RUnlock()
	roomId, ok := s.conns[connId]
	return roomId, ok
}

func (s *SessionStore) dropConn(connId string) {
	s.locker.Lock()
	defer s.locker.Unlock()
	delete(s.conns, connId)
}
