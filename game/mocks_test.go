package game

import (
	"context"
	"fmt"
	"sync"

	"github.com/stretchr/testify/mock"
)

// --- WordSupplier ---

type MockWordSupplier struct {
	mock.Mock
}

func (m *MockWordSupplier) ChooseWords(count int, level Difficulty) ([]string, error) {
	args := m.Called(count, level)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// numberedWords builds "word1".."wordN" for supplier expectations.
func numberedWords(n int) []string {
	words := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		words = append(words, fmt.Sprintf("word%d", i))
	}
	return words
}

// --- StatsRecorder ---

type MockStatsRecorder struct {
	mock.Mock
}

func (m *MockStatsRecorder) RecordResult(ctx context.Context, playerId string, won, advanced bool) error {
	args := m.Called(ctx, playerId, won, advanced)
	return args.Error(0)
}

func (m *MockStatsRecorder) RecordAbandon(ctx context.Context, playerId string) error {
	args := m.Called(ctx, playerId)
	return args.Error(0)
}

// --- Broadcaster ---

// fakeBroadcaster records every outbound call so tests can assert on the
// derived broadcasts without spinning up websockets. Safe for use from the
// countdown goroutine.
type emittedEvent struct {
	kind   string // "broadcast", "broadcast-except" or "send-to"
	roomId string
	connId string // the excluded conn, or the unicast target
	event  string
	data   any
}

type fakeBroadcaster struct {
	locker sync.Mutex
	calls  []emittedEvent
}

func (f *fakeBroadcaster) Broadcast(roomId, event string, data any) {
	f.record(emittedEvent{kind: "broadcast", roomId: roomId, event: event, data: data})
}

func (f *fakeBroadcaster) BroadcastExcept(roomId, exceptConnId, event string, data any) {
	f.record(emittedEvent{kind: "broadcast-except", roomId: roomId, connId: exceptConnId, event: event, data: data})
}

func (f *fakeBroadcaster) SendTo(connId, event string, data any) {
	f.record(emittedEvent{kind: "send-to", connId: connId, event: event, data: data})
}

func (f *fakeBroadcaster) JoinRoom(roomId, connId string) {}

func (f *fakeBroadcaster) LeaveRoom(connId string) {}

func (f *fakeBroadcaster) record(e emittedEvent) {
	f.locker.Lock()
	defer f.locker.Unlock()
	f.calls = append(f.calls, e)
}

// ofEvent returns every recorded call carrying the given event name.
func (f *fakeBroadcaster) ofEvent(event string) []emittedEvent {
	f.locker.Lock()
	defer f.locker.Unlock()
	out := []emittedEvent{}
	for _, c := range f.calls {
		if c.event == event {
			out = append(out, c)
		}
	}
	return out
}

// --- fixtures ---

func testPlayer(id string, order int) *Player {
	return &Player{
		Id:       id,
		Username: id,
		Order:    order,
		ConnId:   "conn-" + id,
	}
}

// testGame builds a running game with one player per given seat index.
// Player ids follow the seats: seat 2 is held by "p2" on "conn-p2".
func testGame(seats ...int) *Game {
	players := make(map[string]*Player, len(seats))
	for _, seat := range seats {
		p := testPlayer(fmt.Sprintf("p%d", seat), seat)
		players[p.Id] = p
	}
	return &Game{
		id:       "room-1",
		settings: Settings{Mode: ModeStandard, Level: DifficultyEasy, Describer: DescriberText},
		players:  players,
	}
}

// testService wires a service around a fake broadcaster and registers the
// game in its store, with every player's connection resolvable.
func testService(g *Game) (*Service, *fakeBroadcaster) {
	hub := &fakeBroadcaster{}
	s := NewService(hub, &MockWordSupplier{}, nil)
	if g != nil {
		s.store.addGame(g)
		for _, p := range g.players {
			s.store.setConnRoom(p.ConnId, g.id)
		}
	}
	return s, hub
}
