package game

import (
	"encoding/json"
	"sync"

	"github.com/Taosit/Lingpal-server/shared/logger"
)

// ServerEvent is the outbound wire envelope.
type ServerEvent struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// Hub is the connection registry. It knows every live client and which
// room each one has joined, and fans marshalled events out over the
// clients' send channels. It implements Broadcaster.
type Hub struct {
	locker  sync.RWMutex
	clients map[string]*Client
	rooms   map[string]map[string]*Client
	byConn  map[string]string
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*Client),
		rooms:   make(map[string]map[string]*Client),
		byConn:  make(map[string]string),
	}
}

func (h *Hub) Register(c *Client) {
	h.locker.Lock()
	defer h.locker.Unlock()
	h.clients[c.id] = c
}

func (h *Hub) Unregister(connId string) {
	h.locker.Lock()
	defer h.locker.Unlock()
	h.removeFromRoom(connId)
	delete(h.clients, connId)
}

func (h *Hub) JoinRoom(roomId, connId string) {
	h.locker.Lock()
	defer h.locker.Unlock()
	c, ok := h.clients[connId]
	if !ok {
		return
	}
	h.removeFromRoom(connId)
	if h.rooms[roomId] == nil {
		h.rooms[roomId] = make(map[string]*Client)
	}
	h.rooms[roomId][connId] = c
	h.byConn[connId] = roomId
}

func (h *Hub) LeaveRoom(connId string) {
	h.locker.Lock()
	defer h.locker.Unlock()
	h.removeFromRoom(connId)
}

// removeFromRoom detaches a connection from its room, dropping the room
// entry once empty. Caller holds the hub lock.
func (h *Hub) removeFromRoom(connId string) {
	roomId, ok := h.byConn[connId]
	if !ok {
		return
	}
	delete(h.byConn, connId)
	if members := h.rooms[roomId]; members != nil {
		delete(members, connId)
		if len(members) == 0 {
			delete(h.rooms, roomId)
		}
	}
}

func (h *Hub) Broadcast(roomId, event string, data any) {
	h.fanOut(roomId, "", event, data)
}

func (h *Hub) BroadcastExcept(roomId, exceptConnId, event string, data any) {
	h.fanOut(roomId, exceptConnId, event, data)
}

func (h *Hub) SendTo(connId, event string, data any) {
	bytes, err := marshalEvent(event, data)
	if err != nil {
		return
	}
	h.locker.RLock()
	c, ok := h.clients[connId]
	h.locker.RUnlock()
	if ok {
		c.send(bytes)
	}
}

func (h *Hub) fanOut(roomId, exceptConnId, event string, data any) {
	bytes, err := marshalEvent(event, data)
	if err != nil {
		return
	}
	h.locker.RLock()
	members := make([]*Client, 0, len(h.rooms[roomId]))
	for connId, c := range h.rooms[roomId] {
		if connId == exceptConnId {
			continue
		}
		members = append(members, c)
	}
	h.locker.RUnlock()
	for _, c := range members {
		c.send(bytes)
	}
}

// PingAll nudges every client's write pump to emit a websocket ping.
// Driven by a ticker in main.
func (h *Hub) PingAll() {
	h.locker.RLock()
	defer h.locker.RUnlock()
	for _, c := range h.clients {
		select {
		case c.pingChan <- struct{}{}:
		default:
		}
	}
}

func marshalEvent(event string, data any) ([]byte, error) {
	bytes, err := json.Marshal(ServerEvent{Event: event, Data: data})
	if err != nil {
		logger.Criticalf("failed to marshal %q event: %v", event, err)
		return nil, err
	}
	return bytes, nil
}
