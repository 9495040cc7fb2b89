package game

import (
	"encoding/json"

	"github.com/Taosit/Lingpal-server/shared/logger"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// NetworkSession abstracts the websocket connection so the pumps can be
// exercised without a real socket.
type NetworkSession interface {
	Close(errCode string)
	Write(data []byte) error
	Read() ([]byte, error)
	Ping() error
}

// ClientEvent is the inbound wire envelope.
type ClientEvent struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// Client is one connected player: a socket, a buffered outbox drained by
// the write pump, and a rate limiter on chat traffic.
type Client struct {
	id       string
	socket   NetworkSession
	outbox   chan []byte
	pingChan chan struct{}
	done     chan struct{}
	limiter  *rate.Limiter
	service  *Service
}

func NewClient(socket NetworkSession, service *Service) *Client {
	return &Client{
		id:       uuid.NewString(),
		socket:   socket,
		outbox:   make(chan []byte, 256),
		pingChan: make(chan struct{}, 1),
		done:     make(chan struct{}),
		limiter:  rate.NewLimiter(1, 5),
		service:  service,
	}
}

func (c *Client) Id() string { return c.id }

// send queues outbound bytes without ever blocking a room operation; a
// client whose outbox is full loses the event.
func (c *Client) send(data []byte) {
	select {
	case c.outbox <- data:
	default:
		logger.Warningf("client %s: outbox full, dropping event", c.id)
	}
}

// ReadPump decodes inbound envelopes and hands them to the service until
// the connection drops, then runs the disconnect handling.
func (c *Client) ReadPump(hub *Hub) {
	defer func() {
		c.service.HandleDisconnect(c.id)
		hub.Unregister(c.id)
		// The outbox stays open so a racing broadcast cannot panic; the
		// write pump is released through done instead.
		close(c.done)
	}()

	for {
		data, err := c.socket.Read()
		if err != nil {
			return
		}
		var event ClientEvent
		if err := json.Unmarshal(data, &event); err != nil {
			logger.Debugf("client %s: dropping malformed frame", c.id)
			continue
		}
		if event.Event == "send-message" && !c.limiter.Allow() {
			logger.Debugf("client %s: rate limited", c.id)
			continue
		}
		c.service.Dispatch(c.id, event.Event, event.Data)
	}
}

// WritePump drains the outbox and the ping channel onto the socket.
func (c *Client) WritePump() {
	defer c.socket.Close("")
	for {
		select {
		case <-c.done:
			return
		case data := <-c.outbox:
			if err := c.socket.Write(data); err != nil {
				return
			}
		case <-c.pingChan:
			if err := c.socket.Ping(); err != nil {
				return
			}
		}
	}
}
