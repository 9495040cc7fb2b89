package game

import (
	"net/http"
	"slices"
	"time"

	"github.com/Taosit/Lingpal-server/shared/logger"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type websocketConnection struct {
	socket *websocket.Conn
}

func (wc *websocketConnection) Write(data []byte) error {
	return wc.socket.WriteMessage(websocket.TextMessage, data)
}

func (wc *websocketConnection) Ping() error {
	return wc.socket.WriteMessage(websocket.PingMessage, nil)
}

func (wc *websocketConnection) Read() ([]byte, error) {
	_, p, err := wc.socket.ReadMessage()
	return p, err
}

func (wc *websocketConnection) Close(errCode string) {
	wc.socket.SetWriteDeadline(time.Now().Add(time.Second * 20))
	wc.socket.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, errCode))
	wc.socket.Close()
}

func newWebsocketConnection(conn *websocket.Conn) *websocketConnection {
	conn.SetPongHandler(func(appData string) error {
		conn.SetReadDeadline(time.Now().Add(time.Minute))
		return nil
	})
	return &websocketConnection{conn}
}

type GameHandler struct {
	service        *Service
	hub            *Hub
	allowedOrigins []string
}

func NewGameHandler(service *Service, hub *Hub, allowedOrigins []string) *GameHandler {
	return &GameHandler{service: service, hub: hub, allowedOrigins: allowedOrigins}
}

// ConnectHandler upgrades the request and starts the client pumps. All
// game traffic flows over this one socket.
func (h *GameHandler) ConnectHandler(ctx *gin.Context) {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			return slices.Contains(h.allowedOrigins, r.Header.Get("Origin"))
		},
	}
	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		logger.Warningf("websocket upgrade failed: %v", err)
		return
	}

	client := NewClient(newWebsocketConnection(conn), h.service)
	h.hub.Register(client)
	logger.Infof("client %s connected from %s", client.Id(), ctx.ClientIP())

	go client.WritePump()
	go client.ReadPump(h.hub)
}

func RegisterRoutes(engine *gin.Engine, handler *GameHandler) {
	engine.GET("/ws", handler.ConnectHandler)
}
