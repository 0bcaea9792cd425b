package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	ws "github.com/thereayou/roomhub/internal/websocket"
)

// WebSocketHandler upgrades HTTP requests to the persistent event channel.
type WebSocketHandler struct {
	hub          *ws.Hub
	eventHandler *EventHandler
	upgrader     websocket.Upgrader
}

func NewWebSocketHandler(hub *ws.Hub, eventHandler *EventHandler) *WebSocketHandler {
	return &WebSocketHandler{
		hub:          hub,
		eventHandler: eventHandler,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				// Clients are served from other origins
				return true
			},
		},
	}
}

// HandleWebSocket upgrades the connection and starts its pumps.
func (h *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	client := ws.NewClient(h.hub, conn)
	h.hub.Register(client)

	go client.WritePump()
	go client.ReadPump(h.eventHandler)
}
