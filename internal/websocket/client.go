package websocket

import (
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/thereayou/roomhub/internal/presence"
)

const (
	writeWait = 10 * time.Second

	pongWait = 60 * time.Second

	pingPeriod = (pongWait * 9) / 10

	// Chat text is capped well below this at the sanitization boundary.
	maxMessageSize = 8 * 1024
)

// EventDispatcher handles decoded client events and connection teardown.
type EventDispatcher interface {
	HandleEvent(client *Client, ev *Event) error
	HandleDisconnect(client *Client)
}

// Client is one websocket connection together with its presence session.
type Client struct {
	ID      uuid.UUID
	Conn    *websocket.Conn
	Send    chan []byte
	Session *presence.Session
	Hub     *Hub
}

func NewClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		ID:      uuid.New(),
		Conn:    conn,
		Send:    make(chan []byte, 256),
		Session: presence.NewSession(),
		Hub:     hub,
	}
}

// ReadPump reads events from the client and feeds them to the dispatcher.
// On any read failure the connection is treated as a disconnect.
func (c *Client) ReadPump(dispatcher EventDispatcher) {
	defer func() {
		if dispatcher != nil {
			dispatcher.HandleDisconnect(c)
		}
		c.Hub.Unregister(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var ev Event
		err := c.Conn.ReadJSON(&ev)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}

		if dispatcher != nil {
			if err := dispatcher.HandleEvent(c, &ev); err != nil {
				log.Printf("Error handling %s event: %v", ev.Type, err)
				c.SendError(err.Error())
			}
		}
	}
}

// WritePump drains the send channel onto the wire and keeps the connection
// alive with pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub closed the channel
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			c.Conn.WriteMessage(websocket.TextMessage, message)

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// SendEvent queues an event for the client without blocking.
func (c *Client) SendEvent(t EventType, payload interface{}) error {
	data, err := Marshal(t, payload)
	if err != nil {
		return err
	}

	select {
	case c.Send <- data:
		return nil
	default:
		return ErrClientQueueFull
	}
}

func (c *Client) SendError(errorMsg string) {
	c.SendEvent(TypeError, map[string]string{
		"error": errorMsg,
	})
}
