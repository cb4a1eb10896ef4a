package ws

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	sendBuffer = 32
)

// command is the frame clients send to manage channel membership.
type command struct {
	Action  string `json:"action"`
	Channel string `json:"channel"`
}

// Client is one connected viewer. The hub owns channels; the two pumps
// own the connection.
type Client struct {
	hub       *Hub
	conn      *websocket.Conn
	send      chan []byte
	channels  map[string]bool
	closeOnce sync.Once
}

// Serve runs a freshly upgraded connection until it drops. Intended to
// be passed to websocket.New, which invokes it on its own goroutine.
func (h *Hub) Serve(conn *websocket.Conn) {
	client := &Client{
		hub:      h,
		conn:     conn,
		send:     make(chan []byte, sendBuffer),
		channels: make(map[string]bool),
	}

	go client.writePump()
	client.readPump()
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		var cmd command
		if err := json.Unmarshal(raw, &cmd); err != nil || cmd.Channel == "" {
			continue
		}
		switch cmd.Action {
		case "join_channel":
			c.hub.join <- membership{client: c, channel: cmd.Channel}
		case "leave_channel":
			c.hub.leave <- membership{client: c, channel: cmd.Channel}
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
