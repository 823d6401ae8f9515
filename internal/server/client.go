package server

import (
	"time"

	"github.com/gorilla/websocket"
)

// client is a middleman between one WebSocket connection and the hub.
type client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// writePump pushes hub broadcasts to the connection and keeps it alive
// with periodic pings. It owns the connection's writes exclusively, as
// gorilla/websocket requires.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
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
