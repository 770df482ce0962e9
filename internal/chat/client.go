package chat

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"chat-engine/internal/metrics"
	"chat-engine/internal/middleware"
	"chat-engine/internal/types"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 5 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 10 * time.Second
	maxCommandSize = 8 << 10
)

var errRateLimited = errors.New("rate limit exceeded, slow down")

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// ServeWS upgrades the request and attaches a client to h. Every connection
// drives the same conversation state, like several tabs of one session.
func ServeWS(h *Hub, rps float64, burst int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("[HUB] Upgrade error: %v", err)
			return
		}

		client := &Client{
			Hub:     h,
			Conn:    conn,
			Send:    make(chan []byte, 256),
			Name:    "tab-" + uuid.NewString()[:8],
			Limiter: middleware.NewRateLimiter(rps, burst),
		}

		select {
		case h.Register <- client:
		case <-h.Quit:
			conn.Close()
			return
		}

		go client.WritePump()
		go client.ReadPump()
	}
}

func (c *Client) leave() {
	select {
	case c.Hub.Unregister <- c:
	case <-c.Hub.Quit:
	}
}

func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.leave()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.Conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			n := len(c.Send)
			for i := 0; i < n; i++ {
				msg, ok := <-c.Send
				if !ok {
					break
				}
				w.Write([]byte{'\n'})
				w.Write(msg)
			}

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) ReadPump() {
	defer func() {
		c.leave()
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxCommandSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[CLIENT] Unexpected close: %v", err)
			}
			break
		}

		if !c.Limiter.Allow() {
			metrics.Refusals.WithLabelValues("rate_limit").Inc()
			if time.Since(c.LastWarning) > 3*time.Second {
				c.reject(errRateLimited)
			}
			continue
		}

		var cmd types.Command
		if err := json.Unmarshal(message, &cmd); err != nil {
			log.Printf("[CLIENT] %s sent an unreadable command: %v", c.Name, err)
			continue
		}

		select {
		case c.Hub.commands <- request{client: c, cmd: cmd}:
		case <-c.Hub.Quit:
			return
		}
	}
}

// reject queues err for the client through the hub, which owns Send.
// Warnings are dropped while the hub is backed up.
func (c *Client) reject(err error) {
	select {
	case c.Hub.commands <- request{client: c, err: err}:
		c.LastWarning = time.Now()
	default:
	}
}
