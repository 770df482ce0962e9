package chat

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"chat-engine/internal/layout"
	"chat-engine/internal/middleware"
	"chat-engine/internal/store"
	"chat-engine/internal/types"

	"github.com/gorilla/websocket"
)

// request is a decoded command, or a notice for the client when err is set.
type request struct {
	client *Client
	cmd    types.Command
	err    error
}

// Hub serializes client commands onto the store and pushes a fresh
// snapshot to every connection whenever the store changes.
type Hub struct {
	store   *store.Store
	sidebar *layout.Resizer

	Clients    map[string]*Client
	Register   chan *Client
	Unregister chan *Client
	commands   chan request
	Quit       chan struct{}

	refresh chan struct{}
}

const (
	SidebarWidth    = 320
	SidebarMinWidth = 240
	SidebarMaxWidth = 560
)

type Client struct {
	Conn        *websocket.Conn
	Name        string
	Send        chan []byte
	Hub         *Hub
	Limiter     *middleware.RateLimiter
	LastWarning time.Time
	once        sync.Once
}

func NewHub(s *store.Store) *Hub {
	log.Println("[HUB] Initializing new Hub instance...")
	h := &Hub{
		store:      s,
		sidebar:    layout.NewResizer(SidebarWidth, SidebarMinWidth, SidebarMaxWidth, layout.RightEdge),
		Clients:    make(map[string]*Client),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		commands:   make(chan request, 256),
		Quit:       make(chan struct{}),
		refresh:    make(chan struct{}, 1),
	}
	s.OnChange(h.markDirty)
	return h
}

// markDirty coalesces change notifications; a pending refresh already
// covers any later change.
func (h *Hub) markDirty() {
	select {
	case h.refresh <- struct{}{}:
	default:
	}
}

func (h *Hub) cleanupClient(c *Client) {
	c.once.Do(func() {
		if current, ok := h.Clients[c.Name]; ok && current == c {
			delete(h.Clients, c.Name)
		}
		log.Printf("[HUB] Cleaning up resources for client: %s", c.Name)
		c.Conn.Close()
		close(c.Send)
		log.Printf("[HUB] Session closed for %s. Active clients remaining: %d", c.Name, len(h.Clients))
	})
}

func (h *Hub) connected(c *Client) bool {
	current, ok := h.Clients[c.Name]
	return ok && current == c
}

func (h *Hub) sendTo(c *Client, ev types.Event) {
	if !h.connected(c) {
		return
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		log.Printf("[HUB] Failed to encode %s event: %v", ev.Type, err)
		return
	}
	select {
	case c.Send <- payload:
	default:
		log.Printf("[HUB] WARNING: Client %s buffer full. Evicting slow consumer.", c.Name)
		h.cleanupClient(c)
	}
}

func (h *Hub) snapshot() types.Event {
	ev := types.Snapshot(h.store)
	ev.SidebarWidth = h.sidebar.Width()
	return ev
}

func (h *Hub) broadcastState() {
	if len(h.Clients) == 0 {
		return
	}
	payload, err := json.Marshal(h.snapshot())
	if err != nil {
		log.Printf("[HUB] Failed to encode state: %v", err)
		return
	}
	for _, client := range h.Clients {
		select {
		case client.Send <- payload:
		default:
			log.Printf("[HUB] WARNING: Client %s buffer full. Evicting slow consumer.", client.Name)
			h.cleanupClient(client)
		}
	}
}

func (h *Hub) Run() {
	log.Println("[HUB] Main loop started. Listening for events...")
	for {
		select {
		case <-h.Quit:
			log.Println("[HUB] Quit signal received. Shutting down all client connections...")
			for _, client := range h.Clients {
				h.cleanupClient(client)
			}
			return

		case client := <-h.Register:
			log.Printf("[HUB] Registration request: %s", client.Name)
			if old, ok := h.Clients[client.Name]; ok {
				log.Printf("[HUB] Overwriting existing session for %s", client.Name)
				h.cleanupClient(old)
			}
			h.Clients[client.Name] = client
			log.Printf("[HUB] Successfully registered %s. Total active: %d", client.Name, len(h.Clients))
			h.sendTo(client, h.snapshot())

		case client := <-h.Unregister:
			if h.connected(client) {
				log.Printf("[HUB] Unregistering client: %s", client.Name)
				h.cleanupClient(client)
			}

		case req := <-h.commands:
			if req.err != nil {
				h.sendTo(req.client, types.ErrorEvent(req.err))
				continue
			}
			reply, err := h.apply(req.cmd)
			switch {
			case err != nil:
				log.Printf("[HUB] %s from %s failed: %v", req.cmd.Type, req.client.Name, err)
				h.sendTo(req.client, types.ErrorEvent(err))
			case reply != nil:
				h.sendTo(req.client, *reply)
			}

		case <-h.refresh:
			h.broadcastState()
		}
	}
}
