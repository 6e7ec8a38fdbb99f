package main

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

type searchPayload struct {
	Event     string  `json:"event"`
	Player    int     `json:"player"`
	Trials    int     `json:"trials"`
	Attempts  int     `json:"attempts"`
	BestNet   int     `json:"best_net"`
	Action    string  `json:"action"`
	Improved  bool    `json:"improved"`
	ElapsedMs float64 `json:"elapsed_ms"`
	UpdatedAt int64   `json:"updated_at_ms"`
}

type SearchClient struct {
	hub  *SearchHub
	conn *websocket.Conn
	send chan []byte
}

// SearchHub streams per-move search telemetry from the smart players to
// anyone watching, off the game's critical path.
type SearchHub struct {
	mu        sync.Mutex
	clients   map[*SearchClient]struct{}
	broadcast chan searchPayload
	last      searchPayload
	hasLast   bool
}

func NewSearchHub() *SearchHub {
	return &SearchHub{
		clients:   make(map[*SearchClient]struct{}),
		broadcast: make(chan searchPayload, 64),
	}
}

func (h *SearchHub) Run(done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case payload := <-h.broadcast:
			h.mu.Lock()
			h.last = payload
			h.hasLast = true
			for client := range h.clients {
				client.sendJSON(wsMessage{Type: "search", Payload: mustMarshal(payload)})
			}
			h.mu.Unlock()
		}
	}
}

// Publish never blocks the searching player; a full channel drops the
// report.
func (h *SearchHub) Publish(payload searchPayload) {
	select {
	case h.broadcast <- payload:
	default:
	}
}

func (h *SearchHub) Register(c *SearchClient) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *SearchHub) Unregister(c *SearchClient) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

func (h *SearchHub) HasClients() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients) > 0
}

func (h *SearchHub) lastReport() (searchPayload, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.last, h.hasLast
}

func (c *SearchClient) sendJSON(msg wsMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

func searchPayloadFromReport(report SearchReport) searchPayload {
	return searchPayload{
		Event:     "search",
		Player:    report.PlayerID,
		Trials:    report.Trials,
		Attempts:  report.Attempts,
		BestNet:   report.BestNet,
		Action:    report.Action.String(),
		Improved:  report.Improved,
		ElapsedMs: report.ElapsedMs,
		UpdatedAt: time.Now().UnixMilli(),
	}
}

func serveSearchWS(hub *SearchHub, w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	client := &SearchClient{hub: hub, conn: conn, send: make(chan []byte, 16)}
	hub.Register(client)

	if last, ok := hub.lastReport(); ok {
		last.Event = "snapshot"
		client.sendJSON(wsMessage{Type: "search", Payload: mustMarshal(last)})
	}

	go func() {
		defer conn.Close()
		if err := writeWSWithHeartbeat(conn, client.send); err != nil {
			return
		}
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			hub.Unregister(client)
			return
		}
	}
}
