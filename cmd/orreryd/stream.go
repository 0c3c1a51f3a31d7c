package main

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/orrerylab/orrery"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// StreamHub broadcasts one snapshot per cadence interval to every connected
// websocket client. Clients that fall behind are dropped.
type StreamHub struct {
	sys     *orrery.System
	every   time.Duration
	metrics *MetricsCollector

	mu      sync.Mutex
	clients map[*websocket.Conn]bool

	stopChan chan struct{}
	stopOnce sync.Once
}

func NewStreamHub(sys *orrery.System, every time.Duration, metrics *MetricsCollector) *StreamHub {
	return &StreamHub{
		sys:      sys,
		every:    every,
		metrics:  metrics,
		clients:  make(map[*websocket.Conn]bool),
		stopChan: make(chan struct{}),
	}
}

// Run broadcasts until Stop is called. Only versions that changed since the
// previous broadcast are sent.
func (h *StreamHub) Run() {
	ticker := time.NewTicker(h.every)
	defer ticker.Stop()
	var lastVersion uint64
	var sent bool
	for {
		select {
		case <-h.stopChan:
			return
		case <-ticker.C:
			snap := h.sys.Snapshot()
			if sent && snap.Version == lastVersion {
				continue
			}
			lastVersion, sent = snap.Version, true
			h.broadcast(snap)
		}
	}
}

func (h *StreamHub) Stop() {
	h.stopOnce.Do(func() {
		close(h.stopChan)
		h.mu.Lock()
		defer h.mu.Unlock()
		for conn := range h.clients {
			conn.Close()
		}
		h.clients = make(map[*websocket.Conn]bool)
	})
}

func (h *StreamHub) broadcast(snap orrery.Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		conn.SetWriteDeadline(time.Now().Add(h.every))
		if err := conn.WriteJSON(snap); err != nil {
			conn.Close()
			delete(h.clients, conn)
			h.metrics.wsClients.Dec()
		}
	}
}

// HandleWS upgrades the request and registers the client for broadcasts.
func (h *StreamHub) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %s", err)
		return
	}
	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()
	h.metrics.wsClients.Inc()

	// Drain control frames; unregister when the client goes away.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				h.mu.Lock()
				if _, ok := h.clients[conn]; ok {
					delete(h.clients, conn)
					h.metrics.wsClients.Dec()
				}
				h.mu.Unlock()
				conn.Close()
				return
			}
		}
	}()
}
