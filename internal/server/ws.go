package server

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// registrationEvent is pushed to websocket clients on each successful
// registration, driving the live counter on the event page.
type registrationEvent struct {
	ChestNumber int    `json:"chest_number"`
	Category    string `json:"category"`
}

// Hub fans registration events out to connected websocket clients.
type Hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]bool
	events  chan registrationEvent
	logger  *logrus.Logger
}

func newHub(logger *logrus.Logger) *Hub {
	return &Hub{
		clients: make(map[*websocket.Conn]bool),
		events:  make(chan registrationEvent, 16),
		logger:  logger,
	}
}

func (h *Hub) run() {
	for ev := range h.events {
		h.mu.Lock()
		for client := range h.clients {
			if err := client.WriteJSON(ev); err != nil {
				h.logger.WithFields(logrus.Fields{"error": err.Error()}).Warn("Dropping websocket client")
				client.Close()
				delete(h.clients, client)
			}
		}
		h.mu.Unlock()
	}
}

// broadcast never blocks the registration transaction; if the feed is
// backed up the event is dropped.
func (h *Hub) broadcast(ev registrationEvent) {
	select {
	case h.events <- ev:
	default:
	}
}

func (h *Hub) add(conn *websocket.Conn) {
	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()
}

func (h *Hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
}

func (s *Server) wsHandler(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" {
				return true
			}
			for _, allowed := range s.cfg.AllowedOrigins {
				if origin == allowed || allowed == "*" {
					return true
				}
			}
			return false
		},
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.WithFields(logrus.Fields{"error": err.Error()}).Warn("Websocket upgrade failed")
		return
	}

	s.hub.add(conn)
	defer func() {
		s.hub.remove(conn)
		conn.Close()
	}()

	// Clients only listen; the read loop just detects disconnects.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
