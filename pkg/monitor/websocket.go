package monitor

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// WebSocketServer broadcasts check events to connected WebSocket
// clients and serves a JSON dashboard snapshot.
type WebSocketServer struct {
	mu        sync.RWMutex
	collector *EventCollector
	dashboard *DashboardData
	clients   map[*websocket.Conn]struct{}
	addr      string
	server    *http.Server
	upgrader  websocket.Upgrader

	// writeMu serializes all conn writes. Gorilla connections
	// support at most one concurrent writer.
	writeMu sync.Mutex
}

// NewWebSocketServer creates a server for live monitoring on
// addr.
func NewWebSocketServer(
	addr string,
	collector *EventCollector,
	dashboard *DashboardData,
) *WebSocketServer {
	return &WebSocketServer{
		addr:      addr,
		collector: collector,
		dashboard: dashboard,
		clients:   make(map[*websocket.Conn]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The dashboard is served on localhost for a
			// developer watching a run; any origin may connect.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Start begins serving. It blocks until ctx is cancelled or the
// listener fails.
func (s *WebSocketServer) Start(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/dashboard", s.handleDashboard)
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	s.server = &http.Server{
		Addr:    s.addr,
		Handler: mux,
	}

	s.collector.OnEvent(func(event CheckEvent) {
		s.dashboard.UpdateFromEvent(event)
		data, err := json.Marshal(event)
		if err != nil {
			return
		}
		s.broadcast(data)
	})

	go func() {
		<-ctx.Done()
		_ = s.server.Close()
	}()

	if err := s.server.ListenAndServe(); err != http.ErrServerClosed {
		return fmt.Errorf("monitor server: %w", err)
	}
	return nil
}

// Stop gracefully shuts down the server.
func (s *WebSocketServer) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

func (s *WebSocketServer) handleWS(
	w http.ResponseWriter, r *http.Request,
) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	// Send the current dashboard state before the connection
	// joins the broadcast set, so no broadcast write can overlap
	// the snapshot write.
	snap := s.dashboard.Snapshot()
	if data, err := json.Marshal(snap); err == nil {
		s.writeMu.Lock()
		_ = conn.WriteMessage(websocket.TextMessage, data)
		s.writeMu.Unlock()
	}

	s.mu.Lock()
	s.clients[conn] = struct{}{}
	s.mu.Unlock()

	// Reader loop: we ignore client messages but need the read
	// pump to detect disconnects.
	go func() {
		defer s.dropClient(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (s *WebSocketServer) handleDashboard(
	w http.ResponseWriter, _ *http.Request,
) {
	w.Header().Set("Content-Type", "application/json")
	snap := s.dashboard.Snapshot()
	_ = json.NewEncoder(w).Encode(snap)
}

func (s *WebSocketServer) broadcast(data []byte) {
	s.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(s.clients))
	for conn := range s.clients {
		conns = append(conns, conn)
	}
	s.mu.RUnlock()

	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	for _, conn := range conns {
		_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
		if err := conn.WriteMessage(
			websocket.TextMessage, data,
		); err != nil {
			s.dropClient(conn)
		}
	}
}

func (s *WebSocketServer) dropClient(conn *websocket.Conn) {
	s.mu.Lock()
	if _, ok := s.clients[conn]; ok {
		delete(s.clients, conn)
		_ = conn.Close()
	}
	s.mu.Unlock()
}
