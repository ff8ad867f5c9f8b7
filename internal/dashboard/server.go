// Package dashboard serves weight and usage history charts over the CSV
// record log. Read-only: the batch pipeline owns the file; the dashboard
// tails it and pushes newly appended rows to connected browsers.
package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/avelin/scoop/internal/model"
	"github.com/avelin/scoop/internal/store"
)

const (
	defaultPollInterval = 15 * time.Second
	maxClients          = 20
)

// Server is the history-chart HTTP server.
type Server struct {
	addr       string
	logPath    string
	windowDays int
	poll       time.Duration
	now        func() time.Time

	upgrader websocket.Upgrader
	httpSrv  *http.Server
	stop     chan struct{}

	mu        sync.Mutex
	clients   map[*websocket.Conn]bool
	lastCount int
	primed    bool
}

// NewServer creates a dashboard over the CSV log at logPath. windowDays is
// the default trailing window for history queries.
func NewServer(addr, logPath string, windowDays int) *Server {
	return &Server{
		addr:       addr,
		logPath:    logPath,
		windowDays: windowDays,
		poll:       defaultPollInterval,
		now:        time.Now,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		stop:    make(chan struct{}),
		clients: make(map[*websocket.Conn]bool),
	}
}

// Routes returns the configured router. Split out so tests can exercise
// handlers without binding a port.
func (s *Server) Routes() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	r.HandleFunc("/api/history/weights", s.handleWeights).Methods(http.MethodGet)
	r.HandleFunc("/api/history/usage", s.handleUsage).Methods(http.MethodGet)
	r.HandleFunc("/ws", s.handleWS)
	return r
}

// Start binds the address and serves until Stop. The tail goroutine starts
// alongside the listener.
func (s *Server) Start() error {
	s.httpSrv = &http.Server{
		Addr:         s.addr,
		Handler:      s.Routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	go s.tail()
	slog.Info("dashboard listening", "addr", s.addr, "log", s.logPath)
	if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("dashboard: %w", err)
	}
	return nil
}

// Stop shuts the server down and disconnects websocket clients.
func (s *Server) Stop(ctx context.Context) error {
	close(s.stop)
	s.mu.Lock()
	for conn := range s.clients {
		conn.Close()
	}
	s.clients = make(map[*websocket.Conn]bool)
	s.mu.Unlock()
	if s.httpSrv == nil {
		return nil
	}
	return s.httpSrv.Shutdown(ctx)
}

// weightPoint is one weigh-in for the chart.
type weightPoint struct {
	Timestamp time.Time `json:"timestamp"`
	Lbs       float64   `json:"lbs"`
}

// usagePoint is one day's visit count.
type usagePoint struct {
	Day    string `json:"day"`
	Visits int    `json:"visits"`
}

// rowUpdate is pushed to websocket clients for each newly appended row.
type rowUpdate struct {
	Timestamp time.Time `json:"timestamp"`
	Activity  string    `json:"activity"`
	Value     *float64  `json:"value,omitempty"`
}

func (s *Server) handleWeights(w http.ResponseWriter, r *http.Request) {
	records, err := store.ReadAll(s.logPath)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	days := s.window(r)
	points := []weightPoint{}
	for _, rec := range store.FilterWindow(records, model.ActivityWeightRecorded, s.now(), days) {
		if !rec.HasValue() {
			continue
		}
		points = append(points, weightPoint{Timestamp: rec.Timestamp, Lbs: *rec.Value})
	}
	writeJSON(w, points)
}

func (s *Server) handleUsage(w http.ResponseWriter, r *http.Request) {
	records, err := store.ReadAll(s.logPath)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	counts := store.UsageByDay(records, s.now(), s.window(r))

	days := make([]string, 0, len(counts))
	for day := range counts {
		days = append(days, day)
	}
	sort.Strings(days)

	points := []usagePoint{}
	for _, day := range days {
		points = append(points, usagePoint{Day: day, Visits: counts[day]})
	}
	writeJSON(w, points)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	full := len(s.clients) >= maxClients
	s.mu.Unlock()
	if full {
		http.Error(w, "too many clients", http.StatusServiceUnavailable)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "error", err)
		return
	}
	s.mu.Lock()
	s.clients[conn] = true
	s.mu.Unlock()

	go s.readPump(conn)
}

// readPump drains incoming frames so close handshakes are processed, and
// frees the client slot as soon as the connection drops. Without it a
// disconnected browser would hold a slot until the next tail write fails.
func (s *Server) readPump(conn *websocket.Conn) {
	defer func() {
		s.mu.Lock()
		delete(s.clients, conn)
		s.mu.Unlock()
		conn.Close()
	}()
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// tail polls the log file and pushes rows appended since the last poll to
// every connected client.
func (s *Server) tail() {
	ticker := time.NewTicker(s.poll)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.pushNewRows()
		}
	}
}

func (s *Server) pushNewRows() {
	records, err := store.ReadAll(s.logPath)
	if err != nil {
		return // file may not exist yet
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.primed {
		// First poll: baseline only, no replay of history.
		s.primed = true
		s.lastCount = len(records)
		return
	}
	if len(records) <= s.lastCount {
		return
	}
	fresh := records[s.lastCount:]
	s.lastCount = len(records)

	for conn := range s.clients {
		for _, rec := range fresh {
			update := rowUpdate{Timestamp: rec.Timestamp, Activity: rec.Activity, Value: rec.Value}
			if err := conn.WriteJSON(update); err != nil {
				conn.Close()
				delete(s.clients, conn)
				break
			}
		}
	}
}

// window resolves the trailing-day window, honoring a ?days= override.
func (s *Server) window(r *http.Request) int {
	if raw := r.URL.Query().Get("days"); raw != "" {
		var n int
		if _, err := fmt.Sscanf(raw, "%d", &n); err == nil && n > 0 {
			return n
		}
	}
	return s.windowDays
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("dashboard encode failed", "error", err)
	}
}
