package live

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/formwork-dev/formwork/pkg/form"
	"github.com/formwork-dev/formwork/pkg/reactive"
	"github.com/formwork-dev/formwork/pkg/upload"
)

// Default tracer name for form servers.
const defaultTracerName = "formwork"

// Config configures a live form server.
type Config struct {
	// NewForm builds the form for a fresh connection. Each session gets
	// its own instance. Required.
	NewForm func() *form.Form

	// Logger receives structured logs. Defaults to slog.Default().
	Logger *slog.Logger

	// Uploads, if set, mounts a file upload endpoint backed by the store.
	Uploads upload.Store

	// Metrics, if set, records Prometheus metrics and mounts /metrics.
	Metrics *Metrics

	// TracerName names the OpenTelemetry tracer (default: "formwork").
	// Spans are created per client event using the global tracer provider.
	TracerName string

	// ReadTimeout is the maximum time to wait for a client message.
	ReadTimeout time.Duration

	// WriteTimeout is the maximum time to wait when sending a message.
	WriteTimeout time.Duration

	// PingInterval is how often heartbeat pings are sent.
	PingInterval time.Duration

	// MaxMessageSize limits the size of incoming messages in bytes.
	MaxMessageSize int64

	// CheckOrigin validates the WebSocket handshake origin.
	// Defaults to the gorilla same-origin check.
	CheckOrigin func(r *http.Request) bool
}

// DefaultConfig returns a Config with sensible defaults.
// NewForm must still be set by the caller.
func DefaultConfig() Config {
	return Config{
		ReadTimeout:    60 * time.Second,
		WriteTimeout:   10 * time.Second,
		PingInterval:   30 * time.Second,
		MaxMessageSize: 64 * 1024,
	}
}

// Server serves forms over WebSocket connections.
type Server struct {
	config   Config
	logger   *slog.Logger
	upgrader websocket.Upgrader
	tracer   trace.Tracer

	mu       sync.Mutex
	sessions map[*Session]struct{}
}

// New creates a live form server.
func New(config Config) (*Server, error) {
	if config.NewForm == nil {
		return nil, errors.New("live: NewForm is required")
	}

	defaults := DefaultConfig()
	if config.ReadTimeout == 0 {
		config.ReadTimeout = defaults.ReadTimeout
	}
	if config.WriteTimeout == 0 {
		config.WriteTimeout = defaults.WriteTimeout
	}
	if config.PingInterval == 0 {
		config.PingInterval = defaults.PingInterval
	}
	if config.MaxMessageSize == 0 {
		config.MaxMessageSize = defaults.MaxMessageSize
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	if config.TracerName == "" {
		config.TracerName = defaultTracerName
	}

	return &Server{
		config: config,
		logger: config.Logger,
		tracer: otel.Tracer(config.TracerName),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     config.CheckOrigin,
		},
		sessions: make(map[*Session]struct{}),
	}, nil
}

// Router returns a chi router with all server endpoints mounted:
//
//	GET  /live     WebSocket form sessions
//	POST /upload   File uploads (when a store is configured)
//	GET  /metrics  Prometheus metrics (when metrics are configured)
//	GET  /healthz  Liveness probe
//
// Mount it under your application router:
//
//	r := chi.NewRouter()
//	r.Mount("/form", srv.Router())
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()

	r.Get("/live", s.handleWS)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	if s.config.Uploads != nil {
		r.Method(http.MethodPost, "/upload", upload.Handler(s.config.Uploads))
	}
	if s.config.Metrics != nil {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}

// handleWS upgrades the connection and runs a session until it closes.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", err)
		return
	}

	sess := &Session{
		server: s,
		conn:   conn,
		form:   s.config.NewForm(),
		logger: s.logger.With("remote", r.RemoteAddr),
		send:   make(chan []byte, 16),
		done:   make(chan struct{}),
	}

	s.mu.Lock()
	s.sessions[sess] = struct{}{}
	s.mu.Unlock()
	if m := s.config.Metrics; m != nil {
		m.sessionsActive.Inc()
	}

	sess.logger.Info("session opened")

	go sess.WriteLoop()
	sess.ReadLoop()
}

// Shutdown closes all open sessions.
func (s *Server) Shutdown() {
	s.mu.Lock()
	sessions := make([]*Session, 0, len(s.sessions))
	for sess := range s.sessions {
		sessions = append(sessions, sess)
	}
	s.mu.Unlock()

	for _, sess := range sessions {
		sess.Close()
	}
}

func (s *Server) removeSession(sess *Session) {
	s.mu.Lock()
	_, ok := s.sessions[sess]
	delete(s.sessions, sess)
	s.mu.Unlock()

	if ok {
		if m := s.config.Metrics; m != nil {
			m.sessionsActive.Dec()
		}
	}
}

// Session is one WebSocket connection with its own form instance.
// Events are applied on the read loop, so all form access within a
// session is single-goroutine.
type Session struct {
	server *Server
	conn   *websocket.Conn
	form   *form.Form
	logger *slog.Logger

	send chan []byte
	done chan struct{}

	closeOnce sync.Once
}

// ReadLoop reads client events until the connection closes.
// Each event is applied to the form and answered with a state snapshot.
// An initial snapshot is pushed before the first event.
func (s *Session) ReadLoop() {
	defer s.Close()

	s.pushState(nil)

	for {
		s.conn.SetReadDeadline(time.Now().Add(s.server.config.ReadTimeout))
		s.conn.SetReadLimit(s.server.config.MaxMessageSize)

		_, msg, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				s.logger.Error("read error", "error", err)
			}
			return
		}

		var ev Event
		if err := json.Unmarshal(msg, &ev); err != nil {
			s.logger.Error("event decode error", "error", err)
			s.countError()
			continue
		}

		s.handleEvent(ev)
	}
}

// handleEvent applies one event inside a batch so that a single client
// interaction produces exactly one downstream recomputation, then
// pushes the resulting snapshot.
func (s *Session) handleEvent(ev Event) {
	metrics := s.server.config.Metrics
	start := time.Now()

	_, span := s.server.tracer.Start(context.Background(), "formwork."+ev.Type,
		trace.WithAttributes(
			attribute.String("formwork.event_type", ev.Type),
			attribute.String("formwork.control", ev.Control),
		),
	)
	defer span.End()

	var (
		submitted map[string]any
		err       error
	)
	reactive.Batch(func() {
		submitted, err = apply(s.form, ev)
	})

	if metrics != nil {
		metrics.eventsTotal.WithLabelValues(ev.Type).Inc()
		metrics.eventDuration.Observe(time.Since(start).Seconds())
		if ev.Type == "submit" {
			outcome := "rejected"
			if submitted != nil {
				outcome = "accepted"
			}
			metrics.submitsTotal.WithLabelValues(outcome).Inc()
		}
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.logger.Warn("event rejected", "type", ev.Type, "control", ev.Control, "error", err)
		s.countError()
		return
	}

	s.pushState(submitted)
}

// pushState sends the current form snapshot to the client.
func (s *Session) pushState(submitted map[string]any) {
	state := State{
		Valid:     s.form.Valid(),
		Values:    s.form.Values(),
		Errors:    s.form.Errors(),
		Submitted: submitted,
	}

	msg, err := json.Marshal(state)
	if err != nil {
		s.logger.Error("state encode error", "error", err)
		return
	}

	select {
	case s.send <- msg:
		if m := s.server.config.Metrics; m != nil {
			m.snapshotsPushed.Inc()
		}
	case <-s.done:
	}
}

// WriteLoop drains the send queue and emits heartbeat pings.
// It runs until the session is closed.
func (s *Session) WriteLoop() {
	ticker := time.NewTicker(s.server.config.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case msg := <-s.send:
			s.conn.SetWriteDeadline(time.Now().Add(s.server.config.WriteTimeout))
			if err := s.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				s.logger.Error("write error", "error", err)
				s.Close()
				return
			}

		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(s.server.config.WriteTimeout))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				s.Close()
				return
			}

		case <-s.done:
			return
		}
	}
}

// Close tears down the session: the connection, the loops, and the
// form's reactive graph.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
		s.conn.Close()
		s.form.Dispose()
		s.server.removeSession(s)
		s.logger.Info("session closed")
	})
}

func (s *Session) countError() {
	if m := s.server.config.Metrics; m != nil {
		m.eventErrors.Inc()
	}
}
