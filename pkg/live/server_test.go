package live

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
)

func newTestServer(t *testing.T, opts ...func(*Config)) (*Server, *httptest.Server) {
	t.Helper()

	cfg := DefaultConfig()
	cfg.NewForm = testForm
	cfg.CheckOrigin = func(*http.Request) bool { return true }
	for _, opt := range opts {
		opt(&cfg)
	}

	srv, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ts := httptest.NewServer(srv.Router())
	t.Cleanup(func() {
		srv.Shutdown()
		ts.Close()
	})
	return srv, ts
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/live"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", url, err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readState(t *testing.T, conn *websocket.Conn) State {
	t.Helper()

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read state: %v", err)
	}

	var state State
	if err := json.Unmarshal(msg, &state); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	return state
}

func sendEvent(t *testing.T, conn *websocket.Conn, ev Event) {
	t.Helper()

	if err := conn.WriteJSON(ev); err != nil {
		t.Fatalf("send event: %v", err)
	}
}

func TestNewRequiresForm(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Error("expected error when NewForm is missing")
	}
}

func TestHealthz(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("get healthz: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
}

func TestSessionInitialState(t *testing.T) {
	_, ts := newTestServer(t)
	conn := dial(t, ts)

	state := readState(t, conn)
	if state.Valid {
		t.Error("form with empty required control should start invalid")
	}
	if _, ok := state.Values["name"]; !ok {
		t.Errorf("initial snapshot should carry every control, got %v", state.Values)
	}
}

func TestSessionSetEvent(t *testing.T) {
	_, ts := newTestServer(t)
	conn := dial(t, ts)
	readState(t, conn)

	sendEvent(t, conn, Event{Type: "set", Control: "name", Value: json.RawMessage(`"ada"`)})

	state := readState(t, conn)
	if state.Values["name"] != "ada" {
		t.Errorf("expected name=ada, got %v", state.Values["name"])
	}
	if !state.Valid {
		t.Errorf("form should be valid, errors %v", state.Errors)
	}
}

func TestSessionSubmitFlow(t *testing.T) {
	_, ts := newTestServer(t)
	conn := dial(t, ts)
	readState(t, conn)

	// Submit while invalid: snapshot arrives with no submission
	sendEvent(t, conn, Event{Type: "submit"})
	state := readState(t, conn)
	if state.Submitted != nil {
		t.Error("invalid submit should not carry a submission")
	}
	if len(state.Errors) == 0 {
		t.Error("rejected submit should surface errors")
	}

	sendEvent(t, conn, Event{Type: "set", Control: "name", Value: json.RawMessage(`"ada"`)})
	readState(t, conn)

	sendEvent(t, conn, Event{Type: "submit"})
	state = readState(t, conn)
	if state.Submitted == nil {
		t.Fatal("valid submit should carry the submission")
	}
	if state.Submitted["name"] != "ada" {
		t.Errorf("expected submitted name=ada, got %v", state.Submitted)
	}
}

func TestSessionBadEventGetsNoPush(t *testing.T) {
	_, ts := newTestServer(t)
	conn := dial(t, ts)
	readState(t, conn)

	// Unknown control: rejected, no snapshot push
	sendEvent(t, conn, Event{Type: "set", Control: "ghost", Value: json.RawMessage(`"x"`)})
	// The next good event still works
	sendEvent(t, conn, Event{Type: "set", Control: "name", Value: json.RawMessage(`"ada"`)})

	state := readState(t, conn)
	if state.Values["name"] != "ada" {
		t.Errorf("session should survive a rejected event, got %v", state.Values)
	}
}

func TestSessionsTrackedAndShutdown(t *testing.T) {
	srv, ts := newTestServer(t)
	conn := dial(t, ts)
	readState(t, conn)

	srv.mu.Lock()
	open := len(srv.sessions)
	srv.mu.Unlock()
	if open != 1 {
		t.Errorf("expected 1 open session, got %d", open)
	}

	srv.Shutdown()

	deadline := time.Now().Add(2 * time.Second)
	for {
		srv.mu.Lock()
		open = len(srv.sessions)
		srv.mu.Unlock()
		if open == 0 || time.Now().After(deadline) {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if open != 0 {
		t.Errorf("expected 0 open sessions after shutdown, got %d", open)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(WithNamespace("testns"), WithRegistry(reg))

	_, ts := newTestServer(t, func(c *Config) {
		c.Metrics = metrics
	})

	conn := dial(t, ts)
	readState(t, conn)
	sendEvent(t, conn, Event{Type: "set", Control: "name", Value: json.RawMessage(`"ada"`)})
	readState(t, conn)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}

	found := map[string]bool{}
	for _, mf := range families {
		found[mf.GetName()] = true
	}
	for _, want := range []string{
		"testns_live_sessions_active",
		"testns_live_events_total",
		"testns_live_snapshots_pushed_total",
	} {
		if !found[want] {
			t.Errorf("expected metric %s to be registered, got %v", want, found)
		}
	}
}

func TestPerSessionFormIsolation(t *testing.T) {
	_, ts := newTestServer(t)

	conn1 := dial(t, ts)
	readState(t, conn1)
	conn2 := dial(t, ts)
	readState(t, conn2)

	sendEvent(t, conn1, Event{Type: "set", Control: "name", Value: json.RawMessage(`"ada"`)})
	readState(t, conn1)

	// The second session's form is untouched
	sendEvent(t, conn2, Event{Type: "touch", Control: "name"})
	state := readState(t, conn2)
	if state.Values["name"] == "ada" {
		t.Error("sessions must not share form state")
	}
}
