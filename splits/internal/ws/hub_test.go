package ws_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/subsplits/subsplits/splits/internal/compute"
	"github.com/subsplits/subsplits/splits/internal/store"
	wsHub "github.com/subsplits/subsplits/splits/internal/ws"
)

const testInterval = 20 * time.Millisecond

// --- helpers ----------------------------------------------------------------

func newStore(names ...string) *store.Store {
	st := store.New(5 * time.Minute)
	for row, name := range names {
		st.Put(row, frame(row, name), true)
	}
	return st
}

func frame(segment int, name string) compute.DisplayState {
	return compute.DisplayState{
		Segment: segment,
		Name:    compute.Cell{Text: name},
	}
}

func startHub(t *testing.T, st *store.Store) (wsURL string, hub *wsHub.Hub, cancel func()) {
	t.Helper()

	hub = wsHub.New(st, testInterval)
	ctx, cancelFn := context.WithCancel(context.Background())

	srv := httptest.NewServer(http.HandlerFunc(hub.ServeHTTP))
	go hub.Run(ctx)

	t.Cleanup(func() {
		cancelFn()
		srv.Close()
	})

	wsURL = "ws" + strings.TrimPrefix(srv.URL, "http")
	return wsURL, hub, cancelFn
}

func dial(t *testing.T, wsURL string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", wsURL, err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) wsHub.Message {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second)) //nolint:errcheck
	_, raw, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage: %v", err)
	}
	var m wsHub.Message
	if err := json.Unmarshal(raw, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return m
}

// --- tests ------------------------------------------------------------------

func TestHub_Connect_ReceivesImmediateFrames(t *testing.T) {
	wsURL, _, _ := startHub(t, newStore("Door", "Key"))

	m := readMessage(t, dial(t, wsURL))
	if m.Event != "frames" {
		t.Errorf("event: got %q, want frames", m.Event)
	}
	if m.Data.GeneratedAt == "" {
		t.Error("generated_at: missing")
	}
	if len(m.Data.Rows) != 2 {
		t.Fatalf("rows: got %d, want 2", len(m.Data.Rows))
	}
	if got := m.Data.Rows[1].Frame.Name.Text; got != "Key" {
		t.Errorf("row 1 name: got %q, want Key", got)
	}
}

func TestHub_EmptyStore_EmptyRows(t *testing.T) {
	wsURL, _, _ := startHub(t, newStore())

	m := readMessage(t, dial(t, wsURL))
	if len(m.Data.Rows) != 0 {
		t.Errorf("rows: got %d, want 0", len(m.Data.Rows))
	}
}

func TestHub_CountClients(t *testing.T) {
	wsURL, hub, _ := startHub(t, newStore())

	for i := 0; i < 3; i++ {
		readMessage(t, dial(t, wsURL))
	}

	time.Sleep(10 * time.Millisecond)
	if n := hub.Count(); n != 3 {
		t.Errorf("Count: got %d, want 3", n)
	}
}

func TestHub_CountClients_DecreasesOnDisconnect(t *testing.T) {
	wsURL, hub, _ := startHub(t, newStore())

	conn := dial(t, wsURL)
	readMessage(t, conn)
	time.Sleep(10 * time.Millisecond)

	if n := hub.Count(); n != 1 {
		t.Errorf("Count before disconnect: got %d, want 1", n)
	}

	conn.Close()
	time.Sleep(50 * time.Millisecond)

	if n := hub.Count(); n != 0 {
		t.Errorf("Count after disconnect: got %d, want 0", n)
	}
}

func TestHub_BroadcastsWhenStoreChanges(t *testing.T) {
	st := newStore("Door")
	wsURL, _, _ := startHub(t, st)

	conn := dial(t, wsURL)
	readMessage(t, conn)

	st.Put(1, frame(1, "Boss"), true)

	m := readMessage(t, conn)
	if len(m.Data.Rows) != 2 {
		t.Fatalf("rows: got %d, want 2", len(m.Data.Rows))
	}
	if m.Data.Version != st.Version() {
		t.Errorf("version: got %d, want %d", m.Data.Version, st.Version())
	}
}

func TestHub_SkipsUnchangedStore(t *testing.T) {
	st := newStore("Door")
	wsURL, hub, _ := startHub(t, st)

	conn := dial(t, wsURL)
	readMessage(t, conn)

	st.Put(0, frame(0, "Door"), false)
	hub.Notify()

	conn.SetReadDeadline(time.Now().Add(5 * testInterval)) //nolint:errcheck
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Error("got a broadcast for an unchanged store, want none")
	}
}

func TestHub_CancelContextClosesConnections(t *testing.T) {
	wsURL, hub, cancel := startHub(t, newStore())

	conn := dial(t, wsURL)
	readMessage(t, conn)
	time.Sleep(10 * time.Millisecond)

	cancel()

	time.Sleep(50 * time.Millisecond)
	if n := hub.Count(); n != 0 {
		t.Errorf("Count after cancel: got %d, want 0", n)
	}
}

func TestHub_NonWebSocketRequest_Returns400(t *testing.T) {
	hub := wsHub.New(newStore(), testInterval)
	srv := httptest.NewServer(http.HandlerFunc(hub.ServeHTTP))
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", resp.StatusCode)
	}
}
