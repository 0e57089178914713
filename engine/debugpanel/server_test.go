package debugpanel

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*Server, *httptest.Server, Panel, *number) {
	t.Helper()
	p, intensity, _ := newTestPanel(t)
	s := NewServer(p)
	ts := httptest.NewServer(s)
	t.Cleanup(ts.Close)
	return s, ts, p, intensity
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	var hello message
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, conn.ReadJSON(&hello))
	require.Len(t, hello.Controls, 2, "clients receive a snapshot on connect")
	return conn
}

func read(t *testing.T, conn *websocket.Conn) map[string]any {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var m map[string]any
	require.NoError(t, conn.ReadJSON(&m))
	return m
}

func TestIndexPage(t *testing.T) {
	_, ts, _, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	assert.Contains(t, string(body), "<title>test</title>")

	resp, err = http.Get(ts.URL + "/missing")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestControlsSnapshot(t *testing.T) {
	_, ts, _, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/controls")
	require.NoError(t, err)
	defer resp.Body.Close()

	var controls []Control
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&controls))
	require.Len(t, controls, 2)
	assert.Equal(t, "intensity", controls[0].Name)
	assert.Equal(t, KindNumber, controls[0].Kind)
	assert.Equal(t, 2.0, controls[0].Max)
	assert.Equal(t, "#ffffff", controls[1].Value)
}

func TestWebSocketChangeIsBroadcast(t *testing.T) {
	s, ts, p, intensity := newTestServer(t)
	a := dial(t, ts)
	b := dial(t, ts)
	require.Eventually(t, func() bool { return s.Clients() == 2 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, a.WriteJSON(map[string]any{"name": "intensity", "value": 7}))

	for _, conn := range []*websocket.Conn{a, b} {
		m := read(t, conn)
		control, ok := m["control"].(map[string]any)
		require.True(t, ok, "got %v", m)
		assert.Equal(t, "intensity", control["name"])
		assert.Equal(t, 2.0, control["value"], "broadcast value is clamped")
	}

	assert.Equal(t, 1.0, intensity.v, "nothing changes before the render thread flushes")
	p.Flush()
	assert.Equal(t, 2.0, intensity.v)
}

func TestWebSocketErrorsGoToSender(t *testing.T) {
	_, ts, _, _ := newTestServer(t)
	conn := dial(t, ts)

	require.NoError(t, conn.WriteJSON(map[string]any{"name": "nope", "value": 1}))
	m := read(t, conn)
	assert.Contains(t, m["error"], "unknown control")

	require.NoError(t, conn.WriteJSON(map[string]any{"name": "color", "value": "purple"}))
	m = read(t, conn)
	assert.Contains(t, m["error"], "invalid value")

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{not json")))
	m = read(t, conn)
	assert.Contains(t, m["error"], "malformed")
}

func TestClientDisconnectIsDropped(t *testing.T) {
	s, ts, _, _ := newTestServer(t)
	conn := dial(t, ts)
	require.Eventually(t, func() bool { return s.Clients() == 1 }, 2*time.Second, 10*time.Millisecond)

	conn.Close()
	assert.Eventually(t, func() bool { return s.Clients() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestServeStopsOnCancel(t *testing.T) {
	p, _, _ := newTestPanel(t)
	s := NewServer(p, WithAddr("127.0.0.1:0"))
	assert.Equal(t, "127.0.0.1:0", s.Addr())

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- s.Serve(ctx, ln) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + ln.Addr().String() + "/controls")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestBroadcastReachesClientRightAfterSnapshot(t *testing.T) {
	s, ts, p, _ := newTestServer(t)
	conn := dial(t, ts)
	require.Equal(t, 1, s.Clients(), "client is registered once its snapshot arrives")

	c, ok := p.Control("intensity")
	require.True(t, ok)
	s.Broadcast(c)

	m := read(t, conn)
	control, ok := m["control"].(map[string]any)
	require.True(t, ok, "got %v", m)
	assert.Equal(t, "intensity", control["name"])
}

func TestOversizedMessageClosesConnection(t *testing.T) {
	s, ts, _, _ := newTestServer(t)
	conn := dial(t, ts)

	big := `{"name":"intensity","value":"` + strings.Repeat("x", 2*maxMessageSize) + `"}`
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(big)))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseMessageTooBig), "got %v", err)
	assert.Eventually(t, func() bool { return s.Clients() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestCrossOriginRejectedByDefault(t *testing.T) {
	_, ts, _, _ := newTestServer(t)
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	header := http.Header{"Origin": {"http://elsewhere.example"}}

	_, resp, err := websocket.DefaultDialer.Dial(url, header)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestAllowAnyOrigin(t *testing.T) {
	p, _, _ := newTestPanel(t)
	ts := httptest.NewServer(NewServer(p, WithAllowAnyOrigin()))
	t.Cleanup(ts.Close)
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	header := http.Header{"Origin": {"http://elsewhere.example"}}

	conn, _, err := websocket.DefaultDialer.Dial(url, header)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	var hello message
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, conn.ReadJSON(&hello))
	assert.Len(t, hello.Controls, 2)
}
