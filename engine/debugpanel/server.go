package debugpanel

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

//go:embed assets/index.html
var indexHTML string

var indexTemplate = template.Must(template.New("index").Parse(indexHTML))

const (
	writeWait = 5 * time.Second
	// maxMessageSize bounds one client message. A change is a name and a
	// single value, far below this.
	maxMessageSize = 4096
)

// message is the websocket envelope in both directions. Clients send Name
// and Value; the server sends Controls on connect, Control after a change
// and Error when a change is rejected.
type message struct {
	Name     string          `json:"name,omitempty"`
	Value    json.RawMessage `json:"value,omitempty"`
	Controls []Control       `json:"controls,omitempty"`
	Control  *Control        `json:"control,omitempty"`
	Error    string          `json:"error,omitempty"`
}

// client serializes writes to one connection.
type client struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *client) send(m message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.write(m)
}

// write sends m. The caller holds c.mu.
func (c *client) write(m message) error {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.conn.WriteJSON(m)
}

// Server serves a Panel: the HTML page at "/", a JSON snapshot at
// "/controls" and the live channel at "/ws".
type Server struct {
	panel    Panel
	addr     string
	logger   *slog.Logger
	upgrader websocket.Upgrader
	mux      *http.ServeMux

	mu      sync.Mutex
	clients map[*client]struct{}
}

// NewServer creates a Server for p. It does not listen until ListenAndServe.
//
// Parameters:
//   - p: the panel to serve
//   - options: variadic list of ServerBuilderOption functions
//
// Returns:
//   - *Server: the new server
func NewServer(p Panel, options ...ServerBuilderOption) *Server {
	s := &Server{
		panel:   p,
		addr:    "127.0.0.1:8090",
		logger:  slog.New(slog.DiscardHandler),
		clients: make(map[*client]struct{}),
	}
	for _, opt := range options {
		opt(s)
	}

	s.mux = http.NewServeMux()
	s.mux.HandleFunc("GET /{$}", s.handleIndex)
	s.mux.HandleFunc("GET /controls", s.handleControls)
	s.mux.HandleFunc("/ws", s.handleWebSocket)
	return s
}

// Addr returns the address ListenAndServe binds to.
func (s *Server) Addr() string {
	return s.addr
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// ListenAndServe serves until ctx is cancelled.
//
// Parameters:
//   - ctx: cancelling it shuts the server down and closes websocket clients
//
// Returns:
//   - error: a listen error, or nil after a clean shutdown
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on an existing listener until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{Handler: s, ReadHeaderTimeout: 5 * time.Second}

	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		s.closeClients()
	}()

	s.logger.Info("debug panel listening", "addr", ln.Addr().String())
	err := srv.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) {
		<-done
		return nil
	}
	return err
}

// Clients returns the number of connected websocket clients.
func (s *Server) Clients() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

// Broadcast sends the control's current state to every connected client.
//
// Parameters:
//   - c: the control to send
func (s *Server) Broadcast(c Control) {
	s.mu.Lock()
	targets := make([]*client, 0, len(s.clients))
	for cl := range s.clients {
		targets = append(targets, cl)
	}
	s.mu.Unlock()

	for _, cl := range targets {
		if err := cl.send(message{Control: &c}); err != nil {
			s.logger.Debug("broadcast failed", "err", err)
			s.drop(cl)
		}
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, struct{ Title string }{s.panel.Title()}); err != nil {
		s.logger.Warn("failed to render panel page", "err", err)
	}
}

func (s *Server) handleControls(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.panel.Snapshot()); err != nil {
		s.logger.Warn("failed to write controls", "err", err)
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Debug("websocket upgrade failed", "err", err)
		return
	}
	conn.SetReadLimit(maxMessageSize)
	cl := &client{conn: conn}
	defer s.drop(cl)

	// Registered before the snapshot so no broadcast is missed. Holding
	// cl.mu keeps the snapshot first on the wire.
	cl.mu.Lock()
	s.mu.Lock()
	s.clients[cl] = struct{}{}
	s.mu.Unlock()
	err = cl.write(message{Controls: s.panel.Snapshot()})
	cl.mu.Unlock()
	if err != nil {
		return
	}
	s.logger.Debug("panel client connected", "remote", r.RemoteAddr)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		s.handleMessage(cl, data)
	}
}

// handleMessage applies one client change. Rejections go back to the sender
// only; accepted changes are broadcast to everyone.
func (s *Server) handleMessage(cl *client, data []byte) {
	var in message
	if err := json.Unmarshal(data, &in); err != nil {
		_ = cl.send(message{Error: fmt.Sprintf("%v: malformed message", ErrInvalidValue)})
		return
	}
	if err := s.panel.Apply(in.Name, in.Value); err != nil {
		_ = cl.send(message{Name: in.Name, Error: err.Error()})
		return
	}
	if c, ok := s.panel.Control(in.Name); ok {
		s.Broadcast(c)
	}
}

func (s *Server) drop(cl *client) {
	s.mu.Lock()
	_, ok := s.clients[cl]
	delete(s.clients, cl)
	s.mu.Unlock()
	if ok {
		cl.conn.Close()
	}
}

func (s *Server) closeClients() {
	s.mu.Lock()
	targets := make([]*client, 0, len(s.clients))
	for cl := range s.clients {
		targets = append(targets, cl)
	}
	s.mu.Unlock()
	for _, cl := range targets {
		s.drop(cl)
	}
}
