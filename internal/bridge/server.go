package bridge

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"github.com/atomicstack/tmux-chat-ui/internal/logging/events"
	"github.com/gorilla/websocket"
)

const eventBuffer = 16

type peer struct {
	surface string
	conn    *websocket.Conn
	writeMu sync.Mutex
}

func (p *peer) send(ev Event) error {
	p.writeMu.Lock()
	defer p.writeMu.Unlock()
	return p.conn.WriteJSON(ev)
}

// Server accepts pop-out connections on a unix socket.
type Server struct {
	socketPath string
	listener   net.Listener
	srv        *http.Server
	upgrader   websocket.Upgrader

	events chan Event
	done   chan struct{}
	wg     sync.WaitGroup

	mu     sync.Mutex
	peers  map[*peer]struct{}
	closed bool
}

// DefaultSocketPath returns a per-process socket path in the temp dir.
func DefaultSocketPath() string {
	return filepath.Join(os.TempDir(), fmt.Sprintf("tmux-chat-ui-%d.sock", os.Getpid()))
}

// Listen starts serving on socketPath. A stale socket file left by a crashed
// process is removed first.
func Listen(socketPath string) (*Server, error) {
	if socketPath == "" {
		socketPath = DefaultSocketPath()
	}
	if err := os.Remove(socketPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("remove stale bridge socket: %w", err)
	}
	ln, err := net.Listen("unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("listen on bridge socket: %w", err)
	}
	s := &Server{
		socketPath: socketPath,
		listener:   ln,
		events:     make(chan Event, eventBuffer),
		done:       make(chan struct{}),
		peers:      make(map[*peer]struct{}),
	}
	mux := http.NewServeMux()
	mux.HandleFunc(surfacePath, s.handleSurface)
	s.srv = &http.Server{Handler: mux}
	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			events.Bridge.Error(err)
		}
	}()
	events.Bridge.Listen(socketPath)
	return s, nil
}

// SocketPath returns the path pop-outs dial.
func (s *Server) SocketPath() string {
	return s.socketPath
}

// Events delivers events received from every connected surface. The channel
// is closed by Close.
func (s *Server) Events() <-chan Event {
	return s.events
}

// Broadcast sends ev to every connected surface. Delivery failures are
// logged; a broken peer is dropped by its read loop.
func (s *Server) Broadcast(ev Event) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	peers := make([]*peer, 0, len(s.peers))
	for p := range s.peers {
		peers = append(peers, p)
	}
	s.mu.Unlock()

	for _, p := range peers {
		if err := p.send(ev); err != nil {
			events.Bridge.Error(err)
			continue
		}
		events.Bridge.Send(string(ev.Kind), p.surface)
	}
	return nil
}

// Peers returns the number of connected surfaces.
func (s *Server) Peers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.peers)
}

// Close stops the server, drops every connection and removes the socket.
func (s *Server) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	close(s.done)
	peers := s.peers
	s.peers = make(map[*peer]struct{})
	s.mu.Unlock()

	err := s.srv.Close()
	for p := range peers {
		_ = p.conn.Close()
	}
	s.wg.Wait()
	close(s.events)
	if rmErr := os.Remove(s.socketPath); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) && err == nil {
		err = rmErr
	}
	return err
}

func (s *Server) handleSurface(w http.ResponseWriter, r *http.Request) {
	surface := r.URL.Query().Get("id")
	if surface == "" {
		http.Error(w, "surface id required", http.StatusBadRequest)
		return
	}
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		events.Bridge.Error(err)
		return
	}
	p := &peer{surface: surface, conn: conn}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		_ = conn.Close()
		return
	}
	s.peers[p] = struct{}{}
	s.wg.Add(1)
	s.mu.Unlock()
	defer s.wg.Done()

	events.Bridge.Connect(surface)
	s.readLoop(p)

	s.mu.Lock()
	_, tracked := s.peers[p]
	delete(s.peers, p)
	s.mu.Unlock()
	_ = conn.Close()
	if tracked {
		s.emit(Event{Kind: KindDisconnect, Surface: surface})
	}
}

func (s *Server) readLoop(p *peer) {
	for {
		var ev Event
		if err := p.conn.ReadJSON(&ev); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				events.Bridge.Error(err)
			}
			return
		}
		// A surface speaks only for itself.
		ev.Surface = p.surface
		events.Bridge.Receive(string(ev.Kind), ev.Surface)
		if !s.emit(ev) {
			return
		}
	}
}

func (s *Server) emit(ev Event) bool {
	select {
	case s.events <- ev:
		return true
	case <-s.done:
		return false
	}
}
