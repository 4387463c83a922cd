// Package ws implements the WebSocket relay: session lifecycle, the
// session registry, and message fan-out.
package ws

import (
	"sync"

	"golang.org/x/net/websocket"
)

// transport is the minimal surface a session needs from its connection
type transport interface {
	SendText(text string) error
	Close() error
}

// Session is one live client connection plus its generated display name
type Session struct {
	ID   string
	Name string

	conn transport

	mu     sync.Mutex
	closed bool
}

// NewSession creates a session over the given transport
func NewSession(id, name string, conn transport) *Session {
	return &Session{
		ID:   id,
		Name: name,
		conn: conn,
	}
}

// Send writes one text message to the session. Writes are serialized per
// session so concurrent broadcasts never interleave frames.
func (s *Session) Send(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.conn.SendText(text)
}

// Close shuts the transport down. Safe to call more than once.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	return s.conn.Close()
}

// wsTransport adapts *websocket.Conn to the transport interface
type wsTransport struct {
	conn *websocket.Conn
}

func (t wsTransport) SendText(text string) error {
	return websocket.Message.Send(t.conn, text)
}

func (t wsTransport) Close() error {
	return t.conn.Close()
}
