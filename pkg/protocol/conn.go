package protocol

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// writeWait bounds a single frame write; a stalled write means the
	// link is effectively dead for real-time purposes.
	writeWait = 5 * time.Second

	// handshakeTimeout bounds the WebSocket upgrade during Dial.
	handshakeTimeout = 10 * time.Second
)

// CommandConn is the synchronous command connection. One request is in
// flight at a time; the caller serializes access.
type CommandConn struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

// StateConn is the periodic state/command connection. The controller sends
// one state record per control cycle; the client answers each state with at
// most one RobotCommand.
type StateConn struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

// Dial connects both protocol endpoints at the given host and returns the
// command and state connections. addr is host or host:port; the command
// endpoint is ws://addr/command, the state endpoint ws://addr/state.
func Dial(ctx context.Context, addr string) (*CommandConn, *StateConn, error) {
	dialer := websocket.Dialer{HandshakeTimeout: handshakeTimeout}

	cmdConn, _, err := dialer.DialContext(ctx, fmt.Sprintf("ws://%s/command", addr), nil)
	if err != nil {
		return nil, nil, fmt.Errorf("protocol: dial command endpoint: %w", err)
	}

	stateConn, _, err := dialer.DialContext(ctx, fmt.Sprintf("ws://%s/state", addr), nil)
	if err != nil {
		cmdConn.Close()
		return nil, nil, fmt.Errorf("protocol: dial state endpoint: %w", err)
	}

	return &CommandConn{conn: cmdConn}, &StateConn{conn: stateConn}, nil
}

// Send writes one request frame.
func (c *CommandConn) Send(id uint64, cmd Command, payload []byte) error {
	req := Request{ID: id, Command: cmd, Payload: payload}
	data, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("protocol: marshal %s request: %w", cmd, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return fmt.Errorf("protocol: send %s: %w", cmd, err)
	}
	return nil
}

// ReceiveMatching blocks until the reply with the given id arrives and
// returns its status and payload. Replies for other ids are stale leftovers
// from an aborted exchange and are discarded.
func (c *CommandConn) ReceiveMatching(id uint64) (Status, []byte, error) {
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return "", nil, fmt.Errorf("protocol: receive reply: %w", err)
		}
		var reply Reply
		if err := json.Unmarshal(data, &reply); err != nil {
			return "", nil, fmt.Errorf("protocol: decode reply: %w", err)
		}
		if reply.ID != id {
			continue
		}
		return reply.Status, reply.Payload, nil
	}
}

// Close closes the command connection.
func (c *CommandConn) Close() error {
	return c.conn.Close()
}

// ReceiveNext blocks until the next state record arrives.
func (s *StateConn) ReceiveNext() (*RawState, error) {
	_, data, err := s.conn.ReadMessage()
	if err != nil {
		return nil, fmt.Errorf("protocol: receive state: %w", err)
	}
	var state RawState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("protocol: decode state: %w", err)
	}
	return &state, nil
}

// SendCommand writes one cycle command.
func (s *StateConn) SendCommand(cmd *RobotCommand) error {
	data, err := json.Marshal(cmd)
	if err != nil {
		return fmt.Errorf("protocol: marshal robot command: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return fmt.Errorf("protocol: send robot command: %w", err)
	}
	return nil
}

// Close closes the state connection.
func (s *StateConn) Close() error {
	return s.conn.Close()
}
