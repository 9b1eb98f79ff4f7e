// Package robot implements the client-side control core for a networked
// 7-DoF manipulator: an exclusive session handle, a synchronous command
// executor for configuration calls, and real-time loops that turn user
// callbacks into a one-command-per-state stream at the robot's control rate.
//
// A Robot handle owns one command connection and one state stream. At most
// one control or read operation runs on a handle at a time; a second caller
// fails immediately with ErrConcurrentOperation and touches no hardware.
package robot

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/openmanip/go-panda/pkg/protocol"
)

// CommandChannel is the reliable request/reply connection used for
// configuration and mode-change commands. One request is outstanding at a
// time; the session guard serializes callers.
type CommandChannel interface {
	Send(id uint64, cmd protocol.Command, payload []byte) error
	ReceiveMatching(id uint64) (protocol.Status, []byte, error)
	Close() error
}

// StateStream is the periodic connection delivering one state record per
// control cycle and accepting one command per received state.
type StateStream interface {
	ReceiveNext() (*protocol.RawState, error)
	SendCommand(*protocol.RobotCommand) error
	Close() error
}

// ReadCallback is invoked once per cycle during Read and RunController; the
// loop continues while it returns true.
type ReadCallback func(state *RobotState) bool

// session bundles the per-connection state of a handle. It is swapped
// wholesale by Robot.Swap.
type session struct {
	cmd    CommandChannel
	states *stateSynchronizer

	serverVersion uint16
	requestID     uint64

	logger *slog.Logger
}

// Robot is a handle to one robot. The zero value is not usable; construct
// with Connect or New.
type Robot struct {
	// mu is the session guard: held for the full duration of exactly one
	// control or read operation, acquired without blocking.
	mu   sync.Mutex
	impl *session
}

type options struct {
	logger *slog.Logger
}

// Option configures a Robot handle.
type Option func(*options)

// WithLogger sets the logger used by the handle. Defaults to slog.Default.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// New builds a handle over already-established connections. The transports
// are injected so tests and alternative links can substitute them; the
// version must come from the connect handshake the caller performed.
func New(cmd CommandChannel, stream StateStream, serverVersion uint16, opts ...Option) *Robot {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	return &Robot{impl: &session{
		cmd:           cmd,
		states:        &stateSynchronizer{stream: stream},
		serverVersion: serverVersion,
		logger:        o.logger.With("component", "robot"),
	}}
}

// Connect dials the controller at addr, performs the version handshake and
// returns a ready handle.
func Connect(ctx context.Context, addr string, opts ...Option) (*Robot, error) {
	cmdConn, stateConn, err := protocol.Dial(ctx, addr)
	if err != nil {
		return nil, networkErr("connect", err)
	}

	r := New(cmdConn, stateConn, 0, opts...)
	var reply protocol.ConnectReply
	if err := r.impl.execute(protocol.CmdConnect, protocol.ConnectRequest{Version: protocol.Version}, &reply); err != nil {
		cmdConn.Close()
		stateConn.Close()
		return nil, err
	}
	if reply.Version != protocol.Version {
		cmdConn.Close()
		stateConn.Close()
		return nil, fmt.Errorf("%w: server speaks version %d, client version %d",
			ErrIncompatibleVersion, reply.Version, protocol.Version)
	}
	r.impl.serverVersion = reply.Version
	r.impl.logger.Debug("connected", "addr", addr, "server_version", reply.Version)
	return r, nil
}

// tryAcquire takes the session guard without blocking.
func (r *Robot) tryAcquire() error {
	if !r.mu.TryLock() {
		return ErrConcurrentOperation
	}
	return nil
}

// Swap exchanges the sessions of two handles. Both guards are taken with a
// try-then-backoff protocol so two concurrent swaps in opposite order
// cannot deadlock, and any in-progress operation on either handle
// serializes with the exchange.
func (r *Robot) Swap(other *Robot) {
	if r == other || other == nil {
		return
	}
	for {
		r.mu.Lock()
		if other.mu.TryLock() {
			break
		}
		r.mu.Unlock()
		other.mu.Lock()
		if r.mu.TryLock() {
			break
		}
		other.mu.Unlock()
		runtime.Gosched()
	}
	r.impl, other.impl = other.impl, r.impl
	other.mu.Unlock()
	r.mu.Unlock()
}

// ServerVersion returns the protocol version negotiated at connection time.
// It performs no I/O.
func (r *Robot) ServerVersion() uint16 {
	return r.impl.serverVersion
}

// Close releases both connections. It waits for a running operation to
// finish.
func (r *Robot) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cmdErr := r.impl.cmd.Close()
	streamErr := r.impl.states.stream.Close()
	if cmdErr != nil {
		return cmdErr
	}
	return streamErr
}

// Read invokes the callback once per received state until it returns false.
func (r *Robot) Read(callback ReadCallback) error {
	if err := r.tryAcquire(); err != nil {
		return err
	}
	defer r.mu.Unlock()

	for {
		state, err := r.impl.states.update()
		if err != nil {
			return err
		}
		if !callback(state) {
			return nil
		}
	}
}

// ReadOnce waits for one state record and returns it.
func (r *Robot) ReadOnce() (*RobotState, error) {
	if err := r.tryAcquire(); err != nil {
		return nil, err
	}
	defer r.mu.Unlock()

	return r.impl.states.update()
}

// RunController switches the controller to the given mode and invokes the
// callback once per cycle until it returns false. A state reporting a
// different mode than the one requested aborts with ErrControlAborted.
func (r *Robot) RunController(mode ControllerMode, callback ReadCallback) error {
	if err := r.tryAcquire(); err != nil {
		return err
	}
	defer r.mu.Unlock()

	wireMode, ok := mode.wire()
	if !ok {
		return fmt.Errorf("%w: %d", ErrInvalidControllerMode, int(mode))
	}
	if err := r.impl.execute(protocol.CmdStartMotion, protocol.StartMotionRequest{
		ControllerMode: wireMode,
	}, nil); err != nil {
		return err
	}

	for {
		raw, err := r.impl.states.updateRaw()
		if err != nil {
			return err
		}
		if raw.ControllerMode != wireMode {
			return &ControlError{Expected: wireMode, Observed: raw.ControllerMode}
		}
		if !callback(convertState(raw)) {
			return nil
		}
	}
}

// execute runs one synchronous command round trip: marshal, send, block for
// the matching reply, map a non-success status to a CommandError. resp, when
// non-nil, receives the reply payload.
func (s *session) execute(cmd protocol.Command, req, resp any) error {
	var payload []byte
	if req != nil {
		var err error
		payload, err = json.Marshal(req)
		if err != nil {
			return fmt.Errorf("robot: marshal %s: %w", cmd, err)
		}
	}

	s.requestID++
	id := s.requestID
	if err := s.cmd.Send(id, cmd, payload); err != nil {
		return networkErr(fmt.Sprintf("send %s", cmd), err)
	}
	status, body, err := s.cmd.ReceiveMatching(id)
	if err != nil {
		return networkErr(fmt.Sprintf("receive %s reply", cmd), err)
	}
	if status != protocol.StatusSuccess {
		return &CommandError{Command: cmd, Status: status}
	}
	if resp != nil {
		if err := json.Unmarshal(body, resp); err != nil {
			return networkErr(fmt.Sprintf("decode %s reply", cmd), err)
		}
	}
	return nil
}
