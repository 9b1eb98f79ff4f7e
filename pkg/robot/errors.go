package robot

import (
	"errors"
	"fmt"

	"github.com/openmanip/go-panda/pkg/protocol"
)

// Sentinel errors for the robot package. Every failure returned by a Robot
// method wraps exactly one of these, so callers can classify with errors.Is
// and drill into details with errors.As.
var (
	// ErrConcurrentOperation is returned when a control or read operation
	// is attempted while another one is running on the same handle.
	ErrConcurrentOperation = errors.New("robot: another control or read operation is running")

	// ErrInvalidControllerMode is returned for an unrecognized controller
	// mode value, before any command is sent.
	ErrInvalidControllerMode = errors.New("robot: invalid controller mode")

	// ErrCommandRejected is returned when the controller declines a command.
	ErrCommandRejected = errors.New("robot: command rejected")

	// ErrControlAborted is returned when a running loop observes a
	// controller mode other than the one it started with.
	ErrControlAborted = errors.New("robot: control aborted")

	// ErrInvalidMotion is returned when a generated setpoint fails
	// validation and was not forwarded to the controller.
	ErrInvalidMotion = errors.New("robot: invalid motion")

	// ErrNetwork is returned on command or state connection failure. It is
	// fatal for the session; the core never retries.
	ErrNetwork = errors.New("robot: network failure")

	// ErrIncompatibleVersion is returned when the controller speaks a
	// different protocol version than this client.
	ErrIncompatibleVersion = errors.New("robot: incompatible server version")
)

// CommandError reports a command the controller rejected.
type CommandError struct {
	Command protocol.Command
	Status  protocol.Status
}

// Error implements the error interface.
func (e *CommandError) Error() string {
	return fmt.Sprintf("robot: command %s rejected: %s", e.Command, e.Status)
}

// Unwrap classifies the error as a rejection.
func (e *CommandError) Unwrap() error {
	return ErrCommandRejected
}

// ControlError reports a controller mode change observed while a loop was
// running.
type ControlError struct {
	Expected protocol.ControllerMode
	Observed protocol.ControllerMode
}

// Error implements the error interface.
func (e *ControlError) Error() string {
	return fmt.Sprintf("robot: controller mode changed from %s to %s", e.Expected, e.Observed)
}

// Unwrap classifies the error as a control abort.
func (e *ControlError) Unwrap() error {
	return ErrControlAborted
}

// MotionError reports a setpoint that failed validation.
type MotionError struct {
	Reason string
}

// Error implements the error interface.
func (e *MotionError) Error() string {
	return fmt.Sprintf("robot: motion generator produced invalid setpoint: %s", e.Reason)
}

// Unwrap classifies the error as invalid motion.
func (e *MotionError) Unwrap() error {
	return ErrInvalidMotion
}

// NetworkError wraps a transport failure with the operation that hit it.
type NetworkError struct {
	Op    string
	Cause error
}

// Error implements the error interface.
func (e *NetworkError) Error() string {
	return fmt.Sprintf("robot: %s: %v", e.Op, e.Cause)
}

// Unwrap classifies the error as a network failure. The underlying cause
// stays reachable through the error message only; classification is by
// kind, not by transport detail.
func (e *NetworkError) Unwrap() error {
	return ErrNetwork
}

func networkErr(op string, cause error) error {
	return &NetworkError{Op: op, Cause: cause}
}
