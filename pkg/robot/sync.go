package robot

import (
	"fmt"

	"github.com/openmanip/go-panda/pkg/protocol"
)

// stateSynchronizer owns the state stream for a session. It hands out one
// state per cycle, enforces ordering, and pairs every outgoing command with
// the state that triggered it.
type stateSynchronizer struct {
	stream StateStream

	// lastMessageID is the id of the most recently consumed state; zero
	// before the first cycle.
	lastMessageID uint64
}

// updateRaw blocks for the next state record and validates its ordering.
// A lost, duplicated or reordered record is a fatal stream failure.
func (s *stateSynchronizer) updateRaw() (*protocol.RawState, error) {
	raw, err := s.stream.ReceiveNext()
	if err != nil {
		return nil, networkErr("receive state", err)
	}
	if raw.MessageID <= s.lastMessageID {
		return nil, networkErr("receive state",
			fmt.Errorf("out-of-order message id %d after %d", raw.MessageID, s.lastMessageID))
	}
	s.lastMessageID = raw.MessageID
	return raw, nil
}

// update blocks for the next state and converts it for user consumption.
func (s *stateSynchronizer) update() (*RobotState, error) {
	raw, err := s.updateRaw()
	if err != nil {
		return nil, err
	}
	return convertState(raw), nil
}

// sendCommand answers the most recently consumed state with one command.
func (s *stateSynchronizer) sendCommand(motion protocol.MotionCommand, control protocol.ControlCommand) error {
	cmd := protocol.RobotCommand{
		MessageID: s.lastMessageID,
		Motion:    motion,
		Control:   control,
	}
	if err := s.stream.SendCommand(&cmd); err != nil {
		return networkErr("send command", err)
	}
	return nil
}
