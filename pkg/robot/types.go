package robot

import (
	"time"

	"github.com/openmanip/go-panda/pkg/protocol"
)

// ControllerMode selects the feedback law the controller runs during a
// motion-generator session. Torque-control sessions do not choose a mode;
// the client-supplied torques are the feedback law.
type ControllerMode int

const (
	// JointImpedance runs the joint-space impedance controller.
	JointImpedance ControllerMode = iota

	// CartesianImpedance runs the Cartesian-space impedance controller.
	CartesianImpedance
)

// wire maps the user-facing mode to its protocol value. The boolean is
// false for out-of-range values, which callers must reject before any I/O.
func (m ControllerMode) wire() (protocol.ControllerMode, bool) {
	switch m {
	case JointImpedance:
		return protocol.ControllerModeJointImpedance, true
	case CartesianImpedance:
		return protocol.ControllerModeCartesianImpedance, true
	default:
		return "", false
	}
}

// String returns the mode name.
func (m ControllerMode) String() string {
	switch m {
	case JointImpedance:
		return "joint_impedance"
	case CartesianImpedance:
		return "cartesian_impedance"
	default:
		return "unknown"
	}
}

// RobotState is one converted snapshot of the robot, valid for a single
// control cycle.
type RobotState struct {
	// Q, Dq and TauJ are the measured joint positions [rad], velocities
	// [rad/s] and torques [Nm].
	Q    [7]float64
	Dq   [7]float64
	TauJ [7]float64

	// OTEE is the measured end-effector pose as a column-major homogeneous
	// transform in the base frame.
	OTEE [16]float64

	// Elbow is the elbow configuration: position of joint 3 [rad] and the
	// sign of joint 4.
	Elbow [2]float64

	// OFExtHatK is the estimated external wrench on the stiffness frame,
	// expressed in the base frame.
	OFExtHatK [6]float64

	// Time is the controller clock at this cycle.
	Time time.Duration

	// ControllerMode is the feedback law the controller reports as active.
	ControllerMode protocol.ControllerMode

	// RobotMode is the controller's operating mode.
	RobotMode protocol.RobotMode

	// Errors lists active controller errors, empty when none.
	Errors []string
}

// convertState builds the user-facing snapshot from a raw state record.
func convertState(raw *protocol.RawState) *RobotState {
	return &RobotState{
		Q:              raw.Q,
		Dq:             raw.Dq,
		TauJ:           raw.TauJ,
		OTEE:           raw.OTEE,
		Elbow:          raw.Elbow,
		OFExtHatK:      raw.OFExtHatK,
		Time:           time.Duration(raw.Time) * time.Millisecond,
		ControllerMode: raw.ControllerMode,
		RobotMode:      raw.RobotMode,
		Errors:         raw.Errors,
	}
}

// VirtualWallCuboid describes one configured virtual wall.
type VirtualWallCuboid struct {
	// ID is the wall identifier used in the query.
	ID int32

	// ObjectWorldSize is the cuboid edge lengths [m].
	ObjectWorldSize [3]float64

	// PFrame is the cuboid pose in the world frame, column-major.
	PFrame [16]float64

	// Active reports whether the wall is currently enforced.
	Active bool
}
