// Package protocol defines the wire protocol spoken between the client and
// the robot controller: command identifiers, reply statuses, controller and
// motion-generator modes, the periodic state/command records, and the default
// WebSocket transport.
package protocol

// Version is the protocol version this client implements. It is sent in the
// connect handshake; the controller rejects incompatible clients.
const Version uint16 = 3

// Command identifies a synchronous request sent on the command connection.
type Command string

const (
	CmdConnect                Command = "connect"
	CmdStartMotion            Command = "start_motion"
	CmdStopMotion             Command = "stop_motion"
	CmdSetCollisionBehavior   Command = "set_collision_behavior"
	CmdSetJointImpedance      Command = "set_joint_impedance"
	CmdSetCartesianImpedance  Command = "set_cartesian_impedance"
	CmdSetGuidingMode         Command = "set_guiding_mode"
	CmdSetEEToK               Command = "set_ee_to_k"
	CmdSetFToEE               Command = "set_f_to_ee"
	CmdSetLoad                Command = "set_load"
	CmdAutomaticErrorRecovery Command = "automatic_error_recovery"
	CmdGetCartesianLimit      Command = "get_cartesian_limit"
)

// Status is the controller's verdict on a command.
type Status string

const (
	StatusSuccess            Status = "success"
	StatusInvalidArgument    Status = "invalid_argument"
	StatusCommandNotPossible Status = "command_not_possible"
	StatusAborted            Status = "aborted"
	StatusReflexActive       Status = "reflex_active"
)

// ControllerMode is the feedback law the controller reports as active in
// every state record. ControllerModeExternal means the client supplies
// torques each cycle.
type ControllerMode string

const (
	ControllerModeJointImpedance     ControllerMode = "joint_impedance"
	ControllerModeCartesianImpedance ControllerMode = "cartesian_impedance"
	ControllerModeExternal           ControllerMode = "external"
	ControllerModeOther              ControllerMode = "other"
)

// MotionMode selects the motion-generator interface running on the
// controller while a motion is active.
type MotionMode string

const (
	MotionModeJointPosition     MotionMode = "joint_position"
	MotionModeJointVelocity     MotionMode = "joint_velocity"
	MotionModeCartesianPosition MotionMode = "cartesian_position"
	MotionModeCartesianVelocity MotionMode = "cartesian_velocity"
)

// RobotMode is the controller's top-level operating mode.
type RobotMode string

const (
	RobotModeIdle         RobotMode = "idle"
	RobotModeMove         RobotMode = "move"
	RobotModeGuiding      RobotMode = "guiding"
	RobotModeReflex       RobotMode = "reflex"
	RobotModeUserStopped  RobotMode = "user_stopped"
	RobotModeAutoRecovery RobotMode = "automatic_error_recovery"
)
