package protocol

import "encoding/json"

// Request is the envelope for one command on the command connection. IDs
// increase monotonically per session and correlate the matching Reply.
type Request struct {
	ID      uint64          `json:"id"`
	Command Command         `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Reply is the controller's response to a Request with the same ID.
type Reply struct {
	ID      uint64          `json:"id"`
	Status  Status          `json:"status"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// ConnectRequest opens a session and negotiates the protocol version.
type ConnectRequest struct {
	Version uint16 `json:"version"`
	// StatePort tells the controller where this client listens for the
	// state stream when running over split connections. Zero when the
	// stream shares the command endpoint.
	StatePort uint16 `json:"state_port,omitempty"`
}

// ConnectReply carries the controller's version.
type ConnectReply struct {
	Version uint16 `json:"version"`
}

// StartMotionRequest starts a motion with the given generator interface and
// feedback controller.
type StartMotionRequest struct {
	ControllerMode ControllerMode `json:"controller_mode"`
	MotionMode     MotionMode     `json:"motion_mode"`
}

// SetCollisionBehaviorRequest configures contact and collision thresholds.
// Torque thresholds are per joint, force thresholds per Cartesian axis.
type SetCollisionBehaviorRequest struct {
	LowerTorqueThresholdsAcceleration [7]float64 `json:"lower_torque_thresholds_acceleration"`
	UpperTorqueThresholdsAcceleration [7]float64 `json:"upper_torque_thresholds_acceleration"`
	LowerTorqueThresholdsNominal      [7]float64 `json:"lower_torque_thresholds_nominal"`
	UpperTorqueThresholdsNominal      [7]float64 `json:"upper_torque_thresholds_nominal"`
	LowerForceThresholdsAcceleration  [6]float64 `json:"lower_force_thresholds_acceleration"`
	UpperForceThresholdsAcceleration  [6]float64 `json:"upper_force_thresholds_acceleration"`
	LowerForceThresholdsNominal       [6]float64 `json:"lower_force_thresholds_nominal"`
	UpperForceThresholdsNominal       [6]float64 `json:"upper_force_thresholds_nominal"`
}

// SetJointImpedanceRequest sets joint stiffness.
type SetJointImpedanceRequest struct {
	KTheta [7]float64 `json:"K_theta"`
}

// SetCartesianImpedanceRequest sets Cartesian stiffness.
type SetCartesianImpedanceRequest struct {
	KX [6]float64 `json:"K_x"`
}

// SetGuidingModeRequest enables hand guiding per Cartesian axis.
type SetGuidingModeRequest struct {
	GuidingMode [6]bool `json:"guiding_mode"`
	Elbow       bool    `json:"elbow"`
}

// SetEEToKRequest sets the stiffness frame relative to the end effector.
type SetEEToKRequest struct {
	EETK [16]float64 `json:"EE_T_K"`
}

// SetFToEERequest sets the end-effector frame relative to the flange.
type SetFToEERequest struct {
	FTEE [16]float64 `json:"F_T_EE"`
}

// SetLoadRequest describes the payload attached to the end effector.
type SetLoadRequest struct {
	Mass        float64    `json:"mass"`
	FXCload     [3]float64 `json:"F_x_Cload"`
	LoadInertia [9]float64 `json:"load_inertia"`
}

// GetCartesianLimitRequest queries one configured virtual wall.
type GetCartesianLimitRequest struct {
	ID int32 `json:"id"`
}

// GetCartesianLimitReply describes the queried virtual wall cuboid.
type GetCartesianLimitReply struct {
	ObjectWorldSize [3]float64  `json:"object_world_size"`
	PFrame          [16]float64 `json:"p_frame"`
	Active          bool        `json:"active"`
}

// MotionCommand is the motion-generator part of a cycle command. Exactly
// one setpoint group is meaningful, selected by the MotionMode given at
// start. Finished tells the controller to decelerate and hold at the last
// setpoint.
type MotionCommand struct {
	Q        [7]float64  `json:"q_c"`
	Dq       [7]float64  `json:"dq_c"`
	OTEE     [16]float64 `json:"O_T_EE_c"`
	OdPEE    [6]float64  `json:"O_dP_EE_c"`
	Elbow    [2]float64  `json:"elbow_c"`
	HasElbow bool        `json:"valid_elbow"`
	Finished bool        `json:"motion_generation_finished"`
}

// ControlCommand is the torque part of a cycle command.
type ControlCommand struct {
	TauJ [7]float64 `json:"tau_J_d"`
}

// RobotCommand is the single outgoing record sent on the state stream in
// response to one received state. MessageID echoes the state that triggered
// it.
type RobotCommand struct {
	MessageID uint64         `json:"message_id"`
	Motion    MotionCommand  `json:"motion"`
	Control   ControlCommand `json:"control"`
}
