package protocol

// RawState is one state record as delivered by the controller, once per
// control cycle. MessageID increases strictly by one cycle at a time; a
// non-increasing id means the stream lost or reordered a record.
type RawState struct {
	MessageID uint64 `json:"message_id"`

	// Time is milliseconds since controller start.
	Time uint64 `json:"time"`

	// Joint-space measurements, one value per joint.
	Q    [7]float64 `json:"q"`
	Dq   [7]float64 `json:"dq"`
	TauJ [7]float64 `json:"tau_J"`

	// OTEE is the measured end-effector pose, a column-major homogeneous
	// transform relative to the base frame.
	OTEE [16]float64 `json:"O_T_EE"`

	// Elbow is the elbow configuration: position of joint 3 and sign of
	// joint 4.
	Elbow [2]float64 `json:"elbow"`

	// OFExtHatK is the estimated external wrench acting on the stiffness
	// frame, expressed in the base frame.
	OFExtHatK [6]float64 `json:"O_F_ext_hat_K"`

	ControllerMode ControllerMode `json:"controller_mode"`
	RobotMode      RobotMode      `json:"robot_mode"`

	// Errors lists the currently active controller errors, empty when none.
	Errors []string `json:"errors,omitempty"`
}
