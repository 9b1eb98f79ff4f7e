package robot

import (
	"fmt"
	"math"

	"github.com/openmanip/go-panda/pkg/protocol"
)

// Torques is the joint torque setpoint produced by a torque-control
// callback, one value per joint [Nm].
type Torques struct {
	TauJ [7]float64

	// MotionFinished ends the control session after this cycle.
	MotionFinished bool
}

// Setpoint is implemented by the four motion representations a generator
// callback can produce. The per-type behavior is limited to validation and
// packing; the cycle algorithm is shared.
type Setpoint interface {
	finished() bool
	validate() error
	pack(cmd *protocol.MotionCommand)
	motionMode() protocol.MotionMode
}

// JointPositions is a joint-space position setpoint [rad].
type JointPositions struct {
	Q [7]float64

	MotionFinished bool
}

// JointVelocities is a joint-space velocity setpoint [rad/s].
type JointVelocities struct {
	Dq [7]float64

	MotionFinished bool
}

// CartesianPose is an end-effector pose setpoint: a column-major
// homogeneous transform in the base frame, with an optional elbow
// configuration.
type CartesianPose struct {
	OTEE [16]float64

	Elbow    [2]float64
	HasElbow bool

	MotionFinished bool
}

// CartesianVelocities is an end-effector twist setpoint
// [m/s, m/s, m/s, rad/s, rad/s, rad/s], with an optional elbow
// configuration.
type CartesianVelocities struct {
	OdPEE [6]float64

	Elbow    [2]float64
	HasElbow bool

	MotionFinished bool
}

// Finished returns a copy with the finished flag set, for ending a motion
// from inside a generator callback.
func (p JointPositions) Finished() JointPositions {
	p.MotionFinished = true
	return p
}

// Finished returns a copy with the finished flag set.
func (v JointVelocities) Finished() JointVelocities {
	v.MotionFinished = true
	return v
}

// Finished returns a copy with the finished flag set.
func (p CartesianPose) Finished() CartesianPose {
	p.MotionFinished = true
	return p
}

// Finished returns a copy with the finished flag set.
func (v CartesianVelocities) Finished() CartesianVelocities {
	v.MotionFinished = true
	return v
}

// Finished returns a copy with the finished flag set.
func (t Torques) Finished() Torques {
	t.MotionFinished = true
	return t
}

func (p JointPositions) finished() bool { return p.MotionFinished }

func (p JointPositions) validate() error {
	return checkFinite("q", p.Q[:])
}

func (p JointPositions) pack(cmd *protocol.MotionCommand) {
	cmd.Q = p.Q
}

func (p JointPositions) motionMode() protocol.MotionMode {
	return protocol.MotionModeJointPosition
}

func (v JointVelocities) finished() bool { return v.MotionFinished }

func (v JointVelocities) validate() error {
	return checkFinite("dq", v.Dq[:])
}

func (v JointVelocities) pack(cmd *protocol.MotionCommand) {
	cmd.Dq = v.Dq
}

func (v JointVelocities) motionMode() protocol.MotionMode {
	return protocol.MotionModeJointVelocity
}

func (p CartesianPose) finished() bool { return p.MotionFinished }

func (p CartesianPose) validate() error {
	if err := checkFinite("O_T_EE", p.OTEE[:]); err != nil {
		return err
	}
	if p.HasElbow {
		if err := checkFinite("elbow", p.Elbow[:]); err != nil {
			return err
		}
	}
	return checkHomogeneous(p.OTEE)
}

func (p CartesianPose) pack(cmd *protocol.MotionCommand) {
	cmd.OTEE = p.OTEE
	if p.HasElbow {
		cmd.Elbow = p.Elbow
		cmd.HasElbow = true
	}
}

func (p CartesianPose) motionMode() protocol.MotionMode {
	return protocol.MotionModeCartesianPosition
}

func (v CartesianVelocities) finished() bool { return v.MotionFinished }

func (v CartesianVelocities) validate() error {
	if err := checkFinite("O_dP_EE", v.OdPEE[:]); err != nil {
		return err
	}
	if v.HasElbow {
		return checkFinite("elbow", v.Elbow[:])
	}
	return nil
}

func (v CartesianVelocities) pack(cmd *protocol.MotionCommand) {
	cmd.OdPEE = v.OdPEE
	if v.HasElbow {
		cmd.Elbow = v.Elbow
		cmd.HasElbow = true
	}
}

func (v CartesianVelocities) motionMode() protocol.MotionMode {
	return protocol.MotionModeCartesianVelocity
}

func checkFinite(name string, values []float64) error {
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return &MotionError{Reason: fmt.Sprintf("%s[%d] is not finite", name, i)}
		}
	}
	return nil
}

// homogeneousEps bounds the drift tolerated in the rotation part and the
// affine row of a commanded pose.
const homogeneousEps = 1e-5

// checkHomogeneous verifies that a column-major 4x4 transform has an
// orthonormal rotation and the affine row 0 0 0 1.
func checkHomogeneous(t [16]float64) error {
	if math.Abs(t[3]) > homogeneousEps || math.Abs(t[7]) > homogeneousEps ||
		math.Abs(t[11]) > homogeneousEps || math.Abs(t[15]-1) > homogeneousEps {
		return &MotionError{Reason: "pose is not a homogeneous transform"}
	}
	// Columns of the rotation block must be unit length and mutually
	// orthogonal.
	cols := [3][3]float64{
		{t[0], t[1], t[2]},
		{t[4], t[5], t[6]},
		{t[8], t[9], t[10]},
	}
	for i := 0; i < 3; i++ {
		for j := i; j < 3; j++ {
			dot := cols[i][0]*cols[j][0] + cols[i][1]*cols[j][1] + cols[i][2]*cols[j][2]
			want := 0.0
			if i == j {
				want = 1.0
			}
			if math.Abs(dot-want) > homogeneousEps {
				return &MotionError{Reason: "pose rotation is not orthonormal"}
			}
		}
	}
	return nil
}
