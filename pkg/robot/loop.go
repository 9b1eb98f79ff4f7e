package robot

import (
	"fmt"
	"time"

	"github.com/openmanip/go-panda/pkg/protocol"
)

// TorqueCallback produces the joint torque command for one cycle. period is
// the time elapsed since the previous cycle, zero on the first one.
type TorqueCallback func(state *RobotState, period time.Duration) Torques

// Generator callbacks produce the next motion setpoint for one cycle.
type (
	JointPositionsCallback      func(state *RobotState, period time.Duration) JointPositions
	JointVelocitiesCallback     func(state *RobotState, period time.Duration) JointVelocities
	CartesianPoseCallback       func(state *RobotState, period time.Duration) CartesianPose
	CartesianVelocitiesCallback func(state *RobotState, period time.Duration) CartesianVelocities
)

// Control runs a pure torque-control session. The callback is invoked once
// per received state until it returns a finished Torques value; the robot is
// left idle and commandable afterwards.
func (r *Robot) Control(callback TorqueCallback) error {
	if err := r.tryAcquire(); err != nil {
		return err
	}
	defer r.mu.Unlock()

	// Torque control runs the external controller with an idle
	// joint-velocity motion part.
	gen := func(*RobotState, time.Duration) JointVelocities { return JointVelocities{} }
	return runMotion(r.impl, protocol.ControllerModeExternal, gen, callback)
}

// ControlJointPositions runs torque control with a joint position generator.
func (r *Robot) ControlJointPositions(torque TorqueCallback, generate JointPositionsCallback) error {
	return controlMotion(r, torque, generate)
}

// ControlJointVelocities runs torque control with a joint velocity generator.
func (r *Robot) ControlJointVelocities(torque TorqueCallback, generate JointVelocitiesCallback) error {
	return controlMotion(r, torque, generate)
}

// ControlCartesianPose runs torque control with a Cartesian pose generator.
func (r *Robot) ControlCartesianPose(torque TorqueCallback, generate CartesianPoseCallback) error {
	return controlMotion(r, torque, generate)
}

// ControlCartesianVelocities runs torque control with a Cartesian velocity
// generator.
func (r *Robot) ControlCartesianVelocities(torque TorqueCallback, generate CartesianVelocitiesCallback) error {
	return controlMotion(r, torque, generate)
}

// MoveJointPositions runs a joint position motion with the given internal
// controller.
func (r *Robot) MoveJointPositions(generate JointPositionsCallback, mode ControllerMode) error {
	return moveMotion(r, generate, mode)
}

// MoveJointVelocities runs a joint velocity motion with the given internal
// controller.
func (r *Robot) MoveJointVelocities(generate JointVelocitiesCallback, mode ControllerMode) error {
	return moveMotion(r, generate, mode)
}

// MoveCartesianPose runs a Cartesian pose motion with the given internal
// controller.
func (r *Robot) MoveCartesianPose(generate CartesianPoseCallback, mode ControllerMode) error {
	return moveMotion(r, generate, mode)
}

// MoveCartesianVelocities runs a Cartesian velocity motion with the given
// internal controller.
func (r *Robot) MoveCartesianVelocities(generate CartesianVelocitiesCallback, mode ControllerMode) error {
	return moveMotion(r, generate, mode)
}

// controlMotion is the combined torque + generator entry point shared by the
// four ControlXxx methods. The feedback law is the torque callback, so the
// expected echoed mode is the external controller.
func controlMotion[T Setpoint](r *Robot, torque TorqueCallback, generate func(*RobotState, time.Duration) T) error {
	if err := r.tryAcquire(); err != nil {
		return err
	}
	defer r.mu.Unlock()

	return runMotion(r.impl, protocol.ControllerModeExternal, generate, torque)
}

// moveMotion is the generator-only entry point shared by the four MoveXxx
// methods. The controller mode is chosen by the caller and validated before
// any command is sent.
func moveMotion[T Setpoint](r *Robot, generate func(*RobotState, time.Duration) T, mode ControllerMode) error {
	if err := r.tryAcquire(); err != nil {
		return err
	}
	defer r.mu.Unlock()

	wireMode, ok := mode.wire()
	if !ok {
		return fmt.Errorf("%w: %d", ErrInvalidControllerMode, int(mode))
	}
	return runMotion(r.impl, wireMode, generate, nil)
}

// runMotion drives one control session: start the motion, then per received
// state verify the echoed controller mode, invoke the callbacks, validate
// and send exactly one command. On every abort path a best-effort safe stop
// is sent before the error propagates; a clean finish sends a final
// deceleration command followed by a stop command.
func runMotion[T Setpoint](s *session, expected protocol.ControllerMode, generate func(*RobotState, time.Duration) T, torque TorqueCallback) error {
	var zero T
	if err := s.execute(protocol.CmdStartMotion, protocol.StartMotionRequest{
		ControllerMode: expected,
		MotionMode:     zero.motionMode(),
	}, nil); err != nil {
		return err
	}
	s.logger.Debug("motion started", "controller_mode", expected, "motion_mode", zero.motionMode())

	// A panic in user callback code must still leave the robot stopped.
	defer func() {
		if p := recover(); p != nil {
			s.safeStop()
			panic(p)
		}
	}()

	var lastTime time.Duration
	started := false
	for {
		raw, err := s.states.updateRaw()
		if err != nil {
			s.safeStop()
			return err
		}
		if raw.ControllerMode != expected {
			s.safeStop()
			return &ControlError{Expected: expected, Observed: raw.ControllerMode}
		}

		state := convertState(raw)
		var period time.Duration
		if started {
			period = state.Time - lastTime
		}
		lastTime = state.Time
		started = true

		setpoint := generate(state, period)
		if err := setpoint.validate(); err != nil {
			s.safeStop()
			return err
		}

		var motion protocol.MotionCommand
		setpoint.pack(&motion)
		var control protocol.ControlCommand
		finished := setpoint.finished()
		if torque != nil {
			tau := torque(state, period)
			control.TauJ = tau.TauJ
			finished = finished || tau.MotionFinished
		}

		if finished {
			motion.Finished = true
			if err := s.states.sendCommand(motion, control); err != nil {
				return err
			}
			if err := s.execute(protocol.CmdStopMotion, nil, nil); err != nil {
				return err
			}
			s.logger.Debug("motion finished", "cycles", raw.MessageID)
			return nil
		}
		if err := s.states.sendCommand(motion, control); err != nil {
			s.safeStop()
			return err
		}
	}
}

// safeStop makes a best effort to leave the controller idle and commandable
// after an abort: a finished command on the state stream, then a stop on the
// command channel. Failures are logged, not returned; the original abort
// cause is what propagates.
func (s *session) safeStop() {
	if err := s.states.sendCommand(protocol.MotionCommand{Finished: true}, protocol.ControlCommand{}); err != nil {
		s.logger.Warn("safe stop: final command not delivered", "error", err)
	}
	if err := s.execute(protocol.CmdStopMotion, nil, nil); err != nil {
		s.logger.Warn("safe stop: stop command failed", "error", err)
	}
}
