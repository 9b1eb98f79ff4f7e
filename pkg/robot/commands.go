package robot

import "github.com/openmanip/go-panda/pkg/protocol"

// SetCollisionBehaviorFull sets contact and collision thresholds with
// separate values for the acceleration/deceleration and nominal phases.
// Torque thresholds are per joint [Nm], force thresholds per Cartesian
// axis [N, Nm].
func (r *Robot) SetCollisionBehaviorFull(
	lowerTorqueThresholdsAcceleration, upperTorqueThresholdsAcceleration [7]float64,
	lowerTorqueThresholdsNominal, upperTorqueThresholdsNominal [7]float64,
	lowerForceThresholdsAcceleration, upperForceThresholdsAcceleration [6]float64,
	lowerForceThresholdsNominal, upperForceThresholdsNominal [6]float64,
) error {
	if err := r.tryAcquire(); err != nil {
		return err
	}
	defer r.mu.Unlock()

	return r.impl.execute(protocol.CmdSetCollisionBehavior, protocol.SetCollisionBehaviorRequest{
		LowerTorqueThresholdsAcceleration: lowerTorqueThresholdsAcceleration,
		UpperTorqueThresholdsAcceleration: upperTorqueThresholdsAcceleration,
		LowerTorqueThresholdsNominal:      lowerTorqueThresholdsNominal,
		UpperTorqueThresholdsNominal:      upperTorqueThresholdsNominal,
		LowerForceThresholdsAcceleration:  lowerForceThresholdsAcceleration,
		UpperForceThresholdsAcceleration:  upperForceThresholdsAcceleration,
		LowerForceThresholdsNominal:       lowerForceThresholdsNominal,
		UpperForceThresholdsNominal:       upperForceThresholdsNominal,
	}, nil)
}

// SetCollisionBehavior is the simplified form: each threshold applies to
// both the acceleration and the nominal phase.
func (r *Robot) SetCollisionBehavior(
	lowerTorqueThresholds, upperTorqueThresholds [7]float64,
	lowerForceThresholds, upperForceThresholds [6]float64,
) error {
	return r.SetCollisionBehaviorFull(
		lowerTorqueThresholds, upperTorqueThresholds,
		lowerTorqueThresholds, upperTorqueThresholds,
		lowerForceThresholds, upperForceThresholds,
		lowerForceThresholds, upperForceThresholds,
	)
}

// SetJointImpedance sets the joint stiffness for the joint impedance
// controller [Nm/rad].
func (r *Robot) SetJointImpedance(kTheta [7]float64) error {
	if err := r.tryAcquire(); err != nil {
		return err
	}
	defer r.mu.Unlock()

	return r.impl.execute(protocol.CmdSetJointImpedance,
		protocol.SetJointImpedanceRequest{KTheta: kTheta}, nil)
}

// SetCartesianImpedance sets the Cartesian stiffness for the Cartesian
// impedance controller [N/m, Nm/rad].
func (r *Robot) SetCartesianImpedance(kX [6]float64) error {
	if err := r.tryAcquire(); err != nil {
		return err
	}
	defer r.mu.Unlock()

	return r.impl.execute(protocol.CmdSetCartesianImpedance,
		protocol.SetCartesianImpedanceRequest{KX: kX}, nil)
}

// SetGuidingMode enables hand guiding per Cartesian axis, optionally
// including the elbow.
func (r *Robot) SetGuidingMode(guidingMode [6]bool, elbow bool) error {
	if err := r.tryAcquire(); err != nil {
		return err
	}
	defer r.mu.Unlock()

	return r.impl.execute(protocol.CmdSetGuidingMode,
		protocol.SetGuidingModeRequest{GuidingMode: guidingMode, Elbow: elbow}, nil)
}

// SetK sets the stiffness frame relative to the end-effector frame
// (column-major transform).
func (r *Robot) SetK(eeTK [16]float64) error {
	if err := r.tryAcquire(); err != nil {
		return err
	}
	defer r.mu.Unlock()

	return r.impl.execute(protocol.CmdSetEEToK,
		protocol.SetEEToKRequest{EETK: eeTK}, nil)
}

// SetEE sets the end-effector frame relative to the flange frame
// (column-major transform).
func (r *Robot) SetEE(fTEE [16]float64) error {
	if err := r.tryAcquire(); err != nil {
		return err
	}
	defer r.mu.Unlock()

	return r.impl.execute(protocol.CmdSetFToEE,
		protocol.SetFToEERequest{FTEE: fTEE}, nil)
}

// SetLoad describes the payload attached to the end effector: mass [kg],
// center of mass relative to the flange [m] and inertia matrix [kg·m²].
func (r *Robot) SetLoad(mass float64, fXCload [3]float64, loadInertia [9]float64) error {
	if err := r.tryAcquire(); err != nil {
		return err
	}
	defer r.mu.Unlock()

	return r.impl.execute(protocol.CmdSetLoad, protocol.SetLoadRequest{
		Mass:        mass,
		FXCload:     fXCload,
		LoadInertia: loadInertia,
	}, nil)
}

// AutomaticErrorRecovery clears recoverable controller errors, for example
// after a collision reflex.
func (r *Robot) AutomaticErrorRecovery() error {
	if err := r.tryAcquire(); err != nil {
		return err
	}
	defer r.mu.Unlock()

	return r.impl.execute(protocol.CmdAutomaticErrorRecovery, nil, nil)
}

// GetVirtualWall queries the virtual wall with the given id.
func (r *Robot) GetVirtualWall(id int32) (*VirtualWallCuboid, error) {
	if err := r.tryAcquire(); err != nil {
		return nil, err
	}
	defer r.mu.Unlock()

	var reply protocol.GetCartesianLimitReply
	if err := r.impl.execute(protocol.CmdGetCartesianLimit,
		protocol.GetCartesianLimitRequest{ID: id}, &reply); err != nil {
		return nil, err
	}
	return &VirtualWallCuboid{
		ID:              id,
		ObjectWorldSize: reply.ObjectWorldSize,
		PFrame:          reply.PFrame,
		Active:          reply.Active,
	}, nil
}
