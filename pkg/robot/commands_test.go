package robot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openmanip/go-panda/pkg/protocol"
)

func TestSetCollisionBehavior_SimplifiedEqualsFull(t *testing.T) {
	lowerTorque := [7]float64{20, 20, 18, 18, 16, 14, 12}
	upperTorque := [7]float64{40, 40, 36, 36, 32, 28, 24}
	lowerForce := [6]float64{20, 20, 20, 25, 25, 25}
	upperForce := [6]float64{40, 40, 40, 50, 50, 50}

	cmdSimple := &stubCommandChannel{}
	r := newTestRobot(cmdSimple, newStubStateStream())
	require.NoError(t, r.SetCollisionBehavior(lowerTorque, upperTorque, lowerForce, upperForce))

	cmdFull := &stubCommandChannel{}
	r = newTestRobot(cmdFull, newStubStateStream())
	require.NoError(t, r.SetCollisionBehaviorFull(
		lowerTorque, upperTorque, lowerTorque, upperTorque,
		lowerForce, upperForce, lowerForce, upperForce,
	))

	require.Len(t, cmdSimple.sent, 1)
	require.Len(t, cmdFull.sent, 1)
	assert.Equal(t, protocol.CmdSetCollisionBehavior, cmdSimple.sent[0].cmd)
	assert.JSONEq(t, string(cmdFull.sent[0].payload), string(cmdSimple.sent[0].payload))
}

func TestCommandRejected_SessionStaysUsable(t *testing.T) {
	cmd := &stubCommandChannel{
		status: func(c protocol.Command) protocol.Status {
			if c == protocol.CmdSetJointImpedance {
				return protocol.StatusCommandNotPossible
			}
			return protocol.StatusSuccess
		},
	}
	r := newTestRobot(cmd, newStubStateStream())

	err := r.SetJointImpedance([7]float64{3000, 3000, 3000, 2500, 2500, 2000, 2000})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCommandRejected)
	var cmdErr *CommandError
	require.ErrorAs(t, err, &cmdErr)
	assert.Equal(t, protocol.CmdSetJointImpedance, cmdErr.Command)
	assert.Equal(t, protocol.StatusCommandNotPossible, cmdErr.Status)

	// An unrelated command on the same handle still succeeds.
	assert.NoError(t, r.SetGuidingMode([6]bool{true, true, true, false, false, false}, false))
}

func TestGetVirtualWall(t *testing.T) {
	cmd := &stubCommandChannel{
		payload: func(c protocol.Command) []byte {
			if c == protocol.CmdGetCartesianLimit {
				return []byte(`{"object_world_size":[1,2,3],"p_frame":[1,0,0,0,0,1,0,0,0,0,1,0,0,0,0,1],"active":true}`)
			}
			return nil
		},
	}
	r := newTestRobot(cmd, newStubStateStream())

	wall, err := r.GetVirtualWall(4)
	require.NoError(t, err)
	assert.Equal(t, int32(4), wall.ID)
	assert.Equal(t, [3]float64{1, 2, 3}, wall.ObjectWorldSize)
	assert.True(t, wall.Active)
}

func TestSetLoad_SendsPayload(t *testing.T) {
	cmd := &stubCommandChannel{}
	r := newTestRobot(cmd, newStubStateStream())

	require.NoError(t, r.SetLoad(0.73, [3]float64{0.01, 0, 0.05}, [9]float64{0.001, 0, 0, 0, 0.001, 0, 0, 0, 0.001}))
	require.Len(t, cmd.sent, 1)
	assert.Equal(t, protocol.CmdSetLoad, cmd.sent[0].cmd)
	assert.JSONEq(t,
		`{"mass":0.73,"F_x_Cload":[0.01,0,0.05],"load_inertia":[0.001,0,0,0,0.001,0,0,0,0.001]}`,
		string(cmd.sent[0].payload))
}

func TestRequestIDsIncrease(t *testing.T) {
	cmd := &stubCommandChannel{}
	r := newTestRobot(cmd, newStubStateStream())

	require.NoError(t, r.AutomaticErrorRecovery())
	require.NoError(t, r.SetCartesianImpedance([6]float64{2000, 2000, 2000, 200, 200, 200}))
	require.NoError(t, r.SetK([16]float64{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}))

	require.Len(t, cmd.sent, 3)
	assert.Less(t, cmd.sent[0].id, cmd.sent[1].id)
	assert.Less(t, cmd.sent[1].id, cmd.sent[2].id)
}
