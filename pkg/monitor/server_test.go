package monitor

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openmanip/go-panda/pkg/robot"
)

func TestStateEndpoint_EmptyUntilFirstCycle(t *testing.T) {
	srv := NewServer("0")

	resp, err := srv.app.Test(httptest.NewRequest("GET", "/api/state", nil))
	require.NoError(t, err)
	assert.Equal(t, 503, resp.StatusCode)
}

func TestStateEndpoint_ReturnsLatest(t *testing.T) {
	srv := NewServer("0")

	srv.Publish(&robot.RobotState{
		Q:              [7]float64{0, -0.785, 0, -2.356, 0, 1.571, 0.785},
		Time:           42 * time.Millisecond,
		ControllerMode: "joint_impedance",
		RobotMode:      "idle",
	})
	srv.Publish(&robot.RobotState{
		Q:              [7]float64{0.1, -0.785, 0, -2.356, 0, 1.571, 0.785},
		Time:           43 * time.Millisecond,
		ControllerMode: "joint_impedance",
		RobotMode:      "move",
	})

	resp, err := srv.app.Test(httptest.NewRequest("GET", "/api/state", nil))
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var rec StateRecord
	require.NoError(t, json.Unmarshal(body, &rec))
	assert.Equal(t, 0.1, rec.Q[0])
	assert.Equal(t, int64(43), rec.TimeMs)
	assert.Equal(t, "move", rec.RobotMode)
	assert.Equal(t, uint64(2), srv.Cycles())
}

func TestStatusEndpoint(t *testing.T) {
	srv := NewServer("0")
	srv.Publish(&robot.RobotState{})

	resp, err := srv.app.Test(httptest.NewRequest("GET", "/api/status", nil))
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var status struct {
		Clients int    `json:"clients"`
		Cycles  uint64 `json:"cycles"`
	}
	require.NoError(t, json.Unmarshal(body, &status))
	assert.Equal(t, 0, status.Clients)
	assert.Equal(t, uint64(1), status.Cycles)
}
