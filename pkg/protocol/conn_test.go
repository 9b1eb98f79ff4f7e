package protocol

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var upgrader = websocket.Upgrader{}

// newTestController runs a minimal controller double: the command endpoint
// answers every request with success (echoing the id), the state endpoint
// pushes two states and forwards received commands.
func newTestController(t *testing.T, commands chan<- RobotCommand) string {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("/command", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			var req Request
			if err := json.Unmarshal(data, &req); err != nil {
				return
			}
			reply := Reply{ID: req.ID, Status: StatusSuccess}
			if req.Command == CmdConnect {
				payload, _ := json.Marshal(ConnectReply{Version: Version})
				reply.Payload = payload
			}
			out, _ := json.Marshal(reply)
			if err := conn.WriteMessage(websocket.TextMessage, out); err != nil {
				return
			}
		}
	})

	mux.HandleFunc("/state", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for i := uint64(1); i <= 2; i++ {
			state := RawState{
				MessageID:      i,
				Time:           i,
				ControllerMode: ControllerModeJointImpedance,
				RobotMode:      RobotModeIdle,
			}
			data, _ := json.Marshal(state)
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		}
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			var cmd RobotCommand
			if err := json.Unmarshal(data, &cmd); err != nil {
				return
			}
			commands <- cmd
		}
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return strings.TrimPrefix(srv.URL, "http://")
}

func TestDial_CommandRoundTrip(t *testing.T) {
	commands := make(chan RobotCommand, 1)
	addr := newTestController(t, commands)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	cmdConn, stateConn, err := Dial(ctx, addr)
	require.NoError(t, err)
	defer cmdConn.Close()
	defer stateConn.Close()

	payload, _ := json.Marshal(ConnectRequest{Version: Version})
	require.NoError(t, cmdConn.Send(1, CmdConnect, payload))
	status, body, err := cmdConn.ReceiveMatching(1)
	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, status)

	var reply ConnectReply
	require.NoError(t, json.Unmarshal(body, &reply))
	assert.Equal(t, Version, reply.Version)
}

func TestDial_StateRoundTrip(t *testing.T) {
	commands := make(chan RobotCommand, 1)
	addr := newTestController(t, commands)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	cmdConn, stateConn, err := Dial(ctx, addr)
	require.NoError(t, err)
	defer cmdConn.Close()
	defer stateConn.Close()

	first, err := stateConn.ReceiveNext()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), first.MessageID)

	second, err := stateConn.ReceiveNext()
	require.NoError(t, err)
	assert.Equal(t, uint64(2), second.MessageID)

	out := &RobotCommand{
		MessageID: second.MessageID,
		Motion:    MotionCommand{Q: [7]float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7}},
	}
	require.NoError(t, stateConn.SendCommand(out))

	select {
	case got := <-commands:
		assert.Equal(t, out.MessageID, got.MessageID)
		assert.Equal(t, out.Motion.Q, got.Motion.Q)
	case <-time.After(5 * time.Second):
		t.Fatal("controller never received the command")
	}
}

func TestDial_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	_, _, err := Dial(ctx, "127.0.0.1:1")
	assert.Error(t, err)
}
