// Package monitor provides a real-time web dashboard for a robot handle.
// It serves the most recent robot state over HTTP and streams every cycle
// to websocket clients through a broadcast hub.
package monitor

import (
	"fmt"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"

	"github.com/openmanip/go-panda/pkg/hub"
	"github.com/openmanip/go-panda/pkg/robot"
)

// StateRecord is the JSON shape streamed to dashboard clients.
type StateRecord struct {
	Q              [7]float64  `json:"q"`
	Dq             [7]float64  `json:"dq"`
	TauJ           [7]float64  `json:"tau_J"`
	OTEE           [16]float64 `json:"O_T_EE"`
	Elbow          [2]float64  `json:"elbow"`
	TimeMs         int64       `json:"time_ms"`
	ControllerMode string      `json:"controller_mode"`
	RobotMode      string      `json:"robot_mode"`
	Errors         []string    `json:"errors,omitempty"`
}

// Server is the dashboard server.
type Server struct {
	app  *fiber.App
	port string

	stateHub *hub.Hub

	mu     sync.RWMutex
	latest *StateRecord
	cycles uint64
}

// NewServer creates a dashboard server listening on the given port.
func NewServer(port string) *Server {
	s := &Server{
		port:     port,
		stateHub: hub.New("state"),
	}

	app := fiber.New(fiber.Config{
		AppName:               "Panda Monitor",
		DisableStartupMessage: true,
	})

	// CORS for local development
	app.Use(cors.New())

	api := app.Group("/api")
	api.Get("/state", s.handleState)
	api.Get("/status", s.handleStatus)

	// WebSocket upgrade middleware
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/state", websocket.New(s.handleStateWS))

	s.app = app
	return s
}

// Start runs the hub and the HTTP server. Blocks until the server stops.
func (s *Server) Start() error {
	go s.stateHub.Run()
	return s.app.Listen(fmt.Sprintf(":%s", s.port))
}

// Shutdown stops the HTTP server gracefully.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// Publish records one state cycle and broadcasts it to websocket clients.
func (s *Server) Publish(state *robot.RobotState) {
	rec := &StateRecord{
		Q:              state.Q,
		Dq:             state.Dq,
		TauJ:           state.TauJ,
		OTEE:           state.OTEE,
		Elbow:          state.Elbow,
		TimeMs:         state.Time.Milliseconds(),
		ControllerMode: string(state.ControllerMode),
		RobotMode:      string(state.RobotMode),
		Errors:         state.Errors,
	}

	s.mu.Lock()
	s.latest = rec
	s.cycles++
	s.mu.Unlock()

	s.stateHub.BroadcastJSON(rec)
}

// Cycles returns the number of published state cycles.
func (s *Server) Cycles() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cycles
}

func (s *Server) handleState(c *fiber.Ctx) error {
	s.mu.RLock()
	latest := s.latest
	s.mu.RUnlock()
	if latest == nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "no state received yet")
	}
	return c.JSON(latest)
}

func (s *Server) handleStatus(c *fiber.Ctx) error {
	s.mu.RLock()
	cycles := s.cycles
	s.mu.RUnlock()
	return c.JSON(fiber.Map{
		"clients": s.stateHub.ClientCount(),
		"cycles":  cycles,
		"time":    time.Now().Format(time.RFC3339),
	})
}

func (s *Server) handleStateWS(conn *websocket.Conn) {
	client := hub.NewClient(s.stateHub, conn)
	client.Run()
}
