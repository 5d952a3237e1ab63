// Package web provides a real-time dashboard for the trainer: a JSON
// status API, exercise controls, and websocket streams for state and
// camera frames.
package web

import (
	"log/slog"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"

	"github.com/formcoach/formcoach/pkg/hub"
)

// TrainerState is the dashboard's view of the running session.
type TrainerState struct {
	Exercise     string  `json:"exercise"`
	ExerciseName string  `json:"exercise_name"`
	Detected     bool    `json:"detected"`
	Reps         int     `json:"reps"`
	Phase        string  `json:"phase"`
	LeftAngle    float64 `json:"left_angle"`
	RightAngle   float64 `json:"right_angle"`
	Alternating  bool    `json:"alternating"`
	LeftReps     int     `json:"left_reps"`
	RightReps    int     `json:"right_reps"`
	NextSide     string  `json:"next_side,omitempty"`
	Missed       int     `json:"missed"`
	LastCue      string  `json:"last_cue"`
	FPS          float64 `json:"fps"`
}

// Server is the dashboard web server.
type Server struct {
	app    *fiber.App
	addr   string
	logger *slog.Logger

	state   TrainerState
	stateMu sync.RWMutex

	statusHub *hub.Hub
	frameHub  *hub.Hub

	// OnReset zeroes the rep counters of the active exercise.
	OnReset func()

	// OnSelectExercise switches the active exercise by id.
	OnSelectExercise func(id string) error

	// ListExercises returns the available exercise ids.
	ListExercises func() []string
}

// NewServer creates the dashboard server listening on addr.
func NewServer(addr string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		addr:      addr,
		logger:    logger,
		statusHub: hub.New("status", logger),
		frameHub:  hub.New("frames", logger),
	}

	app := fiber.New(fiber.Config{
		AppName:               "FormCoach Dashboard",
		DisableStartupMessage: true,
	})

	// CORS for local development
	app.Use(cors.New())

	app.Static("/", "./web")

	api := app.Group("/api")
	api.Get("/status", s.handleStatus)
	api.Get("/exercises", s.handleListExercises)
	api.Post("/exercise/:id", s.handleSelectExercise)
	api.Post("/reset", s.handleReset)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/status", websocket.New(s.statusHub.Serve))
	app.Get("/ws/camera", websocket.New(s.frameHub.Serve))

	s.app = app
	return s
}

// Start runs the hubs and blocks serving HTTP.
func (s *Server) Start() error {
	s.logger.Info("dashboard listening", "addr", s.addr)
	go s.statusHub.Run()
	go s.frameHub.Run()
	return s.app.Listen(s.addr)
}

// StartAsync starts the server in a goroutine.
func (s *Server) StartAsync() {
	go func() {
		if err := s.Start(); err != nil {
			s.logger.Error("dashboard server stopped", "error", err)
		}
	}()
}

// UpdateState applies update to the trainer state and broadcasts the
// new snapshot to status clients.
func (s *Server) UpdateState(update func(*TrainerState)) {
	s.stateMu.Lock()
	update(&s.state)
	state := s.state
	s.stateMu.Unlock()

	if err := s.statusHub.BroadcastJSON(state); err != nil {
		s.logger.Warn("status broadcast failed", "error", err)
	}
}

// State returns a copy of the current trainer state.
func (s *Server) State() TrainerState {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.state
}

// SendFrame broadcasts an encoded camera frame to connected clients.
func (s *Server) SendFrame(jpeg []byte) {
	if s.frameHub.ClientCount() == 0 {
		return
	}
	s.frameHub.BroadcastBinary(jpeg)
}

// Shutdown gracefully stops the web server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
