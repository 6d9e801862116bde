package httpserver

import (
	"errors"

	"github.com/gin-gonic/gin"

	"todoist-scheduler/internal/analytics"
	"todoist-scheduler/internal/lifeblock"
	"todoist-scheduler/internal/schedule"
	"todoist-scheduler/pkg/log"
)

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	// Server
	gin         *gin.Engine
	l           log.Logger
	port        int
	mode        string
	environment string

	// Scheduler domain
	runner   *schedule.Runner
	recorder analytics.Recorder
	blocks   lifeblock.Repository
}

// Config is the dependency bag passed to New().
type Config struct {
	Logger      log.Logger
	Port        int
	Mode        string
	Environment string

	// Scheduler domain
	Runner   *schedule.Runner
	Recorder analytics.Recorder
	Blocks   lifeblock.Repository
}

// New creates a new HTTPServer instance.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		l:           logger,
		gin:         gin.Default(),
		port:        cfg.Port,
		mode:        cfg.Mode,
		environment: cfg.Environment,
		runner:      cfg.Runner,
		recorder:    cfg.Recorder,
		blocks:      cfg.Blocks,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	return srv, nil
}

func (srv HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	if srv.runner == nil {
		return errors.New("scheduler runner is required")
	}
	return nil
}
