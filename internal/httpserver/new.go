package httpserver

import (
	"errors"

	"github.com/gin-gonic/gin"

	connectHTTP "sales-scheduler/internal/credential/delivery/http"
	"sales-scheduler/internal/middleware"
	schedulingHTTP "sales-scheduler/internal/scheduling/delivery/http"
	"sales-scheduler/pkg/log"
)

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	// Server
	gin         *gin.Engine
	l           log.Logger
	port        int
	mode        string
	environment string

	// Domains
	schedulingHandler schedulingHTTP.Handler
	connectHandler    connectHTTP.Handler
	mw                middleware.Middleware
}

// Config is the dependency bag passed to New().
type Config struct {
	Logger      log.Logger
	Port        int
	Mode        string
	Environment string

	SchedulingHandler schedulingHTTP.Handler
	ConnectHandler    connectHTTP.Handler
	Middleware        middleware.Middleware
}

// New creates a new HTTPServer instance.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		l:                 logger,
		gin:               gin.Default(),
		port:              cfg.Port,
		mode:              cfg.Mode,
		environment:       cfg.Environment,
		schedulingHandler: cfg.SchedulingHandler,
		connectHandler:    cfg.ConnectHandler,
		mw:                cfg.Middleware,
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
	if srv.schedulingHandler == nil {
		return errors.New("scheduling handler is required")
	}
	if srv.connectHandler == nil {
		return errors.New("connect handler is required")
	}
	return nil
}
