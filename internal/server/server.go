// Package server exposes the delta engine over HTTP.
//
// Ownership boundary:
// - request/response shapes and input limits
// - auth and CORS at the edge
// - mapping core errors to status codes
//
// The server never touches the wire format itself; it hands byte buffers to
// the delta package and returns what comes back.
package server

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/deltakit/deltakit/internal/observability"
)

// Config holds the runtime settings of one deltad instance.
type Config struct {
	Addr          string
	CorsOrigins   []string
	AuthToken     string
	MaxInputBytes int
	VerifyCopy    bool
}

func DefaultConfig() Config {
	return Config{
		Addr:          ":9200",
		MaxInputBytes: 8 * 1024 * 1024,
		VerifyCopy:    true,
	}
}

type Server struct {
	cfg     Config
	logger  zerolog.Logger
	router  *gin.Engine
	started time.Time
}

func New(cfg Config, logger zerolog.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	s := &Server{
		cfg:     cfg,
		logger:  logger,
		router:  gin.New(),
		started: time.Now(),
	}

	s.router.Use(gin.Recovery())
	s.router.Use(observability.RequestLogger(logger))
	s.router.Use(observability.RequestMetrics())
	if len(cfg.CorsOrigins) > 0 {
		s.router.Use(cors.New(cors.Config{
			AllowOrigins: cfg.CorsOrigins,
			AllowMethods: []string{"GET", "POST"},
			AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
			MaxAge:       12 * time.Hour,
		}))
	}

	s.registerRoutes()
	return s
}

// Run blocks serving HTTP on the configured address.
func (s *Server) Run() error {
	s.logger.Info().Str("addr", s.cfg.Addr).Msg("deltad listening")
	return s.router.Run(s.cfg.Addr)
}

// Router exposes the handler for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}
