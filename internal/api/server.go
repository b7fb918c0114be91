package api

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/jeysiell/SinalTech/internal/assets"
	"github.com/jeysiell/SinalTech/internal/config"
	database "github.com/jeysiell/SinalTech/internal/db"
	"github.com/jeysiell/SinalTech/internal/schedule"
	"github.com/jeysiell/SinalTech/internal/scheduler"
)

// Server exposes the bell daemon over HTTP: schedule CRUD proxied to
// the remote store, live scheduler status for the UI, chime listing
// and the firing history.
type Server struct {
	cfg     *config.Config
	store   *schedule.Store
	cache   *schedule.Cache
	sched   *scheduler.Scheduler
	library *assets.Library
	journal *database.Journal
	router  *gin.Engine
}

func New(cfg *config.Config, store *schedule.Store, cache *schedule.Cache, sched *scheduler.Scheduler, library *assets.Library, journal *database.Journal) *Server {
	if cfg.Server.LogLevel != "debug" {
		gin.SetMode(gin.TestMode)
	}

	s := &Server{
		cfg:     cfg,
		store:   store,
		cache:   cache,
		sched:   sched,
		library: library,
		journal: journal,
		router:  gin.Default(),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddleware() {
	// CORS Configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}

	s.router.Use(cors.New(corsConfig))
}

func (s *Server) setupRoutes() {
	// Health Check
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "sinaltech"})
	})

	// API Group
	v1 := s.router.Group("/api/v1")
	{
		v1.GET("/status", s.GetStatus)
		v1.GET("/schedule", s.GetSchedule)
		v1.GET("/schedule/:period", s.GetPeriod)
		v1.POST("/schedule/:period", s.CreateSignal)
		v1.PUT("/schedule/:period/:time", s.UpdateSignal)
		v1.DELETE("/schedule/:period/:time", s.DeleteSignal)
		v1.POST("/reload", s.ReloadSchedule)
		v1.GET("/assets", s.GetAssets)
		v1.GET("/history", s.GetHistory)
	}
}

// Start runs the server on the configured port
func (s *Server) Start(addr string) error {
	return s.router.Run(addr)
}
