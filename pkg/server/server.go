// Package server exposes the projects of a StoreManager over a REST API.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/duynguyendang/ontograph/internal/manager"
	"github.com/duynguyendang/ontograph/pkg/service"
)

// Server holds the state for the REST API server.
type Server struct {
	manager      *manager.StoreManager
	graphService *service.GraphService
	router       *gin.Engine
}

// NewServer creates a new Server instance. Metrics are served from
// gatherer, or from the default Prometheus registry when it is nil.
func NewServer(mgr *manager.StoreManager, gatherer prometheus.Gatherer) *Server {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	r := gin.Default()
	s := &Server{
		manager:      mgr,
		graphService: service.NewGraphService(mgr),
		router:       r,
	}
	s.setupRoutes(gatherer)
	return s
}

// Handler returns the HTTP handler of the API.
func (s *Server) Handler() http.Handler { return s.router }

// Run starts the server on the specified address.
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

func (s *Server) setupRoutes(gatherer prometheus.Gatherer) {
	s.router.GET("/health", s.healthCheck)
	s.router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	v1 := s.router.Group("/v1")
	v1.GET("/projects", s.handleProjects)
	v1.POST("/projects", s.handleCreateProject)
	v1.GET("/shapes", s.handleShapes)
	v1.GET("/axioms/:shape", s.handleAxioms)
	v1.GET("/triples", s.handleTriples)
	v1.POST("/triples", s.handleAddTriples)
	v1.DELETE("/triples", s.handleDeleteTriples)
	v1.GET("/stats", s.handleStats)
	v1.POST("/query", s.handleQuery)
	v1.GET("/graph", s.handleGraph)
	v1.GET("/path", s.handlePath)
	v1.GET("/describe", s.handleDescribe)
}

// Health check
func (s *Server) healthCheck(c *gin.Context) {
	c.Status(http.StatusOK)
}
