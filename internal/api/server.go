// Package api exposes the layout and production services over HTTP.
package api

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/ayrtondeleonv02/COLOR-PRINT/internal/nesting"
	"github.com/ayrtondeleonv02/COLOR-PRINT/internal/service"
)

// Server wires the nesting engine behind a gin router.
type Server struct {
	mu     sync.Mutex // the engine caches are not safe for concurrent use
	engine *nesting.Engine
	router *gin.Engine
}

// NewServer builds the router around a single nesting engine. Handlers
// serialize engine access.
func NewServer(engine *nesting.Engine) *Server {
	s := &Server{engine: engine, router: gin.Default()}

	v1 := s.router.Group("/api/v1")
	v1.POST("/layout", s.handleLayout)
	v1.POST("/production", s.handleProduction)
	s.router.GET("/healthz", s.handleHealth)

	return s
}

// Router returns the underlying gin handler for mounting or testing.
func (s *Server) Router() *gin.Engine { return s.router }

// Run starts the HTTP server on the given address.
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

func (s *Server) handleLayout(c *gin.Context) {
	var req service.LayoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.mu.Lock()
	resp := service.OptimizeLayout(s.engine, req)
	s.mu.Unlock()
	status := http.StatusOK
	if !resp.Success {
		status = http.StatusUnprocessableEntity
	}
	c.JSON(status, resp)
}

func (s *Server) handleProduction(c *gin.Context) {
	var req service.ProductionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.mu.Lock()
	resp := service.OptimizeProduction(s.engine, req)
	s.mu.Unlock()
	status := http.StatusOK
	if !resp.Success {
		status = http.StatusUnprocessableEntity
	}
	c.JSON(status, resp)
}

func (s *Server) handleHealth(c *gin.Context) {
	s.mu.Lock()
	hits, misses := s.engine.CacheStats()
	evals := s.engine.Evaluations()
	s.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{
		"status":       "ok",
		"cache_hits":   hits,
		"cache_misses": misses,
		"evaluations":  evals,
	})
}
