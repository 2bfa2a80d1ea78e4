package server

import (
	"github.com/gin-gonic/gin"
)

func (s *Server) registerRoutes() {
	s.engine.GET("/", s.handleRoot)
	s.engine.POST("/", s.handleForm)
	s.engine.GET("/health", s.handleHealth)
	s.engine.POST("/analyze", s.handleAnalyze)
	s.engine.GET("/metrics", gin.WrapH(s.metrics.Handler()))
}
