package server

import (
	"github.com/gin-gonic/gin"

	"github.com/yildizm/sentiscope/internal/logger"
	"github.com/yildizm/sentiscope/internal/sentiment"
)

// apiError is a failed /analyze outcome, independent of transport.
type apiError struct {
	status int
	detail string
	cause  error
}

// respondError logs and writes a {"detail": ...} body.
func (s *Server) respondError(c *gin.Context, status int, detail string) {
	fields := []logger.Field{
		logger.F("status", status),
		logger.F("path", c.Request.URL.Path),
		logger.F("method", c.Request.Method),
		logger.F("request_id", RequestIDFromContext(c)),
	}
	if status >= 500 {
		s.log.ErrorWithFields(detail, fields)
	} else {
		s.log.DebugWithFields(detail, fields)
	}

	c.AbortWithStatusJSON(status, sentiment.ErrorResponse{Detail: detail})
}
