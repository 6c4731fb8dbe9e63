package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) listSecurityEvents(c *gin.Context) {
	if actor := c.Query("actor_id"); actor != "" {
		events, err := s.security.FindByActor(c.Request.Context(), actor)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"events": events})
		return
	}

	events, err := s.security.FindAll(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}

func (s *Server) reset(c *gin.Context) {
	if err := s.flow.Reset(c.Request.Context()); err != nil {
		AbortWithError(c, err)
		return
	}
	s.log.Info("sandbox reset complete")
	c.JSON(http.StatusOK, gin.H{"status": "reset"})
}
