package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleGetSettings(c *gin.Context) {
	cfg, err := s.store.Settings()
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not load settings", Details: err.Error()})
		return
	}
	c.JSON(http.StatusOK, cfg)
}

func (s *Server) handleUpdateSettings(c *gin.Context) {
	// Settings arrive as a partial key-value map; unknown keys are
	// ignored by the store.
	var values map[string]string
	if err := c.ShouldBindJSON(&values); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request", Details: err.Error()})
		return
	}
	if err := s.store.UpdateSettings(values); err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not update settings", Details: err.Error()})
		return
	}
	cfg, err := s.store.Settings()
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not load settings", Details: err.Error()})
		return
	}
	c.JSON(http.StatusOK, cfg)
}
