package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rigalabs/invoice-manager/internal/model"
)

func (s *Server) handleListServices(c *gin.Context) {
	page, size := pagination(c)
	result, err := s.store.Services(page, size, c.Query("search"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not list services", Details: err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleGetService(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	svc, err := s.store.Service(id)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "service not found"})
		return
	}
	c.JSON(http.StatusOK, svc)
}

func serviceFromRequest(req *ServiceRequest) model.Service {
	unit := req.Unit
	if unit == "" {
		unit = "gab."
	}
	return model.Service{
		Name:         req.Name,
		Unit:         unit,
		DefaultPrice: req.DefaultPrice,
		VATRate:      req.VATRate,
	}
}

func (s *Server) handleCreateService(c *gin.Context) {
	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request", Details: err.Error()})
		return
	}
	svc := serviceFromRequest(&req)
	if err := s.store.CreateService(&svc); err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not create service", Details: err.Error()})
		return
	}
	c.JSON(http.StatusCreated, svc)
}

func (s *Server) handleUpdateService(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request", Details: err.Error()})
		return
	}
	existing, err := s.store.Service(id)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "service not found"})
		return
	}
	updated := serviceFromRequest(&req)
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt
	if err := s.store.UpdateService(&updated); err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not update service", Details: err.Error()})
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (s *Server) handleDeleteService(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	err := s.store.DeleteService(id)
	if errors.Is(err, model.ErrNotFound) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "service not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not delete service", Details: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
