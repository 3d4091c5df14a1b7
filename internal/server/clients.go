package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rigalabs/invoice-manager/internal/model"
)

func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
		return 0, false
	}
	return uint(id), true
}

func pagination(c *gin.Context) (page, size int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	size, _ = strconv.Atoi(c.DefaultQuery("size", "10"))
	if size < 1 {
		size = 10
	}
	return page, size
}

func (s *Server) handleListClients(c *gin.Context) {
	page, size := pagination(c)
	result, err := s.store.Clients(page, size, c.Query("search"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not list clients", Details: err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleGetClient(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	client, err := s.store.Client(id)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "client not found"})
		return
	}
	c.JSON(http.StatusOK, client)
}

func clientFromRequest(req *ClientRequest) model.Client {
	return model.Client{
		Name:         req.Name,
		RegNumber:    req.RegNumber,
		VATNumber:    req.VATNumber,
		LegalAddress: req.LegalAddress,
		PostalCode:   req.PostalCode,
		BankName:     req.BankName,
		BankSWIFT:    req.BankSWIFT,
		BankAccount:  req.BankAccount,
		Email:        req.Email,
	}
}

func (s *Server) handleCreateClient(c *gin.Context) {
	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request", Details: err.Error()})
		return
	}
	client := clientFromRequest(&req)
	if err := s.store.CreateClient(&client); err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not create client", Details: err.Error()})
		return
	}
	c.JSON(http.StatusCreated, client)
}

func (s *Server) handleUpdateClient(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request", Details: err.Error()})
		return
	}
	existing, err := s.store.Client(id)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "client not found"})
		return
	}
	updated := clientFromRequest(&req)
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt
	if err := s.store.UpdateClient(&updated); err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not update client", Details: err.Error()})
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (s *Server) handleDeleteClient(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	err := s.store.DeleteClient(id)
	if errors.Is(err, model.ErrNotFound) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "client not found"})
		return
	}
	if err != nil {
		// Clients with invoices are protected by the foreign key.
		c.JSON(http.StatusConflict, ErrorResponse{Error: "could not delete client", Details: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
