// Package server exposes the invoice manager over HTTP: auth, client
// and service CRUD, invoices with e-invoice export, PDF download,
// email delivery, Drive sync, and gateway submission.
package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/rigalabs/invoice-manager/internal/auth"
	"github.com/rigalabs/invoice-manager/internal/store"
)

// Config holds server configuration.
type Config struct {
	Address      string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Debug        bool
}

// Server is the HTTP API server.
type Server struct {
	config *Config
	router *gin.Engine
	store  *store.Store
}

// NewServer creates the API server on top of an opened store.
func NewServer(config *Config, st *store.Store) *Server {
	if !config.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	if config.Debug {
		router.Use(gin.Logger())
	}

	s := &Server{
		config: config,
		router: router,
		store:  st,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)
	s.router.POST("/api/auth/login", s.handleLogin)

	api := s.router.Group("/api", s.requireAuth)
	{
		clients := api.Group("/clients")
		{
			clients.GET("", s.handleListClients)
			clients.POST("", s.handleCreateClient)
			clients.GET("/:id", s.handleGetClient)
			clients.PUT("/:id", s.handleUpdateClient)
			clients.DELETE("/:id", s.handleDeleteClient)
		}

		services := api.Group("/services")
		{
			services.GET("", s.handleListServices)
			services.POST("", s.handleCreateService)
			services.GET("/:id", s.handleGetService)
			services.PUT("/:id", s.handleUpdateService)
			services.DELETE("/:id", s.handleDeleteService)
		}

		invoices := api.Group("/invoices")
		{
			invoices.GET("", s.handleListInvoices)
			invoices.POST("", s.handleCreateInvoice)
			invoices.GET("/:id", s.handleGetInvoice)
			invoices.PUT("/:id", s.handleUpdateInvoice)
			invoices.DELETE("/:id", s.handleDeleteInvoice)
			invoices.POST("/bulk-delete", s.handleBulkDeleteInvoices)
			invoices.GET("/export/csv", s.handleExportCSV)
			invoices.POST("/export/xml", s.handleExportXML)
			invoices.POST("/send-eds", s.handleSendEDS)
			invoices.GET("/:id/pdf", s.handleDownloadPDF)
			invoices.POST("/:id/email", s.handleEmailInvoice)
			invoices.POST("/sync-gdrive", s.handleSyncGDrive)
		}

		api.GET("/settings", s.handleGetSettings)
		api.PUT("/settings", s.handleUpdateSettings)
		api.GET("/stats", s.handleStats)
		api.PUT("/profile", s.handleUpdateProfile)
	}
}

// Run starts the HTTP server.
func (s *Server) Run() error {
	srv := &http.Server{
		Addr:         s.config.Address,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}
	log.Info().Str("address", s.config.Address).Msg("http server listening")
	return srv.ListenAndServe()
}

// Handler returns the http.Handler for use with custom servers and
// tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// requireAuth accepts a bearer token or a "token" cookie.
func (s *Server) requireAuth(c *gin.Context) {
	token := ""
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
		token = strings.TrimPrefix(h, "Bearer ")
	}
	if token == "" {
		token, _ = c.Cookie("token")
	}
	if token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "not authenticated"})
		return
	}

	username, err := auth.VerifyToken(token)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid or expired token"})
		return
	}
	c.Set("username", username)
	c.Next()
}

func (s *Server) handleLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request", Details: err.Error()})
		return
	}

	user, err := s.store.UserByName(req.Username)
	if err != nil || !auth.CheckPassword(req.Password, user.PasswordHash) {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: auth.ErrBadCredentials.Error()})
		return
	}

	token, err := auth.CreateToken(user.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not issue token"})
		return
	}
	c.JSON(http.StatusOK, TokenResponse{AccessToken: token, TokenType: "bearer"})
}

func (s *Server) handleUpdateProfile(c *gin.Context) {
	var req ProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request", Details: err.Error()})
		return
	}

	hash := ""
	if req.Password != "" {
		h, err := auth.HashPassword(req.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not hash password"})
			return
		}
		hash = h
	}

	user, err := s.store.UpdateUser(c.GetString("username"), req.Username, hash)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "user not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"username": user.Username})
}

func (s *Server) handleStats(c *gin.Context) {
	stats, err := s.store.Stats(time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not compute stats", Details: err.Error()})
		return
	}
	c.JSON(http.StatusOK, stats)
}
