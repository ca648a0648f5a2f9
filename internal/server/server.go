package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"libraryapi/internal/app"
	"libraryapi/internal/util"
)

// Config wires required dependencies for the HTTP server.
type Config struct {
	Books *app.Books
	Loans *app.Loans
}

// Server exposes the HTTP endpoints of the library service.
type Server struct {
	books  *app.Books
	loans  *app.Loans
	engine *gin.Engine
}

// New constructs the server with routes configured.
func New(cfg Config) *Server {
	gin.SetMode(gin.ReleaseMode)
	s := &Server{
		books:  cfg.Books,
		loans:  cfg.Loans,
		engine: gin.New(),
	}
	s.routes()
	return s
}

// Router returns the configured handler.
func (s *Server) Router() http.Handler {
	return util.WithRequestID(util.WithRequestLog("library", util.WithSecurityHeaders(util.WithCORS(s.engine))))
}

func (s *Server) routes() {
	s.engine.GET("/healthz", s.handleHealth)

	api := s.engine.Group("/api")

	books := api.Group("/books")
	books.POST("", s.handleCreateBook)
	books.GET("", s.handleFindBooks)
	books.GET("/:id", s.handleGetBook)
	books.PUT("/:id", s.handleUpdateBook)
	books.DELETE("/:id", s.handleDeleteBook)
	books.GET("/:id/loans", s.handleLoansByBook)

	loans := api.Group("/loans")
	loans.POST("", s.handleCreateLoan)
	loans.GET("", s.handleFindLoans)
	loans.GET("/late", s.handleLateLoans)
	loans.PATCH("/:id", s.handleReturnLoan)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
