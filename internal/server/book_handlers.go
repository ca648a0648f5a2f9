package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"libraryapi/pkg/domain"
)

func (s *Server) handleCreateBook(c *gin.Context) {
	var req createBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	book, err := s.books.Save(domain.Book{
		Title:  req.Title,
		Author: req.Author,
		ISBN:   req.ISBN,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, bookToResponse(book))
}

func (s *Server) handleGetBook(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		badRequest(c, "invalid book id")
		return
	}
	book, found, err := s.books.GetByID(id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if !found {
		notFound(c, "book not found")
		return
	}
	c.JSON(http.StatusOK, bookToResponse(book))
}

// handleUpdateBook replaces title and author; the isbn never changes.
func (s *Server) handleUpdateBook(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		badRequest(c, "invalid book id")
		return
	}
	var req updateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	book, found, err := s.books.GetByID(id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if !found {
		notFound(c, "book not found")
		return
	}
	book.Title = req.Title
	book.Author = req.Author
	updated, err := s.books.Update(book)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookToResponse(updated))
}

func (s *Server) handleDeleteBook(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		badRequest(c, "invalid book id")
		return
	}
	book, found, err := s.books.GetByID(id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if !found {
		notFound(c, "book not found")
		return
	}
	if err := s.books.Delete(book); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleFindBooks(c *gin.Context) {
	filter := domain.BookFilter{
		Title:  c.Query("title"),
		Author: c.Query("author"),
		ISBN:   c.Query("isbn"),
	}
	page, err := s.books.Find(filter, parsePage(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, pageToResponse(page, bookToResponse))
}

func (s *Server) handleLoansByBook(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		badRequest(c, "invalid book id")
		return
	}
	book, found, err := s.books.GetByID(id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if !found {
		notFound(c, "book not found")
		return
	}
	page, err := s.loans.ByBook(book, parsePage(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, pageToResponse(page, loanToResponse))
}
