package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"libraryapi/pkg/domain"
)

// handleCreateLoan resolves the book by isbn and opens a loan dated today.
// The success body is the bare loan identifier.
func (s *Server) handleCreateLoan(c *gin.Context) {
	var req createLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	book, found, err := s.books.GetByISBN(req.ISBN)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if !found {
		badRequest(c, "Book not found for passed isbn")
		return
	}
	loan, err := s.loans.Save(domain.Loan{
		Customer: req.Customer,
		BookID:   book.ID,
		Book:     book,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, loan.ID)
}

// handleReturnLoan sets the returned flag and nothing else.
func (s *Server) handleReturnLoan(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		badRequest(c, "invalid loan id")
		return
	}
	var req returnedLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	loan, found, err := s.loans.GetByID(id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if !found {
		notFound(c, "loan not found")
		return
	}
	loan.Returned = req.Returned
	if _, err := s.loans.Update(loan); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (s *Server) handleFindLoans(c *gin.Context) {
	filter := domain.LoanFilter{
		ISBN:     c.Query("isbn"),
		Customer: c.Query("customer"),
	}
	page, err := s.loans.Find(filter, parsePage(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, pageToResponse(page, loanToResponse))
}

func (s *Server) handleLateLoans(c *gin.Context) {
	late, err := s.loans.Late()
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, loansToResponses(late))
}
