package server

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"libraryapi/pkg/domain"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type createBookRequest struct {
	Title  string `json:"title" binding:"required"`
	Author string `json:"author" binding:"required"`
	ISBN   string `json:"isbn" binding:"required"`
}

type updateBookRequest struct {
	Title  string `json:"title"`
	Author string `json:"author"`
}

type createLoanRequest struct {
	ISBN     string `json:"isbn"`
	Customer string `json:"customer"`
}

type returnedLoanRequest struct {
	Returned *bool `json:"returned"`
}

type bookResponse struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	ISBN   string `json:"isbn"`
}

type loanResponse struct {
	ID       int64        `json:"id"`
	Customer string       `json:"customer"`
	LoanDate string       `json:"loanDate"`
	Returned *bool        `json:"returned"`
	Book     bookResponse `json:"book"`
}

type pageResponse[T any] struct {
	Content       []T   `json:"content"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
}

func bookToResponse(b domain.Book) bookResponse {
	return bookResponse{
		ID:     b.ID,
		Title:  b.Title,
		Author: b.Author,
		ISBN:   b.ISBN,
	}
}

func loanToResponse(l domain.Loan) loanResponse {
	return loanResponse{
		ID:       l.ID,
		Customer: l.Customer,
		LoanDate: l.LoanDate.Format("2006-01-02"),
		Returned: l.Returned,
		Book:     bookToResponse(l.Book),
	}
}

func loansToResponses(loans []domain.Loan) []loanResponse {
	res := make([]loanResponse, 0, len(loans))
	for _, l := range loans {
		res = append(res, loanToResponse(l))
	}
	return res
}

func pageToResponse[T, U any](page domain.Page[T], mapper func(T) U) pageResponse[U] {
	content := make([]U, 0, len(page.Content))
	for _, item := range page.Content {
		content = append(content, mapper(item))
	}
	return pageResponse[U]{
		Content:       content,
		Page:          page.Number,
		Size:          page.Size,
		TotalElements: page.TotalElements,
		TotalPages:    page.TotalPages(),
	}
}

// parsePage reads page/size query parameters with sane bounds.
func parsePage(c *gin.Context) domain.PageRequest {
	number, err := strconv.Atoi(c.DefaultQuery("page", "0"))
	if err != nil || number < 0 {
		number = 0
	}
	size, err := strconv.Atoi(c.DefaultQuery("size", strconv.Itoa(defaultPageSize)))
	if err != nil || size <= 0 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	return domain.PageRequest{Number: number, Size: size}
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
