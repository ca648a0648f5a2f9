package domain

import "time"

type Book struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	ISBN   string `json:"isbn"`
}

// Loan references exactly one book. Returned is tri-state: nil means the
// returned flag was never set.
type Loan struct {
	ID       int64     `json:"id"`
	Customer string    `json:"customer"`
	BookID   int64     `json:"bookId"`
	Book     Book      `json:"book"`
	LoanDate time.Time `json:"loanDate"`
	Returned *bool     `json:"returned"`
}

// Open reports whether the loan still counts against its book.
func (l Loan) Open() bool {
	return l.Returned == nil || !*l.Returned
}

// BookFilter carries filter-by-example fields for book listings.
// Empty fields match anything; non-empty fields match as case-insensitive
// substrings, combined with AND.
type BookFilter struct {
	Title  string
	Author string
	ISBN   string
}

// LoanFilter matches loans whose book isbn equals ISBN or whose customer
// equals Customer. The OR comes straight from the original query.
type LoanFilter struct {
	ISBN     string
	Customer string
}

// PageRequest selects a zero-based page of a listing.
type PageRequest struct {
	Number int
	Size   int
}

func (p PageRequest) Offset() int {
	if p.Number < 0 {
		return 0
	}
	return p.Number * p.Size
}

// Page is the result envelope for paged listings.
type Page[T any] struct {
	Content       []T
	Number        int
	Size          int
	TotalElements int64
}

func (p Page[T]) TotalPages() int {
	if p.Size <= 0 {
		return 0
	}
	pages := p.TotalElements / int64(p.Size)
	if p.TotalElements%int64(p.Size) != 0 {
		pages++
	}
	return int(pages)
}
