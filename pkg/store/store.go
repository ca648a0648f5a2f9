package store

import (
	"time"

	"libraryapi/pkg/domain"
)

// Store defines persistence operations for books and loans.
type Store interface {
	// books
	SaveBook(domain.Book) (domain.Book, error)
	GetBook(id int64) (domain.Book, bool, error)
	GetBookByISBN(isbn string) (domain.Book, bool, error)
	HasBookISBN(isbn string) (bool, error)
	DeleteBook(id int64) error
	FindBooks(filter domain.BookFilter, page domain.PageRequest) (domain.Page[domain.Book], error)

	// loans
	SaveLoan(domain.Loan) (domain.Loan, error)
	GetLoan(id int64) (domain.Loan, bool, error)
	HasOpenLoan(bookID int64) (bool, error)
	ListLoansByBook(bookID int64, page domain.PageRequest) (domain.Page[domain.Loan], error)
	FindLoans(filter domain.LoanFilter, page domain.PageRequest) (domain.Page[domain.Loan], error)
	ListLateLoans(before time.Time) ([]domain.Loan, error)
}
