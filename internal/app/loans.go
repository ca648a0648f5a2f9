package app

import (
	"fmt"
	"time"

	"libraryapi/pkg/domain"
	"libraryapi/pkg/store"
)

// lateLoanDays is how many days a loan may stay open before counting as late.
const lateLoanDays = 4

// Loans is the application service for loan records.
type Loans struct {
	store store.Store
	now   func() time.Time
}

// NewLoans constructs the loan service over the given store.
func NewLoans(st store.Store) *Loans {
	return &Loans{store: st, now: time.Now}
}

// Save persists a new loan dated today. A book with an open loan is rejected
// before the store is touched.
func (s *Loans) Save(loan domain.Loan) (domain.Loan, error) {
	open, err := s.store.HasOpenLoan(loan.BookID)
	if err != nil {
		return domain.Loan{}, fmt.Errorf("check open loan: %w", err)
	}
	if open {
		return domain.Loan{}, domain.ErrBookLoaned
	}
	if loan.LoanDate.IsZero() {
		loan.LoanDate = s.today()
	}
	return s.store.SaveLoan(loan)
}

// GetByID returns the loan or not-found.
func (s *Loans) GetByID(id int64) (domain.Loan, bool, error) {
	return s.store.GetLoan(id)
}

// Update persists the loan's current field values. Only the returned flag
// changes in practice.
func (s *Loans) Update(loan domain.Loan) (domain.Loan, error) {
	return s.store.SaveLoan(loan)
}

// ByBook returns a page of loans referencing the book.
func (s *Loans) ByBook(book domain.Book, page domain.PageRequest) (domain.Page[domain.Loan], error) {
	return s.store.ListLoansByBook(book.ID, page)
}

// Find returns a page of loans matching isbn or customer.
func (s *Loans) Find(filter domain.LoanFilter, page domain.PageRequest) (domain.Page[domain.Loan], error) {
	return s.store.FindLoans(filter, page)
}

// Late returns open loans dated strictly earlier than today minus the late
// threshold. A loan dated exactly at the cutoff is not late yet.
func (s *Loans) Late() ([]domain.Loan, error) {
	cutoff := s.today().AddDate(0, 0, -lateLoanDays)
	return s.store.ListLateLoans(cutoff)
}

func (s *Loans) today() time.Time {
	now := s.now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
