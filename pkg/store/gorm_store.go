package store

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"libraryapi/pkg/domain"
)

// GormStore implements Store using GORM + Postgres.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore opens the DB and runs auto-migrations.
func NewGormStore(dsn string) (*GormStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := db.AutoMigrate(&BookModel{}, &LoanModel{}); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	return &GormStore{db: db}, nil
}

// SaveBook inserts or updates a book and returns it with its assigned ID.
func (s *GormStore) SaveBook(b domain.Book) (domain.Book, error) {
	model := bookToModel(b)
	if err := s.db.Save(&model).Error; err != nil {
		return domain.Book{}, err
	}
	return bookFromModel(model), nil
}

// GetBook retrieves a book by ID. A missing row is not an error.
func (s *GormStore) GetBook(id int64) (domain.Book, bool, error) {
	var model BookModel
	if err := s.db.First(&model, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.Book{}, false, nil
		}
		return domain.Book{}, false, err
	}
	return bookFromModel(model), true, nil
}

// GetBookByISBN looks up a book by its isbn.
func (s *GormStore) GetBookByISBN(isbn string) (domain.Book, bool, error) {
	var model BookModel
	if err := s.db.First(&model, "isbn = ?", isbn).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.Book{}, false, nil
		}
		return domain.Book{}, false, err
	}
	return bookFromModel(model), true, nil
}

// HasBookISBN checks if a book with the isbn exists.
func (s *GormStore) HasBookISBN(isbn string) (bool, error) {
	var count int64
	if err := s.db.Model(&BookModel{}).Where("isbn = ?", isbn).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// DeleteBook removes the book row.
func (s *GormStore) DeleteBook(id int64) error {
	return s.db.Delete(&BookModel{}, "id = ?", id).Error
}

// FindBooks lists books matching the filter, paged. Non-empty filter fields
// match case-insensitively as substrings, combined with AND.
func (s *GormStore) FindBooks(filter domain.BookFilter, page domain.PageRequest) (domain.Page[domain.Book], error) {
	tx := s.db.Model(&BookModel{})
	if filter.Title != "" {
		tx = tx.Where("LOWER(title) LIKE ?", containsPattern(filter.Title))
	}
	if filter.Author != "" {
		tx = tx.Where("LOWER(author) LIKE ?", containsPattern(filter.Author))
	}
	if filter.ISBN != "" {
		tx = tx.Where("LOWER(isbn) LIKE ?", containsPattern(filter.ISBN))
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return domain.Page[domain.Book]{}, err
	}
	var models []BookModel
	if err := tx.Order("id ASC").Offset(page.Offset()).Limit(page.Size).Find(&models).Error; err != nil {
		return domain.Page[domain.Book]{}, err
	}
	content := make([]domain.Book, 0, len(models))
	for _, m := range models {
		content = append(content, bookFromModel(m))
	}
	return domain.Page[domain.Book]{
		Content:       content,
		Number:        page.Number,
		Size:          page.Size,
		TotalElements: total,
	}, nil
}

// SaveLoan inserts or updates a loan and returns it with its assigned ID.
func (s *GormStore) SaveLoan(l domain.Loan) (domain.Loan, error) {
	model := loanToModel(l)
	if err := s.db.Omit("Book").Save(&model).Error; err != nil {
		return domain.Loan{}, err
	}
	out := loanFromModel(model)
	out.Book = l.Book
	return out, nil
}

// GetLoan retrieves a loan with its book.
func (s *GormStore) GetLoan(id int64) (domain.Loan, bool, error) {
	var model LoanModel
	if err := s.db.Preload("Book").First(&model, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.Loan{}, false, nil
		}
		return domain.Loan{}, false, err
	}
	return loanFromModel(model), true, nil
}

// HasOpenLoan checks whether the book has a loan that was not returned yet.
func (s *GormStore) HasOpenLoan(bookID int64) (bool, error) {
	var count int64
	err := s.db.Model(&LoanModel{}).
		Where("book_id = ? AND (returned IS NULL OR returned = ?)", bookID, false).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListLoansByBook returns the loans referencing the book, paged.
func (s *GormStore) ListLoansByBook(bookID int64, page domain.PageRequest) (domain.Page[domain.Loan], error) {
	return s.pageLoans(s.db.Model(&LoanModel{}).Where("book_id = ?", bookID), page)
}

// FindLoans returns loans whose book isbn equals filter.ISBN or whose
// customer equals filter.Customer, paged. The OR mirrors the original query.
func (s *GormStore) FindLoans(filter domain.LoanFilter, page domain.PageRequest) (domain.Page[domain.Loan], error) {
	tx := s.db.Model(&LoanModel{}).
		Joins("JOIN books ON books.id = loans.book_id").
		Where("books.isbn = ? OR loans.customer = ?", filter.ISBN, filter.Customer)
	return s.pageLoans(tx, page)
}

// ListLateLoans returns open loans dated strictly before the cutoff.
func (s *GormStore) ListLateLoans(before time.Time) ([]domain.Loan, error) {
	var models []LoanModel
	err := s.db.Preload("Book").
		Where("loan_date < ? AND (returned IS NULL OR returned = ?)", before, false).
		Order("id ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return loansFromModels(models), nil
}

func (s *GormStore) pageLoans(tx *gorm.DB, page domain.PageRequest) (domain.Page[domain.Loan], error) {
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return domain.Page[domain.Loan]{}, err
	}
	var models []LoanModel
	if err := tx.Preload("Book").Order("loans.id ASC").Offset(page.Offset()).Limit(page.Size).Find(&models).Error; err != nil {
		return domain.Page[domain.Loan]{}, err
	}
	return domain.Page[domain.Loan]{
		Content:       loansFromModels(models),
		Number:        page.Number,
		Size:          page.Size,
		TotalElements: total,
	}, nil
}

func containsPattern(val string) string {
	return "%" + strings.ToLower(val) + "%"
}

func loansFromModels(models []LoanModel) []domain.Loan {
	res := make([]domain.Loan, 0, len(models))
	for _, m := range models {
		res = append(res, loanFromModel(m))
	}
	return res
}

func bookToModel(b domain.Book) BookModel {
	return BookModel{
		ID:     b.ID,
		Title:  b.Title,
		Author: b.Author,
		ISBN:   b.ISBN,
	}
}

func bookFromModel(m BookModel) domain.Book {
	return domain.Book{
		ID:     m.ID,
		Title:  m.Title,
		Author: m.Author,
		ISBN:   m.ISBN,
	}
}

func loanToModel(l domain.Loan) LoanModel {
	return LoanModel{
		ID:       l.ID,
		Customer: l.Customer,
		BookID:   l.BookID,
		LoanDate: l.LoanDate,
		Returned: l.Returned,
	}
}

func loanFromModel(m LoanModel) domain.Loan {
	loan := domain.Loan{
		ID:       m.ID,
		Customer: m.Customer,
		BookID:   m.BookID,
		LoanDate: m.LoanDate,
		Returned: m.Returned,
	}
	if m.Book.ID != 0 {
		loan.Book = bookFromModel(m.Book)
	}
	return loan
}
