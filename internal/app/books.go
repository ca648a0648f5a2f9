package app

import (
	"fmt"

	"libraryapi/pkg/domain"
	"libraryapi/pkg/store"
)

// Books is the application service for book records.
type Books struct {
	store store.Store
}

// NewBooks constructs the book service over the given store.
func NewBooks(st store.Store) *Books {
	return &Books{store: st}
}

// Save persists a new book. A duplicate isbn is rejected before the store is
// touched.
func (s *Books) Save(book domain.Book) (domain.Book, error) {
	exists, err := s.store.HasBookISBN(book.ISBN)
	if err != nil {
		return domain.Book{}, fmt.Errorf("check isbn: %w", err)
	}
	if exists {
		return domain.Book{}, domain.ErrDuplicateISBN
	}
	return s.store.SaveBook(book)
}

// GetByID returns the book or not-found. A missing book is not an error.
func (s *Books) GetByID(id int64) (domain.Book, bool, error) {
	return s.store.GetBook(id)
}

// GetByISBN returns the book with that isbn or not-found.
func (s *Books) GetByISBN(isbn string) (domain.Book, bool, error) {
	return s.store.GetBookByISBN(isbn)
}

// Update persists the book's current field values. The book must already
// have an identifier.
func (s *Books) Update(book domain.Book) (domain.Book, error) {
	if book.ID == 0 {
		return domain.Book{}, domain.ErrMissingID
	}
	return s.store.SaveBook(book)
}

// Delete removes a persisted book.
func (s *Books) Delete(book domain.Book) error {
	if book.ID == 0 {
		return domain.ErrMissingID
	}
	return s.store.DeleteBook(book.ID)
}

// Find returns a page of books matching the filter by example.
func (s *Books) Find(filter domain.BookFilter, page domain.PageRequest) (domain.Page[domain.Book], error) {
	return s.store.FindBooks(filter, page)
}
