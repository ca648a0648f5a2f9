package store

import (
	"strings"
	"sync"
	"time"

	"libraryapi/pkg/domain"
)

// MemoryStore keeps books and loans in-process. It backs tests and mirrors
// the query semantics of GormStore.
type MemoryStore struct {
	mu         sync.RWMutex
	books      map[int64]domain.Book
	loans      map[int64]domain.Loan
	bookOrder  []int64
	loanOrder  []int64
	nextBookID int64
	nextLoanID int64
}

// NewMemoryStore initializes an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		books: make(map[int64]domain.Book),
		loans: make(map[int64]domain.Loan),
	}
}

// SaveBook stores or replaces a book, assigning an ID on first save.
func (m *MemoryStore) SaveBook(b domain.Book) (domain.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if b.ID == 0 {
		m.nextBookID++
		b.ID = m.nextBookID
	}
	if _, exists := m.books[b.ID]; !exists {
		m.bookOrder = append(m.bookOrder, b.ID)
	}
	m.books[b.ID] = b
	return b, nil
}

// GetBook retrieves a book by ID.
func (m *MemoryStore) GetBook(id int64) (domain.Book, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.books[id]
	return b, ok, nil
}

// GetBookByISBN looks up a book by isbn.
func (m *MemoryStore) GetBookByISBN(isbn string) (domain.Book, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, id := range m.bookOrder {
		if b, ok := m.books[id]; ok && b.ISBN == isbn {
			return b, true, nil
		}
	}
	return domain.Book{}, false, nil
}

// HasBookISBN checks if isbn exists.
func (m *MemoryStore) HasBookISBN(isbn string) (bool, error) {
	_, ok, err := m.GetBookByISBN(isbn)
	return ok, err
}

// DeleteBook removes a book.
func (m *MemoryStore) DeleteBook(id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.books, id)
	filtered := m.bookOrder[:0]
	for _, item := range m.bookOrder {
		if item != id {
			filtered = append(filtered, item)
		}
	}
	m.bookOrder = filtered
	return nil
}

// FindBooks lists books matching the filter in insertion order, paged.
func (m *MemoryStore) FindBooks(filter domain.BookFilter, page domain.PageRequest) (domain.Page[domain.Book], error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	matched := make([]domain.Book, 0, len(m.bookOrder))
	for _, id := range m.bookOrder {
		b, ok := m.books[id]
		if !ok {
			continue
		}
		if containsFold(b.Title, filter.Title) &&
			containsFold(b.Author, filter.Author) &&
			containsFold(b.ISBN, filter.ISBN) {
			matched = append(matched, b)
		}
	}
	return pageOf(matched, page), nil
}

// SaveLoan stores or replaces a loan, assigning an ID on first save.
func (m *MemoryStore) SaveLoan(l domain.Loan) (domain.Loan, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if l.ID == 0 {
		m.nextLoanID++
		l.ID = m.nextLoanID
	}
	if _, exists := m.loans[l.ID]; !exists {
		m.loanOrder = append(m.loanOrder, l.ID)
	}
	m.loans[l.ID] = l
	return l, nil
}

// GetLoan retrieves a loan with its book attached.
func (m *MemoryStore) GetLoan(id int64) (domain.Loan, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	l, ok := m.loans[id]
	if !ok {
		return domain.Loan{}, false, nil
	}
	return m.withBook(l), true, nil
}

// HasOpenLoan checks whether the book has a not-yet-returned loan.
func (m *MemoryStore) HasOpenLoan(bookID int64) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, id := range m.loanOrder {
		if l, ok := m.loans[id]; ok && l.BookID == bookID && l.Open() {
			return true, nil
		}
	}
	return false, nil
}

// ListLoansByBook returns loans referencing the book, paged.
func (m *MemoryStore) ListLoansByBook(bookID int64, page domain.PageRequest) (domain.Page[domain.Loan], error) {
	return m.pageLoans(page, func(l domain.Loan) bool {
		return l.BookID == bookID
	})
}

// FindLoans returns loans matching isbn OR customer, paged.
func (m *MemoryStore) FindLoans(filter domain.LoanFilter, page domain.PageRequest) (domain.Page[domain.Loan], error) {
	return m.pageLoans(page, func(l domain.Loan) bool {
		book := m.books[l.BookID]
		return book.ISBN == filter.ISBN || l.Customer == filter.Customer
	})
}

// ListLateLoans returns open loans dated strictly before the cutoff.
func (m *MemoryStore) ListLateLoans(before time.Time) ([]domain.Loan, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]domain.Loan, 0)
	for _, id := range m.loanOrder {
		l, ok := m.loans[id]
		if !ok {
			continue
		}
		if l.Open() && l.LoanDate.Before(before) {
			res = append(res, m.withBook(l))
		}
	}
	return res, nil
}

func (m *MemoryStore) pageLoans(page domain.PageRequest, match func(domain.Loan) bool) (domain.Page[domain.Loan], error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	matched := make([]domain.Loan, 0, len(m.loanOrder))
	for _, id := range m.loanOrder {
		if l, ok := m.loans[id]; ok && match(l) {
			matched = append(matched, m.withBook(l))
		}
	}
	return pageOf(matched, page), nil
}

func (m *MemoryStore) withBook(l domain.Loan) domain.Loan {
	if book, ok := m.books[l.BookID]; ok {
		l.Book = book
	}
	return l
}

func pageOf[T any](matched []T, page domain.PageRequest) domain.Page[T] {
	total := int64(len(matched))
	start := page.Offset()
	if start > len(matched) {
		start = len(matched)
	}
	end := start + page.Size
	if page.Size <= 0 || end > len(matched) {
		end = len(matched)
	}
	return domain.Page[T]{
		Content:       matched[start:end],
		Number:        page.Number,
		Size:          page.Size,
		TotalElements: total,
	}
}

func containsFold(value, filter string) bool {
	if filter == "" {
		return true
	}
	return strings.Contains(strings.ToLower(value), strings.ToLower(filter))
}
