package store

import (
	"testing"
	"time"

	"libraryapi/pkg/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func boolPtr(v bool) *bool { return &v }

func seedBook(t *testing.T, m *MemoryStore, title, author, isbn string) domain.Book {
	t.Helper()
	book, err := m.SaveBook(domain.Book{Title: title, Author: author, ISBN: isbn})
	if err != nil {
		t.Fatalf("save book: %v", err)
	}
	return book
}

func TestMemoryStoreAssignsIDs(t *testing.T) {
	m := NewMemoryStore()
	first := seedBook(t, m, "Clean Code", "Robert Martin", "001")
	second := seedBook(t, m, "Refactoring", "Martin Fowler", "002")
	if first.ID == 0 || second.ID == 0 || first.ID == second.ID {
		t.Fatalf("expected distinct non-zero ids, got %d and %d", first.ID, second.ID)
	}
}

func TestMemoryStoreFindBooksMatchesSubstringsCaseInsensitively(t *testing.T) {
	m := NewMemoryStore()
	seedBook(t, m, "Clean Code", "Robert Martin", "001")
	seedBook(t, m, "Clean Architecture", "Robert Martin", "002")
	seedBook(t, m, "Refactoring", "Martin Fowler", "003")

	page, err := m.FindBooks(domain.BookFilter{Title: "clean", Author: "MARTIN"}, domain.PageRequest{Number: 0, Size: 10})
	if err != nil {
		t.Fatalf("find books: %v", err)
	}
	if page.TotalElements != 2 {
		t.Fatalf("totalElements = %d, want 2", page.TotalElements)
	}
	for _, b := range page.Content {
		if b.Author != "Robert Martin" {
			t.Fatalf("unexpected match: %+v", b)
		}
	}

	// Empty filter matches everything.
	all, err := m.FindBooks(domain.BookFilter{}, domain.PageRequest{Number: 0, Size: 10})
	if err != nil {
		t.Fatalf("find books: %v", err)
	}
	if all.TotalElements != 3 {
		t.Fatalf("totalElements = %d, want 3", all.TotalElements)
	}
}

func TestMemoryStoreFindBooksPaginates(t *testing.T) {
	m := NewMemoryStore()
	seedBook(t, m, "A", "x", "001")
	seedBook(t, m, "B", "x", "002")
	seedBook(t, m, "C", "x", "003")

	page, err := m.FindBooks(domain.BookFilter{}, domain.PageRequest{Number: 1, Size: 2})
	if err != nil {
		t.Fatalf("find books: %v", err)
	}
	if len(page.Content) != 1 || page.Content[0].Title != "C" {
		t.Fatalf("unexpected second page: %+v", page.Content)
	}
	if page.TotalElements != 3 || page.TotalPages() != 2 {
		t.Fatalf("total = %d pages = %d, want 3 and 2", page.TotalElements, page.TotalPages())
	}
}

func TestMemoryStoreOpenLoanTracking(t *testing.T) {
	m := NewMemoryStore()
	book := seedBook(t, m, "Clean Code", "Robert Martin", "001")

	open, err := m.HasOpenLoan(book.ID)
	if err != nil || open {
		t.Fatalf("expected no open loan, got open=%v err=%v", open, err)
	}

	loan, err := m.SaveLoan(domain.Loan{Customer: "Fulano", BookID: book.ID, LoanDate: date(2026, 8, 1)})
	if err != nil {
		t.Fatalf("save loan: %v", err)
	}
	if open, _ = m.HasOpenLoan(book.ID); !open {
		t.Fatal("expected open loan after save")
	}

	// Explicit returned=false still counts as open.
	loan.Returned = boolPtr(false)
	if _, err := m.SaveLoan(loan); err != nil {
		t.Fatalf("update loan: %v", err)
	}
	if open, _ = m.HasOpenLoan(book.ID); !open {
		t.Fatal("expected returned=false loan to stay open")
	}

	loan.Returned = boolPtr(true)
	if _, err := m.SaveLoan(loan); err != nil {
		t.Fatalf("update loan: %v", err)
	}
	if open, _ = m.HasOpenLoan(book.ID); open {
		t.Fatal("expected no open loan after return")
	}
}

func TestMemoryStoreFindLoansMatchesISBNOrCustomer(t *testing.T) {
	m := NewMemoryStore()
	first := seedBook(t, m, "Clean Code", "Robert Martin", "001")
	second := seedBook(t, m, "Refactoring", "Martin Fowler", "002")

	mustSaveLoan(t, m, domain.Loan{Customer: "Fulano", BookID: first.ID, LoanDate: date(2026, 8, 1)})
	mustSaveLoan(t, m, domain.Loan{Customer: "Beltrano", BookID: second.ID, LoanDate: date(2026, 8, 2)})

	// isbn matches the first loan, customer matches the second: OR keeps both.
	page, err := m.FindLoans(domain.LoanFilter{ISBN: "001", Customer: "Beltrano"}, domain.PageRequest{Number: 0, Size: 10})
	if err != nil {
		t.Fatalf("find loans: %v", err)
	}
	if page.TotalElements != 2 {
		t.Fatalf("totalElements = %d, want 2", page.TotalElements)
	}
	if page.Content[0].Book.ISBN != "001" {
		t.Fatalf("expected embedded book, got %+v", page.Content[0].Book)
	}
}

func TestMemoryStoreListLateLoans(t *testing.T) {
	m := NewMemoryStore()
	book := seedBook(t, m, "Clean Code", "Robert Martin", "001")
	other := seedBook(t, m, "Refactoring", "Martin Fowler", "002")

	cutoff := date(2026, 8, 25)
	late := mustSaveLoan(t, m, domain.Loan{Customer: "a", BookID: book.ID, LoanDate: date(2026, 8, 24)})
	mustSaveLoan(t, m, domain.Loan{Customer: "b", BookID: other.ID, LoanDate: cutoff})
	returned := domain.Loan{Customer: "c", BookID: other.ID, LoanDate: date(2026, 8, 1), Returned: boolPtr(true)}
	mustSaveLoan(t, m, returned)

	got, err := m.ListLateLoans(cutoff)
	if err != nil {
		t.Fatalf("list late loans: %v", err)
	}
	if len(got) != 1 || got[0].ID != late.ID {
		t.Fatalf("unexpected late loans: %+v", got)
	}
}

func mustSaveLoan(t *testing.T, m *MemoryStore, l domain.Loan) domain.Loan {
	t.Helper()
	saved, err := m.SaveLoan(l)
	if err != nil {
		t.Fatalf("save loan: %v", err)
	}
	return saved
}
