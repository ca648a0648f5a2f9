package app

import (
	"errors"
	"testing"

	"libraryapi/pkg/domain"
	"libraryapi/pkg/store"
)

// recordingStore counts writes so guard tests can assert the store was
// never touched.
type recordingStore struct {
	*store.MemoryStore
	bookSaves   int
	bookDeletes int
}

func newRecordingStore() *recordingStore {
	return &recordingStore{MemoryStore: store.NewMemoryStore()}
}

func (r *recordingStore) SaveBook(b domain.Book) (domain.Book, error) {
	r.bookSaves++
	return r.MemoryStore.SaveBook(b)
}

func (r *recordingStore) DeleteBook(id int64) error {
	r.bookDeletes++
	return r.MemoryStore.DeleteBook(id)
}

func TestBooksSaveAssignsID(t *testing.T) {
	st := newRecordingStore()
	service := NewBooks(st)

	book, err := service.Save(domain.Book{Title: "teste", Author: "fulano", ISBN: "123"})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if book.ID == 0 {
		t.Fatal("expected assigned id")
	}
	if book.Title != "teste" || book.Author != "fulano" || book.ISBN != "123" {
		t.Fatalf("unexpected book: %+v", book)
	}
}

func TestBooksSaveRejectsDuplicateISBNWithoutPersisting(t *testing.T) {
	st := newRecordingStore()
	service := NewBooks(st)
	if _, err := service.Save(domain.Book{Title: "teste", Author: "fulano", ISBN: "123"}); err != nil {
		t.Fatalf("first save: %v", err)
	}
	savesBefore := st.bookSaves

	_, err := service.Save(domain.Book{Title: "outro", Author: "beltrano", ISBN: "123"})
	if !errors.Is(err, domain.ErrDuplicateISBN) {
		t.Fatalf("err = %v, want ErrDuplicateISBN", err)
	}
	if err.Error() != "Isbn já cadastrado" {
		t.Fatalf("message = %q", err.Error())
	}
	if st.bookSaves != savesBefore {
		t.Fatalf("store was touched: %d saves after guard", st.bookSaves-savesBefore)
	}
}

func TestBooksGetByIDReturnsEmptyWhenMissing(t *testing.T) {
	service := NewBooks(newRecordingStore())

	_, found, err := service.GetByID(42)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if found {
		t.Fatal("expected not found, not an error")
	}
}

func TestBooksUpdateRequiresID(t *testing.T) {
	st := newRecordingStore()
	service := NewBooks(st)

	_, err := service.Update(domain.Book{Title: "x"})
	if !errors.Is(err, domain.ErrMissingID) {
		t.Fatalf("err = %v, want ErrMissingID", err)
	}
	if st.bookSaves != 0 {
		t.Fatal("store was touched")
	}
}

func TestBooksUpdatePersistsFieldValues(t *testing.T) {
	st := newRecordingStore()
	service := NewBooks(st)
	book, err := service.Save(domain.Book{Title: "old", Author: "old", ISBN: "123"})
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	book.Title = "new title"
	book.Author = "new author"
	updated, err := service.Update(book)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != "new title" || updated.Author != "new author" || updated.ISBN != "123" {
		t.Fatalf("unexpected update result: %+v", updated)
	}
}

func TestBooksDeleteRequiresID(t *testing.T) {
	st := newRecordingStore()
	service := NewBooks(st)

	if err := service.Delete(domain.Book{}); !errors.Is(err, domain.ErrMissingID) {
		t.Fatalf("err = %v, want ErrMissingID", err)
	}
	if st.bookDeletes != 0 {
		t.Fatal("store was touched")
	}
}

func TestBooksDeleteRemovesBook(t *testing.T) {
	st := newRecordingStore()
	service := NewBooks(st)
	book, err := service.Save(domain.Book{Title: "x", Author: "y", ISBN: "123"})
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	if err := service.Delete(book); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, found, _ := service.GetByID(book.ID); found {
		t.Fatal("expected book gone")
	}
}

func TestBooksFindEchoesPageParameters(t *testing.T) {
	st := newRecordingStore()
	service := NewBooks(st)
	for _, isbn := range []string{"001", "002", "003"} {
		if _, err := service.Save(domain.Book{Title: "t" + isbn, Author: "a", ISBN: isbn}); err != nil {
			t.Fatalf("save: %v", err)
		}
	}

	page, err := service.Find(domain.BookFilter{}, domain.PageRequest{Number: 0, Size: 2})
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if page.Number != 0 || page.Size != 2 {
		t.Fatalf("page metadata not echoed: %+v", page)
	}
	if page.TotalElements != 3 || len(page.Content) != 2 {
		t.Fatalf("unexpected page: total=%d content=%d", page.TotalElements, len(page.Content))
	}
}
