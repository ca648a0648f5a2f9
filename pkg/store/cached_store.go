package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"libraryapi/pkg/domain"
)

const cacheTimeout = 3 * time.Second

// CachedStore decorates a Store with a read-through Redis cache for book
// lookups. Cache failures degrade to the inner store; writes invalidate.
type CachedStore struct {
	Store
	client *redis.Client
	ttl    time.Duration
}

// NewCachedStore builds a Redis-backed cache over the given store.
func NewCachedStore(inner Store, addr string, ttl time.Duration) *CachedStore {
	return &CachedStore{
		Store: inner,
		client: redis.NewClient(&redis.Options{
			Addr: addr,
		}),
		ttl: ttl,
	}
}

// GetBook serves a book from cache when present.
func (s *CachedStore) GetBook(id int64) (domain.Book, bool, error) {
	key := bookIDKey(id)
	if book, ok := s.cached(key); ok {
		return book, true, nil
	}
	book, ok, err := s.Store.GetBook(id)
	if err != nil || !ok {
		return book, ok, err
	}
	s.fill(book)
	return book, true, nil
}

// GetBookByISBN serves a book from cache when present.
func (s *CachedStore) GetBookByISBN(isbn string) (domain.Book, bool, error) {
	key := bookISBNKey(isbn)
	if book, ok := s.cached(key); ok {
		return book, true, nil
	}
	book, ok, err := s.Store.GetBookByISBN(isbn)
	if err != nil || !ok {
		return book, ok, err
	}
	s.fill(book)
	return book, true, nil
}

// SaveBook writes through and drops stale cache entries.
func (s *CachedStore) SaveBook(b domain.Book) (domain.Book, error) {
	saved, err := s.Store.SaveBook(b)
	if err != nil {
		return domain.Book{}, err
	}
	s.evict(saved)
	return saved, nil
}

// DeleteBook removes the row and its cache entries.
func (s *CachedStore) DeleteBook(id int64) error {
	book, ok, err := s.Store.GetBook(id)
	if err != nil {
		return err
	}
	if err := s.Store.DeleteBook(id); err != nil {
		return err
	}
	if ok {
		s.evict(book)
	}
	return nil
}

func (s *CachedStore) cached(key string) (domain.Book, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), cacheTimeout)
	defer cancel()
	raw, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		return domain.Book{}, false
	}
	var book domain.Book
	if err := json.Unmarshal(raw, &book); err != nil {
		return domain.Book{}, false
	}
	return book, true
}

func (s *CachedStore) fill(book domain.Book) {
	raw, err := json.Marshal(book)
	if err != nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), cacheTimeout)
	defer cancel()
	pipe := s.client.Pipeline()
	pipe.Set(ctx, bookIDKey(book.ID), raw, s.ttl)
	pipe.Set(ctx, bookISBNKey(book.ISBN), raw, s.ttl)
	_, _ = pipe.Exec(ctx)
}

func (s *CachedStore) evict(book domain.Book) {
	ctx, cancel := context.WithTimeout(context.Background(), cacheTimeout)
	defer cancel()
	_ = s.client.Del(ctx, bookIDKey(book.ID), bookISBNKey(book.ISBN)).Err()
}

func bookIDKey(id int64) string {
	return fmt.Sprintf("book:id:%d", id)
}

func bookISBNKey(isbn string) string {
	return "book:isbn:" + isbn
}
