package memory

import (
	"sort"
	"sync"

	"github.com/bookcourt/bookstore/internal/domain"
)

// CatalogStore — in-memory каталог книг для разработки и тестов.
type CatalogStore struct {
	mu    sync.RWMutex
	books map[string]domain.Book
}

// NewCatalogStore создаёт in-memory реализацию CatalogStore.
func NewCatalogStore() *CatalogStore {
	return &CatalogStore{books: make(map[string]domain.Book)}
}

// UpsertBook добавляет книгу в каталог или перезаписывает существующую.
// Ядро заказов каталог не мутирует; метод нужен сидированию и тестам,
// в том числе проверке того, что смена цены не трогает старые заказы.
func (s *CatalogStore) UpsertBook(book domain.Book) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.books[book.ID] = book
}

// FindBookPrice возвращает текущую цену живой книги.
func (s *CatalogStore) FindBookPrice(bookID string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	book, ok := s.books[bookID]
	if !ok || book.Deleted {
		return 0, domain.ErrBookNotFound
	}
	return book.PriceMinor, nil
}

// GetBook возвращает карточку живой книги.
func (s *CatalogStore) GetBook(bookID string) (domain.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	book, ok := s.books[bookID]
	if !ok || book.Deleted {
		return domain.Book{}, domain.ErrBookNotFound
	}
	return book, nil
}

// ListBooks возвращает живые книги, отсортированные по ID.
func (s *CatalogStore) ListBooks(limit int) ([]domain.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Book, 0, len(s.books))
	for _, book := range s.books {
		if book.Deleted {
			continue
		}
		result = append(result, book)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

var _ domain.CatalogStore = (*CatalogStore)(nil)
