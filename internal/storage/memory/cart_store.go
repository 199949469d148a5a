package memory

import (
	"sort"
	"sync"

	"github.com/bookcourt/bookstore/internal/domain"
)

// cartStoreInMemory хранит корзины пользователей в памяти.
type cartStoreInMemory struct {
	mu    sync.RWMutex
	carts map[string]map[string]domain.CartLine
}

// NewCartStore создаёт in-memory реализацию CartStore.
func NewCartStore() domain.CartStore {
	return &cartStoreInMemory{carts: make(map[string]map[string]domain.CartLine)}
}

// Lines возвращает строки корзины, отсортированные по BookID для детерминизма.
func (s *cartStoreInMemory) Lines(userID string) ([]domain.CartLine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cart := s.carts[userID]
	result := make([]domain.CartLine, 0, len(cart))
	for _, line := range cart {
		result = append(result, line)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].BookID < result[j].BookID })
	return result, nil
}

// SetLine добавляет строку корзины или перезаписывает количество существующей.
func (s *cartStoreInMemory) SetLine(userID string, line domain.CartLine) error {
	if line.Quantity <= 0 {
		return domain.ErrItemQtyInvalid
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cart, ok := s.carts[userID]
	if !ok {
		cart = make(map[string]domain.CartLine)
		s.carts[userID] = cart
	}
	cart[line.BookID] = line
	return nil
}

// RemoveLine удаляет строку корзины.
func (s *cartStoreInMemory) RemoveLine(userID, bookID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, ok := s.carts[userID]
	if !ok {
		return domain.ErrCartLineNotFound
	}
	if _, ok := cart[bookID]; !ok {
		return domain.ErrCartLineNotFound
	}
	delete(cart, bookID)
	return nil
}

// Clear удаляет все строки корзины пользователя.
func (s *cartStoreInMemory) Clear(userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts, userID)
	return nil
}

var _ domain.CartStore = (*cartStoreInMemory)(nil)
