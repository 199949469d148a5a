package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/bookcourt/bookstore/internal/domain"
)

type cartStore struct {
	db *sql.DB
}

// NewCartStore создаёт PostgreSQL-реализацию CartStore.
func NewCartStore(store *Store) domain.CartStore {
	return &cartStore{db: store.DB()}
}

func (s *cartStore) Lines(userID string) ([]domain.CartLine, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `
		SELECT book_id, quantity
		FROM cart_items
		WHERE user_id = $1
		ORDER BY book_id ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("select cart lines: %w", err)
	}
	defer rows.Close()

	lines := make([]domain.CartLine, 0)
	for rows.Next() {
		var line domain.CartLine
		if err := rows.Scan(&line.BookID, &line.Quantity); err != nil {
			return nil, fmt.Errorf("scan cart line: %w", err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cart lines: %w", err)
	}

	return lines, nil
}

func (s *cartStore) SetLine(userID string, line domain.CartLine) error {
	if line.Quantity <= 0 {
		return domain.ErrItemQtyInvalid
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO cart_items (user_id, book_id, quantity, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, book_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = EXCLUDED.updated_at
	`, userID, line.BookID, line.Quantity, time.Now().UTC()); err != nil {
		return fmt.Errorf("upsert cart line: %w", err)
	}

	return nil
}

func (s *cartStore) RemoveLine(userID, bookID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	res, err := s.db.ExecContext(ctx, `
		DELETE FROM cart_items
		WHERE user_id = $1
		  AND book_id = $2
	`, userID, bookID)
	if err != nil {
		return fmt.Errorf("delete cart line: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected for cart delete: %w", err)
	}
	if affected == 0 {
		return domain.ErrCartLineNotFound
	}

	return nil
}

func (s *cartStore) Clear(userID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if _, err := s.db.ExecContext(ctx, `
		DELETE FROM cart_items
		WHERE user_id = $1
	`, userID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}

	return nil
}

var _ domain.CartStore = (*cartStore)(nil)
