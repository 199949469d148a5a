package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bookcourt/bookstore/internal/domain"
)

type catalogStore struct {
	db *sql.DB
}

// NewCatalogStore создаёт PostgreSQL-реализацию CatalogStore.
func NewCatalogStore(store *Store) domain.CatalogStore {
	return &catalogStore{db: store.DB()}
}

func (s *catalogStore) FindBookPrice(bookID string) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var priceMinor int64
	err := s.db.QueryRowContext(ctx, `
		SELECT price_minor
		FROM books
		WHERE id = $1
		  AND is_deleted = FALSE
	`, bookID).Scan(&priceMinor)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, domain.ErrBookNotFound
		}
		return 0, fmt.Errorf("select book price: %w", err)
	}

	return priceMinor, nil
}

func (s *catalogStore) GetBook(bookID string) (domain.Book, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var book domain.Book
	err := s.db.QueryRowContext(ctx, `
		SELECT id, title, author, isbn, price_minor
		FROM books
		WHERE id = $1
		  AND is_deleted = FALSE
	`, bookID).Scan(&book.ID, &book.Title, &book.Author, &book.ISBN, &book.PriceMinor)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Book{}, domain.ErrBookNotFound
		}
		return domain.Book{}, fmt.Errorf("select book: %w", err)
	}

	return book, nil
}

func (s *catalogStore) ListBooks(limit int) ([]domain.Book, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	query := `
		SELECT id, title, author, isbn, price_minor
		FROM books
		WHERE is_deleted = FALSE
		ORDER BY title ASC, id ASC
	`

	var (
		rows *sql.Rows
		err  error
	)

	if limit > 0 {
		rows, err = s.db.QueryContext(ctx, query+" LIMIT $1", limit)
	} else {
		rows, err = s.db.QueryContext(ctx, query)
	}
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	defer rows.Close()

	books := make([]domain.Book, 0)
	for rows.Next() {
		var book domain.Book
		if err := rows.Scan(&book.ID, &book.Title, &book.Author, &book.ISBN, &book.PriceMinor); err != nil {
			return nil, fmt.Errorf("scan book row: %w", err)
		}
		books = append(books, book)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate book rows: %w", err)
	}

	return books, nil
}

var _ domain.CatalogStore = (*catalogStore)(nil)
