package memory_test

import (
	"errors"
	"testing"

	"github.com/bookcourt/bookstore/internal/domain"
	"github.com/bookcourt/bookstore/internal/storage/memory"
)

func TestCatalogStore_FindBookPrice(t *testing.T) {
	store := memory.NewCatalogStore()
	store.UpsertBook(domain.Book{ID: "book-a", Title: "Kobzar", PriceMinor: 1000})

	price, err := store.FindBookPrice("book-a")
	if err != nil {
		t.Fatalf("find price failed: %v", err)
	}
	if price != 1000 {
		t.Fatalf("expected 1000, got %d", price)
	}

	if _, err := store.FindBookPrice("book-missing"); !errors.Is(err, domain.ErrBookNotFound) {
		t.Fatalf("expected ErrBookNotFound, got %v", err)
	}
}

func TestCatalogStore_DeletedBookIsInvisible(t *testing.T) {
	store := memory.NewCatalogStore()
	store.UpsertBook(domain.Book{ID: "book-a", PriceMinor: 1000, Deleted: true})

	if _, err := store.FindBookPrice("book-a"); !errors.Is(err, domain.ErrBookNotFound) {
		t.Fatalf("expected ErrBookNotFound for deleted book, got %v", err)
	}

	books, err := store.ListBooks(0)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(books) != 0 {
		t.Fatalf("deleted book leaked into listing")
	}
}

func TestCatalogStore_ListBooksLimit(t *testing.T) {
	store := memory.NewCatalogStore()
	store.UpsertBook(domain.Book{ID: "book-b", PriceMinor: 100})
	store.UpsertBook(domain.Book{ID: "book-a", PriceMinor: 200})
	store.UpsertBook(domain.Book{ID: "book-c", PriceMinor: 300})

	books, err := store.ListBooks(2)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(books) != 2 {
		t.Fatalf("expected 2 books, got %d", len(books))
	}
	if books[0].ID != "book-a" || books[1].ID != "book-b" {
		t.Fatalf("expected order by id, got %v", books)
	}
}
