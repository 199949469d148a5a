package memory_test

import (
	"errors"
	"testing"

	"github.com/bookcourt/bookstore/internal/domain"
	"github.com/bookcourt/bookstore/internal/storage/memory"
)

func TestCartStore_SetAndList(t *testing.T) {
	store := memory.NewCartStore()

	if err := store.SetLine("user-1", domain.CartLine{BookID: "book-b", Quantity: 1}); err != nil {
		t.Fatalf("set line failed: %v", err)
	}
	if err := store.SetLine("user-1", domain.CartLine{BookID: "book-a", Quantity: 2}); err != nil {
		t.Fatalf("set line failed: %v", err)
	}
	// Перезапись количества существующей строки.
	if err := store.SetLine("user-1", domain.CartLine{BookID: "book-b", Quantity: 3}); err != nil {
		t.Fatalf("set line failed: %v", err)
	}

	lines, err := store.Lines("user-1")
	if err != nil {
		t.Fatalf("lines failed: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0].BookID != "book-a" || lines[1].BookID != "book-b" {
		t.Fatalf("expected deterministic order by book id, got %v", lines)
	}
	if lines[1].Quantity != 3 {
		t.Fatalf("expected quantity overwrite to 3, got %d", lines[1].Quantity)
	}
}

func TestCartStore_SetLineRejectsNonPositiveQty(t *testing.T) {
	store := memory.NewCartStore()

	if err := store.SetLine("user-1", domain.CartLine{BookID: "book-a", Quantity: 0}); !errors.Is(err, domain.ErrItemQtyInvalid) {
		t.Fatalf("expected qty error, got %v", err)
	}
}

func TestCartStore_RemoveAndClear(t *testing.T) {
	store := memory.NewCartStore()
	if err := store.SetLine("user-1", domain.CartLine{BookID: "book-a", Quantity: 2}); err != nil {
		t.Fatalf("set line failed: %v", err)
	}

	if err := store.RemoveLine("user-1", "book-missing"); !errors.Is(err, domain.ErrCartLineNotFound) {
		t.Fatalf("expected cart line not found, got %v", err)
	}
	if err := store.RemoveLine("user-1", "book-a"); err != nil {
		t.Fatalf("remove failed: %v", err)
	}

	if err := store.SetLine("user-1", domain.CartLine{BookID: "book-b", Quantity: 1}); err != nil {
		t.Fatalf("set line failed: %v", err)
	}
	if err := store.Clear("user-1"); err != nil {
		t.Fatalf("clear failed: %v", err)
	}

	lines, err := store.Lines("user-1")
	if err != nil {
		t.Fatalf("lines failed: %v", err)
	}
	if len(lines) != 0 {
		t.Fatalf("expected empty cart after clear, got %d lines", len(lines))
	}
}
