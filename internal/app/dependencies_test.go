package app

import (
	"context"
	"testing"
)

func TestNewDependencies_Memory(t *testing.T) {
	deps, err := NewDependencies(context.Background(), DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("new dependencies: %v", err)
	}
	t.Cleanup(func() { _ = deps.Close() })

	if deps.Orders == nil || deps.Cart == nil || deps.Catalog == nil {
		t.Fatal("expected storage dependencies to be initialized")
	}
	if deps.Timeline == nil || deps.Outbox == nil {
		t.Fatal("expected timeline and outbox repositories to be initialized")
	}
	if deps.Store != nil {
		t.Fatal("memory mode must not open postgres store")
	}
	if deps.Logger == nil {
		t.Fatal("expected logger to be initialized")
	}

	// Dev-каталог должен быть заполнен.
	books, err := deps.Catalog.ListBooks(0)
	if err != nil {
		t.Fatalf("list books: %v", err)
	}
	if len(books) == 0 {
		t.Fatal("expected seeded demo catalog")
	}
}
