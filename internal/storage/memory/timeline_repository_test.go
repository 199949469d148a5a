package memory

import (
	"testing"
	"time"

	"github.com/bookcourt/bookstore/internal/domain"
)

func TestTimelineAppendAndList(t *testing.T) {
	repo := NewTimelineRepository()

	now := time.Now().UTC()
	events := []domain.TimelineEvent{
		{OrderID: "order-1", Type: "OrderStatusChanged", Reason: "PROCESSING", Occurred: now},
		{OrderID: "order-1", Type: "OrderPlaced", Reason: "PENDING", Occurred: now.Add(-time.Minute)},
		{OrderID: "order-2", Type: "OrderPlaced", Reason: "PENDING", Occurred: now},
	}
	for _, event := range events {
		if err := repo.Append(event); err != nil {
			t.Fatalf("append %s: %v", event.Type, err)
		}
	}

	listed, err := repo.List("order-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("expected 2 events, got %d", len(listed))
	}
	// События отсортированы хронологически независимо от порядка записи.
	if listed[0].Type != "OrderPlaced" || listed[1].Type != "OrderStatusChanged" {
		t.Fatalf("unexpected ordering: %+v", listed)
	}
}

func TestTimelineListReturnsCopy(t *testing.T) {
	repo := NewTimelineRepository()

	if err := repo.Append(domain.TimelineEvent{OrderID: "order-1", Type: "OrderPlaced", Occurred: time.Now()}); err != nil {
		t.Fatalf("append: %v", err)
	}

	first, err := repo.List("order-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	first[0].Type = "mutated"

	second, err := repo.List("order-1")
	if err != nil {
		t.Fatalf("list again: %v", err)
	}
	if second[0].Type != "OrderPlaced" {
		t.Fatal("mutating the returned slice must not affect stored events")
	}
}

func TestTimelineListUnknownOrder(t *testing.T) {
	repo := NewTimelineRepository()

	listed, err := repo.List("missing")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 0 {
		t.Fatalf("expected no events, got %d", len(listed))
	}
}
