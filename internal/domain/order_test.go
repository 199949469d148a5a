package domain_test

import (
	"errors"
	"testing"
	"time"

	"github.com/bookcourt/bookstore/internal/domain"
)

// helper для создания базового заказа с двумя позициями.
func makeOrder() domain.Order {
	now := time.Now().UTC()
	return domain.Order{
		ID:              "order-1",
		UserID:          "user-1",
		Status:          domain.OrderStatusPending,
		TotalMinor:      2550,
		ShippingAddress: "X",
		PlacedAt:        now,
		Items: []domain.OrderItem{
			{ID: "item-1", OrderID: "order-1", BookID: "book-a", Quantity: 2, PriceMinor: 1000, SubtotalMinor: 2000, CreatedAt: now},
			{ID: "item-2", OrderID: "order-1", BookID: "book-b", Quantity: 1, PriceMinor: 550, SubtotalMinor: 550, CreatedAt: now},
		},
		Version:   0,
		UpdatedAt: now,
	}
}

func TestOrderValidateInvariants_Ok(t *testing.T) {
	order := makeOrder()
	if errs := order.ValidateInvariants(); len(errs) != 0 {
		t.Fatalf("expected no validation errors, got %v", errs)
	}
}

func TestOrderValidateInvariants_Errors(t *testing.T) {
	cases := []struct {
		name string
		mut  func(o *domain.Order)
	}{
		{
			name: "no owner",
			mut: func(o *domain.Order) {
				o.UserID = ""
			},
		},
		{
			name: "empty shipping address",
			mut: func(o *domain.Order) {
				o.ShippingAddress = ""
			},
		},
		{
			name: "no items",
			mut: func(o *domain.Order) {
				o.Items = nil
			},
		},
		{
			name: "negative total",
			mut: func(o *domain.Order) {
				o.TotalMinor = -1
			},
		},
		{
			name: "qty invalid",
			mut: func(o *domain.Order) {
				o.Items[0].Quantity = 0
			},
		},
		{
			name: "price invalid",
			mut: func(o *domain.Order) {
				o.Items[0].PriceMinor = -5
			},
		},
		{
			name: "subtotal drift",
			mut: func(o *domain.Order) {
				o.Items[0].SubtotalMinor = 1999
			},
		},
		{
			name: "total mismatch",
			mut: func(o *domain.Order) {
				o.TotalMinor = 9999
			},
		},
		{
			name: "status outside enum",
			mut: func(o *domain.Order) {
				o.Status = "SHIPPED"
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			order := makeOrder()
			tc.mut(&order)

			if len(order.ValidateInvariants()) == 0 {
				t.Fatalf("expected validation errors for case %s", tc.name)
			}
		})
	}
}

func TestOrderStatusCanAdvanceTo(t *testing.T) {
	cases := []struct {
		name string
		from domain.OrderStatus
		to   domain.OrderStatus
		want bool
	}{
		{"forward single step", domain.OrderStatusPending, domain.OrderStatusProcessing, true},
		{"forward with skip", domain.OrderStatusPending, domain.OrderStatusDelivered, true},
		{"same status", domain.OrderStatusProcessing, domain.OrderStatusProcessing, true},
		{"backward", domain.OrderStatusCompleted, domain.OrderStatusPending, false},
		{"backward single step", domain.OrderStatusDelivered, domain.OrderStatusCompleted, false},
		{"unknown target", domain.OrderStatusPending, "CANCELED", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.from.CanAdvanceTo(tc.to); got != tc.want {
				t.Fatalf("CanAdvanceTo(%s -> %s) = %v, want %v", tc.from, tc.to, got, tc.want)
			}
		})
	}
}

func TestParseOrderStatus(t *testing.T) {
	status, err := domain.ParseOrderStatus("DELIVERED")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if status != domain.OrderStatusDelivered {
		t.Fatalf("expected DELIVERED, got %s", status)
	}

	if _, err := domain.ParseOrderStatus("delivered"); !errors.Is(err, domain.ErrStatusUnknown) {
		t.Fatalf("expected ErrStatusUnknown, got %v", err)
	}
}

func TestOrderItemLookup(t *testing.T) {
	order := makeOrder()

	item, err := order.Item("item-2")
	if err != nil {
		t.Fatalf("item lookup failed: %v", err)
	}
	if item.BookID != "book-b" {
		t.Fatalf("expected book-b, got %s", item.BookID)
	}

	if _, err := order.Item("item-404"); !errors.Is(err, domain.ErrOrderItemNotFound) {
		t.Fatalf("expected ErrOrderItemNotFound, got %v", err)
	}
}
