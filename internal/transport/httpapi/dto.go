package httpapi

import (
	"fmt"
	"time"

	"github.com/bookcourt/bookstore/internal/domain"
)

// createOrderRequest — тело POST /orders.
type createOrderRequest struct {
	ShippingAddress string `json:"shipping_address" binding:"required"`
}

// updateStatusRequest — тело PATCH /orders/:orderId.
type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// setCartLineRequest — тело PUT /cart/items.
type setCartLineRequest struct {
	BookID   string `json:"book_id" binding:"required"`
	Quantity int32  `json:"quantity" binding:"required"`
}

type orderItemResponse struct {
	ID         string `json:"id"`
	BookID     string `json:"book_id"`
	Quantity   int32  `json:"quantity"`
	PriceMinor int64  `json:"price_minor"`
	Price      string `json:"price"`
	Subtotal   string `json:"subtotal"`
}

type orderResponse struct {
	ID              string              `json:"id"`
	UserID          string              `json:"user_id"`
	Status          string              `json:"status"`
	TotalMinor      int64               `json:"total_minor"`
	Total           string              `json:"total"`
	ShippingAddress string              `json:"shipping_address"`
	PlacedAt        time.Time           `json:"placed_at"`
	Items           []orderItemResponse `json:"items"`
}

type timelineEventResponse struct {
	Type     string    `json:"type"`
	Reason   string    `json:"reason,omitempty"`
	Occurred time.Time `json:"occurred_at"`
}

type cartLineResponse struct {
	BookID   string `json:"book_id"`
	Quantity int32  `json:"quantity"`
}

type bookResponse struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Author     string `json:"author,omitempty"`
	ISBN       string `json:"isbn,omitempty"`
	PriceMinor int64  `json:"price_minor"`
	Price      string `json:"price"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// formatMinor печатает сумму в минимальных единицах как десятичную
// строку с двумя знаками: 2550 -> "25.50".
func formatMinor(minor int64) string {
	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}
	return fmt.Sprintf("%s%d.%02d", sign, minor/100, minor%100)
}

func toOrderItemResponse(item domain.OrderItem) orderItemResponse {
	return orderItemResponse{
		ID:         item.ID,
		BookID:     item.BookID,
		Quantity:   item.Quantity,
		PriceMinor: item.PriceMinor,
		Price:      formatMinor(item.PriceMinor),
		Subtotal:   formatMinor(item.SubtotalMinor),
	}
}

func toOrderResponse(order domain.Order) orderResponse {
	items := make([]orderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, toOrderItemResponse(item))
	}
	return orderResponse{
		ID:              order.ID,
		UserID:          order.UserID,
		Status:          string(order.Status),
		TotalMinor:      order.TotalMinor,
		Total:           formatMinor(order.TotalMinor),
		ShippingAddress: order.ShippingAddress,
		PlacedAt:        order.PlacedAt,
		Items:           items,
	}
}

func toOrderListResponse(orders []domain.Order) []orderResponse {
	out := make([]orderResponse, 0, len(orders))
	for _, order := range orders {
		out = append(out, toOrderResponse(order))
	}
	return out
}

func toTimelineResponse(events []domain.TimelineEvent) []timelineEventResponse {
	out := make([]timelineEventResponse, 0, len(events))
	for _, event := range events {
		out = append(out, timelineEventResponse{
			Type:     event.Type,
			Reason:   event.Reason,
			Occurred: event.Occurred,
		})
	}
	return out
}

func toCartResponse(lines []domain.CartLine) []cartLineResponse {
	out := make([]cartLineResponse, 0, len(lines))
	for _, line := range lines {
		out = append(out, cartLineResponse{BookID: line.BookID, Quantity: line.Quantity})
	}
	return out
}

func toBookResponse(book domain.Book) bookResponse {
	return bookResponse{
		ID:         book.ID,
		Title:      book.Title,
		Author:     book.Author,
		ISBN:       book.ISBN,
		PriceMinor: book.PriceMinor,
		Price:      formatMinor(book.PriceMinor),
	}
}
