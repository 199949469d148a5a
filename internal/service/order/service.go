// Package order реализует ядро жизненного цикла заказа: превращение
// корзины в неизменяемый снимок, подсчёт итога, переходы статусов и
// выборки, ограниченные владельцем или повышенной ролью.
package order

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/bookcourt/bookstore/internal/domain"
	"github.com/bookcourt/bookstore/internal/metrics"
)

const (
	timelineEventOrderPlaced        = "OrderPlaced"
	timelineEventOrderStatusChanged = "OrderStatusChanged"
	timelineEventOrderDeleted       = "OrderDeleted"

	outboxAggregateOrder = "order"

	outboxEventOrderCreated       = "order.created"
	outboxEventOrderStatusChanged = "order.status_changed"
	outboxEventOrderDeleted       = "order.deleted"
)

// Service оркестрирует операции над заказами поверх доменных хранилищ.
type Service struct {
	orders   domain.OrderRepository
	cart     domain.CartStore
	catalog  domain.CatalogStore
	timeline domain.TimelineRepository
	outbox   domain.OutboxRepository
	policy   domain.RolePolicy
	metrics  *metrics.OrderMetrics
	logger   *log.Entry

	// userLocks сериализует оформление заказов одного пользователя:
	// два конкурентных Create не должны снять один и тот же снимок корзины.
	userLocks sync.Map
}

// NewService конструирует сервис с зависимостями.
func NewService(
	orders domain.OrderRepository,
	cart domain.CartStore,
	catalog domain.CatalogStore,
	timeline domain.TimelineRepository,
	outboxRepo domain.OutboxRepository,
	policy domain.RolePolicy,
	orderMetrics *metrics.OrderMetrics,
	logger *log.Entry,
) *Service {
	if logger == nil {
		logger = log.WithField("component", "order-service")
	}
	return &Service{
		orders:   orders,
		cart:     cart,
		catalog:  catalog,
		timeline: timeline,
		outbox:   outboxRepo,
		policy:   policy,
		metrics:  orderMetrics,
		logger:   logger,
	}
}

// Create оформляет заказ из текущей корзины пользователя.
// Цены каталога и количества из корзины фиксируются в позициях заказа;
// итог считается в минимальных денежных единицах без плавающей точки.
func (s *Service) Create(_ context.Context, user domain.User, shippingAddress string) (domain.Order, error) {
	started := time.Now()

	if user.ID == "" {
		return domain.Order{}, domain.ErrOwnerRequired
	}
	if shippingAddress == "" {
		return domain.Order{}, domain.ErrShippingAddressRequired
	}

	lock := s.userLock(user.ID)
	lock.Lock()
	defer lock.Unlock()

	lines, err := s.cart.Lines(user.ID)
	if err != nil {
		s.logger.WithError(err).WithField("user_id", user.ID).Error("failed to read cart")
		return domain.Order{}, err
	}
	if len(lines) == 0 {
		s.recordRejected("empty_cart")
		return domain.Order{}, domain.ErrCartEmpty
	}

	now := time.Now().UTC()
	orderID := uuid.NewString()

	items := make([]domain.OrderItem, 0, len(lines))
	var totalMinor int64
	for _, line := range lines {
		if line.Quantity <= 0 {
			return domain.Order{}, domain.ErrItemQtyInvalid
		}
		priceMinor, err := s.catalog.FindBookPrice(line.BookID)
		if err != nil {
			s.logger.WithError(err).WithFields(log.Fields{
				"user_id": user.ID,
				"book_id": line.BookID,
			}).Warn("cart references unknown book")
			return domain.Order{}, err
		}

		subtotal := priceMinor * int64(line.Quantity)
		items = append(items, domain.OrderItem{
			ID:            uuid.NewString(),
			OrderID:       orderID,
			BookID:        line.BookID,
			Quantity:      line.Quantity,
			PriceMinor:    priceMinor,
			SubtotalMinor: subtotal,
			CreatedAt:     now,
		})
		totalMinor += subtotal
	}

	order := domain.Order{
		ID:              orderID,
		UserID:          user.ID,
		Status:          domain.OrderStatusPending,
		TotalMinor:      totalMinor,
		ShippingAddress: shippingAddress,
		PlacedAt:        now,
		Items:           items,
		Version:         0,
		UpdatedAt:       now,
	}

	if errs := order.ValidateInvariants(); len(errs) > 0 {
		s.logger.WithField("order_id", orderID).Errorf("order snapshot violates invariants: %v", errs)
		return domain.Order{}, errs[0]
	}

	if err := s.orders.Create(order); err != nil {
		s.logger.WithError(err).WithField("order_id", orderID).Error("failed to persist order")
		return domain.Order{}, err
	}

	s.appendTimeline(orderID, timelineEventOrderPlaced, string(order.Status), now)
	s.enqueueOrderEvent(outboxEventOrderCreated, order)

	if s.metrics != nil {
		s.metrics.RecordOrderCreated()
		s.metrics.RecordCreateDuration(time.Since(started))
	}

	s.logger.WithFields(log.Fields{
		"order_id":    orderID,
		"user_id":     user.ID,
		"total_minor": totalMinor,
		"items":       len(items),
	}).Info("order placed")

	return order, nil
}

// UpdateStatus переводит заказ в новый статус. Статус движется только
// вперёд по жизненному циклу; попытка отката отклоняется, повтор
// текущего статуса — идемпотентный no-op.
func (s *Service) UpdateStatus(_ context.Context, orderID string, next domain.OrderStatus) (domain.Order, error) {
	if _, err := domain.ParseOrderStatus(string(next)); err != nil {
		return domain.Order{}, err
	}

	order, err := s.loadOrder(orderID, "UpdateStatus")
	if err != nil {
		return domain.Order{}, err
	}

	if order.Status == next {
		return order, nil
	}
	if !order.Status.CanAdvanceTo(next) {
		s.recordRejected("status_backward")
		return domain.Order{}, domain.ErrStatusBackward
	}

	now := time.Now().UTC()
	order.Status = next
	order.UpdatedAt = now

	if err := s.orders.Save(order); err != nil {
		s.logger.WithError(err).WithFields(log.Fields{
			"order_id": orderID,
			"status":   next,
		}).Error("failed to save order status")
		return domain.Order{}, err
	}

	s.appendTimeline(orderID, timelineEventOrderStatusChanged, string(next), now)
	s.enqueueOrderEvent(outboxEventOrderStatusChanged, order)
	if s.metrics != nil {
		s.metrics.RecordStatusChange(string(next))
	}

	return s.loadOrder(orderID, "UpdateStatusReload")
}

// List возвращает живые заказы пользователя по возрастанию времени
// оформления. При limit <= 0 возвращаются все заказы: усечение выборки
// включается только явным limit.
func (s *Service) List(_ context.Context, user domain.User, limit int) ([]domain.Order, error) {
	orders, err := s.orders.ListByOwner(user.ID, limit)
	if err != nil {
		s.logger.WithError(err).WithField("user_id", user.ID).Error("failed to list orders")
		return nil, err
	}
	return orders, nil
}

// Items возвращает позиции заказа после проверки доступа.
func (s *Service) Items(_ context.Context, user domain.User, orderID string) ([]domain.OrderItem, error) {
	order, err := s.loadOrder(orderID, "Items")
	if err != nil {
		return nil, err
	}
	if err := s.checkAccess(user, order); err != nil {
		return nil, err
	}
	return order.Items, nil
}

// Item возвращает одну позицию заказа после проверки доступа.
func (s *Service) Item(_ context.Context, user domain.User, orderID, itemID string) (domain.OrderItem, error) {
	order, err := s.loadOrder(orderID, "Item")
	if err != nil {
		return domain.OrderItem{}, err
	}
	if err := s.checkAccess(user, order); err != nil {
		return domain.OrderItem{}, err
	}
	return order.Item(itemID)
}

// History возвращает события жизненного цикла заказа после проверки доступа.
func (s *Service) History(_ context.Context, user domain.User, orderID string) ([]domain.TimelineEvent, error) {
	order, err := s.loadOrder(orderID, "History")
	if err != nil {
		return nil, err
	}
	if err := s.checkAccess(user, order); err != nil {
		return nil, err
	}
	return s.timeline.List(order.ID)
}

// Delete мягко удаляет заказ: запись сохраняется, но исчезает из выборок.
func (s *Service) Delete(_ context.Context, orderID string) error {
	order, err := s.loadOrder(orderID, "Delete")
	if err != nil {
		return err
	}

	if err := s.orders.SoftDelete(order.ID); err != nil {
		s.logger.WithError(err).WithField("order_id", orderID).Error("failed to soft delete order")
		return err
	}

	now := time.Now().UTC()
	s.appendTimeline(order.ID, timelineEventOrderDeleted, "", now)
	s.enqueueOrderEvent(outboxEventOrderDeleted, order)
	if s.metrics != nil {
		s.metrics.RecordOrderSoftDeleted()
	}
	return nil
}

// checkAccess пропускает владельца заказа и носителей повышенной роли.
// Остальным возвращается ErrOrderNotFound: отказ в доступе не должен
// раскрывать сам факт существования заказа.
func (s *Service) checkAccess(user domain.User, order domain.Order) error {
	if s.policy != nil && s.policy.HasElevatedRole(user) {
		return nil
	}
	if order.UserID == user.ID && user.ID != "" {
		return nil
	}
	return domain.ErrOrderNotFound
}

func (s *Service) loadOrder(orderID, operation string) (domain.Order, error) {
	order, err := s.orders.Get(orderID)
	if err == nil {
		return order, nil
	}

	s.logger.WithError(err).WithFields(log.Fields{
		"operation": operation,
		"order_id":  orderID,
	}).Warn("failed to load order")
	return domain.Order{}, err
}

func (s *Service) userLock(userID string) *sync.Mutex {
	lock, _ := s.userLocks.LoadOrStore(userID, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

func (s *Service) appendTimeline(orderID, eventType, reason string, occurred time.Time) {
	if s.timeline == nil {
		return
	}
	event := domain.TimelineEvent{
		OrderID:  orderID,
		Type:     eventType,
		Reason:   reason,
		Occurred: occurred,
	}
	if err := s.timeline.Append(event); err != nil {
		s.logger.WithError(err).WithField("order_id", orderID).Warn("failed to append timeline event")
		return
	}
	if s.metrics != nil {
		s.metrics.RecordTimelineEvent()
	}
}

func (s *Service) enqueueOrderEvent(eventType string, order domain.Order) {
	if s.outbox == nil {
		return
	}

	payload, err := json.Marshal(struct {
		OrderID    string `json:"order_id"`
		UserID     string `json:"user_id"`
		Status     string `json:"status"`
		TotalMinor int64  `json:"total_minor"`
		PlacedAt   string `json:"placed_at"`
	}{
		OrderID:    order.ID,
		UserID:     order.UserID,
		Status:     string(order.Status),
		TotalMinor: order.TotalMinor,
		PlacedAt:   order.PlacedAt.UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		s.logger.WithError(err).WithField("order_id", order.ID).Warn("failed to marshal order event")
		return
	}

	if _, err := s.outbox.Enqueue(domain.OutboxMessage{
		AggregateType: outboxAggregateOrder,
		AggregateID:   order.ID,
		EventType:     eventType,
		Payload:       payload,
	}); err != nil {
		s.logger.WithError(err).WithField("order_id", order.ID).Warn("failed to enqueue order event")
		return
	}
	if s.metrics != nil {
		s.metrics.RecordOutboxEvent()
	}
}

func (s *Service) recordRejected(reason string) {
	if s.metrics != nil {
		s.metrics.RecordOrderRejected(reason)
	}
}
