package domain

import "time"

// OrderStatus описывает жизненный цикл заказа в книжном магазине.
type OrderStatus string

const (
	// OrderStatusPending — заказ создан из корзины, обработка ещё не началась.
	OrderStatusPending OrderStatus = "PENDING"
	// OrderStatusProcessing — заказ принят в обработку.
	OrderStatusProcessing OrderStatus = "PROCESSING"
	// OrderStatusCompleted — заказ собран и передан в доставку.
	OrderStatusCompleted OrderStatus = "COMPLETED"
	// OrderStatusDelivered — заказ доставлен покупателю.
	OrderStatusDelivered OrderStatus = "DELIVERED"
)

// statusRank задаёт позицию статуса в линейном жизненном цикле.
var statusRank = map[OrderStatus]int{
	OrderStatusPending:    0,
	OrderStatusProcessing: 1,
	OrderStatusCompleted:  2,
	OrderStatusDelivered:  3,
}

// ParseOrderStatus валидирует строковое представление статуса.
func ParseOrderStatus(raw string) (OrderStatus, error) {
	status := OrderStatus(raw)
	if _, ok := statusRank[status]; !ok {
		return "", ErrStatusUnknown
	}
	return status, nil
}

// CanAdvanceTo проверяет допустимость перехода: статус движется только вперёд.
// Пропуск промежуточных стадий разрешён, повтор текущего статуса — no-op.
func (s OrderStatus) CanAdvanceTo(next OrderStatus) bool {
	from, okFrom := statusRank[s]
	to, okTo := statusRank[next]
	if !okFrom || !okTo {
		return false
	}
	return to >= from
}

// OrderItem представляет одну позицию заказа — снимок строки корзины
// и каталожной цены на момент оформления.
type OrderItem struct {
	// ID позиции нужен для однозначной идентификации.
	ID string
	// OrderID — заказ-владелец; позиция не существует вне заказа.
	OrderID string
	// BookID — ссылка на книгу в каталоге. Последующие изменения цены
	// книги на позицию не влияют.
	BookID string
	// Quantity — количество экземпляров.
	Quantity int32
	// PriceMinor — цена за экземпляр на момент оформления, в минимальных
	// денежных единицах (копейки/центы).
	PriceMinor int64
	// SubtotalMinor — зафиксированный итог строки: PriceMinor * Quantity.
	SubtotalMinor int64
	// CreatedAt фиксирует момент создания снимка.
	CreatedAt time.Time
}

// Order агрегирует состояние заказа и его позиции.
// После создания мутирует только Status; позиции, адрес и итог неизменны.
type Order struct {
	ID              string
	UserID          string
	Status          OrderStatus
	TotalMinor      int64
	ShippingAddress string
	PlacedAt        time.Time
	Items           []OrderItem
	Deleted         bool
	Version         int64
	UpdatedAt       time.Time
}

// ValidateInvariants проверяет базовые инварианты заказа и возвращает список замечаний.
func (o *Order) ValidateInvariants() []error {
	var errs []error

	if o.UserID == "" {
		errs = append(errs, ErrOwnerRequired)
	}
	if o.ShippingAddress == "" {
		errs = append(errs, ErrShippingAddressRequired)
	}
	if len(o.Items) == 0 {
		errs = append(errs, ErrItemsRequired)
	}
	if o.TotalMinor < 0 {
		errs = append(errs, ErrTotalNegative)
	}
	if _, ok := statusRank[o.Status]; !ok {
		errs = append(errs, ErrStatusUnknown)
	}

	// Сверяем итог заказа с суммой зафиксированных строк.
	var calc int64
	for _, item := range o.Items {
		if item.Quantity <= 0 {
			errs = append(errs, ErrItemQtyInvalid)
		}
		if item.PriceMinor < 0 {
			errs = append(errs, ErrItemPriceInvalid)
		}
		if item.SubtotalMinor != int64(item.Quantity)*item.PriceMinor {
			errs = append(errs, ErrItemSubtotalMismatch)
		}
		calc += item.SubtotalMinor
	}
	if calc != o.TotalMinor {
		errs = append(errs, ErrTotalMismatch)
	}

	return errs
}

// Item возвращает позицию заказа по идентификатору.
func (o *Order) Item(itemID string) (OrderItem, error) {
	for _, item := range o.Items {
		if item.ID == itemID {
			return item, nil
		}
	}
	return OrderItem{}, ErrOrderItemNotFound
}
