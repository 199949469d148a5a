package domain

import "errors"

var (
	// Ошибка отсутствующего владельца заказа.
	ErrOwnerRequired = errors.New("order owner is required")
	// Ошибка пустого адреса доставки.
	ErrShippingAddressRequired = errors.New("shipping address is required")
	// Ошибка отсутствия хотя бы одной позиции в заказе.
	ErrItemsRequired = errors.New("order must contain at least one item")
	// Ошибка отрицательного итога заказа.
	ErrTotalNegative = errors.New("order total must be non-negative")
	// Ошибка при некорректном количестве экземпляров (<= 0).
	ErrItemQtyInvalid = errors.New("item quantity must be greater than zero")
	// Ошибка, если зафиксированная цена позиции отрицательная.
	ErrItemPriceInvalid = errors.New("item price must be non-negative")
	// Ошибка несоответствия строки снимка: subtotal != price * quantity.
	ErrItemSubtotalMismatch = errors.New("item subtotal does not match price and quantity")
	// Ошибка несоответствия итога заказа сумме позиций.
	ErrTotalMismatch = errors.New("order total does not match items sum")
	// ErrStatusUnknown возвращается для статуса вне перечисления.
	ErrStatusUnknown = errors.New("unknown order status")
	// ErrStatusBackward возвращается при попытке откатить статус назад.
	ErrStatusBackward = errors.New("order status cannot move backward")
	// ErrOrderNotFound возвращается, если заказ не найден или недоступен вызывающему.
	// Отказ в доступе намеренно неотличим от отсутствия заказа.
	ErrOrderNotFound = errors.New("order not found")
	// ErrOrderItemNotFound возвращается, если позиция не принадлежит заказу.
	ErrOrderItemNotFound = errors.New("order item not found")
	// ErrOrderVersionConflict сигнализирует о конфликте версий при сохранении.
	ErrOrderVersionConflict = errors.New("order version conflict")
	// ErrBookNotFound возвращается при неудачном поиске книги в каталоге.
	ErrBookNotFound = errors.New("book not found")
	// ErrCartEmpty возвращается при попытке оформить заказ из пустой корзины.
	ErrCartEmpty = errors.New("shopping cart is empty")
	// ErrCartLineNotFound возвращается, если строки с таким bookID нет в корзине.
	ErrCartLineNotFound = errors.New("cart line not found")
	// ErrOutboxPublish — ошибка при публикации сообщения из outbox.
	ErrOutboxPublish = errors.New("outbox publish failed")
)

// IsNotFound проверяет, относится ли ошибка к семейству "не найдено".
func IsNotFound(err error) bool {
	return errors.Is(err, ErrOrderNotFound) ||
		errors.Is(err, ErrOrderItemNotFound) ||
		errors.Is(err, ErrBookNotFound) ||
		errors.Is(err, ErrCartLineNotFound)
}

// IsVersionConflict проверяет, является ли ошибка конфликтом версий.
func IsVersionConflict(err error) bool {
	return errors.Is(err, ErrOrderVersionConflict)
}
