package domain

// CartLine — одна строка корзины: книга и количество.
// Строки корзины — входные данные снимка при оформлении заказа.
type CartLine struct {
	BookID   string
	Quantity int32
}
