package domain

// Book — запись каталога. Ядро заказов читает из неё только цену,
// но каталожные эндпоинты отдают карточку целиком.
type Book struct {
	ID         string
	Title      string
	Author     string
	ISBN       string
	PriceMinor int64
	Deleted    bool
}
