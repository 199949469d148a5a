package domain

// OrderRepository описывает требования к хранилищу заказов.
// Мягко удалённые заказы исключаются из всех выборок.
type OrderRepository interface {
	// Create сохраняет новый заказ вместе с позициями как одну атомарную
	// запись. Возвращает ошибку, если запись с таким ID уже существует.
	Create(order Order) error
	// Get возвращает заказ по идентификатору или ErrOrderNotFound, если его нет.
	Get(id string) (Order, error)
	// ListByOwner возвращает заказы пользователя, отсортированные по
	// времени оформления по возрастанию, с опциональным ограничением выборки.
	ListByOwner(userID string, limit int) ([]Order, error)
	// Save применяет обновления к заказу с учётом optimistic locking.
	// Позиции заказа после создания не перезаписываются.
	Save(order Order) error
	// SoftDelete помечает заказ удалённым, сохраняя запись в хранилище.
	SoftDelete(id string) error
}
