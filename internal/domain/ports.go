package domain

import "time"

// CatalogStore описывает read-only доступ к каталогу книг.
type CatalogStore interface {
	// FindBookPrice возвращает текущую цену книги в минимальных единицах
	// или ErrBookNotFound.
	FindBookPrice(bookID string) (int64, error)
	// GetBook возвращает карточку книги или ErrBookNotFound.
	GetBook(bookID string) (Book, error)
	// ListBooks возвращает книги каталога с опциональным ограничением выборки.
	ListBooks(limit int) ([]Book, error)
}

// CartStore хранит корзины пользователей. Ядро заказов корзину только
// читает; мутации выполняют корзинные эндпоинты.
type CartStore interface {
	// Lines возвращает текущие строки корзины пользователя.
	Lines(userID string) ([]CartLine, error)
	// SetLine добавляет строку или перезаписывает количество существующей.
	SetLine(userID string, line CartLine) error
	// RemoveLine удаляет строку корзины или возвращает ErrCartLineNotFound.
	RemoveLine(userID, bookID string) error
	// Clear удаляет все строки корзины пользователя.
	Clear(userID string) error
}

// RolePolicy решает, обладает ли принципал повышенной ролью,
// дающей видимость чужих заказов и право менять статусы.
type RolePolicy interface {
	HasElevatedRole(user User) bool
}

// OutboxPublisher публикует события из transactional outbox.
type OutboxPublisher interface {
	// Publish передаёт событие наружу; должен быть идемпотентным.
	Publish(event OutboxMessage) error
}

// OutboxRepository позволяет сохранять события для последующей публикации.
type OutboxRepository interface {
	Enqueue(msg OutboxMessage) (OutboxMessage, error)
	PullPending(limit int) ([]OutboxMessage, error)
	Stats() (OutboxStats, error)
	MarkSent(id string) error
	MarkFailed(id string) error
}

// TimelineRepository хранит события жизненного цикла заказа.
type TimelineRepository interface {
	Append(event TimelineEvent) error
	List(orderID string) ([]TimelineEvent, error)
}

// OutboxMessage хранит данные для публикуемого события.
type OutboxMessage struct {
	ID            string
	AggregateType string
	AggregateID   string
	EventType     string
	Payload       []byte
}

// OutboxStats описывает текущее состояние backlog transactional outbox.
type OutboxStats struct {
	PendingCount    int
	OldestPendingAt time.Time
}
