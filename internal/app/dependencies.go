package app

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/bookcourt/bookstore/internal/domain"
	"github.com/bookcourt/bookstore/internal/storage/memory"
	"github.com/bookcourt/bookstore/internal/storage/postgres"
)

// Dependencies содержит хранилища приложения.
type Dependencies struct {
	Orders   domain.OrderRepository
	Cart     domain.CartStore
	Catalog  domain.CatalogStore
	Timeline domain.TimelineRepository
	Outbox   domain.OutboxRepository
	Logger   *log.Entry

	// Store не nil только в postgres-режиме; нужен для health check и Close.
	Store *postgres.Store
}

// NewDependencies собирает хранилища: PostgreSQL при заданном DSN,
// иначе in-memory реализации для разработки и тестов.
func NewDependencies(ctx context.Context, cfg Config, logger *log.Entry) (*Dependencies, error) {
	if logger == nil {
		logger = log.WithField("component", "app")
	}

	if cfg.PostgresDSN == "" {
		logger.Info("postgres dsn is empty, using in-memory storage")
		catalog := memory.NewCatalogStore()
		seedDemoCatalog(catalog)

		return &Dependencies{
			Orders:   memory.NewOrderRepository(),
			Cart:     memory.NewCartStore(),
			Catalog:  catalog,
			Timeline: memory.NewTimelineRepository(),
			Outbox:   memory.NewOutboxRepository(),
			Logger:   logger,
		}, nil
	}

	store, err := postgres.Open(ctx, cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := store.EnsureSchema(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	logger.Info("postgres storage initialized")

	return &Dependencies{
		Orders:   postgres.NewOrderRepository(store),
		Cart:     postgres.NewCartStore(store),
		Catalog:  postgres.NewCatalogStore(store),
		Timeline: postgres.NewTimelineRepository(store),
		Outbox:   postgres.NewOutboxRepository(store),
		Logger:   logger,
		Store:    store,
	}, nil
}

// Close освобождает ресурсы зависимостей.
func (d *Dependencies) Close() error {
	if d == nil || d.Store == nil {
		return nil
	}
	return d.Store.Close()
}

// seedDemoCatalog наполняет in-memory каталог, чтобы dev-режим был
// пригоден для ручной проверки API без внешней базы.
func seedDemoCatalog(catalog *memory.CatalogStore) {
	catalog.UpsertBook(domain.Book{ID: "book-1", Title: "The Master and Margarita", Author: "Mikhail Bulgakov", ISBN: "978-0-14-118014-4", PriceMinor: 1000})
	catalog.UpsertBook(domain.Book{ID: "book-2", Title: "Heart of a Dog", Author: "Mikhail Bulgakov", ISBN: "978-0-8021-5059-9", PriceMinor: 550})
	catalog.UpsertBook(domain.Book{ID: "book-3", Title: "Crime and Punishment", Author: "Fyodor Dostoevsky", ISBN: "978-0-14-044913-6", PriceMinor: 1250})
}
