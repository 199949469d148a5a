// Package httpapi — REST-слой поверх ядра заказов: идентификация по
// заголовкам внешнего аутентификатора, ролевые ограничения и перевод
// доменных ошибок в HTTP-статусы.
package httpapi

import (
	"context"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/bookcourt/bookstore/internal/domain"
)

// OrderService описывает операции ядра заказов, нужные транспорту.
type OrderService interface {
	Create(ctx context.Context, user domain.User, shippingAddress string) (domain.Order, error)
	UpdateStatus(ctx context.Context, orderID string, next domain.OrderStatus) (domain.Order, error)
	List(ctx context.Context, user domain.User, limit int) ([]domain.Order, error)
	Items(ctx context.Context, user domain.User, orderID string) ([]domain.OrderItem, error)
	Item(ctx context.Context, user domain.User, orderID, itemID string) (domain.OrderItem, error)
	History(ctx context.Context, user domain.User, orderID string) ([]domain.TimelineEvent, error)
	Delete(ctx context.Context, orderID string) error
}

// RouterConfig собирает зависимости REST-слоя.
type RouterConfig struct {
	Orders  OrderService
	Cart    domain.CartStore
	Catalog domain.CatalogStore
	Policy  domain.RolePolicy
	Logger  *log.Entry
}

// NewRouter собирает gin-движок с маршрутами API.
func NewRouter(cfg RouterConfig) *gin.Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = log.WithField("component", "http-api")
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(requestLogger(logger))
	engine.Use(cors.Default())

	orders := NewOrderHandler(cfg.Orders, logger)
	cart := NewCartHandler(cfg.Cart, cfg.Catalog, logger)
	catalog := NewCatalogHandler(cfg.Catalog, logger)

	api := engine.Group("/api/v1")
	api.Use(identityMiddleware())
	{
		api.POST("/orders", orders.Create)
		api.GET("/orders", orders.List)
		api.GET("/orders/:orderId/items", orders.Items)
		api.GET("/orders/:orderId/items/:itemId", orders.Item)
		api.GET("/orders/:orderId/history", orders.History)

		elevated := api.Group("", requireElevated(cfg.Policy))
		{
			elevated.PATCH("/orders/:orderId", orders.UpdateStatus)
			elevated.DELETE("/orders/:orderId", orders.Delete)
		}

		api.GET("/cart", cart.Get)
		api.DELETE("/cart", cart.Clear)
		api.PUT("/cart/items", cart.SetLine)
		api.DELETE("/cart/items/:bookId", cart.RemoveLine)

		api.GET("/books", catalog.List)
		api.GET("/books/:bookId", catalog.Get)
	}

	return engine
}

// requestLogger пишет строку доступа через общий logrus.
func requestLogger(logger *log.Entry) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		entry := logger.WithFields(log.Fields{
			"method": c.Request.Method,
			"path":   c.FullPath(),
			"status": c.Writer.Status(),
		})
		if c.Writer.Status() >= 500 {
			entry.Error("request failed")
			return
		}
		entry.Debug("request handled")
	}
}
