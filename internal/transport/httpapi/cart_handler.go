package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/bookcourt/bookstore/internal/domain"
)

// CartHandler обслуживает корзину вызывающего пользователя.
type CartHandler struct {
	cart    domain.CartStore
	catalog domain.CatalogStore
	logger  *log.Entry
}

// NewCartHandler создаёт handler корзины.
func NewCartHandler(cart domain.CartStore, catalog domain.CatalogStore, logger *log.Entry) *CartHandler {
	if logger == nil {
		logger = log.WithField("component", "http-cart")
	}
	return &CartHandler{cart: cart, catalog: catalog, logger: logger}
}

// Get обрабатывает GET /cart.
func (h *CartHandler) Get(c *gin.Context) {
	lines, err := h.cart.Lines(currentUser(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": toCartResponse(lines)})
}

// SetLine обрабатывает PUT /cart/items: добавляет строку или
// перезаписывает количество. Книга обязана существовать в каталоге.
func (h *CartHandler) SetLine(c *gin.Context) {
	var req setCartLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if req.Quantity <= 0 {
		respondError(c, domain.ErrItemQtyInvalid)
		return
	}
	if _, err := h.catalog.GetBook(req.BookID); err != nil {
		respondError(c, err)
		return
	}

	userID := currentUser(c).ID
	if err := h.cart.SetLine(userID, domain.CartLine{BookID: req.BookID, Quantity: req.Quantity}); err != nil {
		respondError(c, err)
		return
	}

	lines, err := h.cart.Lines(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": toCartResponse(lines)})
}

// RemoveLine обрабатывает DELETE /cart/items/:bookId.
func (h *CartHandler) RemoveLine(c *gin.Context) {
	if err := h.cart.RemoveLine(currentUser(c).ID, c.Param("bookId")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Clear обрабатывает DELETE /cart.
func (h *CartHandler) Clear(c *gin.Context) {
	if err := h.cart.Clear(currentUser(c).ID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
