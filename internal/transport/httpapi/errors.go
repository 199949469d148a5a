package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bookcourt/bookstore/internal/domain"
)

// respondError переводит доменные ошибки в HTTP-статусы.
// Семейство "не найдено" отдаётся одинаково для отсутствующих и чужих
// ресурсов, конфликты статуса и версий — 409, пустая корзина — 422.
func respondError(c *gin.Context, err error) {
	switch {
	case domain.IsNotFound(err):
		c.JSON(http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrStatusBackward), domain.IsVersionConflict(err):
		c.JSON(http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrCartEmpty):
		c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrShippingAddressRequired),
		errors.Is(err, domain.ErrStatusUnknown),
		errors.Is(err, domain.ErrItemQtyInvalid),
		errors.Is(err, domain.ErrOwnerRequired):
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}
