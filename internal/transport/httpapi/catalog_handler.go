package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/bookcourt/bookstore/internal/domain"
)

// CatalogHandler отдаёт каталог книг на чтение.
type CatalogHandler struct {
	catalog domain.CatalogStore
	logger  *log.Entry
}

// NewCatalogHandler создаёт handler каталога.
func NewCatalogHandler(catalog domain.CatalogStore, logger *log.Entry) *CatalogHandler {
	if logger == nil {
		logger = log.WithField("component", "http-catalog")
	}
	return &CatalogHandler{catalog: catalog, logger: logger}
}

// List обрабатывает GET /books.
func (h *CatalogHandler) List(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid limit"})
			return
		}
		limit = parsed
	}

	books, err := h.catalog.ListBooks(limit)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]bookResponse, 0, len(books))
	for _, book := range books {
		out = append(out, toBookResponse(book))
	}
	c.JSON(http.StatusOK, gin.H{"books": out})
}

// Get обрабатывает GET /books/:bookId.
func (h *CatalogHandler) Get(c *gin.Context) {
	book, err := h.catalog.GetBook(c.Param("bookId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookResponse(book))
}
