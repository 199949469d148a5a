package httpapi_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookcourt/bookstore/internal/domain"
	"github.com/bookcourt/bookstore/internal/service/access"
	"github.com/bookcourt/bookstore/internal/service/order"
	"github.com/bookcourt/bookstore/internal/storage/memory"
	"github.com/bookcourt/bookstore/internal/transport/httpapi"
)

func newTestRouter(t *testing.T) (*gin.Engine, *memory.CatalogStore, domain.CartStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	catalog := memory.NewCatalogStore()
	catalog.UpsertBook(domain.Book{ID: "book-a", Title: "The Master and Margarita", PriceMinor: 1000})
	catalog.UpsertBook(domain.Book{ID: "book-b", Title: "Heart of a Dog", PriceMinor: 550})

	cart := memory.NewCartStore()
	policy := access.NewRolePolicy()

	svc := order.NewService(
		memory.NewOrderRepository(),
		cart,
		catalog,
		memory.NewTimelineRepository(),
		memory.NewOutboxRepository(),
		policy,
		nil,
		nil,
	)

	router := httpapi.NewRouter(httpapi.RouterConfig{
		Orders:  svc,
		Cart:    cart,
		Catalog: catalog,
		Policy:  policy,
	})
	return router, catalog, cart
}

func doRequest(router *gin.Engine, method, path, userID, roles string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if userID != "" {
		req.Header.Set("X-User-Id", userID)
	}
	if roles != "" {
		req.Header.Set("X-User-Roles", roles)
	}
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func fillCart(t *testing.T, cart domain.CartStore, userID string, lines ...domain.CartLine) {
	t.Helper()
	for _, line := range lines {
		require.NoError(t, cart.SetLine(userID, line))
	}
}

func decodeOrder(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestMissingIdentityRejected(t *testing.T) {
	router, _, _ := newTestRouter(t)

	w := doRequest(router, http.MethodGet, "/api/v1/orders", "", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateOrderEndpoint(t *testing.T) {
	router, _, cart := newTestRouter(t)
	fillCart(t, cart, "user-1",
		domain.CartLine{BookID: "book-a", Quantity: 2},
		domain.CartLine{BookID: "book-b", Quantity: 1},
	)

	w := doRequest(router, http.MethodPost, "/api/v1/orders", "user-1", "USER",
		map[string]string{"shipping_address": "Tverskaya 1"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decodeOrder(t, w)
	assert.Equal(t, "PENDING", body["status"])
	assert.Equal(t, "25.50", body["total"])
	assert.Equal(t, float64(2550), body["total_minor"])
	assert.Len(t, body["items"], 2)
}

func TestCreateOrderEmptyCartEndpoint(t *testing.T) {
	router, _, _ := newTestRouter(t)

	w := doRequest(router, http.MethodPost, "/api/v1/orders", "user-1", "USER",
		map[string]string{"shipping_address": "Tverskaya 1"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestCreateOrderMalformedBody(t *testing.T) {
	router, _, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", bytes.NewReader([]byte("{not json")))
	req.Header.Set("X-User-Id", "user-1")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func createOrderVia(t *testing.T, router *gin.Engine, cart domain.CartStore, userID string) string {
	t.Helper()
	fillCart(t, cart, userID, domain.CartLine{BookID: "book-a", Quantity: 1})
	w := doRequest(router, http.MethodPost, "/api/v1/orders", userID, "USER",
		map[string]string{"shipping_address": "Tverskaya 1"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decodeOrder(t, w)["id"].(string)
}

func TestForeignOrderLooksMissing(t *testing.T) {
	router, _, cart := newTestRouter(t)
	orderID := createOrderVia(t, router, cart, "user-1")

	foreign := doRequest(router, http.MethodGet, "/api/v1/orders/"+orderID+"/items", "user-2", "USER", nil)
	missing := doRequest(router, http.MethodGet, "/api/v1/orders/order-404/items", "user-2", "USER", nil)

	assert.Equal(t, http.StatusNotFound, foreign.Code)
	assert.Equal(t, http.StatusNotFound, missing.Code)
	assert.JSONEq(t, missing.Body.String(), foreign.Body.String())
}

func TestUpdateStatusRequiresElevatedRole(t *testing.T) {
	router, _, cart := newTestRouter(t)
	orderID := createOrderVia(t, router, cart, "user-1")

	// Владелец без повышенной роли получает тот же 404, что и посторонний.
	denied := doRequest(router, http.MethodPatch, "/api/v1/orders/"+orderID, "user-1", "USER",
		map[string]string{"status": "PROCESSING"})
	assert.Equal(t, http.StatusNotFound, denied.Code)

	allowed := doRequest(router, http.MethodPatch, "/api/v1/orders/"+orderID, "admin-1", "ADMIN",
		map[string]string{"status": "DELIVERED"})
	require.Equal(t, http.StatusOK, allowed.Code, allowed.Body.String())
	assert.Equal(t, "DELIVERED", decodeOrder(t, allowed)["status"])
}

func TestUpdateStatusBackwardConflict(t *testing.T) {
	router, _, cart := newTestRouter(t)
	orderID := createOrderVia(t, router, cart, "user-1")

	w := doRequest(router, http.MethodPatch, "/api/v1/orders/"+orderID, "admin-1", "ADMIN",
		map[string]string{"status": "COMPLETED"})
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(router, http.MethodPatch, "/api/v1/orders/"+orderID, "admin-1", "ADMIN",
		map[string]string{"status": "PROCESSING"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestUpdateStatusUnknownValueEndpoint(t *testing.T) {
	router, _, cart := newTestRouter(t)
	orderID := createOrderVia(t, router, cart, "user-1")

	w := doRequest(router, http.MethodPatch, "/api/v1/orders/"+orderID, "admin-1", "ADMIN",
		map[string]string{"status": "SHIPPED"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteOrderEndpoint(t *testing.T) {
	router, _, cart := newTestRouter(t)
	orderID := createOrderVia(t, router, cart, "user-1")

	w := doRequest(router, http.MethodDelete, "/api/v1/orders/"+orderID, "admin-1", "ADMIN", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	// После мягкого удаления заказ исчезает из выборок владельца.
	list := doRequest(router, http.MethodGet, "/api/v1/orders", "user-1", "USER", nil)
	require.Equal(t, http.StatusOK, list.Code)
	var body struct {
		Orders []json.RawMessage `json:"orders"`
	}
	require.NoError(t, json.Unmarshal(list.Body.Bytes(), &body))
	assert.Empty(t, body.Orders)
}

func TestOrderHistoryEndpoint(t *testing.T) {
	router, _, cart := newTestRouter(t)
	orderID := createOrderVia(t, router, cart, "user-1")

	w := doRequest(router, http.MethodGet, "/api/v1/orders/"+orderID+"/history", "user-1", "USER", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Events []struct {
			Type string `json:"type"`
		} `json:"events"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Events, 1)
	assert.Equal(t, "OrderPlaced", body.Events[0].Type)
}

func TestCartEndpoints(t *testing.T) {
	router, _, _ := newTestRouter(t)

	w := doRequest(router, http.MethodPut, "/api/v1/cart/items", "user-1", "USER",
		map[string]any{"book_id": "book-a", "quantity": 2})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doRequest(router, http.MethodPut, "/api/v1/cart/items", "user-1", "USER",
		map[string]any{"book_id": "book-ghost", "quantity": 1})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(router, http.MethodGet, "/api/v1/cart", "user-1", "USER", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Items []struct {
			BookID   string `json:"book_id"`
			Quantity int32  `json:"quantity"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Items, 1)
	assert.Equal(t, "book-a", body.Items[0].BookID)
	assert.Equal(t, int32(2), body.Items[0].Quantity)

	w = doRequest(router, http.MethodDelete, "/api/v1/cart/items/book-a", "user-1", "USER", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doRequest(router, http.MethodDelete, "/api/v1/cart/items/book-a", "user-1", "USER", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCartRejectsNonPositiveQuantity(t *testing.T) {
	router, _, _ := newTestRouter(t)

	w := doRequest(router, http.MethodPut, "/api/v1/cart/items", "user-1", "USER",
		map[string]any{"book_id": "book-a", "quantity": -1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCatalogEndpoints(t *testing.T) {
	router, catalog, _ := newTestRouter(t)

	w := doRequest(router, http.MethodGet, "/api/v1/books", "user-1", "USER", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Books []struct {
			ID    string `json:"id"`
			Price string `json:"price"`
		} `json:"books"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Books, 2)

	w = doRequest(router, http.MethodGet, "/api/v1/books/book-b", "user-1", "USER", nil)
	require.Equal(t, http.StatusOK, w.Code)
	book := decodeOrder(t, w)
	assert.Equal(t, "5.50", book["price"])

	// Удалённая книга исчезает из каталога.
	catalog.UpsertBook(domain.Book{ID: "book-b", Title: "Heart of a Dog", PriceMinor: 550, Deleted: true})
	w = doRequest(router, http.MethodGet, "/api/v1/books/book-b", "user-1", "USER", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
