package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/elydayvsontjs-creator/crmallesongrafica/models"
)

func TestShareOrder(t *testing.T) {
	db := setupTestDB(t)
	customer := seedCustomer(t, db, "user-1", "Ana", "(11) 99999-0000")
	order := seedOrder(t, db, models.Order{
		CustomerID: customer.ID, ServiceType: "Cartões de visita", Quantity: 1000,
		UnitPrice: 0.15, TotalPrice: 150, OrderDate: "2026-08-10",
		DeliveryDate: "2026-08-20", UserID: "user-1",
	})

	router := setupTestRouter()
	router.GET("/api/orders/:id/share", mockAuthMiddleware("user-1"), ShareOrder)

	w := performRequest(router, http.MethodGet, fmt.Sprintf("/api/orders/%d/share", order.ID), nil)

	assert.Equal(t, http.StatusOK, w.Code)
	response := decodeBody(t, w)

	text := response["text"].(string)
	assert.Contains(t, text, "Ana")
	assert.Contains(t, text, "Cartões de visita")
	assert.Contains(t, text, "1000")
	assert.Contains(t, text, "R$ 150.00")
	assert.Contains(t, text, "2026-08-20")

	url := response["url"].(string)
	assert.True(t, strings.HasPrefix(url, "https://wa.me/11999990000?text="),
		"phone must be reduced to digits: %s", url)
}

func TestShareOrder_BatchCoversAllMembers(t *testing.T) {
	db := setupTestDB(t)
	customer := seedCustomer(t, db, "user-1", "Ana", "11999990000")

	batchID := "1756200000000-abcd1234"
	first := seedOrder(t, db, models.Order{
		CustomerID: customer.ID, ServiceType: "Adesivos", Quantity: 2,
		UnitPrice: 10, TotalPrice: 20, OrderDate: "2026-08-10",
		BatchID: &batchID, UserID: "user-1",
	})
	seedOrder(t, db, models.Order{
		CustomerID: customer.ID, ServiceType: "Banner", Quantity: 1,
		UnitPrice: 5, TotalPrice: 5, OrderDate: "2026-08-10",
		BatchID: &batchID, UserID: "user-1",
	})

	router := setupTestRouter()
	router.GET("/api/orders/:id/share", mockAuthMiddleware("user-1"), ShareOrder)

	w := performRequest(router, http.MethodGet, fmt.Sprintf("/api/orders/%d/share", first.ID), nil)

	assert.Equal(t, http.StatusOK, w.Code)
	response := decodeBody(t, w)

	text := response["text"].(string)
	assert.Contains(t, text, "Adesivos")
	assert.Contains(t, text, "Banner")
	assert.Contains(t, text, "R$ 25.00")
}

func TestShareOrder_NotFound(t *testing.T) {
	setupTestDB(t)

	router := setupTestRouter()
	router.GET("/api/orders/:id/share", mockAuthMiddleware("user-1"), ShareOrder)

	w := performRequest(router, http.MethodGet, "/api/orders/99999/share", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
