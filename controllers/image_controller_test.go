package controllers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/elydayvsontjs-creator/crmallesongrafica/models"
)

func TestAddOrderImage(t *testing.T) {
	db := setupTestDB(t)
	customer := seedCustomer(t, db, "user-1", "Ana", "11999990000")
	order := seedOrder(t, db, models.Order{
		CustomerID: customer.ID, ServiceType: "Banner", Quantity: 1,
		UnitPrice: 80, TotalPrice: 80, OrderDate: "2026-08-10", UserID: "user-1",
	})

	router := setupTestRouter()
	router.POST("/api/orders/:id/images", mockAuthMiddleware("user-1"), AddOrderImage)

	w := performRequest(router, http.MethodPost,
		fmt.Sprintf("/api/orders/%d/images", order.ID),
		map[string]interface{}{"image": pngDataURL("artwork")})

	assert.Equal(t, http.StatusCreated, w.Code)
	response := decodeBody(t, w)
	assert.NotZero(t, response["id"])

	var image models.OrderImage
	assert.NoError(t, db.First(&image, uint(response["id"].(float64))).Error)
	assert.Equal(t, order.ID, image.OrderID)
	assert.Equal(t, "image/png", image.ContentType)
}

func TestAddOrderImage_InvalidPayload(t *testing.T) {
	db := setupTestDB(t)
	customer := seedCustomer(t, db, "user-1", "Ana", "11999990000")
	order := seedOrder(t, db, models.Order{
		CustomerID: customer.ID, ServiceType: "Banner", Quantity: 1,
		UnitPrice: 80, TotalPrice: 80, OrderDate: "2026-08-10", UserID: "user-1",
	})

	router := setupTestRouter()
	router.POST("/api/orders/:id/images", mockAuthMiddleware("user-1"), AddOrderImage)

	w := performRequest(router, http.MethodPost,
		fmt.Sprintf("/api/orders/%d/images", order.ID),
		map[string]interface{}{"image": "not-a-data-url"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAddOrderImage_OrderNotFound(t *testing.T) {
	setupTestDB(t)

	router := setupTestRouter()
	router.POST("/api/orders/:id/images", mockAuthMiddleware("user-1"), AddOrderImage)

	w := performRequest(router, http.MethodPost, "/api/orders/99999/images",
		map[string]interface{}{"image": pngDataURL("artwork")})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteOrderImage(t *testing.T) {
	db := setupTestDB(t)
	customer := seedCustomer(t, db, "user-1", "Ana", "11999990000")
	order := seedOrder(t, db, models.Order{
		CustomerID: customer.ID, ServiceType: "Banner", Quantity: 1,
		UnitPrice: 80, TotalPrice: 80, OrderDate: "2026-08-10", UserID: "user-1",
	})
	image := models.OrderImage{OrderID: order.ID, Data: pngDataURL("artwork")}
	db.Create(&image)

	router := setupTestRouter()
	router.DELETE("/api/orders/:id/images/:imageId", mockAuthMiddleware("user-1"), DeleteOrderImage)

	w := performRequest(router, http.MethodDelete,
		fmt.Sprintf("/api/orders/%d/images/%d", order.ID, image.ID), nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&models.OrderImage{}).Count(&count)
	assert.Zero(t, count)
}

func TestDeleteOrderImage_WrongOrder(t *testing.T) {
	db := setupTestDB(t)
	customer := seedCustomer(t, db, "user-1", "Ana", "11999990000")
	order := seedOrder(t, db, models.Order{
		CustomerID: customer.ID, ServiceType: "Banner", Quantity: 1,
		UnitPrice: 80, TotalPrice: 80, OrderDate: "2026-08-10", UserID: "user-1",
	})
	otherOrder := seedOrder(t, db, models.Order{
		CustomerID: customer.ID, ServiceType: "Flyers", Quantity: 1,
		UnitPrice: 10, TotalPrice: 10, OrderDate: "2026-08-10", UserID: "user-1",
	})
	image := models.OrderImage{OrderID: otherOrder.ID, Data: pngDataURL("artwork")}
	db.Create(&image)

	router := setupTestRouter()
	router.DELETE("/api/orders/:id/images/:imageId", mockAuthMiddleware("user-1"), DeleteOrderImage)

	w := performRequest(router, http.MethodDelete,
		fmt.Sprintf("/api/orders/%d/images/%d", order.ID, image.ID), nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
