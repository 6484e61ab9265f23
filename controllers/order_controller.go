package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/elydayvsontjs-creator/crmallesongrafica/config"
	"github.com/elydayvsontjs-creator/crmallesongrafica/middleware"
	"github.com/elydayvsontjs-creator/crmallesongrafica/models"
	"github.com/elydayvsontjs-creator/crmallesongrafica/services"
	"github.com/elydayvsontjs-creator/crmallesongrafica/utils"
)

// OrderItemRequest represents one order in a create call. POST /api/orders
// accepts either a single object or an array of these; an array with two or
// more items becomes a batch.
type OrderItemRequest struct {
	CustomerID   uint     `json:"customer_id"`
	ServiceType  string   `json:"service_type"`
	Description  string   `json:"description"`
	Quantity     int      `json:"quantity"`
	UnitPrice    float64  `json:"unit_price"`
	TotalPrice   float64  `json:"total_price"`
	OrderDate    string   `json:"order_date"`
	DeliveryDate string   `json:"delivery_date"`
	Status       string   `json:"status"`
	Notes        *string  `json:"notes"`
	Images       []string `json:"images"`
}

const dateLayout = "2006-01-02"

func (r *OrderItemRequest) validate() error {
	if r.CustomerID == 0 {
		return fmt.Errorf("customer_id is required")
	}
	if r.ServiceType == "" {
		return fmt.Errorf("service_type is required")
	}
	if r.Quantity <= 0 {
		return fmt.Errorf("quantity must be greater than zero")
	}
	if r.OrderDate == "" {
		return fmt.Errorf("order_date is required")
	}
	if _, err := time.Parse(dateLayout, r.OrderDate); err != nil {
		return fmt.Errorf("order_date must be formatted as YYYY-MM-DD")
	}
	if r.DeliveryDate != "" {
		if _, err := time.Parse(dateLayout, r.DeliveryDate); err != nil {
			return fmt.Errorf("delivery_date must be formatted as YYYY-MM-DD")
		}
	}
	if r.Status != "" && !models.IsValidStatus(r.Status) {
		return fmt.Errorf("invalid status %q", r.Status)
	}
	return nil
}

// OrderDetail is the response body of GET /api/orders/:id
type OrderDetail struct {
	models.Order
	Images     []models.OrderImage `json:"images"`
	BatchItems []models.Order      `json:"batch_items,omitempty"`
}

// UpdateStatusRequest represents the request body for a status update
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ListOrders handles GET /api/orders - lists the caller's orders with the
// customer name and phone denormalized onto each row. With ?view=grouped
// the orders sharing a batch id collapse into one synthetic row each.
func ListOrders(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid bearer token"})
		return
	}

	db := config.GetDB()
	orders := []models.Order{}
	if err := db.Preload("Customer").Where("user_id = ?", userID).
		Order("order_date DESC, id DESC").Find(&orders).Error; err != nil {
		log.Printf("Failed to list orders: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load orders"})
		return
	}

	for i := range orders {
		orders[i].CustomerName = orders[i].Customer.Name
		orders[i].CustomerPhone = orders[i].Customer.Phone
	}

	if c.Query("view") == "grouped" {
		c.JSON(http.StatusOK, services.GroupOrders(orders))
		return
	}

	c.JSON(http.StatusOK, orders)
}

// GetOrder handles GET /api/orders/:id - returns one order with its images
// and, when the order belongs to a batch, the full member list.
func GetOrder(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid bearer token"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	db := config.GetDB()

	var order models.Order
	if err := db.Preload("Customer").Where("id = ? AND user_id = ?", id, userID).
		First(&order).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		log.Printf("Failed to load order %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load order"})
		return
	}
	order.CustomerName = order.Customer.Name
	order.CustomerPhone = order.Customer.Phone

	detail := OrderDetail{Order: order, Images: []models.OrderImage{}}

	if err := db.Where("order_id = ?", order.ID).Order("id").
		Find(&detail.Images).Error; err != nil {
		log.Printf("Failed to load images for order %d: %v", order.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load order"})
		return
	}

	if order.BatchID != nil && *order.BatchID != "" {
		var members []models.Order
		if err := db.Preload("Customer").
			Where("batch_id = ? AND user_id = ?", *order.BatchID, userID).
			Order("id").Find(&members).Error; err != nil {
			log.Printf("Failed to load batch %s: %v", *order.BatchID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load order"})
			return
		}
		for i := range members {
			members[i].CustomerName = members[i].Customer.Name
			members[i].CustomerPhone = members[i].Customer.Phone
		}
		detail.BatchItems = members
	}

	c.JSON(http.StatusOK, detail)
}

// CreateOrders handles POST /api/orders - creates one order or, for an
// array payload with two or more items, a batch of orders sharing a fresh
// batch id. Orders and their images are inserted in one transaction so a
// failed item leaves nothing behind.
func CreateOrders(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid bearer token"})
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return
	}

	var items []OrderItemRequest
	if trimmed := bytes.TrimSpace(body); len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &items); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
	} else {
		var single OrderItemRequest
		if err := json.Unmarshal(trimmed, &single); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		items = append(items, single)
	}

	if len(items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "at least one order is required"})
		return
	}

	for _, item := range items {
		if err := item.validate(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	db := config.GetDB()

	// Every referenced customer must belong to the caller
	for _, item := range items {
		var customer models.Customer
		if err := db.Where("id = ? AND user_id = ?", item.CustomerID, userID).
			First(&customer).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusBadRequest, gin.H{"error": "customer not found"})
				return
			}
			log.Printf("Failed to load customer %d: %v", item.CustomerID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save orders"})
			return
		}
	}

	var batchID *string
	if len(items) > 1 {
		id := services.NewBatchID()
		batchID = &id
	}

	store := services.GetImageStore()
	ids := make([]uint, 0, len(items))

	err = db.Transaction(func(tx *gorm.DB) error {
		for _, item := range items {
			status := item.Status
			if status == "" {
				status = models.StatusQuote
			}

			order := models.Order{
				CustomerID:   item.CustomerID,
				ServiceType:  item.ServiceType,
				Description:  item.Description,
				Quantity:     item.Quantity,
				UnitPrice:    item.UnitPrice,
				TotalPrice:   item.TotalPrice,
				OrderDate:    item.OrderDate,
				DeliveryDate: item.DeliveryDate,
				Status:       status,
				Notes:        item.Notes,
				BatchID:      batchID,
				UserID:       userID,
			}
			if err := tx.Create(&order).Error; err != nil {
				return err
			}

			for _, payload := range item.Images {
				stored, err := store.Store(payload)
				if err != nil {
					return err
				}
				image := models.OrderImage{
					OrderID:     order.ID,
					Filename:    stored.Filename,
					ContentType: stored.ContentType,
					Data:        stored.Data,
				}
				if err := tx.Create(&image).Error; err != nil {
					return err
				}
			}

			ids = append(ids, order.ID)
		}
		return nil
	})
	if err != nil {
		if payloadErr, ok := err.(*utils.ImagePayloadError); ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": payloadErr.Message})
			return
		}
		log.Printf("Failed to save orders: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save orders"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ids": ids})
}

// UpdateOrderStatus handles PATCH /api/orders/:id/status - sets the status
// of an order. When the order belongs to a batch the new status is applied
// to every member in a single update.
func UpdateOrderStatus(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid bearer token"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status is required"})
		return
	}
	if !models.IsValidStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid status %q", req.Status)})
		return
	}

	db := config.GetDB()

	var order models.Order
	if err := db.Where("id = ? AND user_id = ?", id, userID).First(&order).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		log.Printf("Failed to load order %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update order"})
		return
	}

	query := db.Model(&models.Order{})
	if order.BatchID != nil && *order.BatchID != "" {
		query = query.Where("batch_id = ? AND user_id = ?", *order.BatchID, userID)
	} else {
		query = query.Where("id = ?", order.ID)
	}
	if err := query.Update("status", req.Status).Error; err != nil {
		log.Printf("Failed to update status of order %d: %v", order.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update order"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DeleteOrder handles DELETE /api/orders/:id - deletes an order and its
// images. When the order belongs to a batch every member is deleted, in one
// transaction.
func DeleteOrder(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid bearer token"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	db := config.GetDB()

	var order models.Order
	if err := db.Where("id = ? AND user_id = ?", id, userID).First(&order).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		log.Printf("Failed to load order %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete order"})
		return
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if order.BatchID != nil && *order.BatchID != "" {
			memberIDs := tx.Model(&models.Order{}).Select("id").
				Where("batch_id = ? AND user_id = ?", *order.BatchID, userID)
			if err := tx.Where("order_id IN (?)", memberIDs).
				Delete(&models.OrderImage{}).Error; err != nil {
				return err
			}
			return tx.Where("batch_id = ? AND user_id = ?", *order.BatchID, userID).
				Delete(&models.Order{}).Error
		}

		if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderImage{}).Error; err != nil {
			return err
		}
		return tx.Delete(&order).Error
	})
	if err != nil {
		log.Printf("Failed to delete order %d: %v", order.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete order"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
