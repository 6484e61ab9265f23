package controllers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/elydayvsontjs-creator/crmallesongrafica/config"
	"github.com/elydayvsontjs-creator/crmallesongrafica/middleware"
	"github.com/elydayvsontjs-creator/crmallesongrafica/models"
)

// CreateCustomerRequest represents the request body for creating a customer
type CreateCustomerRequest struct {
	Name    string  `json:"name" binding:"required"`
	Phone   string  `json:"phone" binding:"required"`
	Email   *string `json:"email" binding:"omitempty,email"`
	Company *string `json:"company"`
}

// ListCustomers handles GET /api/customers - lists the caller's customers
func ListCustomers(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid bearer token"})
		return
	}

	db := config.GetDB()
	customers := []models.Customer{}
	if err := db.Where("user_id = ?", userID).Order("created_at DESC").Find(&customers).Error; err != nil {
		log.Printf("Failed to list customers: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load customers"})
		return
	}

	c.JSON(http.StatusOK, customers)
}

// CreateCustomer handles POST /api/customers - creates a customer unless one
// with the same name and phone already exists for the caller. The existence
// check runs before the insert, so two concurrent requests can still slip a
// duplicate through.
func CreateCustomer(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid bearer token"})
		return
	}

	var req CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name and phone are required"})
		return
	}

	db := config.GetDB()

	var existing models.Customer
	err = db.Where("user_id = ? AND name = ? AND phone = ?", userID, req.Name, req.Phone).
		First(&existing).Error
	if err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "a customer with this name and phone already exists"})
		return
	}
	if err != gorm.ErrRecordNotFound {
		log.Printf("Failed to check for duplicate customer: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save customer"})
		return
	}

	customer := models.Customer{
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		Company: req.Company,
		UserID:  userID,
	}

	if err := db.Create(&customer).Error; err != nil {
		log.Printf("Failed to create customer: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save customer"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": customer.ID})
}

// DeleteCustomer handles DELETE /api/customers/:id - deletes a customer and
// all of their orders and order images in one transaction. The cascade is
// application-managed.
func DeleteCustomer(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid bearer token"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid customer id"})
		return
	}

	db := config.GetDB()

	var customer models.Customer
	if err := db.Where("id = ? AND user_id = ?", id, userID).First(&customer).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "customer not found"})
			return
		}
		log.Printf("Failed to load customer %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete customer"})
		return
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		orderIDs := tx.Model(&models.Order{}).Select("id").
			Where("customer_id = ? AND user_id = ?", customer.ID, userID)
		if err := tx.Where("order_id IN (?)", orderIDs).Delete(&models.OrderImage{}).Error; err != nil {
			return err
		}
		if err := tx.Where("customer_id = ? AND user_id = ?", customer.ID, userID).
			Delete(&models.Order{}).Error; err != nil {
			return err
		}
		return tx.Delete(&customer).Error
	})
	if err != nil {
		log.Printf("Failed to delete customer %d: %v", customer.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete customer"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
