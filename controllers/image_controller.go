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
	"github.com/elydayvsontjs-creator/crmallesongrafica/services"
	"github.com/elydayvsontjs-creator/crmallesongrafica/utils"
)

// AddImageRequest represents the request body for attaching an image
type AddImageRequest struct {
	Image string `json:"image" binding:"required"`
}

// AddOrderImage handles POST /api/orders/:id/images - attaches an image
// payload to an existing order
func AddOrderImage(c *gin.Context) {
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

	var req AddImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image is required"})
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
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save image"})
		return
	}

	stored, err := services.GetImageStore().Store(req.Image)
	if err != nil {
		if payloadErr, ok := err.(*utils.ImagePayloadError); ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": payloadErr.Message})
			return
		}
		log.Printf("Failed to store image for order %d: %v", order.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save image"})
		return
	}

	image := models.OrderImage{
		OrderID:     order.ID,
		Filename:    stored.Filename,
		ContentType: stored.ContentType,
		Data:        stored.Data,
	}
	if err := db.Create(&image).Error; err != nil {
		log.Printf("Failed to save image for order %d: %v", order.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save image"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": image.ID})
}

// DeleteOrderImage handles DELETE /api/orders/:id/images/:imageId - removes
// one image from an order
func DeleteOrderImage(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid bearer token"})
		return
	}

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}
	imageID, err := strconv.ParseUint(c.Param("imageId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid image id"})
		return
	}

	db := config.GetDB()

	var order models.Order
	if err := db.Where("id = ? AND user_id = ?", orderID, userID).First(&order).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		log.Printf("Failed to load order %d: %v", orderID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete image"})
		return
	}

	var image models.OrderImage
	if err := db.Where("id = ? AND order_id = ?", imageID, order.ID).First(&image).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "image not found"})
			return
		}
		log.Printf("Failed to load image %d: %v", imageID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete image"})
		return
	}

	if err := services.GetImageStore().Delete(&image); err != nil {
		log.Printf("Failed to release storage for image %d: %v", image.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete image"})
		return
	}
	if err := db.Delete(&image).Error; err != nil {
		log.Printf("Failed to delete image %d: %v", image.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete image"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
