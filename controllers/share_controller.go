package controllers

import (
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/elydayvsontjs-creator/crmallesongrafica/config"
	"github.com/elydayvsontjs-creator/crmallesongrafica/middleware"
	"github.com/elydayvsontjs-creator/crmallesongrafica/models"
	"github.com/elydayvsontjs-creator/crmallesongrafica/services"
)

// ShareOrder handles GET /api/orders/:id/share - builds a plain-text order
// summary and a prefilled WhatsApp link to the customer's phone. For a
// batched order the summary covers every member of the batch.
func ShareOrder(c *gin.Context) {
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

	items := []models.Order{order}
	if order.BatchID != nil && *order.BatchID != "" {
		items = nil
		if err := db.Where("batch_id = ? AND user_id = ?", *order.BatchID, userID).
			Order("id").Find(&items).Error; err != nil {
			log.Printf("Failed to load batch %s: %v", *order.BatchID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load order"})
			return
		}
	}

	text := buildShareText(&order.Customer, items)

	c.JSON(http.StatusOK, gin.H{
		"text": text,
		"url":  fmt.Sprintf("https://wa.me/%s?text=%s", phoneDigits(order.Customer.Phone), url.QueryEscape(text)),
	})
}

func buildShareText(customer *models.Customer, items []models.Order) string {
	var b strings.Builder

	fmt.Fprintf(&b, "*Pedido #%d*\n", items[0].ID)
	fmt.Fprintf(&b, "Cliente: %s\n\n", customer.Name)

	total := 0.0
	for _, item := range items {
		serviceType := item.ServiceType
		if len(items) > 1 && serviceType == "" {
			serviceType = services.BatchServiceType
		}
		fmt.Fprintf(&b, "%s - %d x R$ %.2f = R$ %.2f\n",
			serviceType, item.Quantity, item.UnitPrice, item.TotalPrice)
		total += item.TotalPrice
	}

	fmt.Fprintf(&b, "\nTotal: R$ %.2f\n", total)
	if items[0].DeliveryDate != "" {
		fmt.Fprintf(&b, "Entrega: %s\n", items[0].DeliveryDate)
	}

	return b.String()
}

// phoneDigits strips everything but digits, the form wa.me expects
func phoneDigits(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
