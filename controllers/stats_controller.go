package controllers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/elydayvsontjs-creator/crmallesongrafica/config"
	"github.com/elydayvsontjs-creator/crmallesongrafica/middleware"
	"github.com/elydayvsontjs-creator/crmallesongrafica/models"
)

// GetStats handles GET /api/stats - recomputes the dashboard counters from
// the caller's rows on every call. Monthly revenue covers the current
// calendar month of the server's local clock, boundaries inclusive.
func GetStats(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid bearer token"})
		return
	}

	db := config.GetDB()

	var totalOrders int64
	if err := db.Model(&models.Order{}).Where("user_id = ?", userID).
		Count(&totalOrders).Error; err != nil {
		log.Printf("Failed to count orders: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load stats"})
		return
	}

	var ongoingOrders int64
	if err := db.Model(&models.Order{}).
		Where("user_id = ? AND status IN ?", userID, []string{models.StatusQuote, models.StatusInProduction}).
		Count(&ongoingOrders).Error; err != nil {
		log.Printf("Failed to count ongoing orders: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load stats"})
		return
	}

	var pendingOrders int64
	if err := db.Model(&models.Order{}).
		Where("user_id = ? AND status = ?", userID, models.StatusQuote).
		Count(&pendingOrders).Error; err != nil {
		log.Printf("Failed to count pending orders: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load stats"})
		return
	}

	var totalCustomers int64
	if err := db.Model(&models.Customer{}).Where("user_id = ?", userID).
		Count(&totalCustomers).Error; err != nil {
		log.Printf("Failed to count customers: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load stats"})
		return
	}

	first, last := monthBounds(time.Now())
	var monthlyRevenue float64
	if err := db.Model(&models.Order{}).
		Select("COALESCE(SUM(total_price), 0)").
		Where("user_id = ? AND order_date >= ? AND order_date <= ?", userID, first, last).
		Scan(&monthlyRevenue).Error; err != nil {
		log.Printf("Failed to sum monthly revenue: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load stats"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"totalOrders":    totalOrders,
		"ongoingOrders":  ongoingOrders,
		"monthlyRevenue": monthlyRevenue,
		"totalCustomers": totalCustomers,
		"pendingOrders":  pendingOrders,
	})
}

// monthBounds returns the first and last day of t's calendar month as
// YYYY-MM-DD strings, both inclusive.
func monthBounds(t time.Time) (string, string) {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	last := first.AddDate(0, 1, -1)
	return first.Format(dateLayout), last.Format(dateLayout)
}
