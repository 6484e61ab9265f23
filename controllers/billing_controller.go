package controllers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/elydayvsontjs-creator/crmallesongrafica/config"
	"github.com/elydayvsontjs-creator/crmallesongrafica/middleware"
	"github.com/elydayvsontjs-creator/crmallesongrafica/models"
)

// MonthRevenue is one point of the billing trend chart
type MonthRevenue struct {
	Name    string  `json:"name"`
	Revenue float64 `json:"revenue"`
}

// StatusBucket is one slice of the billing distribution chart
type StatusBucket struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
	Color string `json:"color"`
}

var ptMonths = []string{
	"jan", "fev", "mar", "abr", "mai", "jun",
	"jul", "ago", "set", "out", "nov", "dez",
}

// GetBillingTrends handles GET /api/billing/trends - sums revenue for each
// of the trailing six calendar months, oldest first, the current month
// last. One range scan per month.
func GetBillingTrends(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid bearer token"})
		return
	}

	db := config.GetDB()
	now := time.Now()
	currentMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	trends := make([]MonthRevenue, 0, 6)
	for i := 5; i >= 0; i-- {
		month := currentMonth.AddDate(0, -i, 0)
		first, last := monthBounds(month)

		var revenue float64
		if err := db.Model(&models.Order{}).
			Select("COALESCE(SUM(total_price), 0)").
			Where("user_id = ? AND order_date >= ? AND order_date <= ?", userID, first, last).
			Scan(&revenue).Error; err != nil {
			log.Printf("Failed to sum revenue for %s: %v", first, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load billing trends"})
			return
		}

		trends = append(trends, MonthRevenue{Name: monthLabel(month, now), Revenue: revenue})
	}

	c.JSON(http.StatusOK, trends)
}

// GetBillingDistribution handles GET /api/billing/distribution - counts
// delivered orders against everything still open.
func GetBillingDistribution(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid bearer token"})
		return
	}

	db := config.GetDB()

	var delivered int64
	if err := db.Model(&models.Order{}).
		Where("user_id = ? AND status = ?", userID, models.StatusDelivered).
		Count(&delivered).Error; err != nil {
		log.Printf("Failed to count delivered orders: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load billing distribution"})
		return
	}

	var open int64
	if err := db.Model(&models.Order{}).
		Where("user_id = ? AND status IN ?", userID,
			[]string{models.StatusQuote, models.StatusInProduction, models.StatusFinished}).
		Count(&open).Error; err != nil {
		log.Printf("Failed to count open orders: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load billing distribution"})
		return
	}

	c.JSON(http.StatusOK, []StatusBucket{
		{Name: "Finalizados", Value: delivered, Color: "#22c55e"},
		{Name: "Em Aberto", Value: open, Color: "#f59e0b"},
	})
}

// monthLabel returns the Portuguese short month name, with the year
// appended when the month falls outside the current year.
func monthLabel(month, now time.Time) string {
	name := ptMonths[int(month.Month())-1]
	if month.Year() != now.Year() {
		return fmt.Sprintf("%s %d", name, month.Year())
	}
	return name
}
