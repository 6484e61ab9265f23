package models

import (
	"time"
)

// Order statuses. An order starts as a quote and moves through production
// until delivery. StatusArchived exists in the dashboard's type but no
// transition reaches it yet.
const (
	StatusQuote        = "quote"
	StatusInProduction = "in_production"
	StatusFinished     = "finished"
	StatusDelivered    = "delivered"
	StatusArchived     = "archived"
)

// ValidOrderStatuses are the statuses the status-update endpoint accepts.
var ValidOrderStatuses = []string{
	StatusQuote,
	StatusInProduction,
	StatusFinished,
	StatusDelivered,
}

// IsValidStatus reports whether s is a status the API accepts on update.
func IsValidStatus(s string) bool {
	for _, v := range ValidOrderStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Order represents a single print job row. Orders created together in one
// multi-item submission share a BatchID and are always shown and mutated
// as one unit.
type Order struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	CustomerID   uint         `gorm:"not null;index" json:"customer_id"`
	Customer     Customer     `gorm:"foreignKey:CustomerID" json:"-"`
	ServiceType  string       `gorm:"not null" json:"service_type"`
	Description  string       `json:"description"`
	Quantity     int          `gorm:"not null;check:quantity > 0" json:"quantity"`
	UnitPrice    float64      `gorm:"not null" json:"unit_price"`
	TotalPrice   float64      `gorm:"not null" json:"total_price"` // quantity * unit_price, computed by the client
	OrderDate    string       `gorm:"not null;index" json:"order_date"`    // YYYY-MM-DD
	DeliveryDate string       `json:"delivery_date"`                       // YYYY-MM-DD
	Status       string       `gorm:"not null;default:'quote'" json:"status"`
	Notes        *string      `json:"notes,omitempty"`
	BatchID      *string      `gorm:"index" json:"batch_id,omitempty"`
	UserID       string       `gorm:"not null;index" json:"-"` // token subject of the owning user
	Images       []OrderImage `gorm:"foreignKey:OrderID" json:"-"`
	CreatedAt    time.Time    `json:"created_at"`

	// Denormalized from the customer row at read time
	CustomerName  string `gorm:"-" json:"customer_name,omitempty"`
	CustomerPhone string `gorm:"-" json:"customer_phone,omitempty"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}
