package models

import (
	"time"
)

// Customer represents a client of the print shop
type Customer struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Phone     string    `gorm:"not null" json:"phone"`
	Email     *string   `json:"email,omitempty"`
	Company   *string   `json:"company,omitempty"`
	UserID    string    `gorm:"not null;index" json:"-"` // token subject of the owning user
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}
