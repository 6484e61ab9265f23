package models

import (
	"time"
)

// OrderImage holds one image attached to an order. With the default storage
// backend Data is the base64 payload itself; with the S3 backend Data holds
// the object key instead.
type OrderImage struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	OrderID     uint      `gorm:"not null;index" json:"order_id"`
	Order       Order     `gorm:"foreignKey:OrderID" json:"-"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type"`
	Data        string    `gorm:"type:text" json:"data"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName specifies the table name for the OrderImage model
func (OrderImage) TableName() string {
	return "order_images"
}
