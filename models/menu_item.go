package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MenuItem represents a dish on the restaurant menu
type MenuItem struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"uniqueIndex;not null" json:"name"`
	Type        string          `gorm:"not null" json:"type"` // e.g. appetizer, main, dessert, drink
	Description string          `json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Status      string          `gorm:"not null;default:'available'" json:"status"` // available, unavailable
	ImageS3Key  *string         `json:"image_s3_key,omitempty"`                     // nullable, S3 key for the dish photo
	ImageURL    *string         `gorm:"-" json:"image_url,omitempty"`               // computed field, presigned URL for the photo
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`
}

// TableName specifies the table name for the MenuItem model
func (MenuItem) TableName() string {
	return "menu_items"
}
