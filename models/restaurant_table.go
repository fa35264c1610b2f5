package models

import (
	"time"

	"gorm.io/gorm"
)

// RestaurantTable represents a physical table that can be reserved
type RestaurantTable struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	Number          int            `gorm:"uniqueIndex;not null" json:"number"`
	SeatingCapacity int            `gorm:"not null;check:seating_capacity > 0" json:"seating_capacity"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the RestaurantTable model
func (RestaurantTable) TableName() string {
	return "restaurant_tables"
}
