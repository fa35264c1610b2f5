package models

import (
	"time"

	"gorm.io/gorm"
)

// Reservation statuses. Only "confirmed" claims a table; a merely "booked"
// reservation has not been locked in yet and does not block other customers.
const (
	ReservationBooked    = "booked"
	ReservationConfirmed = "confirmed"
	ReservationCanceled  = "canceled"
)

// Reservation represents a table booking, optionally linked from a Receipt.
// The link lives on Receipt.ReservationID only; reservations do not point
// back at receipts.
type Reservation struct {
	ID             uint             `gorm:"primaryKey" json:"id"`
	UserID         uint             `gorm:"not null;index" json:"user_id"`
	TableID        uint             `gorm:"not null;index" json:"table_id"`
	Table          *RestaurantTable `gorm:"foreignKey:TableID" json:"table,omitempty"`
	Date           string           `gorm:"not null;index" json:"date"` // YYYY-MM-DD, stored as text so the value reads back unchanged
	SpecialRequest *string          `json:"special_request,omitempty"`
	Status         string           `gorm:"not null;default:'booked'" json:"status"` // booked, confirmed, canceled
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
	DeletedAt      gorm.DeletedAt   `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Reservation model
func (Reservation) TableName() string {
	return "reservations"
}
