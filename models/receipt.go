package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Receipt statuses. A Pending receipt is the customer's cart; everything
// else is order history.
const (
	ReceiptPending   = "Pending"
	ReceiptOrdered   = "Ordered"
	ReceiptCompleted = "Completed"
	ReceiptCanceled  = "Canceled"
)

// receiptNextStates holds the legal receipt state machine:
// Pending -> Ordered -> {Completed, Canceled}.
var receiptNextStates = map[string][]string{
	ReceiptPending: {ReceiptOrdered},
	ReceiptOrdered: {ReceiptCompleted, ReceiptCanceled},
}

// IsLegalReceiptTransition reports whether a receipt may move from one
// status to another. Callers supply the target status, so it must always be
// validated here rather than trusted.
func IsLegalReceiptTransition(from, to string) bool {
	for _, next := range receiptNextStates[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Receipt represents an order. At most one Pending receipt exists per user;
// its total price is recomputed from its lines on every mutation.
type Receipt struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	UserID        uint            `gorm:"not null;index" json:"user_id"`
	User          *User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	StaffID       *uint           `gorm:"index" json:"staff_id,omitempty"` // nullable, set on staff action
	Staff         *User           `gorm:"foreignKey:StaffID" json:"staff,omitempty"`
	ReservationID *uint           `gorm:"index" json:"reservation_id,omitempty"` // nullable, a receipt may exist without a table
	Reservation   *Reservation    `gorm:"foreignKey:ReservationID" json:"reservation,omitempty"`
	OrderDate     string          `gorm:"not null" json:"order_date"` // YYYY-MM-DD, stored as text so the value reads back unchanged
	TotalPrice    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_price"`
	Status        string          `gorm:"not null;default:'Pending';index" json:"status"`
	Items         []OrderItem     `gorm:"foreignKey:ReceiptID" json:"items,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Receipt model
func (Receipt) TableName() string {
	return "receipts"
}
