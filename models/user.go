package models

import (
	"time"

	"gorm.io/gorm"
)

// User roles. Self-registration always produces a customer; staff accounts
// are seeded or created by other staff.
const (
	RoleCustomer = 1
	RoleStaff    = 2
)

// User represents a user in the system (customer or staff)
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Role      int            `gorm:"not null;default:1" json:"role"` // 1 = customer, 2 = staff
	Name      string         `gorm:"not null" json:"name"`
	Birthday  *string        `json:"birthday,omitempty"` // YYYY-MM-DD
	Phone     string         `gorm:"uniqueIndex;not null" json:"phone"`
	Email     string         `gorm:"uniqueIndex;not null" json:"email"`
	Password  string         `gorm:"not null" json:"-"` // bcrypt hash
	Address   string         `json:"address"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}

// IsStaff reports whether the user may perform staff operations.
func (u *User) IsStaff() bool {
	return u.Role == RoleStaff
}
