package services

import (
	"gorm.io/gorm"

	"github.com/minh-vuong/restaurant-orders-api/models"
)

// AvailabilityService answers whether a table is free for a date. A table
// counts as booked only when a reservation for that table and date has
// status "confirmed"; a "booked" reservation is a request, not a claim, and
// canceled reservations never block.
type AvailabilityService struct {
	DB *gorm.DB
}

// NewAvailabilityService creates an availability checker on the given
// database handle. Pass a transaction handle to check inside a transaction.
func NewAvailabilityService(db *gorm.DB) *AvailabilityService {
	return &AvailabilityService{DB: db}
}

// IsTableBooked reports whether the table is confirmed-booked for the date.
func (s *AvailabilityService) IsTableBooked(tableID uint, date string) (bool, error) {
	var count int64
	err := s.DB.Model(&models.Reservation{}).
		Where("table_id = ? AND date = ? AND status = ?", tableID, date, models.ReservationConfirmed).
		Count(&count).Error
	if err != nil {
		return false, Internal(err)
	}
	return count > 0, nil
}

// IsTableNumberBooked is IsTableBooked keyed by the customer-facing table
// number instead of the table id.
func (s *AvailabilityService) IsTableNumberBooked(tableNumber int, date string) (bool, error) {
	var count int64
	err := s.DB.Model(&models.Reservation{}).
		Joins("JOIN restaurant_tables ON restaurant_tables.id = reservations.table_id").
		Where("restaurant_tables.number = ? AND reservations.date = ? AND reservations.status = ?",
			tableNumber, date, models.ReservationConfirmed).
		Count(&count).Error
	if err != nil {
		return false, Internal(err)
	}
	return count > 0, nil
}
