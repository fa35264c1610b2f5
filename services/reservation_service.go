package services

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/minh-vuong/restaurant-orders-api/models"
)

// ReservationService attaches reservations to carts and performs staff-side
// direct bookings. One reservation per cart; a table may carry at most one
// confirmed reservation per date.
type ReservationService struct {
	DB *gorm.DB
}

// NewReservationService creates a reservation service on the given database
// handle.
func NewReservationService(db *gorm.DB) *ReservationService {
	return &ReservationService{DB: db}
}

// StaffBookingResult is the reservation plus the receipt a staff direct
// booking creates together.
type StaffBookingResult struct {
	Reservation *models.Reservation `json:"reservation"`
	Receipt     *models.Receipt     `json:"receipt"`
}

// checkExistingReservation rejects a table+date that already carries a
// locked-in booking: a non-canceled reservation that is confirmed and whose
// linked receipt has been Ordered cannot be booked over.
func checkExistingReservation(tx *gorm.DB, tableID uint, date string) error {
	var existing models.Reservation
	err := tx.Where("table_id = ? AND date = ? AND status <> ?",
		tableID, date, models.ReservationCanceled).
		First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return Internal(err)
	}

	var linked models.Receipt
	err = tx.Where("reservation_id = ?", existing.ID).First(&linked).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return Internal(err)
	}

	if existing.Status == models.ReservationConfirmed && linked.Status == models.ReceiptOrdered {
		return Conflict("table is already confirmed and the order has been placed, it cannot be booked again")
	}
	return nil
}

// BindReservation books a table for the customer's pending cart, creating
// the cart when absent. The reservation starts as "booked"; it is confirmed
// only when the customer places the order.
func (s *ReservationService) BindReservation(userID uint, tableNumber int, date, specialRequest string) (*models.Reservation, error) {
	if date == "" {
		return nil, Validation("reservation date is required")
	}

	var reservation *models.Reservation
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		availability := NewAvailabilityService(tx)
		booked, err := availability.IsTableNumberBooked(tableNumber, date)
		if err != nil {
			return err
		}
		if booked {
			return Conflict("this table has been booked by another customer or is not available")
		}

		receipt, err := getOrCreatePendingReceipt(tx, userID, "")
		if err != nil {
			return err
		}
		if receipt.ReservationID != nil {
			return Conflict("please confirm your table reservation as you have already selected a table")
		}

		var table models.RestaurantTable
		err = tx.Where("number = ?", tableNumber).First(&table).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFound("there are no tables matching the table number entered")
			}
			return Internal(err)
		}

		if err := checkExistingReservation(tx, table.ID, date); err != nil {
			return err
		}

		newReservation := models.Reservation{
			UserID:  userID,
			TableID: table.ID,
			Date:    date,
			Status:  models.ReservationBooked,
		}
		if specialRequest != "" {
			newReservation.SpecialRequest = &specialRequest
		}
		if err := tx.Create(&newReservation).Error; err != nil {
			return Internal(err)
		}

		err = tx.Model(&models.Receipt{}).
			Where("id = ?", receipt.ID).
			Update("reservation_id", newReservation.ID).Error
		if err != nil {
			return Internal(err)
		}

		reservation = &newReservation
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reservation, nil
}

// StaffCreateReservation books a table on behalf of a walk-in or phone
// customer, identified by email. The cart stage is skipped entirely: the
// reservation is created already confirmed together with an Ordered receipt
// bound to it, both in one transaction.
func (s *ReservationService) StaffCreateReservation(staffID uint, userEmail string, tableNumber int, date, specialRequest string) (*StaffBookingResult, error) {
	if date == "" {
		return nil, Validation("reservation date is required")
	}

	var result *StaffBookingResult
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var user models.User
		err := tx.Where("email = ?", userEmail).First(&user).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFound("there are no users matching the email entered")
			}
			return Internal(err)
		}

		var table models.RestaurantTable
		err = tx.Where("number = ?", tableNumber).First(&table).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFound("there are no tables matching the table number entered")
			}
			return Internal(err)
		}

		availability := NewAvailabilityService(tx)
		booked, err := availability.IsTableBooked(table.ID, date)
		if err != nil {
			return err
		}
		if booked {
			return Conflict("this table has been booked by another customer or is not available")
		}
		if err := checkExistingReservation(tx, table.ID, date); err != nil {
			return err
		}

		reservation := models.Reservation{
			UserID:  user.ID,
			TableID: table.ID,
			Date:    date,
			Status:  models.ReservationConfirmed,
		}
		if specialRequest != "" {
			reservation.SpecialRequest = &specialRequest
		}
		if err := tx.Create(&reservation).Error; err != nil {
			return Internal(err)
		}

		receipt := models.Receipt{
			UserID:        user.ID,
			StaffID:       &staffID,
			ReservationID: &reservation.ID,
			OrderDate:     today(),
			TotalPrice:    decimal.Zero,
			Status:        models.ReceiptOrdered,
		}
		if err := tx.Create(&receipt).Error; err != nil {
			return Internal(err)
		}

		result = &StaffBookingResult{Reservation: &reservation, Receipt: &receipt}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
