package services

import (
	"context"
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/minh-vuong/restaurant-orders-api/models"
)

// OrderService drives the receipt state machine
// (Pending -> Ordered -> {Completed, Canceled}) and keeps any linked
// reservation in lockstep with it.
type OrderService struct {
	DB     *gorm.DB
	Events EventPublisher // nil disables event publishing
}

// NewOrderService creates an order service on the given database handle.
// The publisher may be nil when no broker is configured.
func NewOrderService(db *gorm.DB, events EventPublisher) *OrderService {
	return &OrderService{DB: db, Events: events}
}

// Pagination describes one page of a list result.
type Pagination struct {
	Page         int   `json:"page"`
	Limit        int   `json:"limit"`
	TotalRecords int64 `json:"total_records"`
	TotalPages   int   `json:"total_pages"`
}

func newPagination(page, limit int, total int64) Pagination {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 5
	}
	pages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{Page: page, Limit: limit, TotalRecords: total, TotalPages: pages}
}

func (p Pagination) offset() int {
	return (p.Page - 1) * p.Limit
}

// ReceiptList is one page of receipts.
type ReceiptList struct {
	Receipts []models.Receipt `json:"receipts"`
	Metadata Pagination       `json:"metadata"`
}

// publish emits an order lifecycle event after a committed transition.
// Event delivery is best-effort: a broker failure never fails the order.
func (s *OrderService) publish(ctx context.Context, event string, receipt *models.Receipt) {
	if s.Events == nil {
		return
	}
	err := s.Events.PublishOrderEvent(ctx, OrderEvent{
		Event:      event,
		OrderID:    receipt.ID,
		UserID:     receipt.UserID,
		Status:     receipt.Status,
		TotalPrice: receipt.TotalPrice.StringFixed(2),
		OccurredAt: time.Now(),
	})
	if err != nil {
		log.Printf("Failed to publish %s event for order %d: %v", event, receipt.ID, err)
	}
}

// PlaceOrder finalizes the customer's pending cart. The target status comes
// from the caller but is validated against the legal next-states of Pending,
// so only Ordered is accepted. With a bound reservation the table's
// availability is re-checked first: the cart may have been sitting while
// another party confirmed the same table, and that race must surface as a
// Conflict rather than a double booking. On success the reservation is
// confirmed and the receipt becomes Ordered.
func (s *OrderService) PlaceOrder(ctx context.Context, userID uint, targetStatus string) (*models.Receipt, error) {
	if !models.IsLegalReceiptTransition(models.ReceiptPending, targetStatus) {
		return nil, Validation("a pending order can only move to %s", models.ReceiptOrdered)
	}

	var receipt models.Receipt
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("user_id = ? AND status = ?", userID, models.ReceiptPending).
			First(&receipt).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFound("there are no orders pending")
			}
			return Internal(err)
		}

		if receipt.ReservationID != nil {
			var reservation models.Reservation
			err := tx.First(&reservation, *receipt.ReservationID).Error
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return NotFound("no tables found related to your order")
				}
				return Internal(err)
			}

			availability := NewAvailabilityService(tx)
			booked, err := availability.IsTableBooked(reservation.TableID, reservation.Date)
			if err != nil {
				return err
			}
			if booked {
				return Conflict("this table has been booked by another customer or is not available")
			}

			err = tx.Model(&models.Reservation{}).
				Where("id = ?", reservation.ID).
				Update("status", models.ReservationConfirmed).Error
			if err != nil {
				return Internal(err)
			}
		}

		err = tx.Model(&models.Receipt{}).
			Where("id = ?", receipt.ID).
			Update("status", targetStatus).Error
		if err != nil {
			return Internal(err)
		}
		receipt.Status = targetStatus
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, EventOrderPlaced, &receipt)
	return &receipt, nil
}

// CancelOrder cancels the user's Ordered receipt with the given id, moving
// any linked reservation to canceled in the same transaction.
func (s *OrderService) CancelOrder(ctx context.Context, userID, orderID uint) (*models.Receipt, error) {
	var receipt models.Receipt
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("id = ? AND user_id = ? AND status = ?",
			orderID, userID, models.ReceiptOrdered).
			First(&receipt).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFound("order cannot be cancelled")
			}
			return Internal(err)
		}

		if receipt.ReservationID != nil {
			err = tx.Model(&models.Reservation{}).
				Where("id = ?", *receipt.ReservationID).
				Update("status", models.ReservationCanceled).Error
			if err != nil {
				return Internal(err)
			}
		}

		err = tx.Model(&models.Receipt{}).
			Where("id = ?", receipt.ID).
			Update("status", models.ReceiptCanceled).Error
		if err != nil {
			return Internal(err)
		}
		receipt.Status = models.ReceiptCanceled
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, EventOrderCanceled, &receipt)
	return &receipt, nil
}

// StaffVerifyReceipt is the staff-side transition: an Ordered receipt is
// moved to Completed or Canceled, recording the acting staff member. Any
// linked reservation follows in its own vocabulary: canceled on a canceled
// receipt, confirmed otherwise. Both updates commit or roll back together.
func (s *OrderService) StaffVerifyReceipt(ctx context.Context, staffID, orderID uint, targetStatus string) (*models.Receipt, error) {
	if !models.IsLegalReceiptTransition(models.ReceiptOrdered, targetStatus) {
		return nil, Validation("status must be %s or %s", models.ReceiptCompleted, models.ReceiptCanceled)
	}

	var receipt models.Receipt
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.First(&receipt, orderID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFound("no receipts found")
			}
			return Internal(err)
		}

		if receipt.Status != models.ReceiptOrdered {
			return Validation("cannot confirm if the receipt has not been Ordered")
		}

		updates := map[string]interface{}{
			"status":   targetStatus,
			"staff_id": staffID,
		}
		err = tx.Model(&models.Receipt{}).
			Where("id = ?", receipt.ID).
			Updates(updates).Error
		if err != nil {
			return Internal(err)
		}

		if receipt.ReservationID != nil {
			reservationStatus := models.ReservationConfirmed
			if targetStatus == models.ReceiptCanceled {
				reservationStatus = models.ReservationCanceled
			}
			err = tx.Model(&models.Reservation{}).
				Where("id = ?", *receipt.ReservationID).
				Update("status", reservationStatus).Error
			if err != nil {
				return Internal(err)
			}
		}

		receipt.Status = targetStatus
		receipt.StaffID = &staffID
		return nil
	})
	if err != nil {
		return nil, err
	}

	event := EventOrderCompleted
	if targetStatus == models.ReceiptCanceled {
		event = EventOrderCanceled
	}
	s.publish(ctx, event, &receipt)
	return &receipt, nil
}

// receiptStatusFilter reports whether a list filter names a known receipt
// status; anything else is ignored rather than rejected.
func receiptStatusFilter(status string) bool {
	switch status {
	case models.ReceiptPending, models.ReceiptOrdered, models.ReceiptCompleted, models.ReceiptCanceled:
		return true
	}
	return false
}

// ListReceipts returns one page of the user's receipts, newest order date
// first, optionally filtered by status.
func (s *OrderService) ListReceipts(userID uint, status string, page, limit int) (*ReceiptList, error) {
	query := s.DB.Model(&models.Receipt{}).Where("user_id = ?", userID)
	if receiptStatusFilter(status) {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, Internal(err)
	}

	metadata := newPagination(page, limit, total)
	var receipts []models.Receipt
	err := query.
		Preload("Items.MenuItem").
		Preload("Reservation.Table").
		Order("order_date DESC").
		Limit(metadata.Limit).
		Offset(metadata.offset()).
		Find(&receipts).Error
	if err != nil {
		return nil, Internal(err)
	}

	return &ReceiptList{Receipts: receipts, Metadata: metadata}, nil
}

// StaffListReceipts returns one page of all receipts, optionally narrowed to
// a single customer.
func (s *OrderService) StaffListReceipts(userID uint, page, limit int) (*ReceiptList, error) {
	query := s.DB.Model(&models.Receipt{})
	if userID != 0 {
		query = query.Where("user_id = ?", userID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, Internal(err)
	}

	metadata := newPagination(page, limit, total)
	var receipts []models.Receipt
	err := query.
		Order("order_date DESC").
		Limit(metadata.Limit).
		Offset(metadata.offset()).
		Find(&receipts).Error
	if err != nil {
		return nil, Internal(err)
	}

	return &ReceiptList{Receipts: receipts, Metadata: metadata}, nil
}

// GetReceiptDetail returns one receipt with its customer, staff, lines and
// reservation loaded.
func (s *OrderService) GetReceiptDetail(orderID uint) (*models.Receipt, error) {
	var receipt models.Receipt
	err := s.DB.
		Preload("User").
		Preload("Staff").
		Preload("Items.MenuItem").
		Preload("Reservation.Table").
		First(&receipt, orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("receipt not found")
		}
		return nil, Internal(err)
	}
	return &receipt, nil
}
