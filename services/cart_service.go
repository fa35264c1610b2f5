package services

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/minh-vuong/restaurant-orders-api/models"
)

// CartService owns the single Pending receipt (cart) per customer and its
// line mutations. Every mutating call runs in one transaction so a line
// update and the total recompute are never observable apart.
type CartService struct {
	DB *gorm.DB
}

// NewCartService creates a cart service on the given database handle.
func NewCartService(db *gorm.DB) *CartService {
	return &CartService{DB: db}
}

// CartMutationResult reports the outcome of an item removal.
type CartMutationResult struct {
	Emptied bool   `json:"emptied"` // true when the cart itself was deleted
	Message string `json:"message"`
}

// CartDetail is the customer's pending cart with its lines and, when bound,
// the reservation and table.
type CartDetail struct {
	Receipt     *models.Receipt         `json:"receipt"`
	Items       []models.OrderItem      `json:"items"`
	Reservation *models.Reservation     `json:"reservation,omitempty"`
	Table       *models.RestaurantTable `json:"table,omitempty"`
}

// today returns the system current date in the format stored in date columns.
func today() string {
	return time.Now().Format("2006-01-02")
}

// getOrCreatePendingReceipt returns the user's Pending receipt, creating one
// when absent. It must run inside a transaction: the existence check and the
// insert have to be isolated together or concurrent calls could create two
// Pending receipts for the same user.
func getOrCreatePendingReceipt(tx *gorm.DB, userID uint, orderDate string) (*models.Receipt, error) {
	var receipt models.Receipt
	err := tx.Where("user_id = ? AND status = ?", userID, models.ReceiptPending).
		First(&receipt).Error
	if err == nil {
		return &receipt, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, Internal(err)
	}

	if orderDate == "" {
		orderDate = today()
	}
	receipt = models.Receipt{
		UserID:     userID,
		OrderDate:  orderDate,
		TotalPrice: decimal.Zero,
		Status:     models.ReceiptPending,
	}
	if err := tx.Create(&receipt).Error; err != nil {
		return nil, Internal(err)
	}
	return &receipt, nil
}

// recomputeReceiptTotal persists the receipt total as the sum of its line
// prices. Call after every line mutation, inside the same transaction.
func recomputeReceiptTotal(tx *gorm.DB, receiptID uint) error {
	var lines []models.OrderItem
	if err := tx.Where("receipt_id = ?", receiptID).Find(&lines).Error; err != nil {
		return Internal(err)
	}

	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Price)
	}

	err := tx.Model(&models.Receipt{}).
		Where("id = ?", receiptID).
		Update("total_price", total).Error
	if err != nil {
		return Internal(err)
	}
	return nil
}

// GetOrCreatePendingCart returns the user's current cart, creating an empty
// Pending receipt when none exists. Idempotent: repeated or concurrent calls
// for the same user yield the same single Pending receipt.
func (s *CartService) GetOrCreatePendingCart(userID uint, orderDate string) (*models.Receipt, error) {
	var receipt *models.Receipt
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var txErr error
		receipt, txErr = getOrCreatePendingReceipt(tx, userID, orderDate)
		return txErr
	})
	if err != nil {
		return nil, err
	}
	return receipt, nil
}

// AddItem puts quantity units of a menu item into the user's cart, creating
// the cart when absent. An existing line is incremented and its price
// recomputed from the menu's current unit price; a new line snapshots the
// unit price at insert time. The receipt total is recomputed afterwards.
func (s *CartService) AddItem(userID, itemID uint, quantity int) (*models.Receipt, error) {
	if quantity <= 0 {
		return nil, Validation("quantity must be greater than zero")
	}

	var receipt *models.Receipt
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var item models.MenuItem
		if err := tx.First(&item, itemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFound("menu item %d does not exist", itemID)
			}
			return Internal(err)
		}

		var txErr error
		receipt, txErr = getOrCreatePendingReceipt(tx, userID, "")
		if txErr != nil {
			return txErr
		}

		var line models.OrderItem
		err := tx.Where("receipt_id = ? AND menu_item_id = ?", receipt.ID, itemID).
			First(&line).Error
		switch {
		case err == nil:
			newQuantity := line.Quantity + quantity
			newPrice := item.Price.Mul(decimal.NewFromInt(int64(newQuantity)))
			updates := map[string]interface{}{
				"quantity":   newQuantity,
				"unit_price": item.Price,
				"price":      newPrice,
			}
			if err := tx.Model(&models.OrderItem{}).
				Where("receipt_id = ? AND menu_item_id = ?", receipt.ID, itemID).
				Updates(updates).Error; err != nil {
				return Internal(err)
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			line = models.OrderItem{
				ReceiptID:  receipt.ID,
				MenuItemID: itemID,
				Quantity:   quantity,
				UnitPrice:  item.Price,
				Price:      item.Price.Mul(decimal.NewFromInt(int64(quantity))),
			}
			if err := tx.Create(&line).Error; err != nil {
				return Internal(err)
			}
		default:
			return Internal(err)
		}

		if err := recomputeReceiptTotal(tx, receipt.ID); err != nil {
			return err
		}
		return tx.First(receipt, receipt.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return receipt, nil
}

// RemoveItem takes quantity units of a menu item out of the user's cart.
// A decrement to zero or below deletes the line; a cart left with no lines
// and no bound reservation is deleted outright, since an empty unbound cart
// must not exist.
func (s *CartService) RemoveItem(userID, itemID uint, quantity int) (*CartMutationResult, error) {
	if quantity <= 0 {
		return nil, Validation("quantity must be greater than zero")
	}

	var result *CartMutationResult
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var receipt models.Receipt
		err := tx.Where("user_id = ? AND status = ?", userID, models.ReceiptPending).
			First(&receipt).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFound("you do not have a cart yet")
			}
			return Internal(err)
		}

		var line models.OrderItem
		err = tx.Where("receipt_id = ? AND menu_item_id = ?", receipt.ID, itemID).
			First(&line).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFound("the item is not in the cart")
			}
			return Internal(err)
		}

		newQuantity := line.Quantity - quantity
		if newQuantity > 0 {
			newPrice := line.UnitPrice.Mul(decimal.NewFromInt(int64(newQuantity)))
			updates := map[string]interface{}{
				"quantity": newQuantity,
				"price":    newPrice,
			}
			if err := tx.Model(&models.OrderItem{}).
				Where("receipt_id = ? AND menu_item_id = ?", receipt.ID, itemID).
				Updates(updates).Error; err != nil {
				return Internal(err)
			}
		} else {
			if err := tx.Where("receipt_id = ? AND menu_item_id = ?", receipt.ID, itemID).
				Delete(&models.OrderItem{}).Error; err != nil {
				return Internal(err)
			}
		}

		var remaining int64
		if err := tx.Model(&models.OrderItem{}).
			Where("receipt_id = ?", receipt.ID).
			Count(&remaining).Error; err != nil {
			return Internal(err)
		}

		if remaining == 0 && receipt.ReservationID == nil {
			if err := tx.Delete(&receipt).Error; err != nil {
				return Internal(err)
			}
			result = &CartMutationResult{Emptied: true, Message: "there are no items in the cart"}
			return nil
		}

		if err := recomputeReceiptTotal(tx, receipt.ID); err != nil {
			return err
		}
		result = &CartMutationResult{Message: "updated successfully"}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// GetPendingCart returns the user's cart with its lines, menu details and
// any bound reservation and table.
func (s *CartService) GetPendingCart(userID uint) (*CartDetail, error) {
	var receipt models.Receipt
	err := s.DB.Where("user_id = ? AND status = ?", userID, models.ReceiptPending).
		First(&receipt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("there are no orders pending")
		}
		return nil, Internal(err)
	}

	detail := &CartDetail{Receipt: &receipt}

	err = s.DB.Preload("MenuItem").
		Where("receipt_id = ?", receipt.ID).
		Find(&detail.Items).Error
	if err != nil {
		return nil, Internal(err)
	}

	if receipt.ReservationID != nil {
		var reservation models.Reservation
		if err := s.DB.First(&reservation, *receipt.ReservationID).Error; err != nil {
			return nil, Internal(err)
		}
		detail.Reservation = &reservation

		var table models.RestaurantTable
		if err := s.DB.First(&table, reservation.TableID).Error; err != nil {
			return nil, Internal(err)
		}
		detail.Table = &table
	}

	return detail, nil
}
