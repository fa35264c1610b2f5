package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minh-vuong/restaurant-orders-api/models"
)

func TestBindReservation_CreatesBookedReservationAndLinksCart(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, models.RoleCustomer, "customer@test.com")
	table := createTestTable(t, db, 4)
	svc := NewReservationService(db)

	reservation, err := svc.BindReservation(user.ID, 4, "2026-09-15", "window seat")
	require.NoError(t, err)
	assert.Equal(t, models.ReservationBooked, reservation.Status)
	assert.Equal(t, table.ID, reservation.TableID)
	require.NotNil(t, reservation.SpecialRequest)
	assert.Equal(t, "window seat", *reservation.SpecialRequest)

	// Binding without a cart creates one and links the reservation to it.
	var receipt models.Receipt
	err = db.Where("user_id = ? AND status = ?", user.ID, models.ReceiptPending).
		First(&receipt).Error
	require.NoError(t, err)
	require.NotNil(t, receipt.ReservationID)
	assert.Equal(t, reservation.ID, *receipt.ReservationID)
}

func TestBindReservation_ExistingCartIsReused(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, models.RoleCustomer, "customer@test.com")
	item := createTestMenuItem(t, db, "Pho Bo", "10.00")
	createTestTable(t, db, 4)
	carts := NewCartService(db)
	svc := NewReservationService(db)

	cart, err := carts.AddItem(user.ID, item.ID, 2)
	require.NoError(t, err)

	reservation, err := svc.BindReservation(user.ID, 4, "2026-09-15", "")
	require.NoError(t, err)

	var receipt models.Receipt
	require.NoError(t, db.First(&receipt, cart.ID).Error)
	require.NotNil(t, receipt.ReservationID)
	assert.Equal(t, reservation.ID, *receipt.ReservationID)
	assert.Equal(t, "20.00", receipt.TotalPrice.StringFixed(2))
}

func TestBindReservation_OneReservationPerCart(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, models.RoleCustomer, "customer@test.com")
	createTestTable(t, db, 4)
	createTestTable(t, db, 5)
	svc := NewReservationService(db)

	_, err := svc.BindReservation(user.ID, 4, "2026-09-15", "")
	require.NoError(t, err)

	_, err = svc.BindReservation(user.ID, 5, "2026-09-15", "")
	require.Error(t, err)
	assert.Equal(t, KindConflict, KindOf(err))
}

func TestBindReservation_ConfirmedTableConflicts(t *testing.T) {
	db := setupTestDB(t)
	alice := createTestUser(t, db, models.RoleCustomer, "alice@test.com")
	bob := createTestUser(t, db, models.RoleCustomer, "bob@test.com")
	table := createTestTable(t, db, 4)
	svc := NewReservationService(db)

	confirmed := models.Reservation{
		UserID:  alice.ID,
		TableID: table.ID,
		Date:    "2026-09-15",
		Status:  models.ReservationConfirmed,
	}
	require.NoError(t, db.Create(&confirmed).Error)

	_, err := svc.BindReservation(bob.ID, 4, "2026-09-15", "")
	require.Error(t, err)
	assert.Equal(t, KindConflict, KindOf(err))
}

func TestBindReservation_SameTableDifferentDate(t *testing.T) {
	db := setupTestDB(t)
	alice := createTestUser(t, db, models.RoleCustomer, "alice@test.com")
	bob := createTestUser(t, db, models.RoleCustomer, "bob@test.com")
	table := createTestTable(t, db, 4)
	svc := NewReservationService(db)

	confirmed := models.Reservation{
		UserID:  alice.ID,
		TableID: table.ID,
		Date:    "2026-09-15",
		Status:  models.ReservationConfirmed,
	}
	require.NoError(t, db.Create(&confirmed).Error)

	reservation, err := svc.BindReservation(bob.ID, 4, "2026-09-16", "")
	require.NoError(t, err)
	assert.Equal(t, models.ReservationBooked, reservation.Status)
}

func TestBindReservation_UnknownTableNumber(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, models.RoleCustomer, "customer@test.com")
	svc := NewReservationService(db)

	_, err := svc.BindReservation(user.ID, 42, "2026-09-15", "")
	require.Error(t, err)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestBindReservation_MissingDate(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, models.RoleCustomer, "customer@test.com")
	svc := NewReservationService(db)

	_, err := svc.BindReservation(user.ID, 4, "", "")
	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestStaffCreateReservation_ConfirmedWithOrderedReceipt(t *testing.T) {
	db := setupTestDB(t)
	staff := createTestUser(t, db, models.RoleStaff, "staff@test.com")
	customer := createTestUser(t, db, models.RoleCustomer, "walkin@test.com")
	table := createTestTable(t, db, 7)
	svc := NewReservationService(db)

	result, err := svc.StaffCreateReservation(staff.ID, "walkin@test.com", 7, "2026-09-15", "")
	require.NoError(t, err)

	assert.Equal(t, models.ReservationConfirmed, result.Reservation.Status)
	assert.Equal(t, customer.ID, result.Reservation.UserID)
	assert.Equal(t, table.ID, result.Reservation.TableID)

	assert.Equal(t, models.ReceiptOrdered, result.Receipt.Status)
	assert.Equal(t, customer.ID, result.Receipt.UserID)
	require.NotNil(t, result.Receipt.StaffID)
	assert.Equal(t, staff.ID, *result.Receipt.StaffID)
	require.NotNil(t, result.Receipt.ReservationID)
	assert.Equal(t, result.Reservation.ID, *result.Receipt.ReservationID)
	assert.True(t, result.Receipt.TotalPrice.IsZero())
}

func TestStaffCreateReservation_ConfirmedTableConflicts(t *testing.T) {
	db := setupTestDB(t)
	staff := createTestUser(t, db, models.RoleStaff, "staff@test.com")
	alice := createTestUser(t, db, models.RoleCustomer, "alice@test.com")
	createTestUser(t, db, models.RoleCustomer, "bob@test.com")
	table := createTestTable(t, db, 7)
	svc := NewReservationService(db)

	confirmed := models.Reservation{
		UserID:  alice.ID,
		TableID: table.ID,
		Date:    "2026-09-15",
		Status:  models.ReservationConfirmed,
	}
	require.NoError(t, db.Create(&confirmed).Error)

	_, err := svc.StaffCreateReservation(staff.ID, "bob@test.com", 7, "2026-09-15", "")
	require.Error(t, err)
	assert.Equal(t, KindConflict, KindOf(err))
}

func TestStaffCreateReservation_UnknownEmail(t *testing.T) {
	db := setupTestDB(t)
	staff := createTestUser(t, db, models.RoleStaff, "staff@test.com")
	createTestTable(t, db, 7)
	svc := NewReservationService(db)

	_, err := svc.StaffCreateReservation(staff.ID, "nobody@test.com", 7, "2026-09-15", "")
	require.Error(t, err)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestStaffCreateReservation_UnknownTable(t *testing.T) {
	db := setupTestDB(t)
	staff := createTestUser(t, db, models.RoleStaff, "staff@test.com")
	createTestUser(t, db, models.RoleCustomer, "walkin@test.com")
	svc := NewReservationService(db)

	_, err := svc.StaffCreateReservation(staff.ID, "walkin@test.com", 42, "2026-09-15", "")
	require.Error(t, err)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestStaffCreateReservation_FailureCreatesNothing(t *testing.T) {
	db := setupTestDB(t)
	staff := createTestUser(t, db, models.RoleStaff, "staff@test.com")
	alice := createTestUser(t, db, models.RoleCustomer, "alice@test.com")
	createTestUser(t, db, models.RoleCustomer, "bob@test.com")
	table := createTestTable(t, db, 7)
	svc := NewReservationService(db)

	confirmed := models.Reservation{
		UserID:  alice.ID,
		TableID: table.ID,
		Date:    "2026-09-15",
		Status:  models.ReservationConfirmed,
	}
	require.NoError(t, db.Create(&confirmed).Error)

	_, err := svc.StaffCreateReservation(staff.ID, "bob@test.com", 7, "2026-09-15", "")
	require.Error(t, err)

	// Reservation and receipt are created together or not at all.
	var reservations int64
	require.NoError(t, db.Model(&models.Reservation{}).Count(&reservations).Error)
	assert.Equal(t, int64(1), reservations)

	var receipts int64
	require.NoError(t, db.Model(&models.Receipt{}).Count(&receipts).Error)
	assert.Equal(t, int64(0), receipts)
}
