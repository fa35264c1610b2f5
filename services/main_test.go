package services

import (
	"fmt"
	"os"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/minh-vuong/restaurant-orders-api/models"
)

// TestMain runs before all tests in the services package
// It ensures GO_ENV is set to "test" to prevent accidental data loss
func TestMain(m *testing.M) {
	env := os.Getenv("GO_ENV")
	if env != "test" {
		fmt.Fprintf(os.Stderr, "\n"+
			"╔════════════════════════════════════════════════════════════════╗\n"+
			"║                    SAFETY CHECK FAILED                         ║\n"+
			"║                                                                ║\n"+
			"║  Tests must run with GO_ENV=test to prevent data loss!        ║\n"+
			"║                                                                ║\n"+
			"║  Current GO_ENV: %-45s ║\n"+
			"║                                                                ║\n"+
			"║  To run tests safely:                                          ║\n"+
			"║    make test                                                   ║\n"+
			"║    GO_ENV=test go test ./...                                   ║\n"+
			"╚════════════════════════════════════════════════════════════════╝\n\n",
			fmt.Sprintf("%q", env))
		os.Exit(1)
	}

	// Run tests
	os.Exit(m.Run())
}

// setupTestDB creates an in-memory database with all models migrated.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.MenuItem{},
		&models.RestaurantTable{},
		&models.Reservation{},
		&models.Receipt{},
		&models.OrderItem{},
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})

	return db
}

// createTestUser inserts a user with the given role and returns it.
func createTestUser(t *testing.T, db *gorm.DB, role int, email string) *models.User {
	t.Helper()

	user := models.User{
		Role:     role,
		Name:     "Test User",
		Phone:    fmt.Sprintf("555-%s", email),
		Email:    email,
		Password: "hashed-password",
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

// createTestMenuItem inserts a menu item with the given price and returns it.
func createTestMenuItem(t *testing.T, db *gorm.DB, name, price string) *models.MenuItem {
	t.Helper()

	item := models.MenuItem{
		Name:  name,
		Type:  "main",
		Price: decimal.RequireFromString(price),
	}
	require.NoError(t, db.Create(&item).Error)
	return &item
}

// createTestTable inserts a restaurant table with the given number.
func createTestTable(t *testing.T, db *gorm.DB, number int) *models.RestaurantTable {
	t.Helper()

	table := models.RestaurantTable{
		Number:          number,
		SeatingCapacity: 4,
	}
	require.NoError(t, db.Create(&table).Error)
	return &table
}

// lineCount returns the number of order item lines on a receipt.
func lineCount(t *testing.T, db *gorm.DB, receiptID uint) int64 {
	t.Helper()

	var count int64
	err := db.Model(&models.OrderItem{}).
		Where("receipt_id = ?", receiptID).
		Count(&count).Error
	require.NoError(t, err)
	return count
}
