package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/minh-vuong/restaurant-orders-api/config"
	"github.com/minh-vuong/restaurant-orders-api/models"
)

// CreateTableRequest represents the request body for creating a table
type CreateTableRequest struct {
	Number          int `json:"number" binding:"required"`
	SeatingCapacity int `json:"seating_capacity" binding:"required,gt=0"`
}

// ListTables handles GET /api/v1/tables - lists all tables
func ListTables(c *gin.Context) {
	db := config.GetDB()

	var tables []models.RestaurantTable
	if err := db.Order("number").Find(&tables).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to list tables")
		return
	}

	respondSuccess(c, http.StatusOK, tables)
}

// GetTable handles GET /api/v1/tables/:id - returns one table
func GetTable(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid table id")
		return
	}

	db := config.GetDB()
	var table models.RestaurantTable
	if err := db.First(&table, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "Table not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load table")
		return
	}

	respondSuccess(c, http.StatusOK, table)
}

// CreateTable handles POST /api/v1/staff/tables - creates a table with a
// unique number
func CreateTable(c *gin.Context) {
	var req CreateTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data")
		return
	}

	db := config.GetDB()

	var count int64
	if err := db.Model(&models.RestaurantTable{}).Where("number = ?", req.Number).Count(&count).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to check existing tables")
		return
	}
	if count > 0 {
		respondError(c, http.StatusConflict, "CONFLICT", "A table with that number already exists")
		return
	}

	table := models.RestaurantTable{
		Number:          req.Number,
		SeatingCapacity: req.SeatingCapacity,
	}
	if err := db.Create(&table).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create table")
		return
	}

	respondSuccess(c, http.StatusCreated, table)
}

// DeleteTable handles DELETE /api/v1/staff/tables/:id - removes a table
func DeleteTable(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid table id")
		return
	}

	db := config.GetDB()
	var table models.RestaurantTable
	if err := db.First(&table, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "Table not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load table")
		return
	}

	if err := db.Delete(&table).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete table")
		return
	}

	respondSuccess(c, http.StatusOK, gin.H{"message": "Table deleted successfully"})
}
