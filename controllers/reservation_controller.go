package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/minh-vuong/restaurant-orders-api/config"
	"github.com/minh-vuong/restaurant-orders-api/middleware"
	"github.com/minh-vuong/restaurant-orders-api/services"
)

// BindReservationRequest represents the request body for booking a table
// onto the customer's cart
type BindReservationRequest struct {
	TableNumber    int    `json:"table_number" binding:"required"`
	Date           string `json:"reservation_date" binding:"required"`
	SpecialRequest string `json:"special_request"`
}

// StaffReservationRequest represents the request body for a staff direct booking
type StaffReservationRequest struct {
	UserEmail      string `json:"user_email" binding:"required,email"`
	TableNumber    int    `json:"table_number" binding:"required"`
	Date           string `json:"reservation_date" binding:"required"`
	SpecialRequest string `json:"special_request"`
}

// BindReservation handles POST /api/v1/cart/reservation - books a table for
// the customer's pending cart
func BindReservation(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Could not extract user information")
		return
	}

	var req BindReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Missing reservation information or reservation date")
		return
	}

	reservations := services.NewReservationService(config.GetDB())
	reservation, err := reservations.BindReservation(userID, req.TableNumber, req.Date, req.SpecialRequest)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondSuccess(c, http.StatusCreated, reservation)
}

// StaffCreateReservation handles POST /api/v1/staff/reservations - books a
// table and creates an Ordered receipt for a walk-in or phone customer
func StaffCreateReservation(c *gin.Context) {
	staffID, err := middleware.GetUserID(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Could not extract user information")
		return
	}

	var req StaffReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Missing reservation information or reservation date")
		return
	}

	reservations := services.NewReservationService(config.GetDB())
	result, err := reservations.StaffCreateReservation(staffID, req.UserEmail, req.TableNumber, req.Date, req.SpecialRequest)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondSuccess(c, http.StatusCreated, result)
}
