package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/minh-vuong/restaurant-orders-api/middleware"
)

// StaffVerifyRequest represents the request body for the staff receipt transition
type StaffVerifyRequest struct {
	Status string `json:"status" binding:"required"`
}

// StaffVerifyReceipt handles PATCH /api/v1/staff/receipts/:id/status -
// moves an Ordered receipt to Completed or Canceled
func StaffVerifyReceipt(c *gin.Context) {
	staffID, err := middleware.GetUserID(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Could not extract user information")
		return
	}

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid order id")
		return
	}

	var req StaffVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Missing status value")
		return
	}

	receipt, err := orderService().StaffVerifyReceipt(c.Request.Context(), staffID, uint(orderID), req.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, receipt)
}

// StaffListReceipts handles GET /api/v1/staff/receipts - lists all receipts,
// optionally narrowed to one customer
func StaffListReceipts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))

	var userID uint
	if raw := c.Query("user_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid user id")
			return
		}
		userID = uint(parsed)
	}

	list, err := orderService().StaffListReceipts(userID, page, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, list)
}

// StaffGetReceipt handles GET /api/v1/staff/receipts/:id - returns one
// receipt with its customer, lines and reservation
func StaffGetReceipt(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid order id")
		return
	}

	receipt, err := orderService().GetReceiptDetail(uint(orderID))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, receipt)
}
