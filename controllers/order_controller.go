package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/minh-vuong/restaurant-orders-api/config"
	"github.com/minh-vuong/restaurant-orders-api/middleware"
	"github.com/minh-vuong/restaurant-orders-api/services"
)

// orderService builds the order service with the publisher configured at
// startup.
func orderService() *services.OrderService {
	return services.NewOrderService(config.GetDB(), eventPublisher)
}

// eventPublisher is the process-wide order event publisher; nil when no
// broker is configured.
var eventPublisher services.EventPublisher

// SetEventPublisher wires the order event publisher (called at startup and
// from tests).
func SetEventPublisher(p services.EventPublisher) {
	eventPublisher = p
}

// PlaceOrderRequest represents the request body for finalizing a cart
type PlaceOrderRequest struct {
	Status string `json:"status" binding:"required"`
}

// PlaceOrder handles POST /api/v1/orders - finalizes the customer's pending cart
func PlaceOrder(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Could not extract user information")
		return
	}

	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Missing status value")
		return
	}

	receipt, err := orderService().PlaceOrder(c.Request.Context(), userID, req.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, receipt)
}

// CancelOrder handles POST /api/v1/orders/:id/cancel - cancels an Ordered receipt
func CancelOrder(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Could not extract user information")
		return
	}

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid order id")
		return
	}

	receipt, err := orderService().CancelOrder(c.Request.Context(), userID, uint(orderID))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, receipt)
}

// ListOrders handles GET /api/v1/orders - lists the customer's receipts
func ListOrders(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Could not extract user information")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))
	status := c.Query("status")

	list, err := orderService().ListReceipts(userID, status, page, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, list)
}
