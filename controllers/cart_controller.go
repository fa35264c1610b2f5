package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/minh-vuong/restaurant-orders-api/config"
	"github.com/minh-vuong/restaurant-orders-api/middleware"
	"github.com/minh-vuong/restaurant-orders-api/services"
)

// CreateCartRequest represents the request body for creating an empty cart
type CreateCartRequest struct {
	OrderDate string `json:"order_date"`
}

// CartItemRequest represents the request body for cart item mutations
type CartItemRequest struct {
	ItemID   uint `json:"item_id" binding:"required"`
	Quantity int  `json:"quantity" binding:"required,gt=0"`
}

// GetCart handles GET /api/v1/cart - returns the customer's pending cart
func GetCart(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Could not extract user information")
		return
	}

	carts := services.NewCartService(config.GetDB())
	detail, err := carts.GetPendingCart(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, detail)
}

// CreateCart handles POST /api/v1/cart - returns the customer's pending
// cart, creating an empty one when absent
func CreateCart(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Could not extract user information")
		return
	}

	var req CreateCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data")
		return
	}

	carts := services.NewCartService(config.GetDB())
	receipt, err := carts.GetOrCreatePendingCart(userID, req.OrderDate)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondSuccess(c, http.StatusCreated, receipt)
}

// AddCartItem handles POST /api/v1/cart/items - puts a menu item into the cart
func AddCartItem(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Could not extract user information")
		return
	}

	var req CartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Missing item or quantity")
		return
	}

	carts := services.NewCartService(config.GetDB())
	receipt, err := carts.AddItem(userID, req.ItemID, req.Quantity)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondSuccess(c, http.StatusCreated, receipt)
}

// RemoveCartItem handles DELETE /api/v1/cart/items - takes a menu item out of the cart
func RemoveCartItem(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Could not extract user information")
		return
	}

	var req CartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Missing item or quantity")
		return
	}

	carts := services.NewCartService(config.GetDB())
	result, err := carts.RemoveItem(userID, req.ItemID, req.Quantity)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, result)
}
