package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/shopspring/decimal"

	"github.com/minh-vuong/restaurant-orders-api/config"
	"github.com/minh-vuong/restaurant-orders-api/services"
)

// menuCache is the process-wide menu cache client; nil when no redis
// instance is configured.
var menuCache *redis.Client

// SetMenuCache wires the menu cache client (called at startup and from tests).
func SetMenuCache(client *redis.Client) {
	menuCache = client
}

func menuService() *services.MenuService {
	return services.NewMenuService(config.GetDB(), menuCache)
}

// menuItemInputFromForm reads the writable menu item fields from a
// multipart form. Menu mutations are multipart because they may carry a
// dish photo.
func menuItemInputFromForm(c *gin.Context) (services.MenuItemInput, error) {
	input := services.MenuItemInput{
		Name:        c.PostForm("name"),
		Type:        c.PostForm("type"),
		Description: c.PostForm("description"),
		Status:      c.PostForm("status"),
	}

	if raw := c.PostForm("price"); raw != "" {
		price, err := decimal.NewFromString(raw)
		if err != nil {
			return input, err
		}
		input.Price = price
	}
	return input, nil
}

// ListMenuItems handles GET /api/v1/menu - lists menu items with optional
// name filter
func ListMenuItems(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))
	name := c.Query("name")

	list, err := menuService().List(c.Request.Context(), name, page, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, list)
}

// GetMenuItem handles GET /api/v1/menu/:id - returns one menu item
func GetMenuItem(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid menu item id")
		return
	}

	item, err := menuService().Get(uint(id))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, item)
}

// CreateMenuItem handles POST /api/v1/staff/menu - creates a menu item with
// an optional dish photo
func CreateMenuItem(c *gin.Context) {
	input, err := menuItemInputFromForm(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid price value")
		return
	}

	// Photo is optional; a missing file field is not an error
	image, _ := c.FormFile("image")

	item, err := menuService().Create(c.Request.Context(), input, image)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondSuccess(c, http.StatusCreated, item)
}

// UpdateMenuItem handles PUT /api/v1/staff/menu/:id - edits a menu item,
// optionally replacing its photo
func UpdateMenuItem(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid menu item id")
		return
	}

	input, err := menuItemInputFromForm(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid price value")
		return
	}

	image, _ := c.FormFile("image")

	item, err := menuService().Update(c.Request.Context(), uint(id), input, image)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, item)
}

// DeleteMenuItem handles DELETE /api/v1/staff/menu/:id - removes a menu item
// and its photo
func DeleteMenuItem(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid menu item id")
		return
	}

	if err := menuService().Delete(c.Request.Context(), uint(id)); err != nil {
		respondServiceError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, gin.H{"message": "Menu item deleted successfully"})
}
