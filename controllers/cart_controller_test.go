package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minh-vuong/restaurant-orders-api/models"
)

// newCartRouter builds a router with the cart routes behind a mock auth for
// the given user.
func newCartRouter(userID uint) *gin.Engine {
	router := gin.New()
	v1 := router.Group("/api/v1")
	auth := mockAuth(userID, models.RoleCustomer)
	v1.GET("/cart", auth, GetCart)
	v1.POST("/cart", auth, CreateCart)
	v1.POST("/cart/items", auth, AddCartItem)
	v1.DELETE("/cart/items", auth, RemoveCartItem)
	return router
}

// doJSON performs a request with a JSON body and decodes the envelope.
func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Buffer
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(raw)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	var envelope map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return w.Code, envelope
}

func TestAddCartItem(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, models.RoleCustomer, "customer@test.com")
	item := createTestMenuItem(t, db, "Pho Bo", "10.00")
	router := newCartRouter(user.ID)

	code, envelope := doJSON(t, router, http.MethodPost, "/api/v1/cart/items", gin.H{
		"item_id":  item.ID,
		"quantity": 2,
	})
	assert.Equal(t, http.StatusCreated, code)
	assert.Equal(t, true, envelope["success"])

	data := envelope["data"].(map[string]interface{})
	assert.Equal(t, "Pending", data["status"])

	// Decimal marshaling trims trailing zeros, so compare values not strings.
	total, err := decimal.NewFromString(data["total_price"].(string))
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.NewFromInt(20)), "total_price = %s", total)
}

func TestAddCartItem_UnknownItem(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, models.RoleCustomer, "customer@test.com")
	router := newCartRouter(user.ID)

	code, envelope := doJSON(t, router, http.MethodPost, "/api/v1/cart/items", gin.H{
		"item_id":  999,
		"quantity": 1,
	})
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, false, envelope["success"])

	errObj := envelope["error"].(map[string]interface{})
	assert.Equal(t, "NOT_FOUND", errObj["code"])
}

func TestAddCartItem_InvalidBody(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, models.RoleCustomer, "customer@test.com")
	item := createTestMenuItem(t, db, "Pho Bo", "10.00")
	router := newCartRouter(user.ID)

	tests := []struct {
		name string
		body gin.H
	}{
		{"missing quantity", gin.H{"item_id": item.ID}},
		{"zero quantity", gin.H{"item_id": item.ID, "quantity": 0}},
		{"negative quantity", gin.H{"item_id": item.ID, "quantity": -2}},
		{"missing item", gin.H{"quantity": 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, envelope := doJSON(t, router, http.MethodPost, "/api/v1/cart/items", tt.body)
			assert.Equal(t, http.StatusBadRequest, code)
			assert.Equal(t, false, envelope["success"])
		})
	}
}

func TestCreateCart(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, models.RoleCustomer, "customer@test.com")
	router := newCartRouter(user.ID)

	code, envelope := doJSON(t, router, http.MethodPost, "/api/v1/cart", gin.H{})
	assert.Equal(t, http.StatusCreated, code)
	assert.Equal(t, true, envelope["success"])

	data := envelope["data"].(map[string]interface{})
	firstID := data["id"]

	// Repeating the call returns the same cart.
	code, envelope = doJSON(t, router, http.MethodPost, "/api/v1/cart", gin.H{})
	assert.Equal(t, http.StatusCreated, code)
	data = envelope["data"].(map[string]interface{})
	assert.Equal(t, firstID, data["id"])
}

func TestGetCart(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, models.RoleCustomer, "customer@test.com")
	item := createTestMenuItem(t, db, "Pho Bo", "10.00")
	router := newCartRouter(user.ID)

	code, envelope := doJSON(t, router, http.MethodGet, "/api/v1/cart", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, false, envelope["success"])

	_, _ = doJSON(t, router, http.MethodPost, "/api/v1/cart/items", gin.H{
		"item_id":  item.ID,
		"quantity": 1,
	})

	code, envelope = doJSON(t, router, http.MethodGet, "/api/v1/cart", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, envelope["success"])

	data := envelope["data"].(map[string]interface{})
	items := data["items"].([]interface{})
	assert.Len(t, items, 1)
}

func TestRemoveCartItem(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, models.RoleCustomer, "customer@test.com")
	item := createTestMenuItem(t, db, "Pho Bo", "10.00")
	router := newCartRouter(user.ID)

	_, _ = doJSON(t, router, http.MethodPost, "/api/v1/cart/items", gin.H{
		"item_id":  item.ID,
		"quantity": 3,
	})

	code, envelope := doJSON(t, router, http.MethodDelete, "/api/v1/cart/items", gin.H{
		"item_id":  item.ID,
		"quantity": 3,
	})
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, envelope["success"])

	data := envelope["data"].(map[string]interface{})
	assert.Equal(t, true, data["emptied"])
}
