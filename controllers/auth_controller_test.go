package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minh-vuong/restaurant-orders-api/config"
	"github.com/minh-vuong/restaurant-orders-api/middleware"
	"github.com/minh-vuong/restaurant-orders-api/models"
)

func newAuthRouter(t *testing.T) *gin.Engine {
	t.Helper()

	config.SetConfig(&config.Config{JWTSecret: "test-secret", GoEnv: "test"})
	t.Cleanup(func() { config.SetConfig(nil) })

	router := gin.New()
	v1 := router.Group("/api/v1")
	v1.POST("/auth/register", Register)
	v1.POST("/auth/login", Login)
	v1.GET("/auth/me", middleware.RequireAuth(), Me)
	return router
}

func TestRegisterAndLogin(t *testing.T) {
	db := setupTestDB(t)
	router := newAuthRouter(t)

	code, envelope := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", gin.H{
		"name":     "Minh Vuong",
		"email":    "minh@test.com",
		"phone":    "555-0101",
		"password": "sup3rsecret",
	})
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, true, envelope["success"])

	data := envelope["data"].(map[string]interface{})
	assert.Equal(t, float64(models.RoleCustomer), data["role"])
	// The password hash never leaves the server.
	_, exposed := data["password"]
	assert.False(t, exposed)

	var user models.User
	require.NoError(t, db.Where("email = ?", "minh@test.com").First(&user).Error)
	assert.NotEqual(t, "sup3rsecret", user.Password)

	code, envelope = doJSON(t, router, http.MethodPost, "/api/v1/auth/login", gin.H{
		"email":    "minh@test.com",
		"password": "sup3rsecret",
	})
	require.Equal(t, http.StatusOK, code)

	data = envelope["data"].(map[string]interface{})
	token := data["token"].(string)
	require.NotEmpty(t, token)

	// The minted token authenticates /auth/me.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	createTestUser(t, db, models.RoleCustomer, "minh@test.com")
	router := newAuthRouter(t)

	code, envelope := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", gin.H{
		"name":     "Minh Vuong",
		"email":    "minh@test.com",
		"phone":    "555-0102",
		"password": "sup3rsecret",
	})
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, false, envelope["success"])
}

func TestRegister_WeakPassword(t *testing.T) {
	setupTestDB(t)
	router := newAuthRouter(t)

	code, _ := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", gin.H{
		"name":     "Minh Vuong",
		"email":    "minh@test.com",
		"phone":    "555-0101",
		"password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestLogin_WrongPassword(t *testing.T) {
	db := setupTestDB(t)
	router := newAuthRouter(t)

	code, _ := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", gin.H{
		"name":     "Minh Vuong",
		"email":    "minh@test.com",
		"phone":    "555-0101",
		"password": "sup3rsecret",
	})
	require.Equal(t, http.StatusCreated, code)
	require.NotNil(t, db)

	tests := []struct {
		name string
		body gin.H
	}{
		{"wrong password", gin.H{"email": "minh@test.com", "password": "wr0ngsecret"}},
		{"unknown email", gin.H{"email": "nobody@test.com", "password": "sup3rsecret"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, envelope := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", tt.body)
			assert.Equal(t, http.StatusUnauthorized, code)
			errObj := envelope["error"].(map[string]interface{})
			assert.Equal(t, "INVALID_CREDENTIALS", errObj["code"])
		})
	}
}
