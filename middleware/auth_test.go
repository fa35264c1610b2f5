package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/minh-vuong/restaurant-orders-api/config"
	"github.com/minh-vuong/restaurant-orders-api/models"
	"github.com/minh-vuong/restaurant-orders-api/utils"
)

func setupAuthRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	config.SetConfig(&config.Config{JWTSecret: "test-secret"})

	router := gin.New()
	router.GET("/me", RequireAuth(), func(c *gin.Context) {
		userID, err := GetUserID(c)
		assert.NoError(t, err)
		c.JSON(http.StatusOK, gin.H{"user_id": userID})
	})
	router.GET("/staff", RequireAuth(), RequireStaff(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
	return router
}

func TestRequireAuth(t *testing.T) {
	router := setupAuthRouter(t)

	customerToken, err := utils.GenerateToken(7, models.RoleCustomer, "test-secret", time.Hour)
	assert.NoError(t, err)
	expiredToken, err := utils.GenerateToken(7, models.RoleCustomer, "test-secret", -time.Minute)
	assert.NoError(t, err)
	wrongKeyToken, err := utils.GenerateToken(7, models.RoleCustomer, "other-secret", time.Hour)
	assert.NoError(t, err)

	tests := []struct {
		name           string
		header         string
		expectedStatus int
	}{
		{"valid token", "Bearer " + customerToken, http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"not a bearer token", "Basic abc", http.StatusUnauthorized},
		{"expired token", "Bearer " + expiredToken, http.StatusUnauthorized},
		{"wrong signing key", "Bearer " + wrongKeyToken, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestRequireStaff(t *testing.T) {
	router := setupAuthRouter(t)

	staffToken, err := utils.GenerateToken(1, models.RoleStaff, "test-secret", time.Hour)
	assert.NoError(t, err)
	customerToken, err := utils.GenerateToken(2, models.RoleCustomer, "test-secret", time.Hour)
	assert.NoError(t, err)

	tests := []struct {
		name           string
		token          string
		expectedStatus int
	}{
		{"staff passes", staffToken, http.StatusOK},
		{"customer is forbidden", customerToken, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/staff", nil)
			req.Header.Set("Authorization", "Bearer "+tt.token)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}
