package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/minh-vuong/restaurant-orders-api/config"
	"github.com/minh-vuong/restaurant-orders-api/models"
	"github.com/minh-vuong/restaurant-orders-api/utils"
)

// AuthError represents an authentication/authorization failure
type AuthError struct {
	Code    string
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}

// RequireAuth validates the Bearer token and stores the caller's user id
// and role in the Gin context.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "UNAUTHORIZED",
					"message": "Missing or malformed Authorization header",
				},
			})
			return
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")
		claims, err := utils.ParseToken(tokenString, config.GetConfig().JWTSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_TOKEN",
					"message": "Failed to validate token",
				},
			})
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_role", claims.Role)
		c.Next()
	}
}

// RequireStaff rejects callers whose role is not staff. It must run after
// RequireAuth.
func RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, err := GetUserRole(c)
		if err != nil || role != models.RoleStaff {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "FORBIDDEN",
					"message": "Staff role required",
				},
			})
			return
		}
		c.Next()
	}
}

// GetUserID extracts the authenticated user id from the Gin context
func GetUserID(c *gin.Context) (uint, error) {
	value, exists := c.Get("user_id")
	if !exists {
		return 0, &AuthError{Code: "MISSING_USER_ID", Message: "User ID not found in context"}
	}

	userID, ok := value.(uint)
	if !ok {
		return 0, &AuthError{Code: "INVALID_USER_ID", Message: "User ID has an unexpected type"}
	}

	return userID, nil
}

// GetUserRole extracts the authenticated user's role from the Gin context
func GetUserRole(c *gin.Context) (int, error) {
	value, exists := c.Get("user_role")
	if !exists {
		return 0, &AuthError{Code: "MISSING_ROLE", Message: "Role not found in context"}
	}

	role, ok := value.(int)
	if !ok {
		return 0, &AuthError{Code: "INVALID_ROLE", Message: "Role has an unexpected type"}
	}

	return role, nil
}
