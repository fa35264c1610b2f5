package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/minh-vuong/restaurant-orders-api/config"
	"github.com/minh-vuong/restaurant-orders-api/middleware"
	"github.com/minh-vuong/restaurant-orders-api/models"
	"github.com/minh-vuong/restaurant-orders-api/utils"
)

const tokenTTL = 24 * time.Hour

// RegisterRequest represents the request body for customer registration
type RegisterRequest struct {
	Name     string  `json:"name" binding:"required"`
	Email    string  `json:"email" binding:"required,email"`
	Phone    string  `json:"phone" binding:"required"`
	Password string  `json:"password" binding:"required,min=8"`
	Address  string  `json:"address"`
	Birthday *string `json:"birthday"`
}

// LoginRequest represents the request body for logging in
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register handles POST /api/v1/auth/register - creates a customer account
func Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data")
		return
	}

	db := config.GetDB()

	var count int64
	if err := db.Model(&models.User{}).
		Where("email = ? OR phone = ?", req.Email, req.Phone).
		Count(&count).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to check existing users")
		return
	}
	if count > 0 {
		respondError(c, http.StatusConflict, "CONFLICT", "Email or phone number is already registered")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to hash password")
		return
	}

	user := models.User{
		Role:     models.RoleCustomer,
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: string(hashed),
		Address:  req.Address,
		Birthday: req.Birthday,
	}
	if err := db.Create(&user).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create user")
		return
	}

	respondSuccess(c, http.StatusCreated, user)
}

// Login handles POST /api/v1/auth/login - verifies credentials and mints a token
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data")
		return
	}

	db := config.GetDB()

	var user models.User
	err := db.Where("email = ?", req.Email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Email or password is incorrect")
			return
		}
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to look up user")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		respondError(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Email or password is incorrect")
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Role, config.GetConfig().JWTSecret, tokenTTL)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to generate token")
		return
	}

	respondSuccess(c, http.StatusOK, gin.H{
		"token": token,
		"user":  user,
	})
}

// Me handles GET /api/v1/auth/me - returns the authenticated user's profile
func Me(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Could not extract user information")
		return
	}

	db := config.GetDB()
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		respondError(c, http.StatusNotFound, "USER_NOT_FOUND", "User profile not found")
		return
	}

	respondSuccess(c, http.StatusOK, user)
}
