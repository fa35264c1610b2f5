package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/minh-vuong/restaurant-orders-api/config"
	"github.com/minh-vuong/restaurant-orders-api/models"
)

// StaffListUsers handles GET /api/v1/staff/users - lists users by role
func StaffListUsers(c *gin.Context) {
	role, err := strconv.Atoi(c.DefaultQuery("role", strconv.Itoa(models.RoleCustomer)))
	if err != nil || (role != models.RoleCustomer && role != models.RoleStaff) {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid role value")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 5
	}

	db := config.GetDB()

	var total int64
	if err := db.Model(&models.User{}).Where("role = ?", role).Count(&total).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to count users")
		return
	}

	var users []models.User
	err = db.Where("role = ?", role).
		Order("id").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&users).Error
	if err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to list users")
		return
	}

	respondSuccess(c, http.StatusOK, gin.H{
		"users": users,
		"metadata": gin.H{
			"page":          page,
			"limit":         limit,
			"total_records": total,
		},
	})
}
