package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/minh-vuong/restaurant-orders-api/services"
)

// respondSuccess writes the standard success envelope.
func respondSuccess(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{
		"success": true,
		"data":    data,
	})
}

// respondError writes the standard error envelope.
func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

// respondServiceError maps a service failure kind onto an HTTP status.
func respondServiceError(c *gin.Context, err error) {
	kind := services.KindOf(err)
	switch kind {
	case services.KindNotFound:
		respondError(c, http.StatusNotFound, string(kind), err.Error())
	case services.KindConflict:
		respondError(c, http.StatusConflict, string(kind), err.Error())
	case services.KindValidation:
		respondError(c, http.StatusBadRequest, string(kind), err.Error())
	case services.KindForbidden:
		respondError(c, http.StatusForbidden, string(kind), err.Error())
	default:
		respondError(c, http.StatusInternalServerError, string(services.KindInternal), "System error, please try again later")
	}
}
