package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/minh-vuong/restaurant-orders-api/models"
)

func TestGenerateAndParseToken(t *testing.T) {
	token, err := GenerateToken(42, models.RoleStaff, "test-secret", time.Hour)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := ParseToken(token, "test-secret")
	assert.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, models.RoleStaff, claims.Role)
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken(42, models.RoleCustomer, "test-secret", time.Hour)
	assert.NoError(t, err)

	_, err = ParseToken(token, "other-secret")
	assert.Error(t, err)
}

func TestParseTokenExpired(t *testing.T) {
	token, err := GenerateToken(42, models.RoleCustomer, "test-secret", -time.Minute)
	assert.NoError(t, err)

	_, err = ParseToken(token, "test-secret")
	assert.Error(t, err)
}

func TestParseTokenGarbage(t *testing.T) {
	_, err := ParseToken("not-a-token", "test-secret")
	assert.Error(t, err)
}
