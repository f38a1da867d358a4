package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fooddash/fooddash-go/models"
)

func TestGenerateAndParseToken(t *testing.T) {
	token, err := GenerateToken(42, models.RoleCustomer)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := ParseToken(token)
	assert.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, models.RoleCustomer, claims.Role)
}

func TestParseGarbageTokenFails(t *testing.T) {
	_, err := ParseToken("definitely.not.ajwt")
	assert.Error(t, err)
}

func TestBlacklistedTokenIsRejected(t *testing.T) {
	token, err := GenerateToken(7, models.RolePartner)
	assert.NoError(t, err)

	_, err = ParseToken(token)
	assert.NoError(t, err)

	BlacklistToken(token)
	_, err = ParseToken(token)
	assert.Error(t, err)
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "0,00", FormatPrice(0))
	assert.Equal(t, "13,00", FormatPrice(13))
	assert.Equal(t, "1.500,50", FormatPrice(1500.5))
	assert.Equal(t, "15.000.000,00", FormatPrice(15000000))
	assert.Equal(t, "-2.500,25", FormatPrice(-2500.25))
}
