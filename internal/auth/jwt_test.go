package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sabbajohn/ERP---geradores-sub000/internal/model"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims *Claims, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestParser_ValidToken(t *testing.T) {
	techID := uuid.New()
	claims := &Claims{
		UserID:       uuid.New(),
		Role:         model.RoleTechnician,
		TechnicianID: &techID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}

	parsed, err := NewParser(testSecret).Parse(signToken(t, claims, testSecret))

	require.NoError(t, err)
	assert.Equal(t, claims.UserID, parsed.UserID)
	assert.Equal(t, model.RoleTechnician, parsed.Role)
	require.NotNil(t, parsed.TechnicianID)
	assert.Equal(t, techID, *parsed.TechnicianID)
}

func TestParser_WrongSecret(t *testing.T) {
	claims := &Claims{
		UserID: uuid.New(),
		Role:   model.RoleOffice,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}

	_, err := NewParser(testSecret).Parse(signToken(t, claims, "other-secret"))

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParser_ExpiredToken(t *testing.T) {
	claims := &Claims{
		UserID: uuid.New(),
		Role:   model.RoleOffice,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}

	_, err := NewParser(testSecret).Parse(signToken(t, claims, testSecret))

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParser_MissingUserID(t *testing.T) {
	claims := &Claims{
		Role: model.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}

	_, err := NewParser(testSecret).Parse(signToken(t, claims, testSecret))

	assert.ErrorIs(t, err, ErrInvalidToken)
}
