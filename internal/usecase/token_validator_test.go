//go:build unit

package usecase_test

import (
	"testing"
	"time"

	"resource-scheduler/internal/domain/user"
	"resource-scheduler/internal/pkg/errs"
	"resource-scheduler/internal/pkg/jwt"
	"resource-scheduler/internal/usecase"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenValidator(t *testing.T) {
	svc := jwt.NewService("secret", time.Hour)
	validator := usecase.NewTokenValidator(svc)

	t.Run("success: resolves id and role", func(t *testing.T) {
		userID := uuid.New()
		token, err := svc.GenerateToken(userID, user.RoleAdmin)
		require.NoError(t, err)

		gotID, role, err := validator.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, userID, gotID)
		assert.Equal(t, user.RoleAdmin, role)
	})

	t.Run("error: unknown role in claims", func(t *testing.T) {
		token, err := svc.GenerateToken(uuid.New(), user.Role("janitor"))
		require.NoError(t, err)

		_, _, err = validator.ValidateToken(token)
		assert.True(t, errs.Is(err, usecase.ErrInvalidClaims))
	})

	t.Run("error: subject does not match user_id", func(t *testing.T) {
		claims := jwt.Claims{
			UserID: uuid.New(),
			Role:   "staff",
			RegisteredClaims: gojwt.RegisteredClaims{
				Issuer:    jwt.Issuer,
				Subject:   uuid.NewString(),
				IssuedAt:  gojwt.NewNumericDate(time.Now()),
				ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
		require.NoError(t, err)

		_, _, err = validator.ValidateToken(token)
		assert.ErrorIs(t, err, usecase.ErrInvalidClaims)
	})

	t.Run("error: invalid token", func(t *testing.T) {
		_, _, err := validator.ValidateToken("garbage")
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})
}
