package service

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"ai-schemadesign-be/internal/constant"
	"ai-schemadesign-be/internal/dto"
)

func TestAuthService_Login(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	hash, err := bcrypt.GenerateFromPassword([]byte("open-sesame"), bcrypt.MinCost)
	require.NoError(t, err)

	svc := NewAuthService(string(hash))

	t.Run("valid password returns a signed token", func(t *testing.T) {
		res, err := svc.Login(context.Background(), &dto.LoginRequest{Password: "open-sesame"})
		require.NoError(t, err)
		require.NotEmpty(t, res.Token)

		token, err := jwt.Parse(res.Token, func(token *jwt.Token) (interface{}, error) {
			return []byte("test-secret"), nil
		})
		require.NoError(t, err)
		claims, ok := token.Claims.(jwt.MapClaims)
		require.True(t, ok)
		assert.Equal(t, "operator", claims["user_id"])
		assert.NotNil(t, claims["exp"])
	})

	t.Run("wrong password is rejected", func(t *testing.T) {
		_, err := svc.Login(context.Background(), &dto.LoginRequest{Password: "nope"})
		assert.ErrorIs(t, err, constant.ErrInvalidCredentials)
	})

	t.Run("unset password hash rejects everything", func(t *testing.T) {
		empty := NewAuthService("")
		_, err := empty.Login(context.Background(), &dto.LoginRequest{Password: "open-sesame"})
		assert.ErrorIs(t, err, constant.ErrInvalidCredentials)
	})
}
