package gotrue

import (
	"testing"
	"time"

	domainerrors "internhub/internal/domain/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sign(t *testing.T, secret string, method jwt.SigningMethod, claims jwt.MapClaims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	require.NoError(t, err)

	return token
}

func TestTokenVerifier_Parse(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	claims := jwt.MapClaims{
		"sub":                        "user-1",
		"email":                      "ada@example.com",
		"exp":                        exp.Unix(),
		"app_metadata":               map[string]any{"role": "company"},
		"user_metadata":              map[string]any{"account_type": "student"},
		"https://internhub.app/role": "company",
	}

	t.Run("maps claims to identity", func(t *testing.T) {
		v := NewTokenVerifier(testSecret)

		identity, expiresAt, err := v.Parse(sign(t, testSecret, jwt.SigningMethodHS256, claims))
		require.NoError(t, err)
		assert.Equal(t, "user-1", identity.SubjectID)
		assert.Equal(t, "ada@example.com", identity.Email)
		assert.Equal(t, "company", identity.AppMetadata["role"])
		assert.Equal(t, "student", identity.UserMetadata["account_type"])
		assert.Equal(t, "company", identity.Claims["https://internhub.app/role"])
		assert.True(t, exp.Equal(expiresAt))
	})

	t.Run("rejects wrong secret", func(t *testing.T) {
		v := NewTokenVerifier(testSecret)

		_, _, err := v.Parse(sign(t, "other", jwt.SigningMethodHS256, claims))
		assert.ErrorIs(t, err, domainerrors.ErrInvalidSessionToken)
	})

	t.Run("rejects other algorithms", func(t *testing.T) {
		v := NewTokenVerifier(testSecret)

		_, _, err := v.Parse(sign(t, testSecret, jwt.SigningMethodHS512, claims))
		assert.ErrorIs(t, err, domainerrors.ErrInvalidSessionToken)
	})

	t.Run("rejects expired tokens", func(t *testing.T) {
		v := NewTokenVerifier(testSecret)
		expired := jwt.MapClaims{"sub": "user-1", "exp": time.Now().Add(-time.Minute).Unix()}

		_, _, err := v.Parse(sign(t, testSecret, jwt.SigningMethodHS256, expired))
		assert.ErrorIs(t, err, domainerrors.ErrInvalidSessionToken)
	})

	t.Run("rejects missing subject", func(t *testing.T) {
		v := NewTokenVerifier(testSecret)
		noSub := jwt.MapClaims{"exp": time.Now().Add(time.Minute).Unix()}

		_, _, err := v.Parse(sign(t, testSecret, jwt.SigningMethodHS256, noSub))
		assert.ErrorIs(t, err, domainerrors.ErrInvalidSessionToken)
	})

	t.Run("without secret skips signature check", func(t *testing.T) {
		v := NewTokenVerifier("")
		assert.False(t, v.Verifies())

		identity, _, err := v.Parse(sign(t, "anything", jwt.SigningMethodHS256, claims))
		require.NoError(t, err)
		assert.Equal(t, "user-1", identity.SubjectID)
	})
}
