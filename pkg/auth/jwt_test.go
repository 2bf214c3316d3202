package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/pruve-api/internal/domain/entity"
	apperrors "github.com/yourusername/pruve-api/internal/pkg/errors"
)

func TestNewJWTService_RequiresSecret(t *testing.T) {
	_, err := NewJWTService("", 1)
	assert.Error(t, err, "Пустой секрет недопустим")
}

func TestJWTService_GenerateAndParse(t *testing.T) {
	// Arrange
	svc, err := NewJWTService("test-secret", 2)
	require.NoError(t, err)
	user := &entity.User{ID: 42, Email: "fan@pruve.app"}

	// Act
	token, err := svc.GenerateToken(user)
	require.NoError(t, err)
	claims, err := svc.ParseToken(token)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "fan@pruve.app", claims.Subject, "sub должен содержать email")
	assert.WithinDuration(t, time.Now().Add(2*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestJWTService_ParseToken_WrongSecret(t *testing.T) {
	// Arrange
	issuer, _ := NewJWTService("secret-a", 1)
	verifier, _ := NewJWTService("secret-b", 1)
	token, err := issuer.GenerateToken(&entity.User{ID: 1, Email: "a@b.c"})
	require.NoError(t, err)

	// Act
	_, err = verifier.ParseToken(token)

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestJWTService_ParseToken_Expired(t *testing.T) {
	// Arrange
	svc, _ := NewJWTService("secret", 1)
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, err := svc.GenerateToken(&entity.User{ID: 1, Email: "a@b.c"})
	require.NoError(t, err)

	// Act
	_, err = svc.ParseToken(token)

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrExpiredToken)
}

func TestJWTService_ParseToken_RejectsOtherAlgorithms(t *testing.T) {
	// Arrange
	svc, _ := NewJWTService("secret", 1)
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, &JWTCustomClaims{UserID: 1})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	// Act
	_, err = svc.ParseToken(token)

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestJWTService_ParseToken_Malformed(t *testing.T) {
	svc, _ := NewJWTService("secret", 1)

	_, err := svc.ParseToken("not-a-token")

	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}
