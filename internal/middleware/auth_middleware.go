package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "github.com/yourusername/pruve-api/internal/pkg/errors"
	"github.com/yourusername/pruve-api/pkg/auth"
)

// ContextUserIDKey - ключ ID аутентифицированного пользователя в контексте Gin
const ContextUserIDKey = "auth_user_id"

// TokenParser проверяет access-токен
type TokenParser interface {
	ParseToken(tokenString string) (*auth.JWTCustomClaims, error)
}

// AuthMiddleware обеспечивает аутентификацию для изменяющих маршрутов
type AuthMiddleware struct {
	parser   TokenParser
	required bool
}

// NewAuthMiddleware создает middleware. При required=false токен необязателен,
// но если он передан, то проверяется.
func NewAuthMiddleware(parser TokenParser, required bool) *AuthMiddleware {
	return &AuthMiddleware{
		parser:   parser,
		required: required,
	}
}

// RequireAuth проверяет bearer-токен и сохраняет ID пользователя в контексте
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			if m.required {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required", "error_type": "token_missing"})
				return
			}
			c.Next()
			return
		}

		// Проверяем формат заголовка Bearer {token}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}", "error_type": "token_format"})
			return
		}

		claims, err := m.parser.ParseToken(parts[1])
		if err != nil {
			errorType := "token_invalid"
			if errors.Is(err, apperrors.ErrExpiredToken) {
				errorType = "token_expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token", "error_type": errorType})
			return
		}

		c.Set(ContextUserIDKey, claims.UserID)
		c.Next()
	}
}

// AuthorizeActingUser сверяет user_id из тела запроса с пользователем токена.
// Без токена в контексте проверка пропускается.
func AuthorizeActingUser(c *gin.Context, userID uint) error {
	value, ok := c.Get(ContextUserIDKey)
	if !ok {
		return nil
	}
	tokenUserID, ok := value.(uint)
	if !ok || tokenUserID != userID {
		return fmt.Errorf("token belongs to user %v, request acts as %d: %w", value, userID, apperrors.ErrForbidden)
	}
	return nil
}
