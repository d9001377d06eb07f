// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/finance-tracker/ledgerd/internal/integration/entrypoint/dto"
)

// ContextKey is a type for context keys.
type ContextKey string

const (
	// OwnerIDKey is the context key for the authenticated owner's ID.
	OwnerIDKey ContextKey = "owner_id"
	// EmailKey is the context key for the authenticated owner's email.
	EmailKey ContextKey = "email"
	// LocalDevOwnerID is the owner every request is attributed to when
	// ALLOW_LOCAL_DEV_BYPASS is set.
	LocalDevOwnerID = "local-dev"
)

// claims is the expected shape of the JWT payload: an owner identifier
// and an email, both opaque to this middleware beyond that.
type claims struct {
	OwnerID string `json:"ownerId"`
	Email   string `json:"email"`
	jwt.RegisteredClaims
}

// AuthMiddleware verifies a bearer JWT and injects the owner identity it
// carries into the request context.
type AuthMiddleware struct {
	secret      []byte
	allowBypass bool
}

// NewAuthMiddleware creates a new AuthMiddleware. allowLocalDevBypass must
// never be true when running with GIN_MODE=release; callers are
// responsible for enforcing that at startup (config.Load does).
func NewAuthMiddleware(secret string, allowLocalDevBypass bool) *AuthMiddleware {
	return &AuthMiddleware{secret: []byte(secret), allowBypass: allowLocalDevBypass}
}

// Authenticate returns a Gin middleware handler that enforces JWT
// authentication, unless the local dev bypass is active.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.allowBypass && gin.Mode() != gin.ReleaseMode {
			m.setIdentity(c, LocalDevOwnerID, "dev@localhost")
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		token := strings.TrimPrefix(authHeader, "Bearer ")
		if authHeader == "" || token == authHeader {
			c.JSON(http.StatusUnauthorized, dto.Fail(dto.CodeUnauthorized, "authorization header is required"))
			c.Abort()
			return
		}

		parsed, err := jwt.ParseWithClaims(token, &claims{}, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenSignatureInvalid
			}
			return m.secret, nil
		})
		if err != nil || !parsed.Valid {
			c.JSON(http.StatusUnauthorized, dto.Fail(dto.CodeUnauthorized, "invalid or expired token"))
			c.Abort()
			return
		}

		cl, ok := parsed.Claims.(*claims)
		if !ok || cl.OwnerID == "" {
			c.JSON(http.StatusUnauthorized, dto.Fail(dto.CodeUnauthorized, "token is missing an owner claim"))
			c.Abort()
			return
		}

		m.setIdentity(c, cl.OwnerID, cl.Email)
		c.Next()
	}
}

func (m *AuthMiddleware) setIdentity(c *gin.Context, ownerID, email string) {
	c.Set(string(OwnerIDKey), ownerID)
	c.Set(string(EmailKey), email)
	ctx := context.WithValue(c.Request.Context(), OwnerIDKey, ownerID)
	ctx = context.WithValue(ctx, EmailKey, email)
	c.Request = c.Request.WithContext(ctx)
}

// OwnerIDFromContext extracts the authenticated owner id from the Gin context.
func OwnerIDFromContext(c *gin.Context) (string, bool) {
	v, exists := c.Get(string(OwnerIDKey))
	if !exists {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// OwnerEmailFromContext extracts the authenticated owner's email from the
// Gin context, if the JWT carried one.
func OwnerEmailFromContext(c *gin.Context) (string, bool) {
	v, exists := c.Get(string(EmailKey))
	if !exists {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}
