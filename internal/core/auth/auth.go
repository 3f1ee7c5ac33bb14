package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	jwt "github.com/golang-jwt/jwt/v5"
)

// Principal represents the authenticated caller from JWT.
type Principal struct {
	// UserID is the subject of the token.
	UserID string
	// Admin is true for operator tokens.
	Admin bool
}

const localsKey = "principal"

type claims struct {
	Admin bool `json:"admin"`
	jwt.RegisteredClaims
}

// GenerateToken issues an HS256 token for a user. Used by tests and tooling;
// the storefront's auth service issues the production tokens with the same
// shape.
func GenerateToken(secret, userID string, admin bool, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Admin: admin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})
	return token.SignedString([]byte(secret))
}

// parseToken validates an HS256 token and extracts the principal.
func parseToken(tokenStr, secret string) (*Principal, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is empty")
	}

	tok, err := jwt.ParseWithClaims(tokenStr, &claims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		if err == nil {
			err = errors.New("invalid token")
		}
		return nil, err
	}
	c, _ := tok.Claims.(*claims)
	if c == nil || c.Subject == "" {
		return nil, errors.New("invalid claims")
	}
	return &Principal{UserID: c.Subject, Admin: c.Admin}, nil
}

// Required is the Fiber middleware extracting a Bearer token from the
// Authorization header. Requests without a valid token get 401.
func Required(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return fiber.NewError(fiber.StatusUnauthorized, "missing bearer token")
		}

		principal, err := parseToken(strings.TrimSpace(parts[1]), secret)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
		}

		c.Locals(localsKey, principal)
		return c.Next()
	}
}

// AdminOnly rejects non-operator tokens. Must run after Required.
func AdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := FromCtx(c)
		if !ok || !principal.Admin {
			return fiber.NewError(fiber.StatusForbidden, "admin access required")
		}
		return c.Next()
	}
}

// FromCtx retrieves the principal stored by Required.
func FromCtx(c *fiber.Ctx) (*Principal, bool) {
	principal, ok := c.Locals(localsKey).(*Principal)
	return principal, ok
}
