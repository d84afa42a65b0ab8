// Package identity reads the authenticated caller from fiber locals set by
// the JWT middleware.
package identity

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// LocalsKey is where the JWT middleware stores the parsed token.
const LocalsKey = "user"

var ErrNoIdentity = errors.New("no authenticated identity")

// GetUserID returns the identity-provider subject of the caller.
func GetUserID(c *fiber.Ctx) (string, error) {
	token, ok := c.Locals(LocalsKey).(*jwt.Token)
	if !ok || token == nil {
		return "", ErrNoIdentity
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid claims")
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", errors.New("missing sub claim")
	}
	return sub, nil
}

// UserID is GetUserID without the error; the empty string means anonymous.
func UserID(c *fiber.Ctx) string {
	sub, _ := GetUserID(c)
	return sub
}
