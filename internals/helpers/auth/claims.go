// internals/helpers/auth/claims.go
package auth

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// GetUserIDFromToken reads the authenticated user id stored by the auth
// middleware.
func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	raw, ok := c.Locals("user_id").(string)
	if !ok || raw == "" {
		return uuid.Nil, fmt.Errorf("user ID not found in token")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid user ID in token")
	}
	return id, nil
}

// GetCenterIDFromToken reads the tenant boundary. Every query touching
// tenant data must filter on this value.
func GetCenterIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	raw, ok := c.Locals("center_id").(string)
	if !ok || raw == "" {
		return uuid.Nil, fmt.Errorf("center ID not found in token")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid center ID in token")
	}
	return id, nil
}

func GetRoleFromToken(c *fiber.Ctx) (string, error) {
	role, ok := c.Locals("userRole").(string)
	if !ok || role == "" {
		return "", fmt.Errorf("role not found in token")
	}
	return role, nil
}
