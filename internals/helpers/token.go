package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// GetUserIDFromToken reads user_id from c.Locals("user_id").
// 401 when not logged in, 400 when the value is malformed.
func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	return localUUID(c, "user_id", "User is not logged in")
}

// GetInstitutionIDFromToken reads the tenant id set by the auth middleware.
// Every tenant-scoped query must filter on this, never on request input.
func GetInstitutionIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	return localUUID(c, "institution_id", "No institution in token")
}

// GetRolesFromToken returns the role claims set by the auth middleware.
func GetRolesFromToken(c *fiber.Ctx) []string {
	switch t := c.Locals("roles").(type) {
	case []string:
		return t
	case []interface{}:
		out := make([]string, 0, len(t))
		for _, v := range t {
			if s, ok := v.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// HasRole reports whether the caller carries one of the wanted roles.
func HasRole(c *fiber.Ctx, wanted ...string) bool {
	roles := GetRolesFromToken(c)
	for _, r := range roles {
		for _, w := range wanted {
			if strings.EqualFold(r, w) {
				return true
			}
		}
	}
	return false
}

func localUUID(c *fiber.Ctx, key, missingMsg string) (uuid.UUID, error) {
	v := c.Locals(key)
	if v == nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, missingMsg)
	}

	switch t := v.(type) {
	case uuid.UUID:
		if t == uuid.Nil {
			return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, missingMsg)
		}
		return t, nil
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, missingMsg)
		}
		id, err := uuid.Parse(s)
		if err != nil {
			return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Invalid "+key+" on token")
		}
		return id, nil
	default:
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Invalid "+key+" on token")
	}
}
