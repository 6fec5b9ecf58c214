package authctx

import (
	"errors"

	"github.com/civicfix/civicfix-backend/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrNoIdentity = errors.New("no authenticated identity in context")

// Identity is the authenticated caller of a request: who they are and
// what role they carry. It is extracted once from the verified JWT and
// passed explicitly into services, never read from globals.
type Identity struct {
	UserID uuid.UUID
	Role   string
}

// IsAdmin reports whether the caller holds the admin role.
func (id Identity) IsAdmin() bool {
	return id.Role == models.RoleAdmin
}

// CanAccess reports whether the caller may read a record owned by
// ownerID: admins see everything, everyone else only their own rows.
func (id Identity) CanAccess(ownerID uuid.UUID) bool {
	return id.IsAdmin() || id.UserID == ownerID
}

// FromContext extracts the caller Identity from JWT claims placed in
// Fiber locals by the JWT middleware.
func FromContext(c *fiber.Ctx) (Identity, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return Identity{}, ErrNoIdentity
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, ErrNoIdentity
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return Identity{}, ErrNoIdentity
	}

	userID, err := uuid.Parse(sub)
	if err != nil {
		return Identity{}, ErrNoIdentity
	}

	role, _ := claims["role"].(string)
	if role == "" {
		role = models.RoleCitizen
	}

	return Identity{UserID: userID, Role: role}, nil
}
