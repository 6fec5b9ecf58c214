package middleware

import (
	"github.com/civicfix/civicfix-backend/internal/authctx"
	"github.com/civicfix/civicfix-backend/internal/dto"
	"github.com/gofiber/fiber/v2"
)

// AdminRequired rejects any caller whose token does not carry the admin
// role. The role claim is stamped at token issuance; a promoted user
// picks it up on next login. Runs after JWTProtected.
func AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := authctx.FromContext(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		if !id.IsAdmin() {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Forbidden: Admins only.",
			})
		}

		return c.Next()
	}
}
