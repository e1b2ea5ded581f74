package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"github.com/zsmartex/rebate/config"
	"github.com/zsmartex/rebate/controllers/auth"
	"github.com/zsmartex/rebate/controllers/helpers"
	"github.com/zsmartex/rebate/store"
)

// Authenticate resolves the bearer token into the current user. Any
// missing, invalid, revoked or orphaned session is rejected the same way.
func Authenticate(issuer *auth.Issuer, revoker auth.Revoker, repo store.Repository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Get("Authorization")

		if len(token) == 0 {
			return helpers.ResponseError(c, 401, helpers.AuthzInvalidSession)
		}

		claims, err := issuer.ParseToken(token)
		if err != nil {
			config.Logger.Debugf("Rejected session token: %v", err)

			return helpers.ResponseError(c, 401, helpers.AuthzInvalidSession)
		}

		if revoker != nil && revoker.IsRevoked(claims.Id) {
			return helpers.ResponseError(c, 401, helpers.AuthzInvalidSession)
		}

		user, err := repo.GetUserByID(claims.UID)
		if err != nil {
			return helpers.ResponseError(c, 401, helpers.AuthzInvalidSession)
		}

		c.Locals("CurrentUser", user)
		c.Locals("CurrentSession", claims)

		return c.Next()
	}
}
