package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"github.com/zsmartex/rebate/controllers/helpers"
)

// AdminVaildator only lets the configured operator uids through. It runs
// after Authenticate.
func AdminVaildator(admin_uids []string) fiber.Handler {
	admins := make(map[string]bool, len(admin_uids))
	for _, uid := range admin_uids {
		admins[uid] = true
	}

	return func(c *fiber.Ctx) error {
		CurrentUser := helpers.CurrentUser(c)

		if CurrentUser == nil || !admins[CurrentUser.UID] {
			return helpers.ResponseError(c, 403, "authz.invalid_permission")
		}

		return c.Next()
	}
}
