package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/zsmartex/rebate/config"
	"github.com/zsmartex/rebate/controllers/auth"
	"github.com/zsmartex/rebate/controllers/entities"
	"github.com/zsmartex/rebate/controllers/helpers"
	"github.com/zsmartex/rebate/services/referral_service"
)

type AccountController struct {
	Referral *referral_service.ReferralService
	Revoker  auth.Revoker
}

func (ctrl *AccountController) GetMe(c *fiber.Ctx) error {
	return c.Status(200).JSON(entities.UserToEntity(helpers.CurrentUser(c)))
}

// DeleteSession signs out. The token stays revoked until it would have expired.
func (ctrl *AccountController) DeleteSession(c *fiber.Ctx) error {
	session, ok := c.Locals("CurrentSession").(*auth.Auth)
	if !ok {
		return helpers.ResponseError(c, 401, helpers.AuthzInvalidSession)
	}

	if err := ctrl.Revoker.Revoke(session.Id, time.Unix(session.ExpiresAt, 0)); err != nil {
		config.Logger.Errorf("Failed to revoke session of %s, Error: %v", session.UID, err)

		return helpers.ResponseError(c, 500, helpers.ServerInternalError)
	}

	return c.SendStatus(204)
}

func (ctrl *AccountController) GetStats(c *fiber.Ctx) error {
	CurrentUser := helpers.CurrentUser(c)
	stats := ctrl.Referral.CachedUserStats(CurrentUser.UID)

	return c.Status(200).JSON(&entities.StatsEntity{
		UID:              stats.UID,
		TotalTradeAmount: stats.TotalTradeAmount,
		TotalFee:         stats.TotalFee,
		InviteCount:      stats.InviteCount,
		TotalCommission:  stats.TotalCommission,
		InviteLink:       ctrl.Referral.GenerateInviteLink(CurrentUser.InviteCode),
	})
}
