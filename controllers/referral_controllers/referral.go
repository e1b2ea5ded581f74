package referral_controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/zsmartex/rebate/config"
	"github.com/zsmartex/rebate/controllers/entities"
	"github.com/zsmartex/rebate/controllers/helpers"
	"github.com/zsmartex/rebate/controllers/queries"
	"github.com/zsmartex/rebate/services/referral_service"
	"github.com/zsmartex/rebate/services/report_service"
)

type ReferralController struct {
	Referral *referral_service.ReferralService
	Reports  *report_service.ReportService
}

// releaseWindow turns the query into a [from, to) window. A missing bound
// defaults to the current day in the report location.
func (ctrl *ReferralController) releaseWindow(params *queries.ReleaseCommissionQueries) (time.Time, time.Time) {
	from, to := ctrl.Referral.DayBounds(time.Now())

	if params.TimeFrom > 0 {
		from = time.Unix(params.TimeFrom, 0)
	}
	if params.TimeTo > 0 {
		to = time.Unix(params.TimeTo, 0)
	}

	return from, to
}

func (ctrl *ReferralController) GetReleaseCommission(c *fiber.Ctx) error {
	CurrentUser := helpers.CurrentUser(c)

	var errors = new(helpers.Errors)
	params := new(queries.ReleaseCommissionQueries)

	if err := c.QueryParser(params); err != nil {
		return helpers.ResponseError(c, 500, helpers.InvalidQuery)
	}

	helpers.Vaildate(params, errors)
	if errors.Size() > 0 {
		return c.Status(422).JSON(errors)
	}

	from, to := ctrl.releaseWindow(params)
	if !from.Before(to) {
		return helpers.ResponseError(c, 422, "referral.release_commission.invalid_time_range")
	}

	release_commissions := ctrl.Referral.GetReleaseCommissions(CurrentUser.UID, from, to)

	release_commission_entities := make([]*entities.ReleaseCommissionEntity, 0)
	for _, release_commission := range release_commissions {
		release_commission_entities = append(release_commission_entities, entities.ReleaseCommissionToEntity(release_commission))
	}

	return c.Status(200).JSON(release_commission_entities)
}

func (ctrl *ReferralController) GetCommissions(c *fiber.Ctx) error {
	CurrentUser := helpers.CurrentUser(c)
	errors := new(helpers.Errors)
	params := new(queries.CommissionQueries)
	if err := c.QueryParser(params); err != nil {
		config.Logger.Debugf("Invalid commission query: %v", err)

		return helpers.ResponseError(c, 500, helpers.InvalidQuery)
	}

	helpers.Vaildate(params, errors)
	if errors.Size() > 0 {
		return c.Status(422).JSON(errors)
	}

	commissions := helpers.Paginate(c, ctrl.Referral.GetCommissionHistory(CurrentUser.UID), params.Limit, params.Page)

	commission_entities := make([]*entities.CommissionEntity, 0)
	for _, commission := range commissions {
		commission_entities = append(commission_entities, entities.CommissionToEntity(commission))
	}

	return c.Status(200).JSON(commission_entities)
}

func (ctrl *ReferralController) GetInvites(c *fiber.Ctx) error {
	CurrentUser := helpers.CurrentUser(c)
	errors := new(helpers.Errors)
	params := new(queries.InviteQueries)
	if err := c.QueryParser(params); err != nil {
		return helpers.ResponseError(c, 500, helpers.InvalidQuery)
	}

	helpers.Vaildate(params, errors)
	if errors.Size() > 0 {
		return c.Status(422).JSON(errors)
	}

	invites := helpers.Paginate(c, ctrl.Referral.GetInviteHistory(CurrentUser.UID), params.Limit, params.Page)

	invite_entities := make([]*entities.InviteEntity, 0)
	for _, invite := range invites {
		invite_entities = append(invite_entities, entities.InviteToEntity(invite))
	}

	return c.Status(200).JSON(invite_entities)
}

func (ctrl *ReferralController) GetInvitees(c *fiber.Ctx) error {
	CurrentUser := helpers.CurrentUser(c)

	invited_users := ctrl.Referral.GetInvitedUsersWithStats(CurrentUser.UID)
	invited_user_entities := make([]*entities.InvitedUserEntity, 0, len(invited_users))
	for _, invited_user := range invited_users {
		invited_user_entities = append(invited_user_entities, entities.InvitedUserToEntity(invited_user))
	}

	return c.Status(200).JSON(invited_user_entities)
}

func (ctrl *ReferralController) GetInviteLink(c *fiber.Ctx) error {
	CurrentUser := helpers.CurrentUser(c)

	return c.Status(200).JSON(&entities.InviteLinkEntity{
		InviteCode: CurrentUser.InviteCode,
		InviteLink: ctrl.Referral.GenerateInviteLink(CurrentUser.InviteCode),
	})
}

func (ctrl *ReferralController) GetInviteQRCode(c *fiber.Ctx) error {
	CurrentUser := helpers.CurrentUser(c)

	png, err := ctrl.Reports.InviteQRCode(CurrentUser)
	if err != nil {
		config.Logger.Errorf("Failed to encode invite QR code of %s, Error: %v", CurrentUser.UID, err)

		return helpers.ResponseError(c, 500, helpers.ServerInternalError)
	}

	c.Set(fiber.HeaderContentType, "image/png")

	return c.Status(200).Send(png)
}
