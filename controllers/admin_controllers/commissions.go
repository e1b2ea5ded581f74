package admin_controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/zsmartex/rebate/config"
	"github.com/zsmartex/rebate/controllers/helpers"
	"github.com/zsmartex/rebate/controllers/queries"
)

// GetAudit runs the commission audit on demand.
func (ctrl *AdminController) GetAudit(c *fiber.Ctx) error {
	report := ctrl.Referral.AuditCommissions()
	if !report.Clean() {
		config.Logger.Warnf("Commission audit found %d discrepancies", len(report.Discrepancies))
	}

	return c.Status(200).JSON(report)
}

// GetReleaseCommissions summarises the commission of every receiver per day.
func (ctrl *AdminController) GetReleaseCommissions(c *fiber.Ctx) error {
	var errors = new(helpers.Errors)
	params := new(queries.ReleaseCommissionQueries)

	if err := c.QueryParser(params); err != nil {
		return helpers.ResponseError(c, 500, helpers.InvalidQuery)
	}

	helpers.Vaildate(params, errors)
	if errors.Size() > 0 {
		return c.Status(422).JSON(errors)
	}

	from, to := ctrl.Referral.DayBounds(time.Now())
	if params.TimeFrom > 0 {
		from = time.Unix(params.TimeFrom, 0)
	}
	if params.TimeTo > 0 {
		to = time.Unix(params.TimeTo, 0)
	}

	return c.Status(200).JSON(ctrl.Referral.GetReleaseCommissions("", from, to))
}
