package report_controllers

import (
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/zsmartex/rebate/config"
	"github.com/zsmartex/rebate/controllers/helpers"
	"github.com/zsmartex/rebate/models"
	"github.com/zsmartex/rebate/monitoring"
	"github.com/zsmartex/rebate/services/report_service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportController struct {
	Reports *report_service.ReportService
	Metrics *monitoring.Metrics
}

func attachment(c *fiber.Ctx, user *models.User, ext, content_type string) {
	filename := report_service.ReportFilename(user, ext, time.Now())

	c.Set(fiber.HeaderContentType, content_type)
	c.Set(fiber.HeaderContentDisposition, "attachment; filename*=UTF-8''"+url.PathEscape(filename))
}

func (ctrl *ReportController) GetCSV(c *fiber.Ctx) error {
	CurrentUser := helpers.CurrentUser(c)

	report, err := ctrl.Reports.GenerateUserStatsCSV(CurrentUser.UID)
	if err != nil {
		config.Logger.Errorf("Failed to generate csv report of %s, Error: %v", CurrentUser.UID, err)

		return helpers.ResponseError(c, 500, "report.export_failed")
	}

	ctrl.Metrics.RecordExport("csv")
	attachment(c, CurrentUser, "csv", "text/csv; charset=utf-8")

	return c.Status(200).SendString(report)
}

func (ctrl *ReportController) GetXLSX(c *fiber.Ctx) error {
	CurrentUser := helpers.CurrentUser(c)

	report, err := ctrl.Reports.GenerateUserStatsXLSX(CurrentUser.UID)
	if err != nil {
		config.Logger.Errorf("Failed to generate xlsx report of %s, Error: %v", CurrentUser.UID, err)

		return helpers.ResponseError(c, 500, "report.export_failed")
	}

	ctrl.Metrics.RecordExport("xlsx")
	attachment(c, CurrentUser, "xlsx", xlsxContentType)

	return c.Status(200).Send(report)
}
