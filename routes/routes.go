package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/zsmartex/rebate/config"
	"github.com/zsmartex/rebate/controllers"
	"github.com/zsmartex/rebate/controllers/admin_controllers"
	"github.com/zsmartex/rebate/controllers/auth"
	"github.com/zsmartex/rebate/controllers/market_controllers"
	"github.com/zsmartex/rebate/controllers/referral_controllers"
	"github.com/zsmartex/rebate/controllers/report_controllers"
	"github.com/zsmartex/rebate/monitoring"
	"github.com/zsmartex/rebate/routes/middlewares"
	"github.com/zsmartex/rebate/services/account_service"
	"github.com/zsmartex/rebate/services/referral_service"
	"github.com/zsmartex/rebate/services/report_service"
	"github.com/zsmartex/rebate/store"
)

type Dependencies struct {
	Repository store.Repository
	Referral   *referral_service.ReferralService
	Accounts   *account_service.AccountService
	Reports    *report_service.ReportService
	Issuer     *auth.Issuer
	Revoker    auth.Revoker
	Metrics    *monitoring.Metrics
	Events     controllers.Publisher
	AdminUIDs  []string
}

func SetupRouter(deps *Dependencies) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "rebate",
	})

	app.Use(recover.New())
	app.Use(cors.New())
	app.Use(logger.New(logger.Config{
		Output: config.Logger.Writer(),
	}))
	app.Use(deps.Metrics.Middleware())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(200).JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", deps.Metrics.Handler())

	public := &controllers.PublicController{
		Referral: deps.Referral,
		Accounts: deps.Accounts,
		Issuer:   deps.Issuer,
		Metrics:  deps.Metrics,
		Events:   deps.Events,
	}
	account := &controllers.AccountController{
		Referral: deps.Referral,
		Revoker:  deps.Revoker,
	}
	referral := &referral_controllers.ReferralController{
		Referral: deps.Referral,
		Reports:  deps.Reports,
	}
	market := &market_controllers.MarketController{
		Referral: deps.Referral,
	}
	report := &report_controllers.ReportController{
		Reports: deps.Reports,
		Metrics: deps.Metrics,
	}
	admin := &admin_controllers.AdminController{
		Referral: deps.Referral,
	}

	api_v1_public := app.Group("/api/v1/public")
	{
		api_v1_public.Get("/timestamp", controllers.GetTimestamp)
		api_v1_public.Get("/users", public.GetUsers)
		api_v1_public.Get("/invites/:code", public.GetInvite)
		api_v1_public.Get("/register", public.GetRegisterPrefill)
		api_v1_public.Post("/users", public.Register)
		api_v1_public.Post("/sessions", public.CreateSession)
	}

	authenticate := middlewares.Authenticate(deps.Issuer, deps.Revoker, deps.Repository)

	api_v1_account := app.Group("/api/v1/account", authenticate)
	{
		api_v1_account.Get("/me", account.GetMe)
		api_v1_account.Delete("/sessions", account.DeleteSession)
		api_v1_account.Get("/stats", account.GetStats)

		api_v1_account.Get("/invitees", referral.GetInvitees)
		api_v1_account.Get("/commissions", referral.GetCommissions)
		api_v1_account.Get("/release_commissions", referral.GetReleaseCommission)
		api_v1_account.Get("/invites", referral.GetInvites)
		api_v1_account.Get("/invite", referral.GetInviteLink)
		api_v1_account.Get("/invite/qrcode", referral.GetInviteQRCode)

		api_v1_account.Get("/trades", market.GetTrades)

		api_v1_account.Get("/reports/csv", report.GetCSV)
		api_v1_account.Get("/reports/xlsx", report.GetXLSX)
	}

	api_v1_admin := app.Group("/api/v1/admin", authenticate, middlewares.AdminVaildator(deps.AdminUIDs))
	{
		api_v1_admin.Get("/trades", admin.GetTrades)
		api_v1_admin.Get("/audit", admin.GetAudit)
		api_v1_admin.Get("/release_commissions", admin.GetReleaseCommissions)
	}

	return app
}
