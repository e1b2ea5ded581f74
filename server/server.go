package server

import (
	"fmt"

	"github.com/zsmartex/rebate/config"
	"github.com/zsmartex/rebate/controllers/auth"
	"github.com/zsmartex/rebate/fixtures"
	"github.com/zsmartex/rebate/monitoring"
	"github.com/zsmartex/rebate/routes"
	"github.com/zsmartex/rebate/services/account_service"
	"github.com/zsmartex/rebate/services/referral_service"
	"github.com/zsmartex/rebate/services/report_service"
	"github.com/zsmartex/rebate/store"
	"github.com/zsmartex/rebate/types"
)

// OpenRepository builds the configured store. The postgres store is migrated
// and seeded with the fixture on every start; seeding never overwrites rows.
func OpenRepository() (store.Repository, error) {
	dataset, err := fixtures.Load(config.Env.FixturePath)
	if err != nil {
		return nil, fmt.Errorf("load fixtures: %w", err)
	}

	switch config.Env.StoreDriver {
	case types.StoreDriverPostgres:
		gorm_store := store.NewGormStore(config.DataBase)
		if err := gorm_store.AutoMigrate(); err != nil {
			return nil, fmt.Errorf("migrate database: %w", err)
		}
		if err := gorm_store.Seed(dataset); err != nil {
			return nil, fmt.Errorf("seed database: %w", err)
		}

		config.Logger.Infof("Using postgres store %s@%s", config.Env.Database.Name, config.Env.Database.Host)

		return gorm_store, nil
	default:
		config.Logger.Infof("Using memory store with %d users", len(dataset.Users))

		return store.NewMemoryStore(dataset), nil
	}
}

func NewReferralService(repo store.Repository) *referral_service.ReferralService {
	c := referral_service.Config{
		AppOrigin: config.Env.AppOrigin,
		Location:  config.Env.Location(),
		CacheTTL:  config.Env.StatsCacheTTL,
	}
	if config.Redis != nil {
		c.Cache = config.Redis
	}

	return referral_service.NewReferralService(repo, c)
}

func NewDependencies(repo store.Repository) *routes.Dependencies {
	referral := NewReferralService(repo)

	deps := &routes.Dependencies{
		Repository: repo,
		Referral:   referral,
		Accounts:   account_service.NewAccountService(repo),
		Reports:    report_service.NewReportService(referral),
		Issuer:     auth.NewIssuer(config.Env.JWTSecret, config.Env.SessionTTL),
		Revoker:    auth.NewMemoryRevoker(),
		Metrics:    monitoring.NewMetrics(),
		AdminUIDs:  config.Env.AdminUIDs,
	}

	if config.Redis != nil {
		deps.Revoker = auth.NewCacheRevoker(config.Redis)
	}
	if config.Nats != nil {
		deps.Events = config.Nats
	}

	return deps
}
