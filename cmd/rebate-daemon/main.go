package main

import (
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/zsmartex/rebate/config"
	"github.com/zsmartex/rebate/jobs/cron"
	"github.com/zsmartex/rebate/server"
	"github.com/zsmartex/rebate/services/referral_service"
	"github.com/zsmartex/rebate/workers/daemons"
)

func CreateWorker(id string, referral *referral_service.ReferralService) daemons.Worker {
	switch id {
	case "cron_job":
		stats_snapshot := &cron.StatsSnapshotJob{Referral: referral}
		if config.InfluxDB != nil {
			stats_snapshot.Writer = config.InfluxDB
		}

		release_commission := &cron.ReleaseCommissionJob{Referral: referral}
		if config.Nats != nil {
			release_commission.Publisher = config.Nats
		}

		return daemons.NewCronJob(
			&cron.CommissionAuditJob{Referral: referral},
			stats_snapshot,
			release_commission,
		)
	case "registration_listener":
		if config.Nats == nil {
			config.Logger.Errorf("registration_listener needs NATS_URL")
			return nil
		}

		return daemons.NewRegistrationListener(config.Nats, referral)
	default:
		return nil
	}
}

func main() {
	if err := config.InitializeConfig(); err != nil {
		fmt.Println(err.Error())
		os.Exit(1)
	}

	repo, err := server.OpenRepository()
	if err != nil {
		config.Logger.Fatalf("Failed to open repository: %v", err)
	}
	referral := server.NewReferralService(repo)

	ARVG := os.Args[1:]
	if len(ARVG) == 0 {
		ARVG = []string{"cron_job"}
	}

	var wg sync.WaitGroup
	workers := make([]daemons.Worker, 0, len(ARVG))

	for _, id := range ARVG {
		worker := CreateWorker(id, referral)
		if worker == nil {
			config.Logger.Fatalf("Unknown worker: %s", id)
		}

		config.Logger.Infof("Start rebate-daemon: %s", id)
		workers = append(workers, worker)

		wg.Add(1)
		go func() {
			defer wg.Done()
			worker.Start()
		}()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	for _, worker := range workers {
		worker.Stop()
	}
	wg.Wait()
}
