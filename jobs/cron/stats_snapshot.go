package cron

import (
	"time"

	"github.com/jasonlvhit/gocron"

	"github.com/zsmartex/rebate/config"
	"github.com/zsmartex/rebate/services/referral_service"
)

const StatsMeasurement = "user_stats"

// PointWriter is satisfied by config.InfluxClient.
type PointWriter interface {
	WritePoint(name string, tags map[string]string, fields map[string]interface{}, t time.Time) error
}

type StatsSnapshotJob struct {
	Referral *referral_service.ReferralService
	Writer   PointWriter
}

func (j *StatsSnapshotJob) Process() {
	s := gocron.NewScheduler()
	s.Every(10).Minutes().Do(func() {
		if err := j.Run(time.Now()); err != nil {
			config.Logger.Errorf("Failed to snapshot user stats, Error: %v", err)
		}
	})
	<-s.Start()
}

// Run records the stats of every user at now. Without a writer the stats
// are only logged.
func (j *StatsSnapshotJob) Run(now time.Time) error {
	for _, user := range j.Referral.GetAllUsers() {
		stats := j.Referral.CalculateUserStats(user.UID)

		fields := map[string]interface{}{
			"total_trade_amount": stats.TotalTradeAmount.InexactFloat64(),
			"total_fee":          stats.TotalFee.InexactFloat64(),
			"invite_count":       stats.InviteCount,
			"total_commission":   stats.TotalCommission.InexactFloat64(),
		}

		if j.Writer == nil {
			config.Logger.WithFields(fields).Infof("User stats of %s", user.UID)
			continue
		}

		if err := j.Writer.WritePoint(StatsMeasurement, map[string]string{"uid": user.UID}, fields, now); err != nil {
			return err
		}
	}

	return nil
}
