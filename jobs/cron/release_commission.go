package cron

import (
	"encoding/json"
	"time"

	"github.com/jasonlvhit/gocron"

	"github.com/zsmartex/rebate/config"
	"github.com/zsmartex/rebate/models"
	"github.com/zsmartex/rebate/services/referral_service"
)

const ReleaseCommissionSubject = "rebate.release_commissions"

// Publisher is satisfied by *nats.Conn.
type Publisher interface {
	Publish(subject string, data []byte) error
}

type ReleaseCommissionJob struct {
	Referral  *referral_service.ReferralService
	Publisher Publisher
}

func (j *ReleaseCommissionJob) Process() {
	s := gocron.NewScheduler()
	s.Every(1).Day().At("00:00").Do(func() {
		if _, err := j.Run(time.Now()); err != nil {
			config.Logger.Errorf("Failed to release commissions, Error: %v", err)
		}
	})
	<-s.Start()
}

// Run summarises the day before now for every receiver and publishes one
// message per receiver.
func (j *ReleaseCommissionJob) Run(now time.Time) ([]*models.ReleaseCommission, error) {
	today, _ := j.Referral.DayBounds(now)
	yesterday := today.AddDate(0, 0, -1)

	release_commissions := j.Referral.GetReleaseCommissions("", yesterday, today)

	for _, release_commission := range release_commissions {
		config.Logger.Infof("Release commission %s %s: earned %s from %d friends, %d invited",
			release_commission.UID, release_commission.Date, release_commission.Earned, release_commission.FriendTrade, release_commission.Friend)

		if j.Publisher == nil {
			continue
		}

		payload, err := json.Marshal(release_commission)
		if err != nil {
			return nil, err
		}
		if err := j.Publisher.Publish(ReleaseCommissionSubject, payload); err != nil {
			return nil, err
		}
	}

	return release_commissions, nil
}
