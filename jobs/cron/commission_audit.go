package cron

import (
	"github.com/jasonlvhit/gocron"

	"github.com/zsmartex/rebate/config"
	"github.com/zsmartex/rebate/services/referral_service"
)

type CommissionAuditJob struct {
	Referral *referral_service.ReferralService
}

func (j *CommissionAuditJob) Process() {
	s := gocron.NewScheduler()
	s.Every(1).Day().At("00:30").Do(j.Run)
	<-s.Start()
}

// Run audits every commission record once and logs what it finds.
func (j *CommissionAuditJob) Run() *referral_service.AuditReport {
	report := j.Referral.AuditCommissions()

	for _, d := range report.Discrepancies {
		config.Logger.WithFields(map[string]interface{}{
			"commission_id": d.CommissionID,
			"trade_id":      d.TradeID,
			"expected":      d.Expected,
			"actual":        d.Actual,
		}).Warnf("Commission audit: %s", d.Reason)
	}

	config.Logger.Infof("Commission audit checked %d records, %d discrepancies", report.Checked, len(report.Discrepancies))

	return report
}
