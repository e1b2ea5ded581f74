package queries

import "github.com/zsmartex/rebate/controllers/helpers"

type ReleaseCommissionQueries struct {
	TimeFrom int64 `query:"time_from" validate:"uint"`
	TimeTo   int64 `query:"time_to" validate:"uint"`
}

func (t ReleaseCommissionQueries) Messages() map[string]string {
	return helpers.VaildateMessage("referral.release_commission")
}

func (t ReleaseCommissionQueries) Translates() map[string]string {
	return helpers.VaildateTranslateFields()
}
