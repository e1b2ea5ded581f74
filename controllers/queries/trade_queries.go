package queries

import (
	"github.com/zsmartex/rebate/controllers/helpers"
)

type TradeFilters struct {
	Symbol   string `query:"symbol"`
	Type     string `query:"type" validate:"in:buy,sell"`
	Limit    int    `query:"limit" validate:"uint"`
	Page     int    `query:"page" validate:"uint"`
	TimeFrom int64  `query:"time_from" validate:"uint"`
	TimeTo   int64  `query:"time_to" validate:"uint"`
	OrderBy  string `query:"order_by" validate:"in:asc,desc"`
}

func (t TradeFilters) Messages() map[string]string {
	return helpers.VaildateMessage("market.trade")
}

func (t TradeFilters) Translates() map[string]string {
	return helpers.VaildateTranslateFields()
}
