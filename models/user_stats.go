package models

import "github.com/shopspring/decimal"

type UserStats struct {
	UID              string          `json:"uid"`
	TotalTradeAmount decimal.Decimal `json:"total_trade_amount"`
	TotalFee         decimal.Decimal `json:"total_fee"`
	InviteCount      int             `json:"invite_count"`
	TotalCommission  decimal.Decimal `json:"total_commission"`
}
