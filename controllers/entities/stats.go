package entities

import "github.com/shopspring/decimal"

type StatsEntity struct {
	UID              string          `json:"uid"`
	TotalTradeAmount decimal.Decimal `json:"total_trade_amount"`
	TotalFee         decimal.Decimal `json:"total_fee"`
	InviteCount      int             `json:"invite_count"`
	TotalCommission  decimal.Decimal `json:"total_commission"`
	InviteLink       string          `json:"invite_link"`
}

type InvitedUserEntity struct {
	UserEntity
	TradeCount       int             `json:"trade_count"`
	TotalTradeAmount decimal.Decimal `json:"total_trade_amount"`
	TotalFee         decimal.Decimal `json:"total_fee"`
	Commission       decimal.Decimal `json:"commission"`
}
