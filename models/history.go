package models

import "github.com/shopspring/decimal"

// InvitedUser is a first-level invitee together with its trading totals.
type InvitedUser struct {
	User
	TotalTradeAmount decimal.Decimal `json:"total_trade_amount"`
	TotalFee         decimal.Decimal `json:"total_fee"`
	Commission       decimal.Decimal `json:"commission"`
	TradeCount       int             `json:"trade_count"`
}

type CommissionHistory struct {
	CommissionRecord
	Trade              *Trade `json:"trade"`
	FromUser           *User  `json:"from_user"`
	FormattedTimestamp string `json:"formatted_timestamp"`
}

type InviteHistory struct {
	InviteRecord
	Invitee            *User           `json:"invitee"`
	TotalCommission    decimal.Decimal `json:"total_commission"`
	TradeCount         int             `json:"trade_count"`
	FormattedTimestamp string          `json:"formatted_timestamp"`
}

type TradeHistory struct {
	Trade
	FormattedTimestamp string `json:"formatted_timestamp"`
	TypeText           string `json:"type_text"`
}
