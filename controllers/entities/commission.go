package entities

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/zsmartex/rebate/types"
)

type CommissionEntity struct {
	ID                 string          `json:"id"`
	FromUID            string          `json:"from_uid"`
	FromUsername       string          `json:"from_username"`
	TradeID            string          `json:"trade_id"`
	Symbol             string          `json:"symbol"`
	TradeType          types.TradeType `json:"trade_type"`
	Fee                decimal.Decimal `json:"fee"`
	Amount             decimal.Decimal `json:"amount"`
	Timestamp          time.Time       `json:"timestamp"`
	FormattedTimestamp string          `json:"formatted_timestamp"`
}

type InviteEntity struct {
	ID                 string             `json:"id"`
	InviteeUID         string             `json:"invitee_uid"`
	InviteeUsername    string             `json:"invitee_username"`
	InviteeEmail       string             `json:"invitee_email"`
	InviteCode         string             `json:"invite_code"`
	Status             types.InviteStatus `json:"status"`
	StatusText         string             `json:"status_text"`
	TradeCount         int                `json:"trade_count"`
	TotalCommission    decimal.Decimal    `json:"total_commission"`
	Timestamp          time.Time          `json:"timestamp"`
	FormattedTimestamp string             `json:"formatted_timestamp"`
}
