package entities

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/volatiletech/null"
	"github.com/zsmartex/rebate/types"
)

type TradeEntity struct {
	ID         string          `json:"id"`
	UID        string          `json:"uid"`
	Email      string          `json:"email"`
	InviterUID null.String     `json:"inviter_uid"`
	Symbol     string          `json:"symbol"`
	Type       types.TradeType `json:"type"`
	Amount     decimal.Decimal `json:"amount"`
	Fee        decimal.Decimal `json:"fee"`
	Commission decimal.Decimal `json:"commission"`
	CreatedAt  time.Time       `json:"created_at"`
}
