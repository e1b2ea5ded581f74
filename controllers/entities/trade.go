package entities

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/zsmartex/rebate/types"
)

type TradeEntity struct {
	ID                 string          `json:"id"`
	Symbol             string          `json:"symbol"`
	Type               types.TradeType `json:"type"`
	TypeText           string          `json:"type_text"`
	Amount             decimal.Decimal `json:"amount"`
	Fee                decimal.Decimal `json:"fee"`
	Timestamp          time.Time       `json:"timestamp"`
	FormattedTimestamp string          `json:"formatted_timestamp"`
}
