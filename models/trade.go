package models

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/zsmartex/rebate/types"
)

type Trade struct {
	ID        string          `json:"id" gorm:"primaryKey"`
	UID       string          `json:"uid" gorm:"index"`
	Amount    decimal.Decimal `json:"amount" gorm:"type:decimal(32,16)"`
	Fee       decimal.Decimal `json:"fee" gorm:"type:decimal(32,16)"`
	Timestamp time.Time       `json:"timestamp" gorm:"index"`
	Type      types.TradeType `json:"type"`
	Symbol    string          `json:"symbol"`
}

// TypeLabel is the label used by reports for the trade side.
func (t *Trade) TypeLabel() string {
	if t.Type == types.TypeBuy {
		return "买入"
	}

	return "卖出"
}

// Commission is what the inviter of the trade owner earns from this trade.
func (t *Trade) Commission() decimal.Decimal {
	return CommissionFor(t.Fee)
}
