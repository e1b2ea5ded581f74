package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CommissionRate is the share of an invitee's trading fee paid to the inviter.
var CommissionRate = decimal.New(2, -1)

// CommissionPrecision is the number of decimal places commissions are rounded to.
const CommissionPrecision = 2

// CommissionFor applies the commission rate to fee, rounded to two decimals.
func CommissionFor(fee decimal.Decimal) decimal.Decimal {
	return fee.Mul(CommissionRate).Round(CommissionPrecision)
}

type CommissionRecord struct {
	ID        string          `json:"id" gorm:"primaryKey"`
	FromUID   string          `json:"from_uid" gorm:"index"`
	ToUID     string          `json:"to_uid" gorm:"index"`
	TradeID   string          `json:"trade_id" gorm:"index"`
	Amount    decimal.Decimal `json:"amount" gorm:"type:decimal(32,16)"`
	Fee       decimal.Decimal `json:"fee" gorm:"type:decimal(32,16)"`
	Timestamp time.Time       `json:"timestamp" gorm:"index"`
}
