package entities

import (
	"github.com/shopspring/decimal"
)

type ReleaseCommissionEntity struct {
	Date        string          `json:"date"`
	Earned      decimal.Decimal `json:"earned"`
	FriendTrade int             `json:"friend_trade"`
	Friend      int             `json:"friend"`
}
