package models

import (
	"github.com/shopspring/decimal"
)

// ReleaseCommission is the per-day commission summary of one receiving user.
type ReleaseCommission struct {
	UID         string          `json:"uid"`
	Date        string          `json:"date"`
	Earned      decimal.Decimal `json:"earned"`
	FriendTrade int             `json:"friend_trade"`
	Friend      int             `json:"friend"`
}
