package models

import (
	"time"

	"github.com/volatiletech/null"
)

type User struct {
	UID        string      `json:"uid" gorm:"primaryKey"`
	Username   string      `json:"username" gorm:"uniqueIndex"`
	Email      string      `json:"email" gorm:"uniqueIndex"`
	InviterUID null.String `json:"inviter_uid" gorm:"index"`
	InviteCode string      `json:"invite_code" gorm:"uniqueIndex"`
	CreatedAt  time.Time   `json:"created_at"`
}

func (u *User) HavingInviter() bool {
	return u.InviterUID.Valid
}

// InvitedBy reports whether inviter is the direct inviter of u.
func (u *User) InvitedBy(inviter_uid string) bool {
	return u.InviterUID.Valid && u.InviterUID.String == inviter_uid
}
