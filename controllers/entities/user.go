package entities

import (
	"time"

	"github.com/volatiletech/null"
)

type UserEntity struct {
	UID        string      `json:"uid"`
	Username   string      `json:"username"`
	Email      string      `json:"email"`
	InviterUID null.String `json:"inviter_uid"`
	InviteCode string      `json:"invite_code"`
	CreatedAt  time.Time   `json:"created_at"`
}

type SessionEntity struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	User      *UserEntity `json:"user"`
}

type InviteLinkEntity struct {
	InviteCode string `json:"invite_code"`
	InviteLink string `json:"invite_link"`
}

// RegisterPrefillEntity is what the registration form starts from.
type RegisterPrefillEntity struct {
	InviteCode string      `json:"invite_code"`
	Inviter    *UserEntity `json:"inviter"`
}
