package models

import (
	"time"

	"github.com/zsmartex/rebate/types"
)

type InviteRecord struct {
	ID         string             `json:"id" gorm:"primaryKey"`
	InviterUID string             `json:"inviter_uid" gorm:"index"`
	InviteeUID string             `json:"invitee_uid" gorm:"uniqueIndex"`
	InviteCode string             `json:"invite_code"`
	Timestamp  time.Time          `json:"timestamp"`
	Status     types.InviteStatus `json:"status"`
}

func (r *InviteRecord) IsActive() bool {
	return r.Status == types.InviteStatusActive
}

// StatusLabel is the label used by reports for the invite status.
func (r *InviteRecord) StatusLabel() string {
	if r.IsActive() {
		return "活跃"
	}

	return "非活跃"
}
