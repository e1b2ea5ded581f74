package referral_service

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/zsmartex/rebate/models"
)

type releaseKey struct {
	uid  string
	date string
}

type releaseGroup struct {
	earned  decimal.Decimal
	friends map[string]bool
	invites int
}

// GetReleaseCommissions summarises, per receiving user and per day in the
// report location, the commission earned, how many distinct invitees traded
// and how many users were invited. Records outside [from, to) are ignored.
// An empty uid summarises every receiver.
func (s *ReferralService) GetReleaseCommissions(uid string, from, to time.Time) []*models.ReleaseCommission {
	groups := make(map[releaseKey]*releaseGroup)
	group := func(key releaseKey) *releaseGroup {
		g, found := groups[key]
		if !found {
			g = &releaseGroup{earned: decimal.Zero, friends: make(map[string]bool)}
			groups[key] = g
		}

		return g
	}
	within := func(t time.Time) bool {
		return !t.Before(from) && t.Before(to)
	}

	var commissions []*models.CommissionRecord
	if len(uid) > 0 {
		commissions = s.repo.GetCommissionRecordsByUser(uid)
	} else {
		commissions = s.repo.GetAllCommissionRecords()
	}

	for _, commission := range commissions {
		if !within(commission.Timestamp) {
			continue
		}

		g := group(releaseKey{uid: commission.ToUID, date: s.dateOf(commission.Timestamp)})
		g.earned = g.earned.Add(commission.Amount)
		g.friends[commission.FromUID] = true
	}

	var invites []*models.InviteRecord
	if len(uid) > 0 {
		invites = s.repo.GetInviteRecordsByInviter(uid)
	} else {
		invites = s.repo.GetAllInviteRecords()
	}

	for _, invite := range invites {
		if !within(invite.Timestamp) {
			continue
		}

		group(releaseKey{uid: invite.InviterUID, date: s.dateOf(invite.Timestamp)}).invites++
	}

	releases := make([]*models.ReleaseCommission, 0, len(groups))
	for key, g := range groups {
		releases = append(releases, &models.ReleaseCommission{
			UID:         key.uid,
			Date:        key.date,
			Earned:      g.earned.Round(models.CommissionPrecision),
			FriendTrade: len(g.friends),
			Friend:      g.invites,
		})
	}

	sort.Slice(releases, func(i, j int) bool {
		if releases[i].Date != releases[j].Date {
			return releases[i].Date < releases[j].Date
		}

		return releases[i].UID < releases[j].UID
	})

	return releases
}

func (s *ReferralService) dateOf(t time.Time) string {
	return t.In(s.config.Location).Format(DateLayout)
}

// DayBounds returns the start of the day containing t and the start of the
// next one, in the report location.
func (s *ReferralService) DayBounds(t time.Time) (time.Time, time.Time) {
	local := t.In(s.config.Location)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, s.config.Location)

	return start, start.AddDate(0, 0, 1)
}
