package referral_service

import (
	"net/url"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/zsmartex/rebate/config"
	"github.com/zsmartex/rebate/models"
	"github.com/zsmartex/rebate/store"
)

// TimestampLayout renders timestamps the way the dashboard shows them.
const TimestampLayout = "2006/1/2 15:04:05"

const DateLayout = "2006-01-02"

// StatsCache is the subset of config.CacheService used for user stats.
type StatsCache interface {
	GetKey(key string, src interface{}) error
	SetKey(key string, value interface{}, expiration time.Duration) error
	DelKey(key string) error
}

type Config struct {
	AppOrigin string
	Location  *time.Location
	Cache     StatsCache
	CacheTTL  time.Duration
}

type ReferralService struct {
	repo   store.Repository
	config Config
}

func NewReferralService(repo store.Repository, c Config) *ReferralService {
	if c.Location == nil {
		c.Location = time.UTC
	}
	if c.CacheTTL <= 0 {
		c.CacheTTL = time.Minute
	}

	return &ReferralService{
		repo:   repo,
		config: c,
	}
}

func (s *ReferralService) Repository() store.Repository {
	return s.repo
}

func (s *ReferralService) Location() *time.Location {
	return s.config.Location
}

func (s *ReferralService) GetUser(uid string) (*models.User, error) {
	return s.repo.GetUserByID(uid)
}

func (s *ReferralService) GetAllUsers() []*models.User {
	return s.repo.GetAllUsers()
}

// SearchUsers matches username or email case-insensitively. An empty query
// lists every user.
func (s *ReferralService) SearchUsers(query string) []*models.User {
	if len(query) == 0 {
		return s.repo.GetAllUsers()
	}

	return s.repo.SearchUsers(query)
}

func (s *ReferralService) GenerateInviteLink(invite_code string) string {
	return s.config.AppOrigin + "/register?invite=" + url.QueryEscape(invite_code)
}

func (s *ReferralService) FormatTimestamp(t time.Time) string {
	return t.In(s.config.Location).Format(TimestampLayout)
}

func sumTrades(trades []*models.Trade) (amount, fee decimal.Decimal) {
	amount, fee = decimal.Zero, decimal.Zero
	for _, trade := range trades {
		amount = amount.Add(trade.Amount)
		fee = fee.Add(trade.Fee)
	}

	return amount, fee
}

// CalculateUserStats aggregates the user's own trading and the commission
// earned from first-level invitees. Invitees of invitees are not counted.
func (s *ReferralService) CalculateUserStats(uid string) models.UserStats {
	total_trade_amount, total_fee := sumTrades(s.repo.GetTradesByUser(uid))
	invited_users := s.repo.GetInvitedUsers(uid)

	total_commission := decimal.Zero
	for _, invited_user := range invited_users {
		_, invited_user_fee := sumTrades(s.repo.GetTradesByUser(invited_user.UID))
		total_commission = total_commission.Add(invited_user_fee.Mul(models.CommissionRate))
	}

	return models.UserStats{
		UID:              uid,
		TotalTradeAmount: total_trade_amount,
		TotalFee:         total_fee,
		InviteCount:      len(invited_users),
		TotalCommission:  total_commission.Round(models.CommissionPrecision),
	}
}

func statsCacheKey(uid string) string {
	return "rebate:stats:" + uid
}

// CachedUserStats is CalculateUserStats behind the stats cache, when one is
// configured. Cache failures fall back to computing the stats.
func (s *ReferralService) CachedUserStats(uid string) models.UserStats {
	if s.config.Cache == nil {
		return s.CalculateUserStats(uid)
	}

	var stats models.UserStats
	if err := s.config.Cache.GetKey(statsCacheKey(uid), &stats); err == nil {
		return stats
	}

	stats = s.CalculateUserStats(uid)
	if err := s.config.Cache.SetKey(statsCacheKey(uid), stats, s.config.CacheTTL); err != nil {
		config.Logger.Warnf("Failed to cache stats of %s: %v", uid, err)
	}

	return stats
}

func (s *ReferralService) InvalidateUserStats(uid string) {
	if s.config.Cache == nil {
		return
	}

	if err := s.config.Cache.DelKey(statsCacheKey(uid)); err != nil {
		config.Logger.Warnf("Failed to invalidate stats of %s: %v", uid, err)
	}
}

func (s *ReferralService) GetInvitedUsersWithStats(inviter_uid string) []*models.InvitedUser {
	invited_users := s.repo.GetInvitedUsers(inviter_uid)
	result := make([]*models.InvitedUser, 0, len(invited_users))

	for _, user := range invited_users {
		trades := s.repo.GetTradesByUser(user.UID)
		total_trade_amount, total_fee := sumTrades(trades)

		result = append(result, &models.InvitedUser{
			User:             *user,
			TotalTradeAmount: total_trade_amount,
			TotalFee:         total_fee,
			Commission:       models.CommissionFor(total_fee),
			TradeCount:       len(trades),
		})
	}

	return result
}

// GetCommissionHistory lists commissions received by uid, newest first.
func (s *ReferralService) GetCommissionHistory(uid string) []*models.CommissionHistory {
	records := s.repo.GetCommissionRecordsByUser(uid)
	history := make([]*models.CommissionHistory, 0, len(records))

	for _, record := range records {
		item := &models.CommissionHistory{
			CommissionRecord:   *record,
			FormattedTimestamp: s.FormatTimestamp(record.Timestamp),
		}
		if trade, err := s.repo.GetTradeByID(record.TradeID); err == nil {
			item.Trade = trade
		}
		if from_user, err := s.repo.GetUserByID(record.FromUID); err == nil {
			item.FromUser = from_user
		}

		history = append(history, item)
	}

	sort.SliceStable(history, func(i, j int) bool {
		return history[i].Timestamp.After(history[j].Timestamp)
	})

	return history
}

// GetInviteHistory lists invite records of uid, newest first.
func (s *ReferralService) GetInviteHistory(uid string) []*models.InviteHistory {
	records := s.repo.GetInviteRecordsByInviter(uid)
	history := make([]*models.InviteHistory, 0, len(records))

	for _, record := range records {
		invitee_trades := s.repo.GetTradesByUser(record.InviteeUID)

		total_commission := decimal.Zero
		for _, trade := range invitee_trades {
			total_commission = total_commission.Add(trade.Fee.Mul(models.CommissionRate))
		}

		item := &models.InviteHistory{
			InviteRecord:       *record,
			TotalCommission:    total_commission.Round(models.CommissionPrecision),
			TradeCount:         len(invitee_trades),
			FormattedTimestamp: s.FormatTimestamp(record.Timestamp),
		}
		if invitee, err := s.repo.GetUserByID(record.InviteeUID); err == nil {
			item.Invitee = invitee
		}

		history = append(history, item)
	}

	sort.SliceStable(history, func(i, j int) bool {
		return history[i].Timestamp.After(history[j].Timestamp)
	})

	return history
}

// GetTradeHistory lists the user's own trades, newest first.
func (s *ReferralService) GetTradeHistory(uid string) []*models.TradeHistory {
	trades := s.repo.GetTradesByUser(uid)
	history := make([]*models.TradeHistory, 0, len(trades))

	for _, trade := range trades {
		history = append(history, &models.TradeHistory{
			Trade:              *trade,
			FormattedTimestamp: s.FormatTimestamp(trade.Timestamp),
			TypeText:           trade.TypeLabel(),
		})
	}

	sort.SliceStable(history, func(i, j int) bool {
		return history[i].Timestamp.After(history[j].Timestamp)
	})

	return history
}
