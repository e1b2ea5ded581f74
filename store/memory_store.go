package store

import (
	"strings"
	"sync"

	"github.com/emirpasic/gods/maps/linkedhashmap"

	"github.com/zsmartex/rebate/fixtures"
	"github.com/zsmartex/rebate/models"
)

// MemoryStore serves a fixture dataset from memory. Fixture records are never
// modified; registrations are appended.
type MemoryStore struct {
	mu sync.RWMutex

	users        *linkedhashmap.Map
	trades       *linkedhashmap.Map
	tradesByUser map[string][]*models.Trade

	inviteRecords     []*models.InviteRecord
	commissionRecords []*models.CommissionRecord
}

func NewMemoryStore(dataset *fixtures.Dataset) *MemoryStore {
	s := &MemoryStore{
		users:        linkedhashmap.New(),
		trades:       linkedhashmap.New(),
		tradesByUser: make(map[string][]*models.Trade),
	}

	for _, user := range dataset.Users {
		s.users.Put(user.UID, user)
	}

	for _, trade := range dataset.Trades {
		s.trades.Put(trade.ID, trade)
		s.tradesByUser[trade.UID] = append(s.tradesByUser[trade.UID], trade)
	}

	s.inviteRecords = append(s.inviteRecords, dataset.InviteRecords...)
	s.commissionRecords = append(s.commissionRecords, dataset.CommissionRecords...)

	return s
}

func (s *MemoryStore) GetUserByID(uid string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, found := s.users.Get(uid)
	if !found {
		return nil, ErrRecordNotFound
	}

	return value.(*models.User), nil
}

func (s *MemoryStore) GetAllUsers() []*models.User {
	return s.filterUsers(func(*models.User) bool { return true })
}

func (s *MemoryStore) GetUserByInviteCode(code string) (*models.User, error) {
	return s.findUser(func(u *models.User) bool { return u.InviteCode == code })
}

func (s *MemoryStore) GetUserByEmail(email string) (*models.User, error) {
	return s.findUser(func(u *models.User) bool { return strings.EqualFold(u.Email, email) })
}

func (s *MemoryStore) GetUserByUsername(username string) (*models.User, error) {
	return s.findUser(func(u *models.User) bool { return u.Username == username })
}

func (s *MemoryStore) SearchUsers(query string) []*models.User {
	lowercase_query := strings.ToLower(query)

	return s.filterUsers(func(u *models.User) bool {
		return strings.Contains(strings.ToLower(u.Username), lowercase_query) ||
			strings.Contains(strings.ToLower(u.Email), lowercase_query)
	})
}

func (s *MemoryStore) GetInvitedUsers(inviter_uid string) []*models.User {
	return s.filterUsers(func(u *models.User) bool { return u.InvitedBy(inviter_uid) })
}

func (s *MemoryStore) GetTradesByUser(uid string) []*models.Trade {
	s.mu.RLock()
	defer s.mu.RUnlock()

	trades := make([]*models.Trade, 0, len(s.tradesByUser[uid]))

	return append(trades, s.tradesByUser[uid]...)
}

func (s *MemoryStore) GetAllTrades() []*models.Trade {
	s.mu.RLock()
	defer s.mu.RUnlock()

	trades := make([]*models.Trade, 0, s.trades.Size())
	for _, value := range s.trades.Values() {
		trades = append(trades, value.(*models.Trade))
	}

	return trades
}

func (s *MemoryStore) GetTradeByID(id string) (*models.Trade, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, found := s.trades.Get(id)
	if !found {
		return nil, ErrRecordNotFound
	}

	return value.(*models.Trade), nil
}

func (s *MemoryStore) GetInviteRecordsByInviter(inviter_uid string) []*models.InviteRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]*models.InviteRecord, 0)
	for _, record := range s.inviteRecords {
		if record.InviterUID == inviter_uid {
			records = append(records, record)
		}
	}

	return records
}

func (s *MemoryStore) GetAllInviteRecords() []*models.InviteRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]*models.InviteRecord, 0, len(s.inviteRecords))

	return append(records, s.inviteRecords...)
}

func (s *MemoryStore) GetCommissionRecordsByUser(uid string) []*models.CommissionRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]*models.CommissionRecord, 0)
	for _, record := range s.commissionRecords {
		if record.ToUID == uid {
			records = append(records, record)
		}
	}

	return records
}

func (s *MemoryStore) GetAllCommissionRecords() []*models.CommissionRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]*models.CommissionRecord, 0, len(s.commissionRecords))

	return append(records, s.commissionRecords...)
}

func (s *MemoryStore) CreateUser(user *models.User, invite *models.InviteRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, found := s.users.Get(user.UID); found {
		return ErrDuplicateUser
	}

	for _, value := range s.users.Values() {
		existing := value.(*models.User)
		if strings.EqualFold(existing.Email, user.Email) ||
			existing.Username == user.Username ||
			existing.InviteCode == user.InviteCode {
			return ErrDuplicateUser
		}
	}

	s.users.Put(user.UID, user)
	if invite != nil {
		s.inviteRecords = append(s.inviteRecords, invite)
	}

	return nil
}

func (s *MemoryStore) findUser(match func(*models.User) bool) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, value := range s.users.Values() {
		if user := value.(*models.User); match(user) {
			return user, nil
		}
	}

	return nil, ErrRecordNotFound
}

func (s *MemoryStore) filterUsers(match func(*models.User) bool) []*models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]*models.User, 0)
	for _, value := range s.users.Values() {
		if user := value.(*models.User); match(user) {
			users = append(users, user)
		}
	}

	return users
}
