package store

import (
	"errors"

	"github.com/zsmartex/rebate/models"
)

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrDuplicateUser  = errors.New("user already exists")
)

// Repository is the data access contract over users, trades, invite records
// and commission records. Listing operations return records in insertion
// order; callers sort when they need another order.
type Repository interface {
	GetUserByID(uid string) (*models.User, error)
	GetAllUsers() []*models.User
	GetUserByInviteCode(code string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	SearchUsers(query string) []*models.User
	GetInvitedUsers(inviter_uid string) []*models.User

	GetTradesByUser(uid string) []*models.Trade
	GetAllTrades() []*models.Trade
	GetTradeByID(id string) (*models.Trade, error)

	GetInviteRecordsByInviter(inviter_uid string) []*models.InviteRecord
	GetAllInviteRecords() []*models.InviteRecord

	GetCommissionRecordsByUser(uid string) []*models.CommissionRecord
	GetAllCommissionRecords() []*models.CommissionRecord

	// CreateUser adds a newly registered user and, when invite is not nil,
	// the invite record that attributes it to its inviter.
	CreateUser(user *models.User, invite *models.InviteRecord) error
}
