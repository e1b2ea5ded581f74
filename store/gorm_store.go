package store

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/zsmartex/rebate/config"
	"github.com/zsmartex/rebate/fixtures"
	"github.com/zsmartex/rebate/models"
)

// GormStore implements Repository over a SQL database.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) AutoMigrate() error {
	return s.db.AutoMigrate(
		&models.User{},
		&models.Trade{},
		&models.InviteRecord{},
		&models.CommissionRecord{},
	)
}

// Seed inserts the dataset, leaving rows that already exist untouched.
func (s *GormStore) Seed(dataset *fixtures.Dataset) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		insert := tx.Clauses(clause.OnConflict{DoNothing: true})

		if len(dataset.Users) > 0 {
			if err := insert.Create(&dataset.Users).Error; err != nil {
				return fmt.Errorf("seed users: %w", err)
			}
		}
		if len(dataset.Trades) > 0 {
			if err := insert.Create(&dataset.Trades).Error; err != nil {
				return fmt.Errorf("seed trades: %w", err)
			}
		}
		if len(dataset.InviteRecords) > 0 {
			if err := insert.Create(&dataset.InviteRecords).Error; err != nil {
				return fmt.Errorf("seed invite records: %w", err)
			}
		}
		if len(dataset.CommissionRecords) > 0 {
			if err := insert.Create(&dataset.CommissionRecords).Error; err != nil {
				return fmt.Errorf("seed commission records: %w", err)
			}
		}

		return nil
	})
}

func (s *GormStore) GetUserByID(uid string) (*models.User, error) {
	return s.firstUser("uid = ?", uid)
}

func (s *GormStore) GetAllUsers() []*models.User {
	var users []*models.User
	logFindError("users", s.db.Order("created_at asc").Find(&users))

	return users
}

func (s *GormStore) GetUserByInviteCode(code string) (*models.User, error) {
	return s.firstUser("invite_code = ?", code)
}

func (s *GormStore) GetUserByEmail(email string) (*models.User, error) {
	return s.firstUser("LOWER(email) = ?", strings.ToLower(email))
}

func (s *GormStore) GetUserByUsername(username string) (*models.User, error) {
	return s.firstUser("username = ?", username)
}

func (s *GormStore) SearchUsers(query string) []*models.User {
	var users []*models.User

	pattern := containsPattern(strings.ToLower(query))
	logFindError("users", s.db.Where(`LOWER(username) LIKE ? ESCAPE '\' OR LOWER(email) LIKE ? ESCAPE '\'`, pattern, pattern).Order("created_at asc").Find(&users))

	return users
}

func (s *GormStore) GetInvitedUsers(inviter_uid string) []*models.User {
	var users []*models.User
	logFindError("invited users", s.db.Where("inviter_uid = ?", inviter_uid).Order("created_at asc").Find(&users))

	return users
}

func (s *GormStore) GetTradesByUser(uid string) []*models.Trade {
	var trades []*models.Trade
	logFindError("trades", s.db.Where("uid = ?", uid).Order("timestamp asc").Find(&trades))

	return trades
}

func (s *GormStore) GetAllTrades() []*models.Trade {
	var trades []*models.Trade
	logFindError("trades", s.db.Order("timestamp asc").Find(&trades))

	return trades
}

func (s *GormStore) GetTradeByID(id string) (*models.Trade, error) {
	var trade *models.Trade
	if err := s.db.First(&trade, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}

	return trade, nil
}

func (s *GormStore) GetInviteRecordsByInviter(inviter_uid string) []*models.InviteRecord {
	var records []*models.InviteRecord
	logFindError("invite records", s.db.Where("inviter_uid = ?", inviter_uid).Order("timestamp asc").Find(&records))

	return records
}

func (s *GormStore) GetAllInviteRecords() []*models.InviteRecord {
	var records []*models.InviteRecord
	logFindError("invite records", s.db.Order("timestamp asc").Find(&records))

	return records
}

func (s *GormStore) GetCommissionRecordsByUser(uid string) []*models.CommissionRecord {
	var records []*models.CommissionRecord
	logFindError("commission records", s.db.Where("to_uid = ?", uid).Order("timestamp asc").Find(&records))

	return records
}

func (s *GormStore) GetAllCommissionRecords() []*models.CommissionRecord {
	var records []*models.CommissionRecord
	logFindError("commission records", s.db.Order("timestamp asc").Find(&records))

	return records
}

func (s *GormStore) CreateUser(user *models.User, invite *models.InviteRecord) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).
			Where("uid = ? OR LOWER(email) = ? OR username = ? OR invite_code = ?", user.UID, strings.ToLower(user.Email), user.Username, user.InviteCode).
			Count(&count).Error; err != nil {
			return fmt.Errorf("check duplicate user: %w", err)
		}
		if count > 0 {
			return ErrDuplicateUser
		}

		if err := tx.Create(user).Error; err != nil {
			return err
		}

		if invite != nil {
			if err := tx.Create(invite).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

func (s *GormStore) firstUser(query string, args ...interface{}) (*models.User, error) {
	var user *models.User
	if err := s.db.Where(query, args...).First(&user).Error; err != nil {
		return nil, translateError(err)
	}

	return user, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern is a LIKE pattern matching query as a literal substring.
func containsPattern(query string) string {
	return "%" + likeEscaper.Replace(query) + "%"
}

// logFindError logs a failed listing query. Listings return what was found,
// which is nothing when the query failed.
func logFindError(what string, result *gorm.DB) {
	if result.Error != nil {
		config.Logger.Errorf("Failed to find %s, Error: %v", what, result.Error)
	}
}

func translateError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrRecordNotFound
	}

	return err
}
