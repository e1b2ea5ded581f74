package fixtures

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"github.com/volatiletech/null"
	"gopkg.in/yaml.v2"

	"github.com/zsmartex/rebate/models"
	"github.com/zsmartex/rebate/types"
)

//go:embed fixtures.yml
var defaultFixture []byte

// Dataset is the full static dataset served by the dashboard.
type Dataset struct {
	Users             []*models.User
	Trades            []*models.Trade
	InviteRecords     []*models.InviteRecord
	CommissionRecords []*models.CommissionRecord
}

type userEntry struct {
	UID        string `yaml:"uid"`
	Username   string `yaml:"username"`
	Email      string `yaml:"email"`
	InviterUID string `yaml:"inviter_uid"`
	InviteCode string `yaml:"invite_code"`
	CreatedAt  string `yaml:"created_at"`
}

type tradeEntry struct {
	ID        string `yaml:"id"`
	UID       string `yaml:"uid"`
	Amount    string `yaml:"amount"`
	Fee       string `yaml:"fee"`
	Timestamp string `yaml:"timestamp"`
	Type      string `yaml:"type"`
	Symbol    string `yaml:"symbol"`
}

type inviteEntry struct {
	ID         string `yaml:"id"`
	InviterUID string `yaml:"inviter_uid"`
	InviteeUID string `yaml:"invitee_uid"`
	InviteCode string `yaml:"invite_code"`
	Timestamp  string `yaml:"timestamp"`
	Status     string `yaml:"status"`
}

type commissionEntry struct {
	ID        string `yaml:"id"`
	FromUID   string `yaml:"from_uid"`
	ToUID     string `yaml:"to_uid"`
	TradeID   string `yaml:"trade_id"`
	Amount    string `yaml:"amount"`
	Fee       string `yaml:"fee"`
	Timestamp string `yaml:"timestamp"`
}

type document struct {
	Users             []userEntry       `yaml:"users"`
	Trades            []tradeEntry      `yaml:"trades"`
	InviteRecords     []inviteEntry     `yaml:"invite_records"`
	CommissionRecords []commissionEntry `yaml:"commission_records"`
}

// Default decodes the dataset embedded in the binary.
func Default() (*Dataset, error) {
	return Parse(defaultFixture)
}

// MustDefault is Default for callers that cannot recover from a broken build.
func MustDefault() *Dataset {
	dataset, err := Default()
	if err != nil {
		panic(err)
	}

	return dataset
}

// Load reads a dataset from path, or the embedded one when path is empty.
func Load(path string) (*Dataset, error) {
	if len(path) == 0 {
		return Default()
	}

	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}

	return Parse(buf)
}

func Parse(buf []byte) (*Dataset, error) {
	var doc document
	if err := yaml.Unmarshal(buf, &doc); err != nil {
		return nil, fmt.Errorf("decode fixture: %w", err)
	}

	dataset := &Dataset{}

	for _, entry := range doc.Users {
		created_at, err := parseTime(entry.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("user %s: %w", entry.UID, err)
		}

		dataset.Users = append(dataset.Users, &models.User{
			UID:        entry.UID,
			Username:   entry.Username,
			Email:      entry.Email,
			InviterUID: null.NewString(entry.InviterUID, len(entry.InviterUID) > 0),
			InviteCode: entry.InviteCode,
			CreatedAt:  created_at,
		})
	}

	for _, entry := range doc.Trades {
		trade, err := entry.toModel()
		if err != nil {
			return nil, fmt.Errorf("trade %s: %w", entry.ID, err)
		}

		dataset.Trades = append(dataset.Trades, trade)
	}

	for _, entry := range doc.InviteRecords {
		timestamp, err := parseTime(entry.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("invite record %s: %w", entry.ID, err)
		}

		status := types.InviteStatus(entry.Status)
		if !status.Valid() {
			return nil, fmt.Errorf("invite record %s: unknown status %q", entry.ID, entry.Status)
		}

		dataset.InviteRecords = append(dataset.InviteRecords, &models.InviteRecord{
			ID:         entry.ID,
			InviterUID: entry.InviterUID,
			InviteeUID: entry.InviteeUID,
			InviteCode: entry.InviteCode,
			Timestamp:  timestamp,
			Status:     status,
		})
	}

	for _, entry := range doc.CommissionRecords {
		record, err := entry.toModel()
		if err != nil {
			return nil, fmt.Errorf("commission record %s: %w", entry.ID, err)
		}

		dataset.CommissionRecords = append(dataset.CommissionRecords, record)
	}

	return dataset, nil
}

func (e tradeEntry) toModel() (*models.Trade, error) {
	amount, err := decimal.NewFromString(e.Amount)
	if err != nil {
		return nil, fmt.Errorf("amount: %w", err)
	}
	fee, err := decimal.NewFromString(e.Fee)
	if err != nil {
		return nil, fmt.Errorf("fee: %w", err)
	}
	timestamp, err := parseTime(e.Timestamp)
	if err != nil {
		return nil, err
	}

	trade_type := types.TradeType(e.Type)
	if !trade_type.Valid() {
		return nil, fmt.Errorf("unknown type %q", e.Type)
	}

	return &models.Trade{
		ID:        e.ID,
		UID:       e.UID,
		Amount:    amount,
		Fee:       fee,
		Timestamp: timestamp,
		Type:      trade_type,
		Symbol:    e.Symbol,
	}, nil
}

func (e commissionEntry) toModel() (*models.CommissionRecord, error) {
	amount, err := decimal.NewFromString(e.Amount)
	if err != nil {
		return nil, fmt.Errorf("amount: %w", err)
	}
	fee, err := decimal.NewFromString(e.Fee)
	if err != nil {
		return nil, fmt.Errorf("fee: %w", err)
	}
	timestamp, err := parseTime(e.Timestamp)
	if err != nil {
		return nil, err
	}

	return &models.CommissionRecord{
		ID:        e.ID,
		FromUID:   e.FromUID,
		ToUID:     e.ToUID,
		TradeID:   e.TradeID,
		Amount:    amount,
		Fee:       fee,
		Timestamp: timestamp,
	}, nil
}

func parseTime(value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("timestamp %q: %w", value, err)
	}

	return t, nil
}
