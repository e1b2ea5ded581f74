package store

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/zsmartex/rebate/fixtures"
	"github.com/zsmartex/rebate/models"
)

// TEST_DATABASE_DSN points at a disposable postgres database. Its tables are
// dropped and recreated for every test.
const testDatabaseDSNEnv = "TEST_DATABASE_DSN"

type suiteGormStoreTester struct {
	suiteRepositoryTester
	db *gorm.DB
}

func TestGormStore(t *testing.T) {
	dsn := os.Getenv(testDatabaseDSNEnv)
	if len(dsn) == 0 {
		t.Skipf("%s is not set", testDatabaseDSNEnv)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	tester := &suiteGormStoreTester{db: db}
	tester.newRepository = func() Repository {
		gorm_store := NewGormStore(db)

		tester.Require().NoError(db.Migrator().DropTable(&models.User{}, &models.Trade{}, &models.InviteRecord{}, &models.CommissionRecord{}))
		tester.Require().NoError(gorm_store.AutoMigrate())
		tester.Require().NoError(gorm_store.Seed(fixtures.MustDefault()))

		return gorm_store
	}

	suite.Run(t, tester)
}

func (s *suiteGormStoreTester) TestSeedIsIdempotent() {
	gorm_store := NewGormStore(s.db)
	s.NoError(gorm_store.Seed(fixtures.MustDefault()))

	s.Len(s.store.GetAllUsers(), 7)
	s.Len(s.store.GetAllTrades(), 11)
	s.Len(s.store.GetAllInviteRecords(), 5)
	s.Len(s.store.GetAllCommissionRecords(), 8)
}

func TestContainsPattern(t *testing.T) {
	tests := map[string]string{
		"":          "%%",
		"lisi":      "%lisi%",
		"_":         `%\_%`,
		"100%":      `%100\%%`,
		`a\b`:       `%a\\b%`,
		`\_%`:       `%\\\_\%%`,
		"zhang_san": `%zhang\_san%`,
	}

	for query, expected := range tests {
		assert.Equal(t, expected, containsPattern(query), query)
	}
}

func TestGormStoreReportsDatabaseErrors(t *testing.T) {
	// nothing listens on port 1, so every query fails to connect
	db, err := gorm.Open(
		postgres.Open("host=127.0.0.1 port=1 user=rebate dbname=rebate sslmode=disable connect_timeout=1"),
		&gorm.Config{DisableAutomaticPing: true, Logger: logger.Default.LogMode(logger.Silent)},
	)
	require.NoError(t, err)

	gorm_store := NewGormStore(db)

	err = gorm_store.CreateUser(&models.User{UID: "user8", Username: "new", Email: "new@example.com", InviteCode: "INV008"}, nil)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrDuplicateUser)

	_, err = gorm_store.GetUserByID("user1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrRecordNotFound)

	assert.Empty(t, gorm_store.GetAllUsers())
	assert.Empty(t, gorm_store.SearchUsers("lisi"))
	assert.Empty(t, gorm_store.GetCommissionRecordsByUser("user1"))
}
