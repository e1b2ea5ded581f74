package store

import (
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/volatiletech/null"

	"github.com/zsmartex/rebate/models"
	"github.com/zsmartex/rebate/types"
)

// suiteRepositoryTester holds the behaviour every Repository shares. Each
// test starts from a store holding the default dataset.
type suiteRepositoryTester struct {
	suite.Suite
	newRepository func() Repository
	store         Repository
}

func (s *suiteRepositoryTester) SetupTest() {
	s.store = s.newRepository()
}

func uids(users []*models.User) []string {
	result := make([]string, 0, len(users))
	for _, user := range users {
		result = append(result, user.UID)
	}

	return result
}

func (s *suiteRepositoryTester) TestGetUserByID() {
	user, err := s.store.GetUserByID("user3")
	s.NoError(err)
	s.Equal("王五", user.Username)

	_, err = s.store.GetUserByID("nobody")
	s.ErrorIs(err, ErrRecordNotFound)
}

func (s *suiteRepositoryTester) TestGetAllUsersKeepsFixtureOrder() {
	s.Equal([]string{"user1", "user2", "user3", "user4", "user5", "user6", "user7"}, uids(s.store.GetAllUsers()))
}

func (s *suiteRepositoryTester) TestLookups() {
	user, err := s.store.GetUserByInviteCode("INV006")
	s.NoError(err)
	s.Equal("user6", user.UID)

	user, err = s.store.GetUserByEmail("LiSi@Example.com")
	s.NoError(err)
	s.Equal("user2", user.UID)

	user, err = s.store.GetUserByUsername("赵六")
	s.NoError(err)
	s.Equal("user4", user.UID)

	_, err = s.store.GetUserByInviteCode("inv006")
	s.ErrorIs(err, ErrRecordNotFound)
}

func (s *suiteRepositoryTester) TestSearchUsers() {
	s.Equal([]string{"user2"}, uids(s.store.SearchUsers("LISI")))
	s.Equal([]string{"user1"}, uids(s.store.SearchUsers("张")))
	s.Len(s.store.SearchUsers("example.com"), 7)
	s.Len(s.store.SearchUsers(""), 7)
	s.Empty(s.store.SearchUsers("nomatch"))
}

func (s *suiteRepositoryTester) TestSearchUsersMatchesWildcardsLiterally() {
	s.Empty(s.store.SearchUsers("_"))
	s.Empty(s.store.SearchUsers("%"))
	s.Empty(s.store.SearchUsers(`\`))

	s.NoError(s.store.CreateUser(&models.User{
		UID:        "user8",
		Username:   "percent_100%",
		Email:      "percent@example.com",
		InviteCode: "INV008",
		CreatedAt:  time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
	}, nil))

	s.Equal([]string{"user8"}, uids(s.store.SearchUsers("_")))
	s.Equal([]string{"user8"}, uids(s.store.SearchUsers("0%")))
	s.Empty(s.store.SearchUsers("p_r"))
}

func (s *suiteRepositoryTester) TestGetInvitedUsersIsFirstLevelOnly() {
	s.Equal([]string{"user2", "user3", "user5"}, uids(s.store.GetInvitedUsers("user1")))
	s.Equal([]string{"user4"}, uids(s.store.GetInvitedUsers("user2")))
	s.Empty(s.store.GetInvitedUsers("user4"))
}

func (s *suiteRepositoryTester) TestTrades() {
	trades := s.store.GetTradesByUser("user1")
	s.Len(trades, 2)
	s.Equal("trade1", trades[0].ID)
	s.Equal("trade2", trades[1].ID)

	s.Empty(s.store.GetTradesByUser("user9"))
	s.Len(s.store.GetAllTrades(), 11)

	trade, err := s.store.GetTradeByID("trade7")
	s.NoError(err)
	s.Equal("user4", trade.UID)

	_, err = s.store.GetTradeByID("trade99")
	s.ErrorIs(err, ErrRecordNotFound)
}

func (s *suiteRepositoryTester) TestRecords() {
	s.Len(s.store.GetInviteRecordsByInviter("user1"), 3)
	s.Len(s.store.GetAllInviteRecords(), 5)

	s.Len(s.store.GetCommissionRecordsByUser("user1"), 6)
	s.Len(s.store.GetCommissionRecordsByUser("user2"), 1)
	s.Empty(s.store.GetCommissionRecordsByUser("user3"))
	s.Len(s.store.GetAllCommissionRecords(), 8)
}

func (s *suiteRepositoryTester) TestCreateUser() {
	user := &models.User{
		UID:        "user8",
		Username:   "吴十",
		Email:      "wushi@example.com",
		InviterUID: null.StringFrom("user7"),
		InviteCode: "INV008",
		CreatedAt:  time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
	}
	invite := &models.InviteRecord{
		ID:         "invite6",
		InviterUID: "user7",
		InviteeUID: "user8",
		InviteCode: "INV007",
		Timestamp:  user.CreatedAt,
		Status:     types.InviteStatusActive,
	}

	s.NoError(s.store.CreateUser(user, invite))

	found, err := s.store.GetUserByID("user8")
	s.Require().NoError(err)
	s.Equal(user.Username, found.Username)
	s.Equal(user.Email, found.Email)
	s.Equal(user.InviterUID, found.InviterUID)
	s.Equal(user.InviteCode, found.InviteCode)
	s.True(user.CreatedAt.Equal(found.CreatedAt))
	s.Equal([]string{"user8"}, uids(s.store.GetInvitedUsers("user7")))
	s.Len(s.store.GetInviteRecordsByInviter("user7"), 1)
	s.Len(s.store.GetAllUsers(), 8)
}

func (s *suiteRepositoryTester) TestCreateUserRejectsDuplicates() {
	duplicates := []*models.User{
		{UID: "user1", Username: "x", Email: "x@example.com", InviteCode: "X1"},
		{UID: "new1", Username: "张三", Email: "y@example.com", InviteCode: "X2"},
		{UID: "new2", Username: "z", Email: "ZHANGSAN@example.com", InviteCode: "X3"},
		{UID: "new3", Username: "w", Email: "w@example.com", InviteCode: "INV001"},
	}

	for _, user := range duplicates {
		s.ErrorIs(s.store.CreateUser(user, nil), ErrDuplicateUser, user.UID)
	}
	s.Len(s.store.GetAllUsers(), 7)
}
