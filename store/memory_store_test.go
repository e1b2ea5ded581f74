package store

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/zsmartex/rebate/fixtures"
	"github.com/zsmartex/rebate/models"
)

type suiteMemoryStoreTester struct {
	suiteRepositoryTester
}

func TestMemoryStore(t *testing.T) {
	suite.Run(t, &suiteMemoryStoreTester{
		suiteRepositoryTester{
			newRepository: func() Repository { return NewMemoryStore(fixtures.MustDefault()) },
		},
	})
}

func (s *suiteMemoryStoreTester) TestListingsAreCopies() {
	trades := s.store.GetTradesByUser("user1")
	trades[0] = nil

	s.NotNil(s.store.GetTradesByUser("user1")[0])
}

func (s *suiteMemoryStoreTester) TestConcurrentAccess() {
	var wg sync.WaitGroup

	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.store.SearchUsers("example")
			s.store.GetInvitedUsers("user1")
		}()
		go func(i int) {
			defer wg.Done()
			s.store.CreateUser(&models.User{
				UID:        "load" + string(rune('a'+i)),
				Username:   "load" + string(rune('a'+i)),
				Email:      string(rune('a'+i)) + "@load.example.com",
				InviteCode: "LOAD" + string(rune('a'+i)),
			}, nil)
		}(i)
	}

	wg.Wait()
	s.Len(s.store.GetAllUsers(), 15)
}
