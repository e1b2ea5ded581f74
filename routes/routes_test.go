package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/suite"

	"github.com/zsmartex/rebate/controllers/auth"
	"github.com/zsmartex/rebate/fixtures"
	"github.com/zsmartex/rebate/monitoring"
	"github.com/zsmartex/rebate/services/account_service"
	"github.com/zsmartex/rebate/services/referral_service"
	"github.com/zsmartex/rebate/services/report_service"
	"github.com/zsmartex/rebate/store"
)

type recordingPublisher struct {
	mu       sync.Mutex
	subjects []string
	payloads [][]byte
}

func (p *recordingPublisher) Publish(subject string, data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.subjects = append(p.subjects, subject)
	p.payloads = append(p.payloads, data)

	return nil
}

type RoutesTestSuite struct {
	suite.Suite

	app    *fiber.App
	events *recordingPublisher
}

func (s *RoutesTestSuite) SetupTest() {
	dataset, err := fixtures.Default()
	s.Require().NoError(err)

	repo := store.NewMemoryStore(dataset)
	referral := referral_service.NewReferralService(repo, referral_service.Config{
		AppOrigin: "http://localhost:3000",
		Location:  time.UTC,
	})
	s.events = &recordingPublisher{}

	s.app = SetupRouter(&Dependencies{
		Repository: repo,
		Referral:   referral,
		Accounts:   account_service.NewAccountService(repo),
		Reports:    report_service.NewReportService(referral),
		Issuer:     auth.NewIssuer("test-secret", time.Hour),
		Revoker:    auth.NewMemoryRevoker(),
		Metrics:    monitoring.NewMetrics(),
		Events:     s.events,
		AdminUIDs:  []string{"user6"},
	})
}

func (s *RoutesTestSuite) request(method, path, token string, body interface{}) *http.Response {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(buf)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if len(token) > 0 {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.app.Test(req, -1)
	s.Require().NoError(err)

	return resp
}

func (s *RoutesTestSuite) decode(resp *http.Response, dst interface{}) {
	defer resp.Body.Close()
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(dst))
}

func (s *RoutesTestSuite) login(uid string) string {
	resp := s.request("POST", "/api/v1/public/sessions", "", map[string]string{"uid": uid})
	s.Require().Equal(201, resp.StatusCode)

	var session struct {
		Token string `json:"token"`
	}
	s.decode(resp, &session)
	s.Require().NotEmpty(session.Token)

	return session.Token
}

func (s *RoutesTestSuite) TestHealth() {
	resp := s.request("GET", "/health", "", nil)
	s.Equal(200, resp.StatusCode)

	resp = s.request("GET", "/api/v1/public/timestamp", "", nil)
	s.Equal(200, resp.StatusCode)
}

func (s *RoutesTestSuite) TestListUsers() {
	var users []map[string]interface{}

	resp := s.request("GET", "/api/v1/public/users", "", nil)
	s.Equal(200, resp.StatusCode)
	s.decode(resp, &users)
	s.Len(users, 7)

	resp = s.request("GET", "/api/v1/public/users?q=lisi", "", nil)
	s.decode(resp, &users)
	s.Require().Len(users, 1)
	s.Equal("user2", users[0]["uid"])
}

func (s *RoutesTestSuite) TestLoginUnknownUser() {
	resp := s.request("POST", "/api/v1/public/sessions", "", map[string]string{"uid": "nobody"})
	s.Equal(404, resp.StatusCode)

	resp = s.request("POST", "/api/v1/public/sessions", "", map[string]string{})
	s.Equal(422, resp.StatusCode)
}

func (s *RoutesTestSuite) TestAccountRequiresSession() {
	for _, token := range []string{"", "garbage"} {
		resp := s.request("GET", "/api/v1/account/stats", token, nil)
		s.Equal(401, resp.StatusCode)

		var errs struct {
			Errors []string `json:"errors"`
		}
		s.decode(resp, &errs)
		s.Equal([]string{"authz.invalid_session"}, errs.Errors)
	}
}

func (s *RoutesTestSuite) TestStats() {
	token := s.login("user1")

	var stats map[string]interface{}
	resp := s.request("GET", "/api/v1/account/stats", token, nil)
	s.Equal(200, resp.StatusCode)
	s.decode(resp, &stats)

	s.Equal("3000", stats["total_trade_amount"])
	s.Equal("16.6", stats["total_commission"])
	s.Equal(float64(3), stats["invite_count"])
	s.Equal("http://localhost:3000/register?invite=INV001", stats["invite_link"])
}

func (s *RoutesTestSuite) TestSignOut() {
	token := s.login("user1")

	resp := s.request("DELETE", "/api/v1/account/sessions", token, nil)
	s.Equal(204, resp.StatusCode)

	resp = s.request("GET", "/api/v1/account/me", token, nil)
	s.Equal(401, resp.StatusCode)
}

func (s *RoutesTestSuite) TestCommissionsPagination() {
	token := s.login("user1")

	var commissions []map[string]interface{}
	resp := s.request("GET", "/api/v1/account/commissions?limit=4&page=2", token, nil)
	s.Equal(200, resp.StatusCode)
	s.Equal("2", resp.Header.Get("page"))
	s.Equal("2", resp.Header.Get("per-page"))
	s.decode(resp, &commissions)

	s.Require().Len(commissions, 2)
	s.Equal("comm2", commissions[0]["id"])
	s.Equal("comm1", commissions[1]["id"])

	resp = s.request("GET", "/api/v1/account/commissions?limit=-1", token, nil)
	s.Equal(422, resp.StatusCode)
}

func (s *RoutesTestSuite) TestTradesFilters() {
	token := s.login("user1")

	var trades []map[string]interface{}
	resp := s.request("GET", "/api/v1/account/trades?order_by=asc", token, nil)
	s.Equal(200, resp.StatusCode)
	s.decode(resp, &trades)
	s.Require().Len(trades, 2)
	s.Equal("trade1", trades[0]["id"])

	resp = s.request("GET", "/api/v1/account/trades?type=sell", token, nil)
	s.decode(resp, &trades)
	s.Require().Len(trades, 1)
	s.Equal("卖出", trades[0]["type_text"])

	resp = s.request("GET", "/api/v1/account/trades?type=hold", token, nil)
	s.Equal(422, resp.StatusCode)

	resp = s.request("GET", "/api/v1/account/trades?limit=4611686018427387904&page=3", token, nil)
	s.Equal(200, resp.StatusCode)
	s.decode(resp, &trades)
	s.Empty(trades)
}

func (s *RoutesTestSuite) TestInvitesAndInvitees() {
	token := s.login("user1")

	var invitees []map[string]interface{}
	resp := s.request("GET", "/api/v1/account/invitees", token, nil)
	s.decode(resp, &invitees)
	s.Require().Len(invitees, 3)
	s.Equal("8.6", invitees[2]["commission"])

	var invites []map[string]interface{}
	resp = s.request("GET", "/api/v1/account/invites", token, nil)
	s.decode(resp, &invites)
	s.Require().Len(invites, 3)
	s.Equal("invite4", invites[0]["id"])
	s.Equal("活跃", invites[0]["status_text"])

	resp = s.request("GET", "/api/v1/account/invite/qrcode", token, nil)
	s.Equal(200, resp.StatusCode)
	s.Equal("image/png", resp.Header.Get("Content-Type"))
}

func (s *RoutesTestSuite) TestReleaseCommissions() {
	token := s.login("user1")

	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Unix()
	to := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC).Unix()

	var releases []map[string]interface{}
	resp := s.request("GET", "/api/v1/account/release_commissions?time_from="+strconv.FormatInt(from, 10)+"&time_to="+strconv.FormatInt(to, 10), token, nil)
	s.Equal(200, resp.StatusCode)
	s.decode(resp, &releases)
	s.Len(releases, 9)

	resp = s.request("GET", "/api/v1/account/release_commissions?time_from="+strconv.FormatInt(to, 10)+"&time_to="+strconv.FormatInt(from, 10), token, nil)
	s.Equal(422, resp.StatusCode)
}

func (s *RoutesTestSuite) TestCSVReport() {
	token := s.login("user2")

	resp := s.request("GET", "/api/v1/account/reports/csv", token, nil)
	s.Equal(200, resp.StatusCode)
	s.Contains(resp.Header.Get("Content-Disposition"), "attachment")
	s.Contains(resp.Header.Get("Content-Type"), "text/csv")

	body, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	s.True(strings.HasPrefix(string(body), "返佣统计报表\n\n用户信息\n"))

	resp = s.request("GET", "/api/v1/account/reports/xlsx", token, nil)
	s.Equal(200, resp.StatusCode)
}

func (s *RoutesTestSuite) TestRegister() {
	var prefill map[string]interface{}
	resp := s.request("GET", "/api/v1/public/register?invite=INV002", "", nil)
	s.Equal(200, resp.StatusCode)
	s.decode(resp, &prefill)
	s.Equal("INV002", prefill["invite_code"])
	s.NotNil(prefill["inviter"])

	resp = s.request("GET", "/api/v1/public/invites/INV999", "", nil)
	s.Equal(404, resp.StatusCode)

	resp = s.request("POST", "/api/v1/public/users", "", map[string]string{
		"username": "新人", "email": "lisi@example.com", "invite_code": "INV002",
	})
	s.Equal(422, resp.StatusCode)
	var failure struct {
		Errors  []string `json:"errors"`
		Message string   `json:"message"`
	}
	s.decode(resp, &failure)
	s.Equal([]string{"register.email_taken"}, failure.Errors)
	s.Equal("该邮箱已被注册", failure.Message)

	var user map[string]interface{}
	resp = s.request("POST", "/api/v1/public/users", "", map[string]string{
		"username": "新人", "email": "xinren@example.com", "invite_code": "INV002",
	})
	s.Equal(201, resp.StatusCode)
	s.decode(resp, &user)
	s.Equal("user2", user["inviter_uid"])

	s.Require().Len(s.events.subjects, 1)
	s.Equal("rebate.user.registered", s.events.subjects[0])

	token := s.login("user2")
	var stats map[string]interface{}
	resp = s.request("GET", "/api/v1/account/stats", token, nil)
	s.decode(resp, &stats)
	s.Equal(float64(2), stats["invite_count"])

	token = s.login(user["uid"].(string))
	resp = s.request("GET", "/api/v1/account/me", token, nil)
	s.Equal(200, resp.StatusCode)
}

func (s *RoutesTestSuite) TestAdmin() {
	resp := s.request("GET", "/api/v1/admin/audit", s.login("user1"), nil)
	s.Equal(403, resp.StatusCode)

	token := s.login("user6")

	var report struct {
		Checked       int           `json:"checked"`
		Discrepancies []interface{} `json:"discrepancies"`
	}
	resp = s.request("GET", "/api/v1/admin/audit", token, nil)
	s.Equal(200, resp.StatusCode)
	s.decode(resp, &report)
	s.Equal(8, report.Checked)
	s.Empty(report.Discrepancies)

	var trades []map[string]interface{}
	resp = s.request("GET", "/api/v1/admin/trades?symbol=BTC/USDT", token, nil)
	s.Equal(200, resp.StatusCode)
	s.decode(resp, &trades)
	s.Require().Len(trades, 4)
	s.Equal("trade8", trades[0]["id"])
	s.Equal("5", trades[0]["commission"])
	s.Equal("0", trades[3]["commission"])
}

func (s *RoutesTestSuite) TestMetrics() {
	s.login("user1")

	resp := s.request("GET", "/metrics", "", nil)
	s.Equal(200, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	s.Contains(string(body), `rebate_logins_total{status="success"} 1`)
}

func TestRoutesTestSuite(t *testing.T) {
	suite.Run(t, new(RoutesTestSuite))
}
