package report_service

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/skip2/go-qrcode"
	"github.com/xuri/excelize/v2"

	"github.com/zsmartex/rebate/models"
	"github.com/zsmartex/rebate/services/referral_service"
)

const ReportTitle = "返佣统计报表"

var (
	summaryHeader    = []string{"用户名", "邮箱", "邀请码", "总交易额", "总手续费", "邀请人数", "总返佣"}
	inviteeHeader    = []string{"用户名", "邮箱", "注册时间", "交易次数", "总交易额", "总手续费", "产生返佣"}
	commissionHeader = []string{"时间", "来源用户", "交易对", "交易类型", "手续费", "返佣金额"}
	tradeHeader      = []string{"时间", "交易对", "类型", "交易额", "手续费"}
)

type section struct {
	title  string
	sheet  string
	header []string
	rows   [][]string

	// indexes of the columns written as numbers in workbooks
	numeric []int
}

type ReportService struct {
	referral *referral_service.ReferralService
}

func NewReportService(referral *referral_service.ReferralService) *ReportService {
	return &ReportService{referral: referral}
}

// sections builds the report of uid. The summary always comes first; the
// other sections may have no rows. ok is false when the user is unknown.
func (s *ReportService) sections(uid string) (sections []section, ok bool) {
	user, err := s.referral.GetUser(uid)
	if err != nil {
		return nil, false
	}

	stats := s.referral.CalculateUserStats(uid)
	summary := section{
		title:   "用户信息",
		sheet:   "用户信息",
		header:  summaryHeader,
		numeric: []int{3, 4, 5, 6},
		rows: [][]string{{
			user.Username,
			user.Email,
			user.InviteCode,
			stats.TotalTradeAmount.String(),
			stats.TotalFee.String(),
			strconv.Itoa(stats.InviteCount),
			stats.TotalCommission.String(),
		}},
	}

	invitees := section{title: "邀请用户详情", sheet: "邀请用户", header: inviteeHeader, numeric: []int{3, 4, 5, 6}}
	for _, invited_user := range s.referral.GetInvitedUsersWithStats(uid) {
		invitees.rows = append(invitees.rows, []string{
			invited_user.Username,
			invited_user.Email,
			s.referral.FormatTimestamp(invited_user.CreatedAt),
			strconv.Itoa(invited_user.TradeCount),
			invited_user.TotalTradeAmount.String(),
			invited_user.TotalFee.String(),
			invited_user.Commission.String(),
		})
	}

	commissions := section{title: "返佣历史记录", sheet: "返佣历史", header: commissionHeader, numeric: []int{4, 5}}
	for _, record := range s.referral.GetCommissionHistory(uid) {
		if record.Trade == nil || record.FromUser == nil {
			continue
		}

		commissions.rows = append(commissions.rows, []string{
			record.FormattedTimestamp,
			record.FromUser.Username,
			record.Trade.Symbol,
			record.Trade.TypeLabel(),
			record.Fee.String(),
			record.Amount.String(),
		})
	}

	trades := section{title: "交易历史记录", sheet: "交易历史", header: tradeHeader, numeric: []int{3, 4}}
	for _, trade := range s.referral.GetTradeHistory(uid) {
		trades.rows = append(trades.rows, []string{
			trade.FormattedTimestamp,
			trade.Symbol,
			trade.TypeText,
			trade.Amount.String(),
			trade.Fee.String(),
		})
	}

	return []section{summary, invitees, commissions, trades}, true
}

// GenerateUserStatsCSV renders the report of uid as CSV. Sections without
// rows are left out, except the summary. An unknown user yields "".
func (s *ReportService) GenerateUserStatsCSV(uid string) (string, error) {
	sections, ok := s.sections(uid)
	if !ok {
		return "", nil
	}

	var buf bytes.Buffer
	buf.WriteString(ReportTitle + "\n\n")

	w := csv.NewWriter(&buf)
	for i, sec := range sections {
		if i > 0 && len(sec.rows) == 0 {
			continue
		}

		buf.WriteString(sec.title + "\n")
		if err := w.Write(sec.header); err != nil {
			return "", err
		}
		if err := w.WriteAll(sec.rows); err != nil {
			return "", err
		}

		// trade history closes the report without a separator
		if i < len(sections)-1 {
			buf.WriteString("\n")
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// GenerateUserStatsXLSX renders the report of uid as a workbook with one
// sheet per section. Every sheet is present, even without rows.
func (s *ReportService) GenerateUserStatsXLSX(uid string) ([]byte, error) {
	sections, ok := s.sections(uid)
	if !ok {
		return nil, nil
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, sec := range sections {
		index, err := f.NewSheet(sec.sheet)
		if err != nil {
			return nil, err
		}
		if i == 0 {
			f.SetActiveSheet(index)
		}

		if err := f.SetSheetRow(sec.sheet, "A1", &sec.header); err != nil {
			return nil, err
		}

		for r, row := range sec.rows {
			cell, err := excelize.CoordinatesToCellName(1, r+2)
			if err != nil {
				return nil, err
			}

			values := cellValues(row, sec.numeric)
			if err := f.SetSheetRow(sec.sheet, cell, &values); err != nil {
				return nil, err
			}
		}
	}

	f.DeleteSheet("Sheet1")

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// cellValues stores the numeric columns of row as numbers so spreadsheets
// can sum them. Other columns stay text even when they look like numbers.
func cellValues(row []string, numeric []int) []interface{} {
	values := make([]interface{}, len(row))
	for i, value := range row {
		values[i] = value
	}

	for _, i := range numeric {
		if i >= len(row) {
			continue
		}
		if number, err := decimal.NewFromString(row[i]); err == nil {
			values[i] = number.InexactFloat64()
		}
	}

	return values
}

// ReportFilename is the download name of a report generated at now.
func ReportFilename(user *models.User, ext string, now time.Time) string {
	return fmt.Sprintf("返佣统计_%s_%s.%s", user.Username, now.Format(referral_service.DateLayout), ext)
}

// InviteQRCode encodes the invite link of user as a PNG image.
func (s *ReportService) InviteQRCode(user *models.User) ([]byte, error) {
	return qrcode.Encode(s.referral.GenerateInviteLink(user.InviteCode), qrcode.Medium, 256)
}

func (s *ReportService) User(uid string) (*models.User, error) {
	return s.referral.GetUser(uid)
}

func (s *ReportService) Stats(uid string) models.UserStats {
	return s.referral.CalculateUserStats(uid)
}
