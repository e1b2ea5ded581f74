package referral_service

import (
	"github.com/zsmartex/rebate/models"
)

const (
	ReasonMissingTrade      = "missing_trade"
	ReasonTradeOwner        = "trade_owner_mismatch"
	ReasonFeeMismatch       = "fee_mismatch"
	ReasonAmountMismatch    = "amount_mismatch"
	ReasonMissingSource     = "missing_source_user"
	ReasonNotDirectInviter  = "not_direct_inviter"
	ReasonMissingCommission = "missing_commission"
)

type Discrepancy struct {
	CommissionID string `json:"commission_id,omitempty"`
	TradeID      string `json:"trade_id"`
	Reason       string `json:"reason"`
	Expected     string `json:"expected,omitempty"`
	Actual       string `json:"actual,omitempty"`
}

type AuditReport struct {
	Checked       int            `json:"checked"`
	Discrepancies []*Discrepancy `json:"discrepancies"`
}

func (r *AuditReport) Clean() bool {
	return len(r.Discrepancies) == 0
}

// AuditCommissions checks every commission record against its trade and
// the referral graph: the amount is 20% of the trade fee, the fee matches
// the trade, and the receiver is the direct inviter of the trader. Trades
// of invited users without a commission record are reported as well.
func (s *ReferralService) AuditCommissions() *AuditReport {
	report := &AuditReport{Discrepancies: make([]*Discrepancy, 0)}
	add := func(d *Discrepancy) {
		report.Discrepancies = append(report.Discrepancies, d)
	}

	commissioned := make(map[string]bool)
	for _, record := range s.repo.GetAllCommissionRecords() {
		report.Checked++
		commissioned[record.TradeID] = true

		trade, err := s.repo.GetTradeByID(record.TradeID)
		if err != nil {
			add(&Discrepancy{CommissionID: record.ID, TradeID: record.TradeID, Reason: ReasonMissingTrade})
			continue
		}

		if trade.UID != record.FromUID {
			add(&Discrepancy{CommissionID: record.ID, TradeID: trade.ID, Reason: ReasonTradeOwner, Expected: trade.UID, Actual: record.FromUID})
		}
		if !trade.Fee.Equal(record.Fee) {
			add(&Discrepancy{CommissionID: record.ID, TradeID: trade.ID, Reason: ReasonFeeMismatch, Expected: trade.Fee.String(), Actual: record.Fee.String()})
		}
		if expected := trade.Commission(); !expected.Equal(record.Amount) {
			add(&Discrepancy{CommissionID: record.ID, TradeID: trade.ID, Reason: ReasonAmountMismatch, Expected: expected.String(), Actual: record.Amount.String()})
		}

		from_user, err := s.repo.GetUserByID(record.FromUID)
		if err != nil {
			add(&Discrepancy{CommissionID: record.ID, TradeID: trade.ID, Reason: ReasonMissingSource, Actual: record.FromUID})
			continue
		}
		if !from_user.InvitedBy(record.ToUID) {
			add(&Discrepancy{CommissionID: record.ID, TradeID: trade.ID, Reason: ReasonNotDirectInviter, Expected: from_user.InviterUID.String, Actual: record.ToUID})
		}
	}

	for _, trade := range s.repo.GetAllTrades() {
		if commissioned[trade.ID] {
			continue
		}

		owner, err := s.repo.GetUserByID(trade.UID)
		if err != nil || !owner.HavingInviter() {
			continue
		}

		add(&Discrepancy{TradeID: trade.ID, Reason: ReasonMissingCommission, Expected: models.CommissionFor(trade.Fee).String()})
	}

	return report
}
