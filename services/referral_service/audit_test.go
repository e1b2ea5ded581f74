package referral_service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zsmartex/rebate/fixtures"
	"github.com/zsmartex/rebate/store"
)

func TestAuditCommissionsClean(t *testing.T) {
	s := newService(t, Config{})

	report := s.AuditCommissions()
	assert.Equal(t, 8, report.Checked)
	assert.True(t, report.Clean(), "%+v", report.Discrepancies)
}

func TestAuditCommissionsReportsDiscrepancies(t *testing.T) {
	dataset, err := fixtures.Default()
	require.NoError(t, err)

	// comm1: wrong amount; comm5: paid to the inviter's inviter; comm8
	// dropped so trade11 goes unpaid.
	dataset.CommissionRecords[0].Amount = dec("1.5")
	dataset.CommissionRecords[4].ToUID = "user1"
	dataset.CommissionRecords = dataset.CommissionRecords[:7]

	s := NewReferralService(store.NewMemoryStore(dataset), Config{})
	report := s.AuditCommissions()

	assert.Equal(t, 7, report.Checked)
	require.Len(t, report.Discrepancies, 3)

	assert.Equal(t, "comm1", report.Discrepancies[0].CommissionID)
	assert.Equal(t, ReasonAmountMismatch, report.Discrepancies[0].Reason)
	assert.Equal(t, "1", report.Discrepancies[0].Expected)
	assert.Equal(t, "1.5", report.Discrepancies[0].Actual)

	assert.Equal(t, "comm5", report.Discrepancies[1].CommissionID)
	assert.Equal(t, ReasonNotDirectInviter, report.Discrepancies[1].Reason)
	assert.Equal(t, "user2", report.Discrepancies[1].Expected)

	assert.Equal(t, "trade11", report.Discrepancies[2].TradeID)
	assert.Equal(t, ReasonMissingCommission, report.Discrepancies[2].Reason)
	assert.Equal(t, "1.4", report.Discrepancies[2].Expected)
}
