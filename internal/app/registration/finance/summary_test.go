package finance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/classfin-service/internal/app/registration/domain"
)

func TestAggregator_Summarize(t *testing.T) {
	agg := NewAggregator(domain.NewPricingCalculator())
	f := newFixture(t)

	s := agg.Summarize(f.lines(), day(2025, 6, 15))

	assert.Equal(t, day(2025, 6, 15), s.AsOf)
	assert.Equal(t, "9416.00", s.Totals.TotalInclVAT.String())
	assert.Equal(t, 6, s.SeatsCorporate)
	assert.Equal(t, 1, s.IndividualCount)
	assert.Equal(t, 2, s.PendingInvoices)

	assert.Equal(t, "6420.00", s.OverdueAmount.String())
	assert.Equal(t, 1, s.OverdueCount)
	assert.Equal(t, 14, s.MaxOverdueDays)

	assert.Equal(t, DocumentGaps{MissingQuotation: 1, MissingInvoice: 2, MissingReceipt: 1}, s.Documents)

	require.Len(t, s.CorporateLedger, 2)
	beta := s.CorporateLedger[0]
	assert.Equal(t, "Beta Ltd", beta.Company)
	assert.Equal(t, "6000.00", beta.TotalBilledNet.String())
	assert.Equal(t, "6420.00", beta.Outstanding.String())
	assert.True(t, beta.CashReceived.IsZero())
	assert.Equal(t, domain.PaymentPending, beta.Status)

	acme := s.CorporateLedger[1]
	assert.Equal(t, "Acme", acme.Company)
	assert.Equal(t, "1926.00", acme.CashReceived.String())
	assert.Equal(t, domain.PaymentPaid, acme.Status)
	assert.Equal(t, 2, acme.Seats)
}

func TestAggregator_SummarizeAfterWorkflow(t *testing.T) {
	agg := NewAggregator(domain.NewPricingCalculator())
	f := newFixture(t)

	require.NoError(t, f.overdueCorp.MarkPaid(day(2025, 6, 14)))
	require.NoError(t, f.overdueCorp.IssueDocument(domain.DocumentReceipted))
	require.NoError(t, f.paidCorp.IssueDocument(domain.DocumentReceipted))

	s := agg.Summarize(f.lines(), day(2025, 6, 15))

	assert.Equal(t, 0, s.OverdueCount)
	assert.Equal(t, 0, s.MaxOverdueDays)
	assert.Equal(t, DocumentGaps{MissingQuotation: 1, MissingInvoice: 1}, s.Documents)
	for _, row := range s.CorporateLedger {
		assert.Equal(t, domain.PaymentPaid, row.Status, row.Company)
	}
	// 8346 / 9416
	assert.Equal(t, 88.6, s.Totals.CollectionRatePct)
}

func TestAggregator_SummarizeEmpty(t *testing.T) {
	s := NewAggregator(domain.NewPricingCalculator()).Summarize(nil, day(2025, 6, 15))

	assert.Empty(t, s.CorporateLedger)
	assert.True(t, s.OverdueAmount.IsZero())
	assert.Equal(t, DocumentGaps{}, s.Documents)
}
