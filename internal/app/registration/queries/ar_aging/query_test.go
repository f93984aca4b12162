package ar_aging

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/classfin-service/internal/app/registration/aging"
	"github.com/light-bringer/classfin-service/internal/app/registration/contracts"
	"github.com/light-bringer/classfin-service/internal/app/registration/domain"
	"github.com/light-bringer/classfin-service/tests/testutil"
)

func newQuery(source contracts.LineSource) *Query {
	return NewQuery(source, aging.NewBucketer(domain.NewPricingCalculator()), testutil.NewMockClock())
}

func TestQuery_Execute(t *testing.T) {
	report, err := newQuery(testutil.LoadSample(t)).Execute(context.Background(), &Request{})
	require.NoError(t, err)

	assert.Equal(t, "7490.00", report.Outstanding.String())
	assert.Equal(t, "6420.00", report.OverdueAmount.String())
	assert.Equal(t, 1, report.OverdueCount)

	notDue, ok := report.Bucket(aging.NotDueLabel)
	require.True(t, ok)
	assert.Equal(t, 1, notDue.Count)
	assert.Equal(t, "1070.00", notDue.Amount.String())

	b, ok := report.Bucket("8–30")
	require.True(t, ok)
	assert.Equal(t, 1, b.Count)
	require.Len(t, b.TopDebtors, 1)
	assert.Equal(t, "Beta Ltd", b.TopDebtors[0].Name)
	assert.Equal(t, 86.0, b.SharePct)
}

func TestQuery_ExecuteAsOf(t *testing.T) {
	asOf := time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC)
	report, err := newQuery(testutil.LoadSample(t)).Execute(context.Background(), &Request{AsOf: &asOf})
	require.NoError(t, err)

	b, ok := report.Bucket("31–60")
	require.True(t, ok)
	assert.Equal(t, 1, b.Count)
	assert.Equal(t, 44, report.MaxOverdueDays)
}

func TestQuery_ExecuteSegment(t *testing.T) {
	req := &Request{Scope: contracts.Scope{Segment: "individual"}}
	report, err := newQuery(testutil.LoadSample(t)).Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "1070.00", report.Outstanding.String())
	assert.True(t, report.OverdueAmount.IsZero())
}

func TestQuery_ExecuteErrors(t *testing.T) {
	ctx := context.Background()

	_, err := newQuery(testutil.LoadSample(t)).Execute(ctx, &Request{Scope: contracts.Scope{Preset: "fortnight"}})
	assert.Error(t, err)

	_, err = newQuery(testutil.FailingSource{}).Execute(ctx, &Request{})
	assert.ErrorIs(t, err, testutil.ErrSourceDown)
}
