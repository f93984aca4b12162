package promotion_leaderboard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/classfin-service/internal/app/registration/contracts"
	"github.com/light-bringer/classfin-service/internal/app/registration/domain"
	"github.com/light-bringer/classfin-service/internal/app/registration/finance"
	"github.com/light-bringer/classfin-service/tests/testutil"
)

func newQuery(source contracts.LineSource) *Query {
	return NewQuery(source, finance.NewAggregator(domain.NewPricingCalculator()), testutil.NewMockClock())
}

func TestQuery_Execute(t *testing.T) {
	q := newQuery(testutil.LoadSample(t))
	ctx := context.Background()

	t.Run("active promotions only", func(t *testing.T) {
		rows, err := q.Execute(ctx, &Request{})
		require.NoError(t, err)
		require.Len(t, rows, 2)

		assert.Equal(t, "team", rows[0].PromotionID)
		assert.Equal(t, "Attend 4 Pay 3", rows[0].Label)
		assert.Equal(t, "6420.00", rows[0].Revenue.String())
		assert.Equal(t, finance.TagStandard, rows[0].ImpactTag)

		assert.Equal(t, "early", rows[1].PromotionID)
		assert.Equal(t, "10% off", rows[1].Label)
		assert.Equal(t, finance.TagHighMargin, rows[1].ImpactTag)
	})

	t.Run("include inactive", func(t *testing.T) {
		rows, err := q.Execute(ctx, &Request{IncludeInactive: true})
		require.NoError(t, err)
		require.Len(t, rows, 3)
		assert.Equal(t, "old", rows[2].PromotionID)
		assert.False(t, rows[2].Active)
		assert.Equal(t, finance.TagUnderperforming, rows[2].ImpactTag)
	})

	t.Run("filtered lines", func(t *testing.T) {
		rows, err := q.Execute(ctx, &Request{Scope: contracts.Scope{Segment: "individual"}})
		require.NoError(t, err)
		require.Len(t, rows, 2)
		for _, row := range rows {
			assert.Equal(t, 0, row.Lines, row.PromotionID)
		}
		assert.Equal(t, "Early bird", rows[0].Name)
	})
}

func TestQuery_ExecuteErrors(t *testing.T) {
	_, err := newQuery(testutil.FailingSource{}).Execute(context.Background(), &Request{})
	assert.ErrorIs(t, err, testutil.ErrSourceDown)
}
