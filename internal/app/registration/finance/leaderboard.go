package finance

import (
	"sort"

	"github.com/light-bringer/classfin-service/internal/app/registration/domain"
)

// Impact tags assigned to promotions on the leaderboard.
const (
	TagHighVolume      = "High Volume"
	TagHighMargin      = "High Margin"
	TagUnderperforming = "Underperforming"
	TagStandard        = "Standard"
)

const (
	highVolumeSeats      = 20
	highMarginPct        = 70.0
	lowMarginPct         = 40.0
	underperformingBelow = 10000
)

// PromotionRow is the performance of one promotion over a set of registrations.
type PromotionRow struct {
	PromotionID  string              `json:"promotion_id"`
	Name         string              `json:"name"`
	Kind         domain.DiscountKind `json:"kind"`
	Label        string              `json:"label"`
	Active       bool                `json:"active"`
	Lines        int                 `json:"lines"`
	Seats        int                 `json:"seats"`
	Revenue      domain.Money        `json:"revenue"`
	Gross        domain.Money        `json:"gross"`
	DiscountCost domain.Money        `json:"discount_cost"`
	MarginPct    float64             `json:"margin_pct"`
	DiscountPct  float64             `json:"discount_pct"`
	ImpactTag    string              `json:"impact_tag"`
}

// Leaderboard reports each promotion's revenue and discount cost across the
// lines it is attached to, highest revenue first.
func (a *Aggregator) Leaderboard(promotions []*domain.Promotion, lines []*domain.RegistrationLine) []PromotionRow {
	rows := make([]PromotionRow, 0, len(promotions))

	for _, promo := range promotions {
		if promo == nil {
			continue
		}
		row := PromotionRow{
			PromotionID: promo.ID(),
			Name:        promo.Name(),
			Kind:        promo.Kind(),
			Label:       promo.Label(),
			Active:      promo.IsActive(),
		}

		for _, line := range lines {
			if line == nil || !line.HasPromotion(promo.ID()) {
				continue
			}
			seats := int64(line.Seats())
			base := line.BaseUnitPrice().ClampZero()

			row.Lines++
			row.Seats += line.Seats()
			row.Revenue = row.Revenue.Add(a.calc.Quote(line).Totals.TotalInclVAT)
			row.Gross = row.Gross.Add(base.MultiplyByInt(seats))
			row.DiscountCost = row.DiscountCost.Add(promo.CalculateDiscount(base).MultiplyByInt(seats))
		}

		row.Revenue = row.Revenue.Round()
		row.Gross = row.Gross.Round()
		row.DiscountCost = row.DiscountCost.Round()
		row.MarginPct = domain.Ratio(row.Revenue.Subtract(row.DiscountCost), row.Revenue, 1)
		row.DiscountPct = domain.Ratio(row.DiscountCost, row.Gross, 0)
		row.ImpactTag = impactTag(row)

		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if c := rows[i].Revenue.Cmp(rows[j].Revenue); c != 0 {
			return c > 0
		}
		return rows[i].Name < rows[j].Name
	})
	return rows
}

func impactTag(row PromotionRow) string {
	switch {
	case row.Revenue.IsZero():
		return TagUnderperforming
	case row.Seats >= highVolumeSeats:
		return TagHighVolume
	case row.MarginPct >= highMarginPct:
		return TagHighMargin
	case row.MarginPct < lowMarginPct && row.Revenue.LessThan(domain.MoneyFromInt(underperformingBelow)):
		return TagUnderperforming
	}
	return TagStandard
}
