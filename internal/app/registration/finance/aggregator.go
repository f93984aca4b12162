// Package finance rolls priced registration lines up into revenue, VAT and
// collection figures, overall or per group.
package finance

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/light-bringer/classfin-service/internal/app/registration/domain"
)

// ErrUnknownDimension is returned by ParseDimension for unsupported group keys.
var ErrUnknownDimension = errors.New("unknown grouping dimension")

// Dimension selects how lines are grouped.
type Dimension string

const (
	ByClass           Dimension = "class"
	ByCompany         Dimension = "company"
	ByChannel         Dimension = "channel"
	ByParticipantType Dimension = "participant_type"
	ByMonth           Dimension = "month"
)

// Dimensions lists every supported dimension.
var Dimensions = []Dimension{ByClass, ByCompany, ByChannel, ByParticipantType, ByMonth}

// ParseDimension parses a dimension name.
func ParseDimension(s string) (Dimension, error) {
	d := Dimension(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Dimensions {
		if d == known {
			return d, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDimension, s)
}

// Rollup is the financial summary of a set of registration lines.
type Rollup struct {
	Lines              int          `json:"lines"`
	Seats              int          `json:"seats"`
	GrossSales         domain.Money `json:"gross_sales"`
	TotalDiscounts     domain.Money `json:"total_discounts"`
	NetBeforeVAT       domain.Money `json:"net_before_vat"`
	VATAmount          domain.Money `json:"vat_amount"`
	TotalInclVAT       domain.Money `json:"total_incl_vat"`
	CashReceived       domain.Money `json:"cash_received"`
	Outstanding        domain.Money `json:"outstanding"`
	CollectionRatePct  float64      `json:"collection_rate_pct"`
	DiscountRatePct    float64      `json:"discount_rate_pct"`
	AvgDiscountPerSeat domain.Money `json:"avg_discount_per_seat"`
	AvgRevenuePerSeat  domain.Money `json:"avg_revenue_per_seat"`
}

// add folds one priced line into the sums. Derived figures are set by finish.
func (r *Rollup) add(line *domain.RegistrationLine, q domain.LineQuote) {
	r.Lines++
	r.Seats += q.Seats
	r.GrossSales = r.GrossSales.Add(q.GrossSales)
	r.TotalDiscounts = r.TotalDiscounts.Add(q.Totals.Discount)
	r.NetBeforeVAT = r.NetBeforeVAT.Add(q.Totals.PriceBeforeVAT)
	r.VATAmount = r.VATAmount.Add(q.Totals.VAT)
	r.TotalInclVAT = r.TotalInclVAT.Add(q.Totals.TotalInclVAT)

	switch line.PaymentStatus() {
	case domain.PaymentPaid:
		r.CashReceived = r.CashReceived.Add(q.Totals.TotalInclVAT)
	case domain.PaymentPending:
		r.Outstanding = r.Outstanding.Add(q.Totals.TotalInclVAT)
	}
}

func (r Rollup) finish() Rollup {
	r.GrossSales = r.GrossSales.Round()
	r.TotalDiscounts = r.TotalDiscounts.Round()
	r.NetBeforeVAT = r.NetBeforeVAT.Round()
	r.VATAmount = r.VATAmount.Round()
	r.TotalInclVAT = r.TotalInclVAT.Round()
	r.CashReceived = r.CashReceived.Round()
	r.Outstanding = r.Outstanding.Round()

	r.CollectionRatePct = domain.Ratio(r.CashReceived, r.TotalInclVAT, 1)
	r.DiscountRatePct = domain.Ratio(r.TotalDiscounts, r.GrossSales, 1)
	r.AvgDiscountPerSeat = perSeat(r.TotalDiscounts, r.Seats)
	r.AvgRevenuePerSeat = perSeat(r.NetBeforeVAT, r.Seats)
	return r
}

// Merge combines two rollups as if their lines had been aggregated together.
func (r Rollup) Merge(other Rollup) Rollup {
	merged := Rollup{
		Lines:          r.Lines + other.Lines,
		Seats:          r.Seats + other.Seats,
		GrossSales:     r.GrossSales.Add(other.GrossSales),
		TotalDiscounts: r.TotalDiscounts.Add(other.TotalDiscounts),
		NetBeforeVAT:   r.NetBeforeVAT.Add(other.NetBeforeVAT),
		VATAmount:      r.VATAmount.Add(other.VATAmount),
		TotalInclVAT:   r.TotalInclVAT.Add(other.TotalInclVAT),
		CashReceived:   r.CashReceived.Add(other.CashReceived),
		Outstanding:    r.Outstanding.Add(other.Outstanding),
	}
	return merged.finish()
}

func perSeat(amount domain.Money, seats int) domain.Money {
	if seats <= 0 {
		return domain.Money{}
	}
	avg, err := amount.DivideBy(decimal.NewFromInt(int64(seats)))
	if err != nil {
		return domain.Money{}
	}
	return avg.Round()
}

// Group is a rollup keyed by one dimension value.
type Group struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Rollup
}

// Aggregator prices and sums registration lines. It holds no mutable state and
// is safe for concurrent use.
type Aggregator struct {
	calc *domain.PricingCalculator
}

// NewAggregator creates an Aggregator that prices lines with calc.
func NewAggregator(calc *domain.PricingCalculator) *Aggregator {
	return &Aggregator{calc: calc}
}

// Aggregate sums all lines. An empty input yields an all-zero rollup.
func (a *Aggregator) Aggregate(lines []*domain.RegistrationLine) Rollup {
	var r Rollup
	for _, line := range lines {
		if line == nil {
			continue
		}
		r.add(line, a.calc.Quote(line))
	}
	return r.finish()
}

// GroupBy returns one rollup per value of dim.
// Class and company groups are sorted by net revenue, channel and participant
// type groups by total revenue, both descending; month groups run oldest first.
func (a *Aggregator) GroupBy(lines []*domain.RegistrationLine, dim Dimension) ([]Group, error) {
	keyOf, err := keyFunc(dim)
	if err != nil {
		return nil, err
	}

	index := make(map[string]int)
	groups := make([]Group, 0)
	for _, line := range lines {
		if line == nil {
			continue
		}
		key, label := keyOf(line)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, Group{Key: key, Label: label})
		}
		groups[i].Rollup.add(line, a.calc.Quote(line))
	}

	for i := range groups {
		groups[i].Rollup = groups[i].Rollup.finish()
	}

	sortGroups(groups, dim)
	return groups, nil
}

func keyFunc(dim Dimension) (func(*domain.RegistrationLine) (key, label string), error) {
	switch dim {
	case ByClass:
		return func(l *domain.RegistrationLine) (string, string) {
			c := l.Class()
			if c.Title == "" {
				return c.ID, c.ID
			}
			return c.ID, c.Title
		}, nil
	case ByCompany:
		return func(l *domain.RegistrationLine) (string, string) {
			k := l.CompanyKey()
			return k, k
		}, nil
	case ByChannel:
		return func(l *domain.RegistrationLine) (string, string) {
			k := l.ChannelKey()
			return k, k
		}, nil
	case ByParticipantType:
		return func(l *domain.RegistrationLine) (string, string) {
			k := string(l.ParticipantType())
			return k, k
		}, nil
	case ByMonth:
		return func(l *domain.RegistrationLine) (string, string) {
			d := l.Class().Date
			if d.IsZero() {
				return domain.NoGroup, domain.NoGroup
			}
			return d.Format("2006-01"), d.Format("Jan 2006")
		}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownDimension, dim)
}

func sortGroups(groups []Group, dim Dimension) {
	var metric func(Group) domain.Money
	switch dim {
	case ByClass, ByCompany:
		metric = func(g Group) domain.Money { return g.NetBeforeVAT }
	case ByChannel, ByParticipantType:
		metric = func(g Group) domain.Money { return g.TotalInclVAT }
	default:
		sort.SliceStable(groups, func(i, j int) bool { return groups[i].Key < groups[j].Key })
		return
	}

	sort.SliceStable(groups, func(i, j int) bool {
		if c := metric(groups[i]).Cmp(metric(groups[j])); c != 0 {
			return c > 0
		}
		return groups[i].Key < groups[j].Key
	})
}
