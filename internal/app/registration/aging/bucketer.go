// Package aging classifies outstanding registrations into accounts-receivable
// buckets by how many days they are past due.
package aging

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/light-bringer/classfin-service/internal/app/registration/domain"
	"github.com/light-bringer/classfin-service/internal/pkg/clock"
)

// NotDueLabel is the bucket for pending lines without a due date or not yet due.
const NotDueLabel = "Not due"

// UpcomingWindowDays is the look-ahead used for Report.Next7DaysDue.
const UpcomingWindowDays = 7

// DefaultTopDebtors is how many debtors each bucket lists.
const DefaultTopDebtors = 3

// ErrInvalidRanges is returned when ranges do not tile 1..∞ in ascending order.
var ErrInvalidRanges = errors.New("aging ranges must start at 1, be contiguous and end open")

// Range is an inclusive day range of an overdue bucket.
type Range struct {
	Label   string `json:"label"`
	MinDays int    `json:"min_days"`
	MaxDays int    `json:"max_days"`
}

func (r Range) contains(days int) bool {
	return days >= r.MinDays && days <= r.MaxDays
}

// DefaultRanges are the overdue buckets shown on the finance dashboards.
var DefaultRanges = []Range{
	{Label: "1–7", MinDays: 1, MaxDays: 7},
	{Label: "8–30", MinDays: 8, MaxDays: 30},
	{Label: "31–60", MinDays: 31, MaxDays: 60},
	{Label: "60+", MinDays: 61, MaxDays: math.MaxInt},
}

// Debtor is a buyer with an outstanding amount inside one bucket.
type Debtor struct {
	Name   string       `json:"name"`
	Amount domain.Money `json:"amount"`
}

// Bucket aggregates the pending lines that fall into one range.
type Bucket struct {
	Range
	Amount     domain.Money `json:"amount"`
	Count      int          `json:"count"`
	SharePct   float64      `json:"share_pct"`
	TopDebtors []Debtor     `json:"top_debtors"`
}

// Report is the aging result. Buckets[0] is always the "Not due" bucket.
type Report struct {
	AsOf           time.Time    `json:"as_of"`
	Buckets        []Bucket     `json:"buckets"`
	Outstanding    domain.Money `json:"outstanding"`
	OverdueAmount  domain.Money `json:"overdue_amount"`
	OverdueCount   int          `json:"overdue_count"`
	MaxOverdueDays int          `json:"max_overdue_days"`
	Next7DaysDue   domain.Money `json:"next_7_days_due"`
}

// Bucket returns the bucket with the given label.
func (r Report) Bucket(label string) (Bucket, bool) {
	for _, b := range r.Buckets {
		if b.Label == label {
			return b, true
		}
	}
	return Bucket{}, false
}

// Bucketer ages pending registrations. It holds no mutable state.
type Bucketer struct {
	calc       *domain.PricingCalculator
	ranges     []Range
	topDebtors int
}

// NewBucketer creates a Bucketer with DefaultRanges.
func NewBucketer(calc *domain.PricingCalculator) *Bucketer {
	return &Bucketer{
		calc:       calc,
		ranges:     DefaultRanges,
		topDebtors: DefaultTopDebtors,
	}
}

// NewBucketerWithRanges creates a Bucketer with custom overdue ranges.
func NewBucketerWithRanges(calc *domain.PricingCalculator, ranges []Range) (*Bucketer, error) {
	if err := validateRanges(ranges); err != nil {
		return nil, err
	}

	b := NewBucketer(calc)
	b.ranges = append([]Range(nil), ranges...)
	return b, nil
}

func validateRanges(ranges []Range) error {
	if len(ranges) == 0 {
		return ErrInvalidRanges
	}

	next := 1
	for i, r := range ranges {
		if r.Label == "" || r.MinDays != next || r.MaxDays < r.MinDays {
			return fmt.Errorf("%w: range %d (%q)", ErrInvalidRanges, i, r.Label)
		}
		if r.MaxDays == math.MaxInt {
			if i != len(ranges)-1 {
				return fmt.Errorf("%w: open range %q must be last", ErrInvalidRanges, r.Label)
			}
			return nil
		}
		next = r.MaxDays + 1
	}
	return fmt.Errorf("%w: last range must be open-ended", ErrInvalidRanges)
}

// Age buckets the pending lines as of the given day. Paid lines are ignored.
func (b *Bucketer) Age(lines []*domain.RegistrationLine, asOf time.Time) Report {
	today := clock.Date(asOf)
	horizon := today.AddDate(0, 0, UpcomingWindowDays)

	buckets := make([]Bucket, 0, len(b.ranges)+1)
	buckets = append(buckets, Bucket{Range: Range{Label: NotDueLabel}})
	for _, r := range b.ranges {
		buckets = append(buckets, Bucket{Range: r})
	}
	debtors := make([]map[string]domain.Money, len(buckets))

	report := Report{AsOf: today}

	for _, line := range lines {
		if line == nil || !line.IsPending() {
			continue
		}

		amount := b.calc.Quote(line).Totals.TotalInclVAT
		report.Outstanding = report.Outstanding.Add(amount)

		idx := 0
		if due := line.DueDate(); due != nil {
			if !due.Before(today) && !due.After(horizon) {
				report.Next7DaysDue = report.Next7DaysDue.Add(amount)
			}
			if days, overdue := line.DaysOverdue(today); overdue {
				idx = b.rangeIndex(days) + 1
				report.OverdueAmount = report.OverdueAmount.Add(amount)
				report.OverdueCount++
				if days > report.MaxOverdueDays {
					report.MaxOverdueDays = days
				}
			}
		}

		buckets[idx].Amount = buckets[idx].Amount.Add(amount)
		buckets[idx].Count++
		if debtors[idx] == nil {
			debtors[idx] = make(map[string]domain.Money)
		}
		name := debtorName(line)
		debtors[idx][name] = debtors[idx][name].Add(amount)
	}

	for i := range buckets {
		buckets[i].SharePct = domain.Ratio(buckets[i].Amount, report.Outstanding, 0)
		buckets[i].TopDebtors = topDebtors(debtors[i], b.topDebtors)
	}
	report.Buckets = buckets

	return report
}

// rangeIndex returns the first range containing days. Validated ranges always match.
func (b *Bucketer) rangeIndex(days int) int {
	for i, r := range b.ranges {
		if r.contains(days) {
			return i
		}
	}
	return len(b.ranges) - 1
}

func debtorName(line *domain.RegistrationLine) string {
	if line.Company() != "" {
		return line.Company()
	}
	if line.AttendeeName() != "" {
		return line.AttendeeName()
	}
	return domain.NoGroup
}

func topDebtors(byName map[string]domain.Money, n int) []Debtor {
	list := make([]Debtor, 0, len(byName))
	for name, amount := range byName {
		list = append(list, Debtor{Name: name, Amount: amount})
	}
	sort.Slice(list, func(i, j int) bool {
		if c := list[i].Amount.Cmp(list[j].Amount); c != 0 {
			return c > 0
		}
		return list[i].Name < list[j].Name
	})
	if len(list) > n {
		list = list[:n]
	}
	return list
}
