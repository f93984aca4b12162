package finance

import (
	"sort"
	"time"

	"github.com/light-bringer/classfin-service/internal/app/registration/domain"
	"github.com/light-bringer/classfin-service/internal/pkg/clock"
)

// DocumentGaps counts registrations whose billing paperwork is behind.
type DocumentGaps struct {
	// Pending with no document issued yet.
	MissingQuotation int `json:"missing_quotation"`
	// Pending and at most quoted.
	MissingInvoice int `json:"missing_invoice"`
	// Paid without a receipt.
	MissingReceipt int `json:"missing_receipt"`
}

// LedgerRow is one company in the corporate billing ledger.
type LedgerRow struct {
	Company        string               `json:"company"`
	Lines          int                  `json:"lines"`
	Seats          int                  `json:"seats"`
	TotalBilledNet domain.Money         `json:"total_billed_net"`
	CashReceived   domain.Money         `json:"cash_received"`
	Outstanding    domain.Money         `json:"outstanding"`
	Status         domain.PaymentStatus `json:"status"`
}

// Summary is the finance dashboard for a set of registrations.
type Summary struct {
	AsOf            time.Time    `json:"as_of"`
	Totals          Rollup       `json:"totals"`
	SeatsCorporate  int          `json:"seats_corporate"`
	IndividualCount int          `json:"individual_count"`
	OverdueAmount   domain.Money `json:"overdue_amount"`
	OverdueCount    int          `json:"overdue_count"`
	MaxOverdueDays  int          `json:"max_overdue_days"`
	PendingInvoices int          `json:"pending_invoices"`
	Documents       DocumentGaps `json:"documents"`
	CorporateLedger []LedgerRow  `json:"corporate_ledger"`
}

// Summarize builds the dashboard summary as of the given day.
func (a *Aggregator) Summarize(lines []*domain.RegistrationLine, asOf time.Time) Summary {
	today := clock.Date(asOf)
	s := Summary{
		AsOf:   today,
		Totals: a.Aggregate(lines),
	}

	ledger := make(map[string]*LedgerRow)
	for _, line := range lines {
		if line == nil {
			continue
		}
		total := a.calc.Quote(line).Totals

		if line.IsCorporate() {
			s.SeatsCorporate += line.Seats()
			row := ledger[line.CompanyKey()]
			if row == nil {
				row = &LedgerRow{Company: line.CompanyKey()}
				ledger[line.CompanyKey()] = row
			}
			row.Lines++
			row.Seats += line.Seats()
			row.TotalBilledNet = row.TotalBilledNet.Add(total.PriceBeforeVAT)
			if line.IsPaid() {
				row.CashReceived = row.CashReceived.Add(total.TotalInclVAT)
			} else {
				row.Outstanding = row.Outstanding.Add(total.TotalInclVAT)
			}
		} else {
			s.IndividualCount++
		}

		s.Documents.count(line)

		if !line.IsPending() {
			continue
		}
		s.PendingInvoices++
		if days, overdue := line.DaysOverdue(today); overdue {
			s.OverdueAmount = s.OverdueAmount.Add(total.TotalInclVAT)
			s.OverdueCount++
			if days > s.MaxOverdueDays {
				s.MaxOverdueDays = days
			}
		}
	}

	s.CorporateLedger = sortLedger(ledger)
	return s
}

func (g *DocumentGaps) count(line *domain.RegistrationLine) {
	doc := line.DocumentStatus()
	if line.IsPending() {
		if doc == domain.DocumentNone {
			g.MissingQuotation++
		}
		if doc == domain.DocumentNone || doc == domain.DocumentQuoted {
			g.MissingInvoice++
		}
		return
	}
	if doc != domain.DocumentReceipted {
		g.MissingReceipt++
	}
}

func sortLedger(byCompany map[string]*LedgerRow) []LedgerRow {
	rows := make([]LedgerRow, 0, len(byCompany))
	for _, row := range byCompany {
		row.Status = domain.PaymentPaid
		if row.Outstanding.IsPositive() {
			row.Status = domain.PaymentPending
		}
		rows = append(rows, *row)
	}

	sort.Slice(rows, func(i, j int) bool {
		if c := rows[i].Outstanding.Cmp(rows[j].Outstanding); c != 0 {
			return c > 0
		}
		return rows[i].Company < rows[j].Company
	})
	return rows
}
