package domain

import (
	"strings"
	"time"

	"github.com/light-bringer/classfin-service/internal/pkg/clock"
)

// NoGroup is the key used when a registration has no company or channel.
const NoGroup = "—"

// ParticipantType distinguishes individual buyers from corporate seat blocks.
type ParticipantType string

const (
	ParticipantIndividual ParticipantType = "Individual"
	ParticipantCorporate  ParticipantType = "Corporate"
)

// ParseParticipantType accepts the canonical names and the short Indi/Corp forms.
func ParseParticipantType(s string) (ParticipantType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "individual", "indi":
		return ParticipantIndividual, nil
	case "corporate", "corp":
		return ParticipantCorporate, nil
	}
	return "", ErrInvalidParticipantType
}

// PaymentStatus is the payment state of a registration.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "Pending"
	PaymentPaid    PaymentStatus = "Paid"
)

// ParsePaymentStatus parses a payment status. An empty string means Pending.
func ParsePaymentStatus(s string) (PaymentStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "pending":
		return PaymentPending, nil
	case "paid":
		return PaymentPaid, nil
	}
	return "", ErrInvalidPaymentStatus
}

// DocumentStatus tracks the billing document issued for a registration.
type DocumentStatus string

const (
	DocumentNone      DocumentStatus = ""
	DocumentQuoted    DocumentStatus = "Quoted"
	DocumentInvoiced  DocumentStatus = "Invoiced"
	DocumentReceipted DocumentStatus = "Receipted"
)

// ParseDocumentStatus accepts the canonical names and the QT/INV/Receipt short forms.
func ParseDocumentStatus(s string) (DocumentStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return DocumentNone, nil
	case "quoted", "qt":
		return DocumentQuoted, nil
	case "invoiced", "inv":
		return DocumentInvoiced, nil
	case "receipted", "receipt":
		return DocumentReceipted, nil
	}
	return "", ErrInvalidDocumentStatus
}

func (s DocumentStatus) rank() int {
	switch s {
	case DocumentQuoted:
		return 1
	case DocumentInvoiced:
		return 2
	case DocumentReceipted:
		return 3
	}
	return 0
}

// ClassRef identifies the training class a registration belongs to.
type ClassRef struct {
	ID    string
	Title string
	Date  time.Time
}

// LineParams carries the fields needed to register a seat block.
type LineParams struct {
	ID              string
	Class           ClassRef
	AttendeeName    string
	Company         string
	Channel         string
	BaseUnitPrice   Money
	Seats           int
	ParticipantType ParticipantType
	Promotions      []*Promotion
	PaymentStatus   PaymentStatus
	DueDate         *time.Time
	PaymentDate     *time.Time
	DocumentStatus  DocumentStatus
}

// RegistrationLine is one purchased seat block for one class by one buyer.
type RegistrationLine struct {
	id              string
	class           ClassRef
	attendeeName    string
	company         string
	channel         string
	baseUnitPrice   Money
	seats           int
	participantType ParticipantType
	promotions      []*Promotion
	paymentStatus   PaymentStatus
	dueDate         *time.Time
	paymentDate     *time.Time
	documentStatus  DocumentStatus
	archivedAt      *time.Time
}

// NewRegistrationLine validates params and creates a RegistrationLine.
func NewRegistrationLine(p LineParams) (*RegistrationLine, error) {
	if p.Class.ID == "" {
		return nil, ErrEmptyClassID
	}
	if p.BaseUnitPrice.IsNegative() || !p.BaseUnitPrice.IsWholeMinorUnits() {
		return nil, ErrInvalidPrice
	}
	if p.Seats < 1 {
		return nil, ErrInvalidSeats
	}

	switch p.ParticipantType {
	case ParticipantIndividual:
		if p.Seats != 1 {
			return nil, ErrIndividualSeats
		}
	case ParticipantCorporate:
	default:
		return nil, ErrInvalidParticipantType
	}

	status := p.PaymentStatus
	if status == "" {
		status = PaymentPending
	}
	if status != PaymentPending && status != PaymentPaid {
		return nil, ErrInvalidPaymentStatus
	}

	if p.DocumentStatus.rank() == 0 && p.DocumentStatus != DocumentNone {
		return nil, ErrInvalidDocumentStatus
	}

	return &RegistrationLine{
		id:              p.ID,
		class:           p.Class,
		attendeeName:    p.AttendeeName,
		company:         strings.TrimSpace(p.Company),
		channel:         strings.TrimSpace(p.Channel),
		baseUnitPrice:   p.BaseUnitPrice,
		seats:           p.Seats,
		participantType: p.ParticipantType,
		promotions:      append([]*Promotion(nil), p.Promotions...),
		paymentStatus:   status,
		dueDate:         dateOrNil(p.DueDate),
		paymentDate:     dateOrNil(p.PaymentDate),
		documentStatus:  p.DocumentStatus,
	}, nil
}

// Getters
func (l *RegistrationLine) ID() string                       { return l.id }
func (l *RegistrationLine) Class() ClassRef                  { return l.class }
func (l *RegistrationLine) AttendeeName() string             { return l.attendeeName }
func (l *RegistrationLine) Company() string                  { return l.company }
func (l *RegistrationLine) Channel() string                  { return l.channel }
func (l *RegistrationLine) BaseUnitPrice() Money             { return l.baseUnitPrice }
func (l *RegistrationLine) Seats() int                       { return l.seats }
func (l *RegistrationLine) ParticipantType() ParticipantType { return l.participantType }
func (l *RegistrationLine) Promotions() []*Promotion         { return l.promotions }
func (l *RegistrationLine) PaymentStatus() PaymentStatus     { return l.paymentStatus }
func (l *RegistrationLine) DueDate() *time.Time              { return l.dueDate }
func (l *RegistrationLine) PaymentDate() *time.Time          { return l.paymentDate }
func (l *RegistrationLine) DocumentStatus() DocumentStatus   { return l.documentStatus }
func (l *RegistrationLine) ArchivedAt() *time.Time           { return l.archivedAt }

// IsPaid returns true if the registration has been paid.
func (l *RegistrationLine) IsPaid() bool { return l.paymentStatus == PaymentPaid }

// IsPending returns true if payment is still outstanding.
func (l *RegistrationLine) IsPending() bool { return l.paymentStatus == PaymentPending }

// IsCorporate returns true for corporate seat blocks.
func (l *RegistrationLine) IsCorporate() bool { return l.participantType == ParticipantCorporate }

// IsArchived returns true if the registration is archived.
func (l *RegistrationLine) IsArchived() bool { return l.archivedAt != nil }

// CompanyKey returns the company name, or NoGroup when there is none.
func (l *RegistrationLine) CompanyKey() string {
	if l.company == "" {
		return NoGroup
	}
	return l.company
}

// ChannelKey returns the source channel, or NoGroup when there is none.
func (l *RegistrationLine) ChannelKey() string {
	if l.channel == "" {
		return NoGroup
	}
	return l.channel
}

// ActiveRules returns the discount rules of the active promotions on this line.
func (l *RegistrationLine) ActiveRules() []DiscountRule {
	return ActiveRules(l.promotions)
}

// HasPromotion reports whether the promotion with the given id is attached.
func (l *RegistrationLine) HasPromotion(id string) bool {
	for _, p := range l.promotions {
		if p != nil && p.id == id {
			return true
		}
	}
	return false
}

// DaysOverdue returns how many whole days the due date lies before asOf.
// ok is false when the line has no due date or is not yet due.
func (l *RegistrationLine) DaysOverdue(asOf time.Time) (days int, ok bool) {
	if l.dueDate == nil {
		return 0, false
	}
	days = clock.DaysBetween(*l.dueDate, asOf)
	if days <= 0 {
		return 0, false
	}
	return days, true
}

// IsOverdue returns true for pending lines whose due date has passed.
func (l *RegistrationLine) IsOverdue(asOf time.Time) bool {
	if !l.IsPending() {
		return false
	}
	_, ok := l.DaysOverdue(asOf)
	return ok
}

// MarkPaid records payment on the given date.
func (l *RegistrationLine) MarkPaid(paidOn time.Time) error {
	if err := l.checkNotArchived(); err != nil {
		return err
	}
	if paidOn.IsZero() {
		return ErrMissingPaymentDate
	}
	if l.paymentStatus == PaymentPaid {
		return ErrAlreadyPaid
	}

	l.paymentStatus = PaymentPaid
	l.paymentDate = dateOrNil(&paidOn)
	return nil
}

// MarkPending reverts a payment, e.g. after a bounced transfer.
func (l *RegistrationLine) MarkPending() error {
	if err := l.checkNotArchived(); err != nil {
		return err
	}
	if l.paymentStatus == PaymentPending {
		return ErrAlreadyPending
	}

	l.paymentStatus = PaymentPending
	l.paymentDate = nil
	return nil
}

// IssueDocument advances the billing document. Quoted, Invoiced and Receipted must be issued in order,
// although steps may be skipped.
func (l *RegistrationLine) IssueDocument(status DocumentStatus) error {
	if err := l.checkNotArchived(); err != nil {
		return err
	}
	if status.rank() == 0 {
		return ErrInvalidDocumentStatus
	}
	if status.rank() <= l.documentStatus.rank() {
		return ErrDocumentRegression
	}

	l.documentStatus = status
	return nil
}

// SetDueDate changes or clears the payment due date.
func (l *RegistrationLine) SetDueDate(due *time.Time) error {
	if err := l.checkNotArchived(); err != nil {
		return err
	}
	l.dueDate = dateOrNil(due)
	return nil
}

// Archive freezes the registration.
func (l *RegistrationLine) Archive(now time.Time) error {
	if l.archivedAt != nil {
		return ErrAlreadyArchived
	}
	l.archivedAt = &now
	return nil
}

// checkNotArchived returns an error if the registration is archived.
func (l *RegistrationLine) checkNotArchived() error {
	if l.archivedAt != nil {
		return ErrLineArchived
	}
	return nil
}

func dateOrNil(t *time.Time) *time.Time {
	if t == nil || t.IsZero() {
		return nil
	}
	d := clock.Date(*t)
	return &d
}
