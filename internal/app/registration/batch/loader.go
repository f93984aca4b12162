package batch

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/light-bringer/classfin-service/internal/app/registration/domain"
)

var (
	ErrUnknownClass       = errors.New("line references an unknown class")
	ErrDuplicateClass     = errors.New("duplicate class id")
	ErrDuplicatePromotion = errors.New("duplicate promotion id")
	ErrInvalidDate        = errors.New("invalid date")
)

// kindAliases maps alternate spellings seen in exported data to rule kinds.
var kindAliases = map[string]domain.DiscountKind{
	"percent":      domain.KindPercentage,
	"fixed_amount": domain.KindFixedAmount,
	"buy_n_pay_m":  domain.KindBuyNPayM,
}

// LoadFile reads a YAML batch from disk.
func LoadFile(path string, logger *slog.Logger) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open batch: %w", err)
	}
	defer f.Close()

	src, err := Load(f, logger)
	if err != nil {
		return nil, fmt.Errorf("load batch %s: %w", path, err)
	}
	return src, nil
}

// Load decodes a YAML batch and builds the domain objects it describes.
func Load(r io.Reader, logger *slog.Logger) (*Source, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var doc Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}

	return Build(doc, logger)
}

// Build converts a decoded document into a Source.
func Build(doc Document, logger *slog.Logger) (*Source, error) {
	if logger == nil {
		logger = slog.Default()
	}

	classes := make(map[string]classEntry, len(doc.Classes))
	for i, rec := range doc.Classes {
		entry, err := buildClass(rec)
		if err != nil {
			return nil, fmt.Errorf("classes[%d]: %w", i, err)
		}
		if _, dup := classes[entry.ref.ID]; dup {
			return nil, fmt.Errorf("classes[%d]: %w: %s", i, ErrDuplicateClass, entry.ref.ID)
		}
		classes[entry.ref.ID] = entry
	}

	promotions := make([]*domain.Promotion, 0, len(doc.Promotions))
	promoByID := make(map[string]*domain.Promotion, len(doc.Promotions))
	for i, rec := range doc.Promotions {
		p, err := buildPromotion(rec, logger)
		if err != nil {
			return nil, fmt.Errorf("promotions[%d]: %w", i, err)
		}
		if _, dup := promoByID[p.ID()]; dup {
			return nil, fmt.Errorf("promotions[%d]: %w: %s", i, ErrDuplicatePromotion, p.ID())
		}
		promotions = append(promotions, p)
		promoByID[p.ID()] = p
	}

	lines := make([]*domain.RegistrationLine, 0, len(doc.Lines))
	for i, rec := range doc.Lines {
		l, err := buildLine(rec, classes, promoByID, logger)
		if err != nil {
			return nil, fmt.Errorf("lines[%d]: %w", i, err)
		}
		lines = append(lines, l)
	}

	logger.Debug("batch loaded",
		"classes", len(classes),
		"promotions", len(promotions),
		"lines", len(lines),
	)

	return NewSource(lines, promotions), nil
}

type classEntry struct {
	ref   domain.ClassRef
	price domain.Money
}

func buildClass(rec ClassRecord) (classEntry, error) {
	if strings.TrimSpace(rec.ID) == "" {
		return classEntry{}, domain.ErrEmptyClassID
	}
	date, err := parseDate(rec.Date)
	if err != nil {
		return classEntry{}, err
	}
	price, err := parseMoney(rec.Price)
	if err != nil {
		return classEntry{}, err
	}

	title := rec.Title
	if title == "" {
		title = rec.ID
	}
	ref := domain.ClassRef{ID: rec.ID, Title: title}
	if date != nil {
		ref.Date = *date
	}
	return classEntry{ref: ref, price: price}, nil
}

func buildPromotion(rec PromotionRecord, logger *slog.Logger) (*domain.Promotion, error) {
	id := rec.ID
	if id == "" {
		id = uuid.NewString()
	}

	kind := domain.DiscountKind(strings.ToLower(strings.TrimSpace(rec.Kind)))
	if alias, ok := kindAliases[string(kind)]; ok {
		kind = alias
	}

	value, err := decimal.NewFromString(strings.TrimSpace(rec.Value))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidDiscountValue, rec.Value)
	}

	rule, known, err := domain.NewDiscountRule(kind, value)
	if err != nil {
		return nil, err
	}
	if !known {
		logger.Warn("unknown promotion kind, discount disabled",
			"promotion_id", id,
			"kind", string(kind),
		)
	}

	active := true
	if rec.Active != nil {
		active = *rec.Active
	}
	return domain.NewPromotion(id, rec.Name, rule, active)
}

func buildLine(
	rec LineRecord,
	classes map[string]classEntry,
	promoByID map[string]*domain.Promotion,
	logger *slog.Logger,
) (*domain.RegistrationLine, error) {
	class, ok := classes[rec.Class]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownClass, rec.Class)
	}

	id := rec.ID
	if id == "" {
		id = uuid.NewString()
	}

	// Line price wins, then the class list price, then zero.
	price := class.price
	if strings.TrimSpace(rec.Price) != "" {
		p, err := parseMoney(rec.Price)
		if err != nil {
			return nil, err
		}
		price = p
	}

	seats := 1
	if rec.Seats != nil {
		seats = *rec.Seats
	}

	ptype := domain.ParticipantIndividual
	if strings.TrimSpace(rec.ParticipantType) != "" {
		pt, err := domain.ParseParticipantType(rec.ParticipantType)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", err, rec.ParticipantType)
		}
		ptype = pt
	}

	payment, err := domain.ParsePaymentStatus(rec.PaymentStatus)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", err, rec.PaymentStatus)
	}
	document, err := domain.ParseDocumentStatus(rec.DocumentStatus)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", err, rec.DocumentStatus)
	}

	due, err := parseDate(rec.DueDate)
	if err != nil {
		return nil, err
	}
	paidOn, err := parseDate(rec.PaymentDate)
	if err != nil {
		return nil, err
	}
	archivedAt, err := parseDate(rec.ArchivedAt)
	if err != nil {
		return nil, err
	}

	promotions := make([]*domain.Promotion, 0, len(rec.Promotions))
	for _, pid := range rec.Promotions {
		p, ok := promoByID[pid]
		if !ok {
			logger.Warn("line references an unknown promotion, ignoring it",
				"line_id", id,
				"promotion_id", pid,
			)
			continue
		}
		promotions = append(promotions, p)
	}

	line, err := domain.NewRegistrationLine(domain.LineParams{
		ID:              id,
		Class:           class.ref,
		AttendeeName:    rec.AttendeeName,
		Company:         rec.Company,
		Channel:         rec.Channel,
		BaseUnitPrice:   price,
		Seats:           seats,
		ParticipantType: ptype,
		Promotions:      promotions,
		PaymentStatus:   payment,
		DueDate:         due,
		PaymentDate:     paidOn,
		DocumentStatus:  document,
	})
	if err != nil {
		return nil, err
	}

	if archivedAt != nil {
		if err := line.Archive(*archivedAt); err != nil {
			return nil, err
		}
	}
	return line, nil
}

func parseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		// Timestamps are accepted too; only the calendar date is kept.
		t, err = time.Parse(time.RFC3339, s)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidDate, s)
		}
	}
	return &t, nil
}

func parseMoney(s string) (domain.Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return domain.Money{}, nil
	}
	m, err := domain.ParseMoney(s)
	if err != nil {
		return domain.Money{}, fmt.Errorf("%w: %q", domain.ErrInvalidPrice, s)
	}
	if m.IsNegative() || !m.IsWholeMinorUnits() {
		return domain.Money{}, fmt.Errorf("%w: %q", domain.ErrInvalidPrice, s)
	}
	return m, nil
}
