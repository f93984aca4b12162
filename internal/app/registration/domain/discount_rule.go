package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// DiscountKind identifies how a discount rule turns a base price into a discount.
type DiscountKind string

const (
	KindPercentage  DiscountKind = "percentage"
	KindFixedAmount DiscountKind = "fixed"
	KindBuyNPayM    DiscountKind = "buy_x_get_y"
)

// DiscountRule converts a per-seat base price into a per-seat discount amount.
// Implementations are stateless and safe for concurrent use.
type DiscountRule interface {
	Kind() DiscountKind
	Value() decimal.Decimal
	CalculateDiscount(basePrice Money) Money
}

// Percentage takes value percent off the base price.
type Percentage struct {
	percent    decimal.Decimal
	multiplier decimal.Decimal // percent/100
}

// NewPercentage creates a percentage rule, e.g. NewPercentage(decimal.NewFromInt(10)) for 10% off.
func NewPercentage(percent decimal.Decimal) (*Percentage, error) {
	if !percent.IsPositive() {
		return nil, fmt.Errorf("%w: percentage %s", ErrInvalidDiscountValue, percent)
	}
	return &Percentage{percent: percent, multiplier: percent.Div(hundred)}, nil
}

func (p *Percentage) Kind() DiscountKind     { return KindPercentage }
func (p *Percentage) Value() decimal.Decimal { return p.percent }

// CalculateDiscount returns round(base × percent/100).
func (p *Percentage) CalculateDiscount(basePrice Money) Money {
	return basePrice.MultiplyByRate(p.multiplier).Round()
}

// FixedAmount takes a flat amount off each seat. The price floor in the
// calculator keeps the result from going negative.
type FixedAmount struct {
	amount Money
}

// NewFixedAmount creates a fixed-amount rule.
func NewFixedAmount(amount Money) (*FixedAmount, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: fixed amount %s", ErrInvalidDiscountValue, amount)
	}
	return &FixedAmount{amount: amount}, nil
}

func (f *FixedAmount) Kind() DiscountKind     { return KindFixedAmount }
func (f *FixedAmount) Value() decimal.Decimal { return f.amount.Decimal() }

// CalculateDiscount returns the rounded fixed amount regardless of the base price.
func (f *FixedAmount) CalculateDiscount(_ Money) Money {
	return f.amount.Round()
}

// BuyNPayM is an "attend N+1, pay N" offer. The free seat is spread over every
// seat as a per-seat discount of base/(paid+1).
type BuyNPayM struct {
	paid    decimal.Decimal
	divisor decimal.Decimal // paid + 1
}

// NewBuyNPayM creates the rule from the number of paid seats, e.g. 3 for "attend 4 pay 3".
func NewBuyNPayM(paid decimal.Decimal) (*BuyNPayM, error) {
	if !paid.IsPositive() {
		return nil, fmt.Errorf("%w: paid seats %s", ErrInvalidDiscountValue, paid)
	}
	return &BuyNPayM{paid: paid, divisor: paid.Add(one)}, nil
}

func (b *BuyNPayM) Kind() DiscountKind     { return KindBuyNPayM }
func (b *BuyNPayM) Value() decimal.Decimal { return b.paid }

// CalculateDiscount returns round(base / (paid+1)).
func (b *BuyNPayM) CalculateDiscount(basePrice Money) Money {
	discount, err := basePrice.DivideBy(b.divisor)
	if err != nil {
		return Money{}
	}
	return discount.Round()
}

// unknownRule carries a kind this build does not understand. It never discounts.
type unknownRule struct {
	kind  DiscountKind
	value decimal.Decimal
}

func (u *unknownRule) Kind() DiscountKind            { return u.kind }
func (u *unknownRule) Value() decimal.Decimal        { return u.value }
func (u *unknownRule) CalculateDiscount(Money) Money { return Money{} }

// NewDiscountRule builds a rule from its stored kind and value.
// Unknown kinds yield a rule that discounts nothing; known reports whether the kind was recognised.
func NewDiscountRule(kind DiscountKind, value decimal.Decimal) (rule DiscountRule, known bool, err error) {
	switch kind {
	case KindPercentage:
		rule, err = NewPercentage(value)
	case KindFixedAmount:
		rule, err = NewFixedAmount(MoneyFromDecimal(value))
	case KindBuyNPayM:
		rule, err = NewBuyNPayM(value)
	default:
		if !value.IsPositive() {
			return nil, false, fmt.Errorf("%w: %s value %s", ErrInvalidDiscountValue, kind, value)
		}
		return &unknownRule{kind: kind, value: value}, false, nil
	}
	if err != nil {
		return nil, true, err
	}
	return rule, true, nil
}
