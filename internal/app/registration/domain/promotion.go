package domain

import "fmt"

// Promotion is a named discount rule that can be attached to registrations.
type Promotion struct {
	id     string
	name   string
	rule   DiscountRule
	active bool
}

// NewPromotion creates a Promotion.
func NewPromotion(id, name string, rule DiscountRule, active bool) (*Promotion, error) {
	if name == "" {
		return nil, ErrEmptyPromotionName
	}
	if rule == nil {
		return nil, ErrInvalidDiscountValue
	}

	return &Promotion{
		id:     id,
		name:   name,
		rule:   rule,
		active: active,
	}, nil
}

// Getters
func (p *Promotion) ID() string         { return p.id }
func (p *Promotion) Name() string       { return p.name }
func (p *Promotion) Rule() DiscountRule { return p.rule }
func (p *Promotion) Kind() DiscountKind { return p.rule.Kind() }
func (p *Promotion) IsActive() bool     { return p.active }

// Activate turns the promotion on.
func (p *Promotion) Activate() { p.active = true }

// Deactivate turns the promotion off. Lines keep the reference but stop receiving the discount.
func (p *Promotion) Deactivate() { p.active = false }

// CalculateDiscount returns the per-seat discount this promotion gives on basePrice.
func (p *Promotion) CalculateDiscount(basePrice Money) Money {
	return p.rule.CalculateDiscount(basePrice)
}

// Label describes the offer, e.g. "10% off" or "Attend 4 Pay 3".
func (p *Promotion) Label() string {
	v := p.rule.Value()
	switch p.rule.Kind() {
	case KindPercentage:
		return fmt.Sprintf("%s%% off", v.String())
	case KindFixedAmount:
		return fmt.Sprintf("%s off", v.StringFixed(MinorUnits))
	case KindBuyNPayM:
		return fmt.Sprintf("Attend %s Pay %s", v.Add(one).String(), v.String())
	default:
		return p.name
	}
}

// DisplayName combines the name and the offer label.
func (p *Promotion) DisplayName() string {
	return fmt.Sprintf("%s (%s)", p.name, p.Label())
}

// ActiveRules returns the rules of the active promotions, preserving order.
func ActiveRules(promotions []*Promotion) []DiscountRule {
	rules := make([]DiscountRule, 0, len(promotions))
	for _, p := range promotions {
		if p != nil && p.active {
			rules = append(rules, p.rule)
		}
	}
	return rules
}
