package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// DefaultVATRate is the flat 7% VAT applied to every registration.
var DefaultVATRate = decimal.New(7, -2)

// Amounts holds the four priced figures of a registration line.
type Amounts struct {
	Discount       Money `json:"discount"`
	PriceBeforeVAT Money `json:"price_before_vat"`
	VAT            Money `json:"vat"`
	TotalInclVAT   Money `json:"total_incl_vat"`
}

// LineQuote is the priced result for one registration line.
// Totals are the rounded per-seat figures multiplied by Seats and are not rounded again.
type LineQuote struct {
	BaseUnitPrice Money   `json:"base_unit_price"`
	Seats         int     `json:"seats"`
	GrossSales    Money   `json:"gross_sales"`
	PerSeat       Amounts `json:"per_seat"`
	Totals        Amounts `json:"totals"`
}

// PricingCalculator is a domain service for discount, VAT and line totals.
//
// Rounding happens at each stage in a fixed order: discount, price before VAT,
// VAT, total. The total is price before VAT multiplied by (1 + rate) and rounded,
// not the sum of the rounded price and VAT.
type PricingCalculator struct {
	vatRate       decimal.Decimal
	vatMultiplier decimal.Decimal // 1 + vatRate
}

// NewPricingCalculator creates a calculator using DefaultVATRate.
func NewPricingCalculator() *PricingCalculator {
	return &PricingCalculator{
		vatRate:       DefaultVATRate,
		vatMultiplier: one.Add(DefaultVATRate),
	}
}

// NewPricingCalculatorWithVAT creates a calculator for a VAT percentage between 0 and 100.
func NewPricingCalculatorWithVAT(percent decimal.Decimal) (*PricingCalculator, error) {
	if percent.IsNegative() || percent.GreaterThan(hundred) {
		return nil, fmt.Errorf("vat percent must be between 0 and 100, got %s", percent)
	}

	rate := percent.Div(hundred)
	return &PricingCalculator{
		vatRate:       rate,
		vatMultiplier: one.Add(rate),
	}, nil
}

// CalculateDiscountAmount sums every rule's discount, each computed on the original base price.
func (pc *PricingCalculator) CalculateDiscountAmount(basePrice Money, rules []DiscountRule) Money {
	basePrice = basePrice.ClampZero()

	var total Money
	for _, rule := range rules {
		if rule == nil {
			continue
		}
		total = total.Add(rule.CalculateDiscount(basePrice))
	}
	return total
}

// PriceBeforeVAT returns the rounded per-seat price after discounts, floored at zero.
func (pc *PricingCalculator) PriceBeforeVAT(basePrice Money, rules []DiscountRule) Money {
	basePrice = basePrice.ClampZero()
	if len(rules) == 0 {
		return basePrice.Round()
	}

	remaining := basePrice.Subtract(pc.CalculateDiscountAmount(basePrice, rules))
	return remaining.ClampZero().Round()
}

// CalculateVAT returns round(price × rate).
func (pc *PricingCalculator) CalculateVAT(priceBeforeVAT Money) Money {
	return priceBeforeVAT.MultiplyByRate(pc.vatRate).Round()
}

// CalculateTotal returns round(price × (1 + rate)).
func (pc *PricingCalculator) CalculateTotal(priceBeforeVAT Money) Money {
	return priceBeforeVAT.MultiplyByRate(pc.vatMultiplier).Round()
}

// PriceLine prices seats at basePrice with the given active rules.
// A negative base price is treated as zero.
func (pc *PricingCalculator) PriceLine(basePrice Money, rules []DiscountRule, seats int) LineQuote {
	basePrice = basePrice.ClampZero()
	if seats < 0 {
		seats = 0
	}

	var discount Money
	if len(rules) > 0 {
		discount = pc.CalculateDiscountAmount(basePrice, rules)
	}
	priceBeforeVAT := pc.PriceBeforeVAT(basePrice, rules)

	perSeat := Amounts{
		Discount:       discount,
		PriceBeforeVAT: priceBeforeVAT,
		VAT:            pc.CalculateVAT(priceBeforeVAT),
		TotalInclVAT:   pc.CalculateTotal(priceBeforeVAT),
	}

	n := int64(seats)
	return LineQuote{
		BaseUnitPrice: basePrice,
		Seats:         seats,
		GrossSales:    basePrice.MultiplyByInt(n),
		PerSeat:       perSeat,
		Totals: Amounts{
			Discount:       perSeat.Discount.MultiplyByInt(n),
			PriceBeforeVAT: perSeat.PriceBeforeVAT.MultiplyByInt(n),
			VAT:            perSeat.VAT.MultiplyByInt(n),
			TotalInclVAT:   perSeat.TotalInclVAT.MultiplyByInt(n),
		},
	}
}

// Quote prices a registration line with its active promotions.
func (pc *PricingCalculator) Quote(line *RegistrationLine) LineQuote {
	return pc.PriceLine(line.BaseUnitPrice(), line.ActiveRules(), line.Seats())
}
