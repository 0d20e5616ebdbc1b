package usecase

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/vegist/backend/internal/domain"
)

// PremiumBrandMultiplier is the surcharge applied when the selected brand is premium
var PremiumBrandMultiplier = decimal.RequireFromString("1.15")

var one = decimal.NewFromInt(1)

// ComputePrice prices a weight tier: the tier price times the grain multiplier, the
// polish multiplier and, for premium brands, PremiumBrandMultiplier. A nil multiplier
// counts as 1. The result is rounded half away from zero to a whole currency unit.
func ComputePrice(tierPrice decimal.Decimal, grain, polish *decimal.Decimal, premiumBrand bool) decimal.Decimal {
	return applyMultiplierChain(tierPrice, grain, polish, premiumBrand).Round(0)
}

// ComputeCustomWeightPrice prices an arbitrary weight as weightKg × ratePerKg followed
// by the same multiplier chain as ComputePrice. It does not look at tier prices, so a
// custom 5 kg and the 5 kg tier can differ.
func ComputeCustomWeightPrice(weightKg string, ratePerKg decimal.Decimal, grain, polish *decimal.Decimal, premiumBrand bool) (decimal.Decimal, error) {
	weight, err := ParseCustomWeight(weightKg)
	if err != nil {
		return decimal.Zero, err
	}
	base := weight.Mul(ratePerKg)
	return applyMultiplierChain(base, grain, polish, premiumBrand).Round(0), nil
}

// ParseCustomWeight parses a user-entered weight in kilograms.
// Non-numeric, zero and negative input is ErrInvalidCustomWeight.
func ParseCustomWeight(weightKg string) (decimal.Decimal, error) {
	weight, err := decimal.NewFromString(strings.TrimSpace(weightKg))
	if err != nil || !weight.IsPositive() {
		return decimal.Zero, domain.ErrInvalidCustomWeight
	}
	return weight, nil
}

func applyMultiplierChain(base decimal.Decimal, grain, polish *decimal.Decimal, premiumBrand bool) decimal.Decimal {
	price := base.Mul(multiplierOrOne(grain))
	price = price.Mul(multiplierOrOne(polish))
	if premiumBrand {
		price = price.Mul(PremiumBrandMultiplier)
	}
	return price
}

func multiplierOrOne(m *decimal.Decimal) decimal.Decimal {
	if m == nil {
		return one
	}
	return *m
}

// IsAvailable reports whether a weight tier, grain and polish combination can be
// purchased: every one of them must be available.
func IsAvailable(tier domain.WeightTier, grain, polish domain.VariantOption) bool {
	return tier.Available && grain.Available && polish.Available
}

// FormatPrice renders an amount with its currency symbol and the thousands
// separators of the given locale, e.g. "₹1,862". Whole amounts print without decimals.
func FormatPrice(amount decimal.Decimal, currency string, locale language.Tag) string {
	p := message.NewPrinter(locale)
	symbol := domain.CurrencySymbol(currency)
	if amount.Equal(amount.Truncate(0)) {
		return symbol + p.Sprintf("%d", amount.IntPart())
	}
	return symbol + p.Sprintf("%.2f", amount.Round(2).InexactFloat64())
}
