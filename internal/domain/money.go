package domain

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// DefaultCurrency is used for catalog records that carry no currency code
const DefaultCurrency = "INR"

var currencySymbols = map[string]string{
	"INR": "₹",
	"EUR": "€",
	"USD": "$",
	"GBP": "£",
}

// ParseMoney converts a display price such as "₹1,499" or "€99.99" to a decimal.
// Thousands separators and spaces are removed, then any leading currency prefix
// ("₹", "Rs.") and trailing unit suffix ("/kg") is trimmed. A dot right after a
// symbol is a decimal point ("€.99"), after a letter it ends an abbreviation ("Rs.").
// Anything left that is not a plain decimal number is an ErrInvalidPrice;
// exponent forms such as "1e3" are rejected.
func ParseMoney(s string) (decimal.Decimal, error) {
	cleaned := strings.Map(func(r rune) rune {
		if r == ',' || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)

	start := strings.IndexFunc(cleaned, func(r rune) bool {
		return unicode.IsDigit(r) || r == '-'
	})
	if start < 0 {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidPrice, s)
	}
	number := strings.TrimRightFunc(cleaned[start:], func(r rune) bool {
		return !unicode.IsDigit(r)
	})
	if prefix, ok := strings.CutSuffix(cleaned[:start], "."); ok {
		last, _ := utf8.DecodeLastRuneInString(prefix)
		if prefix == "" || !unicode.IsLetter(last) {
			number = "0." + number
		}
	}

	if !isPlainDecimal(number) {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidPrice, s)
	}
	amount, err := decimal.NewFromString(number)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidPrice, s)
	}
	return amount, nil
}

// isPlainDecimal accepts an optional leading minus, digits and at most one dot
func isPlainDecimal(s string) bool {
	s = strings.TrimPrefix(s, "-")
	if s == "" {
		return false
	}
	dots := 0
	for _, r := range s {
		switch {
		case r == '.':
			dots++
		case r < '0' || r > '9':
			return false
		}
	}
	return dots <= 1
}

// MoneyOrZero is ParseMoney with unparseable input coerced to 0.
// The boolean reports whether s parsed.
func MoneyOrZero(s string) (decimal.Decimal, bool) {
	amount, err := ParseMoney(s)
	if err != nil {
		return decimal.Zero, false
	}
	return amount, true
}

// MinorUnits converts an amount to its integer minor-unit value (paise, cents)
func MinorUnits(amount decimal.Decimal) int64 {
	return amount.Shift(2).Round(0).IntPart()
}

// CurrencySymbol returns the display symbol for an ISO code, or the code itself
func CurrencySymbol(code string) string {
	if code == "" {
		code = DefaultCurrency
	}
	if symbol, ok := currencySymbols[strings.ToUpper(code)]; ok {
		return symbol
	}
	return strings.ToUpper(code) + " "
}
