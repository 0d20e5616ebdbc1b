package usecase

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"

	"github.com/vegist/backend/internal/domain"
)

func TestComputePrice(t *testing.T) {
	tests := []struct {
		name    string
		tier    string
		grain   *decimal.Decimal
		polish  *decimal.Decimal
		premium bool
		want    string
	}{
		{name: "no multipliers", tier: "699", want: "699"},
		{name: "grain only", tier: "149", grain: dec("1.2"), want: "179"},
		{name: "full chain with premium brand", tier: "1499", grain: dec("1.2"), polish: dec("0.9"), premium: true, want: "1862"},
		{name: "premium only", tier: "100", premium: true, want: "115"},
		{name: "half rounds away from zero", tier: "5", grain: dec("1.1"), want: "6"},
		{name: "below half rounds down", tier: "129", polish: dec("0.9"), want: "116"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputePrice(decimal.RequireFromString(tt.tier), tt.grain, tt.polish, tt.premium)
			if got.String() != tt.want {
				t.Errorf("ComputePrice() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestComputeCustomWeightPrice(t *testing.T) {
	rate := decimal.NewFromInt(140)

	got, err := ComputeCustomWeightPrice("2.5", rate, dec("1.2"), nil, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.String() != "420" {
		t.Errorf("ComputeCustomWeightPrice() = %s, want 420", got)
	}

	got, err = ComputeCustomWeightPrice(" 3 ", rate, dec("1.2"), dec("0.9"), true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 3 × 140 × 1.2 × 0.9 × 1.15 = 521.64
	if got.String() != "522" {
		t.Errorf("ComputeCustomWeightPrice() = %s, want 522", got)
	}
}

func TestParseCustomWeight_RejectsInvalidInput(t *testing.T) {
	for _, input := range []string{"", "abc", "0", "-1", "1kg", "0.000"} {
		if _, err := ParseCustomWeight(input); !errors.Is(err, domain.ErrInvalidCustomWeight) {
			t.Errorf("ParseCustomWeight(%q) error = %v, want ErrInvalidCustomWeight", input, err)
		}
	}

	got, err := ParseCustomWeight("0.75")
	if err != nil || got.String() != "0.75" {
		t.Errorf("ParseCustomWeight(0.75) = %s, %v", got, err)
	}
}

func TestIsAvailable(t *testing.T) {
	on := domain.VariantOption{Available: true}
	off := domain.VariantOption{Available: false}
	tierOn := domain.WeightTier{Available: true}
	tierOff := domain.WeightTier{Available: false}

	tests := []struct {
		name   string
		tier   domain.WeightTier
		grain  domain.VariantOption
		polish domain.VariantOption
		want   bool
	}{
		{"all available", tierOn, on, on, true},
		{"tier unavailable", tierOff, on, on, false},
		{"grain unavailable", tierOn, off, on, false},
		{"polish unavailable", tierOn, on, off, false},
		{"nothing available", tierOff, off, off, false},
	}

	for _, tt := range tests {
		if got := IsAvailable(tt.tier, tt.grain, tt.polish); got != tt.want {
			t.Errorf("%s: IsAvailable() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		amount   string
		currency string
		want     string
	}{
		{"1862", "INR", "₹1,862"},
		{"179", "INR", "₹179"},
		{"1250000", "INR", "₹1,250,000"},
		{"1499.5", "INR", "₹1,499.50"},
		{"42", "USD", "$42"},
		{"10", "XYZ", "XYZ 10"},
	}

	for _, tt := range tests {
		got := FormatPrice(decimal.RequireFromString(tt.amount), tt.currency, language.English)
		if got != tt.want {
			t.Errorf("FormatPrice(%s, %s) = %q, want %q", tt.amount, tt.currency, got, tt.want)
		}
	}
}
