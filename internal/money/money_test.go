package money_test

import (
	"errors"
	"testing"

	"github.com/comparador/quote-aggregator/internal/money"
	"github.com/shopspring/decimal"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{"integer_with_suffix", "350 EUR", "350", nil},
		{"decimal_with_suffix", "249.55 EUR", "249.55", nil},
		{"plain_number", "217", "217", nil},
		{"symbol_prefix", "€ 99.90", "99.9", nil},
		{"empty", "", "", money.ErrEmptyAmount},
		{"only_currency", "EUR", "", money.ErrInvalidAmount},
		{"two_dots", "1.2.3 EUR", "", money.ErrInvalidAmount},
		{"negative", "-10 EUR", "", money.ErrNegativeAmount},
		{"negative_after_currency", "EUR -350", "", money.ErrNegativeAmount},
		{"sign_before_suffix", "350 -EUR", "", money.ErrNegativeAmount},
		{"sign_inside_digits", "3-50", "", money.ErrNegativeAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := money.ParseAmount(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestParseStrict(t *testing.T) {
	if d, err := money.ParseStrict(" 300 "); err != nil || !d.Equal(decimal.NewFromInt(300)) {
		t.Fatalf("expected 300, got %s (%v)", d, err)
	}
	if _, err := money.ParseStrict("300 EUR"); !errors.Is(err, money.ErrInvalidAmount) {
		t.Errorf("expected invalid amount, got %v", err)
	}
	if _, err := money.ParseStrict("-1"); !errors.Is(err, money.ErrNegativeAmount) {
		t.Errorf("expected negative amount, got %v", err)
	}
	if _, err := money.ParseStrict(""); !errors.Is(err, money.ErrEmptyAmount) {
		t.Errorf("expected empty amount, got %v", err)
	}
}

func TestRoundCents_HalfUp(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"272.65", "272.65"},
		{"0.125", "0.13"},
		{"190.004", "190"},
		{"249.555", "249.56"},
	}
	for _, tt := range tests {
		got := money.RoundCents(decimal.RequireFromString(tt.in))
		if !got.Equal(decimal.RequireFromString(tt.want)) {
			t.Errorf("RoundCents(%s): expected %s, got %s", tt.in, tt.want, got)
		}
	}
}

func TestFormat(t *testing.T) {
	if got := money.Format(decimal.RequireFromString("272.65"), money.EUR); got != "272.65 EUR" {
		t.Errorf("expected '272.65 EUR', got '%s'", got)
	}
	if got := money.Format(decimal.NewFromInt(190), money.EUR); got != "190.00 EUR" {
		t.Errorf("expected '190.00 EUR', got '%s'", got)
	}
}
