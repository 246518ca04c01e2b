package pricing

import (
	"errors"
	"testing"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"3.50", "3.5"},
		{"3,50", "3.5"},
		{" 12 ", "12"},
		{"1 234,56", "1234.56"},
		{"1.234,56", "1234.56"},
		{"1,234.56", "1234.56"},
		{"45,00 Kč", "45"},
		{"€ 7.9", "7.9"},
		{",5", "0.5"},
		{"3,", "3"},
		{"-2.5", "-2.5"},
	}
	for _, tt := range tests {
		got, err := ParsePrice(tt.in)
		if err != nil {
			t.Errorf("ParsePrice(%q) error: %v", tt.in, err)
			continue
		}
		if !got.Equal(dec(tt.want)) {
			t.Errorf("ParsePrice(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestParsePriceMalformed(t *testing.T) {
	for _, in := range []string{"", "   ", "n/a", "abc", "-", "1;5"} {
		got, err := ParsePrice(in)
		if !errors.Is(err, ErrMalformedPrice) {
			t.Errorf("ParsePrice(%q) err = %v, want ErrMalformedPrice", in, err)
		}
		if !got.IsZero() {
			t.Errorf("ParsePrice(%q) = %s, want 0", in, got)
		}
	}
}
