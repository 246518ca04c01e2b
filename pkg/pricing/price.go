package pricing

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

var ErrMalformedPrice = errors.New("malformed price")

// ParsePrice accepts decimal-comma and decimal-point strings ("3,50", "1.234,56",
// "1,234.56", "12 €"). The right-most separator is the decimal mark; every
// other separator, whitespace and currency sign is dropped.
func ParsePrice(s string) (decimal.Decimal, error) {
	var b strings.Builder
	for _, r := range strings.TrimSpace(s) {
		switch {
		case unicode.IsDigit(r), r == '.', r == ',', r == '-':
			b.WriteRune(r)
		case unicode.IsSpace(r), unicode.Is(unicode.Sc, r), unicode.IsLetter(r):
		default:
			return decimal.Zero, fmt.Errorf("%w: %q", ErrMalformedPrice, s)
		}
	}
	cleaned := b.String()
	if cleaned == "" {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrMalformedPrice, s)
	}

	num := cleaned
	if last := strings.LastIndexAny(cleaned, ".,"); last >= 0 {
		whole := strings.NewReplacer(".", "", ",", "").Replace(cleaned[:last])
		frac := cleaned[last+1:]
		if whole == "" || whole == "-" {
			whole += "0"
		}
		num = whole
		if frac != "" {
			num += "." + frac
		}
	}
	d, err := decimal.NewFromString(num)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrMalformedPrice, s)
	}
	return d, nil
}
