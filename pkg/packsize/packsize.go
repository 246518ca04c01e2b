// Package packsize turns free-text package labels such as "50g" or "250ml"
// into a structured value that is parsed once and stored alongside the label.
package packsize

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

type Kind string

const (
	Weight Kind = "weight"
	Volume Kind = "volume"
)

var ErrMalformedPackSize = errors.New("package size has no numeric magnitude")

// Size is a parsed package label. Magnitude is grams for Weight and millilitres
// for Volume; capacity accounting treats both as grams.
type Size struct {
	Kind      Kind `json:"kind" gorm:"column:kind;size:8"`
	Magnitude int  `json:"magnitude" gorm:"column:magnitude"`
}

func (s Size) IsZero() bool { return s.Magnitude == 0 }

// Grams is the value used against harvest capacity.
func (s Size) Grams() int { return s.Magnitude }

func (s Size) String() string {
	if s.IsZero() {
		return ""
	}
	if s.Kind == Volume {
		return fmt.Sprintf("%dml", s.Magnitude)
	}
	return fmt.Sprintf("%dg", s.Magnitude)
}

// Parse reads the first run of digits in label as the magnitude. A label
// without digits yields a zero Size and ErrMalformedPackSize.
func Parse(label string) (Size, error) {
	s := strings.ToLower(strings.TrimSpace(label))
	start := strings.IndexFunc(s, unicode.IsDigit)
	if start < 0 {
		return Size{}, fmt.Errorf("%w: %q", ErrMalformedPackSize, label)
	}
	end := start
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(s[start:end])
	if err != nil {
		return Size{}, fmt.Errorf("%w: %q", ErrMalformedPackSize, label)
	}
	return Size{Kind: kindOf(s[end:]), Magnitude: n}, nil
}

func kindOf(suffix string) Kind {
	unit := strings.TrimLeft(suffix, " .,")
	if strings.HasPrefix(unit, "ml") || strings.HasPrefix(unit, "l") || strings.HasPrefix(unit, "dl") || strings.HasPrefix(unit, "cl") {
		return Volume
	}
	return Weight
}
