package packsize

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		label   string
		want    Size
		wantErr bool
	}{
		{label: "50g", want: Size{Kind: Weight, Magnitude: 50}},
		{label: " 100 g ", want: Size{Kind: Weight, Magnitude: 100}},
		{label: "250ml", want: Size{Kind: Volume, Magnitude: 250}},
		{label: "1 l", want: Size{Kind: Volume, Magnitude: 1}},
		{label: "Box 75g / 2 pcs", want: Size{Kind: Weight, Magnitude: 75}},
		{label: "tray", wantErr: true},
		{label: "", wantErr: true},
	}
	for _, tt := range tests {
		got, err := Parse(tt.label)
		if tt.wantErr {
			if !errors.Is(err, ErrMalformedPackSize) {
				t.Errorf("Parse(%q) err = %v, want ErrMalformedPackSize", tt.label, err)
			}
			if !got.IsZero() {
				t.Errorf("Parse(%q) = %+v, want zero size", tt.label, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("Parse(%q) unexpected error: %v", tt.label, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Parse(%q) = %+v, want %+v", tt.label, got, tt.want)
		}
	}
}

func TestSizeString(t *testing.T) {
	if got := (Size{Kind: Volume, Magnitude: 250}).String(); got != "250ml" {
		t.Errorf("got %q", got)
	}
	if got := (Size{Kind: Weight, Magnitude: 50}).Grams(); got != 50 {
		t.Errorf("grams = %d", got)
	}
	if got := (Size{}).String(); got != "" {
		t.Errorf("zero size string = %q", got)
	}
}
