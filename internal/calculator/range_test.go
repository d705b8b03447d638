package calculator

import (
	"errors"
	"testing"

	"CurrencySentinel/internal/model"
)

func TestPriceRange(t *testing.T) {
	pts := []model.PricePoint{
		{High: 91, Low: 88},
		{High: 90, Low: 89},
		{High: 92, Low: 89.5},
		{High: 90.5, Low: 89.8},
	}
	high, low, err := PriceRange(pts, 0)
	if err != nil {
		t.Fatal(err)
	}
	if high != 92 || low != 88 {
		t.Errorf("full range = (%v, %v), want (92, 88)", high, low)
	}

	high, low, _ = PriceRange(pts, 2)
	if high != 92 || low != 89.5 {
		t.Errorf("lookback 2 = (%v, %v), want (92, 89.5)", high, low)
	}

	_, _, err = PriceRange(nil, 5)
	if !errors.Is(err, ErrInsufficientData) {
		t.Errorf("empty: got %v", err)
	}
}

func TestRangePosition(t *testing.T) {
	tests := []struct {
		current, high, low, want float64
	}{
		{90, 92, 88, 0.5},
		{87, 92, 88, 0},
		{95, 92, 88, 1},
		{90, 90, 90, 0.5},
	}
	for _, tt := range tests {
		got, err := RangePosition(tt.current, tt.high, tt.low)
		if err != nil || got != tt.want {
			t.Errorf("RangePosition(%v, %v, %v) = %v, %v; want %v", tt.current, tt.high, tt.low, got, err, tt.want)
		}
	}
	if _, err := RangePosition(90, 88, 92); err == nil {
		t.Error("expected error for inverted range")
	}
}
