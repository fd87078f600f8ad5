package economy

import (
	mathrand "math/rand"
	"testing"
)

func TestDeterministicRandSource(t *testing.T) {
	a := NewServiceWithSource(nil, nil, mathrand.NewSource(42))
	b := NewServiceWithSource(nil, nil, mathrand.NewSource(42))
	for i := 0; i < 16; i++ {
		if av, bv := a.nextFloat(), b.nextFloat(); av != bv {
			t.Fatalf("draw %d diverged: %v vs %v", i, av, bv)
		}
	}
}

func TestHistoryPageOmitted(t *testing.T) {
	page := HistoryPage{
		Points: make([]PricePoint, 20),
		Total:  53,
	}
	if got := page.Omitted(); got != 33 {
		t.Fatalf("got %d want 33", got)
	}
	page.Total = 5
	page.Points = page.Points[:5]
	if got := page.Omitted(); got != 0 {
		t.Fatalf("got %d want 0", got)
	}
}

func TestHoldingViewMath(t *testing.T) {
	h := HoldingView{Quantity: 2, AvgBuyPrice: 100, CurrentPrice: 130}
	if h.Value() != 260 {
		t.Fatalf("value got %v want 260", h.Value())
	}
	if h.Unrealized() != 60 {
		t.Fatalf("unrealized got %v want 60", h.Unrealized())
	}
	h.CurrentPrice = 70
	if h.Unrealized() != -60 {
		t.Fatalf("unrealized got %v want -60", h.Unrealized())
	}
}
