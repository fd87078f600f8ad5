package economy

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestRewardAmount(t *testing.T) {
	tests := []struct {
		balance int64
		want    int64
	}{
		{balance: 0, want: 700},
		{balance: 6999, want: 700},
		{balance: 7000, want: 700},
		{balance: 7010, want: 701},
		{balance: 100_000, want: 10_000},
	}
	for _, tc := range tests {
		if got := RewardAmount(tc.balance); got != tc.want {
			t.Fatalf("balance=%d got=%d want=%d", tc.balance, got, tc.want)
		}
	}
}

func TestNextPriceRoundsToCents(t *testing.T) {
	got := NextPrice(100, 0.0333)
	if got != 103.33 {
		t.Fatalf("got %v want 103.33", got)
	}
	got = NextPrice(100, -0.0333)
	if got != 96.67 {
		t.Fatalf("got %v want 96.67", got)
	}
}

func TestNextPriceFloor(t *testing.T) {
	if got := NextPrice(0.01, -0.99); got != MinPrice {
		t.Fatalf("got %v want floor %v", got, MinPrice)
	}
	if got := NextPrice(0.02, -0.9); got != MinPrice {
		t.Fatalf("got %v want floor %v", got, MinPrice)
	}
}

func TestNextPriceStaysWithinVolatilityBand(t *testing.T) {
	price := 45000.0
	vol := 0.05
	for _, u := range []float64{0, 0.1, 0.25, 0.5, 0.75, 0.9, 1} {
		fraction := (2*u - 1) * vol
		next := NextPrice(price, fraction)
		lo := price * (1 - vol)
		hi := price * (1 + vol)
		if next < lo-0.01 || next > hi+0.01 {
			t.Fatalf("u=%v next=%v outside [%v, %v]", u, next, lo, hi)
		}
	}
}

func TestAverageBuyPrice(t *testing.T) {
	got := AverageBuyPrice(2, 100, 2, 200)
	if got != 150 {
		t.Fatalf("got %v want 150", got)
	}

	// Weighted by quantity, not transaction count.
	q1, p1 := 1.0, 100.0
	q2, p2 := 3.0, 200.0
	got = AverageBuyPrice(q1, p1, q2, p2)
	want := (q1*p1 + q2*p2) / (q1 + q2)
	if math.Abs(got-want) > 1e-12 {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestCoinCost(t *testing.T) {
	tests := []struct {
		price float64
		qty   float64
		want  int64
	}{
		{price: 100, qty: 1, want: 100},
		{price: 0.45, qty: 10, want: 5},
		{price: 45000, qty: 0.5, want: 22500},
		{price: 0.08, qty: 3, want: 0},
	}
	for _, tc := range tests {
		if got := CoinCost(tc.price, tc.qty); got != tc.want {
			t.Fatalf("price=%v qty=%v got=%d want=%d", tc.price, tc.qty, got, tc.want)
		}
	}
}

func TestBuyThenSellSamePriceIsBalanceNeutral(t *testing.T) {
	price := 123.45
	qty := 2.5
	if CoinCost(price, qty) != CoinCost(price, qty) {
		t.Fatal("cost must be deterministic")
	}
	debit := CoinCost(price, qty)
	credit := CoinCost(price, qty)
	if debit-credit != 0 {
		t.Fatalf("round trip moved %d coins", debit-credit)
	}
}

func TestTradeCostRejectsZeroCoinOrders(t *testing.T) {
	tests := []struct {
		price   float64
		qty     float64
		want    int64
		wantErr bool
	}{
		{price: 100, qty: 1, want: 100},
		{price: 0.45, qty: 10, want: 5},
		{price: 0.08, qty: 3, wantErr: true},
		{price: 0.08, qty: 6, wantErr: true},
		{price: 0.08, qty: 7, want: 1},
	}
	for _, tc := range tests {
		got, err := tradeCost(tc.price, tc.qty)
		if tc.wantErr {
			if !errors.Is(err, ErrInvalidAmount) {
				t.Fatalf("price=%v qty=%v err=%v, want ErrInvalidAmount", tc.price, tc.qty, err)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Fatalf("price=%v qty=%v got=%d err=%v want=%d", tc.price, tc.qty, got, err, tc.want)
		}
	}
}

func TestCooldownRemaining(t *testing.T) {
	now := time.Date(2026, 2, 1, 12, 0, 0, 0, time.Local)
	tests := []struct {
		name       string
		lastReward string
		want       time.Duration
	}{
		{name: "never granted", lastReward: "", want: 0},
		{name: "unparseable", lastReward: "not-a-time", want: 0},
		{name: "just granted", lastReward: "2026-02-01 12:00:00", want: RewardCooldown},
		{name: "half elapsed", lastReward: "2026-02-01 11:30:00", want: 30 * time.Minute},
		{name: "exactly elapsed", lastReward: "2026-02-01 11:00:00", want: 0},
		{name: "long elapsed", lastReward: "2026-01-01 09:00:00", want: 0},
	}
	for _, tc := range tests {
		if got := cooldownRemaining(tc.lastReward, now); got != tc.want {
			t.Fatalf("%s: got %v want %v", tc.name, got, tc.want)
		}
	}
}
