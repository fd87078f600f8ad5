package gateway

import (
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"coinbot/internal/economy"
)

func testGateway() *Gateway {
	return New(nil, nil, slog.Default(), 20, 10)
}

func TestRenderErrorSentinels(t *testing.T) {
	g := testGateway()
	tests := []struct {
		err  error
		want string
	}{
		{err: economy.ErrNotRegistered, want: "Use /start first."},
		{err: economy.ErrTargetNotFound, want: "User not found."},
		{err: economy.ErrSelfTransfer, want: "❌ You cannot send coins to yourself."},
		{err: economy.ErrInsufficientFunds, want: "❌ Not enough coins."},
		{err: usage("usage: /pay <user> <coins>"), want: "usage: /pay <user> <coins>"},
	}
	for _, tc := range tests {
		if got := g.renderError("pay", tc.err); got != tc.want {
			t.Fatalf("err=%v got=%q want=%q", tc.err, got, tc.want)
		}
	}
}

func TestRenderErrorBanned(t *testing.T) {
	g := testGateway()
	got := g.renderError("balance", &economy.BannedError{Until: economy.BanForever, Reason: "spam"})
	if !strings.Contains(got, "forever") || !strings.Contains(got, "spam") {
		t.Fatalf("got %q", got)
	}
	got = g.renderError("balance", &economy.BannedError{Until: "2026-01-01 00:00:00", Reason: "spam"})
	if !strings.Contains(got, "2026-01-01 00:00:00") {
		t.Fatalf("got %q", got)
	}
}

func TestRenderErrorCooldown(t *testing.T) {
	g := testGateway()
	got := g.renderError("reward", &economy.CooldownError{Remaining: 20 * time.Minute})
	if !strings.Contains(got, "20 minutes") {
		t.Fatalf("got %q", got)
	}
	got = g.renderError("reward", &economy.CooldownError{Remaining: 10 * time.Second})
	if !strings.Contains(got, "1 minutes") {
		t.Fatalf("sub-minute remainder should round up, got %q", got)
	}
}

func TestRenderErrorUnknown(t *testing.T) {
	g := testGateway()
	got := g.renderError("pay", errors.New("connection refused"))
	if strings.Contains(got, "connection refused") {
		t.Fatalf("internal error leaked to chat: %q", got)
	}
}

func TestRenderTop(t *testing.T) {
	if got := renderTop(nil); got != "Nobody is registered yet." {
		t.Fatalf("got %q", got)
	}
	got := renderTop([]economy.LeaderboardRow{
		{Rank: 1, Name: "alice", Coins: 900},
		{Rank: 2, Name: "bob", Coins: 100},
	})
	if !strings.Contains(got, "1. alice — 900 coins") || !strings.Contains(got, "2. bob — 100 coins") {
		t.Fatalf("got %q", got)
	}
}

func TestRenderPortfolio(t *testing.T) {
	empty := renderPortfolio(economy.PortfolioView{})
	if !strings.Contains(empty, "empty") {
		t.Fatalf("got %q", empty)
	}
	got := renderPortfolio(economy.PortfolioView{
		Holdings: []economy.HoldingView{
			{Symbol: "BTC", Name: "Bitcoin", Quantity: 0.5, AvgBuyPrice: 40000, CurrentPrice: 45000},
		},
		TotalValue: 22500,
	})
	if !strings.Contains(got, "BTC") || !strings.Contains(got, "+2500.00") {
		t.Fatalf("got %q", got)
	}
	if !strings.Contains(got, "Total value: 22500.00 coins") {
		t.Fatalf("got %q", got)
	}
}

func TestRenderChart(t *testing.T) {
	in := economy.Instrument{Name: "Bitcoin", Symbol: "BTC", Price: 45100}
	got := renderChart(in, economy.HistoryPage{Symbol: "BTC"})
	if !strings.Contains(got, "No price history yet.") {
		t.Fatalf("got %q", got)
	}
	page := economy.HistoryPage{
		Symbol: "BTC",
		Points: []economy.PricePoint{
			{Price: 45100, At: "2026-02-01 11:00:00"},
			{Price: 45000, At: "2026-02-01 10:00:00"},
		},
		Total: 5,
	}
	got = renderChart(in, page)
	if !strings.Contains(got, "45100.00") || !strings.Contains(got, "and 3 older entries") {
		t.Fatalf("got %q", got)
	}
}

func TestRenderChartIndex(t *testing.T) {
	got := renderChartIndex([]economy.Instrument{
		{Name: "Bitcoin", Symbol: "BTC", Price: 45000, Volatility: 0.05},
		{Name: "Dogecoin", Symbol: "DOGE", Price: 0.08, Volatility: 0.20},
	})
	if !strings.Contains(got, "BTC") || !strings.Contains(got, "DOGE") {
		t.Fatalf("got %q", got)
	}
	if !strings.Contains(got, "/crypto_chart <symbol or name>") {
		t.Fatalf("missing usage hint in %q", got)
	}
}

func TestRenderHelp(t *testing.T) {
	player := renderHelp(false)
	if strings.Contains(player, "/addcoins") {
		t.Fatalf("admin commands shown to player: %q", player)
	}
	admin := renderHelp(true)
	for _, cmd := range []string{"/addcoins", "/removecoins", "/ban", "/unban"} {
		if !strings.Contains(admin, cmd) {
			t.Fatalf("missing %s in %q", cmd, admin)
		}
	}
}
