package gateway

import (
	"errors"
	"fmt"
	"strings"

	"coinbot/internal/economy"
)

func (g *Gateway) renderError(command string, err error) string {
	var usageErr *usageError
	if errors.As(err, &usageErr) {
		return usageErr.text
	}
	var banned *economy.BannedError
	if errors.As(err, &banned) {
		if banned.Until == economy.BanForever {
			if banned.Reason == "" {
				return "❌ You are banned forever."
			}
			return fmt.Sprintf("❌ You are banned forever.\nReason: %s", banned.Reason)
		}
		return fmt.Sprintf("❌ You are banned until %s\nReason: %s", banned.Until, banned.Reason)
	}
	var cooldown *economy.CooldownError
	if errors.As(err, &cooldown) {
		minutes := int(cooldown.Remaining.Minutes())
		if minutes < 1 {
			minutes = 1
		}
		return fmt.Sprintf("⏳ Wait %d minutes before the next /reward.", minutes)
	}
	switch {
	case errors.Is(err, economy.ErrNotRegistered):
		return "Use /start first."
	case errors.Is(err, economy.ErrTargetNotFound):
		return "User not found."
	case errors.Is(err, economy.ErrInvalidBet):
		return "❌ Invalid bet."
	case errors.Is(err, economy.ErrInvalidAmount):
		return "❌ Amount must be a positive number."
	case errors.Is(err, economy.ErrSelfTransfer):
		return "❌ You cannot send coins to yourself."
	case errors.Is(err, economy.ErrInsufficientFunds):
		return "❌ Not enough coins."
	case errors.Is(err, economy.ErrInsufficientHoldings):
		return "❌ You do not hold that much."
	case errors.Is(err, economy.ErrInstrumentNotFound):
		return "❌ Unknown cryptocurrency. Use /crypto for the list."
	case errors.Is(err, economy.ErrTxConflict):
		return "⏳ Busy right now, try again."
	}
	g.log.Error("command failed", "command", command, "err", err)
	return "⚠️ Something went wrong, try again later."
}

func renderTop(rows []economy.LeaderboardRow) string {
	if len(rows) == 0 {
		return "Nobody is registered yet."
	}
	var b strings.Builder
	b.WriteString("🏆 Top players by balance:\n")
	for _, r := range rows {
		fmt.Fprintf(&b, "%d. %s — %d coins\n", r.Rank, r.Name, r.Coins)
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderInstruments(instruments []economy.Instrument) string {
	if len(instruments) == 0 {
		return "The market is empty."
	}
	var b strings.Builder
	b.WriteString("📈 Market:\n")
	for _, in := range instruments {
		fmt.Fprintf(&b, "%s (%s) — %.2f coins, volatility %.0f%%\n",
			in.Name, in.Symbol, in.Price, in.Volatility*100)
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderPortfolio(p economy.PortfolioView) string {
	if len(p.Holdings) == 0 {
		return "Your portfolio is empty. Use /buy_crypto to start."
	}
	var b strings.Builder
	b.WriteString("💼 Your portfolio:\n")
	for _, h := range p.Holdings {
		fmt.Fprintf(&b, "%s: %s @ avg %.2f — worth %.2f (P/L %+.2f)\n",
			h.Symbol, formatQuantity(h.Quantity), h.AvgBuyPrice, h.Value(), h.Unrealized())
	}
	fmt.Fprintf(&b, "Total value: %.2f coins", p.TotalValue)
	return b.String()
}

// renderChartIndex answers a bare /crypto_chart: the market list plus a
// pointer at the per-symbol form.
func renderChartIndex(instruments []economy.Instrument) string {
	return renderInstruments(instruments) + "\n\nUse /crypto_chart <symbol or name> for price history."
}

func renderChart(in economy.Instrument, page economy.HistoryPage) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📊 %s (%s) — current %.2f\n", in.Name, in.Symbol, in.Price)
	if len(page.Points) == 0 {
		b.WriteString("No price history yet.")
		return b.String()
	}
	for _, p := range page.Points {
		fmt.Fprintf(&b, "%s  %.2f\n", p.At, p.Price)
	}
	if omitted := page.Omitted(); omitted > 0 {
		fmt.Fprintf(&b, "… and %d older entries", omitted)
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderHelp(admin bool) string {
	var b strings.Builder
	b.WriteString("📜 Commands\n\n")
	b.WriteString("👤 Player:\n")
	b.WriteString("/start — register\n")
	b.WriteString("/reward — hourly reward\n")
	b.WriteString("/balance — show balance\n")
	b.WriteString("/casino <bet> — 50/50 wager\n")
	b.WriteString("/pay <user> <coins> — send coins\n")
	b.WriteString("/top — richest players\n")
	b.WriteString("/crypto — market list\n")
	b.WriteString("/buy_crypto <symbol> <amount> — buy\n")
	b.WriteString("/sell_crypto <symbol> <amount> — sell\n")
	b.WriteString("/portfolio — holdings and P/L\n")
	b.WriteString("/crypto_chart [symbol] — price history\n")
	b.WriteString("/help — this list")
	if admin {
		b.WriteString("\n\n🛠 Admin:\n")
		b.WriteString("/addcoins <user> <coins>\n")
		b.WriteString("/removecoins <user> <coins>\n")
		b.WriteString("/ban <user> <minutes|forever> [reason]\n")
		b.WriteString("/unban <user> <reason>")
	}
	return b.String()
}
