package gateway

import (
	"context"
	"fmt"
	"strings"

	"coinbot/internal/economy"
	"coinbot/internal/metrics"
)

// usageError carries the correct invocation for a malformed command.
type usageError struct {
	text string
}

func (e *usageError) Error() string { return e.text }

func usage(text string) error { return &usageError{text: text} }

func (g *Gateway) cmdStart(ctx context.Context, sender Sender, _ []string) (string, error) {
	created, err := g.svc.Register(ctx, sender.ID, sender.Name)
	if err != nil {
		return "", err
	}
	if created {
		return fmt.Sprintf("✅ Hi %s! Your account is ready.", sender.Name), nil
	}
	return fmt.Sprintf("👋 Hi again %s! You are already registered.", sender.Name), nil
}

func (g *Gateway) cmdReward(ctx context.Context, sender Sender, _ []string) (string, error) {
	out, err := g.svc.GrantReward(ctx, sender.ID)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("💰 You received %d coins! New balance: %d", out.Amount, out.Balance), nil
}

func (g *Gateway) cmdCasino(ctx context.Context, sender Sender, args []string) (string, error) {
	if len(args) != 1 {
		return "", usage("Usage: /casino <bet>")
	}
	bet, err := parseCoins(args[0])
	if err != nil {
		return "", economy.ErrInvalidBet
	}
	out, err := g.svc.Wager(ctx, sender.ID, bet)
	if err != nil {
		return "", err
	}
	if out.Won {
		metrics.WagersTotal.WithLabelValues("win").Inc()
		return fmt.Sprintf("🎉 You won %d coins! Balance: %d", out.Bet, out.Balance), nil
	}
	metrics.WagersTotal.WithLabelValues("loss").Inc()
	return fmt.Sprintf("💀 You lost %d coins. Balance: %d", out.Bet, out.Balance), nil
}

func (g *Gateway) cmdPay(ctx context.Context, sender Sender, args []string) (string, error) {
	if len(args) != 2 {
		return "", usage("Usage: /pay <user id or @name> <coins>")
	}
	amount, err := parseCoins(args[1])
	if err != nil {
		return "", economy.ErrInvalidAmount
	}
	recipient, err := g.svc.ResolveTarget(ctx, args[0])
	if err != nil {
		return "", err
	}
	if err := g.svc.Transfer(ctx, sender.ID, recipient.ID, amount); err != nil {
		return "", err
	}
	metrics.TransferredCoins.Add(float64(amount))
	return fmt.Sprintf("✅ Sent %d coins to %s.", amount, recipient.Name), nil
}

func (g *Gateway) cmdTop(ctx context.Context, _ Sender, _ []string) (string, error) {
	rows, err := g.svc.Top(ctx, g.topLimit)
	if err != nil {
		return "", err
	}
	return renderTop(rows), nil
}

func (g *Gateway) cmdBalance(ctx context.Context, sender Sender, _ []string) (string, error) {
	acct, err := g.requireUnbanned(ctx, sender)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("💰 Your balance: %d coins", acct.Coins), nil
}

func (g *Gateway) cmdCrypto(ctx context.Context, _ Sender, _ []string) (string, error) {
	instruments, err := g.svc.Instruments(ctx)
	if err != nil {
		return "", err
	}
	return renderInstruments(instruments), nil
}

func (g *Gateway) cmdBuyCrypto(ctx context.Context, sender Sender, args []string) (string, error) {
	if len(args) != 2 {
		return "", usage("Usage: /buy_crypto <symbol> <amount>")
	}
	qty, err := parseQuantity(args[1])
	if err != nil {
		return "", economy.ErrInvalidAmount
	}
	if _, err := g.requireUnbanned(ctx, sender); err != nil {
		return "", err
	}
	out, err := g.svc.BuyCrypto(ctx, sender.ID, strings.ToUpper(args[0]), qty)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("🪙 Bought %s %s at %.2f for %d coins. Balance: %d",
		formatQuantity(out.Quantity), out.Symbol, out.Price, out.Coins, out.Balance), nil
}

func (g *Gateway) cmdSellCrypto(ctx context.Context, sender Sender, args []string) (string, error) {
	if len(args) != 2 {
		return "", usage("Usage: /sell_crypto <symbol> <amount>")
	}
	qty, err := parseQuantity(args[1])
	if err != nil {
		return "", economy.ErrInvalidAmount
	}
	if _, err := g.requireUnbanned(ctx, sender); err != nil {
		return "", err
	}
	out, err := g.svc.SellCrypto(ctx, sender.ID, strings.ToUpper(args[0]), qty)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("🪙 Sold %s %s at %.2f for %d coins. Balance: %d",
		formatQuantity(out.Quantity), out.Symbol, out.Price, out.Coins, out.Balance), nil
}

func (g *Gateway) cmdPortfolio(ctx context.Context, sender Sender, _ []string) (string, error) {
	if _, err := g.requireUnbanned(ctx, sender); err != nil {
		return "", err
	}
	out, err := g.svc.Portfolio(ctx, sender.ID)
	if err != nil {
		return "", err
	}
	return renderPortfolio(out), nil
}

func (g *Gateway) cmdCryptoChart(ctx context.Context, _ Sender, args []string) (string, error) {
	if len(args) == 0 {
		instruments, err := g.svc.Instruments(ctx)
		if err != nil {
			return "", err
		}
		return renderChartIndex(instruments), nil
	}
	in, err := g.svc.FindInstrument(ctx, strings.Join(args, " "))
	if err != nil {
		return "", err
	}
	page, err := g.svc.History(ctx, in.Symbol, g.chartPoints)
	if err != nil {
		return "", err
	}
	return renderChart(in, page), nil
}

func (g *Gateway) cmdHelp(_ context.Context, sender Sender, _ []string) (string, error) {
	return renderHelp(g.isAdmin(sender)), nil
}

func (g *Gateway) cmdAddCoins(ctx context.Context, sender Sender, args []string) (string, error) {
	return g.adminAdjust(ctx, sender, args, "Usage: /addcoins <user id or @name> <coins>", +1)
}

func (g *Gateway) cmdRemoveCoins(ctx context.Context, sender Sender, args []string) (string, error) {
	return g.adminAdjust(ctx, sender, args, "Usage: /removecoins <user id or @name> <coins>", -1)
}

func (g *Gateway) adminAdjust(ctx context.Context, sender Sender, args []string, usageText string, sign int64) (string, error) {
	if !g.isAdmin(sender) {
		return "❌ Admins only.", nil
	}
	if len(args) != 2 {
		return "", usage(usageText)
	}
	amount, err := parseCoins(args[1])
	if err != nil {
		return "", economy.ErrInvalidAmount
	}
	target, err := g.svc.ResolveTarget(ctx, args[0])
	if err != nil {
		return "", err
	}
	balance, err := g.svc.AdminAdjust(ctx, target.ID, sign*amount)
	if err != nil {
		return "", err
	}
	if sign > 0 {
		return fmt.Sprintf("✅ Added %d coins to %s. New balance: %d", amount, target.Name, balance), nil
	}
	return fmt.Sprintf("✅ Removed %d coins from %s. New balance: %d", amount, target.Name, balance), nil
}

func (g *Gateway) cmdBan(ctx context.Context, sender Sender, args []string) (string, error) {
	if !g.isAdmin(sender) {
		return "❌ Admins only.", nil
	}
	if len(args) < 2 {
		return "", usage(`Usage: /ban <user id or @name> <minutes or "forever"> [reason]`)
	}
	reason := "No reason given"
	if len(args) > 2 {
		reason = strings.Join(args[2:], " ")
	}
	target, err := g.svc.ResolveTarget(ctx, args[0])
	if err != nil {
		return "", err
	}
	duration := args[1]
	if duration == economy.BanForever {
		if err := g.svc.SetBan(ctx, target.ID, economy.BanForever, reason); err != nil {
			return "", err
		}
		return fmt.Sprintf("✅ %s is banned forever. Reason: %s", target.Name, reason), nil
	}
	minutes, err := parseMinutes(duration)
	if err != nil {
		return "", usage("Ban duration must be minutes or \"forever\".")
	}
	if err := g.svc.BanFor(ctx, target.ID, minutes, reason); err != nil {
		return "", err
	}
	return fmt.Sprintf("✅ %s is banned for %s. Reason: %s", target.Name, duration+" minutes", reason), nil
}

func (g *Gateway) cmdUnban(ctx context.Context, sender Sender, args []string) (string, error) {
	if !g.isAdmin(sender) {
		return "❌ Admins only.", nil
	}
	if len(args) < 2 {
		return "", usage("Usage: /unban <user id or @name> <reason>")
	}
	target, err := g.svc.ResolveTarget(ctx, args[0])
	if err != nil {
		return "", err
	}
	if err := g.svc.ClearBan(ctx, target.ID); err != nil {
		return "", err
	}
	return fmt.Sprintf("✅ %s is unbanned. Reason: %s", target.Name, strings.Join(args[1:], " ")), nil
}
