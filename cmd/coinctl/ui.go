package main

import (
	"fmt"

	"coinbot/internal/economy"

	"github.com/fatih/color"
)

var (
	accent  = color.New(color.FgCyan, color.Bold)
	success = color.New(color.FgGreen, color.Bold)
	danger  = color.New(color.FgRed, color.Bold)
	neutral = color.New(color.FgHiWhite)
)

func printSuccess(msg string) {
	success.Println(msg)
}

func printTop(rows []economy.LeaderboardRow) {
	if len(rows) == 0 {
		neutral.Println("Nobody is registered yet.")
		return
	}
	accent.Println("Top players")
	for _, r := range rows {
		fmt.Printf("%3d. %-20s %d coins\n", r.Rank, r.Name, r.Coins)
	}
}

func printInstruments(instruments []economy.Instrument) {
	if len(instruments) == 0 {
		neutral.Println("The market is empty.")
		return
	}
	accent.Printf("%-10s %-14s %12s %6s\n", "SYMBOL", "NAME", "PRICE", "VOL")
	for _, in := range instruments {
		fmt.Printf("%-10s %-14s %12.2f %5.0f%%\n", in.Symbol, in.Name, in.Price, in.Volatility*100)
	}
}

func printChart(in economy.Instrument, page economy.HistoryPage) {
	accent.Printf("%s (%s) — current %.2f\n", in.Name, in.Symbol, in.Price)
	if len(page.Points) == 0 {
		neutral.Println("No price history yet.")
		return
	}
	for _, p := range page.Points {
		fmt.Printf("%s  %12.2f\n", p.At, p.Price)
	}
	if omitted := page.Omitted(); omitted > 0 {
		neutral.Printf("… and %d older entries\n", omitted)
	}
}

func printAccount(acct economy.Account) {
	accent.Printf("%s (id %d)\n", acct.Name, acct.ID)
	fmt.Printf("coins:       %d\n", acct.Coins)
	if acct.LastReward != "" {
		fmt.Printf("last reward: %s\n", acct.LastReward)
	}
	if acct.BanUntil != "" {
		danger.Printf("banned until %s (%s)\n", acct.BanUntil, acct.BanReason)
	}
}

func printPortfolio(p economy.PortfolioView) {
	if len(p.Holdings) == 0 {
		neutral.Println("No holdings.")
		return
	}
	accent.Printf("%-10s %14s %12s %12s %12s\n", "SYMBOL", "QTY", "AVG", "PRICE", "P/L")
	for _, h := range p.Holdings {
		fmt.Printf("%-10s %14.4f %12.2f %12.2f %+12.2f\n",
			h.Symbol, h.Quantity, h.AvgBuyPrice, h.CurrentPrice, h.Unrealized())
	}
	fmt.Printf("total value: %.2f coins\n", p.TotalValue)
}
