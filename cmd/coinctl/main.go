package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	cl "coinbot/internal/cli"

	"github.com/spf13/cobra"
)

func main() {
	apiBase := strings.TrimSpace(os.Getenv("COINBOT_API_URL"))
	if apiBase == "" {
		apiBase = "http://localhost:8080"
	}

	root := &cobra.Command{
		Use:          "coinctl",
		Short:        "Operator tool for the coinbot economy",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&apiBase, "api", apiBase, "base URL of the coinbot API")

	root.AddCommand(
		newTopCmd(&apiBase),
		newInstrumentsCmd(&apiBase),
		newChartCmd(&apiBase),
		newAccountCmd(&apiBase),
		newPortfolioCmd(&apiBase),
		newReloadAdminsCmd(&apiBase),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newClient(apiBase *string) *cl.Client {
	return cl.NewClient(strings.TrimRight(strings.TrimSpace(*apiBase), "/"))
}

func cmdContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), 30*time.Second)
}

func newTopCmd(apiBase *string) *cobra.Command {
	var limit int
	c := &cobra.Command{
		Use:   "top",
		Short: "Show the richest players",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := cmdContext(cmd)
			defer cancel()
			rows, err := newClient(apiBase).Top(ctx, limit)
			if err != nil {
				return err
			}
			printTop(rows)
			return nil
		},
	}
	c.Flags().IntVar(&limit, "limit", 10, "number of rows")
	return c
}

func newInstrumentsCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "instruments",
		Short: "List cryptocurrencies and prices",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := cmdContext(cmd)
			defer cancel()
			out, err := newClient(apiBase).Instruments(ctx)
			if err != nil {
				return err
			}
			printInstruments(out)
			return nil
		},
	}
}

func newChartCmd(apiBase *string) *cobra.Command {
	var limit int
	c := &cobra.Command{
		Use:   "chart <symbol>",
		Short: "Show price history for a cryptocurrency",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := cmdContext(cmd)
			defer cancel()
			client := newClient(apiBase)
			symbol := strings.ToUpper(args[0])
			in, err := client.Instrument(ctx, symbol)
			if err != nil {
				return err
			}
			page, err := client.History(ctx, symbol, limit)
			if err != nil {
				return err
			}
			printChart(in, page)
			return nil
		},
	}
	c.Flags().IntVar(&limit, "limit", 20, "number of points")
	return c
}

func newAccountCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "account <id>",
		Short: "Show an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("id must be an integer")
			}
			ctx, cancel := cmdContext(cmd)
			defer cancel()
			acct, err := newClient(apiBase).Account(ctx, id)
			if err != nil {
				return err
			}
			printAccount(acct)
			return nil
		},
	}
}

func newPortfolioCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "portfolio <id>",
		Short: "Show an account's crypto holdings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("id must be an integer")
			}
			ctx, cancel := cmdContext(cmd)
			defer cancel()
			out, err := newClient(apiBase).Portfolio(ctx, id)
			if err != nil {
				return err
			}
			printPortfolio(out)
			return nil
		},
	}
}

func newReloadAdminsCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "reload-admins",
		Short: "Reload the admin allowlist from disk",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := cmdContext(cmd)
			defer cancel()
			count, err := newClient(apiBase).ReloadAdmins(ctx)
			if err != nil {
				return err
			}
			printSuccess(fmt.Sprintf("Admin list reloaded, %d entries.", count))
			return nil
		},
	}
}
