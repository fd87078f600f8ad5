// Package metrics provides Prometheus instrumentation for the bot.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// CommandsTotal counts chat commands by name and outcome.
	CommandsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "coinbot_commands_total",
		Help: "Total chat commands handled",
	}, []string{"command", "status"})

	// MarketTicksTotal counts completed price ticks.
	MarketTicksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "coinbot_market_ticks_total",
		Help: "Completed market price ticks",
	})

	// MarketTickErrors counts ticks that failed and were skipped.
	MarketTickErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "coinbot_market_tick_errors_total",
		Help: "Market ticks that failed",
	})

	// WagersTotal counts resolved casino wagers by outcome.
	WagersTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "coinbot_wagers_total",
		Help: "Resolved casino wagers",
	}, []string{"outcome"})

	// TransferredCoins accumulates coins moved by peer transfers.
	TransferredCoins = promauto.NewCounter(prometheus.CounterOpts{
		Name: "coinbot_transferred_coins_total",
		Help: "Coins moved by peer-to-peer transfers",
	})
)

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
