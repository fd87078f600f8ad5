// Package gateway turns inbound chat messages into engine calls and
// renders the results back as text replies.
package gateway

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"coinbot/internal/adminlist"
	"coinbot/internal/economy"
	"coinbot/internal/metrics"

	"github.com/bwmarrin/discordgo"
)

// Sender identifies the account behind an inbound command.
type Sender struct {
	ID   int64
	Name string
}

type Gateway struct {
	svc         *economy.Service
	admins      *adminlist.List
	log         *slog.Logger
	chartPoints int
	topLimit    int
}

func New(svc *economy.Service, admins *adminlist.List, logger *slog.Logger, chartPoints, topLimit int) *Gateway {
	if logger == nil {
		logger = slog.Default()
	}
	if chartPoints <= 0 {
		chartPoints = 20
	}
	if topLimit <= 0 {
		topLimit = 10
	}
	return &Gateway{
		svc:         svc,
		admins:      admins,
		log:         logger,
		chartPoints: chartPoints,
		topLimit:    topLimit,
	}
}

// Attach registers the message handler on a Discord session.
func (g *Gateway) Attach(s *discordgo.Session) {
	s.AddHandler(g.handleMessage)
	s.Identify.Intents = discordgo.IntentsGuildMessages | discordgo.IntentsDirectMessages | discordgo.IntentMessageContent
}

func (g *Gateway) handleMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}
	id, err := strconv.ParseInt(m.Author.ID, 10, 64)
	if err != nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	reply := g.Dispatch(ctx, Sender{ID: id, Name: m.Author.Username}, m.Content)
	if reply == "" {
		return
	}
	if _, err := s.ChannelMessageSend(m.ChannelID, reply); err != nil {
		g.log.Error("send reply failed", "channel", m.ChannelID, "err", err)
	}
}

// Dispatch parses a whitespace-split command line and runs the matching
// handler. Every domain error is recovered here and rendered as a
// reply; nothing propagates to the transport.
func (g *Gateway) Dispatch(ctx context.Context, sender Sender, content string) string {
	fields := strings.Fields(content)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], "/") {
		return ""
	}
	command := strings.ToLower(strings.TrimPrefix(fields[0], "/"))
	args := fields[1:]

	handler, ok := g.handlers()[command]
	if !ok {
		return ""
	}
	reply, err := handler(ctx, sender, args)
	status := "ok"
	if err != nil {
		status = "error"
		reply = g.renderError(command, err)
	}
	metrics.CommandsTotal.WithLabelValues(command, status).Inc()
	return reply
}

type handlerFunc func(ctx context.Context, sender Sender, args []string) (string, error)

func (g *Gateway) handlers() map[string]handlerFunc {
	return map[string]handlerFunc{
		"start":        g.cmdStart,
		"reward":       g.cmdReward,
		"casino":       g.cmdCasino,
		"pay":          g.cmdPay,
		"top":          g.cmdTop,
		"balance":      g.cmdBalance,
		"crypto":       g.cmdCrypto,
		"buy_crypto":   g.cmdBuyCrypto,
		"sell_crypto":  g.cmdSellCrypto,
		"portfolio":    g.cmdPortfolio,
		"crypto_chart": g.cmdCryptoChart,
		"help":         g.cmdHelp,
		"addcoins":     g.cmdAddCoins,
		"removecoins":  g.cmdRemoveCoins,
		"ban":          g.cmdBan,
		"unban":        g.cmdUnban,
	}
}

// requireUnbanned resolves the sender's account and applies the ban
// gate used by every command that reads or mutates their state.
func (g *Gateway) requireUnbanned(ctx context.Context, sender Sender) (economy.Account, error) {
	acct, err := g.svc.AccountByID(ctx, sender.ID)
	if err != nil {
		return economy.Account{}, err
	}
	if st := economy.EvaluateBan(acct.BanUntil, acct.BanReason, time.Now()); st.Banned {
		return economy.Account{}, &economy.BannedError{Until: st.Until, Reason: st.Reason}
	}
	return acct, nil
}

func (g *Gateway) isAdmin(sender Sender) bool {
	return g.admins != nil && g.admins.IsAdmin(sender.Name)
}
