package economy

type Account struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Coins      int64  `json:"coins"`
	LastReward string `json:"last_reward,omitempty"`
	BanUntil   string `json:"ban_until,omitempty"`
	BanReason  string `json:"ban_reason,omitempty"`
}

type Instrument struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Symbol      string  `json:"symbol"`
	Price       float64 `json:"price"`
	Volatility  float64 `json:"volatility"`
	Description string  `json:"description,omitempty"`
	CreatedAt   string  `json:"created_at"`
}

type PricePoint struct {
	Price float64 `json:"price"`
	At    string  `json:"at"`
}

// HistoryPage is a bounded, newest-first slice of an instrument's price
// series plus the total number of recorded points.
type HistoryPage struct {
	Symbol string       `json:"symbol"`
	Points []PricePoint `json:"points"`
	Total  int64        `json:"total"`
}

// Omitted is the count of older entries not included in the page.
func (p HistoryPage) Omitted() int64 {
	if n := p.Total - int64(len(p.Points)); n > 0 {
		return n
	}
	return 0
}

type HoldingView struct {
	Symbol       string  `json:"symbol"`
	Name         string  `json:"name"`
	Quantity     float64 `json:"quantity"`
	AvgBuyPrice  float64 `json:"avg_buy_price"`
	CurrentPrice float64 `json:"current_price"`
}

// Value is the holding marked to the current market price.
func (h HoldingView) Value() float64 {
	return h.Quantity * h.CurrentPrice
}

// Unrealized is the display-only profit or loss against cost basis.
func (h HoldingView) Unrealized() float64 {
	return (h.CurrentPrice - h.AvgBuyPrice) * h.Quantity
}

type PortfolioView struct {
	Holdings   []HoldingView `json:"holdings"`
	TotalValue float64       `json:"total_value"`
}

type LeaderboardRow struct {
	Rank  int64  `json:"rank"`
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Coins int64  `json:"coins"`
}

type RewardResult struct {
	Amount  int64 `json:"amount"`
	Balance int64 `json:"balance"`
}

type WagerResult struct {
	Won     bool  `json:"won"`
	Bet     int64 `json:"bet"`
	Balance int64 `json:"balance"`
}

type TradeResult struct {
	Symbol   string  `json:"symbol"`
	Quantity float64 `json:"quantity"`
	Price    float64 `json:"price"`
	Coins    int64   `json:"coins"`
	Balance  int64   `json:"balance"`
}
