package economy

import (
	"errors"
	"fmt"
	"math"
	"time"
)

const (
	// TimeLayout is the stored form of every timestamp. It sorts
	// lexicographically in chronological order.
	TimeLayout = "2006-01-02 15:04:05"

	// BanForever is the ban_until sentinel for a permanent ban.
	BanForever = "forever"

	RewardCooldown = time.Hour
	MinReward      = int64(700)

	// MinPrice is the floor an instrument price can never drop below.
	MinPrice = 0.01
)

var (
	ErrNotRegistered        = errors.New("account not registered")
	ErrTargetNotFound       = errors.New("target account not found")
	ErrInvalidBet           = errors.New("invalid bet")
	ErrInvalidAmount        = errors.New("invalid amount")
	ErrSelfTransfer         = errors.New("cannot transfer to yourself")
	ErrInsufficientFunds    = errors.New("insufficient funds")
	ErrInsufficientHoldings = errors.New("insufficient holdings")
	ErrInstrumentNotFound   = errors.New("instrument not found")
	ErrTxConflict           = errors.New("transaction conflict, retry")
)

// BannedError reports that the acting account is banned. Until is the
// stored display form, BanForever for a permanent ban.
type BannedError struct {
	Until  string
	Reason string
}

func (e *BannedError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("banned until %s", e.Until)
	}
	return fmt.Sprintf("banned until %s: %s", e.Until, e.Reason)
}

// CooldownError reports that the reward cooldown has not elapsed yet.
type CooldownError struct {
	Remaining time.Duration
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("reward cooldown active, %s remaining", e.Remaining.Truncate(time.Second))
}

// RewardAmount is the periodic reward for an account holding balance
// coins: a tenth of the balance, never less than MinReward.
func RewardAmount(balance int64) int64 {
	if r := balance / 10; r > MinReward {
		return r
	}
	return MinReward
}

// NextPrice advances a price by a drawn fraction, floors it at MinPrice
// and rounds to two decimal places.
func NextPrice(price, fraction float64) float64 {
	next := price * (1 + fraction)
	if next < MinPrice {
		return MinPrice
	}
	return math.Round(next*100) / 100
}

// AverageBuyPrice folds a new purchase into a holding's cost basis,
// weighted by quantity.
func AverageBuyPrice(oldQty, oldAvg, qty, price float64) float64 {
	return (oldQty*oldAvg + qty*price) / (oldQty + qty)
}

// CoinCost converts a trade notional to whole coins.
func CoinCost(price, qty float64) int64 {
	return int64(math.Round(price * qty))
}

// tradeCost is CoinCost with the minimum-order rule: a buy too small to
// cost a single whole coin is rejected rather than debited as zero.
func tradeCost(price, qty float64) (int64, error) {
	cost := CoinCost(price, qty)
	if cost == 0 {
		return 0, ErrInvalidAmount
	}
	return cost, nil
}

// cooldownRemaining is the time left on the reward cooldown given the
// stored last-grant timestamp. Empty or unparseable timestamps gate
// nothing, so the first grant after registration always succeeds.
func cooldownRemaining(lastReward string, now time.Time) time.Duration {
	if lastReward == "" {
		return 0
	}
	last, err := time.ParseInLocation(TimeLayout, lastReward, time.Local)
	if err != nil {
		return 0
	}
	if remaining := RewardCooldown - now.Sub(last); remaining > 0 {
		return remaining
	}
	return 0
}
