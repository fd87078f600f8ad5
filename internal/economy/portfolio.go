package economy

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// Quantities are float shares; a residue this small after a sell counts
// as fully closed.
const quantityEpsilon = 1e-9

// BuyCrypto purchases qty of an instrument at the current market price.
// The coin debit and the holding upsert commit together.
func (s *Service) BuyCrypto(ctx context.Context, accountID int64, symbol string, qty float64) (TradeResult, error) {
	var out TradeResult
	if qty <= 0 {
		return out, ErrInvalidAmount
	}
	err := s.withSerializableTx(ctx, func(tx pgx.Tx) error {
		in, err := lockInstrument(ctx, tx, symbol)
		if err != nil {
			return err
		}
		acct, err := lockAccount(ctx, tx, accountID)
		if err != nil {
			return err
		}
		cost, err := tradeCost(in.Price, qty)
		if err != nil {
			return err
		}
		if cost > acct.Coins {
			return ErrInsufficientFunds
		}
		if err := upsertHolding(ctx, tx, accountID, in.ID, qty, in.Price); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `
			UPDATE accounts SET coins = coins - $1 WHERE id = $2
		`, cost, accountID); err != nil {
			return err
		}
		out = TradeResult{
			Symbol:   in.Symbol,
			Quantity: qty,
			Price:    in.Price,
			Coins:    cost,
			Balance:  acct.Coins - cost,
		}
		return appendCoinLedger(ctx, tx, accountID, "crypto_buy", -cost)
	})
	return out, err
}

// SellCrypto sells qty of a held instrument at the current market
// price. The holding is deleted when it reaches zero; realized gain or
// loss is implicit, never stored.
func (s *Service) SellCrypto(ctx context.Context, accountID int64, symbol string, qty float64) (TradeResult, error) {
	var out TradeResult
	if qty <= 0 {
		return out, ErrInvalidAmount
	}
	err := s.withSerializableTx(ctx, func(tx pgx.Tx) error {
		in, err := lockInstrument(ctx, tx, symbol)
		if err != nil {
			return err
		}
		acct, err := lockAccount(ctx, tx, accountID)
		if err != nil {
			return err
		}
		var held float64
		err = tx.QueryRow(ctx, `
			SELECT quantity
			FROM holdings
			WHERE account_id = $1 AND instrument_id = $2
			FOR UPDATE
		`, accountID, in.ID).Scan(&held)
		if err == pgx.ErrNoRows {
			return ErrInsufficientHoldings
		}
		if err != nil {
			return err
		}
		if held < qty {
			return ErrInsufficientHoldings
		}
		remaining := held - qty
		if remaining <= quantityEpsilon {
			if _, err := tx.Exec(ctx, `
				DELETE FROM holdings
				WHERE account_id = $1 AND instrument_id = $2
			`, accountID, in.ID); err != nil {
				return err
			}
		} else {
			if _, err := tx.Exec(ctx, `
				UPDATE holdings SET quantity = $1
				WHERE account_id = $2 AND instrument_id = $3
			`, remaining, accountID, in.ID); err != nil {
				return err
			}
		}
		proceeds := CoinCost(in.Price, qty)
		if _, err := tx.Exec(ctx, `
			UPDATE accounts SET coins = coins + $1 WHERE id = $2
		`, proceeds, accountID); err != nil {
			return err
		}
		out = TradeResult{
			Symbol:   in.Symbol,
			Quantity: qty,
			Price:    in.Price,
			Coins:    proceeds,
			Balance:  acct.Coins + proceeds,
		}
		return appendCoinLedger(ctx, tx, accountID, "crypto_sell", proceeds)
	})
	return out, err
}

// Portfolio lists an account's holdings marked to market.
func (s *Service) Portfolio(ctx context.Context, accountID int64) (PortfolioView, error) {
	var out PortfolioView
	rows, err := s.db.Query(ctx, `
		SELECT i.symbol, i.name, h.quantity, h.avg_buy_price, i.current_price
		FROM holdings h
		JOIN instruments i ON i.id = h.instrument_id
		WHERE h.account_id = $1
		ORDER BY i.symbol
	`, accountID)
	if err != nil {
		return out, err
	}
	defer rows.Close()
	for rows.Next() {
		var h HoldingView
		if err := rows.Scan(&h.Symbol, &h.Name, &h.Quantity, &h.AvgBuyPrice, &h.CurrentPrice); err != nil {
			return out, err
		}
		out.TotalValue += h.Value()
		out.Holdings = append(out.Holdings, h)
	}
	return out, rows.Err()
}

// PortfolioValue is the mark-to-market sum over an account's holdings.
func (s *Service) PortfolioValue(ctx context.Context, accountID int64) (float64, error) {
	var total float64
	err := s.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(h.quantity * i.current_price), 0)
		FROM holdings h
		JOIN instruments i ON i.id = h.instrument_id
		WHERE h.account_id = $1
	`, accountID).Scan(&total)
	return total, err
}

func lockInstrument(ctx context.Context, tx pgx.Tx, symbol string) (Instrument, error) {
	var in Instrument
	err := tx.QueryRow(ctx, `
		SELECT `+instrumentColumns+`
		FROM instruments
		WHERE symbol = $1
		FOR UPDATE
	`, symbol).Scan(&in.ID, &in.Name, &in.Symbol, &in.Price, &in.Volatility, &in.Description, &in.CreatedAt)
	if err == pgx.ErrNoRows {
		return Instrument{}, ErrInstrumentNotFound
	}
	return in, err
}

func upsertHolding(ctx context.Context, tx pgx.Tx, accountID, instrumentID int64, qty, price float64) error {
	var oldQty, oldAvg float64
	err := tx.QueryRow(ctx, `
		SELECT quantity, avg_buy_price
		FROM holdings
		WHERE account_id = $1 AND instrument_id = $2
		FOR UPDATE
	`, accountID, instrumentID).Scan(&oldQty, &oldAvg)
	if err != nil && err != pgx.ErrNoRows {
		return err
	}
	if err == pgx.ErrNoRows {
		_, err = tx.Exec(ctx, `
			INSERT INTO holdings (account_id, instrument_id, quantity, avg_buy_price)
			VALUES ($1, $2, $3, $4)
		`, accountID, instrumentID, qty, price)
		return err
	}
	_, err = tx.Exec(ctx, `
		UPDATE holdings
		SET quantity = $1, avg_buy_price = $2
		WHERE account_id = $3 AND instrument_id = $4
	`, oldQty+qty, AverageBuyPrice(oldQty, oldAvg, qty, price), accountID, instrumentID)
	return err
}
