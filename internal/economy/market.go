package economy

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
)

type catalogEntry struct {
	Name        string
	Symbol      string
	Price       float64
	Volatility  float64
	Description string
}

var defaultCatalog = []catalogEntry{
	{"Bitcoin", "BTC", 45000.0, 0.05, "The first and best known cryptocurrency"},
	{"Ethereum", "ETH", 2800.0, 0.08, "Smart contract platform"},
	{"Binance Coin", "BNB", 320.0, 0.06, "Native token of the Binance exchange"},
	{"Cardano", "ADA", 0.45, 0.12, "Third generation blockchain platform"},
	{"Solana", "SOL", 95.0, 0.15, "High throughput blockchain platform"},
	{"Dogecoin", "DOGE", 0.08, 0.20, "Meme coin that started as a joke"},
	{"Polkadot", "DOT", 6.50, 0.10, "Multichain platform for Web3"},
	{"Avalanche", "AVAX", 32.0, 0.13, "Platform for decentralized applications"},
	{"Chainlink", "LINK", 14.0, 0.09, "Decentralized oracle network"},
	{"Polygon", "MATIC", 0.75, 0.11, "Ethereum scaling solution"},
}

const instrumentColumns = `id, name, symbol, current_price, volatility, description, created_at`

// SeedCatalog inserts the default instrument set. Idempotent: symbols
// already present are skipped, each new instrument gets its initial
// history entry.
func (s *Service) SeedCatalog(ctx context.Context) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	now := nowString()
	for _, c := range defaultCatalog {
		var id int64
		err := tx.QueryRow(ctx, `
			INSERT INTO instruments (name, symbol, current_price, volatility, description, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (symbol) DO NOTHING
			RETURNING id
		`, c.Name, c.Symbol, c.Price, c.Volatility, c.Description, now).Scan(&id)
		if err == pgx.ErrNoRows {
			continue
		}
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO price_history (instrument_id, price, recorded_at)
			VALUES ($1, $2, $3)
		`, id, c.Price, now); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// Tick advances every instrument price by a uniform draw in
// [-volatility, +volatility] and appends a history entry, all in one
// transaction. A command reading a price concurrently sees the old or
// the new value, never a torn write.
func (s *Service) Tick(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	rows, err := tx.Query(ctx, `
		SELECT id, current_price, volatility
		FROM instruments
		FOR UPDATE
	`)
	if err != nil {
		return err
	}
	type row struct {
		id         int64
		price      float64
		volatility float64
	}
	var instruments []row
	for rows.Next() {
		var r row
		if err := rows.Scan(&r.id, &r.price, &r.volatility); err != nil {
			rows.Close()
			return err
		}
		instruments = append(instruments, r)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	now := nowString()
	for _, in := range instruments {
		fraction := (2*s.nextFloat() - 1) * in.volatility
		next := NextPrice(in.price, fraction)
		if _, err := tx.Exec(ctx, `
			UPDATE instruments SET current_price = $1 WHERE id = $2
		`, next, in.id); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO price_history (instrument_id, price, recorded_at)
			VALUES ($1, $2, $3)
		`, in.id, next, now); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// Instruments lists the catalog in name order.
func (s *Service) Instruments(ctx context.Context) ([]Instrument, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+instrumentColumns+`
		FROM instruments
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Instrument
	for rows.Next() {
		var in Instrument
		if err := rows.Scan(&in.ID, &in.Name, &in.Symbol, &in.Price, &in.Volatility, &in.Description, &in.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, in)
	}
	return out, rows.Err()
}

// InstrumentBySymbol matches the stored symbol form; callers uppercase
// user input first.
func (s *Service) InstrumentBySymbol(ctx context.Context, symbol string) (Instrument, error) {
	var in Instrument
	err := s.db.QueryRow(ctx, `
		SELECT `+instrumentColumns+`
		FROM instruments
		WHERE symbol = $1
	`, symbol).Scan(&in.ID, &in.Name, &in.Symbol, &in.Price, &in.Volatility, &in.Description, &in.CreatedAt)
	if err == pgx.ErrNoRows {
		return Instrument{}, ErrInstrumentNotFound
	}
	return in, err
}

func (s *Service) InstrumentByName(ctx context.Context, name string) (Instrument, error) {
	var in Instrument
	err := s.db.QueryRow(ctx, `
		SELECT `+instrumentColumns+`
		FROM instruments
		WHERE name = $1
	`, name).Scan(&in.ID, &in.Name, &in.Symbol, &in.Price, &in.Volatility, &in.Description, &in.CreatedAt)
	if err == pgx.ErrNoRows {
		return Instrument{}, ErrInstrumentNotFound
	}
	return in, err
}

// FindInstrument resolves a free-form query as a symbol first, then as
// a name.
func (s *Service) FindInstrument(ctx context.Context, query string) (Instrument, error) {
	query = strings.TrimSpace(query)
	in, err := s.InstrumentBySymbol(ctx, strings.ToUpper(query))
	if err != ErrInstrumentNotFound {
		return in, err
	}
	return s.InstrumentByName(ctx, query)
}

// History returns the most recent limit points for a symbol, newest
// first, plus the total number of recorded entries.
func (s *Service) History(ctx context.Context, symbol string, limit int) (HistoryPage, error) {
	in, err := s.InstrumentBySymbol(ctx, symbol)
	if err != nil {
		return HistoryPage{}, err
	}
	page := HistoryPage{Symbol: in.Symbol}
	if err := s.db.QueryRow(ctx, `
		SELECT COUNT(1) FROM price_history WHERE instrument_id = $1
	`, in.ID).Scan(&page.Total); err != nil {
		return page, err
	}
	rows, err := s.db.Query(ctx, `
		SELECT price, recorded_at
		FROM price_history
		WHERE instrument_id = $1
		ORDER BY recorded_at DESC, id DESC
		LIMIT $2
	`, in.ID, limit)
	if err != nil {
		return page, err
	}
	defer rows.Close()
	for rows.Next() {
		var p PricePoint
		if err := rows.Scan(&p.Price, &p.At); err != nil {
			return page, err
		}
		page.Points = append(page.Points, p)
	}
	return page, rows.Err()
}
