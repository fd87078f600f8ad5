package economy

import "context"

// Timestamps persist as TEXT in TimeLayout form; ban_until additionally
// admits the literal "forever". The text layout is the durable contract.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS accounts (
		id          BIGINT PRIMARY KEY,
		username    TEXT UNIQUE NOT NULL,
		coins       BIGINT NOT NULL DEFAULT 0 CHECK (coins >= 0),
		last_reward TEXT,
		ban_until   TEXT,
		ban_reason  TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS instruments (
		id            BIGSERIAL PRIMARY KEY,
		name          TEXT UNIQUE NOT NULL,
		symbol        TEXT UNIQUE NOT NULL,
		current_price DOUBLE PRECISION NOT NULL,
		volatility    DOUBLE PRECISION NOT NULL DEFAULT 0.1,
		description   TEXT NOT NULL DEFAULT '',
		created_at    TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS price_history (
		id            BIGSERIAL PRIMARY KEY,
		instrument_id BIGINT NOT NULL REFERENCES instruments(id) ON DELETE CASCADE,
		price         DOUBLE PRECISION NOT NULL,
		recorded_at   TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS price_history_instrument_idx
		ON price_history (instrument_id, recorded_at DESC)`,
	`CREATE TABLE IF NOT EXISTS holdings (
		id             BIGSERIAL PRIMARY KEY,
		account_id     BIGINT NOT NULL REFERENCES accounts(id) ON DELETE CASCADE,
		instrument_id  BIGINT NOT NULL REFERENCES instruments(id) ON DELETE CASCADE,
		quantity       DOUBLE PRECISION NOT NULL CHECK (quantity > 0),
		avg_buy_price  DOUBLE PRECISION NOT NULL,
		UNIQUE (account_id, instrument_id)
	)`,
	`CREATE TABLE IF NOT EXISTS coin_ledger (
		id          BIGSERIAL PRIMARY KEY,
		tx_group_id TEXT NOT NULL,
		account_id  BIGINT NOT NULL,
		entry       TEXT NOT NULL,
		delta       BIGINT NOT NULL,
		action      TEXT NOT NULL,
		created_at  TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS coin_ledger_account_idx
		ON coin_ledger (account_id, id DESC)`,
}

// EnsureSchema creates the tables on startup when missing. Safe to run
// on every boot.
func (s *Service) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := s.db.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
