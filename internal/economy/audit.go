package economy

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// The coin ledger is a double-entry audit trail: every balance change
// writes a wallet row and a mirrored counterparty row under one group
// id. Nothing in the engines reads it back.

func appendCoinLedger(ctx context.Context, tx pgx.Tx, accountID int64, action string, delta int64) error {
	return appendCoinLedgerGroup(ctx, tx, uuid.NewString(), accountID, action, delta)
}

func appendCoinLedgerGroup(ctx context.Context, tx pgx.Tx, groupID string, accountID int64, action string, delta int64) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO coin_ledger (tx_group_id, account_id, entry, delta, action, created_at)
		VALUES
		($1, $2, 'wallet', $3, $5, $6),
		($1, $2, 'counterparty', $4, $5, $6)
	`, groupID, accountID, delta, -delta, action, nowString())
	return err
}
