package economy

import (
	"context"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
)

const accountColumns = `id, username, coins,
	COALESCE(last_reward, ''), COALESCE(ban_until, ''), COALESCE(ban_reason, '')`

// Register creates an account with a zero balance. Returns false when
// the id or name is already taken; duplicates are absorbed, never
// raised.
func (s *Service) Register(ctx context.Context, id int64, name string) (bool, error) {
	cmd, err := s.db.Exec(ctx, `
		INSERT INTO accounts (id, username)
		VALUES ($1, $2)
		ON CONFLICT (id) DO NOTHING
	`, id, name)
	if err != nil {
		if isUniqueViolation(err) {
			return false, nil
		}
		return false, err
	}
	return cmd.RowsAffected() == 1, nil
}

func (s *Service) AccountByID(ctx context.Context, id int64) (Account, error) {
	var a Account
	err := s.db.QueryRow(ctx, `
		SELECT `+accountColumns+`
		FROM accounts
		WHERE id = $1
	`, id).Scan(&a.ID, &a.Name, &a.Coins, &a.LastReward, &a.BanUntil, &a.BanReason)
	if err == pgx.ErrNoRows {
		return Account{}, ErrNotRegistered
	}
	return a, err
}

func (s *Service) AccountByName(ctx context.Context, name string) (Account, error) {
	var a Account
	err := s.db.QueryRow(ctx, `
		SELECT `+accountColumns+`
		FROM accounts
		WHERE username = $1
	`, name).Scan(&a.ID, &a.Name, &a.Coins, &a.LastReward, &a.BanUntil, &a.BanReason)
	if err == pgx.ErrNoRows {
		return Account{}, ErrNotRegistered
	}
	return a, err
}

// ResolveTarget looks up an account from a command token: a numeric id
// or a display name with an optional leading @.
func (s *Service) ResolveTarget(ctx context.Context, target string) (Account, error) {
	target = strings.TrimSpace(target)
	if id, err := strconv.ParseInt(target, 10, 64); err == nil {
		acct, err := s.AccountByID(ctx, id)
		if err == ErrNotRegistered {
			return Account{}, ErrTargetNotFound
		}
		return acct, err
	}
	acct, err := s.AccountByName(ctx, strings.TrimPrefix(target, "@"))
	if err == ErrNotRegistered {
		return Account{}, ErrTargetNotFound
	}
	return acct, err
}

// Top returns the richest accounts in descending balance order.
func (s *Service) Top(ctx context.Context, limit int) ([]LeaderboardRow, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, username, coins
		FROM accounts
		ORDER BY coins DESC, id
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []LeaderboardRow
	var rank int64 = 1
	for rows.Next() {
		var r LeaderboardRow
		if err := rows.Scan(&r.ID, &r.Name, &r.Coins); err != nil {
			return nil, err
		}
		r.Rank = rank
		rank++
		out = append(out, r)
	}
	return out, rows.Err()
}

// lockAccount reads an account row under FOR UPDATE inside tx.
func lockAccount(ctx context.Context, tx pgx.Tx, id int64) (Account, error) {
	var a Account
	err := tx.QueryRow(ctx, `
		SELECT `+accountColumns+`
		FROM accounts
		WHERE id = $1
		FOR UPDATE
	`, id).Scan(&a.ID, &a.Name, &a.Coins, &a.LastReward, &a.BanUntil, &a.BanReason)
	if err == pgx.ErrNoRows {
		return Account{}, ErrNotRegistered
	}
	return a, err
}
