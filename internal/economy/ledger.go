package economy

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// GrantReward credits the periodic reward and resets the cooldown
// clock. The first grant after registration has no cooldown.
func (s *Service) GrantReward(ctx context.Context, id int64) (RewardResult, error) {
	var out RewardResult
	err := s.withSerializableTx(ctx, func(tx pgx.Tx) error {
		acct, err := lockAccount(ctx, tx, id)
		if err != nil {
			return err
		}
		now := time.Now()
		if err := requireActive(acct, now); err != nil {
			return err
		}
		if remaining := cooldownRemaining(acct.LastReward, now); remaining > 0 {
			return &CooldownError{Remaining: remaining}
		}
		out.Amount = RewardAmount(acct.Coins)
		out.Balance = acct.Coins + out.Amount
		if _, err := tx.Exec(ctx, `
			UPDATE accounts
			SET coins = coins + $1, last_reward = $2
			WHERE id = $3
		`, out.Amount, now.Format(TimeLayout), id); err != nil {
			return err
		}
		return appendCoinLedger(ctx, tx, id, "reward", out.Amount)
	})
	return out, err
}

// Wager resolves a 50/50 coin flip for bet coins. The draw and the
// balance update commit together.
func (s *Service) Wager(ctx context.Context, id int64, bet int64) (WagerResult, error) {
	var out WagerResult
	if bet <= 0 {
		return out, ErrInvalidBet
	}
	err := s.withSerializableTx(ctx, func(tx pgx.Tx) error {
		acct, err := lockAccount(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := requireActive(acct, time.Now()); err != nil {
			return err
		}
		if bet > acct.Coins {
			return ErrInvalidBet
		}
		out.Bet = bet
		out.Won = s.nextFloat() >= 0.5
		delta := -bet
		action := "wager_loss"
		if out.Won {
			delta = bet
			action = "wager_win"
		}
		out.Balance = acct.Coins + delta
		if _, err := tx.Exec(ctx, `
			UPDATE accounts SET coins = coins + $1 WHERE id = $2
		`, delta, id); err != nil {
			return err
		}
		return appendCoinLedger(ctx, tx, id, action, delta)
	})
	return out, err
}

// Transfer moves coins between two accounts. Both rows are locked in
// ascending id order and both balances change in the same transaction
// or not at all.
func (s *Service) Transfer(ctx context.Context, senderID, recipientID, amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if senderID == recipientID {
		return ErrSelfTransfer
	}
	return s.withSerializableTx(ctx, func(tx pgx.Tx) error {
		first, second := senderID, recipientID
		if second < first {
			first, second = second, first
		}
		locked := map[int64]Account{}
		for _, id := range []int64{first, second} {
			acct, err := lockAccount(ctx, tx, id)
			if err == ErrNotRegistered {
				if id == recipientID {
					return ErrTargetNotFound
				}
				return err
			}
			if err != nil {
				return err
			}
			locked[id] = acct
		}
		sender := locked[senderID]
		if err := requireActive(sender, time.Now()); err != nil {
			return err
		}
		if sender.Coins < amount {
			return ErrInsufficientFunds
		}
		if _, err := tx.Exec(ctx, `
			UPDATE accounts SET coins = coins - $1 WHERE id = $2
		`, amount, senderID); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `
			UPDATE accounts SET coins = coins + $1 WHERE id = $2
		`, amount, recipientID); err != nil {
			return err
		}
		group := uuid.NewString()
		if err := appendCoinLedgerGroup(ctx, tx, group, senderID, "transfer_out", -amount); err != nil {
			return err
		}
		return appendCoinLedgerGroup(ctx, tx, group, recipientID, "transfer_in", amount)
	})
}

// AdminAdjust adds delta to an account's balance. Negative adjustments
// clamp at zero instead of failing.
func (s *Service) AdminAdjust(ctx context.Context, id, delta int64) (int64, error) {
	var balance int64
	err := s.withSerializableTx(ctx, func(tx pgx.Tx) error {
		acct, err := lockAccount(ctx, tx, id)
		if err == ErrNotRegistered {
			return ErrTargetNotFound
		}
		if err != nil {
			return err
		}
		balance = acct.Coins + delta
		if balance < 0 {
			balance = 0
		}
		applied := balance - acct.Coins
		if _, err := tx.Exec(ctx, `
			UPDATE accounts SET coins = $1 WHERE id = $2
		`, balance, id); err != nil {
			return err
		}
		return appendCoinLedger(ctx, tx, id, "admin_adjust", applied)
	})
	return balance, err
}
