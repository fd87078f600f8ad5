package economy

import (
	"context"
	"time"
)

// BanStatus is the lazily derived view of an account's ban fields.
// Expired timed bans report not-banned without touching stored state.
type BanStatus struct {
	Banned bool
	Until  string
	Reason string
}

// EvaluateBan derives ban state from the stored fields and now.
func EvaluateBan(banUntil, reason string, now time.Time) BanStatus {
	if banUntil == "" {
		return BanStatus{}
	}
	if banUntil == BanForever {
		return BanStatus{Banned: true, Until: BanForever, Reason: reason}
	}
	until, err := time.ParseInLocation(TimeLayout, banUntil, time.Local)
	if err != nil {
		// Unparseable ban_until cannot be enforced.
		return BanStatus{}
	}
	if until.After(now) {
		return BanStatus{Banned: true, Until: banUntil, Reason: reason}
	}
	return BanStatus{}
}

// CheckBan evaluates the ban policy for a stored account.
func (s *Service) CheckBan(ctx context.Context, id int64) (BanStatus, error) {
	acct, err := s.AccountByID(ctx, id)
	if err != nil {
		return BanStatus{}, err
	}
	return EvaluateBan(acct.BanUntil, acct.BanReason, time.Now()), nil
}

// requireActive turns an account's ban state into a BannedError, used
// as the gate in front of every ledger mutation.
func requireActive(acct Account, now time.Time) error {
	if st := EvaluateBan(acct.BanUntil, acct.BanReason, now); st.Banned {
		return &BannedError{Until: st.Until, Reason: st.Reason}
	}
	return nil
}

// SetBan stores a ban ending at until (TimeLayout text or BanForever).
func (s *Service) SetBan(ctx context.Context, id int64, until, reason string) error {
	cmd, err := s.db.Exec(ctx, `
		UPDATE accounts SET ban_until = $1, ban_reason = $2 WHERE id = $3
	`, until, reason, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrTargetNotFound
	}
	return nil
}

// BanFor stores a timed ban of the given duration starting now.
func (s *Service) BanFor(ctx context.Context, id int64, d time.Duration, reason string) error {
	return s.SetBan(ctx, id, time.Now().Add(d).Format(TimeLayout), reason)
}

func (s *Service) ClearBan(ctx context.Context, id int64) error {
	cmd, err := s.db.Exec(ctx, `
		UPDATE accounts SET ban_until = NULL, ban_reason = NULL WHERE id = $1
	`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrTargetNotFound
	}
	return nil
}
