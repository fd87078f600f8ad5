package economy

import (
	"testing"
	"time"
)

func TestEvaluateBanForever(t *testing.T) {
	st := EvaluateBan(BanForever, "spam", time.Now())
	if !st.Banned || st.Until != BanForever || st.Reason != "spam" {
		t.Fatalf("unexpected status %+v", st)
	}
	// Still banned arbitrarily far in the future.
	st = EvaluateBan(BanForever, "spam", time.Now().Add(1000*24*time.Hour))
	if !st.Banned {
		t.Fatal("forever ban expired")
	}
}

func TestEvaluateBanTimed(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.Local)
	until := now.Add(30 * time.Minute).Format(TimeLayout)

	st := EvaluateBan(until, "abuse", now)
	if !st.Banned || st.Until != until || st.Reason != "abuse" {
		t.Fatalf("expected active ban, got %+v", st)
	}

	st = EvaluateBan(until, "abuse", now.Add(31*time.Minute))
	if st.Banned {
		t.Fatalf("expected expired ban, got %+v", st)
	}
}

func TestEvaluateBanEmpty(t *testing.T) {
	if st := EvaluateBan("", "", time.Now()); st.Banned {
		t.Fatalf("empty ban_until must not ban, got %+v", st)
	}
}

func TestEvaluateBanUnparseable(t *testing.T) {
	if st := EvaluateBan("not-a-time", "x", time.Now()); st.Banned {
		t.Fatalf("unparseable ban_until must not ban, got %+v", st)
	}
}

func TestRequireActive(t *testing.T) {
	now := time.Now()
	acct := Account{ID: 1, Name: "alice"}
	if err := requireActive(acct, now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	acct.BanUntil = BanForever
	acct.BanReason = "rigging the casino"
	err := requireActive(acct, now)
	banned, ok := err.(*BannedError)
	if !ok {
		t.Fatalf("expected *BannedError, got %v", err)
	}
	if banned.Until != BanForever || banned.Reason != "rigging the casino" {
		t.Fatalf("unexpected ban detail %+v", banned)
	}
}
