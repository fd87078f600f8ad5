package api

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"coinbot/internal/adminlist"
	"coinbot/internal/economy"
)

func TestHealthz(t *testing.T) {
	s := New(nil, nil, nil, 10)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok":true`) {
		t.Fatalf("body %q", rec.Body.String())
	}
}

func TestReloadAdmins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "admins.txt")
	if err := os.WriteFile(path, []byte("alice\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	admins, err := adminlist.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("alice\nbob\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	s := New(nil, nil, admins, 10)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/admin/reload-admins", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d body %q", rec.Code, rec.Body.String())
	}
	if !admins.IsAdmin("bob") {
		t.Fatal("reload did not pick up new entry")
	}
}

func TestDomainErrorStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{err: economy.ErrNotRegistered, want: http.StatusNotFound},
		{err: economy.ErrInstrumentNotFound, want: http.StatusNotFound},
		{err: economy.ErrInvalidAmount, want: http.StatusBadRequest},
		{err: economy.ErrInsufficientFunds, want: http.StatusBadRequest},
		{err: economy.ErrTxConflict, want: http.StatusConflict},
	}
	for _, tc := range tests {
		rec := httptest.NewRecorder()
		writeDomainError(rec, tc.err)
		if rec.Code != tc.want {
			t.Fatalf("err=%v status=%d want=%d", tc.err, rec.Code, tc.want)
		}
	}
}
