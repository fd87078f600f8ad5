package gateway

import (
	"testing"
	"time"
)

func TestParseCoins(t *testing.T) {
	if v, err := parseCoins("700"); err != nil || v != 700 {
		t.Fatalf("got %d, %v", v, err)
	}
	for _, bad := range []string{"0", "-5","1.5", "abc", ""} {
		if _, err := parseCoins(bad); err == nil {
			t.Fatalf("expected %q to fail", bad)
		}
	}
}

func TestParseQuantity(t *testing.T) {
	if v, err := parseQuantity("0.5"); err != nil || v != 0.5 {
		t.Fatalf("got %v, %v", v, err)
	}
	for _, bad := range []string{"0", "-1", "x"} {
		if _, err := parseQuantity(bad); err == nil {
			t.Fatalf("expected %q to fail", bad)
		}
	}
}

func TestParseMinutes(t *testing.T) {
	d, err := parseMinutes("30")
	if err != nil || d != 30*time.Minute {
		t.Fatalf("got %v, %v", d, err)
	}
	for _, bad := range []string{"forever", "0", "-10"} {
		if _, err := parseMinutes(bad); err == nil {
			t.Fatalf("expected %q to fail", bad)
		}
	}
}

func TestFormatQuantity(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{in: 1, want: "1"},
		{in: 0.5, want: "0.5"},
		{in: 2.5000, want: "2.5"},
		{in: 0.1234, want: "0.1234"},
		{in: 0.12345, want: "0.1235"},
	}
	for _, tc := range tests {
		if got := formatQuantity(tc.in); got != tc.want {
			t.Fatalf("in=%v got=%q want=%q", tc.in, got, tc.want)
		}
	}
}
