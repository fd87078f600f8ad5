package gateway

import (
	"context"
	"testing"
)

func TestDispatchIgnoresNonCommands(t *testing.T) {
	g := testGateway()
	sender := Sender{ID: 1, Name: "alice"}
	for _, content := range []string{"", "hello there", "/unknowncmd", "   "} {
		if got := g.Dispatch(context.Background(), sender, content); got != "" {
			t.Fatalf("content=%q got=%q, want empty", content, got)
		}
	}
}

func TestDispatchHelp(t *testing.T) {
	g := testGateway()
	got := g.Dispatch(context.Background(), Sender{ID: 1, Name: "alice"}, "/help")
	if got == "" {
		t.Fatal("expected help text")
	}
}
