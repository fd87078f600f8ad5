package adminlist

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "admins.txt")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeFile(t, "alice\n\n# a comment\n  bob  \n")
	l, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if l.Len() != 2 {
		t.Fatalf("len got %d want 2", l.Len())
	}
	if !l.IsAdmin("alice") || !l.IsAdmin("bob") {
		t.Fatal("expected alice and bob to be admins")
	}
	if l.IsAdmin("# a comment") || l.IsAdmin("mallory") {
		t.Fatal("unexpected admin membership")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.txt")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestReload(t *testing.T) {
	path := writeFile(t, "alice\n")
	l, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if l.IsAdmin("carol") {
		t.Fatal("carol should not be an admin yet")
	}
	if err := os.WriteFile(path, []byte("carol\n"), 0o600); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	if err := l.Reload(); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !l.IsAdmin("carol") || l.IsAdmin("alice") {
		t.Fatal("reload did not replace the set")
	}
}
