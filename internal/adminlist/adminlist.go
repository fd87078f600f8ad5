// Package adminlist holds the admin allowlist: one display name per
// line in a flat text file, loaded once at startup and reloaded only on
// request.
package adminlist

import (
	"bufio"
	"os"
	"strings"
	"sync"
)

type List struct {
	path string

	mu    sync.RWMutex
	names map[string]struct{}
}

// Load reads the allowlist file at path. Blank lines and lines starting
// with # are skipped.
func Load(path string) (*List, error) {
	l := &List{path: path, names: map[string]struct{}{}}
	if err := l.Reload(); err != nil {
		return nil, err
	}
	return l, nil
}

// Reload re-reads the file, replacing the in-memory set atomically.
func (l *List) Reload() error {
	f, err := os.Open(l.path)
	if err != nil {
		return err
	}
	defer f.Close()

	names := map[string]struct{}{}
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		names[line] = struct{}{}
	}
	if err := sc.Err(); err != nil {
		return err
	}

	l.mu.Lock()
	l.names = names
	l.mu.Unlock()
	return nil
}

// IsAdmin reports whether name is on the allowlist. Exact match on the
// stored form.
func (l *List) IsAdmin(name string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.names[name]
	return ok
}

func (l *List) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.names)
}
