// Package blob implements the file store backing resume uploads. The rest
// of the application only ever sees the reference string returned by Save;
// raw bytes never reach the database.
package blob

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Store writes blobs under a single base directory.
type Store struct {
	dir string
}

// New creates the base directory if needed and returns a Store rooted there.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("blob store: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Save writes data under a sanitized, collision-free name derived from the
// suggested filename and returns the reference to store. The reference is
// relative to the base directory so the directory can move without
// rewriting rows.
func (s *Store) Save(data []byte, suggested string) (string, error) {
	name := fmt.Sprintf("%s_%s", uuid.NewString(), SanitizeName(suggested))
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("blob store: %w", err)
	}
	return name, nil
}

// Open returns the absolute path for a previously returned reference. The
// reference is re-based onto the store directory so a crafted value cannot
// escape it.
func (s *Store) Open(ref string) (string, error) {
	p := filepath.Join(s.dir, filepath.Base(ref))
	if _, err := os.Stat(p); err != nil {
		return "", err
	}
	return p, nil
}

// SanitizeName strips directory components and every character outside
// [A-Za-z0-9._-] from a client-supplied filename. Empty results fall back
// to "file" so Save never produces a dangling underscore name.
func SanitizeName(raw string) string {
	base := filepath.Base(strings.ReplaceAll(raw, "\\", "/"))
	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '_' || r == '-':
			b.WriteRune(r)
		}
	}
	out := strings.Trim(b.String(), ".")
	if out == "" {
		return "file"
	}
	return out
}
