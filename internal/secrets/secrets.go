// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads credentials and contact details from a directory of
// plain-text files. Each file is one secret: the filename is the key and the
// trimmed file contents are the value.
//
// Known keys: wikimedia-contact (an email or URL appended to the User-Agent,
// as the Wikimedia User-Agent policy asks).
package secrets

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// KeyWikimediaContact names the file holding the operator contact address.
const KeyWikimediaContact = "wikimedia-contact"

// Secrets maps key names to values.
type Secrets map[string]string

// Load reads all regular, non-hidden files in dir. A missing directory is not
// an error and yields empty Secrets. Unreadable files are logged and skipped.
func Load(dir string) (Secrets, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return Secrets{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	s := make(Secrets)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			slog.Warn("could not read secret", "name", name, "error", err)
			continue
		}

		if value := strings.TrimSpace(string(data)); value != "" {
			s[name] = value
		}
	}
	return s, nil
}

// Get returns the value for key, or "" when absent.
func (s Secrets) Get(key string) string {
	return s[key]
}

// UserAgent returns base with the Wikimedia contact appended in parentheses
// when one is configured, e.g. "wiki-search/1.0 (ops@example.org)".
func (s Secrets) UserAgent(base string) string {
	contact := s.Get(KeyWikimediaContact)
	if contact == "" || strings.Contains(base, contact) {
		return base
	}
	return fmt.Sprintf("%s (%s)", base, contact)
}
