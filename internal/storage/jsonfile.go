package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/vovakirdan/tui-runner/internal/account"
)

// JSONStore keeps accounts in a single indented JSON object keyed by username.
// Puts through one JSONStore are serialized; separate processes sharing the
// file are not coordinated.
type JSONStore struct {
	mu   sync.Mutex
	path string
}

var _ account.Store = (*JSONStore)(nil)

// OpenJSON returns a store backed by the file at path.
// The file is created on first save.
func OpenJSON(path string) (*JSONStore, error) {
	if path != "" && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}
	if path == "" {
		return nil, errors.New("storage: empty accounts file path")
	}
	return &JSONStore{path: path}, nil
}

// Load decodes the accounts file. Entries that are not objects are skipped.
func (s *JSONStore) Load(_ context.Context) (map[string]account.Account, error) {
	accounts := make(map[string]account.Account)

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return accounts, nil
	}
	if err != nil {
		return accounts, fmt.Errorf("storage: cannot read %s: %w", s.path, err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return accounts, fmt.Errorf("storage: cannot decode %s: %w: %w", s.path, account.ErrCorrupt, err)
	}

	for username, entry := range raw {
		var a account.Account
		if err := json.Unmarshal(entry, &a); err != nil {
			continue
		}
		a.Username = username
		accounts[username] = a
	}
	return accounts, nil
}

// Put rewrites the file with acct inserted or replaced. Other entries are
// kept byte for byte, including ones Load skips. A file that does not decode
// is left untouched and an error wrapping ErrCorrupt is returned.
func (s *JSONStore) Put(_ context.Context, acct account.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw := make(map[string]json.RawMessage)
	data, err := os.ReadFile(s.path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return fmt.Errorf("storage: cannot read %s: %w", s.path, err)
	default:
		if err := json.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("storage: cannot decode %s: %w: %w", s.path, account.ErrCorrupt, err)
		}
		if raw == nil {
			raw = make(map[string]json.RawMessage)
		}
	}

	entry, err := json.Marshal(acct)
	if err != nil {
		return fmt.Errorf("storage: cannot encode account %s: %w", acct.Username, err)
	}
	raw[acct.Username] = entry
	return s.write(raw)
}

// write replaces the file atomically.
func (s *JSONStore) write(raw map[string]json.RawMessage) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(raw); err != nil {
		return fmt.Errorf("storage: cannot encode accounts: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".accounts-*.json")
	if err != nil {
		return fmt.Errorf("storage: cannot create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("storage: cannot write accounts: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("storage: cannot write accounts: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("storage: cannot replace %s: %w", s.path, err)
	}
	return nil
}

// Close is a no-op; the file is only open during Load and Put.
func (s *JSONStore) Close() error {
	return nil
}
