// Package storage provides account store backends: SQLite (default),
// the JSON accounts file and Redis.
// SQLite uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-runner/internal/account"
)

// SQLiteStore keeps accounts in a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

var _ account.Store = (*SQLiteStore)(nil)

// OpenSQLite creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func OpenSQLite(dbPath string) (*SQLiteStore, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *SQLiteStore) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS accounts (
			username TEXT PRIMARY KEY,
			password TEXT NOT NULL,
			email TEXT NOT NULL DEFAULT '',
			currency INTEGER NOT NULL DEFAULT 0,
			best_score INTEGER NOT NULL DEFAULT 0,
			equipped_skin TEXT NOT NULL DEFAULT 'default',
			owned_skins TEXT NOT NULL DEFAULT 'default',
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_accounts_email ON accounts(lower(email));
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Load reads every account row.
func (s *SQLiteStore) Load(ctx context.Context) (map[string]account.Account, error) {
	accounts := make(map[string]account.Account)

	rows, err := s.db.QueryContext(ctx,
		`SELECT username, password, email, currency, best_score, equipped_skin, owned_skins
		 FROM accounts`,
	)
	if err != nil {
		return accounts, fmt.Errorf("storage: cannot query accounts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var a account.Account
		var owned string
		if err := rows.Scan(&a.Username, &a.Password, &a.Email, &a.Currency, &a.BestScore, &a.EquippedSkin, &owned); err != nil {
			return make(map[string]account.Account), fmt.Errorf("storage: cannot scan row: %w: %w", account.ErrCorrupt, err)
		}
		a.OwnedSkins = splitSkins(owned)
		accounts[a.Username] = a
	}

	if err := rows.Err(); err != nil {
		return make(map[string]account.Account), fmt.Errorf("storage: row iteration error: %w", err)
	}

	return accounts, nil
}

// Put upserts one account row.
func (s *SQLiteStore) Put(ctx context.Context, a account.Account) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO accounts
		 (username, password, email, currency, best_score, equipped_skin, owned_skins, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(username) DO UPDATE SET
		   password = excluded.password,
		   email = excluded.email,
		   currency = excluded.currency,
		   best_score = excluded.best_score,
		   equipped_skin = excluded.equipped_skin,
		   owned_skins = excluded.owned_skins,
		   updated_at = CURRENT_TIMESTAMP`,
		a.Username, a.Password, a.Email, a.Currency, a.BestScore, a.EquippedSkin,
		strings.Join(a.OwnedSkins, ","),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save account %s: %w", a.Username, err)
	}
	return nil
}

func splitSkins(s string) []string {
	var out []string
	for _, id := range strings.Split(s, ",") {
		if id = strings.TrimSpace(id); id != "" {
			out = append(out, id)
		}
	}
	return out
}
