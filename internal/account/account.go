// Package account defines the persisted player profile and the contract
// every account store implements.
package account

import (
	"context"
	"errors"
	"slices"
	"strings"
)

// DefaultSkin is owned by every account.
const DefaultSkin = "default"

// ErrCorrupt marks persisted account data that could not be decoded.
var ErrCorrupt = errors.New("account: stored data is corrupt")

// Account is one user's persisted profile.
// JSON tags follow the accounts_data.json layout.
type Account struct {
	Username     string   `json:"-"`
	Password     string   `json:"password"`
	Email        string   `json:"email"`
	Currency     int      `json:"emilianos"`
	BestScore    int      `json:"best_score"`
	EquippedSkin string   `json:"equipped_skin"`
	OwnedSkins   []string `json:"owned_skins"`
}

// New returns a fresh account owning only the default skin.
func New(username, password, email string) Account {
	return Account{
		Username:     username,
		Password:     password,
		Email:        email,
		EquippedSkin: DefaultSkin,
		OwnedSkins:   []string{DefaultSkin},
	}
}

// Owns reports whether the skin is in the owned set.
func (a Account) Owns(skinID string) bool {
	return skinID == DefaultSkin || slices.Contains(a.OwnedSkins, skinID)
}

// Normalize restores the owned-set and equipped-skin invariants.
// Owned skins are deduplicated and always include the default skin;
// an equipped skin that is not owned falls back to the default.
func (a Account) Normalize() Account {
	owned := []string{DefaultSkin}
	for _, id := range a.OwnedSkins {
		if id != "" && !slices.Contains(owned, id) {
			owned = append(owned, id)
		}
	}
	a.OwnedSkins = owned
	if a.EquippedSkin == "" || !a.Owns(a.EquippedSkin) {
		a.EquippedSkin = DefaultSkin
	}
	if a.Currency < 0 {
		a.Currency = 0
	}
	if a.BestScore < 0 {
		a.BestScore = 0
	}
	return a
}

// NormalizeEmail trims and lowercases an address for comparison.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// FindByEmail returns the username registered with email, or "".
func FindByEmail(accounts map[string]Account, email string) string {
	want := NormalizeEmail(email)
	if want == "" {
		return ""
	}
	// Sorted for a stable answer if legacy data holds duplicates.
	names := make([]string, 0, len(accounts))
	for name := range accounts {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		if NormalizeEmail(accounts[name].Email) == want {
			return name
		}
	}
	return ""
}

// Store persists accounts keyed by username.
//
// Load returns an empty map and a nil error when nothing has been saved yet.
// Malformed data yields an empty map and an error wrapping ErrCorrupt.
// Put inserts or replaces one account and leaves every other account as
// stored, so sessions sharing a store never overwrite each other's records.
type Store interface {
	Load(ctx context.Context) (map[string]Account, error)
	Put(ctx context.Context, acct Account) error
	Close() error
}
