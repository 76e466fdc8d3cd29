// Package session manages the signed-in player: authentication, registration,
// password recovery and the persisted economy (currency, best score, skins).
//
// A Manager is owned by a single tick loop and is not safe for concurrent use.
package session

import (
	"context"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/vovakirdan/tui-runner/internal/account"
)

// Options configures a Manager.
type Options struct {
	Store        account.Store
	Logger       *log.Logger
	Codes        CodeSource // nil means HOTP codes
	PasswordCost int        // bcrypt cost; zero means bcrypt.DefaultCost
	IOTimeout    time.Duration
}

// Profile is the live economy state of the signed-in player.
type Profile struct {
	Username  string
	Currency  int
	BestScore int
	Equipped  string
	Owned     []string
}

// Owns reports whether the profile owns skinID.
func (p Profile) Owns(skinID string) bool {
	return skinID == account.DefaultSkin || slices.Contains(p.Owned, skinID)
}

// Manager bridges the account store and the live session.
type Manager struct {
	store     account.Store
	logger    *log.Logger
	codes     CodeSource
	cost      int
	ioTimeout time.Duration

	accounts map[string]account.Account
	record   account.Account // full stored record of the signed-in player
	profile  Profile
	active   bool

	recovery recovery
	seq      uint64
}

// New creates a Manager and loads the account set.
// A load failure is logged and treated as an empty set.
func New(opts Options) *Manager {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	cost := opts.PasswordCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	timeout := opts.IOTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	m := &Manager{
		store:     opts.Store,
		logger:    logger,
		codes:     opts.Codes,
		cost:      cost,
		ioTimeout: timeout,
		accounts:  make(map[string]account.Account),
	}
	m.refresh()
	return m
}

// refresh reloads the account set so writes from other sessions are kept.
// On failure the last known set stays in place.
func (m *Manager) refresh() {
	if m.store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), m.ioTimeout)
	defer cancel()

	accounts, err := m.store.Load(ctx)
	if err != nil {
		m.logger.Warn("cannot load accounts", "error", err, "known", len(m.accounts))
		return
	}
	if accounts == nil {
		accounts = make(map[string]account.Account)
	}
	m.accounts = accounts
}

// put records acct locally and upserts it in the store.
// Failures are logged and returned.
func (m *Manager) put(acct account.Account) error {
	m.accounts[acct.Username] = acct
	if m.store == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), m.ioTimeout)
	defer cancel()

	if err := m.store.Put(ctx, acct); err != nil {
		m.logger.Error("cannot save account", "user", acct.Username, "error", err)
		return err
	}
	return nil
}

// Active reports whether a player is signed in.
func (m *Manager) Active() bool {
	return m.active
}

// Profile returns a copy of the signed-in player's economy state.
func (m *Manager) Profile() Profile {
	p := m.profile
	p.Owned = slices.Clone(p.Owned)
	return p
}

// Authenticate signs a player in. A username never seen before is
// provisioned on the spot with the submitted password.
func (m *Manager) Authenticate(username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return ErrEmptyField
	}

	m.refresh()
	acct, exists := m.accounts[username]
	if !exists {
		hash, err := hashPassword(password, m.cost)
		if err != nil {
			return err
		}
		acct = account.New(username, hash, "")
		m.logger.Info("account provisioned on first login", "user", username)
	} else {
		ok, upgrade := checkPassword(acct.Password, password)
		if !ok {
			m.logger.Info("login rejected", "user", username)
			return ErrInvalidCredentials
		}
		if upgrade {
			if hash, err := hashPassword(password, m.cost); err == nil {
				acct.Password = hash
				m.logger.Info("legacy credential upgraded", "user", username)
			}
		}
	}

	acct.Username = username
	acct = acct.Normalize()
	m.hydrate(acct)
	_ = m.put(acct)
	return nil
}

// Register creates an account with zero currency and best score owning the
// default skin. Checks run in order: empty field, invalid email, password
// mismatch, username taken, email taken.
func (m *Manager) Register(username, email, password, confirm string) error {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || password == "" || confirm == "" {
		return ErrEmptyField
	}
	if !ValidEmail(email) {
		return ErrInvalidEmail
	}
	if password != confirm {
		return ErrPasswordMismatch
	}

	m.refresh()
	if _, exists := m.accounts[username]; exists {
		return ErrUsernameTaken
	}
	if account.FindByEmail(m.accounts, email) != "" {
		return ErrEmailTaken
	}

	hash, err := hashPassword(password, m.cost)
	if err != nil {
		return err
	}
	_ = m.put(account.New(username, hash, email))
	m.logger.Info("account registered", "user", username)
	return nil
}

// ValidEmail is the loose syntax check used by registration and recovery.
func ValidEmail(email string) bool {
	email = strings.TrimSpace(email)
	return strings.Contains(email, "@") && strings.Contains(email, ".")
}

// LoadProfile hydrates the live profile from the stored account.
func (m *Manager) LoadProfile(username string) error {
	m.refresh()
	acct, ok := m.accounts[username]
	if !ok {
		return ErrNoAccount
	}
	acct.Username = username
	m.hydrate(acct)
	return nil
}

func (m *Manager) hydrate(acct account.Account) {
	acct = acct.Normalize()
	m.record = acct
	m.profile = Profile{
		Username:  acct.Username,
		Currency:  acct.Currency,
		BestScore: acct.BestScore,
		Equipped:  acct.EquippedSkin,
		Owned:     slices.Clone(acct.OwnedSkins),
	}
	m.active = true
}

// PersistProfile writes the live profile into the player's stored account.
// Credentials and email stored since sign-in are kept. An account missing
// from the store is written back in full from the record loaded at sign-in.
func (m *Manager) PersistProfile() error {
	if !m.active {
		return nil
	}
	m.refresh()
	acct, ok := m.accounts[m.profile.Username]
	if !ok {
		acct = m.record
		m.logger.Warn("account missing from store, restoring it", "user", m.profile.Username)
	}
	acct.Username = m.profile.Username
	acct.Currency = m.profile.Currency
	acct.BestScore = m.profile.BestScore
	acct.EquippedSkin = m.profile.Equipped
	acct.OwnedSkins = slices.Clone(m.profile.Owned)
	m.record = acct
	return m.put(acct)
}

// Close flushes the signed-in profile.
func (m *Manager) Close() error {
	return m.PersistProfile()
}
