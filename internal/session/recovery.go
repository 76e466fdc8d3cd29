package session

import (
	"strings"

	"github.com/vovakirdan/tui-runner/internal/account"
)

// recovery tracks one password reset in progress.
type recovery struct {
	code     string
	email    string // normalized address the code was issued to
	verified string // normalized address that submitted the matching code
	seq      uint64
}

// Ticket is a code ready for delivery. Seq identifies the recovery session
// that issued it so late delivery results can be discarded.
type Ticket struct {
	Seq   uint64
	Email string
	Code  string
}

// IssueRecoveryCode generates a six-digit code for a registered email.
// Any previous code and verification are replaced.
func (m *Manager) IssueRecoveryCode(email string) (Ticket, error) {
	email = strings.TrimSpace(email)
	if !ValidEmail(email) {
		return Ticket{}, ErrInvalidEmail
	}
	m.refresh()
	if account.FindByEmail(m.accounts, email) == "" {
		return Ticket{}, ErrEmailUnknown
	}

	if m.codes == nil {
		codes, err := NewHOTPCodes("Dino Runner", "recovery")
		if err != nil {
			return Ticket{}, err
		}
		m.codes = codes
	}
	code, err := m.codes.Next()
	if err != nil {
		return Ticket{}, err
	}

	m.seq++
	m.recovery = recovery{
		code:  code,
		email: account.NormalizeEmail(email),
		seq:   m.seq,
	}
	m.logger.Info("recovery code issued", "email", email, "seq", m.seq)
	return Ticket{Seq: m.seq, Email: email, Code: code}, nil
}

// VerifyRecoveryCode checks a submitted code against the pending one.
// A mismatch clears any earlier verification.
func (m *Manager) VerifyRecoveryCode(email, code string) error {
	if m.recovery.code == "" {
		return ErrNoPendingCode
	}
	normalized := account.NormalizeEmail(email)
	if strings.TrimSpace(code) != m.recovery.code || normalized != m.recovery.email {
		m.recovery.verified = ""
		return ErrCodeMismatch
	}
	m.recovery.verified = normalized
	return nil
}

// ResetPassword replaces the credential of the account registered with email.
// It requires a prior successful VerifyRecoveryCode for that exact email and
// returns the account's username.
func (m *Manager) ResetPassword(email, password, confirm string) (string, error) {
	normalized := account.NormalizeEmail(email)
	if normalized == "" || password == "" || confirm == "" {
		return "", ErrEmptyField
	}
	if m.recovery.verified == "" || m.recovery.verified != normalized {
		return "", ErrNotVerified
	}
	if password != confirm {
		return "", ErrPasswordMismatch
	}

	m.refresh()
	username := account.FindByEmail(m.accounts, normalized)
	if username == "" {
		return "", ErrEmailUnknown
	}

	hash, err := hashPassword(password, m.cost)
	if err != nil {
		return "", err
	}
	acct := m.accounts[username]
	acct.Username = username
	acct.Password = hash
	_ = m.put(acct)

	m.ClearRecovery()
	m.logger.Info("password reset", "user", username)
	return username, nil
}

// ClearRecovery forgets the pending code and verification.
func (m *Manager) ClearRecovery() {
	m.recovery = recovery{}
}

// RecoverySeq returns the sequence of the live recovery session, or 0.
func (m *Manager) RecoverySeq() uint64 {
	return m.recovery.seq
}

// RecoveryPending reports whether a code is waiting to be verified.
func (m *Manager) RecoveryPending() bool {
	return m.recovery.code != ""
}
