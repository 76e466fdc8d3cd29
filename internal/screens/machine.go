package screens

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-runner/internal/notify"
	"github.com/vovakirdan/tui-runner/internal/session"
)

// Accounts is the part of the session manager the machine drives.
type Accounts interface {
	Authenticate(username, password string) error
	Register(username, email, password, confirm string) error
	IssueRecoveryCode(email string) (session.Ticket, error)
	VerifyRecoveryCode(email, code string) error
	ResetPassword(email, password, confirm string) (string, error)
	ClearRecovery()
	RecoverySeq() uint64
	Purchase(skinID string)
	Equip(skinID string)
	PersistProfile() error
}

// Run is the part of the simulation engine the machine drives.
type Run interface {
	Reset()
	Running() bool
	Jump()
	CrouchPress()
	CrouchRelease()
}

// Mailer delivers recovery codes without blocking.
type Mailer interface {
	Dispatch(seq uint64, email, code string)
}

// Machine routes actions according to the current screen.
// Actions that the current screen does not accept are ignored.
type Machine struct {
	accounts Accounts
	run      Run
	mailer   Mailer
	logger   *log.Logger

	screen     Screen
	status     map[Screen]string
	prefill    string
	terminated bool
}

// New creates a machine on the login screen. A nil logger discards.
func New(accounts Accounts, run Run, mailer Mailer, logger *log.Logger) *Machine {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Machine{
		accounts: accounts,
		run:      run,
		mailer:   mailer,
		logger:   logger,
		screen:   ScreenLogin,
		status:   make(map[Screen]string),
	}
}

// Screen returns the current screen.
func (m *Machine) Screen() Screen {
	return m.screen
}

// Status returns the message shown on s, if any.
func (m *Machine) Status(s Screen) string {
	return m.status[s]
}

// TakePrefill returns the username to place in the login form once.
func (m *Machine) TakePrefill() (string, bool) {
	if m.prefill == "" {
		return "", false
	}
	name := m.prefill
	m.prefill = ""
	return name, true
}

// Terminated reports whether the player chose to exit.
func (m *Machine) Terminated() bool {
	return m.terminated
}

// Advancing reports whether the engine should step this tick.
func (m *Machine) Advancing() bool {
	return m.screen == ScreenPlaying && m.run.Running()
}

// GameOver is called when the engine reports a crash.
func (m *Machine) GameOver() {
	if m.screen == ScreenPlaying {
		m.goTo(ScreenGameOver)
	}
}

// DeliveryResult shows the outcome of a recovery code delivery.
// Results from an earlier or cleared recovery session are dropped.
func (m *Machine) DeliveryResult(r notify.Result) bool {
	if r.Seq == 0 || r.Seq != m.accounts.RecoverySeq() {
		m.logger.Debug("stale delivery result", "seq", r.Seq, "email", r.Email)
		return false
	}
	m.status[ScreenRecover] = r.Status
	return true
}

// Dispatch applies a to the current screen.
func (m *Machine) Dispatch(a Action) {
	if m.terminated {
		return
	}
	switch m.screen {
	case ScreenLogin:
		m.onLogin(a)
	case ScreenRegister:
		m.onRegister(a)
	case ScreenRecover:
		m.onRecover(a)
	case ScreenMainMenu:
		m.onMainMenu(a)
	case ScreenShop, ScreenSkins:
		m.onStore(a)
	case ScreenPlaying:
		m.onPlaying(a)
	case ScreenPaused:
		m.onPaused(a)
	case ScreenGameOver:
		m.onGameOver(a)
	}
}

func (m *Machine) goTo(s Screen) {
	if s != m.screen {
		m.logger.Debug("screen", "from", m.screen, "to", s)
	}
	m.screen = s
}

func (m *Machine) onLogin(a Action) {
	switch a := a.(type) {
	case Login:
		if err := m.accounts.Authenticate(a.Username, a.Password); err != nil {
			m.status[ScreenLogin] = m.message(ScreenLogin, err)
			return
		}
		m.status[ScreenLogin] = ""
		m.goTo(ScreenMainMenu)
	case OpenRegister:
		m.status[ScreenRegister] = ""
		m.goTo(ScreenRegister)
	case OpenRecover:
		m.status[ScreenRecover] = ""
		m.accounts.ClearRecovery()
		m.goTo(ScreenRecover)
	}
}

func (m *Machine) onRegister(a Action) {
	switch a := a.(type) {
	case Register:
		if err := m.accounts.Register(a.Username, a.Email, a.Password, a.Confirm); err != nil {
			m.status[ScreenRegister] = m.message(ScreenRegister, err)
			return
		}
		m.status[ScreenRegister] = ""
		m.status[ScreenLogin] = "Account created. Sign in."
		m.prefill = a.Username
		m.goTo(ScreenLogin)
	case BackToLogin:
		m.status[ScreenRegister] = ""
		m.goTo(ScreenLogin)
	}
}

func (m *Machine) onRecover(a Action) {
	switch a := a.(type) {
	case SendCode:
		ticket, err := m.accounts.IssueRecoveryCode(a.Email)
		if err != nil {
			m.status[ScreenRecover] = m.message(ScreenRecover, err)
			return
		}
		m.status[ScreenRecover] = fmt.Sprintf("Sending code to %s...", ticket.Email)
		if m.mailer != nil {
			m.mailer.Dispatch(ticket.Seq, ticket.Email, ticket.Code)
		}
	case VerifyCode:
		if err := m.accounts.VerifyRecoveryCode(a.Email, a.Code); err != nil {
			m.status[ScreenRecover] = m.message(ScreenRecover, err)
			return
		}
		m.status[ScreenRecover] = "Code verified. Now enter your new password."
	case ResetPassword:
		username, err := m.accounts.ResetPassword(a.Email, a.Password, a.Confirm)
		if err != nil {
			m.status[ScreenRecover] = m.message(ScreenRecover, err)
			return
		}
		m.status[ScreenRecover] = ""
		m.status[ScreenLogin] = "Password updated. Sign in."
		m.prefill = username
		m.goTo(ScreenLogin)
	case BackToLogin:
		m.status[ScreenRecover] = ""
		m.accounts.ClearRecovery()
		m.goTo(ScreenLogin)
	}
}

func (m *Machine) onMainMenu(a Action) {
	switch a.(type) {
	case Play:
		m.run.Reset()
		m.goTo(ScreenPlaying)
	case OpenShop:
		m.goTo(ScreenShop)
	case OpenSkins:
		m.goTo(ScreenSkins)
	case Exit:
		if err := m.accounts.PersistProfile(); err != nil {
			m.logger.Warn("cannot save profile on exit", "error", err)
		}
		m.terminated = true
	}
}

func (m *Machine) onStore(a Action) {
	switch a := a.(type) {
	case Purchase:
		m.accounts.Purchase(a.SkinID)
	case Equip:
		m.accounts.Equip(a.SkinID)
	case BackToMenu:
		m.goTo(ScreenMainMenu)
	}
}

func (m *Machine) onPlaying(a Action) {
	switch a.(type) {
	case Pause:
		m.goTo(ScreenPaused)
	case Jump:
		m.run.Jump()
	case CrouchPress:
		m.run.CrouchPress()
	case CrouchRelease:
		m.run.CrouchRelease()
	}
}

func (m *Machine) onPaused(a Action) {
	switch a.(type) {
	case Continue:
		m.goTo(ScreenPlaying)
	case BackToMenu:
		m.goTo(ScreenMainMenu)
	case CrouchRelease:
		m.run.CrouchRelease()
	}
}

func (m *Machine) onGameOver(a Action) {
	switch a.(type) {
	case PlayAgain:
		m.run.Reset()
		m.goTo(ScreenPlaying)
	case BackToMenu:
		m.goTo(ScreenMainMenu)
	}
}

// message maps a session error to the status text of screen s.
func (m *Machine) message(s Screen, err error) string {
	switch {
	case errors.Is(err, session.ErrEmptyField):
		switch s {
		case ScreenLogin:
			return "Enter username and password."
		case ScreenRecover:
			return "Enter your email and a new password."
		}
		return "Fill in every field."
	case errors.Is(err, session.ErrInvalidCredentials):
		return "Wrong username or password."
	case errors.Is(err, session.ErrInvalidEmail):
		if s == ScreenRecover {
			return "Enter a valid email address."
		}
		return "Invalid email."
	case errors.Is(err, session.ErrPasswordMismatch):
		return "Passwords do not match."
	case errors.Is(err, session.ErrUsernameTaken):
		return "That username already exists."
	case errors.Is(err, session.ErrEmailTaken):
		return "That email is already registered."
	case errors.Is(err, session.ErrEmailUnknown):
		return "That email is not registered."
	case errors.Is(err, session.ErrNoPendingCode):
		return "Send the code to your email first."
	case errors.Is(err, session.ErrCodeMismatch):
		return "Wrong code."
	case errors.Is(err, session.ErrNotVerified):
		return "Verify the recovery code first."
	}
	m.logger.Error("unexpected session error", "screen", s, "error", err)
	return "Something went wrong. Try again."
}
