package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/crypto/bcrypt"

	"github.com/vovakirdan/tui-runner/internal/account"
	"github.com/vovakirdan/tui-runner/internal/app"
	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/screens"
	"github.com/vovakirdan/tui-runner/internal/storage"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	a := app.New(app.Options{
		Runner:       config.DefaultRunnerConfig(),
		Store:        storage.NewMemory(),
		Seed:         3,
		PasswordCost: bcrypt.MinCost,
	})
	t.Cleanup(func() { _ = a.Close() })
	return NewModel(a, core.RuntimeConfig{ScreenW: 120, ScreenH: 36, TickMS: 20})
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		if !ok {
			t.Fatalf("Update returned %T", next)
		}
	}
	return m
}

func signIn(t *testing.T, m Model) Model {
	t.Helper()
	m = send(t, m,
		runes("abc"),
		tea.KeyMsg{Type: tea.KeyTab},
		runes("x"),
		tea.KeyMsg{Type: tea.KeyEnter},
	)
	if got := m.app.Machine().Screen(); got != screens.ScreenMainMenu {
		t.Fatalf("screen after sign in = %s, want main_menu", got)
	}
	return m
}

func TestModelLoginToPlay(t *testing.T) {
	m := signIn(t, newTestModel(t))
	if !strings.Contains(m.View(), "coins 0") {
		t.Error("main menu view is missing the currency readout")
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if got := m.app.Machine().Screen(); got != screens.ScreenPlaying {
		t.Fatalf("screen after Play = %s", got)
	}

	m = send(t, m, TickMsg{}, TickMsg{}, TickMsg{})
	if ticks := m.app.Engine().State().Ticks; ticks != 3 {
		t.Errorf("engine ticks = %d, want 3", ticks)
	}

	m = send(t, m, runes("p"))
	if got := m.app.Machine().Screen(); got != screens.ScreenPaused {
		t.Fatalf("screen after p = %s", got)
	}
	m = send(t, m, TickMsg{})
	if ticks := m.app.Engine().State().Ticks; ticks != 3 {
		t.Errorf("engine advanced while paused: %d ticks", ticks)
	}
	m = send(t, m, runes("p"))
	if got := m.app.Machine().Screen(); got != screens.ScreenPlaying {
		t.Errorf("screen after resume = %s", got)
	}
}

func TestModelEmptyLoginShowsStatus(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab}, tea.KeyMsg{Type: tea.KeyEnter})
	if got := m.app.Machine().Screen(); got != screens.ScreenLogin {
		t.Fatalf("screen = %s, want login", got)
	}
	if !strings.Contains(m.View(), "Enter username and password.") {
		t.Error("status message not rendered")
	}
}

func TestModelCrouchReleasesAfterHold(t *testing.T) {
	m := signIn(t, newTestModel(t))
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter}, tea.KeyMsg{Type: tea.KeyDown})
	if !m.app.Engine().State().Player.Crouching {
		t.Fatal("down did not crouch")
	}
	for range crouchHoldTicks - 1 {
		m = send(t, m, TickMsg{})
	}
	if !m.app.Engine().State().Player.Crouching {
		t.Fatal("crouch released early")
	}
	m = send(t, m, TickMsg{})
	if m.app.Engine().State().Player.Crouching {
		t.Error("crouch still held after the hold window")
	}
}

func TestModelRegisterPrefillsLogin(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlN})
	if got := m.app.Machine().Screen(); got != screens.ScreenRegister {
		t.Fatalf("screen = %s, want register", got)
	}
	m = send(t, m,
		runes("bob"), tea.KeyMsg{Type: tea.KeyTab},
		runes("bob@x.io"), tea.KeyMsg{Type: tea.KeyTab},
		runes("pw"), tea.KeyMsg{Type: tea.KeyTab},
		runes("pw"), tea.KeyMsg{Type: tea.KeyEnter},
	)
	if got := m.app.Machine().Screen(); got != screens.ScreenLogin {
		t.Fatalf("screen = %s, want login", got)
	}
	if got := m.login.value(0); got != "bob" {
		t.Errorf("prefilled username = %q, want bob", got)
	}
	if m.login.focus != 1 {
		t.Errorf("focus = %d, want password field", m.login.focus)
	}
}

func TestModelExitQuits(t *testing.T) {
	m := signIn(t, newTestModel(t))
	next, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("exit returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("exit did not quit the program")
	}
	if !next.(Model).app.Done() {
		t.Error("app not closed on exit")
	}
}

func TestModelRecoverShowsCodeHint(t *testing.T) {
	m := newTestModel(t)
	if err := m.app.Session().Register("ana", "ana@x.io", "pw", "pw"); err != nil {
		t.Fatal(err)
	}
	m = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlR})
	if got := m.app.Machine().Screen(); got != screens.ScreenRecover {
		t.Fatalf("screen = %s, want recover", got)
	}
	const hint = "Enter the code from your email"
	if strings.Contains(m.View(), hint) {
		t.Fatal("code hint shown before a code was sent")
	}

	m = send(t, m, runes("ana@x.io"), tea.KeyMsg{Type: tea.KeyCtrlS})
	if !strings.Contains(m.View(), hint) {
		t.Error("code hint missing after sending a code")
	}
	if m.recover.focus != 1 {
		t.Errorf("focus = %d, want code field", m.recover.focus)
	}
}

func TestModelShopListsCatalog(t *testing.T) {
	m := signIn(t, newTestModel(t))
	m = send(t, m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyEnter})
	if got := m.app.Machine().Screen(); got != screens.ScreenShop {
		t.Fatalf("screen = %s, want shop", got)
	}
	if len(m.shop.skins) != len(account.Skins) {
		t.Errorf("shop lists %d skins, want %d", len(m.shop.skins), len(account.Skins))
	}
	if !strings.Contains(m.View(), "Infernal Dragon") {
		t.Error("shop view is missing the catalog")
	}
}
