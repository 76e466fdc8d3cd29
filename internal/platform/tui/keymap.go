package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-runner/internal/screens"
)

// KeyMap holds every binding used by the runner views.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Select   key.Binding
	Back     key.Binding
	Quit     key.Binding
	Next     key.Binding
	Prev     key.Binding
	Register key.Binding
	Recover  key.Binding
	SendCode key.Binding
	Verify   key.Binding
	Jump     key.Binding
	Crouch   key.Binding
	Pause    key.Binding
	Restart  key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "quit"),
		),
		Next: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "next field"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("S-tab", "prev field"),
		),
		Register: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("ctrl+n", "create account"),
		),
		Recover: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "forgot password"),
		),
		SendCode: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "send code"),
		),
		Verify: key.NewBinding(
			key.WithKeys("ctrl+v"),
			key.WithHelp("ctrl+v", "verify code"),
		),
		Jump: key.NewBinding(
			key.WithKeys(" ", "up", "w"),
			key.WithHelp("space/up", "jump"),
		),
		Crouch: key.NewBinding(
			key.WithKeys("down", "s"),
			key.WithHelp("down", "crouch"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", "esc"),
			key.WithHelp("p", "pause"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "play again"),
		),
	}
}

// PlayAction maps a key pressed during a run to a machine action.
// It returns nil for keys that do nothing in play.
func (k KeyMap) PlayAction(msg tea.KeyMsg) screens.Action {
	switch {
	case key.Matches(msg, k.Jump):
		return screens.Jump{}
	case key.Matches(msg, k.Crouch):
		return screens.CrouchPress{}
	case key.Matches(msg, k.Pause):
		return screens.Pause{}
	}
	return nil
}

// MenuMove returns -1, 1 or 0 for cursor movement.
func (k KeyMap) MenuMove(msg tea.KeyMsg) int {
	switch {
	case key.Matches(msg, k.Up):
		return -1
	case key.Matches(msg, k.Down):
		return 1
	}
	return 0
}

// FormMove returns -1, 1 or 0 for field focus movement.
func (k KeyMap) FormMove(msg tea.KeyMsg) int {
	switch {
	case key.Matches(msg, k.Prev):
		return -1
	case key.Matches(msg, k.Next):
		return 1
	}
	return 0
}

// helpBindings is the short help for a screen.
type helpBindings []key.Binding

func (h helpBindings) ShortHelp() []key.Binding  { return h }
func (h helpBindings) FullHelp() [][]key.Binding { return [][]key.Binding{h} }

// Help returns the bindings shown on screen s.
func (k KeyMap) Help(s screens.Screen) helpBindings {
	ctrlC := key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit"))
	switch s {
	case screens.ScreenLogin:
		return helpBindings{k.Select, k.Next, k.Register, k.Recover, ctrlC}
	case screens.ScreenRegister:
		return helpBindings{k.Select, k.Next, withHelp(k.Back, "esc", "back"), ctrlC}
	case screens.ScreenRecover:
		return helpBindings{k.SendCode, k.Verify, withHelp(k.Select, "enter", "reset password"), k.Next, withHelp(k.Back, "esc", "back")}
	case screens.ScreenMainMenu:
		return helpBindings{k.Up, k.Down, k.Select, k.Quit}
	case screens.ScreenShop:
		return helpBindings{k.Up, k.Down, withHelp(k.Select, "enter", "buy/equip"), k.Back}
	case screens.ScreenSkins:
		return helpBindings{k.Up, k.Down, withHelp(k.Select, "enter", "equip"), k.Back}
	case screens.ScreenPlaying:
		return helpBindings{k.Jump, k.Crouch, k.Pause, k.Quit}
	case screens.ScreenPaused, screens.ScreenGameOver:
		return helpBindings{k.Up, k.Down, k.Select, k.Restart, k.Back}
	}
	return nil
}

func withHelp(b key.Binding, keys, desc string) key.Binding {
	b.SetHelp(keys, desc)
	return b
}
