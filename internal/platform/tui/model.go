package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-runner/internal/account"
	"github.com/vovakirdan/tui-runner/internal/app"
	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/screens"
)

// crouchHoldTicks keeps the player down after the last crouch key repeat.
// Terminals report no key releases, so crouch ends when repeats stop.
const crouchHoldTicks = 12

// reserved rows around the playfield: stats, help and menus.
const chromeRows = 6

type menuEntry struct {
	label  string
	action screens.Action
}

var (
	mainMenu = []menuEntry{
		{"Play", screens.Play{}},
		{"Shop", screens.OpenShop{}},
		{"Skins", screens.OpenSkins{}},
		{"Exit", screens.Exit{}},
	}
	pauseMenu = []menuEntry{
		{"Continue", screens.Continue{}},
		{"Main menu", screens.BackToMenu{}},
	}
	gameOverMenu = []menuEntry{
		{"Play again", screens.PlayAgain{}},
		{"Main menu", screens.BackToMenu{}},
	}
)

// Model is the Bubble Tea model for one player's session.
type Model struct {
	app    *app.App
	keys   KeyMap
	help   help.Model
	config core.RuntimeConfig
	screen *core.Screen

	login    form
	register form
	recover  form
	shop     catalog
	skins    catalog
	cursor   int
	last     screens.Screen

	crouchTicks int
	width       int
	height      int
	quitting    bool
}

// NewModel creates a model driving a.
func NewModel(a *app.App, cfg core.RuntimeConfig) Model {
	m := Model{
		app:      a,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		config:   cfg,
		screen:   core.NewScreen(max(1, cfg.ScreenW), max(1, cfg.ScreenH-chromeRows)),
		login:    loginForm(),
		register: registerForm(),
		recover:  recoverForm(),
		shop:     newCatalog(false),
		skins:    newCatalog(true),
		width:    cfg.ScreenW,
		height:   cfg.ScreenH,
		last:     a.Machine().Screen(),
	}
	m.resize(cfg.ScreenW, cfg.ScreenH)
	return m
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickMS)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()
	}
	return m, nil
}

func (m *Model) resize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	m.width, m.height = w, h
	m.config.ScreenW, m.config.ScreenH = w, h
	m.help.Width = w
	rows := max(1, h-chromeRows)
	m.screen.Resize(w, rows)
	st := m.app.Engine().State()
	m.app.Resize(WorldSize(w, rows, st.Height), st.Height)
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	// Save failures are logged by the session manager.
	_ = m.app.Close()
	return m, tea.Quit
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m.quit()
	}

	scr := m.app.Machine().Screen()
	var cmd tea.Cmd
	switch scr {
	case screens.ScreenLogin:
		cmd = m.loginKey(msg)
	case screens.ScreenRegister:
		cmd = m.registerKey(msg)
	case screens.ScreenRecover:
		cmd = m.recoverKey(msg)
	case screens.ScreenMainMenu:
		if key.Matches(msg, m.keys.Quit) {
			m.app.Dispatch(screens.Exit{})
			break
		}
		m.menuKey(msg, mainMenu)
	case screens.ScreenShop:
		m.catalogKey(msg, &m.shop, func(id string) screens.Action { return screens.Purchase{SkinID: id} })
	case screens.ScreenSkins:
		m.catalogKey(msg, &m.skins, func(id string) screens.Action { return screens.Equip{SkinID: id} })
	case screens.ScreenPlaying:
		if key.Matches(msg, m.keys.Quit) {
			return m.quit()
		}
		if a := m.keys.PlayAction(msg); a != nil {
			if _, ok := a.(screens.CrouchPress); ok {
				m.crouchTicks = crouchHoldTicks
			}
			m.app.Dispatch(a)
		}
	case screens.ScreenPaused:
		if msg.String() == "p" {
			m.app.Dispatch(screens.Continue{})
			break
		}
		m.resultKey(msg, pauseMenu, screens.Continue{})
	case screens.ScreenGameOver:
		m.resultKey(msg, gameOverMenu, screens.PlayAgain{})
	}

	m.sync()
	if m.app.Done() {
		return m.quit()
	}
	return m, cmd
}

func (m *Model) loginKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Register):
		m.register.clear()
		m.register.setFocus(0)
		m.app.Dispatch(screens.OpenRegister{})
	case key.Matches(msg, m.keys.Recover):
		m.recover.clear()
		m.recover.setFocus(0)
		m.app.Dispatch(screens.OpenRecover{})
	case key.Matches(msg, m.keys.Select):
		if m.login.focus == 0 && m.login.value(1) == "" {
			m.login.move(1)
			return nil
		}
		m.app.Dispatch(screens.Login{Username: m.login.value(0), Password: m.login.value(1)})
		m.login.clear(1)
	case m.keys.FormMove(msg) != 0:
		m.login.move(m.keys.FormMove(msg))
	default:
		return m.login.update(msg)
	}
	return nil
}

func (m *Model) registerKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case msg.Type == tea.KeyEsc:
		m.app.Dispatch(screens.BackToLogin{})
	case key.Matches(msg, m.keys.Select):
		f := &m.register
		m.app.Dispatch(screens.Register{
			Username: f.value(0),
			Email:    f.value(1),
			Password: f.value(2),
			Confirm:  f.value(3),
		})
	case m.keys.FormMove(msg) != 0:
		m.register.move(m.keys.FormMove(msg))
	default:
		return m.register.update(msg)
	}
	return nil
}

func (m *Model) recoverKey(msg tea.KeyMsg) tea.Cmd {
	f := &m.recover
	switch {
	case msg.Type == tea.KeyEsc:
		m.app.Dispatch(screens.BackToLogin{})
	case key.Matches(msg, m.keys.SendCode):
		m.app.Dispatch(screens.SendCode{Email: f.value(0)})
		f.setFocus(1)
	case key.Matches(msg, m.keys.Verify):
		m.app.Dispatch(screens.VerifyCode{Email: f.value(0), Code: f.value(1)})
		f.setFocus(2)
	case key.Matches(msg, m.keys.Select):
		m.app.Dispatch(screens.ResetPassword{Email: f.value(0), Password: f.value(2), Confirm: f.value(3)})
	case m.keys.FormMove(msg) != 0:
		f.move(m.keys.FormMove(msg))
	default:
		return f.update(msg)
	}
	return nil
}

func (m *Model) menuKey(msg tea.KeyMsg, entries []menuEntry) {
	if d := m.keys.MenuMove(msg); d != 0 {
		m.cursor = (m.cursor + d + len(entries)) % len(entries)
		return
	}
	if key.Matches(msg, m.keys.Select) || msg.String() == " " {
		m.app.Dispatch(entries[min(m.cursor, len(entries)-1)].action)
	}
}

func (m *Model) resultKey(msg tea.KeyMsg, entries []menuEntry, restart screens.Action) {
	switch {
	case key.Matches(msg, m.keys.Restart):
		m.app.Dispatch(restart)
	case key.Matches(msg, m.keys.Back):
		m.app.Dispatch(screens.BackToMenu{})
	case key.Matches(msg, m.keys.Quit):
		m.app.Dispatch(screens.BackToMenu{})
	default:
		m.menuKey(msg, entries)
	}
}

func (m *Model) catalogKey(msg tea.KeyMsg, c *catalog, act func(string) screens.Action) {
	switch {
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Quit):
		m.app.Dispatch(screens.BackToMenu{})
	case key.Matches(msg, m.keys.Select):
		if s, ok := c.selected(); ok {
			m.app.Dispatch(act(s.ID))
		}
	default:
		c.move(m.keys.MenuMove(msg))
	}
}

// sync reacts to screen changes made by the last action or tick.
func (m *Model) sync() {
	scr := m.app.Machine().Screen()
	if scr != m.last {
		m.cursor = 0
		if scr != screens.ScreenPlaying {
			m.crouchTicks = 0
		}
		switch scr {
		case screens.ScreenLogin:
			m.login.clear(1)
			if name, ok := m.app.Machine().TakePrefill(); ok {
				m.login.set(0, name)
				m.login.setFocus(1)
			}
		case screens.ScreenRecover:
			m.recover.setFocus(0)
		}
		m.last = scr
	}
	p := m.app.Session().Profile()
	if screens.Visible(scr, screens.RegionShop) {
		m.shop.refresh(p)
	}
	if screens.Visible(scr, screens.RegionSkins) {
		m.skins.refresh(p)
	}
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, nil
	}
	if m.crouchTicks > 0 {
		m.crouchTicks--
		if m.crouchTicks == 0 {
			m.app.Dispatch(screens.CrouchRelease{})
		}
	}
	m.app.Tick()
	m.sync()
	return m, tickCmd(m.config.TickMS)
}

// View renders the visible regions of the current screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	scr := m.app.Machine().Screen()

	var parts []string
	for _, r := range screens.Regions(scr) {
		if s := m.region(scr, r); s != "" {
			parts = append(parts, s)
		}
	}
	parts = append(parts, m.help.View(m.keys.Help(scr)))

	body := lipgloss.JoinVertical(lipgloss.Center, parts...)
	if m.width <= 0 || m.height <= 0 {
		return body
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Top, body)
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#f97316")).MarginBottom(1)
	coinStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#facc15")).Bold(true)
	bestStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#38bdf8"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Padding(0, 1)
	itemStyle     = lipgloss.NewStyle().Padding(0, 1)
	bannerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#fca5a5")).MarginTop(1)
)

func (m Model) region(scr screens.Screen, r screens.Region) string {
	mach := m.app.Machine()
	switch r {
	case screens.RegionStats:
		return m.stats()
	case screens.RegionTitle:
		return titleStyle.Render("D I N O   R U N N E R")
	case screens.RegionLoginForm:
		return m.login.view(mach.Status(screens.ScreenLogin))
	case screens.RegionRegisterForm:
		return m.register.view(mach.Status(screens.ScreenRegister))
	case screens.RegionRecoverForm:
		view := m.recover.view(mach.Status(screens.ScreenRecover))
		if m.app.Session().RecoveryPending() {
			view += "\n" + mutedStyle.Render("Enter the code from your email, then ctrl+v to verify.")
		}
		return view
	case screens.RegionMenu:
		return titleStyle.Render("Main menu") + "\n" + m.menuView(mainMenu)
	case screens.RegionShop:
		return titleStyle.Render("Shop") + "\n" + m.shop.view()
	case screens.RegionSkins:
		return titleStyle.Render("Your skins") + "\n" + m.skins.view()
	case screens.RegionHelp:
		if scr == screens.ScreenMainMenu {
			return mutedStyle.Render("Jump with space or up, crouch with down. Coins buy skins in the shop.")
		}
		return ""
	case screens.RegionPlayfield:
		st := m.app.Engine().State()
		skin, _ := account.SkinByID(m.app.Session().Profile().Equipped)
		DrawWorld(m.screen, st, skin)
		return RenderScreen(m.screen, PaletteFor(st.Day))
	case screens.RegionPauseMenu:
		return bannerStyle.Render("PAUSED") + "\n" + m.menuView(pauseMenu)
	case screens.RegionGameOverMenu:
		return bannerStyle.Render(fmt.Sprintf("GAME OVER  score %d", m.app.Engine().Score())) + "\n" + m.menuView(gameOverMenu)
	}
	return ""
}

func (m Model) stats() string {
	s := m.app.Session()
	if !s.Active() {
		return titleStyle.Render("D I N O   R U N N E R")
	}
	p := s.Profile()
	return strings.Join([]string{
		mutedStyle.Render(p.Username),
		coinStyle.Render(fmt.Sprintf("coins %d", p.Currency)),
		bestStyle.Render(fmt.Sprintf("best %d", p.BestScore)),
		fmt.Sprintf("score %d", m.app.Engine().Score()),
	}, "   ")
}

func (m Model) menuView(entries []menuEntry) string {
	lines := make([]string, len(entries))
	for i, e := range entries {
		if i == m.cursor {
			lines[i] = selectedStyle.Render("> " + e.label)
		} else {
			lines[i] = itemStyle.Render("  " + e.label)
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// Run starts a local Bubble Tea program for a and closes it on exit.
func Run(a *app.App, cfg core.RuntimeConfig) error {
	p := tea.NewProgram(NewModel(a, cfg), tea.WithAltScreen())
	_, err := p.Run()
	if cerr := a.Close(); err == nil {
		err = cerr
	}
	return err
}
