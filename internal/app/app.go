// Package app wires one player's session together: the screen machine, the
// simulation engine, the session manager and the recovery mail dispatcher.
// An App is driven by a single tick loop and is not safe for concurrent use.
package app

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-runner/internal/account"
	"github.com/vovakirdan/tui-runner/internal/assets"
	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/notify"
	"github.com/vovakirdan/tui-runner/internal/runner"
	"github.com/vovakirdan/tui-runner/internal/screens"
	"github.com/vovakirdan/tui-runner/internal/session"
)

// Options configures an App.
type Options struct {
	Runner       config.RunnerConfig
	Store        account.Store   // shared; not closed by the App
	Notifier     notify.Notifier // nil means SMTP is not configured
	SendTimeout  time.Duration
	Variants     []assets.Variant
	Random       runner.Random // nil means a source seeded with Seed
	Seed         int64
	Codes        session.CodeSource
	PasswordCost int
	Logger       *log.Logger
}

// App is the context owned by the tick driver.
type App struct {
	machine *screens.Machine
	engine  *runner.Engine
	session *session.Manager
	mailer  *notify.Dispatcher
	logger  *log.Logger
	closed  bool
}

// New builds an App on the login screen.
func New(opts Options) *App {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	rng := opts.Random
	if rng == nil {
		seed := opts.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rng = runner.NewRandom(seed)
	}
	notifier := opts.Notifier
	if notifier == nil {
		notifier = notify.NewSMTP(config.SMTPConfig{}, opts.SendTimeout)
	}

	mgr := session.New(session.Options{
		Store:        opts.Store,
		Logger:       logger.WithPrefix("session"),
		Codes:        opts.Codes,
		PasswordCost: opts.PasswordCost,
	})
	engine := runner.New(opts.Runner, rng, opts.Variants)
	mailer := notify.NewDispatcher(notifier, opts.SendTimeout, logger.WithPrefix("mail"))

	return &App{
		machine: screens.New(mgr, engine, mailer, logger.WithPrefix("screens")),
		engine:  engine,
		session: mgr,
		mailer:  mailer,
		logger:  logger,
	}
}

// Machine returns the screen machine.
func (a *App) Machine() *screens.Machine { return a.machine }

// Engine returns the simulation engine.
func (a *App) Engine() *runner.Engine { return a.engine }

// Session returns the session manager.
func (a *App) Session() *session.Manager { return a.session }

// Dispatch routes a user action through the screen machine.
func (a *App) Dispatch(action screens.Action) {
	if a.closed {
		return
	}
	a.machine.Dispatch(action)
}

// Resize changes the engine playfield.
func (a *App) Resize(w, h float64) {
	a.engine.Resize(w, h)
}

// Tick runs one fixed step: it applies finished deliveries, advances the
// engine while a run is live and settles the step's coins and crash.
func (a *App) Tick() runner.StepResult {
	if a.closed {
		return runner.StepResult{}
	}
	for {
		res, ok := a.mailer.Poll()
		if !ok {
			break
		}
		a.machine.DeliveryResult(res)
	}

	if !a.machine.Advancing() {
		return runner.StepResult{Score: a.engine.Score()}
	}

	step := a.engine.Step()
	if step.Reward > 0 {
		a.session.AwardCurrency(step.Reward)
	}
	if step.Crashed {
		a.session.RecordScore(step.Score)
		a.machine.GameOver()
		a.logger.Info("run over", "user", a.session.Profile().Username, "score", step.Score)
	}
	return step
}

// Done reports whether the player exited from the main menu.
func (a *App) Done() bool {
	return a.closed || a.machine.Terminated()
}

// Close flushes the profile and stops pending deliveries.
// It is safe to call more than once.
func (a *App) Close() error {
	if a.closed {
		return nil
	}
	a.closed = true
	err := a.session.Close()
	a.mailer.Close()
	return err
}
