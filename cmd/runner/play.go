package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-runner/internal/app"
	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start the runner in this terminal.

Controls:
  Space/Up   - Jump
  Down       - Crouch
  P/Esc      - Pause
  R          - Play again (after game over)
  Q/Ctrl+C   - Quit

Sign-in screen:
  Tab        - Next field
  Enter      - Sign in
  Ctrl+N     - Create account
  Ctrl+R     - Recover password

Examples:
  runner play
  runner play --config ./runner.toml
  runner play --store json --json ./accounts_data.json
  runner play --seed 42`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, _ []string) {
	logger, logFile := openLogFile()
	defer logFile.Close()

	env, err := setup(logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer env.store.Close()

	cfg := core.DefaultConfig()
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	if env.runner.TickMS > 0 {
		cfg.TickMS = env.runner.TickMS
	}
	cfg.Seed = flagSeed

	if err := tui.Run(app.New(env.appOptions(logger)), cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}
}
