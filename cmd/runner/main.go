// runner is a terminal side-scrolling runner with accounts, coins and skins.
//
// Usage:
//
//	runner play              - Play locally in this terminal
//	runner serve             - Start SSH server for remote play
//	runner accounts          - List stored accounts
//	runner skins             - List the skin catalog
//	runner tuning            - Print the default tuning file
//
// Global flags:
//
//	--config <path>     - Tuning file (YAML or TOML)
//	--store <backend>   - Account store: sqlite, json, redis or memory
//	--db <path>         - SQLite database path (default: ~/.runner/accounts.db)
//	--json <path>       - JSON accounts file (default: ~/.runner/accounts_data.json)
//	--redis-url <url>   - Redis URL (default: redis://localhost:6379/0)
//	--assets <dir>      - Directory of obstacle PNG sprites
//	--seed <value>      - RNG seed for reproducible runs
//	--env <path>        - .env file with SMTP settings (default: .env)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-runner/internal/config"
)

var (
	// Global flags
	flagConfig   string
	flagStore    string
	flagDBPath   string
	flagJSONPath string
	flagRedisURL string
	flagAssets   string
	flagSeed     int64
	flagEnvFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "runner",
	Short: "Dino Runner - jump, duck and collect coins in your terminal",
	Long: `Dino Runner is a side-scrolling arcade runner for the terminal.

Sign in, dodge cacti and birds, collect coins and spend them on skins.
Progress is saved per account.

Available commands:
  play      - Play locally
  serve     - Start SSH server for remote play
  accounts  - List stored accounts
  skins     - List the skin catalog
  tuning    - Print the default tuning file

Examples:
  runner play
  runner play --store json --json ./accounts_data.json
  runner serve --ssh :2222 --store redis
  runner accounts`,
	Run: runPlay,
}

func init() {
	defaults := config.DefaultAppConfig()

	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to tuning config (YAML or TOML)")
	rootCmd.PersistentFlags().StringVar(&flagStore, "store", defaults.StoreBackend, "Account store: sqlite, json, redis or memory")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", defaults.DBPath, "Path to SQLite accounts database")
	rootCmd.PersistentFlags().StringVar(&flagJSONPath, "json", defaults.JSONPath, "Path to JSON accounts file")
	rootCmd.PersistentFlags().StringVar(&flagRedisURL, "redis-url", defaults.RedisURL, "Redis URL for the redis store")
	rootCmd.PersistentFlags().StringVar(&flagAssets, "assets", defaults.AssetsDir, "Directory of obstacle PNG sprites")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagEnvFile, "env", ".env", "Path to .env file with SMTP settings")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(accountsCmd)
	rootCmd.AddCommand(skinsCmd)
	rootCmd.AddCommand(tuningCmd)
}
