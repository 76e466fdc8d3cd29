package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var accountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "List stored accounts",
	Long: `Display every account in the configured store with its balance,
best score and skins. Credentials are never printed.

Examples:
  runner accounts
  runner accounts --store json --json ./accounts_data.json`,
	Args: cobra.NoArgs,
	Run:  runAccounts,
}

func runAccounts(_ *cobra.Command, _ []string) {
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "runner", Level: log.WarnLevel})

	env, err := setup(logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer env.store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	accounts, err := env.store.Load(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading accounts: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Accounts - %s store\n", env.cfg.StoreBackend)
	fmt.Println()

	if len(accounts) == 0 {
		fmt.Println("No accounts yet.")
		fmt.Println()
		fmt.Println("Run 'runner play' and sign in to create the first one.")
		return
	}

	names := make([]string, 0, len(accounts))
	maxNameLen := len("User")
	for name := range accounts {
		names = append(names, name)
		maxNameLen = max(maxNameLen, len(name))
	}
	sort.Strings(names)

	fmt.Printf("  %-*s  %-24s  %6s  %6s  %s\n", maxNameLen, "User", "Email", "Coins", "Best", "Skins")
	fmt.Printf("  %-*s  %-24s  %6s  %6s  %s\n", maxNameLen, "----", "-----", "-----", "----", "-----")

	for _, name := range names {
		a := accounts[name].Normalize()
		email := a.Email
		if email == "" {
			email = "-"
		}
		skins := make([]string, len(a.OwnedSkins))
		for i, id := range a.OwnedSkins {
			if id == a.EquippedSkin {
				id = "*" + id
			}
			skins[i] = id
		}
		fmt.Printf("  %-*s  %-24s  %6d  %6d  %s\n", maxNameLen, name, email, a.Currency, a.BestScore, strings.Join(skins, ","))
	}

	fmt.Println()
	fmt.Println("* equipped skin")
}
