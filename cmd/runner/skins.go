package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-runner/internal/account"
)

var skinsCmd = &cobra.Command{
	Use:   "skins",
	Short: "List the skin catalog",
	Long:  `Shows every skin that can be bought in the shop and its price.`,
	Args:  cobra.NoArgs,
	Run:   runSkins,
}

func runSkins(_ *cobra.Command, _ []string) {
	fmt.Println("Skins:")
	fmt.Println()

	maxIDLen := len("ID")
	for _, s := range account.Skins {
		maxIDLen = max(maxIDLen, len(s.ID))
	}

	fmt.Printf("  %-*s  %-20s  %5s  %s\n", maxIDLen, "ID", "Name", "Cost", "Colors")
	fmt.Printf("  %-*s  %-20s  %5s  %s\n", maxIDLen, "--", "----", "----", "------")
	for _, s := range account.Skins {
		fmt.Printf("  %-*s  %-20s  %5d  %s/%s\n", maxIDLen, s.ID, s.Name, s.Cost, s.Body, s.Accent)
	}

	fmt.Println()
	fmt.Println("Collect coins while running and spend them in the shop during 'runner play'.")
}
