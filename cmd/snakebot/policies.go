package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/snakebot/internal/registry"
)

var policiesCmd = &cobra.Command{
	Use:   "policies",
	Short: "List autopilot fallback policies",
	Long: `Shows the policies the autopilot can fall back to when no path to the
food exists. Select one with autopilot.fallback in snake.yaml or with
'snakebot simulate --policy'.`,
	Args: cobra.NoArgs,
	Run:  runPolicies,
}

func runPolicies(_ *cobra.Command, _ []string) {
	policies := registry.List()

	if len(policies) == 0 {
		fmt.Println("No policies available.")
		return
	}

	fmt.Println("Fallback policies:")
	fmt.Println()

	maxNameLen := 4 // "Name" header
	for _, p := range policies {
		maxNameLen = max(maxNameLen, len(p.Name))
	}

	fmt.Printf("  %-*s  %s\n", maxNameLen, "Name", "Description")
	fmt.Printf("  %-*s  %s\n", maxNameLen, "----", "-----------")
	for _, p := range policies {
		fmt.Printf("  %-*s  %s\n", maxNameLen, p.Name, p.Description)
	}
}
