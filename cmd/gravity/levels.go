package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-gravity/internal/platform/tui"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List the levels of the pack",
	Long:  `Shows every level of the level pack with its cleared flag and best move count.`,
	Args:  cobra.NoArgs,
	Run:   runLevels,
}

func runLevels(_ *cobra.Command, _ []string) {
	logger := newLogger()

	pack, err := loadPack()
	if err != nil {
		fail("%v", err)
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}
	tracker := tui.NewTracker(store, pack.ID, pack.Count(), logger)

	fmt.Printf("%s (%d/%d cleared)\n", pack.Name, tracker.ClearedCount(), pack.Count())
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, l := range pack.Levels {
		maxIDLen = max(maxIDLen, len(l.ID))
	}

	// Print header
	fmt.Printf("  %-3s  %-*s  %-7s  %-4s  %s\n", "#", maxIDLen, "ID", "Status", "Best", "Name")
	fmt.Printf("  %-3s  %-*s  %-7s  %-4s  %s\n", "-", maxIDLen, "--", "------", "----", "----")

	// Print levels
	for i, l := range pack.Levels {
		status, best := "", "-"
		if tracker.Cleared(i) {
			status = "cleared"
		}
		if b := tracker.Best(i); b > 0 {
			best = fmt.Sprintf("%d", b)
		}
		fmt.Printf("  %-3d  %-*s  %-7s  %-4s  %s\n", i+1, maxIDLen, l.ID, status, best, l.Name)
	}

	fmt.Println()
	fmt.Println("Run 'gravity play <number>' to play a level.")
}
