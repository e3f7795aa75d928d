package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-gravity/internal/storage"
)

var (
	flagReset  bool
	flagExport bool
	flagImport string
	flagUser   string
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show or manage saved progress",
	Long: `Display which levels are cleared, or manage the saved progress.

Progress strings hold one character per level: 1 for cleared, 0 for not.

Examples:
  gravity progress
  gravity progress --export
  gravity progress --import 110100000000
  gravity progress --reset
  gravity progress --user alice          # Progress of an SSH player`,
	Args: cobra.NoArgs,
	Run:  runProgress,
}

func init() {
	progressCmd.Flags().BoolVar(&flagReset, "reset", false, "Delete all progress of the pack")
	progressCmd.Flags().BoolVar(&flagExport, "export", false, "Print progress as a 0/1 string")
	progressCmd.Flags().StringVar(&flagImport, "import", "", "Replace progress with a 0/1 string")
	progressCmd.Flags().StringVar(&flagUser, "user", "", "SSH user whose progress to use")
	progressCmd.MarkFlagsMutuallyExclusive("reset", "export", "import")
}

func runProgress(_ *cobra.Command, _ []string) {
	pack, err := loadPack()
	if err != nil {
		fail("%v", err)
	}

	// Open progress storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening progress database: %v", err)
	}
	defer store.Close()

	packID := storage.UserPack(pack.ID, flagUser)

	switch {
	case flagReset:
		if err := store.ClearProgress(packID); err != nil {
			fail("%v", err)
		}
		fmt.Printf("Progress of %s reset.\n", packID)
		return

	case flagImport != "":
		flags, err := storage.DecodeProgress(flagImport, pack.Count())
		if err != nil {
			fail("%v", err)
		}
		if err := store.SetProgress(packID, flags); err != nil {
			fail("%v", err)
		}
		fmt.Printf("Progress of %s imported.\n", packID)
		return
	}

	flags, err := store.Progress(packID, pack.Count())
	if err != nil {
		fail("%v", err)
	}

	if flagExport {
		fmt.Println(storage.EncodeProgress(flags))
		return
	}

	stats, err := store.Stats(packID)
	if err != nil {
		fail("%v", err)
	}

	// Display progress
	fmt.Printf("Progress - %s\n", pack.Name)
	fmt.Println()
	for i, l := range pack.Levels {
		mark := "[ ]"
		if flags[i] {
			mark = "[x]"
		}
		line := fmt.Sprintf("  %s %2d. %s", mark, i+1, l.Name)
		if best, ok, err := store.BestMoves(packID, i); err == nil && ok {
			line += fmt.Sprintf(" (best %d)", best)
		}
		fmt.Println(line)
	}

	fmt.Println()
	fmt.Printf("Cleared: %d/%d\n", stats.Cleared, pack.Count())
	if stats.TotalClears > 0 {
		fmt.Printf("Clears recorded: %d, last %s\n", stats.TotalClears, stats.LastPlayed.Format("2006-01-02 15:04"))

		recent, err := store.RecentClears(packID, 5)
		if err == nil && len(recent) > 0 {
			fmt.Println()
			fmt.Println("Recent clears:")
			for _, c := range recent {
				fmt.Printf("  level %2d in %d moves\n", c.Level+1, c.Moves)
			}
		}
	}
}
