// gravity is a tile-grid gravity puzzle for the terminal.
//
// Usage:
//
//	gravity                  - Open the level menu
//	gravity play [level]     - Play a level by number or id, or open the menu
//	gravity levels           - List the levels of the pack with progress
//	gravity progress         - Show, reset, export or import progress
//	gravity serve            - Start SSH server for remote play
//	gravity check <data>     - Validate a level string and replay a solution
//
// Global flags:
//
//	--fps <rate>      - Set tick rate (default: 60)
//	--seed <n>        - Particle RNG seed (default: time based)
//	--db <path>       - Set database path (default: ~/.gravity/progress.db)
//	--config <path>   - Use a custom gameplay config YAML
//	--pace <preset>   - Animation pace: relaxed, normal, brisk
//	--levels <path>   - Use a custom level pack YAML
//	--sound           - Enable sound effects
//	--log-file <path> - Write debug logs of play sessions to a file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagConfig  string
	flagPace    string
	flagLevels  string
	flagSound   bool
	flagLogFile string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "gravity",
	Short: "Gravity - a sliding tile puzzle in your terminal",
	Long: `Gravity is a terminal puzzle: every move tilts the whole level, and
everything that can slide slides until it hits something. Collect every
gem without getting the player crushed or burned.

Available commands:
  play      - Play a level directly, or pick one from the menu
  levels    - Show the levels of the pack
  progress  - View or manage saved progress
  serve     - Start SSH server for remote play
  check     - Validate level data

Examples:
  gravity
  gravity play 3
  gravity play detour --pace brisk
  gravity progress --export
  gravity serve --ssh :2222
  gravity check --pack`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "Particle RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.gravity/progress.db", "Path to progress database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom gameplay config YAML")
	rootCmd.PersistentFlags().StringVar(&flagPace, "pace", "", "Animation pace: relaxed, normal, brisk")
	rootCmd.PersistentFlags().StringVar(&flagLevels, "levels", "", "Path to custom level pack YAML")
	rootCmd.PersistentFlags().BoolVar(&flagSound, "sound", false, "Enable sound effects")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write debug logs of play sessions to this file")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(checkCmd)
}
