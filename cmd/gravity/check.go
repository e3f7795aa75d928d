package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-gravity/internal/levels"
	"github.com/vovakirdan/tui-gravity/internal/puzzle"
)

var (
	flagSolution string
	flagPack     bool
)

var checkCmd = &cobra.Command{
	Use:   "check [level-data]",
	Short: "Validate level data",
	Long: `Parse a base-32 level string, print it as an ASCII map, and optionally
replay a solution against it. With --pack, replay the shipped solution of
every level in the level pack instead.

Map glyphs:
  #  wall      =  bridge    @  player   c  crate   h  human
  *  gem       O  boulder   %  rubble   ^  fire

Examples:
  gravity check 7511111111300001100000110000611111111
  gravity check 7511111111300001100000110000611111111 --solution RD
  gravity check --pack
  gravity check --pack --levels ./my-pack.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runCheck,
}

func init() {
	checkCmd.Flags().StringVar(&flagSolution, "solution", "", "Moves to replay, e.g. RDLU")
	checkCmd.Flags().BoolVar(&flagPack, "pack", false, "Verify every level of the pack")
}

func runCheck(_ *cobra.Command, args []string) {
	cfg, err := loadGameConfig()
	if err != nil {
		fail("%v", err)
	}

	if flagPack {
		checkPack(cfg.Tuning())
		return
	}

	if len(args) != 1 {
		fail("level data required (or --pack)")
	}

	level, err := levels.NewLevel("input", args[0])
	if err != nil {
		fail("%v", err)
	}
	printLevel(level)

	if flagSolution == "" {
		return
	}
	moves, err := levels.ParseMoves(flagSolution)
	if err != nil {
		fail("%v", err)
	}
	if _, err := levels.Replay(level, cfg.Tuning(), moves); err != nil {
		fail("%v", err)
	}
	fmt.Printf("Solution clears the level in %d moves.\n", len(moves))
}

func printLevel(l levels.Level) {
	g := l.Grid()
	spawns := g.InitialSnapshot()

	fmt.Printf("Size: %dx%d\n", g.Width(), g.Height())
	fmt.Println()
	for _, row := range puzzle.FormatRows(g, spawns) {
		fmt.Println("  " + row)
	}
	fmt.Println()

	var counts []string
	for _, k := range puzzle.Kinds() {
		if n := spawns.Count(k); n > 0 {
			counts = append(counts, fmt.Sprintf("%d %s", n, k))
		}
	}
	fmt.Printf("Objects: %s\n", strings.Join(counts, ", "))
	fmt.Printf("Encoded: %s\n", l.Encoded())

	if spawns.Count(puzzle.KindGem) == 0 {
		fmt.Println("Warning: no gems, the level can never be cleared")
	}
}

func checkPack(tuning puzzle.Tuning) {
	pack, err := loadPack()
	if err != nil {
		fail("%v", err)
	}

	failed := 0
	for i, l := range pack.Levels {
		status := "ok"
		switch err := levels.VerifySolution(l, tuning); {
		case l.Solution == "":
			status = "no solution"
		case errors.Is(err, levels.ErrNotCleared):
			status = "solution does not clear"
			failed++
		case err != nil:
			status = err.Error()
			failed++
		}
		fmt.Printf("  %2d. %-16s %s\n", i+1, l.ID, status)
	}

	if failed > 0 {
		fail("%d of %d levels failed", failed, pack.Count())
	}
	fmt.Printf("All %d levels verified.\n", pack.Count())
}
