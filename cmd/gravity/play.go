package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-gravity/internal/audio"
	"github.com/vovakirdan/tui-gravity/internal/core"
	"github.com/vovakirdan/tui-gravity/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play a level",
	Long: `Start playing. With a level number or id, that level opens directly;
without one, the level menu opens on the first uncleared level.

Controls:
  Arrows/WASD/HJKL  - Tilt gravity
  Z/U/Backspace     - Undo
  R                 - Restart the level
  P/Esc             - Pause menu
  Q                 - Back to the level menu
  Ctrl+C            - Quit

Pace options:
  relaxed - Slower slides and a longer pause after a mistake
  normal  - Default
  brisk   - Faster slides

Examples:
  gravity play
  gravity play 4
  gravity play first-fall --pace relaxed
  gravity play --levels ./my-pack.yaml --sound`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, args []string) {
	logger := newLogger()

	cfg, err := loadGameConfig()
	if err != nil {
		fail("%v", err)
	}
	pack, err := loadPack()
	if err != nil {
		fail("%v", err)
	}

	start := -1
	if len(args) == 1 {
		start, err = pack.Find(args[0])
		if err != nil {
			fail("%v\nRun 'gravity levels' to see available levels.", err)
		}
	}

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	// Open progress storage
	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	gameLogger, closeLog, err := sessionLogger()
	if err != nil {
		fail("%v", err)
	}
	defer closeLog()

	env := tui.Env{
		Pack:   pack,
		Config: cfg,
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: flagFPS,
			Seed:     flagSeed,
		},
		Tracker: tui.NewTracker(store, pack.ID, pack.Count(), gameLogger),
		Logger:  gameLogger,
	}

	if cfg.Audio.Enabled {
		sound := audio.NewManager(cfg.Audio)
		if err := sound.Initialize(); err != nil {
			logger.Warn("sound disabled", "error", err)
		} else {
			defer sound.Close()
			env.Sound = sound
		}
	}

	if err := tui.Run(env, start); err != nil {
		fail("running game: %v", err)
	}
}
