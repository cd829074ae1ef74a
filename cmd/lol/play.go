package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/decker502/lol/pkg/app"
	"github.com/decker502/lol/pkg/levels"
)

var flagFile string

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play the game",
	Long: `Open the game window and start playing.

Without a level number the game resumes at the highest unlocked level.
With --file a single YAML level is played instead of the built-in ones.

Controls:
  Mouse/Touch   - Tap, drag and swipe
  Arrows/WASD   - Tilt
  P/Esc         - Pause
  F11           - Toggle fullscreen

Examples:
  lol play
  lol play 2
  lol play --file ./levels/custom.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagFile, "file", "", "Play a single level from a YAML file")
}

func runPlay(cmd *cobra.Command, args []string) error {
	level := 0
	if len(args) == 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 || n > levels.Count() {
			return fmt.Errorf("invalid level %q: expected 1..%d", args[0], levels.Count())
		}
		level = n
	}

	a, err := app.New(app.Options{
		ConfigPath: flagConfig,
		DBPath:     flagDBPath,
		Level:      level,
		File:       flagFile,
		Verbose:    flagVerbose,
	})
	if err != nil {
		return err
	}
	defer a.Close()

	return a.Run()
}
