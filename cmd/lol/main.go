// lol runs the physics-game demo levels.
//
// Usage:
//
//	lol play [level]   - Play from a level (default: highest unlocked)
//	lol list           - List built-in levels
//	lol records        - Show recent level outcomes and per-level stats
//
// Global flags:
//
//	--config <path>  - Engine config YAML (default: ./configs/engine.yaml)
//	--db <path>      - Records database (default: recordsPath from config)
//	--verbose        - Log informational diagnostics
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/decker502/lol/pkg/config"
	"github.com/decker502/lol/pkg/diag"
)

var (
	// Global flags
	flagConfig  string
	flagDBPath  string
	flagVerbose bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "lol",
	Short: "A small 2D physics game",
	Long: `lol plays a sequence of physics-driven levels: tilt a hero through
a maze, gather goodies, or throw stones at patrolling enemies.

Examples:
  lol play
  lol play 3
  lol play --file ./my-level.yaml
  lol list
  lol records`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to engine config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to records database")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log informational diagnostics")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(recordsCmd)
}

// loadConfig 读取引擎配置并应用全局标志
func loadConfig() (config.Engine, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagVerbose {
		cfg.Verbose = true
	}
	if flagDBPath != "" {
		cfg.RecordsPath = flagDBPath
	}
	diag.SetVerbose(cfg.Verbose)
	return cfg, nil
}
