package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/decker502/lol/pkg/app"
	"github.com/decker502/lol/pkg/facts"
	"github.com/decker502/lol/pkg/levels"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all built-in levels",
	Long:  `Shows the built-in levels in play order. Locked levels are marked.`,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	unlocked := 1
	if gm, err := facts.OpenManager(cfg.AppName); err == nil {
		if store, err := facts.New(gm); err == nil {
			unlocked = store.GameInt(app.FactUnlocked, 1)
		}
	}

	all := levels.All()
	if len(all) == 0 {
		fmt.Println("No levels available.")
		return nil
	}

	maxName := 4 // "Name" header
	for _, l := range all {
		if len(l.Name) > maxName {
			maxName = len(l.Name)
		}
	}

	fmt.Printf("  %-3s  %-*s  %s\n", "#", maxName, "Name", "Description")
	fmt.Printf("  %-3s  %-*s  %s\n", "-", maxName, "----", "-----------")
	for i, l := range all {
		mark := ""
		if i+1 > unlocked {
			mark = " (locked)"
		}
		fmt.Printf("  %-3d  %-*s  %s%s\n", i+1, maxName, l.Name, l.Description, mark)
	}

	fmt.Println()
	fmt.Println("Run 'lol play <#>' to play a level.")
	return nil
}
