package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/decker502/lol/pkg/records"
)

var flagLimit int

var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "Show level outcomes",
	Long: `Display per-level statistics and the most recent level outcomes.

Examples:
  lol records
  lol records --limit 50`,
	Args: cobra.NoArgs,
	RunE: runRecords,
}

func init() {
	recordsCmd.Flags().IntVarP(&flagLimit, "limit", "n", 10, "Number of recent outcomes to show")
}

func runRecords(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := records.Open(cfg.RecordsPath)
	if err != nil {
		return err
	}
	defer store.Close()

	sums, err := store.Summaries()
	if err != nil {
		return err
	}
	if len(sums) == 0 {
		fmt.Println("No outcomes recorded yet.")
		fmt.Println()
		fmt.Println("Run 'lol play' to start.")
		return nil
	}

	fmt.Println("Levels")
	fmt.Println()
	fmt.Printf("  %-5s  %-5s  %-5s  %s\n", "Level", "Plays", "Wins", "Best")
	fmt.Printf("  %-5s  %-5s  %-5s  %s\n", "-----", "-----", "----", "----")
	for _, s := range sums {
		best := "-"
		if s.BestTime > 0 {
			best = fmt.Sprintf("%.1fs", s.BestTime)
		}
		fmt.Printf("  %-5d  %-5d  %-5d  %s\n", s.Level, s.Plays, s.Wins, best)
	}

	recent, err := store.Recent(flagLimit)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Println("Recent")
	fmt.Println()
	fmt.Printf("  %-16s  %-5s  %-6s  %s\n", "Date", "Level", "Result", "Time")
	fmt.Printf("  %-16s  %-5s  %-6s  %s\n", "----", "-----", "------", "----")
	for _, o := range recent {
		result := "lost"
		if o.Won {
			result = "won"
		}
		fmt.Printf("  %-16s  %-5d  %-6s  %.1fs\n", o.CreatedAt.Format("2006-01-02 15:04"), o.Level, result, o.Seconds)
	}
	return nil
}
