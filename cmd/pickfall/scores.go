package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/pickfall/pickfall/internal/platform/tui"
	"github.com/pickfall/pickfall/internal/storage"
)

var flagScoresTUI bool

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show deepest runs and the chat leaderboard",
	Long: `Display the top 10 deepest runs and the viewers whose TNT broke
the most blocks.

Examples:
  pickfall scores
  pickfall scores --tui`,
	Run: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Browse scores in an interactive table")
}

func runScores(cmd *cobra.Command, args []string) {
	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagScoresTUI {
		width, height := 80, 24 // Defaults
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width = w
			height = h
		}
		if tuiErr := tui.RunScoreboard(store, width, height); tuiErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", tuiErr)
			os.Exit(1)
		}
		return
	}

	runs, err := store.TopRuns(10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Deepest Runs")
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'pickfall play' to set the first record!")
	} else {
		// Print header
		fmt.Printf("  %-4s  %-10s  %-10s  %s\n", "Rank", "Depth", "Duration", "Date")
		fmt.Printf("  %-4s  %-10s  %-10s  %s\n", "----", "-----", "--------", "----")

		for i, entry := range runs {
			dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
			fmt.Printf("  %-4d  %-10d  %-9ds  %s\n", i+1, entry.Depth, entry.Duration, dateStr)
		}

		if best, bestErr := store.BestDepth(); bestErr == nil {
			fmt.Println()
			fmt.Printf("Best: %d\n", best)
		}
	}

	chatters, err := store.TopChatters(10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving leaderboard: %v\n", err)
		os.Exit(1)
	}
	if len(chatters) == 0 {
		return
	}

	fmt.Println()
	fmt.Println("Chat Leaderboard")
	fmt.Println()
	fmt.Printf("  %-4s  %-24s  %s\n", "Rank", "Viewer", "Blocks")
	fmt.Printf("  %-4s  %-24s  %s\n", "----", "------", "------")
	for i, entry := range chatters {
		fmt.Printf("  %-4d  %-24s  %d\n", i+1, entry.Author, entry.BlocksBroken)
	}
}
