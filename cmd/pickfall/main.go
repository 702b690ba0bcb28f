// pickfall is a chat-driven falling-pickaxe game for the terminal.
// A pickaxe mines its way down an endless block column while live-stream
// chat rains TNT on it.
//
// Usage:
//
//	pickfall play            - Play locally (optionally chat-connected)
//	pickfall simulate        - Play with a synthetic chat firehose
//	pickfall serve           - Start SSH server for remote play
//	pickfall scores          - Show deepest runs and the chat leaderboard
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible worlds
//	--db <path>     - Set database path (default: ~/.pickfall/pickfall.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pickfall",
	Short: "Pickfall - a chat-driven falling pickaxe in your terminal",
	Long: `Pickfall drops a pickaxe down an endless destructible column.
Viewers of a connected live stream make things interesting: any chat
message queues a TNT, keywords trigger MegaTNT, speed changes, pickaxe
swaps and enlarges, and gifts buy whole TNT volleys.

Available commands:
  play      - Play locally, with or without a chat connection
  simulate  - Play against a synthetic chat, no stream required
  serve     - Start SSH server for remote play
  scores    - View deepest runs and the chat leaderboard

Examples:
  pickfall play
  pickfall play --chat --platform kick --channel mychannel
  pickfall simulate
  pickfall serve --ssh :2222
  pickfall scores`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.pickfall/pickfall.db", "Path to database")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}
