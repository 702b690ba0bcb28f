package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/pickfall/pickfall/internal/chat"
	"github.com/pickfall/pickfall/internal/config"
	"github.com/pickfall/pickfall/internal/core"
	"github.com/pickfall/pickfall/internal/game"
	"github.com/pickfall/pickfall/internal/platform/tui"
	"github.com/pickfall/pickfall/internal/queue"
	"github.com/pickfall/pickfall/internal/storage"
)

var (
	flagConfig   string
	flagChat     bool
	flagPlatform string
	flagChannel  string
	flagAPIKey   string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play locally, with or without a chat connection",
	Long: `Drop the pickaxe and start mining.

Controls:
  T          - Spawn a TNT
  M          - Spawn a MegaTNT
  P/Esc      - Pause
  R          - Restart
  Q/Ctrl+C   - Quit

With --chat the game connects to a live stream and viewers take over
the TNT supply: every message queues one, keywords trigger MegaTNT,
speed changes, pickaxe swaps and enlarges.

Examples:
  pickfall play
  pickfall play --config ./my-pickfall.yaml
  pickfall play --chat --platform kick --channel mychannel
  pickfall play --chat --platform youtube --channel dQw4w9WgXcQ --api-key $YT_KEY`,
	Run: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().BoolVar(&flagChat, "chat", false, "Connect to a live chat")
	playCmd.Flags().StringVar(&flagPlatform, "platform", "", "Chat platform: kick or youtube")
	playCmd.Flags().StringVar(&flagChannel, "channel", "", "Kick channel slug or YouTube video ID")
	playCmd.Flags().StringVar(&flagAPIKey, "api-key", "", "YouTube Data API key")
}

func runPlay(cmd *cobra.Command, args []string) {
	gameCfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Flags override the config file
	if flagChat {
		gameCfg.Chat.Enabled = true
	}
	if flagPlatform != "" {
		gameCfg.Chat.Platform = flagPlatform
	}
	if flagChannel != "" {
		gameCfg.Chat.Channel = flagChannel
	}
	if flagAPIKey != "" {
		gameCfg.Chat.APIKey = flagAPIKey
	}

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	// Create runtime config
	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	// Wire the chat pipeline when enabled. A dead stream only disables
	// chat; the game itself keeps running.
	var bus *queue.Bus
	var listener *chat.Listener
	if gameCfg.Chat.Enabled {
		bus = queue.NewBus()

		source, srcErr := buildChatSource(gameCfg.Chat)
		if srcErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", srcErr)
			os.Exit(1)
		}

		logger := log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "pickfall-chat",
		})
		listener = chat.NewListener(bus, source, logger)
		listener.Start(context.Background())
	}

	g := game.New(gameCfg, bus)

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	// Run the game
	runErr := tui.Run(g, store, cfg, gameCfg.Progress.SaveIntervalSeconds)

	if listener != nil {
		listener.Stop()
	}
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// buildChatSource constructs the configured chat source.
func buildChatSource(cfg config.ChatConfig) (chat.Source, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "pickfall-" + cfg.Platform,
	})

	switch cfg.Platform {
	case "kick":
		if cfg.Channel == "" {
			return nil, fmt.Errorf("kick chat requires --channel")
		}
		return chat.NewKickSource(cfg.Channel, logger), nil

	case "youtube":
		if cfg.Channel == "" {
			return nil, fmt.Errorf("youtube chat requires --channel (video ID or URL)")
		}
		pollInterval := time.Duration(cfg.PollIntervalSeconds * float64(time.Second))
		return chat.NewYouTubeSource(cfg.APIKey, cfg.Channel, pollInterval, logger)

	default:
		return nil, fmt.Errorf("unknown chat platform %q (want kick or youtube)", cfg.Platform)
	}
}
