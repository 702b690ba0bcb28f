package main

import (
	"context"
	"fmt"
	"io"
	"math/rand"
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
	flagSimConfig  string
	flagSimRate    float64
	flagSimViewers int
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Play against a synthetic chat, no stream required",
	Long: `Play with a generated chat feed standing in for a live stream.

Synthetic viewers send plain messages, event keywords, gifts and like
bursts through the same queue pipeline a real stream would use. Useful
for tuning configs before going live.

Examples:
  pickfall simulate
  pickfall simulate --rate 5
  pickfall simulate --viewers 50 --seed 42`,
	Run: runSimulate,
}

func init() {
	simulateCmd.Flags().StringVar(&flagSimConfig, "config", "", "Path to custom game config YAML")
	simulateCmd.Flags().Float64Var(&flagSimRate, "rate", 1.5, "Synthetic messages per second")
	simulateCmd.Flags().IntVar(&flagSimViewers, "viewers", 20, "Number of synthetic viewers")
}

func runSimulate(cmd *cobra.Command, args []string) {
	gameCfg, err := config.Load(flagSimConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	bus := queue.NewBus()
	source := &syntheticSource{
		rate:    flagSimRate,
		viewers: flagSimViewers,
		rng:     rand.New(rand.NewSource(seed)),
	}

	// The TUI owns the terminal, so the synthetic chatter stays quiet.
	logger := log.New(io.Discard)
	listener := chat.NewListener(bus, source, logger)
	listener.Start(context.Background())

	g := game.New(gameCfg, bus)

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open database: %v\n", err)
		store = nil
	}

	runErr := tui.Run(g, store, cfg, gameCfg.Progress.SaveIntervalSeconds)

	listener.Stop()
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// syntheticSource emits generated viewer messages at a fixed average rate.
type syntheticSource struct {
	rate    float64
	viewers int
	rng     *rand.Rand

	msgID int
}

var syntheticTexts = []string{
	"hello",
	"nice run",
	"go deeper",
	"megatnt",
	"fast",
	"slow",
	"big pickaxe please",
	"diamond time",
	"gold gold gold",
	"netherite or nothing",
	"lol",
	"that bounce",
}

func (s *syntheticSource) Run(ctx context.Context, out chan<- chat.Message) error {
	if s.rate <= 0 {
		s.rate = 1
	}
	if s.viewers < 1 {
		s.viewers = 1
	}
	interval := time.Duration(float64(time.Second) / s.rate)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			select {
			case out <- s.next():
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
}

func (s *syntheticSource) next() chat.Message {
	s.msgID++
	viewer := s.rng.Intn(s.viewers) + 1

	msg := chat.Message{
		ID:       fmt.Sprintf("sim-%d", s.msgID),
		AuthorID: fmt.Sprintf("sim:%d", viewer),
		Author:   fmt.Sprintf("viewer%d", viewer),
	}

	switch roll := s.rng.Intn(100); {
	case roll < 4:
		// Rare gift
		msg.Gift = &chat.Gift{
			Name:  "rose",
			Coins: s.rng.Intn(100),
			Count: s.rng.Intn(5) + 1,
		}
	case roll < 14:
		// Like burst
		msg.Likes = s.rng.Intn(10) + 1
	default:
		msg.Text = syntheticTexts[s.rng.Intn(len(syntheticTexts))]
	}

	return msg
}
