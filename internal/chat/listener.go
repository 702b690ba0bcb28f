package chat

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"

	"github.com/pickfall/pickfall/internal/queue"
)

// likesPerMegaTnt is how many likes it takes to earn one MegaTNT.
const likesPerMegaTnt = 5

// Listener runs a chat Source in the background and feeds the queue Bus.
// If the source dies unrecoverably the listener logs it and goes quiet;
// the game keeps running on its own random event timers.
type Listener struct {
	bus    *queue.Bus
	source Source
	logger *log.Logger

	cancel context.CancelFunc
	done   chan struct{}

	likeTally map[string]int
}

// NewListener wires a source to a bus.
func NewListener(bus *queue.Bus, source Source, logger *log.Logger) *Listener {
	return &Listener{
		bus:       bus,
		source:    source,
		logger:    logger,
		likeTally: make(map[string]int),
	}
}

// Start launches the listener goroutines. Call Stop to shut down.
func (l *Listener) Start(ctx context.Context) {
	ctx, l.cancel = context.WithCancel(ctx)
	l.done = make(chan struct{})

	msgs := make(chan Message, 64)
	go func() {
		err := l.source.Run(ctx, msgs)
		if err != nil && !errors.Is(err, context.Canceled) {
			l.logger.Error("chat source stopped, chat disabled", "error", err)
		}
		close(msgs)
	}()

	go func() {
		defer close(l.done)
		for msg := range msgs {
			l.handle(msg)
		}
	}()
}

// Stop cancels the source and waits for the listener to drain.
func (l *Listener) Stop() {
	if l.cancel == nil {
		return
	}
	l.cancel()
	<-l.done
}

func (l *Listener) handle(msg Message) {
	if msg.Likes > 0 {
		l.tallyLikes(msg)
		return
	}
	if msg.Gift != nil {
		l.logger.Info("chat gift", "from", msg.Author, "name", msg.Gift.Name, "coins", msg.Gift.Coins)
	} else {
		l.logger.Debug("chat message", "from", msg.Author, "text", msg.Text)
	}
	Route(l.bus, msg)
}

// tallyLikes accumulates like bursts per author and converts every full
// bundle into a MegaTNT entry.
func (l *Listener) tallyLikes(msg Message) {
	l.likeTally[msg.AuthorID] += msg.Likes
	for l.likeTally[msg.AuthorID] >= likesPerMegaTnt {
		l.likeTally[msg.AuthorID] -= likesPerMegaTnt
		l.bus.Push(queue.Entry{
			Kind:     queue.KindMega,
			AuthorID: msg.AuthorID,
			Author:   msg.Author,
		})
		l.logger.Info("like bundle complete, queueing MegaTNT", "from", msg.Author)
	}
}
