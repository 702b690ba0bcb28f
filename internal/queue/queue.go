// Package queue bridges asynchronous chat events into the synchronous game
// loop. Listener goroutines append entries as messages arrive; the game
// drains at a fixed interval from its own tick, so every entry is consumed
// exactly once and never concurrently with a simulation step.
package queue

import "sync"

// Kind identifies which per-command queue an entry belongs to.
type Kind int

const (
	KindTnt Kind = iota
	KindMega
	KindFastSlow
	KindBig
	KindPickaxe

	numKinds
)

// String returns the queue name for logging.
func (k Kind) String() string {
	switch k {
	case KindTnt:
		return "tnt"
	case KindMega:
		return "mega_tnt"
	case KindFastSlow:
		return "fast_slow"
	case KindBig:
		return "big"
	case KindPickaxe:
		return "pickaxe"
	default:
		return "unknown"
	}
}

// Entry is a single chat-originated event waiting for the next drain.
type Entry struct {
	Kind     Kind
	AuthorID string
	Author   string
	Count    int    // Spawn multiplier for gift bundles, minimum 1
	Priority bool   // Paid entries jump the line within their queue
	Choice   string // "fast" or "slow", KindFastSlow only
	Material string // Requested pickaxe material, KindPickaxe only
}

// Bus holds the per-command queues.
type Bus struct {
	mu     sync.Mutex
	queues [numKinds][]Entry
}

// NewBus creates an empty Bus.
func NewBus() *Bus {
	return &Bus{}
}

// Push appends an entry to its queue and reports whether it was accepted.
// The fast/slow, big and pickaxe queues keep at most one pending entry per
// author; a duplicate is dropped so a single viewer cannot monopolize the
// next drains by spamming.
func (b *Bus) Push(e Entry) bool {
	if e.Kind < 0 || e.Kind >= numKinds {
		return false
	}
	if e.Count < 1 {
		e.Count = 1
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if dedupedKind(e.Kind) {
		for _, pending := range b.queues[e.Kind] {
			if pending.AuthorID == e.AuthorID {
				return false
			}
		}
	}
	b.queues[e.Kind] = append(b.queues[e.Kind], e)
	return true
}

func dedupedKind(k Kind) bool {
	return k == KindFastSlow || k == KindBig || k == KindPickaxe
}

// Drain pops at most one entry from each queue, in Kind order. Within a
// queue the oldest paid entry wins; otherwise the oldest entry.
func (b *Bus) Drain() []Entry {
	b.mu.Lock()
	defer b.mu.Unlock()

	var out []Entry
	for k := Kind(0); k < numKinds; k++ {
		if e, ok := b.pop(k); ok {
			out = append(out, e)
		}
	}
	return out
}

// pop removes one entry from queue k. Caller holds b.mu.
func (b *Bus) pop(k Kind) (Entry, bool) {
	q := b.queues[k]
	if len(q) == 0 {
		return Entry{}, false
	}
	idx := 0
	for i, e := range q {
		if e.Priority {
			idx = i
			break
		}
	}
	e := q[idx]
	b.queues[k] = append(q[:idx], q[idx+1:]...)
	return e, true
}

// Pending reports whether any queue has entries waiting. The game uses this
// to suppress its random event timers while chat is driving the action.
func (b *Bus) Pending() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for k := range b.queues {
		if len(b.queues[k]) > 0 {
			return true
		}
	}
	return false
}

// KindPending reports whether a specific queue has entries waiting.
func (b *Bus) KindPending(k Kind) bool {
	if k < 0 || k >= numKinds {
		return false
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.queues[k]) > 0
}

// Len returns the total number of queued entries across all queues.
func (b *Bus) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for k := range b.queues {
		n += len(b.queues[k])
	}
	return n
}
