package chat

import (
	"testing"

	"github.com/pickfall/pickfall/internal/queue"
)

func drainAll(b *queue.Bus) map[queue.Kind][]queue.Entry {
	out := make(map[queue.Kind][]queue.Entry)
	for b.Pending() {
		for _, e := range b.Drain() {
			out[e.Kind] = append(out[e.Kind], e)
		}
	}
	return out
}

func TestRoutePlainMessage(t *testing.T) {
	// Any message at all queues one TNT for its author.
	b := queue.NewBus()
	Route(b, Message{AuthorID: "u1", Author: "Alice", Text: "hello there"})

	got := drainAll(b)
	if len(got[queue.KindTnt]) != 1 {
		t.Fatalf("tnt entries = %d, want 1", len(got[queue.KindTnt]))
	}
	if got[queue.KindTnt][0].Author != "Alice" {
		t.Errorf("author = %q, want Alice", got[queue.KindTnt][0].Author)
	}
	if len(got[queue.KindMega]) != 0 || len(got[queue.KindFastSlow]) != 0 {
		t.Errorf("plain message leaked into other queues: %+v", got)
	}
}

func TestRouteMegaKeyword(t *testing.T) {
	b := queue.NewBus()
	Route(b, Message{AuthorID: "u1", Author: "Alice", Text: "MEGATNT please"})

	got := drainAll(b)
	if len(got[queue.KindTnt]) != 1 {
		t.Errorf("tnt entries = %d, want 1 (every message queues one)", len(got[queue.KindTnt]))
	}
	if len(got[queue.KindMega]) != 1 {
		t.Errorf("mega entries = %d, want 1", len(got[queue.KindMega]))
	}
}

func TestRouteFastBeatsSlow(t *testing.T) {
	// A message containing both keywords counts as "fast" only.
	b := queue.NewBus()
	Route(b, Message{AuthorID: "u1", Author: "A", Text: "fast not slow"})

	got := drainAll(b)
	if len(got[queue.KindFastSlow]) != 1 {
		t.Fatalf("fast_slow entries = %d, want 1", len(got[queue.KindFastSlow]))
	}
	if got[queue.KindFastSlow][0].Choice != "fast" {
		t.Errorf("choice = %q, want fast", got[queue.KindFastSlow][0].Choice)
	}
}

func TestRoutePickaxeKeyword(t *testing.T) {
	b := queue.NewBus()
	Route(b, Message{AuthorID: "u1", Author: "A", Text: "give me diamond!"})

	got := drainAll(b)
	if len(got[queue.KindPickaxe]) != 1 {
		t.Fatalf("pickaxe entries = %d, want 1", len(got[queue.KindPickaxe]))
	}
	if got[queue.KindPickaxe][0].Material != "diamond" {
		t.Errorf("material = %q, want diamond", got[queue.KindPickaxe][0].Material)
	}
}

func TestRoutePickaxeFirstKeywordWins(t *testing.T) {
	b := queue.NewBus()
	Route(b, Message{AuthorID: "u1", Author: "A", Text: "stone or iron?"})

	got := drainAll(b)
	if n := len(got[queue.KindPickaxe]); n != 1 {
		t.Fatalf("pickaxe entries = %d, want 1", n)
	}
	if got[queue.KindPickaxe][0].Material != "stone" {
		t.Errorf("material = %q, want stone", got[queue.KindPickaxe][0].Material)
	}
}

func TestRouteGiftTiers(t *testing.T) {
	cases := []struct {
		name  string
		coins int
		count int
		tnt   int
		mega  int
	}{
		{"big gift", 100, 1, 0, 10},
		{"medium gift", 10, 1, 5, 5},
		{"small gift", 1, 1, 10, 0},
		{"unknown value, multiple items", 0, 3, 5, 5},
		{"unknown value, single item", 0, 1, 10, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := queue.NewBus()
			Route(b, Message{
				AuthorID: "u1",
				Author:   "A",
				Gift:     &Gift{Name: "rose", Coins: tc.coins, Count: tc.count},
			})
			got := drainAll(b)

			gotTnt, gotMega := 0, 0
			if es := got[queue.KindTnt]; len(es) > 0 {
				gotTnt = es[0].Count
				if !es[0].Priority {
					t.Error("gift tnt entry not marked priority")
				}
			}
			if es := got[queue.KindMega]; len(es) > 0 {
				gotMega = es[0].Count
			}
			if gotTnt != tc.tnt || gotMega != tc.mega {
				t.Errorf("tiers = (%d tnt, %d mega), want (%d, %d)",
					gotTnt, gotMega, tc.tnt, tc.mega)
			}
		})
	}
}

func TestRouteGiftSkipsKeywords(t *testing.T) {
	// Gift text is platform-generated; it must not trigger commands.
	b := queue.NewBus()
	Route(b, Message{
		AuthorID: "u1",
		Author:   "A",
		Text:     "Gift: diamond rain",
		Gift:     &Gift{Coins: 1, Count: 1},
	})
	got := drainAll(b)
	if len(got[queue.KindPickaxe]) != 0 {
		t.Error("gift message triggered pickaxe command")
	}
}
