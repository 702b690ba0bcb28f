package chat

import (
	"strings"

	"github.com/pickfall/pickfall/internal/queue"
)

// pickaxeKeywords maps chat keywords to pickaxe material names, in match
// priority order. The first keyword found in the message wins.
var pickaxeKeywords = []struct {
	keyword  string
	material string
}{
	{"wood", "wood"},
	{"stone", "stone"},
	{"iron", "iron"},
	{"gold", "gold"},
	{"diamond", "diamond"},
	{"netherite", "netherite"},
}

// Route translates one chat message into queue entries.
//
// Every regular message queues a TNT with the author's name attached.
// Keywords add more: "megatnt" queues a MegaTNT, "fast"/"slow" queue a
// speed change, "big" queues a pickaxe enlarge, and a material name queues
// a pickaxe swap. Gifts skip keyword parsing and queue a tiered TNT bundle
// with priority.
func Route(bus *queue.Bus, msg Message) {
	if msg.Gift != nil {
		routeGift(bus, msg)
		return
	}
	if msg.Likes > 0 {
		// Like bursts are handled by the Listener's accumulator.
		return
	}

	text := strings.ToLower(msg.Text)
	base := queue.Entry{AuthorID: msg.AuthorID, Author: msg.Author}

	tnt := base
	tnt.Kind = queue.KindTnt
	bus.Push(tnt)

	if strings.Contains(text, "megatnt") {
		mega := base
		mega.Kind = queue.KindMega
		bus.Push(mega)
	}

	if strings.Contains(text, "fast") {
		e := base
		e.Kind = queue.KindFastSlow
		e.Choice = "fast"
		bus.Push(e)
	} else if strings.Contains(text, "slow") {
		e := base
		e.Kind = queue.KindFastSlow
		e.Choice = "slow"
		bus.Push(e)
	}

	if strings.Contains(text, "big") {
		e := base
		e.Kind = queue.KindBig
		bus.Push(e)
	}

	for _, pk := range pickaxeKeywords {
		if strings.Contains(text, pk.keyword) {
			e := base
			e.Kind = queue.KindPickaxe
			e.Material = pk.material
			bus.Push(e)
			break
		}
	}
}

// routeGift queues TNT and MegaTNT bundles scaled by the gift's value.
// Big gifts are all MegaTNT, medium gifts split, small gifts are a TNT
// volley. When the platform hides the coin value the item count decides.
func routeGift(bus *queue.Bus, msg Message) {
	gift := msg.Gift
	tntCount, megaCount := giftTier(gift.Coins, gift.Count)

	base := queue.Entry{
		AuthorID: msg.AuthorID,
		Author:   msg.Author,
		Priority: true,
	}
	if tntCount > 0 {
		e := base
		e.Kind = queue.KindTnt
		e.Count = tntCount
		bus.Push(e)
	}
	if megaCount > 0 {
		e := base
		e.Kind = queue.KindMega
		e.Count = megaCount
		bus.Push(e)
	}
}

func giftTier(coins, count int) (tnt, mega int) {
	switch {
	case coins > 50:
		return 0, 10
	case coins > 1:
		return 5, 5
	case coins == 0 && count > 1:
		return 5, 5
	default:
		return 10, 0
	}
}
