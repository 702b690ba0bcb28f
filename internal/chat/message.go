// Package chat connects a live-stream chat to the game's event queues.
// Each platform is a Source that delivers normalized Messages; the Listener
// runs a source in the background, parses commands out of the message text
// and pushes queue entries. Chat failures disable chat, never the game.
package chat

import "context"

// Message is a platform-neutral chat event.
type Message struct {
	ID       string // Platform message ID, used for dedupe
	AuthorID string
	Author   string // Display name
	Text     string
	Gift     *Gift // Set for paid messages (superchats, Kick gifts)
	Likes    int   // Like burst size, zero for regular messages
}

// Gift describes the paid part of a message.
type Gift struct {
	Name  string
	Coins int // Platform currency value, 0 if the platform hides it
	Count int // Number of gifted items, minimum 1
}

// Source is a platform-specific chat reader. Run delivers messages to out
// until ctx is canceled or the stream is unrecoverably lost, and returns
// the terminal error. Sources handle their own reconnects internally.
type Source interface {
	Run(ctx context.Context, out chan<- Message) error
}
