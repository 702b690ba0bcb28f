package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

const (
	kickAPIBase = "https://kick.com/api/v2"

	// Kick chat rides on a public Pusher app.
	kickWSURL = "wss://ws-us2.pusher.com/app/32cbd69e4b950bf97679?protocol=7&client=js&version=8.4.0&flash=false"

	kickPingInterval   = 30 * time.Second
	kickReadTimeout    = 90 * time.Second
	kickBackoffBase    = 5 * time.Second
	kickBackoffCeiling = 60 * time.Second
)

// KickSource streams a Kick channel's chatroom over websocket. Dropped
// connections are redialed with exponential backoff; the seen cache keeps
// reconnect replays out of the queues.
type KickSource struct {
	Channel string // Channel slug, e.g. "xqc"

	client  *http.Client
	dialer  *websocket.Dialer
	logger  *log.Logger
	apiBase string
	wsURL   string
	seen    *seenCache
}

// NewKickSource creates a source for the given channel slug.
func NewKickSource(channel string, logger *log.Logger) *KickSource {
	return &KickSource{
		Channel: channel,
		client:  &http.Client{Timeout: 15 * time.Second},
		dialer:  websocket.DefaultDialer,
		logger:  logger,
		apiBase: kickAPIBase,
		wsURL:   kickWSURL,
		seen:    newSeenCache(2000),
	}
}

// Run connects to the channel's chatroom and delivers messages until ctx
// is canceled. Only an unknown channel is terminal; everything else is
// retried.
func (s *KickSource) Run(ctx context.Context, out chan<- Message) error {
	chatroomID, err := s.resolveChatroomID(ctx)
	if err != nil {
		return err
	}

	attempt := 0
	for {
		err := s.readLoop(ctx, chatroomID, out)
		if ctx.Err() != nil {
			return ctx.Err()
		}

		attempt++
		delay := backoffDelay(attempt)
		s.logger.Warn("kick connection lost, reconnecting",
			"channel", s.Channel, "error", err, "retry_in", delay)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
}

func backoffDelay(attempt int) time.Duration {
	d := kickBackoffBase
	for i := 1; i < attempt; i++ {
		d *= 2
		if d >= kickBackoffCeiling {
			return kickBackoffCeiling
		}
	}
	return d
}

func (s *KickSource) resolveChatroomID(ctx context.Context) (int64, error) {
	url := fmt.Sprintf("%s/channels/%s", s.apiBase, s.Channel)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return 0, terminalError{fmt.Errorf("kick channel %q not found", s.Channel)}
	}
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("kick API returned %s", resp.Status)
	}

	var payload struct {
		Chatroom struct {
			ID int64 `json:"id"`
		} `json:"chatroom"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, err
	}
	if payload.Chatroom.ID == 0 {
		return 0, terminalError{fmt.Errorf("kick channel %q has no chatroom", s.Channel)}
	}
	return payload.Chatroom.ID, nil
}

// pusherFrame is the envelope every Pusher message arrives in. Data is a
// JSON-encoded string, not an object.
type pusherFrame struct {
	Event   string `json:"event"`
	Data    string `json:"data"`
	Channel string `json:"channel"`
}

// readLoop holds one websocket connection open, subscribing to the
// chatroom and pumping events until the connection dies.
func (s *KickSource) readLoop(ctx context.Context, chatroomID int64, out chan<- Message) error {
	conn, _, err := s.dialer.DialContext(ctx, s.wsURL, nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	sub := pusherFrame{Event: "pusher:subscribe"}
	subData, _ := json.Marshal(map[string]string{
		"auth":    "",
		"channel": fmt.Sprintf("chatrooms.%d.v2", chatroomID),
	})
	sub.Data = string(subData)
	if err := conn.WriteJSON(sub); err != nil {
		return err
	}
	s.logger.Info("kick chat connected", "channel", s.Channel, "chatroom", chatroomID)

	// Close the connection when ctx is canceled so ReadMessage unblocks.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	pingTicker := time.NewTicker(kickPingInterval)
	defer pingTicker.Stop()
	go func() {
		for {
			select {
			case <-pingTicker.C:
				frame, _ := json.Marshal(pusherFrame{Event: "pusher:ping", Data: "{}"})
				if err := conn.WriteMessage(websocket.TextMessage, frame); err != nil {
					return
				}
			case <-done:
				return
			}
		}
	}()

	for {
		conn.SetReadDeadline(time.Now().Add(kickReadTimeout))
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		var frame pusherFrame
		if err := json.Unmarshal(raw, &frame); err != nil {
			s.logger.Debug("kick: malformed frame", "error", err)
			continue
		}
		if msg, ok := s.parseEvent(frame); ok {
			select {
			case out <- msg:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
}

// parseEvent converts a chat or gift event into a Message. Pusher control
// frames and unknown events are ignored.
func (s *KickSource) parseEvent(frame pusherFrame) (Message, bool) {
	switch frame.Event {
	case `App\Events\ChatMessageEvent`:
		var ev struct {
			ID      string `json:"id"`
			Content string `json:"content"`
			Sender  struct {
				ID       int64  `json:"id"`
				Username string `json:"username"`
			} `json:"sender"`
		}
		if err := json.Unmarshal([]byte(frame.Data), &ev); err != nil {
			return Message{}, false
		}
		if ev.ID != "" && !s.seen.Add(ev.ID) {
			return Message{}, false
		}
		return Message{
			ID:       ev.ID,
			AuthorID: fmt.Sprintf("kick:%d", ev.Sender.ID),
			Author:   ev.Sender.Username,
			Text:     ev.Content,
		}, true

	case `App\Events\GiftedSubscriptionsEvent`:
		var ev struct {
			GifterUsername  string   `json:"gifter_username"`
			GiftedUsernames []string `json:"gifted_usernames"`
		}
		if err := json.Unmarshal([]byte(frame.Data), &ev); err != nil {
			return Message{}, false
		}
		count := len(ev.GiftedUsernames)
		if count == 0 {
			count = 1
		}
		return Message{
			AuthorID: "kick:" + ev.GifterUsername,
			Author:   ev.GifterUsername,
			Gift:     &Gift{Name: "gifted_sub", Count: count},
		}, true
	}
	return Message{}, false
}
