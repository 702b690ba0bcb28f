package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
)

const youtubeAPIBase = "https://www.googleapis.com/youtube/v3"

// videoIDPatterns accepts watch URLs, live URLs, short URLs and bare IDs.
var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtube\.com/live/)([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`youtu\.be/([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`^([a-zA-Z0-9_-]{11})$`),
}

// ExtractVideoID pulls the 11-character video ID out of a YouTube URL, or
// returns the input unchanged if it already is an ID.
func ExtractVideoID(input string) (string, error) {
	for _, pat := range videoIDPatterns {
		if m := pat.FindStringSubmatch(input); m != nil {
			return m[1], nil
		}
	}
	return "", fmt.Errorf("cannot extract video ID from %q", input)
}

// YouTubeSource polls the live chat of a YouTube livestream over the Data
// API. The API reports its own minimum polling interval; the larger of
// that and PollInterval is used.
type YouTubeSource struct {
	APIKey       string
	VideoID      string
	PollInterval time.Duration

	client  *http.Client
	logger  *log.Logger
	baseURL string
	seen    *seenCache

	liveChatID string
	pageToken  string
}

// NewYouTubeSource creates a source for the given video URL or ID.
func NewYouTubeSource(apiKey, video string, pollInterval time.Duration, logger *log.Logger) (*YouTubeSource, error) {
	if apiKey == "" {
		return nil, errors.New("youtube chat requires an API key")
	}
	id, err := ExtractVideoID(video)
	if err != nil {
		return nil, err
	}
	return &YouTubeSource{
		APIKey:       apiKey,
		VideoID:      id,
		PollInterval: pollInterval,
		client:       &http.Client{Timeout: 15 * time.Second},
		logger:       logger,
		baseURL:      youtubeAPIBase,
		seen:         newSeenCache(2000),
	}, nil
}

// Run resolves the active live chat and polls it until ctx is canceled or
// the chat ends. Transient HTTP failures are retried on the next poll.
func (s *YouTubeSource) Run(ctx context.Context, out chan<- Message) error {
	if err := s.resolveLiveChatID(ctx); err != nil {
		return err
	}
	s.logger.Info("youtube chat connected", "video", s.VideoID)

	for {
		wait, err := s.poll(ctx, out)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if isTerminal(err) {
				return err
			}
			s.logger.Warn("youtube poll failed, retrying", "error", err)
			wait = s.PollInterval
		}
		if wait < s.PollInterval {
			wait = s.PollInterval
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}

type terminalError struct{ err error }

func (e terminalError) Error() string { return e.err.Error() }
func (e terminalError) Unwrap() error { return e.err }

func isTerminal(err error) bool {
	var te terminalError
	return errors.As(err, &te)
}

func (s *YouTubeSource) resolveLiveChatID(ctx context.Context) error {
	q := url.Values{}
	q.Set("part", "liveStreamingDetails")
	q.Set("id", s.VideoID)
	q.Set("key", s.APIKey)

	var resp struct {
		Items []struct {
			LiveStreamingDetails struct {
				ActiveLiveChatID string `json:"activeLiveChatId"`
			} `json:"liveStreamingDetails"`
		} `json:"items"`
	}
	if err := s.getJSON(ctx, "/videos", q, &resp); err != nil {
		return err
	}
	if len(resp.Items) == 0 {
		return terminalError{fmt.Errorf("video %s not found", s.VideoID)}
	}
	chatID := resp.Items[0].LiveStreamingDetails.ActiveLiveChatID
	if chatID == "" {
		return terminalError{fmt.Errorf("video %s has no active live chat", s.VideoID)}
	}
	s.liveChatID = chatID
	return nil
}

// poll fetches one page of chat messages, delivers the unseen ones and
// returns the server-requested wait before the next poll.
func (s *YouTubeSource) poll(ctx context.Context, out chan<- Message) (time.Duration, error) {
	q := url.Values{}
	q.Set("liveChatId", s.liveChatID)
	q.Set("part", "snippet,authorDetails")
	q.Set("key", s.APIKey)
	if s.pageToken != "" {
		q.Set("pageToken", s.pageToken)
	}

	var resp struct {
		NextPageToken         string `json:"nextPageToken"`
		PollingIntervalMillis int    `json:"pollingIntervalMillis"`
		OfflineAt             string `json:"offlineAt"`
		Items                 []struct {
			ID      string `json:"id"`
			Snippet struct {
				DisplayMessage   string `json:"displayMessage"`
				SuperChatDetails *struct {
					AmountMicros string `json:"amountMicros"`
					Tier         int    `json:"tier"`
				} `json:"superChatDetails"`
				SuperStickerDetails *struct {
					AmountMicros string `json:"amountMicros"`
					Tier         int    `json:"tier"`
				} `json:"superStickerDetails"`
			} `json:"snippet"`
			AuthorDetails struct {
				ChannelID   string `json:"channelId"`
				DisplayName string `json:"displayName"`
			} `json:"authorDetails"`
		} `json:"items"`
	}
	if err := s.getJSON(ctx, "/liveChat/messages", q, &resp); err != nil {
		return 0, err
	}
	if resp.OfflineAt != "" {
		return 0, terminalError{errors.New("livestream ended")}
	}
	s.pageToken = resp.NextPageToken

	for _, item := range resp.Items {
		if !s.seen.Add(item.ID) {
			continue
		}
		msg := Message{
			ID:       item.ID,
			AuthorID: item.AuthorDetails.ChannelID,
			Author:   item.AuthorDetails.DisplayName,
			Text:     item.Snippet.DisplayMessage,
		}
		paid := item.Snippet.SuperChatDetails
		if paid == nil {
			paid = item.Snippet.SuperStickerDetails
		}
		if paid != nil {
			msg.Gift = &Gift{
				Name:  "superchat",
				Coins: coinsFromMicros(paid.AmountMicros),
				Count: 1,
			}
		}
		select {
		case out <- msg:
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	}

	return time.Duration(resp.PollingIntervalMillis) * time.Millisecond, nil
}

func (s *YouTubeSource) getJSON(ctx context.Context, path string, q url.Values, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusUnauthorized:
		// Bad key or exhausted quota: retrying will not help.
		return terminalError{fmt.Errorf("youtube API rejected request: %s", resp.Status)}
	default:
		return fmt.Errorf("youtube API returned %s", resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(v)
}

// coinsFromMicros converts a superchat amount in micros of currency into
// whole currency units, the scale gift tiering works in.
func coinsFromMicros(micros string) int {
	n, err := strconv.ParseInt(micros, 10, 64)
	if err != nil {
		return 0
	}
	return int(n / 1_000_000)
}
