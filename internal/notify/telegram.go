package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"io"
	"log"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"
)

// DefaultTelegramAPI is the Telegram Bot API base URL.
const DefaultTelegramAPI = "https://api.telegram.org"

// TelegramClient posts event messages to a Telegram chat.
type TelegramClient struct {
	token      string
	chatID     string
	apiBase    string
	httpClient *http.Client
	now        func() time.Time
}

// NewTelegramClient creates a client. An empty apiBase uses the public API.
func NewTelegramClient(token, chatID, apiBase string) *TelegramClient {
	if apiBase == "" {
		apiBase = DefaultTelegramAPI
	}
	return &TelegramClient{
		token:      token,
		chatID:     chatID,
		apiBase:    strings.TrimRight(apiBase, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
		now:        time.Now,
	}
}

// Enabled reports whether both credentials are set.
func (c *TelegramClient) Enabled() bool {
	return c != nil && c.token != "" && c.chatID != ""
}

type sendMessageRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

// SendLog posts event and meta to the chat. Without credentials it logs a
// warning and returns nil.
func (c *TelegramClient) SendLog(ctx context.Context, event string, meta map[string]any) error {
	if !c.Enabled() {
		log.Printf("[notify] telegram credentials not configured; skipping %q", event)
		return nil
	}

	body, err := json.Marshal(sendMessageRequest{
		ChatID:    c.chatID,
		Text:      FormatLogMessage(event, meta, c.now()),
		ParseMode: "HTML",
	})
	if err != nil {
		return fmt.Errorf("failed to encode telegram message: %w", err)
	}

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", c.apiBase, c.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create telegram request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// The URL carries the bot token; keep it out of the error.
		return fmt.Errorf("telegram request failed: %w", unwrapURLError(err))
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("telegram API error: %d", resp.StatusCode)
	}
	return nil
}

func unwrapURLError(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Err
	}
	return err
}

// FormatLogMessage renders an event as Telegram HTML. Meta keys are sorted
// and every value is JSON-encoded and escaped.
func FormatLogMessage(event string, meta map[string]any, at time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<b>📊 Event:</b> %s\n<b>🕐 Time:</b> %s",
		html.EscapeString(event), at.UTC().Format(time.RFC3339))

	if len(meta) == 0 {
		return b.String()
	}

	keys := make([]string, 0, len(meta))
	for k := range meta {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	b.WriteString("\n<b>📝 Details:</b>\n")
	for _, k := range keys {
		value, err := json.Marshal(meta[k])
		if err != nil {
			value = []byte(fmt.Sprintf("%q", fmt.Sprint(meta[k])))
		}
		fmt.Fprintf(&b, "  • %s: %s\n", html.EscapeString(k), html.EscapeString(string(value)))
	}
	return b.String()
}
