package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatLogMessage(t *testing.T) {
	at := time.Date(2026, 10, 17, 8, 30, 0, 0, time.UTC)

	t.Run("without meta", func(t *testing.T) {
		msg := FormatLogMessage("page_view", nil, at)
		assert.Equal(t, "<b>📊 Event:</b> page_view\n<b>🕐 Time:</b> 2026-10-17T08:30:00Z", msg)
	})

	t.Run("sorted and escaped meta", func(t *testing.T) {
		msg := FormatLogMessage("<click>", map[string]any{
			"zeta":  1,
			"alpha": "a<b>",
			"ok":    true,
		}, at)
		assert.Contains(t, msg, "<b>📊 Event:</b> &lt;click&gt;")
		assert.Contains(t, msg, "<b>📝 Details:</b>\n")

		alpha := strings.Index(msg, "alpha")
		ok := strings.Index(msg, "ok:")
		zeta := strings.Index(msg, "zeta")
		assert.True(t, alpha < ok && ok < zeta, "keys are sorted: %s", msg)
		assert.Contains(t, msg, "  • alpha: &#34;a&lt;b&gt;&#34;\n")
		assert.Contains(t, msg, "  • ok: true\n")
		assert.Contains(t, msg, "  • zeta: 1\n")
	})
}

func TestTelegramClient_SendLog(t *testing.T) {
	var got sendMessageRequest
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := NewTelegramClient("TOKEN", "42", srv.URL+"/")
	c.now = func() time.Time { return time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC) }

	require.NoError(t, c.SendLog(context.Background(), "Contact Form Submission", map[string]any{"name": "Jo"}))
	assert.Equal(t, "/botTOKEN/sendMessage", path)
	assert.Equal(t, "42", got.ChatID)
	assert.Equal(t, "HTML", got.ParseMode)
	assert.Contains(t, got.Text, "Contact Form Submission")
	assert.Contains(t, got.Text, `name: &#34;Jo&#34;`)
}

func TestTelegramClient_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	err := NewTelegramClient("TOKEN", "42", srv.URL).SendLog(context.Background(), "x", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestTelegramClient_TokenNotLeaked(t *testing.T) {
	err := NewTelegramClient("SECRET-TOKEN", "42", "http://127.0.0.1:1").SendLog(context.Background(), "x", nil)
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "SECRET-TOKEN")
}

func TestTelegramClient_Disabled(t *testing.T) {
	assert.False(t, NewTelegramClient("", "42", "").Enabled())
	assert.False(t, NewTelegramClient("token", "", "").Enabled())

	var nilClient *TelegramClient
	assert.False(t, nilClient.Enabled())
	assert.NoError(t, NewTelegramClient("", "", "").SendLog(context.Background(), "x", nil))
}
