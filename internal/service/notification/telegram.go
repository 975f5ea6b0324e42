package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/KNICEX/stock-watcher/internal/entity"
)

var _ Channel = (*TelegramChannel)(nil)

// TelegramChannel delivers alert messages through the Telegram Bot API.
type TelegramChannel struct {
	token   string
	cli     *http.Client
	baseURL string
}

type TelegramOption func(c *TelegramChannel)

func WithTelegramBaseURL(baseURL string) TelegramOption {
	return func(c *TelegramChannel) {
		c.baseURL = baseURL
	}
}

func NewTelegramChannel(token string, cli *http.Client, opts ...TelegramOption) *TelegramChannel {
	if cli == nil {
		cli = &http.Client{Timeout: 10 * time.Second}
	}
	c := &TelegramChannel{
		token:   token,
		cli:     cli,
		baseURL: "https://api.telegram.org",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *TelegramChannel) Kind() string {
	return ChannelTelegram
}

func (c *TelegramChannel) Send(ctx context.Context, msg Message) error {
	if msg.TelegramChatId == "" {
		return nil
	}

	cur := CurrencySymbol(msg.Symbol)
	var arrow string
	if msg.Direction == entity.DirectionDown {
		arrow = "📉"
	} else {
		arrow = "📈"
	}
	text := fmt.Sprintf("🔔 <b>STOCK ALERT TRIGGERED</b>\n\n"+
		"%s <b>Symbol:</b> %s\n"+
		"🎯 <b>Target:</b> %s%s\n"+
		"💰 <b>Current:</b> %s%s\n\n"+
		"Your %s target has been reached.",
		arrow, msg.Symbol,
		cur, msg.TargetPrice.StringFixed(2),
		cur, msg.CurrentPrice.StringFixed(2),
		msg.Direction)

	payload, err := json.Marshal(map[string]string{
		"chat_id":    msg.TelegramChatId,
		"text":       text,
		"parse_mode": "HTML",
	})
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	apiURL := fmt.Sprintf("%s/bot%s/sendMessage", c.baseURL, c.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.cli.Do(req)
	if err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("telegram api error: status %d, body: %s", resp.StatusCode, string(body))
	}
	return nil
}
