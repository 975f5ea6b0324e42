package notification

import (
	"context"
	"strings"
	"time"

	"github.com/KNICEX/stock-watcher/internal/entity"
	"github.com/shopspring/decimal"
)

const (
	ChannelEmail    = "email"
	ChannelTelegram = "telegram"
)

// Message 一次告警推送的内容, 每条消息自带完整上下文
type Message struct {
	Symbol       string
	TargetPrice  decimal.Decimal
	CurrentPrice decimal.Decimal
	Direction    entity.Direction

	// destinations, empty means skip the channel
	Email          string
	TelegramChatId string

	TriggeredAt time.Time
}

// Result summarizes one channel delivery attempt.
type Result struct {
	Channel string
	Err     error
}

func (r Result) Ok() bool {
	return r.Err == nil
}

// Channel delivers a Message through one mechanism.
type Channel interface {
	Kind() string
	Send(ctx context.Context, msg Message) error
}

// Dispatcher fans a triggered alert out to every configured channel.
type Dispatcher interface {
	Dispatch(ctx context.Context, msg Message) []Result
}

// CurrencySymbol picks the display currency by market suffix.
func CurrencySymbol(symbol string) string {
	if strings.HasSuffix(symbol, ".NS") || strings.HasSuffix(symbol, ".BO") {
		return "₹"
	}
	return "$"
}
