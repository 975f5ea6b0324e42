package notification

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

const DefaultSendTimeout = 10 * time.Second

var _ Dispatcher = (*MultiDispatcher)(nil)

// MultiDispatcher 并发推送到所有已配置的渠道, 单渠道失败互不影响
type MultiDispatcher struct {
	channels    []Channel
	sendTimeout time.Duration
}

type DispatcherOption func(d *MultiDispatcher)

func WithSendTimeout(timeout time.Duration) DispatcherOption {
	return func(d *MultiDispatcher) {
		d.sendTimeout = timeout
	}
}

func NewMultiDispatcher(channels []Channel, opts ...DispatcherOption) *MultiDispatcher {
	d := &MultiDispatcher{
		channels:    channels,
		sendTimeout: DefaultSendTimeout,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *MultiDispatcher) Dispatch(ctx context.Context, msg Message) []Result {
	targets := make([]Channel, 0, len(d.channels))
	for _, ch := range d.channels {
		if !hasDestination(ch.Kind(), msg) {
			continue
		}
		targets = append(targets, ch)
	}

	results := make([]Result, len(targets))
	var wg sync.WaitGroup
	for i, ch := range targets {
		wg.Add(1)
		go func(i int, ch Channel) {
			defer wg.Done()
			sendCtx, cancel := context.WithTimeout(ctx, d.sendTimeout)
			defer cancel()

			err := ch.Send(sendCtx, msg)
			if err != nil {
				slog.Error("notification channel failed",
					"channel", ch.Kind(), "symbol", msg.Symbol, "error", err)
			}
			results[i] = Result{Channel: ch.Kind(), Err: err}
		}(i, ch)
	}
	wg.Wait()
	return results
}

// hasDestination 渠道目的地缺失不算失败, 直接跳过
func hasDestination(kind string, msg Message) bool {
	switch kind {
	case ChannelEmail:
		return msg.Email != ""
	case ChannelTelegram:
		return msg.TelegramChatId != ""
	default:
		return false
	}
}
