package monitor

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/KNICEX/stock-watcher/internal/entity"
	"github.com/KNICEX/stock-watcher/internal/repo"
	"github.com/KNICEX/stock-watcher/internal/service/notification"
	"github.com/KNICEX/stock-watcher/internal/service/quote"
	"github.com/samber/lo"
)

const DefaultPaceDelay = 500 * time.Millisecond

var _ AlertService = (*AlertWatcher)(nil)

// AlertWatcher runs the evaluation cycle:
// load active alerts -> group by symbol -> resolve one quote per symbol ->
// evaluate -> dispatch notifications -> mark triggered.
type AlertWatcher struct {
	alertRepo  repo.AlertRepo
	quoteSvc   quote.QuoteService
	dispatcher notification.Dispatcher

	// inter-symbol delay, a courtesy to upstream rate limits
	pace time.Duration
	now  func() time.Time

	// overlap guard, a cycle never runs concurrently with itself
	running sync.Mutex
}

type Option func(w *AlertWatcher)

func WithPace(pace time.Duration) Option {
	return func(w *AlertWatcher) {
		w.pace = pace
	}
}

func WithClock(now func() time.Time) Option {
	return func(w *AlertWatcher) {
		w.now = now
	}
}

func NewAlertWatcher(alertRepo repo.AlertRepo, quoteSvc quote.QuoteService,
	dispatcher notification.Dispatcher, opts ...Option) *AlertWatcher {
	w := &AlertWatcher{
		alertRepo:  alertRepo,
		quoteSvc:   quoteSvc,
		dispatcher: dispatcher,
		pace:       DefaultPaceDelay,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *AlertWatcher) Scan(ctx context.Context) error {
	if !w.running.TryLock() {
		slog.Warn("previous cycle still running, skipping this one")
		return nil
	}
	defer w.running.Unlock()

	alerts, err := w.alertRepo.FindActive(ctx)
	if err != nil {
		// the only fatal failure of a cycle
		return fmt.Errorf("load active alerts: %w", err)
	}
	if len(alerts) == 0 {
		return nil
	}
	slog.Info("checking active alerts", "count", len(alerts))

	// 按 symbol 分组, 每个 symbol 只查一次行情
	groups := lo.GroupBy(alerts, func(alert entity.Alert) string {
		return alert.Symbol
	})

	first := true
	for symbol, group := range groups {
		if !first {
			if err = w.sleep(ctx); err != nil {
				return err
			}
		}
		first = false

		select {
		case <-ctx.Done():
			// shutting down, finish nothing new
			return ctx.Err()
		default:
		}

		q, err := w.quoteSvc.GetQuote(ctx, symbol)
		if err != nil {
			// retried next cycle, the symbol's alerts stay active
			slog.Warn("quote unavailable, skipping symbol", "symbol", symbol, "alerts", len(group), "error", err)
			continue
		}
		slog.Info("resolved quote", "symbol", symbol, "price", q.Price, "source", q.Source)

		for _, alert := range Evaluate(group, q) {
			w.handleTriggered(ctx, alert, q)
		}
	}
	return nil
}

func (w *AlertWatcher) handleTriggered(ctx context.Context, alert entity.Alert, q quote.Quote) {
	triggeredAt := w.now()
	slog.Info("alert triggered", "alert_id", alert.Id, "symbol", alert.Symbol,
		"target", alert.TargetPrice, "price", q.Price, "direction", alert.Direction)

	results := w.dispatcher.Dispatch(ctx, notification.Message{
		Symbol:         alert.Symbol,
		TargetPrice:    alert.TargetPrice,
		CurrentPrice:   q.Price,
		Direction:      alert.Direction,
		Email:          alert.Email,
		TelegramChatId: alert.TelegramChatId,
		TriggeredAt:    triggeredAt,
	})
	delivered := lo.CountBy(results, func(res notification.Result) bool {
		return res.Ok()
	})
	if delivered < len(results) {
		slog.Warn("partial notification delivery", "alert_id", alert.Id,
			"delivered", delivered, "attempted", len(results))
	}

	// the alert always leaves active after dispatch was attempted, even if every
	// channel failed; a re-trigger storm is worse than one lost notification
	if err := w.alertRepo.MarkTriggered(ctx, alert.Id, triggeredAt); err != nil {
		slog.Error("failed to persist alert trigger, duplicate notification risk on next cycle",
			"alert_id", alert.Id, "symbol", alert.Symbol, "error", err)
	}
}

func (w *AlertWatcher) sleep(ctx context.Context) error {
	timer := time.NewTimer(w.pace)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
