package monitor

import (
	"github.com/KNICEX/stock-watcher/internal/entity"
	"github.com/KNICEX/stock-watcher/internal/service/quote"
	"github.com/samber/lo"
)

// Evaluate returns the subset of alerts whose condition is met by the quote.
// Comparisons are inclusive so an exact target match triggers.
// Pure function, no I/O.
func Evaluate(alerts []entity.Alert, q quote.Quote) []entity.Alert {
	return lo.Filter(alerts, func(alert entity.Alert, _ int) bool {
		return Triggered(alert, q)
	})
}

func Triggered(alert entity.Alert, q quote.Quote) bool {
	if alert.Status != entity.AlertStatusActive {
		return false
	}
	switch alert.Direction {
	case entity.DirectionDown:
		return q.Price.LessThanOrEqual(alert.TargetPrice)
	default:
		// UP is the default direction
		return q.Price.GreaterThanOrEqual(alert.TargetPrice)
	}
}
