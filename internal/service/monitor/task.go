package monitor

import (
	"context"

	"github.com/KNICEX/stock-watcher/internal/schedule"
)

type AlertMonitorTask struct {
	alertSvc AlertService
}

func NewAlertMonitorTask(alertSvc AlertService) schedule.Task {
	return &AlertMonitorTask{
		alertSvc: alertSvc,
	}
}

func (t *AlertMonitorTask) Run(ctx context.Context) error {
	return t.alertSvc.Scan(ctx)
}

func (t *AlertMonitorTask) Name() string {
	return "price alert monitor task"
}
