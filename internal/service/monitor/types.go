package monitor

import (
	"context"
)

// AlertService 告警监控服务接口
type AlertService interface {
	// Scan runs one full evaluation cycle over all active alerts.
	Scan(ctx context.Context) error
}
