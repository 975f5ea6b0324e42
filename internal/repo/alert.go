package repo

import (
	"context"
	"time"

	"github.com/KNICEX/stock-watcher/internal/entity"
	"gorm.io/gorm"
)

type AlertRepo interface {
	Create(ctx context.Context, alert entity.Alert) (int64, error)
	FindActive(ctx context.Context) ([]entity.Alert, error)
	FindByEmail(ctx context.Context, email string) ([]entity.Alert, error)
	MarkTriggered(ctx context.Context, id int64, triggeredAt time.Time) error
}

type alertRepo struct {
	db *gorm.DB
}

func NewAlertRepo(db *gorm.DB) AlertRepo {
	return &alertRepo{
		db: db,
	}
}

func (r *alertRepo) Create(ctx context.Context, alert entity.Alert) (int64, error) {
	err := r.db.WithContext(ctx).Create(&alert).Error
	if err != nil {
		return 0, err
	}
	return alert.Id, nil
}

func (r *alertRepo) FindActive(ctx context.Context) ([]entity.Alert, error) {
	var alerts []entity.Alert
	err := r.db.WithContext(ctx).Where("status = ?", entity.AlertStatusActive).Find(&alerts).Error
	if err != nil {
		return nil, err
	}
	return alerts, nil
}

func (r *alertRepo) FindByEmail(ctx context.Context, email string) ([]entity.Alert, error) {
	var alerts []entity.Alert
	err := r.db.WithContext(ctx).Where("email = ?", email).Find(&alerts).Error
	if err != nil {
		return nil, err
	}
	return alerts, nil
}

func (r *alertRepo) MarkTriggered(ctx context.Context, id int64, triggeredAt time.Time) error {
	return r.db.WithContext(ctx).Model(&entity.Alert{}).Where("id = ?", id).
		Updates(map[string]any{
			"status":       entity.AlertStatusTriggered,
			"triggered_at": triggeredAt,
		}).Error
}
