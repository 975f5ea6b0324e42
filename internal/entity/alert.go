package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type Direction string

const (
	DirectionUp   Direction = "UP"
	DirectionDown Direction = "DOWN"
)

const (
	AlertStatusActive    = "active"
	AlertStatusTriggered = "triggered"
)

// Alert 用户的价格监控条件
type Alert struct {
	Id          int64           `gorm:"primaryKey;autoIncrement"`
	Symbol      string          `gorm:"index"` // normalized uppercase ticker, e.g. RELIANCE.NS, AAPL, BTCUSDT
	TargetPrice decimal.Decimal `gorm:"type:decimal(20,8)"`
	Direction   Direction       `gorm:"default:UP"`
	Email       string          `gorm:"index"`
	// Telegram chat id, empty if the user has not linked telegram
	TelegramChatId string
	Status         string `gorm:"index;default:active"`
	CreatedAt      time.Time
	TriggeredAt    *time.Time
}

// HasEmail reports whether the alert has an email destination.
func (a Alert) HasEmail() bool {
	return a.Email != ""
}

// HasTelegram reports whether the alert has a telegram destination.
func (a Alert) HasTelegram() bool {
	return a.TelegramChatId != ""
}
