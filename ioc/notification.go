package ioc

import (
	"time"

	"github.com/KNICEX/stock-watcher/internal/service/notification"
	"github.com/spf13/viper"
)

func InitDispatcher() notification.Dispatcher {
	type Config struct {
		SMTP     notification.SMTPConfig `mapstructure:"smtp"`
		Telegram struct {
			Token string `mapstructure:"token"`
		} `mapstructure:"telegram"`
		SendTimeoutSeconds int `mapstructure:"send_timeout_seconds"`
	}

	cfg := Config{
		SendTimeoutSeconds: 10,
	}
	if err := viper.UnmarshalKey("notification", &cfg); err != nil {
		panic(err)
	}

	var channels []notification.Channel
	if cfg.SMTP.Host != "" {
		channels = append(channels, notification.NewEmailChannel(cfg.SMTP))
	}
	if cfg.Telegram.Token != "" {
		channels = append(channels, notification.NewTelegramChannel(cfg.Telegram.Token, nil))
	}

	return notification.NewMultiDispatcher(channels,
		notification.WithSendTimeout(time.Duration(cfg.SendTimeoutSeconds)*time.Second))
}
