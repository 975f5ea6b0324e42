package notification

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/smtp"

	"github.com/KNICEX/stock-watcher/internal/entity"
)

var _ Channel = (*EmailChannel)(nil)

type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

// EmailChannel delivers alert messages over SMTP.
type EmailChannel struct {
	cfg SMTPConfig
}

func NewEmailChannel(cfg SMTPConfig) *EmailChannel {
	return &EmailChannel{
		cfg: cfg,
	}
}

func (c *EmailChannel) Kind() string {
	return ChannelEmail
}

func (c *EmailChannel) Send(ctx context.Context, msg Message) error {
	if msg.Email == "" {
		return nil
	}

	cur := CurrencySymbol(msg.Symbol)
	subject := fmt.Sprintf("Alert Triggered: %s is now %s%s", msg.Symbol, cur, msg.CurrentPrice.StringFixed(2))

	var condition string
	if msg.Direction == entity.DirectionDown {
		condition = "fell to"
	} else {
		condition = "reached"
	}
	body := fmt.Sprintf("Your alert for %s has triggered.\r\n\r\n"+
		"The price %s %s%s (target: %s%s, direction: %s).\r\n",
		msg.Symbol, condition, cur, msg.CurrentPrice.StringFixed(2),
		cur, msg.TargetPrice.StringFixed(2), msg.Direction)

	raw := fmt.Sprintf("From: Stock Watcher <%s>\r\nTo: %s\r\nSubject: %s\r\nContent-Type: text/plain; charset=UTF-8\r\n\r\n%s",
		c.cfg.From, msg.Email, subject, body)

	done := make(chan error, 1)
	go func() {
		done <- c.send(msg.Email, []byte(raw))
	}()
	// net/smtp has no context support, bound it ourselves
	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		return err
	}
}

func (c *EmailChannel) send(to string, raw []byte) error {
	addr := fmt.Sprintf("%s:%d", c.cfg.Host, c.cfg.Port)

	var auth smtp.Auth
	if c.cfg.Username != "" && c.cfg.Password != "" {
		auth = smtp.PlainAuth("", c.cfg.Username, c.cfg.Password, c.cfg.Host)
	}

	// 465 uses implicit TLS, 587 uses STARTTLS via smtp.SendMail
	if c.cfg.Port == 465 {
		return c.sendImplicitTLS(addr, auth, to, raw)
	}
	return smtp.SendMail(addr, auth, c.cfg.From, []string{to}, raw)
}

func (c *EmailChannel) sendImplicitTLS(addr string, auth smtp.Auth, to string, raw []byte) error {
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: c.cfg.Host})
	if err != nil {
		return fmt.Errorf("tls dial: %w", err)
	}
	defer conn.Close()

	cli, err := smtp.NewClient(conn, c.cfg.Host)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	defer cli.Close()

	if auth != nil {
		if err = cli.Auth(auth); err != nil {
			return fmt.Errorf("smtp auth: %w", err)
		}
	}
	if err = cli.Mail(c.cfg.From); err != nil {
		return fmt.Errorf("smtp mail: %w", err)
	}
	if err = cli.Rcpt(to); err != nil {
		return fmt.Errorf("smtp rcpt: %w", err)
	}
	w, err := cli.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	if _, err = w.Write(raw); err != nil {
		return fmt.Errorf("smtp write: %w", err)
	}
	if err = w.Close(); err != nil {
		return fmt.Errorf("smtp close body: %w", err)
	}
	return cli.Quit()
}
