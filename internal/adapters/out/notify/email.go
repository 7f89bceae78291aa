package notify

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net"
	"net/smtp"
	"strings"
	"time"

	"orders/internal/core/application/notifications"
)

const EmailChannelName = "email"

// DefaultSMTPTimeout bounds one delivery when SMTPConfig.Timeout is unset.
const DefaultSMTPTimeout = 10 * time.Second

// SMTPConfig configures outgoing mail. An empty Host switches the channel to
// log-only delivery. Timeout caps the whole SMTP conversation.
type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
	Timeout  time.Duration
}

type dialFunc func(ctx context.Context, network, addr string) (net.Conn, error)

type EmailChannel struct {
	cfg    SMTPConfig
	dial   dialFunc
	logger *slog.Logger
}

func NewEmailChannel(cfg SMTPConfig, logger *slog.Logger) *EmailChannel {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultSMTPTimeout
	}
	return &EmailChannel{
		cfg:    cfg,
		dial:   (&net.Dialer{}).DialContext,
		logger: logger.With("component", "email_channel"),
	}
}

func (c *EmailChannel) Name() string {
	return EmailChannelName
}

func (c *EmailChannel) Send(ctx context.Context, recipient string, msg notifications.Message) error {
	if c.cfg.Host == "" {
		c.logger.InfoContext(ctx, "sending email",
			"to", recipient,
			"event", msg.Kind,
			"event_id", msg.EventID.String(),
			"order_id", msg.OrderID,
			"product", msg.ProductName,
		)
		return nil
	}

	if err := c.deliver(ctx, recipient, c.render(recipient, msg)); err != nil {
		return fmt.Errorf("send mail to %s: %w", recipient, err)
	}

	c.logger.DebugContext(ctx, "email sent", "to", recipient, "event_id", msg.EventID.String())
	return nil
}

// deliver runs one SMTP conversation. Every read and write on the connection
// observes the earlier of ctx's deadline and cfg.Timeout, and cancelling ctx
// unblocks any pending I/O.
func (c *EmailChannel) deliver(ctx context.Context, recipient string, body []byte) error {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	conn, err := c.dial(ctx, "tcp", net.JoinHostPort(c.cfg.Host, c.cfg.Port))
	if err != nil {
		return err
	}
	deadline, _ := ctx.Deadline()
	if err := conn.SetDeadline(deadline); err != nil {
		_ = conn.Close()
		return err
	}
	stop := context.AfterFunc(ctx, func() { _ = conn.SetDeadline(time.Now()) })
	defer stop()

	client, err := smtp.NewClient(conn, c.cfg.Host)
	if err != nil {
		_ = conn.Close()
		return err
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(&tls.Config{ServerName: c.cfg.Host}); err != nil {
			return err
		}
	}
	if c.cfg.Username != "" {
		if err := client.Auth(smtp.PlainAuth("", c.cfg.Username, c.cfg.Password, c.cfg.Host)); err != nil {
			return err
		}
	}

	if err := client.Mail(c.cfg.From); err != nil {
		return err
	}
	if err := client.Rcpt(recipient); err != nil {
		return err
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(body); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	return client.Quit()
}

func (c *EmailChannel) render(recipient string, msg notifications.Message) []byte {
	var b strings.Builder
	b.WriteString("From: " + c.cfg.From + "\r\n")
	b.WriteString("To: " + recipient + "\r\n")
	b.WriteString("Subject: " + msg.Subject() + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.Body() + "\r\n")
	return []byte(b.String())
}
