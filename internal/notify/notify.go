// Package notify delivers password recovery codes.
package notify

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/vovakirdan/tui-runner/internal/config"
)

// Notifier delivers a recovery code to an email address.
// Send never panics; failures come back as delivered=false with a readable status.
type Notifier interface {
	Send(ctx context.Context, email, code string) (delivered bool, status string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, email, code string) (bool, string)

// Send calls f.
func (f NotifierFunc) Send(ctx context.Context, email, code string) (bool, string) {
	return f(ctx, email, code)
}

// Status messages shown on the recovery screen.
const (
	StatusNotConfigured = "SMTP not configured (set SMTP_HOST/SMTP_USER/SMTP_PASS/SMTP_SENDER)."
	StatusSendFailed    = "Could not send the email. Check the SMTP settings."
)

const subject = "Recovery code - Dino Runner"

// SMTP sends codes over SMTP with STARTTLS and PLAIN auth.
type SMTP struct {
	cfg     config.SMTPConfig
	timeout time.Duration
}

var _ Notifier = (*SMTP)(nil)

// NewSMTP returns an SMTP notifier. A zero timeout means 12 seconds.
func NewSMTP(cfg config.SMTPConfig, timeout time.Duration) *SMTP {
	if timeout <= 0 {
		timeout = 12 * time.Second
	}
	return &SMTP{cfg: cfg, timeout: timeout}
}

// Send delivers one code. Transport details are never shown to the player.
func (s *SMTP) Send(ctx context.Context, email, code string) (bool, string) {
	if !s.cfg.Configured() {
		return false, StatusNotConfigured
	}
	if err := s.deliver(ctx, email, code); err != nil {
		return false, StatusSendFailed
	}
	return true, "Code sent to " + email
}

func (s *SMTP) deliver(ctx context.Context, email, code string) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	addr := net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("notify: cannot dial %s: %w", addr, err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	c, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("notify: smtp handshake failed: %w", err)
	}
	defer c.Close()

	if err := c.StartTLS(&tls.Config{ServerName: s.cfg.Host}); err != nil {
		return fmt.Errorf("notify: starttls failed: %w", err)
	}
	if err := c.Auth(smtp.PlainAuth("", s.cfg.User, s.cfg.Password, s.cfg.Host)); err != nil {
		return fmt.Errorf("notify: auth failed: %w", err)
	}
	if err := c.Mail(s.cfg.Sender); err != nil {
		return fmt.Errorf("notify: MAIL FROM rejected: %w", err)
	}
	if err := c.Rcpt(email); err != nil {
		return fmt.Errorf("notify: RCPT TO rejected: %w", err)
	}

	w, err := c.Data()
	if err != nil {
		return fmt.Errorf("notify: DATA rejected: %w", err)
	}
	if _, err := w.Write(Message(s.cfg.Sender, email, code)); err != nil {
		w.Close()
		return fmt.Errorf("notify: cannot write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("notify: message rejected: %w", err)
	}
	return c.Quit()
}

// Message builds the plain-text recovery mail.
func Message(from, to, code string) []byte {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: " + subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString("Your recovery code is: " + code + "\r\n")
	return []byte(b.String())
}
