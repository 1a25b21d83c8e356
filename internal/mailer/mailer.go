// Package mailer sends transactional email over SMTP. Messages are plain
// text; delivery normally happens through the job queue so request handlers
// never block on the SMTP round trip.
package mailer

import (
	"fmt"
	"net/smtp"
	"strings"

	"go.uber.org/zap"

	"github.com/savora/savora-cloud-go/internal/config"
)

// Mailer delivers outbound email.
type Mailer interface {
	Send(to, subject, body string) error
}

// smtpMailer implements Mailer over net/smtp with PLAIN auth.
type smtpMailer struct {
	cfg config.SMTPConfig
}

// NewMailer creates a Mailer from SMTP configuration. When SMTP is disabled
// the returned mailer logs messages instead of delivering them, which keeps
// development environments working without a relay.
func NewMailer(cfg config.SMTPConfig, log *zap.Logger) Mailer {
	if !cfg.Enabled {
		return &logMailer{log: log}
	}
	return &smtpMailer{cfg: cfg}
}

func (m *smtpMailer) Send(to, subject, body string) error {
	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", m.cfg.From)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	if err := smtp.SendMail(m.cfg.Addr(), auth, m.cfg.From, []string{to}, []byte(msg.String())); err != nil {
		return fmt.Errorf("smtp send to %s: %w", to, err)
	}
	return nil
}

// logMailer is the no-relay fallback used in development.
type logMailer struct {
	log *zap.Logger
}

func (m *logMailer) Send(to, subject, body string) error {
	m.log.Info("smtp disabled, logging email instead",
		zap.String("to", to),
		zap.String("subject", subject),
	)
	return nil
}
