// Package service contains the work done outside of request handlers:
// outgoing mail and periodic cleanups
package service

import (
	"bitwise74/notes-api/config"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Mailer delivers verification links to newly registered users
type Mailer interface {
	SendVerification(ctx context.Context, to, username, link string) error
}

// VerificationLink builds the frontend URL a user opens to verify email
func VerificationLink(frontendURL, token, email string) string {
	q := url.Values{}
	q.Set("token", token)
	q.Set("email", email)

	return strings.TrimSuffix(frontendURL, "/") + "/verification?" + q.Encode()
}

// NewMailer returns an SMTP mailer when mail is enabled and a mailer that
// only logs the link otherwise
func NewMailer(cfg *config.MailConfig) Mailer {
	if !cfg.Enabled {
		return LogMailer{}
	}

	return &SMTPMailer{
		from:   cfg.Sender,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}
}

type SMTPMailer struct {
	from   string
	dialer *gomail.Dialer
}

func (m *SMTPMailer) SendVerification(ctx context.Context, to, username, link string) error {
	if strings.EqualFold(to, m.from) {
		return errors.New("invalid email address")
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Verify your email")
	msg.SetBody("text/html", fmt.Sprintf(
		"<p>Hi %s,</p><p>Click <a href=\"%s\">here</a> to verify your email.</p>",
		username, link,
	))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send verification mail, %w", err)
	}

	return nil
}

// LogMailer writes verification links to the log instead of sending them
type LogMailer struct{}

func (LogMailer) SendVerification(_ context.Context, to, _, link string) error {
	zap.L().Info("Mail disabled, verification link not sent",
		zap.String("to", to),
		zap.String("link", link),
	)

	return nil
}
