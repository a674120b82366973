// Package mail sends transactional e-mail over SMTP.
package mail

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"
	"github.com/rs/zerolog"

	"github.com/gigforge/marketplace/internal/core/domain"
)

// Config holds the SMTP relay settings.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// sendFunc matches (*email.Email).Send.
type sendFunc func(e *email.Email, addr string, auth smtp.Auth) error

// WelcomeSender mails a greeting to every newly registered account. Other
// event types are ignored.
type WelcomeSender struct {
	cfg    Config
	send   sendFunc
	logger zerolog.Logger
}

func NewWelcomeSender(cfg Config, logger zerolog.Logger) *WelcomeSender {
	return &WelcomeSender{
		cfg: cfg,
		send: func(e *email.Email, addr string, auth smtp.Auth) error {
			return e.Send(addr, auth)
		},
		logger: logger,
	}
}

func (s *WelcomeSender) Name() string { return "welcome_mail" }

func (s *WelcomeSender) Handle(_ context.Context, event domain.AccountEvent) error {
	if event.Type != domain.EventUserRegistered || event.Email == "" {
		return nil
	}

	e := welcomeEmail(s.cfg.From, event)
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}
	if err := s.send(e, addr, auth); err != nil {
		return fmt.Errorf("send welcome mail: %w", err)
	}

	s.logger.Info().Str("user_id", event.UserID).Msg("welcome mail sent")
	return nil
}

func welcomeEmail(from string, event domain.AccountEvent) *email.Email {
	e := email.NewEmail()
	e.From = from
	e.To = []string{event.Email}
	e.Subject = "Welcome to GigForge"

	next := "browse open contests and start earning XP"
	if event.Role == domain.RoleClient {
		next = "post your first contest"
	}
	e.Text = []byte(fmt.Sprintf(
		"Hi %s,\n\nYour %s account is ready. Sign in and %s.\n\nThe GigForge team\n",
		event.Name, roleLabel(event.Role), next,
	))
	return e
}

func roleLabel(r domain.Role) string {
	if r == domain.RoleClient {
		return "client"
	}
	return "freelancer"
}
