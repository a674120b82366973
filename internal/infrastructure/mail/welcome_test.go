package mail

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"

	"github.com/jordan-wright/email"
	"github.com/rs/zerolog"

	"github.com/gigforge/marketplace/internal/core/domain"
)

type captured struct {
	email *email.Email
	addr  string
	auth  smtp.Auth
	calls int
}

func newTestSender(cfg Config, err error) (*WelcomeSender, *captured) {
	c := &captured{}
	s := NewWelcomeSender(cfg, zerolog.Nop())
	s.send = func(e *email.Email, addr string, auth smtp.Auth) error {
		c.calls++
		c.email, c.addr, c.auth = e, addr, auth
		return err
	}
	return s, c
}

func TestWelcomeSender_SendsOnRegistration(t *testing.T) {
	s, c := newTestSender(Config{Host: "smtp.local", Port: 2525, From: "hello@gigforge.dev"}, nil)

	err := s.Handle(context.Background(), domain.AccountEvent{
		Type:  domain.EventUserRegistered,
		Email: "ana@example.com",
		Name:  "Ana",
		Role:  domain.RoleClient,
	})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if c.calls != 1 {
		t.Fatalf("send calls = %d, want 1", c.calls)
	}
	if c.addr != "smtp.local:2525" {
		t.Fatalf("addr = %q", c.addr)
	}
	if c.auth != nil {
		t.Fatal("expected no auth without username")
	}
	if got := c.email.To; len(got) != 1 || got[0] != "ana@example.com" {
		t.Fatalf("to = %v", got)
	}
	body := string(c.email.Text)
	if !strings.Contains(body, "Hi Ana") || !strings.Contains(body, "client") {
		t.Fatalf("unexpected body: %q", body)
	}
}

func TestWelcomeSender_IgnoresOtherEvents(t *testing.T) {
	s, c := newTestSender(Config{Host: "smtp.local", Port: 25}, nil)

	if err := s.Handle(context.Background(), domain.AccountEvent{Type: domain.EventProfileUpdated, Email: "a@b.co"}); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if c.calls != 0 {
		t.Fatalf("send calls = %d, want 0", c.calls)
	}
}

func TestWelcomeSender_UsesAuthWhenConfigured(t *testing.T) {
	s, c := newTestSender(Config{Host: "smtp.local", Port: 587, Username: "u", Password: "p"}, nil)

	_ = s.Handle(context.Background(), domain.AccountEvent{Type: domain.EventUserRegistered, Email: "a@b.co"})
	if c.auth == nil {
		t.Fatal("expected PLAIN auth")
	}
}

func TestWelcomeSender_WrapsSendError(t *testing.T) {
	boom := errors.New("relay refused")
	s, _ := newTestSender(Config{Host: "smtp.local", Port: 25}, boom)

	err := s.Handle(context.Background(), domain.AccountEvent{Type: domain.EventUserRegistered, Email: "a@b.co"})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped relay error, got %v", err)
	}
}
