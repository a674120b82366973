package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/gigforge/marketplace/internal/core/domain"
	"github.com/gigforge/marketplace/internal/core/ports"
)

const (
	DefaultMinPasswordLength = 6
	DefaultBcryptCost        = 10
	// bcrypt ignores everything past 72 bytes.
	maxPasswordBytes = 72
)

// AuthOptions tunes password policy.
type AuthOptions struct {
	MinPasswordLength int
	BcryptCost        int
}

// AuthService implements signup and login.
type AuthService struct {
	repo      ports.UserRepository
	sessions  ports.SessionIssuer
	events    ports.AccountEventPublisher
	validate  *validator.Validate
	minLength int
	cost      int
	// dummyHash is compared against when the email is unknown so both failure
	// paths cost one bcrypt comparison.
	dummyHash []byte
	logger    zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, sessions ports.SessionIssuer, events ports.AccountEventPublisher, opts AuthOptions, logger zerolog.Logger) *AuthService {
	if opts.MinPasswordLength <= 0 {
		opts.MinPasswordLength = DefaultMinPasswordLength
	}
	if opts.BcryptCost < bcrypt.MinCost || opts.BcryptCost > bcrypt.MaxCost {
		opts.BcryptCost = DefaultBcryptCost
	}
	if events == nil {
		events = nopPublisher{}
	}

	dummy, err := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), opts.BcryptCost)
	if err != nil {
		// only fails for an out-of-range cost, which is clamped above
		panic(fmt.Sprintf("auth: dummy hash: %v", err))
	}

	return &AuthService{
		repo:      repo,
		sessions:  sessions,
		events:    events,
		validate:  validator.New(),
		minLength: opts.MinPasswordLength,
		cost:      opts.BcryptCost,
		dummyHash: dummy,
		logger:    logger,
	}
}

func (s *AuthService) Signup(ctx context.Context, in ports.SignupInput) (*domain.User, error) {
	name := strings.TrimSpace(in.Name)
	email := domain.NormalizeEmail(in.Email)
	if name == "" || email == "" || in.Password == "" || strings.TrimSpace(in.Role) == "" {
		return nil, fmt.Errorf("%w: missing required fields", domain.ErrInvalidInput)
	}
	if err := s.validate.Var(email, "email"); err != nil {
		return nil, fmt.Errorf("%w: email must be a valid email", domain.ErrInvalidInput)
	}
	if utf8.RuneCountInString(in.Password) < s.minLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, s.minLength)
	}
	if len(in.Password) > maxPasswordBytes {
		return nil, fmt.Errorf("%w: password must be at most %d bytes", domain.ErrInvalidInput, maxPasswordBytes)
	}
	role, err := domain.ParseRole(in.Role)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		s.logger.Error().Err(err).Msg("signup: lookup by email failed")
		return nil, fmt.Errorf("signup: lookup: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("signup: hash password: %w", err)
	}

	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Profile:      domain.NewProfile(),
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return nil, err
		}
		s.logger.Error().Err(err).Msg("signup: create user failed")
		return nil, fmt.Errorf("signup: create: %w", err)
	}

	s.events.Publish(accountEvent(domain.EventUserRegistered, created))
	s.logger.Info().Str("user_id", created.ID).Str("role", string(created.Role)).Msg("user registered")

	created.PasswordHash = ""
	return created, nil
}

// Login verifies credentials and mints a session. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, in ports.LoginInput) (*ports.LoginResult, error) {
	email := domain.NormalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(in.Password))
			return nil, domain.ErrInvalidCredentials
		}
		s.logger.Error().Err(err).Msg("login: lookup by email failed")
		return nil, fmt.Errorf("login: lookup: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, exp, err := s.sessions.Issue(user, in.RememberMe)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", user.ID).Msg("login: issue session failed")
		return nil, fmt.Errorf("login: %w", err)
	}

	s.logger.Info().Str("user_id", user.ID).Bool("remember_me", in.RememberMe).Msg("session issued")

	user.PasswordHash = ""
	return &ports.LoginResult{User: user, Token: token, ExpiresAt: exp}, nil
}

func accountEvent(t domain.AccountEventType, u *domain.User) domain.AccountEvent {
	return domain.AccountEvent{
		Type:       t,
		UserID:     u.ID,
		Email:      u.Email,
		Name:       u.Name,
		Role:       u.Role,
		OccurredAt: time.Now().UTC(),
	}
}

type nopPublisher struct{}

func (nopPublisher) Publish(domain.AccountEvent) {}
