package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/gigforge/marketplace/internal/core/domain"
	"github.com/gigforge/marketplace/internal/core/ports"
)

type ProfileService struct {
	repo   ports.UserRepository
	events ports.AccountEventPublisher
	logger zerolog.Logger
}

func NewProfileService(repo ports.UserRepository, events ports.AccountEventPublisher, logger zerolog.Logger) *ProfileService {
	if events == nil {
		events = nopPublisher{}
	}
	return &ProfileService{repo: repo, events: events, logger: logger}
}

func (s *ProfileService) Get(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

// Update applies the whitelisted profile fields. Identity fields (id, email,
// password, role) have no representation in ports.ProfileFields and therefore
// can never reach the store through this path.
func (s *ProfileService) Update(ctx context.Context, userID string, fields ports.ProfileFields) (*domain.User, error) {
	clean, err := sanitizeProfileFields(fields)
	if err != nil {
		return nil, err
	}
	if clean.IsEmpty() {
		return s.Get(ctx, userID)
	}

	user, err := s.repo.UpdateProfile(ctx, userID, clean)
	if err != nil {
		return nil, err
	}

	s.events.Publish(accountEvent(domain.EventProfileUpdated, user))
	s.logger.Info().Str("user_id", userID).Msg("profile updated")

	user.PasswordHash = ""
	return user, nil
}

func sanitizeProfileFields(f ports.ProfileFields) (ports.ProfileFields, error) {
	var out ports.ProfileFields

	if f.Name != nil {
		name := strings.TrimSpace(*f.Name)
		if name == "" {
			return out, fmt.Errorf("%w: name cannot be empty", domain.ErrInvalidInput)
		}
		out.Name = &name
	}
	if f.Bio != nil {
		bio := strings.TrimSpace(*f.Bio)
		out.Bio = &bio
	}
	if f.Skills != nil {
		skills := cleanSkills(*f.Skills)
		out.Skills = &skills
	}
	if f.Portfolio != nil {
		items := make([]domain.PortfolioItem, 0, len(*f.Portfolio))
		for i, item := range *f.Portfolio {
			item.Title = strings.TrimSpace(item.Title)
			if item.Title == "" {
				return out, fmt.Errorf("%w: portfolio[%d] title is required", domain.ErrInvalidInput, i)
			}
			item.Description = strings.TrimSpace(item.Description)
			item.Tags = cleanSkills(item.Tags)
			items = append(items, item)
		}
		out.Portfolio = &items
	}
	return out, nil
}

// cleanSkills trims entries, drops blanks and collapses case-insensitive duplicates,
// keeping first-seen order.
func cleanSkills(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		key := strings.ToLower(s)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, s)
	}
	return out
}
