package handler

import (
	"time"

	"github.com/gigforge/marketplace/internal/core/domain"
	"github.com/gigforge/marketplace/internal/core/ports"
)

type portfolioItemRequest struct {
	Title       string   `json:"title"       validate:"required,max=120"`
	Description string   `json:"description" validate:"max=2000"`
	Image       string   `json:"image"       validate:"omitempty,url"`
	Tags        []string `json:"tags"        validate:"max=20"`
}

// updateProfileRequest is the whole set of fields PUT /me can change. Anything
// else in the body (id, email, password, role, xp...) is dropped on decode.
type updateProfileRequest struct {
	Name      *string                 `json:"name"      validate:"omitempty,max=100"`
	Bio       *string                 `json:"bio"       validate:"omitempty,max=2000"`
	Skills    *[]string               `json:"skills"    validate:"omitempty,max=50"`
	Portfolio *[]portfolioItemRequest `json:"portfolio" validate:"omitempty,max=50,dive"`
}

func (r updateProfileRequest) toFields() ports.ProfileFields {
	f := ports.ProfileFields{Name: r.Name, Bio: r.Bio, Skills: r.Skills}
	if r.Portfolio != nil {
		items := make([]domain.PortfolioItem, len(*r.Portfolio))
		for i, p := range *r.Portfolio {
			items[i] = domain.PortfolioItem{
				Title:       p.Title,
				Description: p.Description,
				Image:       p.Image,
				Tags:        p.Tags,
			}
		}
		f.Portfolio = &items
	}
	return f
}

// userResponse is the public projection of a user. It has no password field.
type userResponse struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Email         string         `json:"email"`
	Role          string         `json:"role"`
	Profile       domain.Profile `json:"profile"`
	Completion    int            `json:"completion"`
	XPToNextLevel int            `json:"xp_to_next_level"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

func toUserResponse(u *domain.User) userResponse {
	p := u.Profile
	p.Level = domain.LevelForXP(p.XP)
	return userResponse{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		Role:          string(u.Role),
		Profile:       p,
		Completion:    u.Completion(),
		XPToNextLevel: domain.XPToNextLevel(p.XP),
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}
