package domain

import (
	"fmt"
	"strings"
	"time"
)

// Role is the marketplace side a user signed up for.
type Role string

const (
	RoleFreelancer Role = "FREELANCER"
	RoleClient     Role = "CLIENT"
)

// XPPerLevel is the amount of XP needed to advance one level.
const XPPerLevel = 500

// ParseRole normalizes a caller-supplied role to its stored casing.
func ParseRole(s string) (Role, error) {
	switch r := Role(strings.ToUpper(strings.TrimSpace(s))); r {
	case RoleFreelancer, RoleClient:
		return r, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidRole, s)
	}
}

// NormalizeEmail trims and lower-cases an address so uniqueness is case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// PortfolioItem is a single showcased piece of work.
type PortfolioItem struct {
	Title       string   `json:"title" bson:"title"`
	Description string   `json:"description,omitempty" bson:"description,omitempty"`
	Image       string   `json:"image,omitempty" bson:"image,omitempty"`
	Tags        []string `json:"tags,omitempty" bson:"tags,omitempty"`
}

// Achievement is an unlocked badge.
type Achievement struct {
	Key        string    `json:"key" bson:"key"`
	Title      string    `json:"title" bson:"title"`
	UnlockedAt time.Time `json:"unlocked_at" bson:"unlocked_at"`
}

// Profile holds the gamified, display-only part of a user record.
type Profile struct {
	Bio          string          `json:"bio,omitempty" bson:"bio,omitempty"`
	Skills       []string        `json:"skills" bson:"skills"`
	Portfolio    []PortfolioItem `json:"portfolio" bson:"portfolio"`
	XP           int             `json:"xp" bson:"xp"`
	Level        int             `json:"level" bson:"level"`
	Streak       int             `json:"streak" bson:"streak"`
	Achievements []Achievement   `json:"achievements" bson:"achievements"`
	Endorsements []string        `json:"endorsements" bson:"endorsements"`
}

// NewProfile returns the profile every account starts with.
func NewProfile() Profile {
	return Profile{
		Skills:       []string{},
		Portfolio:    []PortfolioItem{},
		Level:        1,
		Achievements: []Achievement{},
		Endorsements: []string{},
	}
}

// User is an account holder. PasswordHash never leaves the process.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	Profile      Profile   `json:"profile"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// LevelForXP maps an XP total to a level, starting at 1.
func LevelForXP(xp int) int {
	if xp < 0 {
		xp = 0
	}
	return xp/XPPerLevel + 1
}

// XPToNextLevel is the XP still missing before the next level-up.
func XPToNextLevel(xp int) int {
	if xp < 0 {
		xp = 0
	}
	return XPPerLevel - xp%XPPerLevel
}

// Completion reports how much of the profile has been filled in, as a percentage
// over name, bio, skills and portfolio.
func (u *User) Completion() int {
	done := 0
	if strings.TrimSpace(u.Name) != "" {
		done++
	}
	if strings.TrimSpace(u.Profile.Bio) != "" {
		done++
	}
	if len(u.Profile.Skills) > 0 {
		done++
	}
	if len(u.Profile.Portfolio) > 0 {
		done++
	}
	return done * 100 / 4
}
