package domain

import "time"

// AccountEventType names a change to an account that other systems may react to.
type AccountEventType string

const (
	EventUserRegistered AccountEventType = "user.registered"
	EventProfileUpdated AccountEventType = "profile.updated"
)

// AccountEvent is the payload fanned out to notification sinks.
type AccountEvent struct {
	Type       AccountEventType `json:"type"`
	UserID     string           `json:"user_id"`
	Email      string           `json:"email"`
	Name       string           `json:"name"`
	Role       Role             `json:"role"`
	OccurredAt time.Time        `json:"occurred_at"`
}
