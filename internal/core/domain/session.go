package domain

import "time"

// Session is the identity asserted by a verified session token. It has no
// server-side state; expiry is its only lifecycle transition.
type Session struct {
	UserID    string
	Role      Role
	TokenID   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// HasRole reports whether the session role is one of roles.
func (s *Session) HasRole(roles ...Role) bool {
	if s == nil {
		return false
	}
	for _, r := range roles {
		if s.Role == r {
			return true
		}
	}
	return false
}
