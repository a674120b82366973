package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/gigforge/marketplace/internal/core/domain"
)

func decodeSession(t *testing.T, body []byte) sessionResponse {
	t.Helper()
	var resp sessionResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return resp
}

func TestSessionHandler_Anonymous(t *testing.T) {
	e := newEcho()
	c, rec := jsonContext(e, http.MethodGet, "/session", "")

	if err := NewSessionHandler().Current(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	resp := decodeSession(t, rec.Body.Bytes())
	if resp.Status != "unauthenticated" || resp.User != nil || resp.HasRequiredRole != nil {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestSessionHandler_Authenticated(t *testing.T) {
	e := newEcho()
	c, rec := jsonContext(e, http.MethodGet, "/session", "")
	withSession(c, "u1", domain.RoleClient)

	if err := NewSessionHandler().Current(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	resp := decodeSession(t, rec.Body.Bytes())
	if resp.Status != "authenticated" || resp.User == nil || resp.User.ID != "u1" || resp.User.Role != "CLIENT" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.ExpiresAt == nil {
		t.Fatalf("expected expires_at")
	}
}

func TestSessionHandler_RoleCheck(t *testing.T) {
	cases := []struct {
		query string
		role  domain.Role
		want  bool
	}{
		{"client", domain.RoleClient, true},
		{"FREELANCER,CLIENT", domain.RoleFreelancer, true},
		{"client", domain.RoleFreelancer, false},
	}
	for _, tc := range cases {
		e := newEcho()
		c, rec := jsonContext(e, http.MethodGet, "/session?role="+tc.query, "")
		withSession(c, "u1", tc.role)

		if err := NewSessionHandler().Current(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		resp := decodeSession(t, rec.Body.Bytes())
		if resp.HasRequiredRole == nil || *resp.HasRequiredRole != tc.want {
			t.Fatalf("role=%s as %s: has_required_role = %v, want %v", tc.query, tc.role, resp.HasRequiredRole, tc.want)
		}
	}
}

func TestSessionHandler_UnknownRole(t *testing.T) {
	e := newEcho()
	c, _ := jsonContext(e, http.MethodGet, "/session?role=admin", "")

	if err := NewSessionHandler().Current(c); !errors.Is(err, domain.ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}
