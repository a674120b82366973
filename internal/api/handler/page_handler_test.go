package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gigforge/marketplace/internal/core/domain"
)

func TestPageHandler_Page(t *testing.T) {
	e := newEcho()
	c, rec := jsonContext(e, http.MethodGet, "/profile/edit", "")
	withSession(c, "u1", domain.RoleFreelancer)

	if err := NewPageHandler().Page("profile")(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp pageResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Page != "profile" || resp.Path != "/profile/edit" || resp.User == nil || resp.User.ID != "u1" {
		t.Fatalf("unexpected page: %+v", resp)
	}
}
