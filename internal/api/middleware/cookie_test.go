package middleware

import (
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

func TestSessionCookie_Write(t *testing.T) {
	cases := []struct {
		secure bool
		name   string
	}{
		{true, "__Secure-session-token"},
		{false, "session-token"},
	}
	for _, tc := range cases {
		e := echo.New()
		c, rec := newRequest(e, http.MethodPost, "/login", "", "")

		exp := time.Now().Add(time.Hour)
		SessionCookie{Secure: tc.secure}.Write(c, "tok", exp)

		cookies := rec.Result().Cookies()
		if len(cookies) != 1 {
			t.Fatalf("expected one cookie, got %d", len(cookies))
		}
		ck := cookies[0]
		if ck.Name != tc.name || ck.Value != "tok" {
			t.Fatalf("unexpected cookie %s=%s", ck.Name, ck.Value)
		}
		if !ck.HttpOnly || ck.Secure != tc.secure || ck.SameSite != http.SameSiteLaxMode || ck.Path != "/" {
			t.Fatalf("unexpected attributes: %+v", ck)
		}
		if ck.MaxAge < 3590 || ck.MaxAge > 3600 {
			t.Fatalf("max-age = %d, want about an hour", ck.MaxAge)
		}
	}
}

func TestSessionCookie_ClearExpiresBothNames(t *testing.T) {
	e := echo.New()
	c, rec := newRequest(e, http.MethodPost, "/logout", "", "")

	SessionCookie{Secure: false}.Clear(c)

	seen := map[string]bool{}
	for _, ck := range rec.Result().Cookies() {
		if ck.MaxAge >= 0 {
			t.Fatalf("cookie %s not expired", ck.Name)
		}
		seen[ck.Name] = true
	}
	if !seen[secureCookieName] || !seen[insecureCookieName] {
		t.Fatalf("expected both cookie names cleared, got %v", seen)
	}
}

func TestSessionToken_PrefersSecureName(t *testing.T) {
	e := echo.New()
	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: insecureCookieName, Value: "plain"})
	req.AddCookie(&http.Cookie{Name: secureCookieName, Value: "secure"})
	c := e.NewContext(req, nil)

	if got := sessionToken(c); got != "secure" {
		t.Fatalf("sessionToken = %q, want secure", got)
	}
}
