package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const (
	secureCookieName   = "__Secure-session-token"
	insecureCookieName = "session-token"
)

// SessionCookie writes and clears the session cookie. Browsers only accept the
// __Secure- prefix over HTTPS, so the name follows the Secure flag.
type SessionCookie struct {
	Secure bool
}

// Name returns the cookie name used for writes.
func (sc SessionCookie) Name() string {
	if sc.Secure {
		return secureCookieName
	}
	return insecureCookieName
}

// Write sets the token cookie so it expires together with the token.
func (sc SessionCookie) Write(c echo.Context, token string, expiresAt time.Time) {
	maxAge := int(time.Until(expiresAt).Seconds())
	if maxAge < 1 {
		maxAge = 1
	}
	c.SetCookie(&http.Cookie{
		Name:     sc.Name(),
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   sc.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Clear expires both cookie names so a session set under either transport is removed.
func (sc SessionCookie) Clear(c echo.Context) {
	for _, name := range []string{secureCookieName, insecureCookieName} {
		c.SetCookie(&http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			Expires:  time.Unix(0, 0),
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   name == secureCookieName || sc.Secure,
			SameSite: http.SameSiteLaxMode,
		})
	}
}

// sessionToken returns the token from whichever cookie name is present.
func sessionToken(c echo.Context) string {
	for _, name := range []string{secureCookieName, insecureCookieName} {
		if ck, err := c.Cookie(name); err == nil && ck.Value != "" {
			return ck.Value
		}
	}
	return ""
}
