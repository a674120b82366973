package middleware

import (
	"net/http"
	"net/url"
	"slices"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/gigforge/marketplace/internal/api/metrics"
)

// Decision is the outcome of the route guard for one request.
type Decision int

const (
	Pass Decision = iota
	RedirectLogin
	RedirectLanding
)

func (d Decision) String() string {
	switch d {
	case RedirectLogin:
		return "redirect_login"
	case RedirectLanding:
		return "redirect_dashboard"
	default:
		return "allow"
	}
}

// GuardPolicy lists the paths the guard acts on. Protected entries cover
// their sub-paths; ProtectedExact and AuthOnly match the path exactly.
type GuardPolicy struct {
	Protected      []string
	ProtectedExact []string
	AuthOnly       []string
	LoginPath      string
	LandingPath    string
}

// DefaultGuardPolicy covers the marketplace pages.
func DefaultGuardPolicy() GuardPolicy {
	return GuardPolicy{
		Protected:      []string{"/dashboard", "/profile", "/achievements"},
		ProtectedExact: []string{"/contests/create"},
		AuthOnly:       []string{"/login", "/signup"},
		LoginPath:      "/login",
		LandingPath:    "/dashboard",
	}
}

// Decide is a pure function of the path and whether the caller holds a valid
// session. It never touches the store.
func (p GuardPolicy) Decide(path string, authenticated bool) Decision {
	switch {
	case !authenticated && (matchesAny(path, p.Protected) || slices.Contains(p.ProtectedExact, path)):
		return RedirectLogin
	case authenticated && slices.Contains(p.AuthOnly, path):
		return RedirectLanding
	default:
		return Pass
	}
}

// LoginURL is the login page with the requested path as callback.
func (p GuardPolicy) LoginURL(callback string) string {
	return p.LoginPath + "?callbackUrl=" + url.QueryEscape(callback)
}

// Guard applies the policy to page navigations (GET and HEAD). Form posts to
// the same paths are left alone. LoadSession must run first.
func Guard(policy GuardPolicy) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if req.Method != http.MethodGet && req.Method != http.MethodHead {
				return next(c)
			}

			path := req.URL.Path
			d := policy.Decide(path, SessionFrom(c) != nil)
			metrics.GuardDecisionsTotal.WithLabelValues(d.String()).Inc()

			switch d {
			case RedirectLogin:
				return c.Redirect(http.StatusTemporaryRedirect, policy.LoginURL(path))
			case RedirectLanding:
				return c.Redirect(http.StatusTemporaryRedirect, policy.LandingPath)
			}
			return next(c)
		}
	}
}

// matchesAny matches whole path segments: /profile matches /profile and
// /profile/edit but not /profiles.
func matchesAny(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if path == p || strings.HasPrefix(path, strings.TrimSuffix(p, "/")+"/") {
			return true
		}
	}
	return false
}
