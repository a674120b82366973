package api

import (
	"net"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/gigforge/marketplace/docs"
	"github.com/gigforge/marketplace/internal/api/handler"
	"github.com/gigforge/marketplace/internal/api/middleware"
	"github.com/gigforge/marketplace/internal/core/domain"
	"github.com/gigforge/marketplace/internal/core/ports"
	"github.com/gigforge/marketplace/internal/infrastructure/http/handlers"
)

// Deps are the collaborators the HTTP layer needs. Limiter may be nil, and a
// nil Registerer disables the HTTP metrics middleware. X-Forwarded-For is only
// honoured for requests arriving from TrustedProxies.
type Deps struct {
	Auth        ports.AuthService
	Profiles    ports.ProfileService
	Leaderboard ports.LeaderboardService
	Sessions    ports.SessionReader
	Limiter     ports.LoginLimiter
	Cookie      middleware.SessionCookie
	Readiness   map[string]handlers.Pinger
	Registerer  prometheus.Registerer
	Logger      zerolog.Logger

	TrustedProxies []*net.IPNet
}

// pages are the page shells served by the API. Shells with sub-pages also
// answer below their path.
var pages = []struct {
	path     string
	name     string
	subPages bool
}{
	{"/dashboard", "dashboard", true},
	{"/profile", "profile", true},
	{"/achievements", "achievements", true},
	{"/login", "login", false},
	{"/signup", "signup", false},
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)
	e.IPExtractor = ipExtractor(d.TrustedProxies)

	policy := middleware.DefaultGuardPolicy()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(d.Logger))
	e.Use(echomiddleware.Secure())
	e.Use(echomiddleware.BodyLimit("1M"))
	if d.Registerer != nil {
		e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
			Subsystem:  "http",
			Registerer: d.Registerer,
		}))
	}
	e.Use(middleware.LoadSession(d.Sessions))
	e.Use(middleware.Guard(policy))

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(d.Auth, d.Limiter, d.Cookie, d.Logger)
	e.POST("/signup", authHandler.Signup)
	e.POST("/login", authHandler.Login)
	e.POST("/logout", authHandler.Logout)
	e.GET("/session", handler.NewSessionHandler().Current)

	// --- Profile (API, 401 when anonymous) ---
	profileHandler := handler.NewProfileHandler(d.Profiles)
	me := e.Group("/me", middleware.RequireSession())
	me.GET("", profileHandler.Get)
	me.PUT("", profileHandler.Update)

	e.GET("/leaderboard", handler.NewLeaderboardHandler(d.Leaderboard).Top)

	// --- Page shells (guarded by path) ---
	pageHandler := handler.NewPageHandler()
	for _, p := range pages {
		e.GET(p.path, pageHandler.Page(p.name))
		if p.subPages {
			e.GET(p.path+"/*", pageHandler.Page(p.name))
		}
	}
	e.GET("/contests/create", pageHandler.Page("contest_create"), middleware.RequireRole(policy, domain.RoleClient))

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(d.Readiness)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Ops ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// ipExtractor uses the peer address unless proxies are configured, in which
// case the right-most untrusted X-Forwarded-For hop wins.
func ipExtractor(trusted []*net.IPNet) echo.IPExtractor {
	if len(trusted) == 0 {
		return echo.ExtractIPDirect()
	}
	opts := []echo.TrustOption{
		echo.TrustLoopback(false),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(false),
	}
	for _, n := range trusted {
		opts = append(opts, echo.TrustIPRange(n))
	}
	return echo.ExtractIPFromXFFHeader(opts...)
}
