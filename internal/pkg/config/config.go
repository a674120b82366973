package config

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// TrustedProxies are CIDRs allowed to set X-Forwarded-For.
	TrustedProxies []string `env:"TRUSTED_PROXIES"`

	Session  SessionConfig
	Mongo    MongoConfig
	Redis    RedisConfig
	Throttle ThrottleConfig
	Board    LeaderboardConfig
	Events   EventsConfig
	AMQP     AMQPConfig
	SMTP     SMTPConfig
}

type SessionConfig struct {
	JWTSecret         string        `env:"JWT_SECRET, required"`
	TTL               time.Duration `env:"SESSION_TTL,           default=24h"`
	RememberTTL       time.Duration `env:"SESSION_REMEMBER_TTL,  default=720h"`
	CookieSecure      bool          `env:"SESSION_COOKIE_SECURE, default=true"`
	PasswordMinLength int           `env:"PASSWORD_MIN_LENGTH,   default=6"`
	BcryptCost        int           `env:"BCRYPT_COST,           default=10"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=marketplace"`
}

type RedisConfig struct {
	Addr         string        `env:"REDIS_ADDR,          default=localhost:6379"`
	Password     string        `env:"REDIS_PASSWORD"`
	DB           int           `env:"REDIS_DB,            default=0"`
	PoolSize     int           `env:"REDIS_POOL_SIZE,     default=10"`
	DialTimeout  time.Duration `env:"REDIS_DIAL_TIMEOUT,  default=5s"`
	ReadTimeout  time.Duration `env:"REDIS_READ_TIMEOUT,  default=3s"`
	WriteTimeout time.Duration `env:"REDIS_WRITE_TIMEOUT, default=3s"`
}

type ThrottleConfig struct {
	Enabled     bool          `env:"LOGIN_THROTTLE_ENABLED,      default=true"`
	MaxAttempts int           `env:"LOGIN_THROTTLE_MAX_ATTEMPTS, default=5"`
	Window      time.Duration `env:"LOGIN_THROTTLE_WINDOW,       default=15m"`
}

type LeaderboardConfig struct {
	Size        int    `env:"LEADERBOARD_SIZE,         default=50"`
	RefreshSpec string `env:"LEADERBOARD_REFRESH_SPEC, default=@every 5m"`
}

type EventsConfig struct {
	Workers int `env:"EVENTS_WORKERS, default=4"`
}

// AMQPConfig is optional: the publisher sink is only wired when URL is set.
type AMQPConfig struct {
	URL   string `env:"AMQP_URL"`
	Queue string `env:"AMQP_QUEUE, default=account.events"`
}

// SMTPConfig is optional: welcome mail is only sent when Host is set.
type SMTPConfig struct {
	Host     string `env:"SMTP_HOST"`
	Port     int    `env:"SMTP_PORT,     default=587"`
	Username string `env:"SMTP_USERNAME"`
	Password string `env:"SMTP_PASSWORD"`
	From     string `env:"SMTP_FROM,     default=no-reply@gigforge.dev"`
}

// IsDevelopment reports whether the service runs locally.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// TrustedProxyNets parses TrustedProxies. Entries were checked by LoadWith.
func (c *Config) TrustedProxyNets() []*net.IPNet {
	nets := make([]*net.IPNet, 0, len(c.TrustedProxies))
	for _, cidr := range c.TrustedProxies {
		if _, n, err := net.ParseCIDR(cidr); err == nil {
			nets = append(nets, n)
		}
	}
	return nets
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadWith(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadWith reads configuration through the given lookuper and validates it.
func LoadWith(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	var errs []error
	if len(c.Session.JWTSecret) < 32 {
		errs = append(errs, errors.New("JWT_SECRET must be at least 32 bytes"))
	}
	if c.Session.TTL <= 0 || c.Session.RememberTTL <= 0 {
		errs = append(errs, errors.New("session TTLs must be positive"))
	}
	if c.Session.PasswordMinLength < 6 {
		errs = append(errs, errors.New("PASSWORD_MIN_LENGTH must be at least 6"))
	}
	if c.Session.BcryptCost < 4 || c.Session.BcryptCost > 31 {
		errs = append(errs, errors.New("BCRYPT_COST must be between 4 and 31"))
	}
	if c.Throttle.MaxAttempts <= 0 || c.Throttle.Window <= 0 {
		errs = append(errs, errors.New("login throttle limits must be positive"))
	}
	for _, cidr := range c.TrustedProxies {
		if _, _, err := net.ParseCIDR(cidr); err != nil {
			errs = append(errs, fmt.Errorf("TRUSTED_PROXIES: %w", err))
		}
	}
	if c.Redis.PoolSize <= 0 {
		errs = append(errs, errors.New("REDIS_POOL_SIZE must be positive"))
	}
	if c.Board.Size <= 0 {
		errs = append(errs, errors.New("LEADERBOARD_SIZE must be positive"))
	}
	return errors.Join(errs...)
}
