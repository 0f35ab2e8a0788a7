// Package config resolves runtime configuration from flags, the
// environment and an optional .env file.
package config

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store drivers.
const (
	StoreMemory   = "memory"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
)

// Config is the resolved runtime configuration.
type Config struct {
	Addr        string
	WebDir      string
	Store       string
	DataDir     string
	DatabaseURL string
	Location    *time.Location
	WeekStart   time.Weekday
	LogLevel    slog.Level
	LogFormat   string

	Passcode     string
	PasscodeHash string
	Owner        string
	ForwardAuth  bool
	OIDC         OIDC
}

// OIDC holds the single sign-on provider settings.
type OIDC struct {
	Issuer       string
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

// Enabled reports whether an OIDC issuer is configured.
func (o OIDC) Enabled() bool {
	return o.Issuer != ""
}

// Load reads .env (if present) into the environment and parses args.
func Load(args []string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return Parse(args, os.Getenv)
}

// Parse resolves each setting from its flag, then its environment
// variable, then its default.
func Parse(args []string, getenv func(string) string) (Config, error) {
	var (
		cfg                                      Config
		tzName, weekStart, logLevel, forwardAuth string
	)

	fs := flag.NewFlagSet("nurturetrack", flag.ContinueOnError)
	fs.StringVar(&cfg.Addr, "addr", "", "Listen address")
	fs.StringVar(&cfg.WebDir, "web", "", "Directory of the web front end")
	fs.StringVar(&cfg.Store, "store", "", "Store driver (memory, sqlite or postgres)")
	fs.StringVar(&cfg.DataDir, "data", "", "Data directory for the sqlite store")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL for the postgres store")
	fs.StringVar(&tzName, "tz", "", "IANA time zone entries are viewed in")
	fs.StringVar(&weekStart, "week-start", "", "First day of calendar weeks")
	fs.StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", "", "Log format (json or text)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	fallback := func(dst *string, key, def string) {
		if *dst == "" {
			*dst = getenv(key)
		}
		if *dst == "" {
			*dst = def
		}
	}

	fallback(&cfg.Addr, "ADDR", ":8080")
	fallback(&cfg.WebDir, "WEB_DIR", "web")
	fallback(&cfg.DataDir, "DATA_DIR", "data")
	fallback(&cfg.DatabaseURL, "DATABASE_URL", "")
	defaultStore := StoreSQLite
	if cfg.DatabaseURL != "" {
		defaultStore = StorePostgres
	}
	fallback(&cfg.Store, "STORE", defaultStore)
	fallback(&tzName, "TZ_NAME", "")
	fallback(&weekStart, "WEEK_START", "sunday")
	fallback(&logLevel, "LOG_LEVEL", "info")
	fallback(&cfg.LogFormat, "LOG_FORMAT", "json")

	cfg.Passcode = getenv("PASSCODE")
	cfg.PasscodeHash = getenv("PASSCODE_HASH")
	cfg.Owner = getenv("OWNER")
	forwardAuth = getenv("FORWARD_AUTH")
	cfg.OIDC = OIDC{
		Issuer:       getenv("OIDC_ISSUER"),
		ClientID:     getenv("OIDC_CLIENT_ID"),
		ClientSecret: getenv("OIDC_CLIENT_SECRET"),
		RedirectURL:  getenv("OIDC_REDIRECT_URL"),
	}

	switch cfg.Store {
	case StoreMemory, StoreSQLite:
	case StorePostgres:
		if cfg.DatabaseURL == "" {
			return Config{}, errors.New("database URL required for postgres store (use -d or DATABASE_URL env)")
		}
	default:
		return Config{}, fmt.Errorf("unknown store %q", cfg.Store)
	}

	cfg.Location = time.Local
	if tzName != "" {
		loc, err := time.LoadLocation(tzName)
		if err != nil {
			return Config{}, fmt.Errorf("invalid time zone: %w", err)
		}
		cfg.Location = loc
	}

	wd, err := parseWeekday(weekStart)
	if err != nil {
		return Config{}, err
	}
	cfg.WeekStart = wd

	if err := cfg.LogLevel.UnmarshalText([]byte(logLevel)); err != nil {
		return Config{}, fmt.Errorf("invalid log level: %w", err)
	}
	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		return Config{}, fmt.Errorf("invalid log format %q", cfg.LogFormat)
	}

	switch strings.ToLower(forwardAuth) {
	case "", "0", "false", "no":
	case "1", "true", "yes":
		cfg.ForwardAuth = true
	default:
		return Config{}, fmt.Errorf("invalid FORWARD_AUTH %q", forwardAuth)
	}

	if cfg.Passcode != "" && cfg.PasscodeHash != "" {
		return Config{}, errors.New("set only one of PASSCODE and PASSCODE_HASH")
	}
	if cfg.OIDC.Enabled() && (cfg.OIDC.ClientID == "" || cfg.OIDC.RedirectURL == "") {
		return Config{}, errors.New("OIDC_CLIENT_ID and OIDC_REDIRECT_URL are required with OIDC_ISSUER")
	}
	if (cfg.ForwardAuth || cfg.OIDC.Enabled()) && cfg.Owner == "" {
		return Config{}, errors.New("OWNER required with forward auth or OIDC")
	}

	return cfg, nil
}

// Logger builds the process logger described by cfg.
func (c Config) Logger() *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.LogLevel}
	if c.LogFormat == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}

func parseWeekday(s string) (time.Weekday, error) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(s, d.String()) || strings.EqualFold(s, d.String()[:3]) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("invalid week start %q", s)
}
