// Package config reads settings from the environment and an optional .env
// file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/Makepad-fr/spinwin/internal/generate/llm"
	"github.com/Makepad-fr/spinwin/internal/wheel"
)

// ErrInvalid wraps every validation failure returned by Load.
var ErrInvalid = errors.New("invalid configuration")

// Defaults for everything that can be left unset.
const (
	DefaultModel        = llm.DefaultModel
	DefaultBaseURL      = llm.DefaultBaseURL
	DefaultLLMTimeout   = 20 * time.Second
	DefaultSpinDuration = wheel.DefaultSpinDuration
	DefaultCacheSize    = 32
	DefaultCacheTTL     = time.Hour
	DefaultTheme        = "classic"
)

type Config struct {
	Model          string        `validate:"required"`
	FallbackModels []string      `validate:"dive,required"`
	BaseURL        string        `validate:"required,url"`
	LLMTimeout     time.Duration `validate:"gt=0"`
	SpinDuration   time.Duration `validate:"gte=100ms,lte=1m"`
	CacheSize      int           `validate:"min=1,max=1024"`
	CacheTTL       time.Duration `validate:"gte=0"`
	LogLevel       slog.Level
	LogFormat      string `validate:"oneof=text json"`
	LogFile        string
	Theme          string `validate:"oneof=classic neon mono"`
	Preset         string
}

// Load reads .env files (./.env when none are named), then the
// environment. Named files must exist; the implicit ./.env may not.
// Variables already set in the environment win over file values.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		_ = godotenv.Load()
	} else if err := godotenv.Load(envFiles...); err != nil {
		return Config{}, fmt.Errorf("load env file: %w", err)
	}

	c := Config{
		Model:          envOr("SPINWIN_MODEL", DefaultModel),
		FallbackModels: parseFallbackModels(os.Getenv("SPINWIN_FALLBACK_MODELS")),
		BaseURL:        envOr("SPINWIN_BASE_URL", DefaultBaseURL),
		LogFormat:      strings.ToLower(envOr("LOG_FORMAT", "text")),
		LogFile:        os.Getenv("LOG_FILE"),
		Theme:          strings.ToLower(envOr("SPINWIN_THEME", DefaultTheme)),
		Preset:         os.Getenv("SPINWIN_PRESET"),
	}

	var err error
	if c.LLMTimeout, err = durationEnv("LLM_TIMEOUT", DefaultLLMTimeout); err != nil {
		return Config{}, err
	}
	if c.SpinDuration, err = durationEnv("SPIN_DURATION", DefaultSpinDuration); err != nil {
		return Config{}, err
	}
	if c.CacheTTL, err = durationEnv("SPINWIN_CACHE_TTL", DefaultCacheTTL); err != nil {
		return Config{}, err
	}
	if v := os.Getenv("SPINWIN_CACHE_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid SPINWIN_CACHE_SIZE %q: %w", v, err)
		}
		c.CacheSize = n
	} else {
		c.CacheSize = DefaultCacheSize
	}

	if c.LogLevel, err = ParseLogLevel(envOr("LOG_LEVEL", "info")); err != nil {
		return Config{}, err
	}

	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

var validate = validator.New()

// Validate checks field constraints and reports every failing field.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, describe(e))
	}
	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
}

func describe(e validator.FieldError) string {
	field := e.Namespace()
	if i := strings.IndexByte(field, '.'); i >= 0 {
		field = field[i+1:]
	}
	switch e.Tag() {
	case "required":
		return field + " is required"
	case "url":
		return fmt.Sprintf("%s must be a URL, got %q", field, e.Value())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", field, e.Param(), e.Value())
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", field, e.Param())
	case "max", "lte":
		return fmt.Sprintf("%s must be at most %s", field, e.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, e.Param())
	}
	return field + " is invalid"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return d, nil
}

func parseFallbackModels(s string) []string {
	if s == "" {
		return nil
	}
	var models []string
	for _, m := range strings.Split(s, ",") {
		m = strings.TrimSpace(m)
		if m != "" {
			models = append(models, m)
		}
	}
	return models
}

// ParseLogLevel accepts debug, info, warn and error in any case.
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid LOG_LEVEL %q", s)
	}
}
