package config

import (
	"log/slog"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/inamate/vecdraw/internal/control"
)

type Config struct {
	Port               int           `envconfig:"PORT" default:"8080"`
	LogLevel           string        `envconfig:"LOG_LEVEL" default:"info"`
	AllowedOrigins     string        `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:5173,http://localhost:3000"`
	ControlRadius      float64       `envconfig:"CONTROL_RADIUS" default:"6"`
	RotateHandleOffset float64       `envconfig:"ROTATE_HANDLE_OFFSET" default:"24"`
	MaxSessions        int           `envconfig:"MAX_SESSIONS" default:"64"`
	SessionIdleTimeout time.Duration `envconfig:"SESSION_IDLE_TIMEOUT" default:"30m"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Control returns the controller settings.
func (c *Config) Control() control.Config {
	return control.Config{
		ControlRadius:      c.ControlRadius,
		RotateHandleOffset: c.RotateHandleOffset,
	}
}

// Origins splits AllowedOrigins on commas, dropping blanks.
func (c *Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// Level maps LogLevel to a slog level. Unknown names fall back to info.
func (c *Config) Level() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
