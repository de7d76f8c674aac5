package config

import (
	"log/slog"
	"time"

	"github.com/gyaneshwarpardhi/opsdash/internal/hierarchy"
	"github.com/gyaneshwarpardhi/opsdash/internal/layout"
)

// EnvPrefix namespaces every environment override.
const EnvPrefix = "OPSDASH_"

// Config is the top-level YAML structure.
type Config struct {
	Version      string     `yaml:"version" env:"VERSION"`
	LogLevel     string     `yaml:"log_level" env:"LOG_LEVEL"`
	FixturesPath string     `yaml:"fixtures_path" env:"FIXTURES_PATH"`
	Server       ServerConf `yaml:"server" envPrefix:"SERVER_"`
	Engine       EngineConf `yaml:"engine" envPrefix:"ENGINE_"`
	Layout       LayoutConf `yaml:"layout" envPrefix:"LAYOUT_"`
}

// ServerConf holds the HTTP listener settings.
type ServerConf struct {
	Addr           string   `yaml:"addr" env:"ADDR"`
	ReadTimeoutMs  int      `yaml:"read_timeout_ms" env:"READ_TIMEOUT_MS"`
	WriteTimeoutMs int      `yaml:"write_timeout_ms" env:"WRITE_TIMEOUT_MS"`
	CORSOrigins    []string `yaml:"cors_origins" env:"CORS_ORIGINS" envSeparator:","`
}

// ReadTimeout returns ReadTimeoutMs as a duration.
func (s ServerConf) ReadTimeout() time.Duration {
	return time.Duration(s.ReadTimeoutMs) * time.Millisecond
}

// WriteTimeout returns WriteTimeoutMs as a duration.
func (s ServerConf) WriteTimeout() time.Duration {
	return time.Duration(s.WriteTimeoutMs) * time.Millisecond
}

// EngineConf tunes the intent dispatch queue.
type EngineConf struct {
	QueueDepth      int `yaml:"queue_depth" env:"QUEUE_DEPTH"`
	IntentTimeoutMs int `yaml:"intent_timeout_ms" env:"INTENT_TIMEOUT_MS"`
}

// LayoutConf overrides the per-view layout profiles.
type LayoutConf struct {
	OnDanglingParent hierarchy.DanglingPolicy  `yaml:"on_dangling_parent" env:"ON_DANGLING_PARENT"`
	Profiles         map[string]layout.Profile `yaml:"profiles"`
}

// Settings converts the layout section into engine settings.
func (l LayoutConf) Settings() layout.Settings {
	return layout.Settings{Profiles: l.Profiles, OnDanglingParent: l.OnDanglingParent}
}

// Level parses LogLevel, defaulting to info.
func (c *Config) Level() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return l
}
