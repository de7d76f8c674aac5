package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"sort"
	"strings"

	"github.com/gyaneshwarpardhi/opsdash/internal/layout"
)

// Validate checks the config for:
//   - Required fields and a parseable log level
//   - Positive timeouts, queue depth and layout spacings
//   - A known dangling-parent policy and known layout views
//   - Well-formed CORS origins
func Validate(cfg *Config) error {
	if cfg.Version == "" {
		return fmt.Errorf("config: version is required")
	}
	var errs []string

	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		errs = append(errs, fmt.Sprintf("log_level: unknown level %q", cfg.LogLevel))
	}

	if cfg.Server.Addr == "" {
		errs = append(errs, "server.addr is required")
	}
	if cfg.Server.ReadTimeoutMs < 0 {
		errs = append(errs, "server.read_timeout_ms must not be negative")
	}
	if cfg.Server.WriteTimeoutMs < 0 {
		errs = append(errs, "server.write_timeout_ms must not be negative")
	}
	for i, o := range cfg.Server.CORSOrigins {
		if msg := checkOrigin(o); msg != "" {
			errs = append(errs, fmt.Sprintf("server.cors_origins[%d]: %s", i, msg))
		}
	}

	if cfg.Engine.QueueDepth <= 0 {
		errs = append(errs, "engine.queue_depth must be positive")
	}
	if cfg.Engine.IntentTimeoutMs <= 0 {
		errs = append(errs, "engine.intent_timeout_ms must be positive")
	}

	if !cfg.Layout.OnDanglingParent.Valid() {
		errs = append(errs, fmt.Sprintf("layout.on_dangling_parent: unknown policy %q", cfg.Layout.OnDanglingParent))
	}
	views := make([]string, 0, len(cfg.Layout.Profiles))
	for v := range cfg.Layout.Profiles {
		views = append(views, v)
	}
	sort.Strings(views)
	known := layout.DefaultProfiles()
	for _, v := range views {
		if _, ok := known[v]; !ok {
			errs = append(errs, fmt.Sprintf("layout.profiles: unknown view %q", v))
			continue
		}
		errs = append(errs, checkProfile("layout.profiles."+v, cfg.Layout.Profiles[v])...)
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation errors:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

func checkProfile(loc string, p layout.Profile) []string {
	var errs []string
	// Zero fields take the view's built-in value.
	if p.VerticalSpacing < 0 {
		errs = append(errs, loc+".vertical_spacing must not be negative")
	}
	if p.HorizontalSpacing < 0 {
		errs = append(errs, loc+".horizontal_spacing must not be negative")
	}
	return errs
}

func checkOrigin(o string) string {
	if o == "*" {
		return ""
	}
	u, err := url.Parse(o)
	if err != nil {
		return fmt.Sprintf("invalid origin %q: %v", o, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Sprintf("origin %q must be scheme://host[:port]", o)
	}
	if u.Path != "" && u.Path != "/" {
		return fmt.Sprintf("origin %q must not carry a path", o)
	}
	return ""
}
