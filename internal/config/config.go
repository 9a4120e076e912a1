// Package config handles configuration loading for folio.
// It supports YAML config files with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	Site    SiteConfig    `json:"site"    mapstructure:"site"    yaml:"site"`
	Build   BuildConfig   `json:"build"   mapstructure:"build"   yaml:"build"`
	Charts  ChartsConfig  `json:"charts"  mapstructure:"charts"  yaml:"charts"`
	Server  ServerConfig  `json:"server"  mapstructure:"server"  yaml:"server"`
	Logging LoggingConfig `json:"logging" mapstructure:"logging" yaml:"logging"`
}

// SiteConfig locates the inputs of a site.
type SiteConfig struct {
	Profile string `json:"profile" mapstructure:"profile" yaml:"profile"` // profile.json or profile.yaml
	Views   string `json:"views"   mapstructure:"views"   yaml:"views"`   // holds index.html and optionally static.html
	Public  string `json:"public"  mapstructure:"public"  yaml:"public"`  // css/, js/, images/
}

// BuildConfig controls the static build.
type BuildConfig struct {
	Dir        string   `json:"dir"         mapstructure:"dir"         yaml:"dir"`
	RootHTML   string   `json:"root_html"   mapstructure:"root_html"   yaml:"root_html"`   // root-hosted page pointing into Dir
	SyncPublic bool     `json:"sync_public" mapstructure:"sync_public" yaml:"sync_public"` // also copy the page to <public>/index.html
	MinifyCSS  *bool    `json:"minify_css"  mapstructure:"minify_css"  yaml:"minify_css"`  // nil: follow the build mode
	Exclude    []string `json:"exclude"     mapstructure:"exclude"     yaml:"exclude"`     // doublestar patterns, relative to public/images
}

// ChartsConfig tweaks chart rendering.
type ChartsConfig struct {
	DonutCaption []string `json:"donut_caption" mapstructure:"donut_caption" yaml:"donut_caption"`
}

// ServerConfig holds the dynamic server settings.
type ServerConfig struct {
	Host        string   `json:"host"         mapstructure:"host"         yaml:"host"`
	Port        int      `json:"port"         mapstructure:"port"         yaml:"port"`
	CORSOrigins []string `json:"cors_origins" mapstructure:"cors_origins" yaml:"cors_origins"`
	LiveReload  bool     `json:"live_reload"  mapstructure:"live_reload"  yaml:"live_reload"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `json:"level"  mapstructure:"level"  yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `json:"format" mapstructure:"format" yaml:"format"` // "text" or "json"
}

// Addr returns host:port for the HTTP listener.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Load reads the configuration from file and environment variables.
// Config file search order:
//  1. ./folio.yaml
//  2. ./config/folio.yaml
//  3. ~/.folio/folio.yaml
//
// Environment variables override config file values.
// Format: FOLIO_<SECTION>_<KEY>, e.g., FOLIO_BUILD_DIR. PORT overrides server.port.
func Load() (*Config, error) {
	v := newViper()

	v.SetConfigName("folio")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath(filepath.Join(homeDir(), ".folio"))

	// Read config file (not required to exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	return decode(v)
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	return decode(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("FOLIO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	overrideFromEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// setDefaults sets sensible defaults for all config values.
func setDefaults(v *viper.Viper) {
	// Site inputs
	v.SetDefault("site.profile", "profile.json")
	v.SetDefault("site.views", "views")
	v.SetDefault("site.public", "public")

	// Build defaults
	v.SetDefault("build.dir", "build")
	v.SetDefault("build.root_html", "index.html")
	v.SetDefault("build.sync_public", false)
	v.SetDefault("build.exclude", []string{"**/.DS_Store", "**/Thumbs.db"})

	// Charts
	v.SetDefault("charts.donut_caption", []string{"Daily", "Activities"})

	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("server.live_reload", false)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// overrideFromEnv applies the bare PORT variable honoured by most hosting platforms.
func overrideFromEnv(cfg *Config) {
	if port := os.Getenv("PORT"); port != "" {
		var p int
		if _, err := fmt.Sscanf(port, "%d", &p); err == nil && p > 0 {
			cfg.Server.Port = p
		}
	}
}

// Validate rejects settings the build or the server cannot work with.
func (c *Config) Validate() error {
	if c.Site.Profile == "" {
		return fmt.Errorf("site.profile must not be empty")
	}
	if c.Build.Dir == "" || filepath.Clean(c.Build.Dir) == "." {
		return fmt.Errorf("build.dir must name a subdirectory, got %q", c.Build.Dir)
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format must be text or json, got %q", c.Logging.Format)
	}
	return nil
}

// homeDir returns the user's home directory.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
