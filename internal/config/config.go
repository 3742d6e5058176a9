// Package config builds the application configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Keys understood by Load. Each is bound to the upper-cased environment variable of the same name,
// except KeyToken which reads only GH_TOKEN and then GITHUB_TOKEN.
const (
	KeyToken        = "token"
	KeyOrg          = "org"
	KeyWindowDays   = "window_days"
	KeyTrackMapPath = "track_map_path"
	KeyOutputPath   = "output_path"
	KeySiteDir      = "site_dir"
	KeyPort         = "port"
	KeyLogLevel     = "log_level"
)

const (
	DefaultOrg          = "Avalanche-Team1-Africa"
	DefaultWindowDays   = 30
	DefaultTrackMapPath = "track_map.yaml"
	DefaultOutputPath   = "public/stats.json"
	DefaultSiteDir      = "site"
	DefaultPort         = 8080
	DefaultLogLevel     = "info"
)

const maxPort = 65535

// Config is the process configuration, constructed once at start and passed to every component.
type Config struct {
	Token        string
	Org          string
	WindowDays   int
	TrackMapPath string
	OutputPath   string
	SiteDir      string
	Port         int
	LogLevel     string
}

// NewViper returns a viper instance bound to the environment with all defaults set.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyOrg, DefaultOrg)
	v.SetDefault(KeyWindowDays, DefaultWindowDays)
	v.SetDefault(KeyTrackMapPath, DefaultTrackMapPath)
	v.SetDefault(KeyOutputPath, DefaultOutputPath)
	v.SetDefault(KeySiteDir, DefaultSiteDir)
	v.SetDefault(KeyPort, DefaultPort)
	v.SetDefault(KeyLogLevel, DefaultLogLevel)

	// Only the bound variables are read; a plain TOKEN variable is ignored.
	// BindEnv only fails when called without a key.
	_ = v.BindEnv(KeyToken, "GH_TOKEN", "GITHUB_TOKEN")
	for _, key := range []string{KeyOrg, KeyWindowDays, KeyTrackMapPath, KeyOutputPath, KeySiteDir, KeyPort, KeyLogLevel} {
		_ = v.BindEnv(key)
	}
	return v
}

// Load reads the configuration from v. It does not require a token; see Validate.
func Load(v *viper.Viper) (Config, error) {
	windowDays, err := positiveInt(v, KeyWindowDays)
	if err != nil {
		return Config{}, err
	}
	port, err := positiveInt(v, KeyPort)
	if err != nil {
		return Config{}, err
	}
	if port > maxPort {
		return Config{}, fmt.Errorf("PORT must be between 1 and %d, got %d", maxPort, port)
	}

	return Config{
		Token:        strings.TrimSpace(v.GetString(KeyToken)),
		Org:          v.GetString(KeyOrg),
		WindowDays:   windowDays,
		TrackMapPath: v.GetString(KeyTrackMapPath),
		OutputPath:   v.GetString(KeyOutputPath),
		SiteDir:      v.GetString(KeySiteDir),
		Port:         port,
		LogLevel:     v.GetString(KeyLogLevel),
	}, nil
}

// Validate checks the settings needed to talk to the GitHub API.
func (c Config) Validate() error {
	if c.Token == "" {
		return errors.New("missing GH_TOKEN/GITHUB_TOKEN in env")
	}
	if c.Org == "" {
		return errors.New("ORG must not be empty")
	}
	return nil
}

// Addr is the listen address for the static server.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func positiveInt(v *viper.Viper, key string) (int, error) {
	raw := strings.TrimSpace(v.GetString(key))
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", strings.ToUpper(key), raw)
	}
	return n, nil
}
