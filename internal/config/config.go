package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Environment variables read at startup
const (
	EnvToken       = "AXIOM_TOKEN"
	EnvDataset     = "AXIOM_DATASET"
	EnvURL         = "AXIOM_URL"
	EnvOrgID       = "AXIOM_ORG_ID"
	EnvCompression = "AXIOM_PIPE_COMPRESSION"
	EnvQuiet       = "AXIOM_PIPE_QUIET"
	EnvVerbose     = "AXIOM_PIPE_VERBOSE"
)

// Config holds application configuration
type Config struct {
	// Ingestion target
	Token   string `mapstructure:"token"`
	Dataset string `mapstructure:"dataset"`
	URL     string `mapstructure:"url"`
	OrgID   string `mapstructure:"org_id"`

	// Payload compression: identity, gzip or zstd
	Compression string `mapstructure:"compression"`

	// Output settings
	Quiet   bool `mapstructure:"quiet"`
	Verbose bool `mapstructure:"verbose"`
}

// Meta records where configuration values came from
type Meta struct {
	ConfigFile string
	FileKeys   map[string]bool
	EnvKeys    map[string]bool
}

// keys lists every config key in display order
var keys = []string{"token", "dataset", "url", "org_id", "compression", "quiet", "verbose"}

// Keys returns the config keys in display order
func Keys() []string {
	return append([]string(nil), keys...)
}

// MissingEnvError reports a required setting that is absent
type MissingEnvError struct {
	Name string
}

func (e *MissingEnvError) Error() string {
	return "Missing " + e.Name + " env"
}

// Default returns a Config with default values
func Default() *Config {
	return &Config{
		Compression: "identity",
	}
}

// Load loads configuration from files and environment
// Config file search order (highest precedence first):
// 1. ./.axiom-pipe.yaml or ./.axiom-pipe.yml
// 2. ~/.axiom-pipe.yaml or ~/.axiom-pipe.yml
// 3. $XDG_CONFIG_HOME/axiom-pipe/config.yaml (or ~/.config/axiom-pipe/config.yaml)
// 4. /etc/axiom-pipe/config.yaml
// Environment variables override file values.
func Load() (*Config, error) {
	cfg, _, err := LoadWithMeta()
	return cfg, err
}

// LoadWithMeta is Load plus provenance information
func LoadWithMeta() (*Config, *Meta, error) {
	cfg := Default()
	meta := &Meta{
		FileKeys: map[string]bool{},
		EnvKeys:  map[string]bool{},
	}

	configFile := findConfigFile()
	if configFile != "" {
		v, err := readFile(configFile, cfg)
		if err != nil {
			return nil, nil, err
		}
		meta.ConfigFile = configFile
		for _, k := range keys {
			if v.IsSet(k) {
				meta.FileKeys[k] = true
			}
		}
	}

	applyEnvOverrides(cfg, meta)

	return cfg, meta, nil
}

func readFile(path string, cfg *Config) (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}
	return v, nil
}

// findConfigFile searches for config file in standard locations
func findConfigFile() string {
	names := []string{".axiom-pipe.yaml", ".axiom-pipe.yml", "axiom-pipe.yaml", "axiom-pipe.yml"}

	home, homeErr := os.UserHomeDir()
	configDir, configDirErr := os.UserConfigDir()

	var searchPaths []string

	if cwd, err := os.Getwd(); err == nil {
		searchPaths = append(searchPaths, cwd)
	}
	if homeErr == nil {
		searchPaths = append(searchPaths, home)
	}
	// Only config.yaml is looked up in the dedicated directories
	var dirs []string
	if configDirErr == nil {
		dirs = append(dirs, filepath.Join(configDir, "axiom-pipe"))
	}
	dirs = append(dirs, "/etc/axiom-pipe")

	for _, dir := range searchPaths {
		for _, name := range names {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
	}
	for _, dir := range dirs {
		path := filepath.Join(dir, "config.yaml")
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(cfg *Config, meta *Meta) {
	set := func(key, env string, dst *string) {
		if v := os.Getenv(env); v != "" {
			*dst = v
			meta.EnvKeys[key] = true
		}
	}
	set("token", EnvToken, &cfg.Token)
	set("dataset", EnvDataset, &cfg.Dataset)
	set("url", EnvURL, &cfg.URL)
	set("org_id", EnvOrgID, &cfg.OrgID)
	set("compression", EnvCompression, &cfg.Compression)

	if v := os.Getenv(EnvQuiet); v == "true" || v == "1" {
		cfg.Quiet = true
		meta.EnvKeys["quiet"] = true
	}
	if v := os.Getenv(EnvVerbose); v == "true" || v == "1" {
		cfg.Verbose = true
		meta.EnvKeys["verbose"] = true
	}
}

// LoadEnv returns defaults plus environment overrides, ignoring any config
// file. Used when the config file cannot be read.
func LoadEnv() (*Config, *Meta) {
	cfg := Default()
	meta := &Meta{
		FileKeys: map[string]bool{},
		EnvKeys:  map[string]bool{},
	}
	applyEnvOverrides(cfg, meta)
	return cfg, meta
}

// LoadFromFile loads configuration from a specific file
func LoadFromFile(path string) (*Config, error) {
	cfg := Default()
	if _, err := readFile(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ConfigFile returns the path to the config file that would be loaded
func ConfigFile() string {
	return findConfigFile()
}

// Validate checks the settings required to start forwarding
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Token) == "" {
		return &MissingEnvError{Name: EnvToken}
	}
	if strings.TrimSpace(c.Dataset) == "" {
		return &MissingEnvError{Name: EnvDataset}
	}
	return nil
}

// ComputeSources reports, per key, whether the effective value came from a
// flag, the environment, the config file or the defaults. Flags win over
// everything else.
func ComputeSources(meta *Meta, flagsSet map[string]bool) map[string]string {
	flagFor := map[string]string{
		"dataset":     "dataset",
		"url":         "url",
		"compression": "compression",
		"quiet":       "quiet",
		"verbose":     "verbose",
	}

	sources := make(map[string]string, len(keys))
	for _, k := range keys {
		switch {
		case flagsSet[flagFor[k]] && flagFor[k] != "":
			sources[k] = "flag"
		case meta != nil && meta.EnvKeys[k]:
			sources[k] = "env"
		case meta != nil && meta.FileKeys[k]:
			sources[k] = "file"
		default:
			sources[k] = "default"
		}
	}
	return sources
}

// RedactToken hides all but the token type prefix and last four characters
func RedactToken(token string) string {
	if token == "" {
		return ""
	}
	prefix := ""
	if i := strings.Index(token, "-"); i > 0 && i <= 5 {
		prefix = token[:i+1]
	}
	if len(token)-len(prefix) <= 4 {
		return prefix + "****"
	}
	return prefix + "****" + token[len(token)-4:]
}
