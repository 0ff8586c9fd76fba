// Package config loads noticer's TOML configuration file.
//
// # File Format
//
//	variant = "release"
//	exclusions = ['com\.example:.*']
//	override_dir = "config/noticer"
//	fetch_remote_license = true
//	repositories = ["~/.m2/repository", "~/.gradle/caches/modules-2/files-2.1"]
//	remote_repositories = ["https://repo1.maven.org/maven2", "https://maven.google.com"]
//
//	[cache]
//	backend = "file"   # file, redis or none
//	ttl = "168h"
//
// Every key is optional; [Default] supplies the rest. The GitHub token is
// normally taken from the GITHUB_TOKEN environment variable rather than the
// file. Unknown keys are rejected so typos do not go unnoticed.
package config

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/noticer/pkg/errors"
	"github.com/matzehuels/noticer/pkg/integrations/maven"
)

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// TokenEnv is the environment variable consulted for the GitHub token.
const TokenEnv = "GITHUB_TOKEN"

// Config is the full noticer configuration.
type Config struct {
	Variant            string   `toml:"variant"`
	Exclusions         []string `toml:"exclusions"`
	OverrideDir        string   `toml:"override_dir"`
	FetchRemoteLicense bool     `toml:"fetch_remote_license"`
	GitHubToken        string   `toml:"github_token,omitempty"`
	Repositories       []string `toml:"repositories"`
	RemoteRepositories []string `toml:"remote_repositories"`
	Cache              Cache    `toml:"cache"`
}

// Cache configures where HTTP responses and downloaded descriptors are kept.
type Cache struct {
	Backend       string   `toml:"backend"`
	TTL           Duration `toml:"ttl"`
	Dir           string   `toml:"dir,omitempty"` // default: user cache directory
	RedisAddr     string   `toml:"redis_addr,omitempty"`
	RedisPassword string   `toml:"redis_password,omitempty"`
	RedisDB       int      `toml:"redis_db,omitempty"`
}

// Duration is a time.Duration written as a Go duration string ("24h").
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText formats the duration.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Repositories: []string{
			"~/.m2/repository",
			"~/.gradle/caches/modules-2/files-2.1",
		},
		RemoteRepositories: []string{maven.CentralURL},
		Cache: Cache{
			Backend: BackendFile,
			TTL:     Duration{7 * 24 * time.Hour},
		},
	}
}

// Load reads path on top of [Default] and applies the environment.
// An empty path returns the defaults with the environment applied.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		md, err := toml.DecodeFile(path, &cfg)
		if err != nil {
			if os.IsNotExist(err) {
				return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
			}
			return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return Config{}, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
		}
		cfg.resolveRelative(filepath.Dir(path))
	}
	cfg.ApplyEnv()
	return cfg, cfg.Validate()
}

// ApplyEnv fills the GitHub token from the environment when unset.
func (c *Config) ApplyEnv() {
	if c.GitHubToken == "" {
		c.GitHubToken = os.Getenv(TokenEnv)
	}
}

// resolveRelative makes the override directory relative to the config file.
func (c *Config) resolveRelative(base string) {
	if c.OverrideDir != "" && !filepath.IsAbs(c.OverrideDir) && !strings.HasPrefix(c.OverrideDir, "~") {
		c.OverrideDir = filepath.Join(base, c.OverrideDir)
	}
}

// Validate checks value ranges and combinations.
func (c Config) Validate() error {
	switch c.Cache.Backend {
	case BackendFile, BackendNone:
	case BackendRedis:
		if c.Cache.RedisAddr == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "cache backend redis needs redis_addr")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q (want file, redis or none)", c.Cache.Backend)
	}
	if c.Cache.TTL.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache ttl must not be negative")
	}
	for _, r := range c.RemoteRepositories {
		if err := errors.ValidateURL(r); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "remote repository %q", r)
		}
	}
	return nil
}

// LocalRepositories returns Repositories with "~" expanded.
func (c Config) LocalRepositories() []string {
	out := make([]string, len(c.Repositories))
	for i, r := range c.Repositories {
		out[i] = ExpandHome(r)
	}
	return out
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// Write encodes c as TOML. The GitHub token is never written.
func (c Config) Write(w io.Writer) error {
	c.GitHubToken = ""
	return toml.NewEncoder(w).Encode(c)
}
