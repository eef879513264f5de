// Package config loads the command-line tool's TOML settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap/zapcore"

	"github.com/odvcencio/revstore/pkg/revision"
)

// EnvPath names the environment variable consulted for the config path.
const EnvPath = "REVSTORE_CONFIG"

// DefaultPath is used when neither a flag nor EnvPath names a file.
const DefaultPath = ".revstore.toml"

const (
	BackendFS     = "fs"
	BackendBadger = "badger"
)

type Config struct {
	Log        Log        `toml:"log"`
	Repository Repository `toml:"repository"`
	Storage    Storage    `toml:"storage"`
}

type Log struct {
	Level string `toml:"level"`
}

type Repository struct {
	// Dir is the repository directory name, ".git" by default.
	Dir string `toml:"dir"`
	// Ambiguity picks the value an ambiguous branch/tag name resolves to:
	// "tag" or "branch".
	Ambiguity string `toml:"ambiguity"`
}

type Storage struct {
	Backend string `toml:"backend"`
	// Path is the badger directory. Unused by the fs backend.
	Path string `toml:"path"`
}

// Default returns the settings used when no file is present.
func Default() *Config {
	return &Config{
		Log:        Log{Level: "info"},
		Repository: Repository{Dir: ".git", Ambiguity: "tag"},
		Storage:    Storage{Backend: BackendFS},
	}
}

// Load reads the TOML file at path on top of Default. A missing file is not
// an error. Unknown keys are.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return nil, fmt.Errorf("read config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return cfg, nil
}

// Path returns the config file to load: flag if set, else $REVSTORE_CONFIG,
// else DefaultPath.
func Path(flag string) string {
	if flag != "" {
		return flag
	}
	if env := os.Getenv(EnvPath); env != "" {
		return env
	}
	return DefaultPath
}

// Validate checks every field that has a closed set of values.
func (c *Config) Validate() error {
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if c.Repository.Dir == "" || strings.ContainsAny(c.Repository.Dir, `/\`) || c.Repository.Dir == "." || c.Repository.Dir == ".." {
		return fmt.Errorf("repository.dir: invalid directory name %q", c.Repository.Dir)
	}
	if _, err := c.Precedence(); err != nil {
		return fmt.Errorf("repository.ambiguity: %w", err)
	}
	switch c.Storage.Backend {
	case BackendFS:
	case BackendBadger:
		if c.Storage.Path == "" {
			return fmt.Errorf("storage.path is required for the %s backend", BackendBadger)
		}
	default:
		return fmt.Errorf("storage.backend: unknown backend %q (want %q or %q)", c.Storage.Backend, BackendFS, BackendBadger)
	}
	return nil
}

// Precedence parses Repository.Ambiguity.
func (c *Config) Precedence() (revision.Precedence, error) {
	return revision.ParsePrecedence(c.Repository.Ambiguity)
}
