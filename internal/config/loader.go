package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// FileSystem is the slice of the filesystem the loader touches; tests
// inject a fake, production uses the real one.
type FileSystem interface {
	UserHomeDir() (string, error)
	ReadFile(path string) ([]byte, error)
}

type osFS struct{}

func (osFS) UserHomeDir() (string, error)         { return os.UserHomeDir() }
func (osFS) ReadFile(path string) ([]byte, error) { return os.ReadFile(path) }

// Loader resolves the effective configuration: the defaults overlaid
// with the user's dotfile. A key present in the dotfile wins even when
// its value is zero; an absent key keeps its default.
type Loader struct {
	fs FileSystem
}

func NewLoader() *Loader { return &Loader{fs: osFS{}} }

// NewLoaderWithFS injects a filesystem, for tests.
func NewLoaderWithFS(fs FileSystem) *Loader { return &Loader{fs: fs} }

// Load merges ~/.config/gofzf/config.json over the defaults and
// validates the result. A missing dotfile or unresolvable home
// directory yields the defaults; an unreadable or malformed dotfile is
// an error, as is a merge that fails validation.
func (l *Loader) Load() (*Config, error) {
	cfg := DefaultConfig()

	path, ok := l.dotfilePath()
	if !ok {
		return cfg, nil
	}

	data, err := l.fs.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	// Unmarshal straight over the defaults so only the keys the user
	// wrote are replaced.
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (l *Loader) dotfilePath() (string, bool) {
	home, err := l.fs.UserHomeDir()
	if err != nil {
		return "", false
	}
	return filepath.Join(home, ".config", "gofzf", "config.json"), true
}

// Load resolves configuration through the default loader.
func Load() (*Config, error) {
	return NewLoader().Load()
}
