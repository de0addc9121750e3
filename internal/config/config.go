// Package config loads and persists client settings from a TOML file under
// the user's home directory (~/.tutorchat/config.toml).
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
)

const (
	dirName  = ".tutorchat"
	fileName = "config.toml"

	// DefaultModel is the completion model used when none is configured.
	DefaultModel = "gemini-1.5-flash-latest"
)

// Config holds the persisted client settings. APIKey is the completion
// endpoint credential; empty means not configured, and an empty key is
// omitted from the file entirely.
type Config struct {
	APIKey string `toml:"api_key,omitempty"`
	Model  string `toml:"model"`
}

func defaultConfig() Config {
	return Config{Model: DefaultModel}
}

// DefaultPath returns the config file location under the user home directory.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: resolve home directory: %w", err)
	}
	return filepath.Join(home, dirName, fileName), nil
}

func load(path string) (Config, error) {
	cfg := defaultConfig()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode %s: %w", path, err)
	}
	if strings.TrimSpace(cfg.Model) == "" {
		cfg.Model = DefaultModel
	}
	return cfg, nil
}

func save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("config: create config directory: %w", err)
	}
	// 0600: the file can hold the API credential.
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("config: open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("config: encode %s: %w", path, err)
	}
	return nil
}

// Store reads the config once at startup and writes it back on every
// change. It is the only component that touches the file.
type Store struct {
	mu   sync.RWMutex
	path string
	cfg  Config
}

// NewStore loads the config at path, falling back to defaults when the file
// does not exist yet.
func NewStore(path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("config: path must not be empty")
	}
	cfg, err := load(path)
	if err != nil {
		return nil, err
	}
	return &Store{path: path, cfg: cfg}, nil
}

// Open creates a Store at the default location.
func Open() (*Store, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return NewStore(path)
}

// Config returns a copy of the current settings.
func (s *Store) Config() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// APIKey returns the current credential, empty when not configured.
func (s *Store) APIKey() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.APIKey
}

// Model returns the configured completion model.
func (s *Store) Model() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.Model
}

// SetAPIKey stores the trimmed credential and persists immediately. Setting
// an empty key erases the persisted value.
func (s *Store) SetAPIKey(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg.APIKey = strings.TrimSpace(key)
	return save(s.path, s.cfg)
}
