package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"spinewalk/internal/eventbus"
)

// Start positions understood by Reader.StartAt besides a section id
const (
	StartAtCover = "cover"
	StartAtFirst = "first"
)

// Config represents the application configuration
type Config struct {
	Version int            `toml:"version"`
	UI      UISettings     `toml:"ui"`
	Reader  ReaderSettings `toml:"reader"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	ShowTOC      bool `toml:"show_toc"`
	ShowMetadata bool `toml:"show_metadata"`
	TOCWidth     int  `toml:"toc_width"`
	WrapWidth    int  `toml:"wrap_width"` // 0 wraps at the pane width
}

// ReaderSettings controls where reading starts and how the pager behaves
type ReaderSettings struct {
	StartAt      string `toml:"start_at"` // "cover", "first" or a section id
	PagerVimKeys bool   `toml:"pager_vim_keys"`
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// DefaultPath returns the config file location under the user config directory
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "spinewalk", "config.toml")
}

// DefaultLogPath returns the log file used when none is given
func DefaultLogPath() string {
	return filepath.Join(os.TempDir(), "spinewalk.log")
}

// Exists reports whether the service's config file is present
func Exists(cs ConfigService) bool {
	_, err := os.Stat(cs.Path())
	return err == nil
}

// NewConfigService creates a config service reading path; an empty path means DefaultPath
func NewConfigService(path string) ConfigService {
	if path == "" {
		path = DefaultPath()
	}
	return &configService{
		filePath: path,
	}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(path string, bus eventbus.EventBus) ConfigService {
	cs := NewConfigService(path).(*configService)
	cs.bus = bus
	return cs
}

// Path returns the file the service loads from and saves to
func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from file, returning defaults if it does not exist
func (cs *configService) Load() (*Config, error) {
	cfg, err := cs.LoadFromPath(cs.filePath)
	if errors.Is(err, os.ErrNotExist) {
		cfg, err = DefaultConfig(), nil
	}
	if err != nil {
		return nil, err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{Path: cs.filePath})
	}
	return cfg, nil
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	}
	return nil
}

// LoadFromPath loads configuration from a specific path.
// Keys missing from the file keep their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks values the UI cannot work with
func (c *Config) Validate() error {
	if c.UI.TOCWidth < 0 {
		return fmt.Errorf("ui.toc_width must not be negative, got %d", c.UI.TOCWidth)
	}
	if c.UI.WrapWidth < 0 {
		return fmt.Errorf("ui.wrap_width must not be negative, got %d", c.UI.WrapWidth)
	}
	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		UI: UISettings{
			ShowTOC:      true,
			ShowMetadata: false,
			TOCWidth:     28,
		},
		Reader: ReaderSettings{
			StartAt:      StartAtCover,
			PagerVimKeys: true,
		},
	}
}
