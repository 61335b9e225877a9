// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/bethropolis/slate/internal/logger"
)

// Config holds the application's combined configuration.
type Config struct {
	Logger  logger.Config `toml:"logger"`  // [logger] table
	Surface SurfaceConfig `toml:"surface"` // [surface] table
}

// SurfaceConfig holds annotation-surface settings.
type SurfaceConfig struct {
	LongPressMs     int     `toml:"long_press_ms"`    // long-press classification timeout
	DoubleTapMs     int     `toml:"double_tap_ms"`    // double-tap window
	HandleTolerance float64 `toml:"handle_tolerance"` // touch slop around handles, surface units
	HandleOffset    float64 `toml:"handle_offset"`    // handle drop below the text baseline
	MaxHistory      int     `toml:"max_history"`      // undo+redo capacity per field
	SystemClipboard bool    `toml:"system_clipboard"`
	SaveDebounceMs  int     `toml:"save_debounce_ms"` // host autosave quiesce window
}

var (
	loadedConfig *Config
	loadOnce     sync.Once
	loadErr      error
)

// NewDefaultConfig creates a Config struct with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Logger: logger.Config{
			LogLevel:    "info",
			LogFilePath: "",
		},
		Surface: SurfaceConfig{
			LongPressMs:     int(DefaultLongPressTimeout.Milliseconds()),
			DoubleTapMs:     int(DefaultDoubleTapTimeout.Milliseconds()),
			HandleTolerance: DefaultHandleTolerance,
			HandleOffset:    DefaultHandleOffset,
			MaxHistory:      DefaultMaxHistory,
			SystemClipboard: SystemClipboard,
			SaveDebounceMs:  int(DefaultSaveDebounce.Milliseconds()),
		},
	}
}

// loadFromFile attempts to load configuration from a TOML file.
// A missing file is not an error; the defaults simply stand.
func loadFromFile(filePath string, verbose bool) (*Config, error) {
	cfg := &Config{}
	_, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		if verbose {
			logger.Debugf("Config file not found: %s", filePath)
		}
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("error checking config file '%s': %w", filePath, err)
	}

	metadata, err := toml.DecodeFile(filePath, cfg)
	if err != nil {
		return cfg, fmt.Errorf("failed to parse config file '%s': %w", filePath, err)
	}
	if len(metadata.Undecoded()) > 0 && verbose {
		logger.Warnf("Config file '%s': Unrecognized keys: %v", filePath, metadata.Undecoded())
	}
	return cfg, nil
}

// validate checks config values and resets invalid ones to defaults.
func (c *Config) validate() {
	defaults := NewDefaultConfig()

	if c.Surface.LongPressMs <= 0 {
		c.Surface.LongPressMs = defaults.Surface.LongPressMs
	}
	if c.Surface.DoubleTapMs <= 0 {
		c.Surface.DoubleTapMs = defaults.Surface.DoubleTapMs
	}
	if c.Surface.HandleTolerance <= 0 {
		c.Surface.HandleTolerance = defaults.Surface.HandleTolerance
	}
	if c.Surface.HandleOffset < 0 {
		c.Surface.HandleOffset = defaults.Surface.HandleOffset
	}
	if c.Surface.MaxHistory <= 0 {
		c.Surface.MaxHistory = defaults.Surface.MaxHistory
	}
	if c.Surface.SaveDebounceMs < 0 {
		c.Surface.SaveDebounceMs = defaults.Surface.SaveDebounceMs
	}
	if c.Logger.LogLevel == "" {
		c.Logger.LogLevel = defaults.Logger.LogLevel
	}
}

// LoadConfig orchestrates loading defaults, the config file, and validation.
// It should be called only once, typically from main.
func LoadConfig(configFilePath string) (*Config, error) {
	loadOnce.Do(func() {
		// Logger isn't initialized yet during initial load; stay quiet.
		verbose := false

		cfg := NewDefaultConfig()

		effectivePath := configFilePath
		if effectivePath == "" {
			configDir, err := os.UserConfigDir()
			if err == nil {
				effectivePath = filepath.Join(configDir, ConfigDirName, DefaultConfigFileName)
			}
		}

		if effectivePath != "" {
			fileCfg, err := loadFromFile(effectivePath, verbose)
			if err != nil {
				loadErr = err
			} else if fileCfg != nil {
				if fileCfg.Logger.LogLevel != "" {
					cfg.Logger = fileCfg.Logger
				}
				if fileCfg.Surface.LongPressMs > 0 {
					cfg.Surface.LongPressMs = fileCfg.Surface.LongPressMs
				}
				if fileCfg.Surface.DoubleTapMs > 0 {
					cfg.Surface.DoubleTapMs = fileCfg.Surface.DoubleTapMs
				}
				if fileCfg.Surface.HandleTolerance > 0 {
					cfg.Surface.HandleTolerance = fileCfg.Surface.HandleTolerance
				}
				if fileCfg.Surface.HandleOffset > 0 {
					cfg.Surface.HandleOffset = fileCfg.Surface.HandleOffset
				}
				if fileCfg.Surface.MaxHistory > 0 {
					cfg.Surface.MaxHistory = fileCfg.Surface.MaxHistory
				}
				if fileCfg.Surface.SaveDebounceMs > 0 {
					cfg.Surface.SaveDebounceMs = fileCfg.Surface.SaveDebounceMs
				}
				cfg.Surface.SystemClipboard = fileCfg.Surface.SystemClipboard
			}
		}

		cfg.validate()
		loadedConfig = cfg
	})

	return loadedConfig, loadErr
}

// Get returns the loaded application configuration, falling back to defaults
// when LoadConfig was never called (library use).
func Get() *Config {
	if loadedConfig == nil {
		return NewDefaultConfig()
	}
	return loadedConfig
}
