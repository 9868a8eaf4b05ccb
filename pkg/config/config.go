/*
Package config manages TOML config for storefind.
*/
package config

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"storefind/internal/utils"
)

// Config holds the entire config structure
type Config struct {
	Server ServerConfig `toml:"server"`
	View   ViewConfig   `toml:"view"`
	Data   DataConfig   `toml:"data"`
	Search SearchConfig `toml:"search"`
}

// ServerConfig has IPC server related options.
type ServerConfig struct {
	MaxLimit     int  `toml:"max_limit"`
	MinQuery     int  `toml:"min_query"`
	MaxQuery     int  `toml:"max_query"`
	EnableFilter bool `toml:"enable_filter"`
}

// ViewConfig holds pagination and ranking options.
type ViewConfig struct {
	PageSize      int `toml:"page_size"`
	PopularCities int `toml:"popular_cities"`
}

// DataConfig points at the store dataset. URL wins over Path when set.
type DataConfig struct {
	Path      string `toml:"path"`
	URL       string `toml:"url"`
	TimeoutMs int    `toml:"timeout_ms"`
}

// SearchConfig holds the debounce behavior for search-as-you-type input.
type SearchConfig struct {
	DebounceMs int  `toml:"debounce_ms"`
	Immediate  bool `toml:"immediate"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			MaxLimit:     64,
			MinQuery:     1,
			MaxQuery:     60,
			EnableFilter: true,
		},
		View: ViewConfig{
			PageSize:      10,
			PopularCities: 10,
		},
		Data: DataConfig{
			Path:      "data/stores.json",
			TimeoutMs: 5000,
		},
		Search: SearchConfig{
			DebounceMs: 300,
			Immediate:  true,
		},
	}
}

// GetConfigDir returns the config directory with fallback priority:
// 1. ~/.config/storefind
// 2. Current executable dir
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("Failed to get home directory: %v", err)
		return utils.GetExecutableDir()
	}
	primaryPath := filepath.Join(homeDir, ".config", "storefind")
	if utils.WritableDir(primaryPath) {
		return primaryPath, nil
	}
	return utils.GetExecutableDir()
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// LoadWithPriority loads config with priority:
// 1. Custom path from --config flag
// 2. Default path: ~/.config/storefind/config.toml
// 3. Builtin defaults
// Config trouble is never fatal; the worst case runs on builtin defaults.
func LoadWithPriority(customConfigPath string) (*Config, string, error) {
	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err := Load(customConfigPath)
			if err != nil {
				log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
			} else {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}

	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}

	config, err := initAt(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// initAt loads config from file or creates the default file if missing
func initAt(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := Save(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	return Load(configPath)
}

// Load reads a TOML config file, falling back to a partial parse when the
// file has broken sections.
func Load(configPath string) (*Config, error) {
	config := DefaultConfig()
	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		log.Warnf("TOML parsing error in config file %s: %v. Attempting partial recovery...", configPath, err)
		return tryPartialParse(configPath)
	}
	return config, nil
}

// Save writes the config to a TOML file
func Save(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}

// tryPartialParse salvages whatever valid sections a broken file still has.
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	raw, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if section, ok := utils.ExtractSection(raw, "server"); ok {
		extractServerConfig(section, &config.Server)
	}
	if section, ok := utils.ExtractSection(raw, "view"); ok {
		extractViewConfig(section, &config.View)
	}
	if section, ok := utils.ExtractSection(raw, "data"); ok {
		extractDataConfig(section, &config.Data)
	}
	if section, ok := utils.ExtractSection(raw, "search"); ok {
		extractSearchConfig(section, &config.Search)
	}
	return config, nil
}

func extractServerConfig(data map[string]any, server *ServerConfig) {
	if val, ok := utils.ExtractInt64(data, "max_limit"); ok {
		server.MaxLimit = val
	}
	if val, ok := utils.ExtractInt64(data, "min_query"); ok {
		server.MinQuery = val
	}
	if val, ok := utils.ExtractInt64(data, "max_query"); ok {
		server.MaxQuery = val
	}
	if val, ok := utils.ExtractBool(data, "enable_filter"); ok {
		server.EnableFilter = val
	}
}

func extractViewConfig(data map[string]any, view *ViewConfig) {
	if val, ok := utils.ExtractInt64(data, "page_size"); ok {
		view.PageSize = val
	}
	if val, ok := utils.ExtractInt64(data, "popular_cities"); ok {
		view.PopularCities = val
	}
}

func extractDataConfig(data map[string]any, d *DataConfig) {
	if val, ok := utils.ExtractString(data, "path"); ok {
		d.Path = val
	}
	if val, ok := utils.ExtractString(data, "url"); ok {
		d.URL = val
	}
	if val, ok := utils.ExtractInt64(data, "timeout_ms"); ok {
		d.TimeoutMs = val
	}
}

func extractSearchConfig(data map[string]any, s *SearchConfig) {
	if val, ok := utils.ExtractInt64(data, "debounce_ms"); ok {
		s.DebounceMs = val
	}
	if val, ok := utils.ExtractBool(data, "immediate"); ok {
		s.Immediate = val
	}
}
