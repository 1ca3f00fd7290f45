/*
Package config manages TOML config for the ListWise suggestion service.
*/
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mkarven/listwise/internal/utils"
	"github.com/mkarven/listwise/pkg/suggest"
)

// Config holds the entire config structure
type Config struct {
	Engine EngineConfig `toml:"engine"`
	Server ServerConfig `toml:"server"`
	CLI    CliConfig    `toml:"cli"`
}

// EngineConfig holds every scoring and caching tunable. The weights are
// relative; the engine normalizes them before blending.
type EngineConfig struct {
	SimilarityWeight    float64 `toml:"similarity_weight"`
	FrequencyWeight     float64 `toml:"frequency_weight"`
	RecencyWeight       float64 `toml:"recency_weight"`
	RecencyHalfLifeDays float64 `toml:"recency_half_life_days"`
	CacheTTLSeconds     int     `toml:"cache_ttl_seconds"`
	CacheMaxEntries     int     `toml:"cache_max_entries"`
	MinPrefix           int     `toml:"min_prefix"`
	MaxLimit            int     `toml:"max_limit"`
}

// ServerConfig has IPC server related options.
type ServerConfig struct {
	DefaultLimit int `toml:"default_limit"`
	MaxLimit     int `toml:"max_limit"`
	MaxPrefix    int `toml:"max_prefix"`
}

// CliConfig holds cli interface options.
type CliConfig struct {
	DefaultLimit int  `toml:"default_limit"`
	ShowScores   bool `toml:"show_scores"`
}

// GetConfigDir returns the config directory with fallback priority:
// 1. ~/.config/
// 2. ~/Library/Application Support/ (macOS)
// 3. Current executable dir
// 4. builtin defaults
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("Failed to get home directory: %v", err)
		execDir, execErr := utils.GetExecutableDir()
		if execErr != nil {
			return "", execErr
		}
		return execDir, nil
	}
	primaryPath := filepath.Join(homeDir, ".config", "listwise")
	if result := utils.CheckDirStatus(primaryPath); result.Writable {
		return primaryPath, nil
	}
	// Not conventional, fallback from ~/.config if not writable
	macOSPath := filepath.Join(homeDir, "Library", "Application Support", "listwise")
	if result := utils.CheckDirStatus(macOSPath); result.Writable {
		return macOSPath, nil
	}
	execDir, err := utils.GetExecutableDir()
	if err != nil {
		log.Errorf("Failed to get executable directory: %v", err)
		return "", err
	}
	return execDir, nil
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from --config flag
// 2. Default path: [UserConfigDir]/listwise/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	var config *Config
	var err error

	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err = LoadConfig(customConfigPath)
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

	config, err = InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Engine: EngineConfig{
			SimilarityWeight:    0.5,
			FrequencyWeight:     0.3,
			RecencyWeight:       0.2,
			RecencyHalfLifeDays: 7,
			CacheTTLSeconds:     300,
			CacheMaxEntries:     100,
			MinPrefix:           2,
			MaxLimit:            50,
		},
		Server: ServerConfig{
			DefaultLimit: 10,
			MaxLimit:     50,
			MaxPrefix:    200,
		},
		CLI: CliConfig{
			DefaultLimit: 10,
			ShowScores:   false,
		},
	}
}

// EngineOptions converts the engine section into suggest.Options. Weight
// validation happens in the engine; this is a plain mapping.
func (c *Config) EngineOptions() suggest.Options {
	return suggest.Options{
		Weights: suggest.Weights{
			Similarity: c.Engine.SimilarityWeight,
			Frequency:  c.Engine.FrequencyWeight,
			Recency:    c.Engine.RecencyWeight,
		},
		RecencyHalfLife: time.Duration(c.Engine.RecencyHalfLifeDays * 24 * float64(time.Hour)),
		CacheTTL:        time.Duration(c.Engine.CacheTTLSeconds) * time.Second,
		CacheMaxEntries: c.Engine.CacheMaxEntries,
		MinPrefixRunes:  c.Engine.MinPrefix,
		MaxLimit:        c.Engine.MaxLimit,
	}
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	config, err := LoadConfig(configPath)
	if err != nil {
		log.Warnf("Failed to load config from %s: %v. Using built-in defaults...", configPath, err)
		return DefaultConfig(), nil
	}
	return config, nil
}

// LoadConfig loads from a TOML file
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	return config, nil
}

// tryPartialParse attempts to parse a TOML file
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if engineSection, ok := utils.ExtractSection(tempConfig, "engine"); ok {
		extractEngineConfig(engineSection, &config.Engine)
	}
	if serverSection, ok := utils.ExtractSection(tempConfig, "server"); ok {
		extractServerConfig(serverSection, &config.Server)
	}
	if cliSection, ok := utils.ExtractSection(tempConfig, "cli"); ok {
		extractCliConfig(cliSection, &config.CLI)
	}
	return config, nil
}

// extractEngineConfig extracts engine configuration from a map
func extractEngineConfig(data map[string]any, engine *EngineConfig) {
	if val, ok := utils.ExtractFloat64(data, "similarity_weight"); ok {
		engine.SimilarityWeight = val
	}
	if val, ok := utils.ExtractFloat64(data, "frequency_weight"); ok {
		engine.FrequencyWeight = val
	}
	if val, ok := utils.ExtractFloat64(data, "recency_weight"); ok {
		engine.RecencyWeight = val
	}
	if val, ok := utils.ExtractFloat64(data, "recency_half_life_days"); ok {
		engine.RecencyHalfLifeDays = val
	}
	if val, ok := utils.ExtractInt64(data, "cache_ttl_seconds"); ok {
		engine.CacheTTLSeconds = val
	}
	if val, ok := utils.ExtractInt64(data, "cache_max_entries"); ok {
		engine.CacheMaxEntries = val
	}
	if val, ok := utils.ExtractInt64(data, "min_prefix"); ok {
		engine.MinPrefix = val
	}
	if val, ok := utils.ExtractInt64(data, "max_limit"); ok {
		engine.MaxLimit = val
	}
}

// extractServerConfig extracts server configuration from a map
func extractServerConfig(data map[string]any, server *ServerConfig) {
	if val, ok := utils.ExtractInt64(data, "default_limit"); ok {
		server.DefaultLimit = val
	}
	if val, ok := utils.ExtractInt64(data, "max_limit"); ok {
		server.MaxLimit = val
	}
	if val, ok := utils.ExtractInt64(data, "max_prefix"); ok {
		server.MaxPrefix = val
	}
}

// extractCliConfig extracts CLI config from a map
func extractCliConfig(data map[string]any, cli *CliConfig) {
	if val, ok := utils.ExtractInt64(data, "default_limit"); ok {
		cli.DefaultLimit = val
	}
	if val, ok := utils.ExtractBool(data, "show_scores"); ok {
		cli.ShowScores = val
	}
}

// RebuildConfigFile force creates a new config.toml at default
func RebuildConfigFile() error {
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		return err
	}
	configDir := filepath.Dir(defaultPath)
	if err := utils.EnsureDir(configDir); err != nil {
		return err
	}
	config := DefaultConfig()
	return utils.SaveTOMLFile(config, defaultPath)
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		if defaultPath, err := GetDefaultConfigPath(); err == nil {
			return defaultPath
		}
		return "unknown"
	}
	return utils.GetAbsolutePath(configPath)
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}

// Update changes the server limits and saves to file
func (c *Config) Update(configPath string, defaultLimit, maxLimit, maxPrefix *int) error {
	server := &c.Server
	if defaultLimit != nil {
		server.DefaultLimit = *defaultLimit
	}
	if maxLimit != nil {
		server.MaxLimit = *maxLimit
	}
	if maxPrefix != nil {
		server.MaxPrefix = *maxPrefix
	}
	return SaveConfig(c, configPath)
}
