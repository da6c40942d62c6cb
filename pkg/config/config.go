/*
Package config manages TOML config for MarkServe services.
*/
package config

import (
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/haneulsoft/markserve/internal/utils"
)

// Config holds the entire config structure
type Config struct {
	Server ServerConfig `toml:"server"`
	Search SearchConfig `toml:"search"`
	Store  StoreConfig  `toml:"store"`
	CLI    CliConfig    `toml:"cli"`
}

// ServerConfig has server related options.
type ServerConfig struct {
	MaxLimit     int `toml:"max_limit"`
	DefaultLimit int `toml:"default_limit"`
	MinQuery     int `toml:"min_query"`
	MaxQuery     int `toml:"max_query"`
}

// SearchConfig tunes the retrieval engine.
type SearchConfig struct {
	Threshold    float64 `toml:"threshold"`
	RerankLimit  int     `toml:"rerank_limit"`
	SuggestLimit int     `toml:"suggest_limit"`
}

// StoreConfig holds database options.
type StoreConfig struct {
	DatabasePath string `toml:"database_path"`
}

// CliConfig holds cli interface options.
type CliConfig struct {
	DefaultLimit  int  `toml:"default_limit"`
	DefaultMinLen int  `toml:"default_min_len"`
	DefaultMaxLen int  `toml:"default_max_len"`
	NoFilter      bool `toml:"default_no_filter"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			MaxLimit:     64,
			DefaultLimit: 10,
			MinQuery:     1,
			MaxQuery:     60,
		},
		Search: SearchConfig{
			Threshold:    0.6,
			RerankLimit:  10,
			SuggestLimit: 5,
		},
		Store: StoreConfig{
			DatabasePath: "marks.db",
		},
		CLI: CliConfig{
			DefaultLimit:  10,
			DefaultMinLen: 1,
			DefaultMaxLen: 60,
			NoFilter:      false,
		},
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

// tryPartialParse salvages the valid sections of a broken TOML file
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if serverSection, ok := utils.ExtractSection(tempConfig, "server"); ok {
		extractServerConfig(serverSection, &config.Server)
	}
	if searchSection, ok := utils.ExtractSection(tempConfig, "search"); ok {
		extractSearchConfig(searchSection, &config.Search)
	}
	if storeSection, ok := utils.ExtractSection(tempConfig, "store"); ok {
		extractStoreConfig(storeSection, &config.Store)
	}
	if cliSection, ok := utils.ExtractSection(tempConfig, "cli"); ok {
		extractCliConfig(cliSection, &config.CLI)
	}
	return config, nil
}

// extractServerConfig extracts server configuration from a map
func extractServerConfig(data map[string]any, server *ServerConfig) {
	if val, ok := utils.ExtractInt64(data, "max_limit"); ok {
		server.MaxLimit = val
	}
	if val, ok := utils.ExtractInt64(data, "default_limit"); ok {
		server.DefaultLimit = val
	}
	if val, ok := utils.ExtractInt64(data, "min_query"); ok {
		server.MinQuery = val
	}
	if val, ok := utils.ExtractInt64(data, "max_query"); ok {
		server.MaxQuery = val
	}
}

// extractSearchConfig extracts search configuration from a map
func extractSearchConfig(data map[string]any, search *SearchConfig) {
	if val, ok := utils.ExtractFloat64(data, "threshold"); ok {
		search.Threshold = val
	}
	if val, ok := utils.ExtractInt64(data, "rerank_limit"); ok {
		search.RerankLimit = val
	}
	if val, ok := utils.ExtractInt64(data, "suggest_limit"); ok {
		search.SuggestLimit = val
	}
}

// extractStoreConfig extracts store configuration from a map
func extractStoreConfig(data map[string]any, store *StoreConfig) {
	if val, ok := utils.ExtractString(data, "database_path"); ok {
		store.DatabasePath = val
	}
}

// extractCliConfig extracts CLI config from a map
func extractCliConfig(data map[string]any, cli *CliConfig) {
	if val, ok := utils.ExtractInt64(data, "default_limit"); ok {
		cli.DefaultLimit = val
	}
	if val, ok := utils.ExtractInt64(data, "default_min_len"); ok {
		cli.DefaultMinLen = val
	}
	if val, ok := utils.ExtractInt64(data, "default_max_len"); ok {
		cli.DefaultMaxLen = val
	}
	if val, ok := utils.ExtractBool(data, "default_no_filter"); ok {
		cli.NoFilter = val
	}
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		return "unknown"
	}
	return utils.GetAbsolutePath(configPath)
}

// Update changes config values and saves to file
func (c *Config) Update(configPath string, maxLimit, minQuery, maxQuery *int, threshold *float64) error {
	if maxLimit != nil {
		c.Server.MaxLimit = *maxLimit
	}
	if minQuery != nil {
		c.Server.MinQuery = *minQuery
	}
	if maxQuery != nil {
		c.Server.MaxQuery = *maxQuery
	}
	if threshold != nil {
		c.Search.Threshold = *threshold
	}
	return SaveConfig(c, configPath)
}

// RebuildConfigFile force creates a new config file at the given path
func RebuildConfigFile(configPath string) error {
	if err := utils.EnsureDir(filepath.Dir(configPath)); err != nil {
		return err
	}
	return SaveConfig(DefaultConfig(), configPath)
}
