package proposal

import (
	"errors"
	"os"
	"strings"
	"sync"
)

// Config contains all configuration options for the proposal engine
type Config struct {
	// TemplateDir is the base directory template file names are resolved against
	TemplateDir string
	// OutputDir is where generated proposals are written. Empty means a
	// private temporary directory per proposal.
	OutputDir string
	// LogLevel controls the verbosity of logging (debug, info, warn, error, off)
	LogLevel string
	// DefaultCurrency is the ISO code used when a form leaves the currency empty
	DefaultCurrency string
	// CatalogPath optionally points to a YAML variant catalog replacing the built-in one
	CatalogPath string
}

var (
	globalConfig      *Config
	globalConfigMutex sync.RWMutex
	configOnce        sync.Once
)

func initGlobalConfig() {
	configOnce.Do(func() {
		globalConfigMutex.Lock()
		if globalConfig == nil {
			globalConfig = ConfigFromEnvironment()
		}
		globalConfigMutex.Unlock()
	})
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		TemplateDir:     ".",
		OutputDir:       "",
		LogLevel:        "info",
		DefaultCurrency: "USD",
	}
}

// ConfigFromEnvironment creates a configuration from environment variables
func ConfigFromEnvironment() *Config {
	config := DefaultConfig()

	// PROPOSAL_TEMPLATE_DIR
	if val := os.Getenv("PROPOSAL_TEMPLATE_DIR"); val != "" {
		config.TemplateDir = val
	}

	// PROPOSAL_OUTPUT_DIR
	if val := os.Getenv("PROPOSAL_OUTPUT_DIR"); val != "" {
		config.OutputDir = val
	}

	// PROPOSAL_LOG_LEVEL
	if val := os.Getenv("PROPOSAL_LOG_LEVEL"); val != "" {
		config.LogLevel = strings.ToLower(val)
	}

	// PROPOSAL_CURRENCY
	if val := os.Getenv("PROPOSAL_CURRENCY"); val != "" {
		config.DefaultCurrency = strings.ToUpper(val)
	}

	// PROPOSAL_CATALOG
	if val := os.Getenv("PROPOSAL_CATALOG"); val != "" {
		config.CatalogPath = val
	}

	return config
}

// NewConfigWithDefaults creates a new configuration with defaults applied to unset fields.
// The log level is lower-cased and the currency code upper-cased.
func NewConfigWithDefaults(overrides *Config) *Config {
	defaults := DefaultConfig()

	if overrides == nil {
		return defaults
	}

	config := *overrides
	config.LogLevel = strings.ToLower(strings.TrimSpace(config.LogLevel))
	config.DefaultCurrency = strings.ToUpper(strings.TrimSpace(config.DefaultCurrency))

	if config.TemplateDir == "" {
		config.TemplateDir = defaults.TemplateDir
	}

	if config.LogLevel == "" {
		config.LogLevel = defaults.LogLevel
	}

	if config.DefaultCurrency == "" {
		config.DefaultCurrency = defaults.DefaultCurrency
	}

	return &config
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
		"off":   true,
	}

	if !validLogLevels[c.LogLevel] {
		return errors.New("invalid log level: " + c.LogLevel)
	}

	if c.TemplateDir == "" {
		return errors.New("template directory cannot be empty")
	}

	if _, err := LookupCurrency(c.DefaultCurrency); err != nil {
		return err
	}

	return nil
}

// GetGlobalConfig returns the global configuration
func GetGlobalConfig() *Config {
	initGlobalConfig()

	globalConfigMutex.RLock()
	defer globalConfigMutex.RUnlock()

	if globalConfig == nil {
		return DefaultConfig()
	}

	// Return a copy to prevent modification
	configCopy := *globalConfig
	return &configCopy
}

// SetGlobalConfig sets the global configuration
func SetGlobalConfig(config *Config) {
	initGlobalConfig()

	globalConfigMutex.Lock()
	globalConfig = config
	globalConfigMutex.Unlock()

	// Update logger based on new config (outside the lock to avoid deadlock)
	UpdateLoggerFromConfig()
}
