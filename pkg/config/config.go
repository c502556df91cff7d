package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigPath = "/etc/arxiv-cache/config"
	ConfigFileName    = "arxiv-cache.yml"

	// EnvPrefix prefixes every attribute override in the environment.
	EnvPrefix = "ARXIV_CACHE_"

	DefaultLookupURL     = "https://export.arxiv.org/oai2"
	DefaultLookupTimeout = 30
	DefaultAllowedOrigin = "http://localhost:5173"
)

// ValidLogFormats is the list of accepted log_format values
var ValidLogFormats = []interface{}{"development", "production"}

// ValidLogLevels is the list of accepted log_level values
var ValidLogLevels = []interface{}{"debug", "info", "warn", "error"}

// ArxivCacheConfig holds all arxiv-cache configuration settings
type ArxivCacheConfig struct {
	// AllowedOrigins is the list of browser origins trusted for CORS
	AllowedOrigins []string `yaml:"allowed_origins" json:"allowed_origins"`

	// LookupURL is the OAI-PMH endpoint records are fetched from
	LookupURL string `yaml:"lookup_url" json:"lookup_url"`

	// LookupTimeout bounds one upstream fetch, in seconds
	LookupTimeout int `yaml:"lookup_timeout" json:"lookup_timeout"`

	// LogFormat is "development" (console) or "production" (JSON)
	LogFormat string `yaml:"log_format" json:"log_format"`

	// LogLevel is the minimum level logged
	LogLevel string `yaml:"log_level" json:"log_level"`

	// sources tracks where each value came from
	sources map[string]string

	// configFilePath is the path to the config file
	configFilePath string
}

// Attribute represents a configuration attribute with its value and source
type Attribute struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Source string `json:"source"`
}

// Global singleton config
var (
	globalConfig *ArxivCacheConfig
	configMu     sync.RWMutex
)

// Get returns the global configuration, loading it if necessary
func Get() *ArxivCacheConfig {
	configMu.RLock()
	if globalConfig != nil {
		configMu.RUnlock()
		return globalConfig
	}
	configMu.RUnlock()

	configMu.Lock()
	defer configMu.Unlock()

	if globalConfig == nil {
		cfg, err := Load()
		if err != nil {
			// Return defaults on error
			globalConfig = newDefault()
		} else {
			globalConfig = cfg
		}
	}
	return globalConfig
}

// Reload reloads the configuration from file and environment
func Reload() error {
	cfg, err := Load()
	if err != nil {
		return err
	}

	configMu.Lock()
	globalConfig = cfg
	configMu.Unlock()
	return nil
}

// newDefault returns a config with default values
func newDefault() *ArxivCacheConfig {
	return &ArxivCacheConfig{
		AllowedOrigins: []string{DefaultAllowedOrigin},
		LookupURL:      DefaultLookupURL,
		LookupTimeout:  DefaultLookupTimeout,
		LogFormat:      "development",
		LogLevel:       "info",
		sources:        make(map[string]string),
	}
}

// Load loads configuration from file and environment variables.
// Environment variables take precedence over file values.
func Load() (*ArxivCacheConfig, error) {
	config := newDefault()

	for _, name := range attributeNames() {
		config.sources[name] = "default"
	}

	configPath := os.Getenv(EnvPrefix + "CONFIG_PATH")
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	config.configFilePath = filepath.Join(configPath, ConfigFileName)

	if data, err := os.ReadFile(config.configFilePath); err == nil {
		var fileConfig ArxivCacheConfig
		if err := yaml.Unmarshal(data, &fileConfig); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", config.configFilePath, err)
		}
		config.applyFileConfig(&fileConfig)
	}

	config.applyEnvConfig()

	return config, nil
}

func attributeNames() []string {
	return []string{
		"allowed_origins", "lookup_url", "lookup_timeout", "log_format", "log_level",
	}
}

func (c *ArxivCacheConfig) applyFileConfig(file *ArxivCacheConfig) {
	if len(file.AllowedOrigins) > 0 {
		c.AllowedOrigins = file.AllowedOrigins
		c.sources["allowed_origins"] = "file"
	}
	if file.LookupURL != "" {
		c.LookupURL = file.LookupURL
		c.sources["lookup_url"] = "file"
	}
	if file.LookupTimeout != 0 {
		c.LookupTimeout = file.LookupTimeout
		c.sources["lookup_timeout"] = "file"
	}
	if file.LogFormat != "" {
		c.LogFormat = file.LogFormat
		c.sources["log_format"] = "file"
	}
	if file.LogLevel != "" {
		c.LogLevel = file.LogLevel
		c.sources["log_level"] = "file"
	}
}

func (c *ArxivCacheConfig) applyEnvConfig() {
	if val := os.Getenv(EnvPrefix + "ALLOWED_ORIGINS"); val != "" {
		c.AllowedOrigins = splitAndTrim(val)
		c.sources["allowed_origins"] = "environment"
	}
	if val := os.Getenv(EnvPrefix + "LOOKUP_URL"); val != "" {
		c.LookupURL = val
		c.sources["lookup_url"] = "environment"
	}
	if val := os.Getenv(EnvPrefix + "LOOKUP_TIMEOUT"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.LookupTimeout = i
			c.sources["lookup_timeout"] = "environment"
		}
	}
	if val := os.Getenv(EnvPrefix + "LOG_FORMAT"); val != "" {
		c.LogFormat = strings.ToLower(val)
		c.sources["log_format"] = "environment"
	}
	if val := os.Getenv(EnvPrefix + "LOG_LEVEL"); val != "" {
		c.LogLevel = strings.ToLower(val)
		c.sources["log_level"] = "environment"
	}
}

// ConfigFilePath returns the path to the config file
func (c *ArxivCacheConfig) ConfigFilePath() string {
	return c.configFilePath
}

// Source returns the source of a configuration attribute
func (c *ArxivCacheConfig) Source(name string) string {
	if c.sources == nil {
		return "default"
	}
	if s, ok := c.sources[name]; ok {
		return s
	}
	return "default"
}

// LookupTimeoutDuration returns the lookup timeout as a duration
func (c *ArxivCacheConfig) LookupTimeoutDuration() time.Duration {
	return time.Duration(c.LookupTimeout) * time.Second
}

// IsDebug reports whether SQL and debug logging are on
func (c *ArxivCacheConfig) IsDebug() bool {
	return c.LogLevel == "debug"
}

// Validate validates the configuration
func (c *ArxivCacheConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.AllowedOrigins, validation.Each(validation.By(httpURL))),
		validation.Field(&c.LookupURL, validation.Required, validation.By(httpURL)),
		validation.Field(&c.LookupTimeout, validation.Required, validation.Min(1)),
		validation.Field(&c.LogFormat, validation.In(ValidLogFormats...)),
		validation.Field(&c.LogLevel, validation.In(ValidLogLevels...)),
	)
}

// httpURL accepts absolute http(s) URLs such as "http://localhost:5173".
func httpURL(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	u, err := url.Parse(s)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return validation.NewError("validation_http_url", "must be an absolute http(s) URL")
	}
	return nil
}

// Attributes returns all configuration attributes with their values and sources
func (c *ArxivCacheConfig) Attributes() []Attribute {
	return []Attribute{
		{Name: "allowed_origins", Value: strings.Join(c.AllowedOrigins, ","), Source: c.Source("allowed_origins")},
		{Name: "lookup_url", Value: c.LookupURL, Source: c.Source("lookup_url")},
		{Name: "lookup_timeout", Value: strconv.Itoa(c.LookupTimeout), Source: c.Source("lookup_timeout")},
		{Name: "log_format", Value: c.LogFormat, Source: c.Source("log_format")},
		{Name: "log_level", Value: c.LogLevel, Source: c.Source("log_level")},
	}
}

// FormatText returns a text representation of the configuration
func (c *ArxivCacheConfig) FormatText() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Config file: %s\n\n", c.configFilePath))
	sb.WriteString(fmt.Sprintf("%-20s %-40s %s\n", "NAME", "VALUE", "SOURCE"))
	sb.WriteString(fmt.Sprintf("%-20s %-40s %s\n", "----", "-----", "------"))

	for _, attr := range c.Attributes() {
		value := attr.Value
		if value == "" {
			value = "(not set)"
		}
		sb.WriteString(fmt.Sprintf("%-20s %-40s %s\n", attr.Name, value, attr.Source))
	}
	return sb.String()
}

// FormatJSON returns a JSON representation of the configuration
func (c *ArxivCacheConfig) FormatJSON() (string, error) {
	result := map[string]interface{}{
		"config_file": c.configFilePath,
		"attributes":  c.Attributes(),
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
