package proposal

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// PDF backends accepted by Config.PDFBackend.
const (
	BackendAuto        = "auto"
	BackendLibreOffice = "libreoffice"
	BackendWord        = "word"
	BackendNone        = "none"
)

// Config contains all configuration options for proposal generation
type Config struct {
	// TemplateDir holds the DOCX templates named by the proposal schemas.
	TemplateDir string `yaml:"template_dir"`
	// OutputDir is where the CLI saves generated files.
	OutputDir string `yaml:"output_dir"`
	// LogLevel controls the verbosity of logging (debug, info, warn, error, off)
	LogLevel string `yaml:"log_level"`
	// CacheMaxSize is the maximum number of templates to cache. 0 disables caching.
	CacheMaxSize int `yaml:"cache_max_size"`
	// CacheTTL is the time-to-live for cached templates. 0 means no expiration.
	CacheTTL time.Duration `yaml:"cache_ttl"`
	// ConvertTimeout bounds a single PDF conversion.
	ConvertTimeout time.Duration `yaml:"convert_timeout"`
	// PDFBackend selects the converter: auto, libreoffice, word or none.
	PDFBackend string `yaml:"pdf_backend"`
	// SofficePath overrides the LibreOffice binary lookup.
	SofficePath string `yaml:"soffice_path,omitempty"`
	// IncludeHeadersFooters extends replacement to header and footer parts.
	IncludeHeadersFooters bool `yaml:"include_headers_footers"`
	// StylePolicy picks the run receiving a value: first or longest.
	StylePolicy string `yaml:"style_policy"`
	// AnnotationRule enables the "Additional Features" price box rule.
	AnnotationRule bool `yaml:"annotation_rule"`
	// BatchWorkers bounds concurrent generations in a batch.
	BatchWorkers int `yaml:"batch_workers"`
	// VerifyPDF reads converted files back and counts their pages.
	VerifyPDF bool `yaml:"verify_pdf"`
	// SchemaDir optionally holds YAML schemas overriding the built-in ones.
	SchemaDir string `yaml:"schema_dir,omitempty"`
}

var (
	globalConfig      = ConfigFromEnvironment()
	globalConfigMutex sync.RWMutex
)

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		TemplateDir:           "templates",
		OutputDir:             ".",
		LogLevel:              "info",
		CacheMaxSize:          16,
		CacheTTL:              0,
		ConvertTimeout:        2 * time.Minute,
		PDFBackend:            BackendAuto,
		IncludeHeadersFooters: true,
		StylePolicy:           "first",
		AnnotationRule:        true,
		BatchWorkers:          2,
		VerifyPDF:             true,
	}
}

// ConfigFromEnvironment creates a configuration from environment variables
func ConfigFromEnvironment() *Config {
	config := DefaultConfig()
	config.LoadFromEnv()
	return config
}

// LoadFromEnv overrides fields with PROPOSAL_* environment variables that are
// set and parse cleanly.
func (c *Config) LoadFromEnv() {
	if val := os.Getenv("PROPOSAL_TEMPLATE_DIR"); val != "" {
		c.TemplateDir = val
	}
	if val := os.Getenv("PROPOSAL_OUTPUT_DIR"); val != "" {
		c.OutputDir = val
	}
	if val := os.Getenv("PROPOSAL_LOG_LEVEL"); val != "" {
		c.LogLevel = val
	}
	if val := os.Getenv("PROPOSAL_CACHE_MAX_SIZE"); val != "" {
		if size, err := strconv.Atoi(val); err == nil {
			c.CacheMaxSize = size
		}
	}
	if val := os.Getenv("PROPOSAL_CACHE_TTL"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			c.CacheTTL = d
		}
	}
	if val := os.Getenv("PROPOSAL_CONVERT_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			c.ConvertTimeout = d
		}
	}
	if val := os.Getenv("PROPOSAL_PDF_BACKEND"); val != "" {
		c.PDFBackend = strings.ToLower(val)
	}
	if val := os.Getenv("PROPOSAL_SOFFICE_PATH"); val != "" {
		c.SofficePath = val
	}
	if val := os.Getenv("PROPOSAL_HEADERS_FOOTERS"); val != "" {
		c.IncludeHeadersFooters = parseBool(val)
	}
	if val := os.Getenv("PROPOSAL_STYLE_POLICY"); val != "" {
		c.StylePolicy = val
	}
	if val := os.Getenv("PROPOSAL_ANNOTATION_RULE"); val != "" {
		c.AnnotationRule = parseBool(val)
	}
	if val := os.Getenv("PROPOSAL_BATCH_WORKERS"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			c.BatchWorkers = n
		}
	}
	if val := os.Getenv("PROPOSAL_VERIFY_PDF"); val != "" {
		c.VerifyPDF = parseBool(val)
	}
	if val := os.Getenv("PROPOSAL_SCHEMA_DIR"); val != "" {
		c.SchemaDir = val
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.CacheMaxSize < 0 {
		return errors.New("cache max size cannot be negative")
	}
	if c.CacheTTL < 0 {
		return errors.New("cache TTL cannot be negative")
	}
	if c.ConvertTimeout <= 0 {
		return errors.New("convert timeout must be positive")
	}
	if c.BatchWorkers <= 0 {
		return errors.New("batch workers must be positive")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true, "off": true}
	if !validLogLevels[c.LogLevel] {
		return errors.New("invalid log level: " + c.LogLevel)
	}

	switch c.PDFBackend {
	case BackendAuto, BackendLibreOffice, BackendWord, BackendNone:
	default:
		return errors.New("invalid pdf backend: " + c.PDFBackend)
	}

	switch c.StylePolicy {
	case "first", "longest":
	default:
		return errors.New("invalid style policy: " + c.StylePolicy)
	}
	return nil
}

// DefaultConfigPath returns the default configuration file path.
func DefaultConfigPath() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "proposal", "config.yml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".proposal", "config.yml")
	}
	return filepath.Join(home, ".config", "proposal", "config.yml")
}

// LoadConfigFile reads a YAML configuration file. Fields missing from the
// file keep their defaults.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// LoadConfig loads the file at path when it exists, then applies the
// environment. An empty path means DefaultConfigPath.
func LoadConfig(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath()
	}
	cfg, err := LoadConfigFile(path)
	if err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		cfg = DefaultConfig()
	}
	cfg.LoadFromEnv()
	return cfg, cfg.Validate()
}

// Save writes the configuration to the specified path.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// GetGlobalConfig returns a copy of the global configuration
func GetGlobalConfig() *Config {
	globalConfigMutex.RLock()
	defer globalConfigMutex.RUnlock()

	if globalConfig == nil {
		return DefaultConfig()
	}
	configCopy := *globalConfig
	return &configCopy
}

// SetGlobalConfig sets the global configuration
func SetGlobalConfig(config *Config) {
	globalConfigMutex.Lock()
	globalConfig = config
	globalConfigMutex.Unlock()

	UpdateLoggerFromConfig()
}

// parseBool parses a boolean value from a string
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "1" || s == "yes" || s == "on"
}
