package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "a11yscan"

	// DefaultTimeout bounds the replay of a single action stream.
	DefaultTimeout = 60 * time.Second

	// DefaultBatchSize is the number of streams replayed concurrently.
	// Every stream gets its own store, so this only trades memory for speed.
	DefaultBatchSize = 4
)

// Config holds all configuration options for a11yscan.
// It is populated from CLI flags and the optional configuration file and
// passed down explicitly.
type Config struct {
	// Sources are the action stream files to replay. "-" means stdin.
	Sources []string

	// Timeout is the maximum duration of one replay.
	Timeout time.Duration

	// BatchSize is the number of streams replayed concurrently.
	BatchSize int

	// ContinueOnError keeps replaying a stream after an action was rejected.
	// When false, the first rejected action ends the stream.
	ContinueOnError bool

	// Verbose enables debug log output.
	Verbose bool

	// JSONReport selects the JSON report. Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport selects the Markdown report. Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file for the report. Empty means stdout.
	ReportFile string

	// ConfigFilePath is the path to the configuration file.
	// If empty, FindConfigFile searches the default locations.
	ConfigFilePath string

	// SourceConfigs holds per-source settings loaded from the config file.
	SourceConfigs *File
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Timeout:   DefaultTimeout,
		BatchSize: DefaultBatchSize,
	}
}

// XDGConfigDir returns the XDG config directory for a11yscan.
// On Linux: ~/.config/a11yscan
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// SourceConfig returns the merged settings for source. It is safe to call
// when no configuration file was loaded.
func (c *Config) SourceConfig(source string) SourceConfig {
	if c.SourceConfigs == nil {
		return SourceConfig{}
	}
	return c.SourceConfigs.GetSourceConfig(source)
}

// Validate checks the configuration and returns the first problem found.
func (c *Config) Validate() error {
	if len(c.Sources) == 0 {
		return ErrNoSource
	}
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}
	if c.SourceConfigs != nil {
		if err := c.SourceConfigs.Validate(); err != nil {
			return err
		}
	}
	return nil
}
