package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"    validate:"required"`
	Database  DatabaseConfig  `mapstructure:"database"  validate:"required"`
	Renderer  RendererConfig  `mapstructure:"renderer"  validate:"required"`
	Storage   StorageConfig   `mapstructure:"storage"   validate:"required"`
	Scheduler SchedulerConfig `mapstructure:"scheduler" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// RendererConfig points at the external HTML-to-PDF rendering service.
type RendererConfig struct {
	URL     string        `mapstructure:"url"     validate:"required,url"`
	Timeout time.Duration `mapstructure:"timeout" validate:"required"`
}

// StorageConfig configures the physical artifact store.
type StorageConfig struct {
	// Path is the directory freshly generated PDFs are written to.
	Path string `mapstructure:"path" validate:"required"`
	// URIScheme prefixes the stored name in artifact URIs, e.g. "share://".
	URIScheme string `mapstructure:"uri_scheme" validate:"required"`
}

// SchedulerConfig configures the background job scheduler.
type SchedulerConfig struct {
	// PollInterval is how often the scheduler is triggered to look for
	// scheduled jobs, in addition to submission-triggered runs.
	PollInterval time.Duration `mapstructure:"poll_interval" validate:"required"`
}
