package config

import (
	"fmt"
	"slices"
)

type ObservabilityConfig struct {
	ServiceName string         `koanf:"service_name"`
	Environment string         `koanf:"environment"`
	Logging     LoggingConfig  `koanf:"logging"`
	NewRelic    NewRelicConfig `koanf:"new_relic"`
}

type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// NewRelicConfig enables the New Relic agent when LicenseKey is set.
type NewRelicConfig struct {
	LicenseKey string `koanf:"license_key"`
	AppName    string `koanf:"app_name"`
}

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"console", "json"}
)

func DefaultObservabilityConfig() *ObservabilityConfig {
	return &ObservabilityConfig{
		Logging: LoggingConfig{Level: "info", Format: "console"},
	}
}

func (o *ObservabilityConfig) fill() {
	if o.Logging.Level == "" {
		o.Logging.Level = "info"
	}
	if o.Logging.Format == "" {
		o.Logging.Format = "console"
	}
}

// Validate checks the logging level and format.
func (o *ObservabilityConfig) Validate() error {
	if !slices.Contains(logLevels, o.Logging.Level) {
		return fmt.Errorf("logging.level must be one of %v, got %q", logLevels, o.Logging.Level)
	}
	if !slices.Contains(logFormats, o.Logging.Format) {
		return fmt.Errorf("logging.format must be one of %v, got %q", logFormats, o.Logging.Format)
	}
	return nil
}

// NewRelicEnabled reports whether a license key is configured.
func (o *ObservabilityConfig) NewRelicEnabled() bool {
	return o.NewRelic.LicenseKey != ""
}

// NewRelicAppName falls back to the service name.
func (o *ObservabilityConfig) NewRelicAppName() string {
	if o.NewRelic.AppName != "" {
		return o.NewRelic.AppName
	}
	return o.ServiceName
}
