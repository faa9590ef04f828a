package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix scopes every variable, e.g. LEDGERDESK_SERVER.PORT=8080.
const EnvPrefix = "LEDGERDESK_"

type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

type ServerConfig struct {
	Port           string `koanf:"port" validate:"required,numeric"`
	ReadTimeout    int    `koanf:"read_timeout" validate:"gt=0"`
	WriteTimeout   int    `koanf:"write_timeout" validate:"gt=0"`
	IdleTimeout    int    `koanf:"idle_timeout" validate:"gt=0"`
	MaxUploadBytes int64  `koanf:"max_upload_bytes" validate:"gt=0"`
}

// Defaults applied to unset fields.
const (
	DefaultEnv            = "development"
	DefaultPort           = "3000"
	DefaultReadTimeout    = 30
	DefaultWriteTimeout   = 30
	DefaultIdleTimeout    = 60
	DefaultMaxUploadBytes = 10 << 20
)

// LoadConfig reads envFiles (".env" when none are given) with godotenv and
// then the LEDGERDESK_ environment through koanf. Missing env files are not
// an error; variables already set in the process win over file values.
func LoadConfig(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load env file %s: %w", f, err)
		}
	}

	k := koanf.New(".")
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("could not unmarshal config: %w", err)
	}
	cfg.applyDefaults()

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if err := cfg.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Primary.Env == "" {
		c.Primary.Env = DefaultEnv
	}
	if c.Server.Port == "" {
		c.Server.Port = DefaultPort
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = DefaultReadTimeout
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = DefaultWriteTimeout
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = DefaultIdleTimeout
	}
	if c.Server.MaxUploadBytes == 0 {
		c.Server.MaxUploadBytes = DefaultMaxUploadBytes
	}

	// Observability is a pointer so an absent section is distinguishable.
	if c.Observability == nil {
		c.Observability = DefaultObservabilityConfig()
	}
	c.Observability.fill()
	c.Observability.ServiceName = "ledgerdesk"
	c.Observability.Environment = c.Primary.Env
}

// IsProduction reports whether the service runs with env=production.
func (c *Config) IsProduction() bool {
	return c.Primary.Env == "production"
}
