package phpsess

import (
	"fmt"
	"strings"

	"github.com/MrEthical07/phpsess/session"
	"github.com/caarlos0/env/v11"
)

// Config controls a [Strategy]. Zero string and numeric fields take the
// defaults of [DefaultConfig] when passed through [Builder.Build]; booleans
// are taken literally, so start from DefaultConfig to keep Audit.DropIfFull.
type Config struct {
	// SessionName is the cookie carrying the PHP session ID.
	SessionName string `env:"SESSION_NAME" envDefault:"PHPSESSID"`
	// PHPSessionName is an alias for SessionName and wins when set.
	PHPSessionName string `env:"PHPSESSION_NAME"`
	// CompletelyLogout is accepted and exposed but has no effect on authentication.
	CompletelyLogout bool `env:"COMPLETELY_LOGOUT" envDefault:"false"`
	// PassReqToCallback hands the *http.Request to the verify callback.
	PassReqToCallback bool `env:"PASS_REQ_TO_CALLBACK" envDefault:"false"`

	Redis   RedisConfig   `envPrefix:"REDIS_"`
	Metrics MetricsConfig `envPrefix:"METRICS_"`
	Audit   AuditConfig   `envPrefix:"AUDIT_"`
}

/*
====================================
REDIS CONFIG
====================================
*/

// RedisConfig holds connection parameters used when the Builder dials Redis
// itself. Prefix applies to injected clients too.
type RedisConfig struct {
	Host     string `env:"HOST" envDefault:"127.0.0.1"`
	Port     int    `env:"PORT" envDefault:"6379"`
	DB       int    `env:"DB" envDefault:"0"`
	Prefix   string `env:"PREFIX" envDefault:"PHPREDIS_SESSION:"`
	Password string `env:"PASSWORD"`
}

func (c RedisConfig) options() session.Options {
	return session.Options{
		Host:     c.Host,
		Port:     c.Port,
		DB:       c.DB,
		Password: c.Password,
	}
}

/*
====================================
METRICS CONFIG
====================================
*/

// MetricsConfig toggles the in-process counters and the latency histogram.
type MetricsConfig struct {
	Enabled                 bool `env:"ENABLED" envDefault:"false"`
	EnableLatencyHistograms bool `env:"LATENCY_HISTOGRAMS" envDefault:"false"`
}

/*
====================================
AUDIT CONFIG
====================================
*/

// AuditConfig controls the asynchronous audit dispatcher.
type AuditConfig struct {
	Enabled    bool `env:"ENABLED" envDefault:"false"`
	BufferSize int  `env:"BUFFER_SIZE" envDefault:"1024"`
	DropIfFull bool `env:"DROP_IF_FULL" envDefault:"true"`
}

// DefaultConfig returns the defaults: cookie PHPSESSID, Redis at
// 127.0.0.1:6379 db 0, key prefix PHPREDIS_SESSION:.
func DefaultConfig() Config {
	return Config{
		SessionName: "PHPSESSID",
		Redis: RedisConfig{
			Host:   "127.0.0.1",
			Port:   6379,
			DB:     0,
			Prefix: session.DefaultPrefix,
		},
		Audit: AuditConfig{
			BufferSize: 1024,
			DropIfFull: true,
		},
	}
}

// ConfigFromEnv loads a Config from PHPSESS_* environment variables.
func ConfigFromEnv() (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "PHPSESS_"}); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return cfg, nil
}

// withDefaults resolves the session name alias and fills zero-valued
// string and numeric fields from DefaultConfig.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.PHPSessionName != "" {
		c.SessionName = c.PHPSessionName
	}
	if c.SessionName == "" {
		c.SessionName = def.SessionName
	}
	if c.Redis.Host == "" {
		c.Redis.Host = def.Redis.Host
	}
	if c.Redis.Port == 0 {
		c.Redis.Port = def.Redis.Port
	}
	if c.Redis.Prefix == "" {
		c.Redis.Prefix = def.Redis.Prefix
	}
	if c.Audit.BufferSize == 0 {
		c.Audit.BufferSize = def.Audit.BufferSize
	}
	return c
}

// Validate reports the first configuration error found.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("%w: nil config", ErrInvalidConfig)
	}
	if !validCookieName(c.SessionName) {
		return fmt.Errorf("%w: session name %q is not a valid cookie name", ErrInvalidConfig, c.SessionName)
	}
	if c.Redis.Port < 1 || c.Redis.Port > 65535 {
		return fmt.Errorf("%w: redis port %d out of range", ErrInvalidConfig, c.Redis.Port)
	}
	if c.Redis.DB < 0 {
		return fmt.Errorf("%w: redis db must be >= 0", ErrInvalidConfig)
	}
	if c.Audit.BufferSize < 0 {
		return fmt.Errorf("%w: audit buffer size must be >= 0", ErrInvalidConfig)
	}
	return nil
}

// validCookieName accepts RFC 6265 tokens.
func validCookieName(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c <= ' ' || c >= 0x7f || strings.IndexByte(`()<>@,;:\"/[]?={}`, c) >= 0 {
			return false
		}
	}
	return true
}
