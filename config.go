package filesniff

import (
	"time"

	"github.com/gobeaver/beaver-kit/config"
)

type Config struct {
	// Storage driver used by SniffPath (local, memory). Empty reads paths
	// straight from the operating system.
	Driver string `env:"FILESNIFF_DRIVER"`

	// Local driver configuration
	LocalBasePath string `env:"FILESNIFF_LOCAL_BASE_PATH,default:."`

	// YAML rule file replacing the built-in signature table
	RulesFile string `env:"FILESNIFF_RULES_FILE"`

	// Result cache
	CacheEnabled    bool `env:"FILESNIFF_CACHE_ENABLED,default:true"`
	CacheTTL        int  `env:"FILESNIFF_CACHE_TTL,default:0"` // seconds, 0 = no expiry
	CacheMaxEntries int  `env:"FILESNIFF_CACHE_MAX_ENTRIES,default:1024"`

	// Logging
	LogLevel  string `env:"FILESNIFF_LOG_LEVEL,default:warn"`
	LogFormat string `env:"FILESNIFF_LOG_FORMAT,default:text"` // text or json

	// OpenTelemetry instruments on the global MeterProvider
	MetricsEnabled bool `env:"FILESNIFF_METRICS_ENABLED,default:false"`
}

// GetConfig returns config loaded from environment
func GetConfig() (*Config, error) {
	cfg := &Config{}
	if err := config.Load(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultConfig returns the configuration used when no environment
// variables are set.
func DefaultConfig() *Config {
	return &Config{
		LocalBasePath:   ".",
		CacheEnabled:    true,
		CacheMaxEntries: 1024,
		LogLevel:        "warn",
		LogFormat:       "text",
	}
}

// CacheTTLDuration returns CacheTTL as a duration.
func (c *Config) CacheTTLDuration() time.Duration {
	return time.Duration(c.CacheTTL) * time.Second
}
