// Package config loads application configuration from file and environment.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Paths     PathsConfig     `yaml:"paths" mapstructure:"paths"`
	Nominatim NominatimConfig `yaml:"nominatim" mapstructure:"nominatim"`
	Geocode   GeocodeConfig   `yaml:"geocode" mapstructure:"geocode"`
	Scrape    ScrapeConfig    `yaml:"scrape" mapstructure:"scrape"`
	Store     StoreConfig     `yaml:"store" mapstructure:"store"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// PathsConfig holds the default file locations used by the pipeline commands.
type PathsConfig struct {
	InputDir   string `yaml:"input_dir" mapstructure:"input_dir"`
	MergedFile string `yaml:"merged_file" mapstructure:"merged_file"`
	FinalFile  string `yaml:"final_file" mapstructure:"final_file"`
	CasesFile  string `yaml:"cases_file" mapstructure:"cases_file"`
}

// NominatimConfig holds the geocoding service settings.
type NominatimConfig struct {
	BaseURL     string  `yaml:"base_url" mapstructure:"base_url"`
	UserAgent   string  `yaml:"user_agent" mapstructure:"user_agent"`
	RateRPS     float64 `yaml:"rate_rps" mapstructure:"rate_rps"`
	TimeoutSecs int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// GeocodeConfig holds cache location and acceptance bounds.
type GeocodeConfig struct {
	CacheFile   string       `yaml:"cache_file" mapstructure:"cache_file"`
	SalesBounds BoundsConfig `yaml:"sales_bounds" mapstructure:"sales_bounds"`
	CasesBounds BoundsConfig `yaml:"cases_bounds" mapstructure:"cases_bounds"`
}

// BoundsConfig is a lat/lon bounding box used to reject geocoder matches
// outside the target area.
type BoundsConfig struct {
	MinLat float64 `yaml:"min_lat" mapstructure:"min_lat"`
	MaxLat float64 `yaml:"max_lat" mapstructure:"max_lat"`
	MinLon float64 `yaml:"min_lon" mapstructure:"min_lon"`
	MaxLon float64 `yaml:"max_lon" mapstructure:"max_lon"`
}

// ScrapeConfig holds the planning-authority scraper settings.
type ScrapeConfig struct {
	URLs        []string `yaml:"urls" mapstructure:"urls"`
	DelaySecs   int      `yaml:"delay_secs" mapstructure:"delay_secs"`
	TimeoutSecs int      `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	UserAgent   string   `yaml:"user_agent" mapstructure:"user_agent"`
}

// StoreConfig configures the optional persistence backend.
// An empty driver disables persistence.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("DUBLIN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("paths.input_dir", "./Data_DUB")
	v.SetDefault("paths.merged_file", "./merged_dub_properties.csv")
	v.SetDefault("paths.final_file", "./final_dublin_properties.csv")
	v.SetDefault("paths.cases_file", "./planning_cases_merged.csv")
	v.SetDefault("nominatim.base_url", "https://nominatim.openstreetmap.org")
	v.SetDefault("nominatim.user_agent", "dublin-property-cli/1.0")
	v.SetDefault("nominatim.rate_rps", 1.0)
	v.SetDefault("nominatim.timeout_secs", 30)
	v.SetDefault("geocode.cache_file", "geocoding_cache.json")
	v.SetDefault("geocode.sales_bounds.min_lat", 52.9)
	v.SetDefault("geocode.sales_bounds.max_lat", 53.7)
	v.SetDefault("geocode.sales_bounds.min_lon", -6.5)
	v.SetDefault("geocode.sales_bounds.max_lon", -6.0)
	v.SetDefault("geocode.cases_bounds.min_lat", 52.8)
	v.SetDefault("geocode.cases_bounds.max_lat", 53.8)
	v.SetDefault("geocode.cases_bounds.min_lon", -6.6)
	v.SetDefault("geocode.cases_bounds.max_lon", -5.9)
	v.SetDefault("scrape.delay_secs", 2)
	v.SetDefault("scrape.timeout_secs", 30)
	v.SetDefault("scrape.user_agent", "Mozilla/5.0 (compatible; DublinPropertyBot/1.0)")
	v.SetDefault("store.driver", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks that the settings a command depends on are present.
func (c *Config) Validate(component string) error {
	switch component {
	case "store":
		if c.Store.Driver != "sqlite" && c.Store.Driver != "postgres" {
			return eris.Errorf("config: validation failed: unknown store driver %q", c.Store.Driver)
		}
		if c.Store.DatabaseURL == "" {
			return eris.New("config: validation failed: store.database_url is required (DUBLIN_STORE_DATABASE_URL)")
		}
	case "scrape":
		if len(c.Scrape.URLs) == 0 {
			return eris.New("config: validation failed: scrape.urls is empty")
		}
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
