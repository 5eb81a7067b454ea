package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	DataSourceMemory   = "memory"
	DataSourcePostgres = "postgres"
)

type Config struct {
	HTTP       HTTPConfig
	DataSource DataSourceConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	Telemetry  TelemetryConfig
	Analytics  AnalyticsConfig
}

type HTTPConfig struct {
	Addr      string
	RateLimit float64
	RateBurst int
}

type DataSourceConfig struct {
	Kind string
}

type DatabaseConfig struct {
	URL          string
	QueryTimeout time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	CacheTTL time.Duration
}

type TelemetryConfig struct {
	ServiceName  string
	OTLPEndpoint string
	LogLevel     string
}

type AnalyticsConfig struct {
	// ForecastSeed fixes the forecast jitter. Zero seeds it from the clock.
	ForecastSeed uint64
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.rate_limit", 5.0)
	v.SetDefault("http.rate_burst", 10)
	v.SetDefault("datasource.kind", DataSourceMemory)
	v.SetDefault("database.url", "")
	v.SetDefault("database.query_timeout", 3*time.Second)
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.cache_ttl", 10*time.Minute)
	v.SetDefault("telemetry.service_name", "storefront-analytics")
	v.SetDefault("telemetry.otlp_endpoint", "")
	v.SetDefault("telemetry.log_level", "info")
	v.SetDefault("analytics.forecast_seed", 0)
}

// Load reads defaults, an optional config.yaml and the environment, in that
// order of precedence from lowest to highest. configPaths overrides the
// directories searched for config.yaml.
func Load(configPaths ...string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if len(configPaths) == 0 {
		configPaths = []string{".", "./config"}
	}
	for _, p := range configPaths {
		v.AddConfigPath(p)
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("database.url", "DATABASE_URL")
	_ = v.BindEnv("redis.addr", "REDIS_ADDR")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := Config{
		HTTP: HTTPConfig{
			Addr:      v.GetString("http.addr"),
			RateLimit: v.GetFloat64("http.rate_limit"),
			RateBurst: v.GetInt("http.rate_burst"),
		},
		DataSource: DataSourceConfig{
			Kind: strings.ToLower(v.GetString("datasource.kind")),
		},
		Database: DatabaseConfig{
			URL:          v.GetString("database.url"),
			QueryTimeout: v.GetDuration("database.query_timeout"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("redis.addr"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
			CacheTTL: v.GetDuration("redis.cache_ttl"),
		},
		Telemetry: TelemetryConfig{
			ServiceName:  v.GetString("telemetry.service_name"),
			OTLPEndpoint: v.GetString("telemetry.otlp_endpoint"),
			LogLevel:     v.GetString("telemetry.log_level"),
		},
		Analytics: AnalyticsConfig{
			ForecastSeed: v.GetUint64("analytics.forecast_seed"),
		},
	}

	return cfg, cfg.validate()
}

func (c Config) validate() error {
	switch c.DataSource.Kind {
	case DataSourceMemory:
	case DataSourcePostgres:
		if c.Database.URL == "" {
			return errors.New("datasource.kind is postgres but database.url (DATABASE_URL) is empty")
		}
	default:
		return fmt.Errorf("unknown datasource.kind %q", c.DataSource.Kind)
	}
	if c.HTTP.RateLimit <= 0 || c.HTTP.RateBurst <= 0 {
		return errors.New("http.rate_limit and http.rate_burst must be positive")
	}
	return nil
}
