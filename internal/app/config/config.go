// Package config loads application configuration from environment variables and an optional config file.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"cloudvision_backend/internal/feature/imageanalysis/adapters/gemini"
	"cloudvision_backend/internal/feature/imageanalysis/adapters/geocoding"
	"cloudvision_backend/internal/feature/imageanalysis/adapters/vision"
	"cloudvision_backend/internal/feature/imageanalysis/adapters/wikidata"
	"cloudvision_backend/internal/feature/imageanalysis/adapters/wikipedia"
)

// EnvPrefix is prepended to every environment variable, e.g. CLOUDVISION_SERVER_PORT.
const EnvPrefix = "CLOUDVISION"

// Config holds all configuration for the application.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Vision    VisionConfig    `mapstructure:"vision"`
	Wikipedia WikimediaConfig `mapstructure:"wikipedia"`
	Wikidata  WikimediaConfig `mapstructure:"wikidata"`
	Geocoding GeocodingConfig `mapstructure:"geocoding"`
	Gemini    GeminiConfig    `mapstructure:"gemini"`
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"` // "development" or "production"
	LogLevel       string   `mapstructure:"log_level"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// RedisConfig holds Redis connection settings. When Enabled is false the
// in-process stores are used instead.
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns host:port.
func (r RedisConfig) Addr() string {
	return r.Host + ":" + r.Port
}

// CacheConfig holds TTLs for cached lookups and finished analyses.
type CacheConfig struct {
	EnrichmentTTL time.Duration `mapstructure:"enrichment_ttl"`
	ResultTTL     time.Duration `mapstructure:"result_ttl"`
}

// AuthConfig holds JWT settings. An empty secret disables authentication on /v1.
type AuthConfig struct {
	JWTSecret string        `mapstructure:"jwt_secret"`
	TokenTTL  time.Duration `mapstructure:"token_ttl"`
}

// VisionConfig holds Cloud Vision settings.
type VisionConfig struct {
	APIKey   string        `mapstructure:"api_key"`
	Endpoint string        `mapstructure:"endpoint"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// WikimediaConfig holds settings shared by the Wikipedia and Wikidata clients.
type WikimediaConfig struct {
	Endpoint          string        `mapstructure:"endpoint"`
	UserAgent         string        `mapstructure:"user_agent"`
	Timeout           time.Duration `mapstructure:"timeout"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
	Burst             int           `mapstructure:"burst"`
}

// GeocodingConfig holds reverse geocoding settings.
type GeocodingConfig struct {
	Endpoint string        `mapstructure:"endpoint"`
	APIKey   string        `mapstructure:"api_key"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// GeminiConfig holds settings for the generated description fallback.
type GeminiConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Model   string `mapstructure:"model"`
	APIKey  string `mapstructure:"api_key"`
}

// Load loads configuration from environment variables and config files.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Config file is optional
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// setDefaults registers every key so that AutomaticEnv can override it.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.allowed_origins", []string{})

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", "6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("cache.enrichment_ttl", "24h")
	v.SetDefault("cache.result_ttl", "10m")

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_ttl", "24h")

	visionDefaults := vision.DefaultConfig()
	v.SetDefault("vision.api_key", "")
	v.SetDefault("vision.endpoint", "")
	v.SetDefault("vision.timeout", visionDefaults.Timeout)

	wp := wikipedia.DefaultConfig()
	v.SetDefault("wikipedia.endpoint", wp.APIURLTemplate)
	v.SetDefault("wikipedia.user_agent", wp.UserAgent)
	v.SetDefault("wikipedia.timeout", wp.Timeout)
	v.SetDefault("wikipedia.requests_per_second", wp.RequestsPerSecond)
	v.SetDefault("wikipedia.burst", wp.Burst)

	wd := wikidata.DefaultConfig()
	v.SetDefault("wikidata.endpoint", wd.Endpoint)
	v.SetDefault("wikidata.user_agent", wd.UserAgent)
	v.SetDefault("wikidata.timeout", wd.Timeout)
	v.SetDefault("wikidata.requests_per_second", wd.RequestsPerSecond)
	v.SetDefault("wikidata.burst", wd.Burst)

	gc := geocoding.DefaultConfig()
	v.SetDefault("geocoding.endpoint", gc.Endpoint)
	v.SetDefault("geocoding.api_key", "")
	v.SetDefault("geocoding.timeout", gc.Timeout)

	v.SetDefault("gemini.enabled", false)
	v.SetDefault("gemini.model", gemini.DefaultModel)
	v.SetDefault("gemini.api_key", "")
}

func validate(cfg *Config) error {
	if cfg.Server.Port == "" {
		return errors.New("server port is required")
	}
	if cfg.Server.Environment != "development" && cfg.Server.Environment != "production" {
		return fmt.Errorf("server environment must be 'development' or 'production', got: %s", cfg.Server.Environment)
	}
	if cfg.Redis.Enabled && (cfg.Redis.Host == "" || cfg.Redis.Port == "") {
		return errors.New("redis host and port are required when redis is enabled")
	}
	if cfg.Cache.EnrichmentTTL <= 0 || cfg.Cache.ResultTTL <= 0 {
		return errors.New("cache TTLs must be positive")
	}
	if cfg.Vision.Timeout <= 0 || cfg.Wikipedia.Timeout <= 0 || cfg.Wikidata.Timeout <= 0 || cfg.Geocoding.Timeout <= 0 {
		return errors.New("client timeouts must be positive")
	}
	if cfg.Wikipedia.RequestsPerSecond < 0 || cfg.Wikidata.RequestsPerSecond < 0 {
		return errors.New("requests per second must not be negative")
	}
	if cfg.Auth.JWTSecret != "" && cfg.Auth.TokenTTL <= 0 {
		return errors.New("token TTL must be positive when a JWT secret is set")
	}
	if cfg.Gemini.Enabled && cfg.Gemini.Model == "" {
		return errors.New("gemini model is required when gemini is enabled")
	}
	return nil
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// VisionClientConfig converts the loaded settings to vision.Config.
func (c *Config) VisionClientConfig() vision.Config {
	return vision.Config{APIKey: c.Vision.APIKey, Endpoint: c.Vision.Endpoint, Timeout: c.Vision.Timeout}
}

// WikipediaClientConfig converts the loaded settings to wikipedia.Config.
func (c *Config) WikipediaClientConfig() wikipedia.Config {
	cfg := wikipedia.DefaultConfig()
	cfg.APIURLTemplate = c.Wikipedia.Endpoint
	cfg.UserAgent = c.Wikipedia.UserAgent
	cfg.Timeout = c.Wikipedia.Timeout
	cfg.RequestsPerSecond = c.Wikipedia.RequestsPerSecond
	cfg.Burst = c.Wikipedia.Burst
	return cfg
}

// WikidataClientConfig converts the loaded settings to wikidata.Config.
func (c *Config) WikidataClientConfig() wikidata.Config {
	return wikidata.Config{
		Endpoint:          c.Wikidata.Endpoint,
		UserAgent:         c.Wikidata.UserAgent,
		Timeout:           c.Wikidata.Timeout,
		RequestsPerSecond: c.Wikidata.RequestsPerSecond,
		Burst:             c.Wikidata.Burst,
	}
}

// GeocodingClientConfig converts the loaded settings to geocoding.Config.
func (c *Config) GeocodingClientConfig() geocoding.Config {
	return geocoding.Config{Endpoint: c.Geocoding.Endpoint, APIKey: c.Geocoding.APIKey, Timeout: c.Geocoding.Timeout}
}

// GeminiClientConfig converts the loaded settings to gemini.Config.
func (c *Config) GeminiClientConfig() gemini.Config {
	return gemini.Config{Enabled: c.Gemini.Enabled, Model: c.Gemini.Model, APIKey: c.Gemini.APIKey}
}
