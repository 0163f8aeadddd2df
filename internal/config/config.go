package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Saleor   SaleorConfig   `mapstructure:"saleor"`
	Import   ImportConfig   `mapstructure:"import"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
	Log      LogConfig      `mapstructure:"log"`
}

// SaleorConfig holds the remote GraphQL API configuration
type SaleorConfig struct {
	BaseURL              string `mapstructure:"base_url"`
	Token                string `mapstructure:"token"`
	Timeout              int    `mapstructure:"timeout"`
	MaxRequestsPerSecond int    `mapstructure:"max_requests_per_second"`
	Proxy                string `mapstructure:"proxy"`
}

// ImportConfig describes the source spreadsheet and the importer policy
type ImportConfig struct {
	File               string        `mapstructure:"file"`
	Sheet              string        `mapstructure:"sheet"`
	MaxRows            int           `mapstructure:"max_rows"`
	ProductType        string        `mapstructure:"product_type"`
	DeletionMarker     string        `mapstructure:"deletion_marker"`
	DefaultDescription string        `mapstructure:"default_description"`
	WeightUnit         string        `mapstructure:"weight_unit"`
	SEOTitleMax        int           `mapstructure:"seo_title_max"`
	Columns            ColumnsConfig `mapstructure:"columns"`
}

// ColumnsConfig maps product fields to zero-based spreadsheet columns
type ColumnsConfig struct {
	Name           int `mapstructure:"name"`
	SKU            int `mapstructure:"sku"`
	Price          int `mapstructure:"price"`
	Description    int `mapstructure:"description"`
	Weight         int `mapstructure:"weight"`
	Category       int `mapstructure:"category"`
	Image          int `mapstructure:"image"`
	SEOTitle       int `mapstructure:"seo_title"`
	SEODescription int `mapstructure:"seo_description"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Name     string `mapstructure:"name"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
}

// RedisConfig holds Redis connection details
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	Database int    `mapstructure:"database"`
}

type MetricsConfig struct {
	Port string `mapstructure:"port"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DSN returns the pgx connection string.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		c.Host, c.Port, c.User, c.Password, c.Name)
}

// Load reads config.yaml (or the given file) with environment variable overrides.
// A .env file in the working directory is loaded into the environment first.
// A missing config.yaml is not an error; defaults and environment apply.
func Load(configFile string) (*Config, error) {
	if err := godotenv.Load(); err == nil {
		log.Debug("Loaded .env file")
	}

	v := viper.New()
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	setDefaults(v)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || configFile != "" {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		log.Debug("No config.yaml found, using defaults and environment")
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks the settings every command needs.
func (c *Config) Validate() error {
	if c.Saleor.BaseURL == "" {
		return fmt.Errorf("saleor.base_url is required")
	}
	if c.Import.SEOTitleMax <= 0 {
		return fmt.Errorf("import.seo_title_max must be positive, got %d", c.Import.SEOTitleMax)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("saleor.base_url", "http://localhost:8000/graphql/")
	v.SetDefault("saleor.token", "")
	v.SetDefault("saleor.timeout", 30)
	v.SetDefault("saleor.max_requests_per_second", 10)
	v.SetDefault("saleor.proxy", "")

	v.SetDefault("import.file", "products.xlsx")
	v.SetDefault("import.sheet", "")
	v.SetDefault("import.max_rows", 50)
	v.SetDefault("import.product_type", "Car Parts")
	v.SetDefault("import.deletion_marker", "DEL THIS ITEM")
	v.SetDefault("import.default_description", "This product has no description.")
	v.SetDefault("import.weight_unit", "LB")
	v.SetDefault("import.seo_title_max", 70)
	v.SetDefault("import.columns.name", 0)
	v.SetDefault("import.columns.sku", 1)
	v.SetDefault("import.columns.price", 2)
	v.SetDefault("import.columns.description", 4)
	v.SetDefault("import.columns.weight", 8)
	v.SetDefault("import.columns.category", 11)
	v.SetDefault("import.columns.image", 12)
	v.SetDefault("import.columns.seo_title", 13)
	v.SetDefault("import.columns.seo_description", 14)

	v.SetDefault("database.enabled", false)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "catalog")
	v.SetDefault("database.user", "catalog_user")
	v.SetDefault("database.password", "catalog_pass")

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.database", 0)

	v.SetDefault("metrics.port", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}
