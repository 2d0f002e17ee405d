// backend-go/internal/config/config.go
package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/andresuchdata/storebrain/backend-go/internal/domain"
	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Cache      CacheConfig
	Storage    StorageConfig
	Simulation SimulationConfig
	Catalogue  domain.Catalogue
}

type ServerConfig struct {
	Port           string
	Mode           string
	LogLevel       string
	ReadTimeout    int
	WriteTimeout   int
	AllowedOrigins []string
}

type DatabaseConfig struct {
	Enabled  bool
	URL      string
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type CacheConfig struct {
	Enabled            bool
	RedisURL           string
	RedisHost          string
	RedisPort          string
	RedisPassword      string
	RedisDB            int
	SnapshotTTLSeconds int
}

type StorageConfig struct {
	Enabled   bool
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	UseSSL    bool
}

// SimulationConfig drives the ledger and the demand generator.
type SimulationConfig struct {
	Alpha            float64
	StartingStock    int
	StartDate        string
	Days             int
	Mode             string
	Customers        int
	VisitProbability float64
	MinDailyTraffic  int
	MaxDailyTraffic  int
	Seed             int64
	TickIntervalMS   int
	PreferenceMin    float64
	PreferenceMax    float64
}

var (
	once     sync.Once
	instance *Config
	loadErr  error
)

// Load reads configuration once from .env, the environment and an optional
// config file named by STORE_CONFIG_FILE.
func Load() (*Config, error) {
	once.Do(func() {
		_ = godotenv.Load()
		instance, loadErr = load(viper.GetViper())
	})
	return instance, loadErr
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("SERVER_MODE", "debug")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("SERVER_READ_TIMEOUT", 10)
	v.SetDefault("SERVER_WRITE_TIMEOUT", 10)
	v.SetDefault("SERVER_ALLOWED_ORIGINS", []string{"*"})

	v.SetDefault("DB_ENABLED", false)
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "storebrain")
	v.SetDefault("DB_SSLMODE", "disable")

	v.SetDefault("CACHE_ENABLED", false)
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("REDIS_HOST", "127.0.0.1")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CACHE_SNAPSHOT_TTL_SECONDS", 300)

	v.SetDefault("STORAGE_ENABLED", false)
	v.SetDefault("STORAGE_ENDPOINT", "localhost:9000")
	v.SetDefault("STORAGE_ACCESS_KEY", "")
	v.SetDefault("STORAGE_SECRET_KEY", "")
	v.SetDefault("STORAGE_BUCKET", "storebrain-reports")
	v.SetDefault("STORAGE_REGION", "us-east-1")
	v.SetDefault("STORAGE_USE_SSL", false)

	v.SetDefault("SIM_ALPHA", 0.2)
	v.SetDefault("SIM_STARTING_STOCK", 10)
	v.SetDefault("SIM_START_DATE", "2025-07-12")
	v.SetDefault("SIM_DAYS", 30)
	v.SetDefault("SIM_MODE", "agents")
	v.SetDefault("SIM_CUSTOMERS", 50)
	v.SetDefault("SIM_VISIT_PROBABILITY", 0.6)
	v.SetDefault("SIM_MIN_DAILY_TRAFFIC", 30)
	v.SetDefault("SIM_MAX_DAILY_TRAFFIC", 60)
	v.SetDefault("SIM_SEED", 1)
	v.SetDefault("SIM_TICK_INTERVAL_MS", 100)
	v.SetDefault("SIM_PREFERENCE_MIN", 0)
	v.SetDefault("SIM_PREFERENCE_MAX", 0)
}

func load(v *viper.Viper) (*Config, error) {
	setDefaults(v)
	v.AutomaticEnv()

	if file := v.GetString("STORE_CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", file, err)
		}
		log.Info().Str("file", file).Msg("loaded config file")
	}

	catalogue, err := loadCatalogue(v)
	if err != nil {
		return nil, err
	}

	return &Config{
		Server: ServerConfig{
			Port:           v.GetString("SERVER_PORT"),
			Mode:           v.GetString("SERVER_MODE"),
			LogLevel:       v.GetString("LOG_LEVEL"),
			ReadTimeout:    v.GetInt("SERVER_READ_TIMEOUT"),
			WriteTimeout:   v.GetInt("SERVER_WRITE_TIMEOUT"),
			AllowedOrigins: v.GetStringSlice("SERVER_ALLOWED_ORIGINS"),
		},
		Database: DatabaseConfig{
			Enabled:  v.GetBool("DB_ENABLED"),
			URL:      v.GetString("DATABASE_URL"),
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			DBName:   v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		Cache: CacheConfig{
			Enabled:            v.GetBool("CACHE_ENABLED"),
			RedisURL:           v.GetString("REDIS_URL"),
			RedisHost:          v.GetString("REDIS_HOST"),
			RedisPort:          v.GetString("REDIS_PORT"),
			RedisPassword:      v.GetString("REDIS_PASSWORD"),
			RedisDB:            v.GetInt("REDIS_DB"),
			SnapshotTTLSeconds: v.GetInt("CACHE_SNAPSHOT_TTL_SECONDS"),
		},
		Storage: StorageConfig{
			Enabled:   v.GetBool("STORAGE_ENABLED"),
			Endpoint:  v.GetString("STORAGE_ENDPOINT"),
			AccessKey: v.GetString("STORAGE_ACCESS_KEY"),
			SecretKey: v.GetString("STORAGE_SECRET_KEY"),
			Bucket:    v.GetString("STORAGE_BUCKET"),
			Region:    v.GetString("STORAGE_REGION"),
			UseSSL:    v.GetBool("STORAGE_USE_SSL"),
		},
		Simulation: SimulationConfig{
			Alpha:            v.GetFloat64("SIM_ALPHA"),
			StartingStock:    v.GetInt("SIM_STARTING_STOCK"),
			StartDate:        v.GetString("SIM_START_DATE"),
			Days:             v.GetInt("SIM_DAYS"),
			Mode:             strings.ToLower(v.GetString("SIM_MODE")),
			Customers:        v.GetInt("SIM_CUSTOMERS"),
			VisitProbability: v.GetFloat64("SIM_VISIT_PROBABILITY"),
			MinDailyTraffic:  v.GetInt("SIM_MIN_DAILY_TRAFFIC"),
			MaxDailyTraffic:  v.GetInt("SIM_MAX_DAILY_TRAFFIC"),
			Seed:             v.GetInt64("SIM_SEED"),
			TickIntervalMS:   v.GetInt("SIM_TICK_INTERVAL_MS"),
			PreferenceMin:    v.GetFloat64("SIM_PREFERENCE_MIN"),
			PreferenceMax:    v.GetFloat64("SIM_PREFERENCE_MAX"),
		},
		Catalogue: catalogue,
	}, nil
}

// strictDecoding makes every catalogue field mandatory and rejects unknown keys.
func strictDecoding(dc *mapstructure.DecoderConfig) {
	dc.ErrorUnset = true
	dc.ErrorUnused = true
}

// loadCatalogue reads the "catalogue" table from the config file, falling back
// to the built-in grocery catalogue when none is configured.
func loadCatalogue(v *viper.Viper) (domain.Catalogue, error) {
	if !v.IsSet("catalogue") {
		return domain.DefaultCatalogue(), nil
	}

	var catalogue domain.Catalogue
	if err := v.UnmarshalKey("catalogue", &catalogue, strictDecoding); err != nil {
		return nil, fmt.Errorf("%w: decode catalogue: %v", domain.ErrInvalidCatalogue, err)
	}
	if err := catalogue.Validate(); err != nil {
		return nil, err
	}
	return catalogue, nil
}
