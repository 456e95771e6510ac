package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Cache     CacheConfig
	Geocoding GeocodingConfig
	Log       LogConfig
	Worker    WorkerConfig
	CORS      CORSConfig
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CacheConfig struct {
	AreaCacheTTL time.Duration
}

// GeocodingConfig configures the Google reverse geocoding client and the
// batching policy of the area resolver.
type GeocodingConfig struct {
	APIKey         string
	BaseURL        string
	Language       string
	Region         string
	RequestTimeout time.Duration
	BatchSize      int
	BatchDelay     time.Duration
	MaxErrorLogs   int
}

type LogConfig struct {
	Level string
}

type WorkerConfig struct {
	Enabled           bool
	ConsumerGroup     string
	StreamReadTimeout time.Duration
	MaxRetries        int
	SweepSchedule     string
	SweepLimit        int
}

type CORSConfig struct {
	AllowOrigins string
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: viper.GetString("API_HOST"),
			Port: viper.GetInt("API_PORT"),
			Env:  viper.GetString("API_ENV"),
		},
		Database: DatabaseConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			DBName:          viper.GetString("DB_NAME"),
			SSLMode:         viper.GetString("DB_SSLMODE"),
			MaxConns:        viper.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(viper.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(viper.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			AreaCacheTTL: time.Duration(viper.GetInt("AREA_CACHE_TTL")) * time.Second,
		},
		Geocoding: GeocodingConfig{
			APIKey:         viper.GetString("GOOGLE_MAPS_API_KEY"),
			BaseURL:        viper.GetString("GEOCODING_BASE_URL"),
			Language:       viper.GetString("GEOCODING_LANGUAGE"),
			Region:         viper.GetString("GEOCODING_REGION"),
			RequestTimeout: time.Duration(viper.GetInt("GEOCODING_REQUEST_TIMEOUT")) * time.Second,
			BatchSize:      viper.GetInt("GEOCODING_BATCH_SIZE"),
			BatchDelay:     time.Duration(viper.GetInt("GEOCODING_BATCH_DELAY")) * time.Millisecond,
			MaxErrorLogs:   viper.GetInt("GEOCODING_MAX_ERROR_LOGS"),
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		Worker: WorkerConfig{
			Enabled:           viper.GetBool("WORKER_ENABLED"),
			ConsumerGroup:     viper.GetString("WORKER_CONSUMER_GROUP"),
			StreamReadTimeout: time.Duration(viper.GetInt("WORKER_STREAM_READ_TIMEOUT")) * time.Millisecond,
			MaxRetries:        viper.GetInt("WORKER_MAX_RETRIES"),
			SweepSchedule:     viper.GetString("WORKER_SWEEP_SCHEDULE"),
			SweepLimit:        viper.GetInt("WORKER_SWEEP_LIMIT"),
		},
		CORS: CORSConfig{
			AllowOrigins: viper.GetString("CORS_ALLOW_ORIGINS"),
		},
	}

	cfg.applyDefaults()

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Cache.AreaCacheTTL == 0 {
		c.Cache.AreaCacheTTL = 30 * 24 * time.Hour
	}
	if c.Geocoding.BaseURL == "" {
		c.Geocoding.BaseURL = "https://maps.googleapis.com/maps/api/geocode/json"
	}
	if c.Geocoding.Language == "" {
		c.Geocoding.Language = "zh-TW"
	}
	if c.Geocoding.Region == "" {
		c.Geocoding.Region = "tw"
	}
	if c.Geocoding.RequestTimeout == 0 {
		c.Geocoding.RequestTimeout = 10 * time.Second
	}
	if c.Geocoding.BatchSize == 0 {
		c.Geocoding.BatchSize = 10
	}
	if c.Geocoding.BatchDelay == 0 {
		c.Geocoding.BatchDelay = 200 * time.Millisecond
	}
	if c.Geocoding.MaxErrorLogs == 0 {
		c.Geocoding.MaxErrorLogs = 5
	}
	if c.Worker.ConsumerGroup == "" {
		c.Worker.ConsumerGroup = "area-resolver-workers"
	}
	if c.Worker.StreamReadTimeout == 0 {
		c.Worker.StreamReadTimeout = 5000 * time.Millisecond
	}
	if c.Worker.MaxRetries == 0 {
		c.Worker.MaxRetries = 3
	}
	if c.Worker.SweepSchedule == "" {
		c.Worker.SweepSchedule = "@every 10m"
	}
	if c.Worker.SweepLimit == 0 {
		c.Worker.SweepLimit = 100
	}
	if c.CORS.AllowOrigins == "" {
		c.CORS.AllowOrigins = "*"
	}
}

// AllowedOrigins returns the configured CORS origins as a normalized list.
func (c *Config) AllowedOrigins() []string {
	parts := strings.Split(c.CORS.AllowOrigins, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
