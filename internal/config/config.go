package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/m04kA/SMC-ReservationService/internal/integrations/circuit"
)

// EnvPrefix префикс переменных окружения, переопределяющих config.toml
// Например: RESERVATION_DATABASE_HOST, RESERVATION_REDIS_ENABLED
const EnvPrefix = "RESERVATION"

var (
	// ErrReadConfig возвращается, когда файл конфигурации не удалось прочитать
	ErrReadConfig = errors.New("config: failed to read config file")

	// ErrEnvOverride возвращается при некорректных переменных окружения
	ErrEnvOverride = errors.New("config: invalid environment override")

	// ErrInvalidConfig возвращается при невалидных значениях
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

type Config struct {
	Server         ServerConfig        `toml:"server" split_words:"true"`
	Database       DatabaseConfig      `toml:"database" split_words:"true"`
	Logs           LogsConfig          `toml:"logs" split_words:"true"`
	Metrics        MetricsConfig       `toml:"metrics" split_words:"true"`
	Tracing        TracingConfig       `toml:"tracing" split_words:"true"`
	Redis          RedisConfig         `toml:"redis" split_words:"true"`
	RabbitMQ       RabbitMQConfig      `toml:"rabbitmq" envconfig:"RABBITMQ"`
	CatalogService ServiceClientConfig `toml:"catalog_service" split_words:"true"`
	UserService    ServiceClientConfig `toml:"user_service" split_words:"true"`
	Scheduling     SchedulingConfig    `toml:"scheduling" split_words:"true"`
}

// Таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port" envconfig:"HTTP_PORT"`
	ReadTimeout     int `toml:"read_timeout" split_words:"true"`
	WriteTimeout    int `toml:"write_timeout" split_words:"true"`
	IdleTimeout     int `toml:"idle_timeout" split_words:"true"`
	ShutdownTimeout int `toml:"shutdown_timeout" split_words:"true"`
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname" envconfig:"DBNAME"`
	SSLMode         string `toml:"sslmode" envconfig:"SSLMODE"`
	MaxOpenConns    int    `toml:"max_open_conns" split_words:"true"`
	MaxIdleConns    int    `toml:"max_idle_conns" split_words:"true"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" split_words:"true"` // секунды
	TxMaxRetries    int    `toml:"tx_max_retries" split_words:"true"`
	TxRetryBackoff  int    `toml:"tx_retry_backoff_ms" envconfig:"TX_RETRY_BACKOFF_MS"`
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name" split_words:"true"`
}

type TracingConfig struct {
	Enabled       bool    `toml:"enabled"`
	Endpoint      string  `toml:"endpoint"`
	SamplingRatio float64 `toml:"sampling_ratio" split_words:"true"`
}

type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	CacheTTL int    `toml:"cache_ttl" split_words:"true"` // секунды
}

type RabbitMQConfig struct {
	Enabled  bool   `toml:"enabled"`
	URL      string `toml:"url"`
	Exchange string `toml:"exchange"`
}

// ServiceClientConfig настройки HTTP клиента внешнего сервиса
type ServiceClientConfig struct {
	URL                     string `toml:"url"`
	Timeout                 int    `toml:"timeout"` // секунды
	BreakerMaxRequests      uint32 `toml:"breaker_max_requests" split_words:"true"`
	BreakerInterval         int    `toml:"breaker_interval" split_words:"true"` // секунды
	BreakerTimeout          int    `toml:"breaker_timeout" split_words:"true"`  // секунды
	BreakerFailureThreshold uint32 `toml:"breaker_failure_threshold" split_words:"true"`
}

// TimeoutDuration таймаут запроса
func (c ServiceClientConfig) TimeoutDuration() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

// Breaker настройки circuit breaker клиента
func (c ServiceClientConfig) Breaker(name string) circuit.Settings {
	return circuit.Settings{
		Name:             name,
		MaxRequests:      c.BreakerMaxRequests,
		Interval:         time.Duration(c.BreakerInterval) * time.Second,
		Timeout:          time.Duration(c.BreakerTimeout) * time.Second,
		FailureThreshold: c.BreakerFailureThreshold,
	}
}

type SchedulingConfig struct {
	NotificationChannel string `toml:"notification_channel" split_words:"true"`
}

// Load читает config.toml, затем .env (если есть) и переменные окружения RESERVATION_*
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadConfig, path, err)
	}

	// .env опционален
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: .env: %v", ErrEnvOverride, err)
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEnvOverride, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default значения, которые не обязательно указывать в config.toml
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 30,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
			TxMaxRetries:    3,
			TxRetryBackoff:  20,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "reservation_service",
		},
		Tracing: TracingConfig{
			SamplingRatio: 1,
		},
		Redis: RedisConfig{
			Addr:     "localhost:6379",
			CacheTTL: 300,
		},
		RabbitMQ: RabbitMQConfig{
			Exchange: "notifications",
		},
		CatalogService: defaultClient(),
		UserService:    defaultClient(),
		Scheduling: SchedulingConfig{
			NotificationChannel: "email",
		},
	}
}

func defaultClient() ServiceClientConfig {
	return ServiceClientConfig{
		Timeout:                 5,
		BreakerMaxRequests:      1,
		BreakerInterval:         60,
		BreakerTimeout:          30,
		BreakerFailureThreshold: 5,
	}
}

// Validate проверяет обязательные поля и диапазоны значений
func (c *Config) Validate() error {
	switch {
	case c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535:
		return fmt.Errorf("%w: server.http_port must be in 1..65535, got %d", ErrInvalidConfig, c.Server.HTTPPort)
	case c.Database.DBName == "":
		return fmt.Errorf("%w: database.dbname is required", ErrInvalidConfig)
	case c.Database.User == "":
		return fmt.Errorf("%w: database.user is required", ErrInvalidConfig)
	case c.Database.TxMaxRetries < 0:
		return fmt.Errorf("%w: database.tx_max_retries must not be negative", ErrInvalidConfig)
	case c.CatalogService.URL == "":
		return fmt.Errorf("%w: catalog_service.url is required", ErrInvalidConfig)
	case c.UserService.URL == "":
		return fmt.Errorf("%w: user_service.url is required", ErrInvalidConfig)
	case c.Redis.Enabled && c.Redis.Addr == "":
		return fmt.Errorf("%w: redis.addr is required when redis is enabled", ErrInvalidConfig)
	case c.RabbitMQ.Enabled && c.RabbitMQ.URL == "":
		return fmt.Errorf("%w: rabbitmq.url is required when rabbitmq is enabled", ErrInvalidConfig)
	case c.Tracing.Enabled && c.Tracing.Endpoint == "":
		return fmt.Errorf("%w: tracing.endpoint is required when tracing is enabled", ErrInvalidConfig)
	case c.Scheduling.NotificationChannel == "":
		return fmt.Errorf("%w: scheduling.notification_channel is required", ErrInvalidConfig)
	}
	return nil
}
