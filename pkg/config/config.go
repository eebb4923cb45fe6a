package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const EnvPrefix = "WAREHOUSE"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App      AppConfig
	Service  ServiceConfig
	Airtable AirtableConfig
	Cache    CacheConfig
	Retry    RetryConfig
	Transfer TransferConfig
	Redis    RedisConfig
	Cron     CronConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Airtable.ensureBaseURL(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"WAREHOUSE_APP_ENV" required:"true"`
	Port         string `envconfig:"WAREHOUSE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"WAREHOUSE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"WAREHOUSE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"WAREHOUSE_SERVICE_KIND" default:"api"`
}

type AirtableConfig struct {
	Token   string        `envconfig:"WAREHOUSE_AIRTABLE_TOKEN" required:"true"`
	BaseID  string        `envconfig:"WAREHOUSE_AIRTABLE_BASE_ID"`
	BaseURL string        `envconfig:"WAREHOUSE_AIRTABLE_BASE_URL"`
	Timeout time.Duration `envconfig:"WAREHOUSE_AIRTABLE_TIMEOUT" default:"30s"`
}

func (a *AirtableConfig) ensureBaseURL() error {
	if a.BaseURL != "" {
		return nil
	}
	if a.BaseID == "" {
		return fmt.Errorf("either WAREHOUSE_AIRTABLE_BASE_URL or WAREHOUSE_AIRTABLE_BASE_ID is required")
	}
	a.BaseURL = fmt.Sprintf("https://api.airtable.com/v0/%s", a.BaseID)
	return nil
}

type CacheConfig struct {
	TTL          time.Duration `envconfig:"WAREHOUSE_CACHE_TTL" default:"24h"`
	DashboardTTL time.Duration `envconfig:"WAREHOUSE_CACHE_DASHBOARD_TTL" default:"5m"`
}

type RetryConfig struct {
	MaxAttempts int           `envconfig:"WAREHOUSE_RETRY_MAX_ATTEMPTS" default:"3"`
	BaseDelay   time.Duration `envconfig:"WAREHOUSE_RETRY_BASE_DELAY" default:"1s"`
	MaxDelay    time.Duration `envconfig:"WAREHOUSE_RETRY_MAX_DELAY" default:"4s"`
}

type TransferConfig struct {
	AutoApproveLimit int `envconfig:"WAREHOUSE_TRANSFER_AUTO_APPROVE_LIMIT" default:"30"`
}

type RedisConfig struct {
	URL          string        `envconfig:"WAREHOUSE_REDIS_URL"`
	Address      string        `envconfig:"WAREHOUSE_REDIS_ADDR"`
	Password     string        `envconfig:"WAREHOUSE_REDIS_PASSWORD"`
	DB           int           `envconfig:"WAREHOUSE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"WAREHOUSE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"WAREHOUSE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"WAREHOUSE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"WAREHOUSE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"WAREHOUSE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type CronConfig struct {
	Interval                 time.Duration `envconfig:"WAREHOUSE_CRON_INTERVAL" default:"24h"`
	ReservationTimeoutDays   int           `envconfig:"WAREHOUSE_CRON_RESERVATION_TIMEOUT_DAYS" default:"2"`
	ReadyReminderDays        int           `envconfig:"WAREHOUSE_CRON_READY_REMINDER_DAYS" default:"2"`
	FailedOrderRetentionDays int           `envconfig:"WAREHOUSE_CRON_FAILED_ORDER_RETENTION_DAYS" default:"7"`
}
