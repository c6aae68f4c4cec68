package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Query     QueryConfig
	Redis     RedisConfig
	Cache     CacheConfig
	Auth      AuthConfig
	Storage   StorageConfig
	Log       LogConfig
	HTTP      HTTPConfig
	Scheduler SchedulerConfig
	Telemetry TelemetryConfig
	Profiling ProfilingConfig
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int // in minutes
	ConnMaxIdleTime int // in minutes
}

// QueryConfig bounds every read issued against the data store.
type QueryConfig struct {
	Timeout        time.Duration
	MaxRetries     int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// CacheConfig selects the query cache backend.
type CacheConfig struct {
	Backend string // memory, redis, none
	TTL     time.Duration
	Prefix  string
}

// AuthConfig configures how bearer tokens issued by the auth provider are verified.
type AuthConfig struct {
	Mode        string // jwt, remote
	JWTSecret   string
	Issuer      string
	Audience    string
	ProviderURL string // base URL of the auth provider for remote mode
	APIKey      string
	Timeout     time.Duration
}

// StorageConfig holds object storage settings for delivery photos
type StorageConfig struct {
	Type           string // s3, stub
	Endpoint       string
	Region         string
	Bucket         string
	AccessKeyID    string
	SecretKey      string
	UsePathStyle   bool
	PublicBaseURL  string
	MaxUploadBytes int64
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	IdleTimeout      time.Duration
	MaxHeaderBytes   int
	MaxBodySize      int64
	CORSAllowOrigins []string
	CORSAllowMethods []string
	CORSAllowHeaders []string
	TrustedProxies   []string
	// RateLimit is the request budget per client and window; negative disables
	RateLimit       int
	RateLimitWindow time.Duration
}

// SchedulerConfig holds the ledger audit schedule
type SchedulerConfig struct {
	Enabled          bool
	LedgerAuditCron  string
	JobTimeout       time.Duration
	AuditConcurrency int
}

// TelemetryConfig holds OpenTelemetry configuration
type TelemetryConfig struct {
	Enabled           bool    // Whether to enable OpenTelemetry
	CollectorEndpoint string  // OTEL Collector endpoint (e.g., "localhost:4317")
	SamplingRatio     float64 // Sampling ratio (0.0-1.0, 1.0 = 100%)
	ServiceName       string
	Insecure          bool
	DBTraceEnabled    bool
	DBSlowQueryThresh time.Duration
	MetricsInterval   time.Duration
}

// ProfilingConfig holds continuous profiling settings
type ProfilingConfig struct {
	Enabled       bool
	ServerAddress string
}

// Load loads configuration from TOML file and environment variables
// Priority (highest to lowest):
// 1. Environment variables with FEED_ prefix (e.g., FEED_DATABASE_PASSWORD)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("FEED")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("database.host"),
			Port:            v.GetInt("database.port"),
			User:            v.GetString("database.user"),
			Password:        v.GetString("database.password"),
			DBName:          v.GetString("database.dbname"),
			SSLMode:         v.GetString("database.sslmode"),
			MaxOpenConns:    v.GetInt("database.max_open_conns"),
			MaxIdleConns:    v.GetInt("database.max_idle_conns"),
			ConnMaxLifetime: v.GetInt("database.conn_max_lifetime"),
			ConnMaxIdleTime: v.GetInt("database.conn_max_idle_time"),
		},
		Query: QueryConfig{
			Timeout:        v.GetDuration("query.timeout"),
			MaxRetries:     v.GetInt("query.max_retries"),
			InitialBackoff: v.GetDuration("query.initial_backoff"),
			MaxBackoff:     v.GetDuration("query.max_backoff"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("redis.host"),
			Port:     v.GetInt("redis.port"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Cache: CacheConfig{
			Backend: v.GetString("cache.backend"),
			TTL:     v.GetDuration("cache.ttl"),
			Prefix:  v.GetString("cache.prefix"),
		},
		Auth: AuthConfig{
			Mode:        v.GetString("auth.mode"),
			JWTSecret:   v.GetString("auth.jwt_secret"),
			Issuer:      v.GetString("auth.issuer"),
			Audience:    v.GetString("auth.audience"),
			ProviderURL: v.GetString("auth.provider_url"),
			APIKey:      v.GetString("auth.api_key"),
			Timeout:     v.GetDuration("auth.timeout"),
		},
		Storage: StorageConfig{
			Type:           v.GetString("storage.type"),
			Endpoint:       v.GetString("storage.endpoint"),
			Region:         v.GetString("storage.region"),
			Bucket:         v.GetString("storage.bucket"),
			AccessKeyID:    v.GetString("storage.access_key_id"),
			SecretKey:      v.GetString("storage.secret_key"),
			UsePathStyle:   v.GetBool("storage.use_path_style"),
			PublicBaseURL:  v.GetString("storage.public_base_url"),
			MaxUploadBytes: v.GetInt64("storage.max_upload_bytes"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:      v.GetDuration("http.read_timeout"),
			WriteTimeout:     v.GetDuration("http.write_timeout"),
			IdleTimeout:      v.GetDuration("http.idle_timeout"),
			MaxHeaderBytes:   v.GetInt("http.max_header_bytes"),
			MaxBodySize:      v.GetInt64("http.max_body_size"),
			CORSAllowOrigins: v.GetStringSlice("http.cors_allow_origins"),
			CORSAllowMethods: v.GetStringSlice("http.cors_allow_methods"),
			CORSAllowHeaders: v.GetStringSlice("http.cors_allow_headers"),
			TrustedProxies:   v.GetStringSlice("http.trusted_proxies"),
			RateLimit:        v.GetInt("http.rate_limit"),
			RateLimitWindow:  v.GetDuration("http.rate_limit_window"),
		},
		Scheduler: SchedulerConfig{
			Enabled:          v.GetBool("scheduler.enabled"),
			LedgerAuditCron:  v.GetString("scheduler.ledger_audit_cron"),
			JobTimeout:       v.GetDuration("scheduler.job_timeout"),
			AuditConcurrency: v.GetInt("scheduler.audit_concurrency"),
		},
		Telemetry: TelemetryConfig{
			Enabled:           v.GetBool("telemetry.enabled"),
			CollectorEndpoint: v.GetString("telemetry.collector_endpoint"),
			SamplingRatio:     v.GetFloat64("telemetry.sampling_ratio"),
			ServiceName:       v.GetString("telemetry.service_name"),
			Insecure:          v.GetBool("telemetry.insecure"),
			DBTraceEnabled:    v.GetBool("telemetry.db_trace_enabled"),
			DBSlowQueryThresh: v.GetDuration("telemetry.db_slow_query_threshold"),
			MetricsInterval:   v.GetDuration("telemetry.metrics_interval"),
		},
		Profiling: ProfilingConfig{
			Enabled:       v.GetBool("profiling.enabled"),
			ServerAddress: v.GetString("profiling.server_address"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "feed-ledger"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "8080"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "postgres"
	}
	if cfg.Database.DBName == "" {
		cfg.Database.DBName = "feed"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 20
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 60
	}
	if cfg.Database.ConnMaxIdleTime == 0 {
		cfg.Database.ConnMaxIdleTime = 30
	}
	if cfg.Query.Timeout == 0 {
		cfg.Query.Timeout = 5 * time.Second
	}
	if cfg.Query.MaxRetries == 0 {
		cfg.Query.MaxRetries = 3
	}
	if cfg.Query.InitialBackoff == 0 {
		cfg.Query.InitialBackoff = 100 * time.Millisecond
	}
	if cfg.Query.MaxBackoff == 0 {
		cfg.Query.MaxBackoff = 2 * time.Second
	}
	if cfg.Redis.Host == "" {
		cfg.Redis.Host = "localhost"
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}
	if cfg.Cache.Backend == "" {
		cfg.Cache.Backend = "memory"
	}
	if cfg.Cache.TTL == 0 {
		cfg.Cache.TTL = 30 * time.Second
	}
	if cfg.Cache.Prefix == "" {
		cfg.Cache.Prefix = "feed:"
	}
	if cfg.Auth.Mode == "" {
		cfg.Auth.Mode = "jwt"
	}
	if cfg.Auth.Audience == "" {
		cfg.Auth.Audience = "authenticated"
	}
	if cfg.Auth.Timeout == 0 {
		cfg.Auth.Timeout = 5 * time.Second
	}
	if cfg.Storage.Type == "" {
		cfg.Storage.Type = "stub"
	}
	if cfg.Storage.Region == "" {
		cfg.Storage.Region = "us-east-1"
	}
	if cfg.Storage.Bucket == "" {
		cfg.Storage.Bucket = "delivery-photos"
	}
	if cfg.Storage.MaxUploadBytes == 0 {
		cfg.Storage.MaxUploadBytes = 8 << 20 // 8MB
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if cfg.HTTP.ReadTimeout == 0 {
		cfg.HTTP.ReadTimeout = 15 * time.Second
	}
	if cfg.HTTP.WriteTimeout == 0 {
		cfg.HTTP.WriteTimeout = 15 * time.Second
	}
	if cfg.HTTP.IdleTimeout == 0 {
		cfg.HTTP.IdleTimeout = 60 * time.Second
	}
	if cfg.HTTP.MaxHeaderBytes == 0 {
		cfg.HTTP.MaxHeaderBytes = 1 << 20 // 1MB
	}
	if cfg.HTTP.MaxBodySize == 0 {
		cfg.HTTP.MaxBodySize = 10 << 20 // 10MB
	}
	// No CORS origin default: cross-origin requests stay blocked until configured.
	if len(cfg.HTTP.CORSAllowMethods) == 0 {
		cfg.HTTP.CORSAllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	}
	if len(cfg.HTTP.CORSAllowHeaders) == 0 {
		cfg.HTTP.CORSAllowHeaders = []string{"Content-Type", "Authorization", "X-Request-ID"}
	}
	if cfg.HTTP.RateLimit == 0 {
		cfg.HTTP.RateLimit = 300
	}
	if cfg.HTTP.RateLimitWindow == 0 {
		cfg.HTTP.RateLimitWindow = time.Minute
	}
	if cfg.Scheduler.LedgerAuditCron == "" {
		cfg.Scheduler.LedgerAuditCron = "0 3 * * *"
	}
	if cfg.Scheduler.JobTimeout == 0 {
		cfg.Scheduler.JobTimeout = 10 * time.Minute
	}
	if cfg.Scheduler.AuditConcurrency == 0 {
		cfg.Scheduler.AuditConcurrency = 4
	}
	if cfg.Telemetry.CollectorEndpoint == "" {
		cfg.Telemetry.CollectorEndpoint = "localhost:4317"
	}
	if cfg.Telemetry.SamplingRatio == 0 {
		cfg.Telemetry.SamplingRatio = 1.0
	}
	if cfg.Telemetry.ServiceName == "" {
		cfg.Telemetry.ServiceName = cfg.App.Name
	}
	if cfg.Telemetry.DBSlowQueryThresh == 0 {
		cfg.Telemetry.DBSlowQueryThresh = 200 * time.Millisecond
	}
	if cfg.Telemetry.MetricsInterval == 0 {
		cfg.Telemetry.MetricsInterval = 30 * time.Second
	}
	if cfg.Profiling.ServerAddress == "" {
		cfg.Profiling.ServerAddress = "http://localhost:4040"
	}
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	if c.Database.MaxOpenConns <= 0 {
		return fmt.Errorf("database.max_open_conns must be positive")
	}
	if c.Database.MaxIdleConns < 0 {
		return fmt.Errorf("database.max_idle_conns cannot be negative")
	}
	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		return fmt.Errorf("database.max_idle_conns (%d) cannot exceed database.max_open_conns (%d)",
			c.Database.MaxIdleConns, c.Database.MaxOpenConns)
	}
	if c.Query.MaxRetries < 0 {
		return fmt.Errorf("query.max_retries cannot be negative")
	}

	switch c.Cache.Backend {
	case "memory", "redis", "none":
	default:
		return fmt.Errorf("cache.backend must be one of memory, redis, none; got %q", c.Cache.Backend)
	}

	switch c.Auth.Mode {
	case "jwt":
		if c.App.Env == "production" && c.Auth.JWTSecret == "" {
			return fmt.Errorf("auth.jwt_secret is required in production")
		}
	case "remote":
		if c.Auth.ProviderURL == "" {
			return fmt.Errorf("auth.provider_url is required when auth.mode is remote")
		}
	default:
		return fmt.Errorf("auth.mode must be jwt or remote; got %q", c.Auth.Mode)
	}

	switch c.Storage.Type {
	case "stub":
	case "s3":
		if c.Storage.Bucket == "" {
			return fmt.Errorf("storage.bucket is required for s3 storage")
		}
	default:
		return fmt.Errorf("storage.type must be s3 or stub; got %q", c.Storage.Type)
	}

	if c.App.Env == "production" {
		if c.Database.Password == "" {
			return fmt.Errorf("database.password is required in production")
		}
		if c.Database.SSLMode == "disable" {
			return fmt.Errorf("database.sslmode cannot be 'disable' in production")
		}
		for _, origin := range c.HTTP.CORSAllowOrigins {
			if origin == "*" {
				return fmt.Errorf("cors_allow_origins cannot be '*' in production (use specific origins)")
			}
		}
	}

	if c.Telemetry.SamplingRatio < 0.0 || c.Telemetry.SamplingRatio > 1.0 {
		return fmt.Errorf("telemetry.sampling_ratio must be between 0.0 and 1.0, got %f", c.Telemetry.SamplingRatio)
	}

	return nil
}

// DSN returns the database connection string with properly escaped values
func (d *DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.DBName,
	}
	q := u.Query()
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

// Addr returns the host:port address of the Redis server
func (r *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}
