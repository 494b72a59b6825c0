package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/feral-file/ff-crm-sync/internal/domain"
)

const envPrefix = "CRM_SYNC"

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMongo    = "mongo"

	JoinedViewScopeGlobal = "global"
	JoinedViewScopeRegion = "region"

	EventsProviderNATS  = "nats"
	EventsProviderKafka = "kafka"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadHost        string        `mapstructure:"read_host"`
	ReadPort        int           `mapstructure:"read_port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
}

// MongoConfig holds MongoDB configuration
type MongoConfig struct {
	URI      string        `mapstructure:"uri"`
	Database string        `mapstructure:"database"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// StoreConfig selects and configures the record store backend
type StoreConfig struct {
	Driver   string         `mapstructure:"store_driver"`
	Database DatabaseConfig `mapstructure:"database"`
	Mongo    MongoConfig    `mapstructure:"mongo"`
}

// EloquaConfig holds the marketing platform's bulk API configuration
type EloquaConfig struct {
	BaseURL         string        `mapstructure:"base_url"`
	Company         string        `mapstructure:"company"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Timeout         time.Duration `mapstructure:"timeout"`
	SyncLimit       int           `mapstructure:"sync_limit"`
	PageSize        int           `mapstructure:"page_size"`
	PollInterval    time.Duration `mapstructure:"poll_interval"`
	PollTimeout     time.Duration `mapstructure:"poll_timeout"`
	ImportChunkSize int           `mapstructure:"import_chunk_size"`
	// ActivityCDOID and InstitutionCDOID are the custom data object ids activities and institutions import into
	ActivityCDOID    int `mapstructure:"activity_cdo_id"`
	InstitutionCDOID int `mapstructure:"institution_cdo_id"`
	// ActivityCDOFields and InstitutionCDOFields override the generated record field to CDO field statements
	ActivityCDOFields    map[string]string `mapstructure:"activity_cdo_fields"`
	InstitutionCDOFields map[string]string `mapstructure:"institution_cdo_fields"`
}

// SyncConfig holds sync engine configuration
type SyncConfig struct {
	Regions         []domain.Region `mapstructure:"regions"`
	StageJoins      bool            `mapstructure:"stage_joins"`
	JoinedViewScope string          `mapstructure:"joined_view_scope"`
	PageViewWorkers int             `mapstructure:"page_view_workers"`
	ActivityTypes   []string        `mapstructure:"activity_types"`
	LockTTL         time.Duration   `mapstructure:"lock_ttl"`
}

// RedisConfig holds Redis configuration. An empty address disables Redis.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// RateLimitConfig holds the platform request rate limit
type RateLimitConfig struct {
	RequestsPerSecond int    `mapstructure:"requests_per_second"`
	Burst             int    `mapstructure:"burst"`
	KeyPrefix         string `mapstructure:"key_prefix"`
}

// TemporalConfig holds Temporal configuration
type TemporalConfig struct {
	HostPort                           string  `mapstructure:"host_port"`
	Namespace                          string  `mapstructure:"namespace"`
	TaskQueue                          string  `mapstructure:"task_queue"`
	MaxConcurrentActivityExecutionSize int     `mapstructure:"max_concurrent_activity_execution_size"`
	WorkerActivitiesPerSecond          float64 `mapstructure:"worker_activities_per_second"`
	MaxConcurrentActivityTaskPollers   int     `mapstructure:"max_concurrent_activity_task_pollers"`
}

// NATSConfig holds NATS JetStream configuration
type NATSConfig struct {
	URL            string        `mapstructure:"url"`
	StreamName     string        `mapstructure:"stream_name"`
	MaxReconnects  int           `mapstructure:"max_reconnects"`
	ReconnectWait  time.Duration `mapstructure:"reconnect_wait"`
	ConnectionName string        `mapstructure:"connection_name"`
}

// KafkaConfig holds Kafka configuration
type KafkaConfig struct {
	Brokers      []string      `mapstructure:"brokers"`
	Topic        string        `mapstructure:"topic"`
	BatchTimeout time.Duration `mapstructure:"batch_timeout"`
}

// EventsConfig selects where sync reports are published. An empty provider disables publishing.
type EventsConfig struct {
	Provider string      `mapstructure:"provider"`
	NATS     NATSConfig  `mapstructure:"nats"`
	Kafka    KafkaConfig `mapstructure:"kafka"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string   `mapstructure:"host"`
	Port         int      `mapstructure:"port"`
	ReadTimeout  int      `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout int      `mapstructure:"write_timeout"` // in seconds
	IdleTimeout  int      `mapstructure:"idle_timeout"`  // in seconds
	// AllowOrigins lists the CORS origins; empty allows every origin
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// AuthConfig holds authentication configuration
type AuthConfig struct {
	Username     string   `mapstructure:"username"`
	Password     string   `mapstructure:"password"`
	JWTPublicKey string   `mapstructure:"jwt_public_key"`
	APIKeys      []string `mapstructure:"api_keys"`
}

// ScheduleConfig holds the daily trigger times, as HH:MM in UTC
type ScheduleConfig struct {
	InboundAt     string        `mapstructure:"inbound_at"`
	OutboundAt    string        `mapstructure:"outbound_at"`
	CheckInterval time.Duration `mapstructure:"check_interval"`
}

// APIConfig holds configuration for the API server
type APIConfig struct {
	BaseConfig  `mapstructure:",squash"`
	StoreConfig `mapstructure:",squash"`
	Server      ServerConfig    `mapstructure:"server"`
	Auth        AuthConfig      `mapstructure:"auth"`
	Eloqua      EloquaConfig    `mapstructure:"eloqua"`
	RateLimit   RateLimitConfig `mapstructure:"rate_limit"`
	Redis       RedisConfig     `mapstructure:"redis"`
	Temporal    TemporalConfig  `mapstructure:"temporal"`
	Sync        SyncConfig      `mapstructure:"sync"`
}

// JobConfig holds configuration for the sync jobs, run from the CLI or the Temporal worker
type JobConfig struct {
	BaseConfig  `mapstructure:",squash"`
	StoreConfig `mapstructure:",squash"`
	Eloqua      EloquaConfig    `mapstructure:"eloqua"`
	Sync        SyncConfig      `mapstructure:"sync"`
	Redis       RedisConfig     `mapstructure:"redis"`
	RateLimit   RateLimitConfig `mapstructure:"rate_limit"`
	Events      EventsConfig    `mapstructure:"events"`
	Temporal    TemporalConfig  `mapstructure:"temporal"`
	MetricsAddr string          `mapstructure:"metrics_addr"`
}

// SchedulerConfig holds configuration for the scheduler program
type SchedulerConfig struct {
	BaseConfig `mapstructure:",squash"`
	Temporal   TemporalConfig `mapstructure:"temporal"`
	Schedule   ScheduleConfig `mapstructure:"schedule"`
	Sync       SyncConfig     `mapstructure:"sync"`
}

func setStoreDefaults(v *viper.Viper) {
	v.SetDefault("store_driver", StoreDriverPostgres)
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("mongo.database", "eloqua-app-db")
	v.SetDefault("mongo.timeout", "10s")
}

func setEloquaDefaults(v *viper.Viper) {
	v.SetDefault("eloqua.timeout", "60s")
	v.SetDefault("eloqua.sync_limit", 50000)
	v.SetDefault("eloqua.page_size", 1000)
	v.SetDefault("eloqua.poll_interval", "5s")
	v.SetDefault("eloqua.poll_timeout", "30m")
	v.SetDefault("eloqua.import_chunk_size", 5000)
	v.SetDefault("rate_limit.requests_per_second", 5)
	v.SetDefault("rate_limit.burst", 5)
	v.SetDefault("rate_limit.key_prefix", "crm-sync:ratelimit")
}

func setSyncDefaults(v *viper.Viper) {
	regions := make([]map[string]string, 0, 4)
	for _, r := range domain.DefaultRegions() {
		regions = append(regions, map[string]string{"label": r.Label, "pattern": r.Pattern})
	}
	v.SetDefault("sync.regions", regions)
	v.SetDefault("sync.stage_joins", true)
	v.SetDefault("sync.joined_view_scope", JoinedViewScopeGlobal)
	v.SetDefault("sync.page_view_workers", 8)
	v.SetDefault("sync.activity_types", domain.DefaultActivityTypes)
	v.SetDefault("sync.lock_ttl", "10m")
}

func setTemporalDefaults(v *viper.Viper) {
	v.SetDefault("temporal.host_port", "localhost:7233")
	v.SetDefault("temporal.namespace", "default")
	v.SetDefault("temporal.task_queue", "crm-sync")
	v.SetDefault("temporal.max_concurrent_activity_execution_size", 4)
	v.SetDefault("temporal.worker_activities_per_second", 10)
	v.SetDefault("temporal.max_concurrent_activity_task_pollers", 2)
}

// LoadAPIConfig loads configuration for the API server
func LoadAPIConfig(configFile string, envPath string) (*APIConfig, error) {
	v := configureViper("api", configFile, envPath)

	v.SetDefault("debug", false)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 30)
	v.SetDefault("server.write_timeout", 300)
	v.SetDefault("server.idle_timeout", 120)
	setStoreDefaults(v)
	setEloquaDefaults(v)
	setSyncDefaults(v)
	setTemporalDefaults(v)

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg APIConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.StoreConfig.validate(); err != nil {
		return nil, err
	}
	if cfg.Auth.Username == "" || cfg.Auth.Password == "" {
		return nil, errors.New("auth.username and auth.password are required")
	}
	if err := cfg.Eloqua.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadJobConfig loads configuration for the crm-sync command
func LoadJobConfig(configFile string, envPath string) (*JobConfig, error) {
	return loadJobConfig("crm-sync", configFile, envPath)
}

// LoadWorkerConfig loads configuration for the Temporal worker
func LoadWorkerConfig(configFile string, envPath string) (*JobConfig, error) {
	return loadJobConfig("worker", configFile, envPath)
}

func loadJobConfig(service string, configFile string, envPath string) (*JobConfig, error) {
	v := configureViper(service, configFile, envPath)

	setStoreDefaults(v)
	setEloquaDefaults(v)
	setSyncDefaults(v)
	setTemporalDefaults(v)
	v.SetDefault("events.nats.max_reconnects", 10)
	v.SetDefault("events.nats.reconnect_wait", "2s")
	v.SetDefault("events.nats.stream_name", "CRM_SYNC")
	v.SetDefault("events.nats.connection_name", service)
	v.SetDefault("events.kafka.topic", "crm-sync-reports")
	v.SetDefault("events.kafka.batch_timeout", "1s")

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg JobConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.StoreConfig.validate(); err != nil {
		return nil, err
	}
	if err := cfg.Eloqua.validate(); err != nil {
		return nil, err
	}
	if err := cfg.Sync.validate(); err != nil {
		return nil, err
	}
	if err := cfg.Events.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadSchedulerConfig loads configuration for the scheduler program
func LoadSchedulerConfig(configFile string, envPath string) (*SchedulerConfig, error) {
	v := configureViper("scheduler", configFile, envPath)

	setSyncDefaults(v)
	setTemporalDefaults(v)
	v.SetDefault("schedule.inbound_at", "01:00")
	v.SetDefault("schedule.outbound_at", "03:00")
	v.SetDefault("schedule.check_interval", "1m")

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg SchedulerConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Sync.validate(); err != nil {
		return nil, err
	}
	for key, at := range map[string]string{"schedule.inbound_at": cfg.Schedule.InboundAt, "schedule.outbound_at": cfg.Schedule.OutboundAt} {
		if _, err := time.Parse("15:04", at); err != nil {
			return nil, fmt.Errorf("%s must be HH:MM: %w", key, err)
		}
	}

	return &cfg, nil
}

// readConfig reads the config file; a missing file leaves environment variables and defaults
func readConfig(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}
	return nil
}

func (c StoreConfig) validate() error {
	switch c.Driver {
	case StoreDriverPostgres:
		if c.Database.Host == "" {
			return errors.New("database.host is required")
		}
		if c.Database.DBName == "" {
			return errors.New("database.dbname is required")
		}
	case StoreDriverMongo:
		if c.Mongo.URI == "" {
			return errors.New("mongo.uri is required")
		}
		if c.Mongo.Database == "" {
			return errors.New("mongo.database is required")
		}
	default:
		return fmt.Errorf("unsupported store_driver %q", c.Driver)
	}
	return nil
}

func (c EloquaConfig) validate() error {
	if c.BaseURL == "" {
		return errors.New("eloqua.base_url is required")
	}
	if c.User == "" || c.Password == "" {
		return errors.New("eloqua.user and eloqua.password are required")
	}
	return nil
}

func (c SyncConfig) validate() error {
	if len(c.Regions) == 0 {
		return errors.New("sync.regions must not be empty")
	}
	for _, r := range c.Regions {
		if err := r.Validate(); err != nil {
			return fmt.Errorf("sync.regions: %w", err)
		}
	}
	if c.JoinedViewScope != JoinedViewScopeGlobal && c.JoinedViewScope != JoinedViewScopeRegion {
		return fmt.Errorf("sync.joined_view_scope must be %q or %q", JoinedViewScopeGlobal, JoinedViewScopeRegion)
	}
	return nil
}

func (c EventsConfig) validate() error {
	switch c.Provider {
	case "":
	case EventsProviderNATS:
		if c.NATS.URL == "" {
			return errors.New("events.nats.url is required")
		}
	case EventsProviderKafka:
		if len(c.Kafka.Brokers) == 0 {
			return errors.New("events.kafka.brokers is required")
		}
	default:
		return fmt.Errorf("unsupported events.provider %q", c.Provider)
	}
	return nil
}

// configureViper returns a viper instance with the config file and environment variables set
func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	loadEnv(envPath, service)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(filepath.Join("cmd", service))
		v.AddConfigPath("config")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindAllEnvVars(v)

	return v
}

// bindAllEnvVars binds every nested key so Unmarshal sees environment overrides
func bindAllEnvVars(v *viper.Viper) {
	keys := []string{
		"debug",
		"sentry_dsn",
		"metrics_addr",
		// Store
		"store_driver",
		"database.host",
		"database.port",
		"database.read_host",
		"database.read_port",
		"database.user",
		"database.password",
		"database.dbname",
		"database.sslmode",
		"database.max_open_conns",
		"database.max_idle_conns",
		"database.conn_max_lifetime",
		"database.conn_max_idle_time",
		"mongo.uri",
		"mongo.database",
		"mongo.timeout",
		// Eloqua
		"eloqua.base_url",
		"eloqua.company",
		"eloqua.user",
		"eloqua.password",
		"eloqua.timeout",
		"eloqua.sync_limit",
		"eloqua.page_size",
		"eloqua.poll_interval",
		"eloqua.poll_timeout",
		"eloqua.import_chunk_size",
		"eloqua.activity_cdo_id",
		"eloqua.institution_cdo_id",
		// Sync
		"sync.stage_joins",
		"sync.joined_view_scope",
		"sync.page_view_workers",
		"sync.activity_types",
		"sync.lock_ttl",
		// Redis and rate limiting
		"redis.addr",
		"redis.password",
		"redis.db",
		"rate_limit.requests_per_second",
		"rate_limit.burst",
		"rate_limit.key_prefix",
		// Temporal
		"temporal.host_port",
		"temporal.namespace",
		"temporal.task_queue",
		"temporal.max_concurrent_activity_execution_size",
		"temporal.worker_activities_per_second",
		"temporal.max_concurrent_activity_task_pollers",
		// Events
		"events.provider",
		"events.nats.url",
		"events.nats.stream_name",
		"events.nats.max_reconnects",
		"events.nats.reconnect_wait",
		"events.nats.connection_name",
		"events.kafka.brokers",
		"events.kafka.topic",
		"events.kafka.batch_timeout",
		// Server
		"server.host",
		"server.port",
		"server.read_timeout",
		"server.write_timeout",
		"server.idle_timeout",
		"server.allow_origins",
		// Auth
		"auth.username",
		"auth.password",
		"auth.jwt_public_key",
		"auth.api_keys",
		// Scheduler
		"schedule.inbound_at",
		"schedule.outbound_at",
		"schedule.check_interval",
	}

	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string, service string) {
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		_ = godotenv.Overload(filepath.Join(envPath, envFile))
	}
}

// ChdirRepoRoot changes the current working directory to the repository root
func ChdirRepoRoot() {
	cwd, _ := os.Getwd()
	for range 5 {
		if _, err := os.Stat(filepath.Join(cwd, "config")); err == nil {
			_ = os.Chdir(cwd)
			return
		}
		cwd = filepath.Dir(cwd)
	}
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// ReadDSN returns the read-replica connection string, falling back to Port when ReadPort is unset
func (c *DatabaseConfig) ReadDSN() string {
	port := c.ReadPort
	if port == 0 {
		port = c.Port
	}

	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.ReadHost, port, c.User, c.Password, c.DBName, c.SSLMode)
}
