package config

import (
	"fmt"
	"strings"
)

type ServerConfig struct {
	Host                string `mapstructure:"host"`
	Port                int    `mapstructure:"port"`
	Mode                string `mapstructure:"mode"`
	Timezone            string `mapstructure:"timezone"`
	ReadTimeoutSeconds  int    `mapstructure:"read_timeout_seconds"`
	WriteTimeoutSeconds int    `mapstructure:"write_timeout_seconds"`

	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

const (
	DriverSQLite   = "sqlite"
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

type DatabaseConfig struct {
	Driver          string `mapstructure:"driver"`
	Path            string `mapstructure:"path"`
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
	LogQueries      bool   `mapstructure:"log_queries"`

	// MigrationStrategy is one of goose, golang_migrate or gorm_auto_migrate.
	MigrationStrategy string `mapstructure:"migration_strategy"`
}

// GetDSN returns the driver-specific connection string.
func (d *DatabaseConfig) GetDSN() string {
	switch strings.ToLower(d.Driver) {
	case DriverMySQL:
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			d.Username, d.Password, d.Host, d.Port, d.Database)
	case DriverPostgres:
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
			d.Host, d.Port, d.Username, d.Password, d.Database)
	default:
		path := d.Path
		if path == "" {
			path = "tracker.db"
		}
		return fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", path)
	}
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type PasswordConfig struct {
	BcryptCost int `mapstructure:"bcrypt_cost"`
}

type JWTConfig struct {
	Secret           string `mapstructure:"secret"`
	AccessExpMinutes int    `mapstructure:"access_exp_minutes"`
}

type AuthConfig struct {
	Password PasswordConfig `mapstructure:"password"`
	JWT      JWTConfig      `mapstructure:"jwt"`

	// LoginRateLimit caps login attempts per client IP per minute. It only
	// applies when Redis is enabled; zero disables it.
	LoginRateLimit int `mapstructure:"login_rate_limit"`
}

type TicketConfig struct {
	NumberPrefix      string `mapstructure:"number_prefix"`
	NumberMaxAttempts int    `mapstructure:"number_max_attempts"`
	AuditDefaultLimit int    `mapstructure:"audit_default_limit"`
}

const (
	StorageBackendLocal = "local"
	StorageBackendS3    = "s3"
)

type S3Config struct {
	Bucket       string `mapstructure:"bucket"`
	Region       string `mapstructure:"region"`
	Endpoint     string `mapstructure:"endpoint"`
	AccessKey    string `mapstructure:"access_key"`
	SecretKey    string `mapstructure:"secret_key"`
	UsePathStyle bool   `mapstructure:"use_path_style"`
	KeyPrefix    string `mapstructure:"key_prefix"`
}

type StorageConfig struct {
	Backend           string   `mapstructure:"backend"`
	LocalDir          string   `mapstructure:"local_dir"`
	S3                S3Config `mapstructure:"s3"`
	MaxUploadBytes    int64    `mapstructure:"max_upload_bytes"`
	AllowedExtensions []string `mapstructure:"allowed_extensions"`
}

type RedisConfig struct {
	Enabled         bool   `mapstructure:"enabled"`
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Password        string `mapstructure:"password"`
	DB              int    `mapstructure:"db"`
	StatsTTLSeconds int    `mapstructure:"stats_ttl_seconds"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type BrokerConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	URL     string `mapstructure:"url"`
	Queue   string `mapstructure:"queue"`
}

type PermissionConfig struct {
	Enabled      bool `mapstructure:"enabled"`
	SeedDefaults bool `mapstructure:"seed_defaults"`
}
