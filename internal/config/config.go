package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
)

var (
	// ErrReadConfig is returned when the config file cannot be read
	ErrReadConfig = errors.New("config: failed to read file")

	// ErrParseConfig is returned when the file is not valid TOML
	ErrParseConfig = errors.New("config: failed to parse file")

	// ErrInvalidConfig is returned when a value fails validation
	ErrInvalidConfig = errors.New("config: invalid value")
)

// Storage drivers
const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

// Notification delivery modes
const (
	NotificationModeInline   = "inline"
	NotificationModeQueue    = "queue"
	NotificationModeDisabled = "disabled"
)

// Config is the whole service configuration, loaded once at startup
type Config struct {
	Server        ServerConfig        `toml:"server"`
	Database      DatabaseConfig      `toml:"database"`
	Storage       StorageConfig       `toml:"storage"`
	Logs          LogsConfig          `toml:"logs"`
	Metrics       MetricsConfig       `toml:"metrics"`
	Auth          AuthConfig          `toml:"auth"`
	RateLimit     RateLimitConfig     `toml:"rate_limit"`
	Booking       BookingConfig       `toml:"booking"`
	Notifications NotificationsConfig `toml:"notifications"`
	Email         EmailConfig         `toml:"email"`
	AuthAdmin     AuthAdminConfig     `toml:"auth_admin"`
	Redis         RedisConfig         `toml:"redis"`
}

// ServerConfig timeouts are in seconds
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // seconds
}

// DSN builds a lib/pq connection string
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// StorageConfig selects the ledger backend. "memory" is meant for local runs and tests.
type StorageConfig struct {
	Driver string `toml:"driver"`
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// AuthConfig holds the shared secret used by the hosted auth provider to sign access tokens
type AuthConfig struct {
	JWTSecret string `toml:"jwt_secret"`
	Issuer    string `toml:"issuer"`
}

type RateLimitConfig struct {
	Enabled           bool    `toml:"enabled"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
	Burst             int     `toml:"burst"`
	// TrustedProxies are IPs or CIDRs whose X-Forwarded-For header is honoured
	TrustedProxies []string `toml:"trusted_proxies"`
	MaxClients     int      `toml:"max_clients"`
}

// BookingConfig toggles optional write-side checks
type BookingConfig struct {
	EnforceSchedule bool `toml:"enforce_schedule"`
	RejectPastDates bool `toml:"reject_past_dates"`
}

type NotificationsConfig struct {
	Mode    string `toml:"mode"`
	Timeout int    `toml:"timeout"` // seconds per delivery
	Channel string `toml:"channel"`
	AppURL  string `toml:"app_url"`
}

type EmailConfig struct {
	BaseURL      string `toml:"base_url"`
	APIKey       string `toml:"api_key"`
	From         string `toml:"from"`          // booking e-mails
	MessagesFrom string `toml:"messages_from"` // chat message e-mails
	Timeout      int    `toml:"timeout"`
}

type AuthAdminConfig struct {
	URL            string `toml:"url"`
	ServiceRoleKey string `toml:"service_role_key"`
	Timeout        int    `toml:"timeout"`
}

type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

var envPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Load reads the TOML file at path, expands ${VAR} references, applies defaults and validates
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadConfig, path, err)
	}
	return Parse(string(raw))
}

// Parse is Load without the file read
func Parse(data string) (*Config, error) {
	expanded := envPattern.ReplaceAllStringFunc(data, func(m string) string {
		name := envPattern.FindStringSubmatch(m)[1]
		return os.Getenv(name)
	})

	cfg := &Config{}
	if _, err := toml.Decode(expanded, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseConfig, err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 15
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 30
	}

	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 25
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 300
	}

	if c.Storage.Driver == "" {
		c.Storage.Driver = StorageDriverPostgres
	}

	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}

	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "booking-service"
	}

	if c.RateLimit.RequestsPerSecond == 0 {
		c.RateLimit.RequestsPerSecond = 10
	}
	if c.RateLimit.Burst == 0 {
		c.RateLimit.Burst = 20
	}
	if c.RateLimit.MaxClients == 0 {
		c.RateLimit.MaxClients = 10000
	}

	if c.Notifications.Mode == "" {
		c.Notifications.Mode = NotificationModeInline
	}
	if c.Notifications.Timeout == 0 {
		c.Notifications.Timeout = 10
	}
	if c.Notifications.Channel == "" {
		c.Notifications.Channel = "booking-notifications"
	}

	if c.Email.BaseURL == "" {
		c.Email.BaseURL = "https://api.resend.com"
	}
	if c.Email.From == "" {
		c.Email.From = "Terapie.md <bookings@terapie.md>"
	}
	if c.Email.MessagesFrom == "" {
		c.Email.MessagesFrom = "Terapie.md <messages@terapie.md>"
	}
	if c.Email.Timeout == 0 {
		c.Email.Timeout = 10
	}

	if c.AuthAdmin.Timeout == 0 {
		c.AuthAdmin.Timeout = 5
	}

	if c.Redis.Addr == "" {
		c.Redis.Addr = "localhost:6379"
	}
}

// Validate checks values that defaults cannot fix
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port=%d", ErrInvalidConfig, c.Server.HTTPPort)
	}

	switch c.Storage.Driver {
	case StorageDriverPostgres:
		if c.Database.Host == "" || c.Database.DBName == "" {
			return fmt.Errorf("%w: database.host and database.dbname are required for the postgres driver", ErrInvalidConfig)
		}
	case StorageDriverMemory:
	default:
		return fmt.Errorf("%w: storage.driver=%q", ErrInvalidConfig, c.Storage.Driver)
	}

	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		return fmt.Errorf("%w: auth.jwt_secret is required", ErrInvalidConfig)
	}

	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerSecond < 0 || c.RateLimit.Burst < 1) {
		return fmt.Errorf("%w: rate_limit requires a positive rate and burst", ErrInvalidConfig)
	}
	for _, proxy := range c.RateLimit.TrustedProxies {
		if !validProxy(proxy) {
			return fmt.Errorf("%w: rate_limit.trusted_proxies entry %q is not an IP or CIDR", ErrInvalidConfig, proxy)
		}
	}

	switch c.Notifications.Mode {
	case NotificationModeInline, NotificationModeQueue:
		if c.Email.APIKey == "" {
			return fmt.Errorf("%w: email.api_key is required when notifications are enabled", ErrInvalidConfig)
		}
		if c.AuthAdmin.URL == "" || c.AuthAdmin.ServiceRoleKey == "" {
			return fmt.Errorf("%w: auth_admin.url and auth_admin.service_role_key are required when notifications are enabled", ErrInvalidConfig)
		}
	case NotificationModeDisabled:
	default:
		return fmt.Errorf("%w: notifications.mode=%q", ErrInvalidConfig, c.Notifications.Mode)
	}

	return nil
}

func validProxy(entry string) bool {
	if strings.Contains(entry, "/") {
		_, _, err := net.ParseCIDR(entry)
		return err == nil
	}
	return net.ParseIP(entry) != nil
}
