package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection,
//   identity secret)
// - default: Values common across all environments (radius, intervals,
//   timeouts)
// -----------------------------------------------------------------------------

type Config struct {
	Server    ServerConfig
	DB        DBConfig
	CORS      CORSConfig
	Log       LogConfig
	Identity  IdentityConfig
	Discovery DiscoveryConfig
	Sweep     SweepConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"Europe/Istanbul"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level      string `envconfig:"LOG_LEVEL" default:"info"`
	TimeFormat string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
}

// IdentityConfig holds the shared secret for tokens issued by the external
// identity provider. The core validates the signature and trusts the claims;
// it never issues or refreshes credentials itself.
type IdentityConfig struct {
	TokenSecret string `envconfig:"IDENTITY_TOKEN_SECRET" required:"true"`
}

type DiscoveryConfig struct {
	// Applied when a client does not send an explicit radius.
	DefaultRadiusMeters float64 `envconfig:"DISCOVERY_DEFAULT_RADIUS_METERS" default:"5000"`
	MaxRadiusMeters     float64 `envconfig:"DISCOVERY_MAX_RADIUS_METERS" default:"50000"`
}

type SweepConfig struct {
	Interval         time.Duration `envconfig:"SWEEP_INTERVAL" default:"1m"`
	DispatchInterval time.Duration `envconfig:"NOTIFY_DISPATCH_INTERVAL" default:"5s"`
	DispatchBatch    int32         `envconfig:"NOTIFY_DISPATCH_BATCH" default:"100"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889",
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433",
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "Europe/Istanbul",
		},
		Log: LogConfig{
			Level:      "error",
			TimeFormat: "2006-01-02 15:04:05.000",
		},
		Identity: IdentityConfig{
			TokenSecret: "test-secret",
		},
		Discovery: DiscoveryConfig{
			DefaultRadiusMeters: 5000,
			MaxRadiusMeters:     50000,
		},
		Sweep: SweepConfig{
			Interval:         time.Minute,
			DispatchInterval: 5 * time.Second,
			DispatchBatch:    100,
		},
	}
}
