package config

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	sslModeDisable = "disable"
	sslModeRequire = "require"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type (
	Config struct {
		Host     string `mapstructure:"HOST"`
		Port     string `mapstructure:"PORT"`
		GRPCPort string `mapstructure:"GRPC_PORT"`

		DBDriver       string `mapstructure:"DB_DRIVER"`
		DBDSN          string `mapstructure:"DB_DSN"`
		DBHost         string `mapstructure:"DB_HOST"`
		DBPort         string `mapstructure:"DB_PORT"`
		DBUser         string `mapstructure:"DB_USER"`
		DBPassword     string `mapstructure:"DB_PASSWORD"`
		DBName         string `mapstructure:"DB_NAME"`
		DBSSLMode      string `mapstructure:"DB_SSL_MODE"`
		DBPath         string `mapstructure:"DB_PATH"`
		DBAutoMigrate  bool   `mapstructure:"DB_AUTO_MIGRATE"`
		DBMaxOpenConns int    `mapstructure:"DB_MAX_OPEN_CONNS"`
		DBMaxIdleConns int    `mapstructure:"DB_MAX_IDLE_CONNS"`
		DBLogLevel     string `mapstructure:"DB_LOG_LEVEL"`

		TokenValidationURL     string        `mapstructure:"TOKEN_VALIDATION_URL"`
		TokenValidationTimeout time.Duration `mapstructure:"TOKEN_VALIDATION_TIMEOUT"`

		S3Bucket    string `mapstructure:"S3_BUCKET"`
		S3Region    string `mapstructure:"S3_REGION"`
		S3Endpoint  string `mapstructure:"S3_ENDPOINT"`
		S3AccessKey string `mapstructure:"S3_ACCESS_KEY"`
		S3SecretKey string `mapstructure:"S3_SECRET_KEY"`

		LogLevel       string `mapstructure:"LOG_LEVEL"`
		LogDevelopment bool   `mapstructure:"LOG_DEVELOPMENT"`

		HealthInterval time.Duration `mapstructure:"HEALTH_INTERVAL"`
	}
)

var defaults = map[string]interface{}{
	"HOST":      "0.0.0.0",
	"PORT":      "1323",
	"GRPC_PORT": "9000",

	"DB_DRIVER":         DriverPostgres,
	"DB_DSN":            "",
	"DB_HOST":           "0.0.0.0",
	"DB_PORT":           "5432",
	"DB_USER":           "user",
	"DB_PASSWORD":       "password",
	"DB_NAME":           "db",
	"DB_SSL_MODE":       sslModeDisable,
	"DB_PATH":           "kochrezepte.db",
	"DB_AUTO_MIGRATE":   true,
	"DB_MAX_OPEN_CONNS": 10,
	"DB_MAX_IDLE_CONNS": 5,
	"DB_LOG_LEVEL":      "warn",

	"TOKEN_VALIDATION_URL":     "",
	"TOKEN_VALIDATION_TIMEOUT": 5 * time.Second,

	"S3_BUCKET":     "",
	"S3_REGION":     "eu-central-1",
	"S3_ENDPOINT":   "",
	"S3_ACCESS_KEY": "",
	"S3_SECRET_KEY": "",

	"LOG_LEVEL":       "info",
	"LOG_DEVELOPMENT": false,

	"HEALTH_INTERVAL": 15 * time.Second,
}

func NewConfig() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("KOCHREZEPTE")

	for key, value := range defaults {
		v.SetDefault(key, value)
		if err := v.BindEnv(key); err != nil {
			return nil, err
		}
	}

	cfg := Config{}
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := validate(&cfg); err != nil {
		return nil, errors.Wrap(err, "config validation failed")
	}

	return &cfg, nil
}

// PostgresDSN returns DB_DSN when set, otherwise a DSN assembled from the DB_* parts.
func (c *Config) PostgresDSN() string {
	if c.DBDSN != "" {
		return c.DBDSN
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode)
}

func validate(cfg *Config) error {
	if cfg.DBDriver != DriverPostgres && cfg.DBDriver != DriverSQLite {
		return errors.New(fmt.Sprintf("DB driver is invalid: %s", cfg.DBDriver))
	}
	validSSLValues := []string{sslModeDisable, sslModeRequire}
	for _, validValue := range validSSLValues {
		if cfg.DBSSLMode == validValue {
			return nil
		}
	}
	return errors.New(fmt.Sprintf("DB SSL mode is invalid: %s", cfg.DBSSLMode))
}
