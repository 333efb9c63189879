package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	FeatureFlags FeatureFlagsConfig
	Ledger       LedgerConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"ESTATE_APP_ENV" required:"true"`
	Port         string `envconfig:"ESTATE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"ESTATE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"ESTATE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"ESTATE_DB_DSN"`
	Driver string `envconfig:"ESTATE_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"ESTATE_DB_HOST"`
	LegacyPort     int    `envconfig:"ESTATE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"ESTATE_DB_USER"`
	LegacyPassword string `envconfig:"ESTATE_DB_PASSWORD"`
	LegacyName     string `envconfig:"ESTATE_DB_NAME"`
	LegacySSLMode  string `envconfig:"ESTATE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"ESTATE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"ESTATE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"ESTATE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"ESTATE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"ESTATE_REDIS_URL"`
	Address      string        `envconfig:"ESTATE_REDIS_ADDR"`
	Password     string        `envconfig:"ESTATE_REDIS_PASSWORD"`
	DB           int           `envconfig:"ESTATE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"ESTATE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"ESTATE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"ESTATE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"ESTATE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"ESTATE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"ESTATE_AUTO_MIGRATE" default:"false"`
}

// LedgerConfig tunes payment-ledger reads.
type LedgerConfig struct {
	SerialNoteWidth int `envconfig:"ESTATE_LEDGER_SERIAL_NOTE_WIDTH" default:"13"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
