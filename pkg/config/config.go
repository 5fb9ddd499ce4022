package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	// EnvPrefix scopes every environment variable the backend reads.
	EnvPrefix = "RECOVERY"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "RECOVERY_DB_DSN"
	EnvDBHost = "RECOVERY_DB_HOST"
	EnvDBUser = "RECOVERY_DB_USER"
	EnvDBName = "RECOVERY_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Admin         AdminConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	Stripe        StripeConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	if err := cfg.Admin.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"RECOVERY_APP_ENV" required:"true"`
	Port         string `envconfig:"RECOVERY_APP_PORT" default:"5000"`
	LogLevel     string `envconfig:"RECOVERY_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"RECOVERY_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"RECOVERY_DB_DSN"`
	Driver string `envconfig:"RECOVERY_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"RECOVERY_DB_HOST"`
	LegacyPort     int    `envconfig:"RECOVERY_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"RECOVERY_DB_USER"`
	LegacyPassword string `envconfig:"RECOVERY_DB_PASSWORD"`
	LegacyName     string `envconfig:"RECOVERY_DB_NAME"`
	LegacySSLMode  string `envconfig:"RECOVERY_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"RECOVERY_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"RECOVERY_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"RECOVERY_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"RECOVERY_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"RECOVERY_REDIS_URL" required:"true"`
	Address      string        `envconfig:"RECOVERY_REDIS_ADDR"`
	Password     string        `envconfig:"RECOVERY_REDIS_PASSWORD"`
	DB           int           `envconfig:"RECOVERY_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"RECOVERY_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"RECOVERY_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"RECOVERY_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"RECOVERY_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"RECOVERY_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"RECOVERY_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"RECOVERY_JWT_ISSUER" default:"recovery-backend"`
	ExpirationMinutes int    `envconfig:"RECOVERY_JWT_EXPIRATION_MINUTES" default:"1440"`
}

// AdminConfig holds the single admin credential. The backend has no user
// table; every privileged route checks the token's email against this value.
type AdminConfig struct {
	Email        string `envconfig:"RECOVERY_ADMIN_EMAIL" required:"true"`
	PasswordHash string `envconfig:"RECOVERY_ADMIN_PASSWORD_HASH"`
	Password     string `envconfig:"RECOVERY_ADMIN_PASSWORD"`
}

func (a AdminConfig) validate() error {
	if a.PasswordHash == "" && a.Password == "" {
		return fmt.Errorf("either RECOVERY_ADMIN_PASSWORD_HASH or RECOVERY_ADMIN_PASSWORD is required")
	}
	return nil
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"RECOVERY_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"RECOVERY_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"RECOVERY_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"RECOVERY_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"RECOVERY_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow     time.Duration `envconfig:"RECOVERY_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit int           `envconfig:"RECOVERY_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit    int           `envconfig:"RECOVERY_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"RECOVERY_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"RECOVERY_AUTO_MIGRATE" default:"false"`
}

type StripeConfig struct {
	APIKey        string        `envconfig:"RECOVERY_STRIPE_API_KEY"`
	WebhookSecret string        `envconfig:"RECOVERY_STRIPE_WEBHOOK_SECRET"`
	Env           string        `envconfig:"RECOVERY_STRIPE_ENV" default:"test"`
	WebhookTTL    time.Duration `envconfig:"RECOVERY_STRIPE_WEBHOOK_IDEMPOTENCY_TTL" default:"72h"`
}

// Configured reports whether the Stripe integration can be booted. When it is
// not, donation and booking flows fall back to mock intents.
func (s StripeConfig) Configured() bool {
	return strings.TrimSpace(s.APIKey) != ""
}

// Environment returns the normalized Stripe environment (test/live).
func (s StripeConfig) Environment() string {
	env := strings.TrimSpace(strings.ToLower(s.Env))
	if env == "" {
		return "test"
	}
	return env
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
