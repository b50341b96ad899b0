package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config is built once at startup and passed by value into the parts that
// need it. Nothing reads the environment after Load returns.
type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	SMTP          SMTPConfig
	FeatureFlags  FeatureFlagsConfig
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
	Env          string `envconfig:"LISTYGO_APP_ENV" required:"true"`
	Port         string `envconfig:"LISTYGO_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"LISTYGO_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"LISTYGO_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"LISTYGO_DB_DSN"`
	Driver string `envconfig:"LISTYGO_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"LISTYGO_DB_HOST"`
	Port     int    `envconfig:"LISTYGO_DB_PORT" default:"5432"`
	User     string `envconfig:"LISTYGO_DB_USER"`
	Password string `envconfig:"LISTYGO_DB_PASSWORD"`
	Name     string `envconfig:"LISTYGO_DB_NAME"`
	SSLMode  string `envconfig:"LISTYGO_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"LISTYGO_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"LISTYGO_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"LISTYGO_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"LISTYGO_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"LISTYGO_REDIS_URL"`
	Address      string        `envconfig:"LISTYGO_REDIS_ADDR"`
	Password     string        `envconfig:"LISTYGO_REDIS_PASSWORD"`
	DB           int           `envconfig:"LISTYGO_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"LISTYGO_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"LISTYGO_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"LISTYGO_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"LISTYGO_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"LISTYGO_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"LISTYGO_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"LISTYGO_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"LISTYGO_JWT_EXPIRATION_MINUTES" required:"true"`
	CookieExpireDays  int    `envconfig:"LISTYGO_JWT_COOKIE_EXPIRE_DAYS" default:"30"`
}

// TokenTTL is the access token lifetime.
func (j JWTConfig) TokenTTL() time.Duration {
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

// CookieTTL is the token cookie lifetime, configured in whole days.
func (j JWTConfig) CookieTTL() time.Duration {
	return time.Duration(j.CookieExpireDays) * 24 * time.Hour
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"LISTYGO_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"LISTYGO_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"LISTYGO_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"LISTYGO_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"LISTYGO_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"LISTYGO_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"LISTYGO_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"LISTYGO_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"LISTYGO_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"LISTYGO_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"LISTYGO_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type SMTPConfig struct {
	Host       string `envconfig:"LISTYGO_SMTP_HOST"`
	Port       int    `envconfig:"LISTYGO_SMTP_PORT" default:"587"`
	Username   string `envconfig:"LISTYGO_SMTP_USERNAME"`
	Password   string `envconfig:"LISTYGO_SMTP_PASSWORD"`
	From       string `envconfig:"LISTYGO_SMTP_FROM" default:"support@listygo.dev"`
	AdminEmail string `envconfig:"LISTYGO_ADMIN_EMAIL"`
}

// Enabled reports whether the mailer has enough configuration to send.
func (s SMTPConfig) Enabled() bool {
	return s.Host != ""
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"LISTYGO_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}
	if strings.EqualFold(db.Driver, DriverSQLite) {
		return fmt.Errorf("%s is required when using the sqlite driver", EnvDBDSN)
	}

	missing := []string{}
	values := map[string]string{
		EnvDBHost: db.Host,
		EnvDBUser: db.User,
		EnvDBName: db.Name,
	}
	for _, env := range requiredDBEnvVars {
		if values[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}

	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
