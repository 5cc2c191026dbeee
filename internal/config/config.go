package config

import (
	"errors"
	"fmt"
	"log"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort string

	DBDriver   string
	DBDebug    bool
	SQLitePath string

	MySQLHost string
	MySQLPort string
	MySQLDB   string
	MySQLUser string
	MySQLPass string

	PostgresDSN string

	// Empty RedisAddr disables idempotent create and the login limiter.
	RedisAddr string
	RedisDB   int

	IdempTTLSecs int

	// SessionSecret signs session tokens. When empty a secret is generated once and
	// persisted in the settings table.
	SessionSecret string
	CookieSecure  bool

	// AdminPassword seeds the admin account on first boot only.
	AdminPassword string

	LoginMaxAttempts int
	LoginWindowSecs  int
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getint(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}

func getbool(k string, d bool) bool {
	if v := os.Getenv(k); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return d
}

// Load reads the environment, after merging an optional .env file.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("config: .env not loaded: %v", err)
	}
	return &Config{
		AppPort:    getenv("APP_PORT", "8080"),
		DBDriver:   strings.ToLower(getenv("DB_DRIVER", "sqlite")),
		DBDebug:    getbool("DB_DEBUG", false),
		SQLitePath: getenv("SQLITE_PATH", "preauth.db"),

		MySQLHost: getenv("MYSQL_HOST", "mysql"),
		MySQLPort: getenv("MYSQL_PORT", "3306"),
		MySQLDB:   getenv("MYSQL_DB", "preauth"),
		MySQLUser: getenv("MYSQL_USER", "preauth"),
		MySQLPass: getenv("MYSQL_PASS", "preauth"),

		PostgresDSN: getenv("POSTGRES_DSN", ""),

		RedisAddr:    getenv("REDIS_ADDR", ""),
		RedisDB:      getint("REDIS_DB", 0),
		IdempTTLSecs: getint("IDEMPOTENCY_TTL_SECONDS", 300),

		SessionSecret: getenv("SESSION_SECRET", ""),
		CookieSecure:  getbool("COOKIE_SECURE", true),
		AdminPassword: getenv("ADMIN_PASSWORD", "admin"),

		LoginMaxAttempts: getint("LOGIN_MAX_ATTEMPTS", 5),
		LoginWindowSecs:  getint("LOGIN_WINDOW_SECONDS", 900),
	}
}

func (c *Config) Validate() error {
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	switch c.DBDriver {
	case "sqlite":
		if c.SQLitePath == "" {
			return errors.New("missing SQLITE_PATH")
		}
	case "mysql":
		if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
			return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
		}
		// ensure port is valid
		if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
			return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
		}
	case "postgres":
		if c.PostgresDSN == "" {
			return errors.New("missing POSTGRES_DSN")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q (sqlite, mysql, postgres)", c.DBDriver)
	}
	if c.AdminPassword == "" {
		return errors.New("missing ADMIN_PASSWORD")
	}
	if c.LoginMaxAttempts <= 0 || c.LoginWindowSecs <= 0 {
		return errors.New("LOGIN_MAX_ATTEMPTS and LOGIN_WINDOW_SECONDS must be positive")
	}
	return nil
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// parseTime needed for DATETIME; loc=UTC matches the UTC timestamps we write
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&loc=UTC&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}

// DSN returns the connection string for the configured driver.
func (c *Config) DSN() string {
	switch c.DBDriver {
	case "mysql":
		return c.MySQLDSN()
	case "postgres":
		return c.PostgresDSN
	}
	return c.SQLitePath
}
