package config // package config loads application configuration from environment variables

import (
	"log"
	"os"
	"strconv"
	"time"
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  Strings for identifiers and secrets, ints for
// durations.
type Config struct {
	Env          string // application environment (e.g. "dev", "prod")
	Port         string // HTTP port to listen on
	DBUser       string // database username
	DBPass       string // database password (optional)
	DBHost       string // database host address
	DBPort       string // database port number
	DBName       string // database name
	JWTSecret    string // secret used to sign JWTs
	AccessTTLMin int    // access token time-to-live in minutes

	DBMaxOpenConns int           // connection pool ceiling
	DBMaxIdleConns int           // idle connections kept in the pool
	DBConnLifetime time.Duration // max lifetime of a pooled connection

	SMTPHost string // SMTP relay host; empty disables outbound mail
	SMTPPort int    // SMTP relay port
	SMTPUser string // SMTP username (optional)
	SMTPPass string // SMTP password (optional)
	SMTPFrom string // From address on booking confirmations
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.
func Load() Config {
	smtpPort := 587
	if s := os.Getenv("SMTP_PORT"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			smtpPort = n
		}
	}
	return Config{
		Env:          must("APP_ENV"),
		Port:         must("APP_PORT"),
		DBUser:       must("DB_USER"),
		DBPass:       os.Getenv("DB_PASS"), // empty allowed
		DBHost:       must("DB_HOST"),
		DBPort:       must("DB_PORT"),
		DBName:       must("DB_NAME"),
		JWTSecret:    must("JWT_SECRET"),
		AccessTTLMin: mustInt("ACCESS_TOKEN_TTL_MIN"),

		DBMaxOpenConns: atoi(getenv("DB_MAX_OPEN_CONNS", "25")),
		DBMaxIdleConns: atoi(getenv("DB_MAX_IDLE_CONNS", "25")),
		DBConnLifetime: parseDur(getenv("DB_CONN_LIFETIME", "30m")),
		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     smtpPort,
		SMTPUser:     os.Getenv("SMTP_USER"),
		SMTPPass:     os.Getenv("SMTP_PASS"),
		SMTPFrom:     getenv("SMTP_FROM", "bookings@localhost"),
	}
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the retrieved string into an integer.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}
