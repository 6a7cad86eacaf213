// Package config loads the API configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

const PublicKeyEnv = "PUBLIC_KEY_BASE64"

type Postgres struct {
	User     string
	Password string
	Host     string
	DB       string
	SSLMode  string
}

// DSN returns the connection string understood by pgxpool.
func (p Postgres) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(p.User, p.Password),
		Host:     p.Host,
		Path:     "/" + p.DB,
		RawQuery: url.Values{"sslmode": {p.SSLMode}}.Encode(),
	}

	return u.String()
}

type JWT struct {
	Issuer   string
	Audience string
	// PublicKeyEnv names the variable holding the Base64 encoded verification key.
	PublicKeyEnv string
	// PublicKeyFile is a PEM file used instead of PublicKeyEnv when set.
	PublicKeyFile string
}

type Config struct {
	Port               int
	Postgres           Postgres
	JWT                JWT
	SignupInitialPoint int64
	BcryptCost         int
	OTLPEndpoint       string
	ShutdownTimeout    time.Duration
}

// Load reads envFiles, or .env when none are given, into the process environment
// without overriding variables already set, then builds a Config from it.
// Missing files are ignored.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}

	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	return FromEnv()
}

// FromEnv builds a Config from the process environment.
func FromEnv() (*Config, error) {
	port, err := getInt("PORT", 8080)
	if err != nil {
		return nil, err
	}

	initialPoint, err := getInt("SIGNUP_INITIAL_POINT", 0)
	if err != nil {
		return nil, err
	}
	if initialPoint < 0 {
		return nil, errors.New("SIGNUP_INITIAL_POINT must not be negative")
	}

	bcryptCost, err := getInt("BCRYPT_COST", bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		return nil, fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}

	shutdownTimeout, err := getDuration("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}

	return &Config{
		Port: port,
		Postgres: Postgres{
			User:     os.Getenv("POSTGRES_USER"),
			Password: os.Getenv("POSTGRES_PASSWORD"),
			Host:     os.Getenv("POSTGRES_HOST"),
			DB:       os.Getenv("POSTGRES_DB"),
			SSLMode:  getEnv("POSTGRES_SSL", "disable"),
		},
		JWT: JWT{
			Issuer:       os.Getenv("JWT_ISSUER"),
			Audience:     os.Getenv("JWT_AUDIENCE"),
			PublicKeyEnv:  PublicKeyEnv,
			PublicKeyFile: os.Getenv("PUBLIC_KEY_FILE"),
		},
		SignupInitialPoint: int64(initialPoint),
		BcryptCost:         bcryptCost,
		OTLPEndpoint:       os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		ShutdownTimeout:    shutdownTimeout,
	}, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}

	return fallback
}

func getInt(key string, fallback int) (int, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}

	return n, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}

	return d, nil
}
