package config

import (
	"net/url"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var keys = []string{
	"PORT", "POSTGRES_USER", "POSTGRES_PASSWORD", "POSTGRES_HOST", "POSTGRES_DB", "POSTGRES_SSL",
	"JWT_ISSUER", "JWT_AUDIENCE", "PUBLIC_KEY_FILE", "SIGNUP_INITIAL_POINT", "BCRYPT_COST",
	"OTEL_EXPORTER_OTLP_ENDPOINT", "SHUTDOWN_TIMEOUT",
}

func TestFromEnv(t *testing.T) {
	cases := map[string]struct {
		env           map[string]string
		expected      *Config
		expectedError string
	}{
		"should apply defaults": {
			expected: &Config{
				Port:            8080,
				Postgres:        Postgres{SSLMode: "disable"},
				JWT:             JWT{PublicKeyEnv: PublicKeyEnv},
				BcryptCost:      bcrypt.DefaultCost,
				ShutdownTimeout: 10 * time.Second,
			},
		},
		"should read every variable": {
			env: map[string]string{
				"PORT":                        "9090",
				"POSTGRES_USER":               "meal",
				"POSTGRES_PASSWORD":           "secret",
				"POSTGRES_HOST":               "db:5432",
				"POSTGRES_DB":                 "mealserve",
				"POSTGRES_SSL":                "require",
				"JWT_ISSUER":                  "auth.example.com",
				"JWT_AUDIENCE":                "mealserve",
				"PUBLIC_KEY_FILE":             "/etc/mealserve/public.pem",
				"SIGNUP_INITIAL_POINT":        "1000",
				"BCRYPT_COST":                 "12",
				"OTEL_EXPORTER_OTLP_ENDPOINT": "otel:4317",
				"SHUTDOWN_TIMEOUT":            "30s",
			},
			expected: &Config{
				Port: 9090,
				Postgres: Postgres{
					User:     "meal",
					Password: "secret",
					Host:     "db:5432",
					DB:       "mealserve",
					SSLMode:  "require",
				},
				JWT: JWT{
					Issuer:        "auth.example.com",
					Audience:      "mealserve",
					PublicKeyEnv:  PublicKeyEnv,
					PublicKeyFile: "/etc/mealserve/public.pem",
				},
				SignupInitialPoint: 1000,
				BcryptCost:         12,
				OTLPEndpoint:       "otel:4317",
				ShutdownTimeout:    30 * time.Second,
			},
		},
		"should reject non numeric port": {
			env:           map[string]string{"PORT": "http"},
			expectedError: `invalid PORT "http": strconv.Atoi: parsing "http": invalid syntax`,
		},
		"should reject invalid shutdown timeout": {
			env:           map[string]string{"SHUTDOWN_TIMEOUT": "soon"},
			expectedError: `invalid SHUTDOWN_TIMEOUT "soon": time: invalid duration "soon"`,
		},
		"should reject negative initial point": {
			env:           map[string]string{"SIGNUP_INITIAL_POINT": "-1"},
			expectedError: "SIGNUP_INITIAL_POINT must not be negative",
		},
		"should reject bcrypt cost out of range": {
			env:           map[string]string{"BCRYPT_COST": "99"},
			expectedError: "BCRYPT_COST must be between 4 and 31",
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}

			cfg, err := FromEnv()

			if tc.expectedError != "" {
				assert.EqualError(t, err, tc.expectedError)
				assert.Nil(t, cfg)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expected, cfg)
		})
	}
}

func TestLoad(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	envFile := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte("PORT=7070\nPOSTGRES_DB=from_file\n"), 0o600))
	t.Setenv("POSTGRES_DB", "from_env")
	t.Cleanup(func() { _ = os.Unsetenv("PORT") })

	cfg, err := Load(envFile, filepath.Join(dir, "missing.env"))

	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Port)
	assert.Equal(t, "from_env", cfg.Postgres.DB)
}

func TestPostgres_DSN(t *testing.T) {
	cases := map[string]struct {
		postgres Postgres
		expected string
	}{
		"plain credentials": {
			postgres: Postgres{User: "meal", Password: "secret", Host: "db:5432", DB: "mealserve", SSLMode: "disable"},
			expected: "postgres://meal:secret@db:5432/mealserve?sslmode=disable",
		},
		"credentials with reserved characters": {
			postgres: Postgres{User: "meal", Password: "p@ss:w/rd?#", Host: "db:5432", DB: "mealserve", SSLMode: "require"},
			expected: "postgres://meal:p%40ss%3Aw%2Frd%3F%23@db:5432/mealserve?sslmode=require",
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			dsn := tc.postgres.DSN()
			assert.Equal(t, tc.expected, dsn)

			u, err := url.Parse(dsn)
			require.NoError(t, err)
			password, _ := u.User.Password()
			assert.Equal(t, tc.postgres.Password, password)
		})
	}
}

// clearEnv unsets every config variable for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()

	for _, k := range keys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}
