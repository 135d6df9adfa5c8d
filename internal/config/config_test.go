package config

import (
	"os"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validate(t *testing.T) {
	strong := "secure-secret-at-least-32-chars-long"

	tests := []struct {
		name        string
		cfg         Config
		expectError bool
	}{
		{"Development defaults", Config{Port: "4000", JWTSecret: DefaultJWTSecret, DBDriver: "sqlite", DBPath: "db.sqlite"}, false},
		{"Missing port", Config{JWTSecret: strong, DBDriver: "sqlite", DBPath: "db.sqlite"}, true},
		{"Missing secret", Config{Port: "4000", DBDriver: "sqlite", DBPath: "db.sqlite"}, true},
		{"Sqlite without path", Config{Port: "4000", JWTSecret: strong, DBDriver: "sqlite"}, true},
		{"Postgres without url", Config{Port: "4000", JWTSecret: strong, DBDriver: "postgres"}, true},
		{"Postgres with url", Config{Port: "4000", JWTSecret: strong, DBDriver: "postgres", DatabaseURL: "postgres://localhost/ads"}, false},
		{"Unknown driver", Config{Port: "4000", JWTSecret: strong, DBDriver: "mysql"}, true},
		{"Bcrypt cost too low", Config{Port: "4000", JWTSecret: strong, DBPath: "db.sqlite", BcryptCost: 4}, true},
		{"Production default secret", Config{Env: "production", Port: "4000", JWTSecret: DefaultJWTSecret, DBPath: "db.sqlite"}, true},
		{"Production short secret", Config{Env: "prod", Port: "4000", JWTSecret: "short", DBPath: "db.sqlite"}, true},
		{"Production strong secret", Config{Env: "production", Port: "4000", JWTSecret: strong, DBPath: "db.sqlite"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	defer viper.Reset()

	t.Setenv("APP_ENV", "test")
	t.Setenv("PORT", "9999")
	t.Setenv("DB_DRIVER", "  SQLITE ")
	t.Setenv("DB_PATH", "/tmp/ads-test.sqlite")

	c, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "9999", c.Port)
	assert.Equal(t, "sqlite", c.DBDriver)
	assert.Equal(t, "/tmp/ads-test.sqlite", c.DBPath)
	assert.Equal(t, 24*7, c.TokenTTLHours)
	assert.Equal(t, 10, c.BcryptCost)
}

func TestLoadConfig_Defaults(t *testing.T) {
	defer viper.Reset()

	t.Setenv("APP_ENV", "test")
	for _, key := range []string{"PORT", "JWT_SECRET", "DB_PATH", "DB_DRIVER"} {
		if v, ok := os.LookupEnv(key); ok {
			defer os.Setenv(key, v)
			os.Unsetenv(key)
		}
	}

	c, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "4000", c.Port)
	assert.Equal(t, DefaultJWTSecret, c.JWTSecret)
	assert.Equal(t, "database.sqlite", c.DBPath)
	assert.False(t, c.IsProduction())
}
