package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("APP", "notes")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("APP_PORT", "")
	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("TOKEN_TTL", "")
	t.Setenv("PASSWORD_SCHEME", "")
	t.Setenv("ADMIN_ROLE", "")

	cfg := LoadConfig()

	assert.Equal(t, AppNotes, cfg.App)
	assert.Equal(t, "8000", cfg.AppPort)
	assert.Equal(t, DriverFile, cfg.StorageDriver)
	assert.Equal(t, 15*time.Minute, cfg.TokenTTL)
	assert.Equal(t, SchemeArgon2id, cfg.PasswordScheme)
	assert.Equal(t, "admin", cfg.AdminRole)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("APP", "shop")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("TOKEN_TTL", "2h")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("IS_PROD", "true")
	t.Setenv("DB_USER", "u")
	t.Setenv("DB_PASSWORD", "p")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "3307")
	t.Setenv("DB_NAME", "records")

	cfg := LoadConfig()

	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.True(t, cfg.IsProd)
	assert.Equal(t, "u:p@tcp(db:3307)/records?parseTime=true", cfg.DSN())
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			App:            AppJobs,
			StorageDriver:  DriverFile,
			PasswordScheme: SchemeBcrypt,
			JWTSecret:      "secret",
			TokenTTL:       time.Minute,
		}
	}

	tests := []struct {
		name   string
		mutate func(c *Config)
		errMsg string
	}{
		{"valid", func(c *Config) {}, ""},
		{"unknown app", func(c *Config) { c.App = "wallet" }, "unknown APP"},
		{"unknown driver", func(c *Config) { c.StorageDriver = "mongo" }, "unknown STORAGE_DRIVER"},
		{"s3 without bucket", func(c *Config) { c.StorageDriver = DriverS3 }, "S3_BUCKET"},
		{"redis without addr", func(c *Config) { c.StorageDriver = DriverRedis }, "REDIS_ADDR"},
		{"unknown scheme", func(c *Config) { c.PasswordScheme = "md5" }, "PASSWORD_SCHEME"},
		{"missing secret", func(c *Config) { c.JWTSecret = "" }, "JWT_SECRET"},
		{"bad ttl", func(c *Config) { c.TokenTTL = 0 }, "TOKEN_TTL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}
