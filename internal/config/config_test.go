package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "memory", cfg.Store.Driver)
	assert.True(t, cfg.Store.SeedDemoData)
	assert.Equal(t, "1.0", cfg.Business.DefaultMonthlyRate)
	assert.Equal(t, 5*time.Minute, cfg.Business.SummaryCacheTTL)
	assert.Equal(t, 3, cfg.Scheduler.ReminderWindowDays)
	assert.Equal(t, "gpt-4o-mini", cfg.External.OpenAIModel)
	assert.True(t, cfg.GetDefaultMonthlyRate().Equal(cfg.GetDefaultMonthlyRate()))
}

func TestLoad_EnvOnlyKeys(t *testing.T) {
	// These keys have no default; they must still reach the struct when only
	// the environment carries them.
	t.Setenv("STORE_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/billing?sslmode=disable")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("REDIS_PASSWORD", "hunter2")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "postgres://localhost:5432/billing?sslmode=disable", cfg.Store.DatabaseURL)
	assert.Equal(t, "sk-test", cfg.External.OpenAIAPIKey)
	assert.Equal(t, "hunter2", cfg.Redis.Password)
}

func TestLoad_PostgresRequiresDatabaseURL(t *testing.T) {
	t.Setenv("STORE_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	t.Setenv("STORE_DRIVER", "sqlite")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_RejectsBadRate(t *testing.T) {
	t.Setenv("DEFAULT_MONTHLY_RATE", "three percent")

	_, err := Load()
	assert.Error(t, err)
}
