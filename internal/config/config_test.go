package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/interviews")

	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, ":3000", cfg.ServerAddr)
	assert.Equal(t, 5, cfg.QuestionsCfg.CacheThreshold)
	assert.Equal(t, 20, cfg.QuestionsCfg.RetentionCap)
	assert.Equal(t, "/chat/completions", cfg.LLMConnectorCfg.ChatEndpoint)
	assert.Equal(t, 60*time.Second, cfg.LLMConnectorCfg.RequestTimeout)
	assert.Equal(t, 5*time.Minute, cfg.CacheCfg.TTL)
	assert.Empty(t, cfg.RedisCfg.Addr)
	assert.True(t, cfg.SeedDefaultCases)
	assert.Equal(t, uint(3), cfg.DBTxRetry.Attempts)
}

func TestParseRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	_, err := Parse()
	assert.Error(t, err)
}

func TestParseOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://db/interviews")
	t.Setenv("LLM_TOKEN", "sk-test")
	t.Setenv("LLM_MODEL", "gpt-4o-mini")
	t.Setenv("QUESTIONS_CACHE_THRESHOLD", "3")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, "sk-test", cfg.LLMConnectorCfg.Token)
	assert.Equal(t, "gpt-4o-mini", cfg.LLMConnectorCfg.Model)
	assert.Equal(t, 3, cfg.QuestionsCfg.CacheThreshold)
	assert.Equal(t, "localhost:6379", cfg.RedisCfg.Addr)
}

func TestParseValidation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{
			name: "threshold above cap",
			env:  map[string]string{"QUESTIONS_CACHE_THRESHOLD": "30"},
			want: "QUESTIONS_CACHE_THRESHOLD",
		},
		{
			name: "non positive cap",
			env:  map[string]string{"QUESTIONS_RETENTION_CAP": "0"},
			want: "QUESTIONS_RETENTION_CAP",
		},
		{
			name: "too many connections",
			env:  map[string]string{"DB_MAX_CONNS": "500"},
			want: "DB_MAX_CONNS",
		},
		{
			name: "min above max connections",
			env:  map[string]string{"DB_MAX_CONNS": "4", "DB_MIN_CONNS": "5"},
			want: "DB_MIN_CONNS",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DATABASE_URL", "postgres://db/interviews")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Parse()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestGetEnvFile(t *testing.T) {
	assert.Equal(t, ".env.prod", getEnvFile("production"))
	assert.Equal(t, ".env.local", getEnvFile("dev"))
	assert.Equal(t, ".env.staging", getEnvFile("staging"))
}
