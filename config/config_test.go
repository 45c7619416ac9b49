package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"serviceorders/services"
)

func TestLoad(t *testing.T) {
	t.Run("loads default values when env vars not set", func(t *testing.T) {
		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "console", cfg.Log.Format)
		assert.Equal(t, "stdout", cfg.Log.Output)
		assert.True(t, cfg.Autosave.Enabled)
		assert.Equal(t, "* * * * *", cfg.Autosave.Cron)
		assert.Equal(t, services.DeductionsCountAsCost, cfg.Pricing.DeductionPolicy)
		assert.True(t, cfg.Seed.Enabled)
	})

	t.Run("environment overrides defaults", func(t *testing.T) {
		t.Setenv("FSO_APP_ENV", "production")
		t.Setenv("FSO_LOG_LEVEL", "debug")
		t.Setenv("FSO_AUTOSAVE_CRON", "*/5 * * * *")
		t.Setenv("FSO_PRICING_DEDUCTION_POLICY", "exclude")
		t.Setenv("FSO_SEED_ENABLED", "false")

		cfg, err := Load()
		require.NoError(t, err)

		assert.True(t, cfg.IsProduction())
		assert.Equal(t, "debug", cfg.Log.Level)
		assert.Equal(t, "json", cfg.Log.Format)
		assert.Equal(t, "*/5 * * * *", cfg.Autosave.Cron)
		assert.Equal(t, services.DeductionsExcludedFromCost, cfg.Pricing.DeductionPolicy)
		assert.False(t, cfg.Seed.Enabled)
	})
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		values map[string]any
	}{
		{"unknown policy", map[string]any{"pricing.deduction_policy": "sometimes"}},
		{"bad cron", map[string]any{"autosave.cron": "every minute"}},
		{"bad log format", map[string]any{"log.format": "xml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := viper.New()
			for k, val := range tt.values {
				v.Set(k, val)
			}
			_, err := fromViper(v)
			assert.Error(t, err)
		})
	}
}

func TestLoad_DisabledAutosaveSkipsCronCheck(t *testing.T) {
	v := viper.New()
	v.Set("autosave.enabled", false)
	v.Set("autosave.cron", "not a cron")

	cfg, err := fromViper(v)
	require.NoError(t, err)
	assert.False(t, cfg.Autosave.Enabled)
}
