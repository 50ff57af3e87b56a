package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, ":50051", c.EndpointAddrGRPC)
	assert.Equal(t, ":8080", c.EndpointAddrHTTP)
	assert.Equal(t, DriverMemory, c.StorageDriver)
	assert.Equal(t, uint64(10_000), c.StepGoal)
	assert.Equal(t, uint64(30), c.ExerciseGoal)
	assert.Equal(t, uint64(150_000), c.MaxDailySteps)
	assert.Equal(t, uint64(1440), c.MaxExerciseMinutes)
	assert.Equal(t, 24*time.Hour, c.Cooldown)
	assert.Equal(t, 48*time.Hour, c.StreakWindow)
	assert.Equal(t, uint64(1000), c.StreakBonusBps)
	assert.Equal(t, uint64(7), c.MaxStreakBonusDays)
	assert.Equal(t, ExpiryRetain, c.ExpiryPolicy)
	assert.True(t, c.RequireUniqueIdentity)
	assert.False(t, c.StartPaused)
	require.NoError(t, c.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"ok", func(c *Config) {}, ""},
		{"driver", func(c *Config) { c.StorageDriver = "redis" }, "unknown storage driver"},
		{"policy", func(c *Config) { c.ExpiryPolicy = "burn" }, "unknown expiry policy"},
		{"secret", func(c *Config) { c.SecretKey = "" }, "secret key"},
		{"owner", func(c *Config) { c.OwnerAccount = "" }, "owner account"},
		{"treasury", func(c *Config) { c.InitialTreasury = "-5" }, "initial treasury"},
		{"pool", func(c *Config) { c.InitialDailyPool = "ten" }, "initial daily pool"},
		{"cooldown", func(c *Config) { c.Cooldown = -time.Second }, "must not be negative"},
		{"sweep", func(c *Config) { c.ExpirySweepInterval = 0 }, "sweep interval"},
		{"archive", func(c *Config) { c.ArchiveEnabled = true; c.ArchiveInterval = 0 }, "archive interval"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Config
			c.LoadDefaults()
			tt.mutate(&c)

			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_Precedence(t *testing.T) {
	dotEnvFile = t.TempDir() + "/missing.env"
	t.Setenv("FITMINT_STORAGE_DRIVER", "leveldb")
	t.Setenv("FITMINT_OWNER_ACCOUNT", "env-owner")
	t.Setenv("FITMINT_COOLDOWN", "12h")

	path := writeTempJSON(t, "", "", map[string]any{
		"owner_account": "json-owner",
		"streak_window": "36h",
	})

	cfg, err := Load([]string{"-c", path, "-o", "flag-owner"})
	require.NoError(t, err)

	assert.Equal(t, DriverLevelDB, cfg.StorageDriver)
	assert.Equal(t, 12*time.Hour, cfg.Cooldown)
	assert.Equal(t, 36*time.Hour, cfg.StreakWindow)
	assert.Equal(t, "flag-owner", cfg.OwnerAccount)
	assert.Equal(t, ":50051", cfg.EndpointAddrGRPC)
}

func TestLoad_InvalidConfig(t *testing.T) {
	dotEnvFile = t.TempDir() + "/missing.env"
	t.Setenv("FITMINT_EXPIRY_POLICY", "burn")

	_, err := Load(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestLoad_BadEnvValue(t *testing.T) {
	dotEnvFile = t.TempDir() + "/missing.env"
	t.Setenv("FITMINT_STEP_GOAL", "many")

	_, err := Load(nil)
	assert.ErrorContains(t, err, "parse env")
}
