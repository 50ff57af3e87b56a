package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/fitmint/internal/flagx"
	"github.com/dmitrijs2005/fitmint/internal/timex"
)

// JsonConfig is the on-disk shape of the JSON config file. Every field is
// optional; keys missing from the file keep their current value. Durations
// accept "24h" style strings or integer nanoseconds.
type JsonConfig struct {
	EndpointAddrGRPC *string `json:"endpoint_addr_grpc"`
	EndpointAddrHTTP *string `json:"endpoint_addr_http"`

	StorageDriver *string `json:"storage_driver"`
	DatabaseDSN   *string `json:"database_dsn"`
	LevelDBPath   *string `json:"leveldb_path"`

	SecretKey                   *string         `json:"secret_key"`
	AccessTokenValidityDuration *timex.Duration `json:"access_token_validity_duration"`
	OwnerAccount                *string         `json:"owner_account"`

	StepGoal           *uint64         `json:"step_goal"`
	ExerciseGoal       *uint64         `json:"exercise_goal"`
	MaxDailySteps      *uint64         `json:"max_daily_steps"`
	MaxExerciseMinutes *uint64         `json:"max_exercise_minutes"`
	Cooldown           *timex.Duration `json:"cooldown"`
	StreakWindow       *timex.Duration `json:"streak_window"`
	StreakBonusBps     *uint64         `json:"streak_bonus_bps"`
	MaxStreakBonusDays *uint64         `json:"max_streak_bonus_days"`

	InitialTreasury       *string `json:"initial_treasury"`
	InitialDailyPool      *string `json:"initial_daily_pool"`
	StartPaused           *bool   `json:"start_paused"`
	RequireUniqueIdentity *bool   `json:"require_unique_identity"`

	ExpiryPolicy        *string         `json:"expiry_policy"`
	ExpirySweepInterval *timex.Duration `json:"expiry_sweep_interval"`

	RateLimitPerSecond *float64 `json:"rate_limit_rps"`
	RateLimitBurst     *int     `json:"rate_limit_burst"`

	ArchiveEnabled  *bool           `json:"archive_enabled"`
	ArchiveInterval *timex.Duration `json:"archive_interval"`
	S3RootUser      *string         `json:"s3_root_user"`
	S3RootPassword  *string         `json:"s3_root_password"`
	S3Bucket        *string         `json:"s3_bucket"`
	S3Region        *string         `json:"s3_region"`
	S3BaseEndpoint  *string         `json:"s3_base_endpoint"`
	S3Prefix        *string         `json:"s3_prefix"`

	LogLevel *string `json:"log_level"`
	LogFile  *string `json:"log_file"`
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

func setDuration(dst *time.Duration, src *timex.Duration) {
	if src != nil {
		*dst = src.Duration
	}
}

// parseJson loads the file named by -c/-config, if any, over config.
func parseJson(config *Config, args []string) error {
	jsonConfigFile := flagx.ConfigFile(args)

	// nothing to load
	if jsonConfigFile == "" {
		return nil
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", jsonConfigFile, err)
	}

	set(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	set(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	set(&config.StorageDriver, c.StorageDriver)
	set(&config.DatabaseDSN, c.DatabaseDSN)
	set(&config.LevelDBPath, c.LevelDBPath)
	set(&config.SecretKey, c.SecretKey)
	setDuration(&config.AccessTokenValidityDuration, c.AccessTokenValidityDuration)
	set(&config.OwnerAccount, c.OwnerAccount)

	set(&config.StepGoal, c.StepGoal)
	set(&config.ExerciseGoal, c.ExerciseGoal)
	set(&config.MaxDailySteps, c.MaxDailySteps)
	set(&config.MaxExerciseMinutes, c.MaxExerciseMinutes)
	setDuration(&config.Cooldown, c.Cooldown)
	setDuration(&config.StreakWindow, c.StreakWindow)
	set(&config.StreakBonusBps, c.StreakBonusBps)
	set(&config.MaxStreakBonusDays, c.MaxStreakBonusDays)

	set(&config.InitialTreasury, c.InitialTreasury)
	set(&config.InitialDailyPool, c.InitialDailyPool)
	set(&config.StartPaused, c.StartPaused)
	set(&config.RequireUniqueIdentity, c.RequireUniqueIdentity)

	set(&config.ExpiryPolicy, c.ExpiryPolicy)
	setDuration(&config.ExpirySweepInterval, c.ExpirySweepInterval)

	set(&config.RateLimitPerSecond, c.RateLimitPerSecond)
	set(&config.RateLimitBurst, c.RateLimitBurst)

	set(&config.ArchiveEnabled, c.ArchiveEnabled)
	setDuration(&config.ArchiveInterval, c.ArchiveInterval)
	set(&config.S3RootUser, c.S3RootUser)
	set(&config.S3RootPassword, c.S3RootPassword)
	set(&config.S3Bucket, c.S3Bucket)
	set(&config.S3Region, c.S3Region)
	set(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	set(&config.S3Prefix, c.S3Prefix)

	set(&config.LogLevel, c.LogLevel)
	set(&config.LogFile, c.LogFile)

	return nil
}
