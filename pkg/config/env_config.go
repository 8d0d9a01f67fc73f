// pkg/config/env_config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/opd-ai/go-slingshot/pkg/entity"
	"github.com/opd-ai/go-slingshot/pkg/logging"
)

// Environment variables understood by ApplyEnv
const (
	EnvEngine         = "SLINGSHOT_ENGINE"
	EnvGravity        = "SLINGSHOT_GRAVITY"
	EnvPixelsPerMeter = "SLINGSHOT_PIXELS_PER_METER"
	EnvTimeStep       = "SLINGSHOT_TIME_STEP"
	EnvLowImpulse     = "SLINGSHOT_LOW_IMPULSE"
	EnvKillImpulse    = "SLINGSHOT_KILL_IMPULSE"
	EnvMaxDrag        = "SLINGSHOT_MAX_DRAG"
	EnvDefaultVariant = "SLINGSHOT_VARIANT"
	EnvSound          = "SLINGSHOT_SOUND"
	EnvLogLevel       = logging.LevelEnv
)

// ApplyEnv overrides fields from SLINGSHOT_* environment variables. Unset
// variables leave the current value alone; malformed ones are an error.
func (c *GameConfig) ApplyEnv() error {
	if v, ok := lookupEnv(EnvEngine); ok {
		c.Physics.Engine = strings.ToLower(v)
	}

	floats := []struct {
		key string
		dst *float64
	}{
		{EnvGravity, &c.Physics.Gravity},
		{EnvPixelsPerMeter, &c.Physics.PixelsPerMeter},
		{EnvTimeStep, &c.Physics.TimeStep},
		{EnvLowImpulse, &c.Collision.LowImpulse},
		{EnvKillImpulse, &c.Collision.KillImpulse},
		{EnvMaxDrag, &c.Launch.MaxDrag},
	}
	for _, f := range floats {
		if err := getEnvFloat(f.key, f.dst); err != nil {
			return err
		}
	}

	if v, ok := lookupEnv(EnvDefaultVariant); ok {
		variant, err := entity.ParseVariant(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvDefaultVariant, err)
		}
		c.Launch.DefaultVariant = variant
	}

	if v, ok := lookupEnv(EnvSound); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: invalid boolean %q: %w", EnvSound, v, err)
		}
		c.Sound = b
	}

	if v, ok := lookupEnv(EnvLogLevel); ok {
		c.LogLevel = strings.ToUpper(v)
	}

	return nil
}

// Load builds the effective configuration: defaults, then the YAML file at
// path when path is not empty, then environment overrides, then validation.
func Load(path string) (*GameConfig, error) {
	cfg := DefaultConfig()
	if path != "" {
		var err error
		if cfg, err = LoadConfig(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func lookupEnv(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

func getEnvFloat(key string, dst *float64) error {
	v, ok := lookupEnv(key)
	if !ok {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("%s: invalid number %q: %w", key, v, err)
	}
	*dst = f
	return nil
}
