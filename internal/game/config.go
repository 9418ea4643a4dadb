package game

import (
	"fmt"
	"math"
	"os"
	"strconv"
)

// Config holds explorer and server options, read from PORTALROOMS_*
// environment variables.
type Config struct {
	// Templates is the path of the room template document. Empty selects the
	// embedded default.
	Templates string
	// Seed for room generation. A seed of 0 means a random seed will be generated.
	Seed int64
	// FOV is the horizontal field of view in degrees.
	FOV float64
	// Range is how far rays travel, portals included.
	Range float32
	// MoveSpeed is the distance covered by one step.
	MoveSpeed float32
	// TurnDegrees is the angle turned by one key press.
	TurnDegrees float64
	LogLevel    string
	LogFile     string
	// Addr is the listen address of the vision server.
	Addr      string
	Telemetry bool
}

// DefaultConfig returns the settings used when no variable is set.
func DefaultConfig() Config {
	return Config{
		FOV:         66,
		Range:       2000,
		MoveSpeed:   10,
		TurnDegrees: 5,
		LogLevel:    "info",
		Addr:        ":8080",
	}
}

// LoadConfig reads the configuration from the environment on top of
// DefaultConfig.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	var err error

	cfg.Templates = os.Getenv("PORTALROOMS_TEMPLATES")
	if v := os.Getenv("PORTALROOMS_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	cfg.LogFile = os.Getenv("PORTALROOMS_LOG_FILE")
	if v := os.Getenv("PORTALROOMS_ADDR"); v != "" {
		cfg.Addr = v
	}

	if v := os.Getenv("PORTALROOMS_SEED"); v != "" {
		if cfg.Seed, err = strconv.ParseInt(v, 10, 64); err != nil {
			return cfg, fmt.Errorf("PORTALROOMS_SEED: %w", err)
		}
	}
	if v := os.Getenv("PORTALROOMS_TELEMETRY"); v != "" {
		if cfg.Telemetry, err = strconv.ParseBool(v); err != nil {
			return cfg, fmt.Errorf("PORTALROOMS_TELEMETRY: %w", err)
		}
	}
	if cfg.FOV, err = floatEnv("PORTALROOMS_FOV", cfg.FOV); err != nil {
		return cfg, err
	}
	if cfg.TurnDegrees, err = floatEnv("PORTALROOMS_TURN_DEGREES", cfg.TurnDegrees); err != nil {
		return cfg, err
	}
	rng, err := floatEnv("PORTALROOMS_RANGE", float64(cfg.Range))
	if err != nil {
		return cfg, err
	}
	cfg.Range = float32(rng)
	speed, err := floatEnv("PORTALROOMS_MOVE_SPEED", float64(cfg.MoveSpeed))
	if err != nil {
		return cfg, err
	}
	cfg.MoveSpeed = float32(speed)

	return cfg, cfg.Validate()
}

// Validate rejects settings the engine cannot work with.
func (c Config) Validate() error {
	if c.FOV <= 0 || c.FOV >= 180 {
		return fmt.Errorf("field of view %v must be in (0, 180)", c.FOV)
	}
	if c.Range <= 0 {
		return fmt.Errorf("range %v must be positive", c.Range)
	}
	if c.MoveSpeed <= 0 {
		return fmt.Errorf("move speed %v must be positive", c.MoveSpeed)
	}
	return nil
}

// RayStep returns the cosine and sine of the angle between neighboring rays
// when halfResolution rays fill each half of the field of view.
func (c Config) RayStep(halfResolution int) (cos, sin float32) {
	if halfResolution <= 0 {
		return 1, 0
	}
	step := c.FOV / 2 / float64(halfResolution) * math.Pi / 180
	return float32(math.Cos(step)), float32(math.Sin(step))
}

// Turn returns the cosine and sine of one turn step.
func (c Config) Turn() (cos, sin float32) {
	a := c.TurnDegrees * math.Pi / 180
	return float32(math.Cos(a)), float32(math.Sin(a))
}

func floatEnv(name string, fallback float64) (float64, error) {
	v := os.Getenv(name)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback, fmt.Errorf("%s: %w", name, err)
	}
	return f, nil
}
