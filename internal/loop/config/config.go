// Package config centralizes all tunable game parameters.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	envcfg "github.com/tomz197/invaders/internal/config"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds the values that stay fixed for the whole run.
// Velocities are in logical units per second.
type Config struct {
	// Timing
	TickRate int `json:"tickRate"` // Ticks per second

	// Play field
	FieldWidth  float64 `json:"fieldWidth"`
	FieldHeight float64 `json:"fieldHeight"`
	Debug       bool    `json:"debug"` // Outline bounds, assert formation invariants

	// Formation
	InvaderRanks           int     `json:"invaderRanks"`
	InvaderFiles           int     `json:"invaderFiles"`
	InvaderInitialVelocity float64 `json:"invaderInitialVelocity"`
	InvaderAcceleration    float64 `json:"invaderAcceleration"`
	InvaderDropDistance    float64 `json:"invaderDropDistance"`
	InvaderSpacingX        float64 `json:"invaderSpacingX"` // Total width the files are spread over
	InvaderSpacingY        float64 `json:"invaderSpacingY"` // Distance between ranks

	// Player
	Lives             int     `json:"lives"`
	ShipSpeed         float64 `json:"shipSpeed"`
	RocketVelocity    float64 `json:"rocketVelocity"`
	RocketMaxFireRate float64 `json:"rocketMaxFireRate"` // Rockets per second

	// Bombs
	BombRate        float64 `json:"bombRate"` // Chance per second per front-rank invader
	BombMinVelocity float64 `json:"bombMinVelocity"`
	BombMaxVelocity float64 `json:"bombMaxVelocity"`

	// Scoring
	PointsPerInvader int `json:"pointsPerInvader"`
	VictoryBonus     int `json:"victoryBonus"` // Multiplied by the level
}

// Default returns the stock game tuning.
func Default() Config {
	return Config{
		TickRate:               50,
		FieldWidth:             400,
		FieldHeight:            300,
		InvaderRanks:           5,
		InvaderFiles:           10,
		InvaderInitialVelocity: 10,
		InvaderAcceleration:    4,
		InvaderDropDistance:    20,
		InvaderSpacingX:        200,
		InvaderSpacingY:        20,
		Lives:                  3,
		ShipSpeed:              120,
		RocketVelocity:         120,
		RocketMaxFireRate:      3,
		BombRate:               0.05,
		BombMinVelocity:        10,
		BombMaxVelocity:        35,
		PointsPerInvader:       5,
		VictoryBonus:           50,
	}
}

// TickInterval returns the wall-clock spacing of ticks.
func (c Config) TickInterval() time.Duration {
	if c.TickRate <= 0 {
		return 0
	}
	return time.Second / time.Duration(c.TickRate)
}

// TickSeconds returns the simulated length of one tick in seconds.
func (c Config) TickSeconds() float64 {
	if c.TickRate <= 0 {
		return 0
	}
	return 1 / float64(c.TickRate)
}

// FireCooldown returns the minimum time between two rockets.
func (c Config) FireCooldown() time.Duration {
	if c.RocketMaxFireRate <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / c.RocketMaxFireRate)
}

// Validate reports the first value that cannot run a game.
func (c Config) Validate() error {
	switch {
	case c.TickRate <= 0:
		return fmt.Errorf("%w: tick rate must be positive, got %d", ErrInvalidConfig, c.TickRate)
	case c.FieldWidth <= 0 || c.FieldHeight <= 0:
		return fmt.Errorf("%w: play field must be non-empty, got %gx%g", ErrInvalidConfig, c.FieldWidth, c.FieldHeight)
	case c.InvaderRanks <= 0 || c.InvaderFiles <= 0:
		return fmt.Errorf("%w: formation must be non-empty, got %d ranks x %d files", ErrInvalidConfig, c.InvaderRanks, c.InvaderFiles)
	case c.InvaderInitialVelocity <= 0:
		return fmt.Errorf("%w: invader velocity must be positive, got %g", ErrInvalidConfig, c.InvaderInitialVelocity)
	case c.InvaderAcceleration < 0:
		return fmt.Errorf("%w: invader acceleration must not be negative, got %g", ErrInvalidConfig, c.InvaderAcceleration)
	case c.InvaderDropDistance <= 0:
		return fmt.Errorf("%w: drop distance must be positive, got %g", ErrInvalidConfig, c.InvaderDropDistance)
	case c.InvaderSpacingX < 0:
		return fmt.Errorf("%w: file spacing must not be negative, got %g", ErrInvalidConfig, c.InvaderSpacingX)
	case c.InvaderSpacingY <= 0:
		return fmt.Errorf("%w: rank spacing must be positive, got %g", ErrInvalidConfig, c.InvaderSpacingY)
	case c.Lives <= 0:
		return fmt.Errorf("%w: lives must be positive, got %d", ErrInvalidConfig, c.Lives)
	case c.ShipSpeed < 0 || c.RocketVelocity <= 0:
		return fmt.Errorf("%w: ship speed %g / rocket velocity %g out of range", ErrInvalidConfig, c.ShipSpeed, c.RocketVelocity)
	case c.RocketMaxFireRate <= 0:
		return fmt.Errorf("%w: fire rate must be positive, got %g", ErrInvalidConfig, c.RocketMaxFireRate)
	case c.BombRate < 0:
		return fmt.Errorf("%w: bomb rate must not be negative, got %g", ErrInvalidConfig, c.BombRate)
	case c.BombMinVelocity <= 0 || c.BombMaxVelocity < c.BombMinVelocity:
		return fmt.Errorf("%w: bomb velocity range [%g, %g] is invalid", ErrInvalidConfig, c.BombMinVelocity, c.BombMaxVelocity)
	case c.PointsPerInvader < 0 || c.VictoryBonus < 0:
		return fmt.Errorf("%w: scores must not be negative", ErrInvalidConfig)
	}
	return nil
}

// overrides mirrors Config with optional fields so a file only needs the keys it changes.
type overrides struct {
	TickRate               *int     `json:"tickRate"`
	FieldWidth             *float64 `json:"fieldWidth"`
	FieldHeight            *float64 `json:"fieldHeight"`
	Debug                  *bool    `json:"debug"`
	InvaderRanks           *int     `json:"invaderRanks"`
	InvaderFiles           *int     `json:"invaderFiles"`
	InvaderInitialVelocity *float64 `json:"invaderInitialVelocity"`
	InvaderAcceleration    *float64 `json:"invaderAcceleration"`
	InvaderDropDistance    *float64 `json:"invaderDropDistance"`
	InvaderSpacingX        *float64 `json:"invaderSpacingX"`
	InvaderSpacingY        *float64 `json:"invaderSpacingY"`
	Lives                  *int     `json:"lives"`
	ShipSpeed              *float64 `json:"shipSpeed"`
	RocketVelocity         *float64 `json:"rocketVelocity"`
	RocketMaxFireRate      *float64 `json:"rocketMaxFireRate"`
	BombRate               *float64 `json:"bombRate"`
	BombMinVelocity        *float64 `json:"bombMinVelocity"`
	BombMaxVelocity        *float64 `json:"bombMaxVelocity"`
	PointsPerInvader       *int     `json:"pointsPerInvader"`
	VictoryBonus           *int     `json:"victoryBonus"`
}

func (o overrides) apply(base Config) Config {
	setInt(&base.TickRate, o.TickRate)
	setFloat(&base.FieldWidth, o.FieldWidth)
	setFloat(&base.FieldHeight, o.FieldHeight)
	if o.Debug != nil {
		base.Debug = *o.Debug
	}
	setInt(&base.InvaderRanks, o.InvaderRanks)
	setInt(&base.InvaderFiles, o.InvaderFiles)
	setFloat(&base.InvaderInitialVelocity, o.InvaderInitialVelocity)
	setFloat(&base.InvaderAcceleration, o.InvaderAcceleration)
	setFloat(&base.InvaderDropDistance, o.InvaderDropDistance)
	setFloat(&base.InvaderSpacingX, o.InvaderSpacingX)
	setFloat(&base.InvaderSpacingY, o.InvaderSpacingY)
	setInt(&base.Lives, o.Lives)
	setFloat(&base.ShipSpeed, o.ShipSpeed)
	setFloat(&base.RocketVelocity, o.RocketVelocity)
	setFloat(&base.RocketMaxFireRate, o.RocketMaxFireRate)
	setFloat(&base.BombRate, o.BombRate)
	setFloat(&base.BombMinVelocity, o.BombMinVelocity)
	setFloat(&base.BombMaxVelocity, o.BombMaxVelocity)
	setInt(&base.PointsPerInvader, o.PointsPerInvader)
	setInt(&base.VictoryBonus, o.VictoryBonus)
	return base
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

// LoadFile merges the JSON file at path over base.
// An empty path or a missing file leaves base unchanged.
func LoadFile(path string, base Config) (Config, error) {
	if path == "" {
		return base, nil
	}
	cleanPath := filepath.Clean(path)
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		if os.IsNotExist(err) {
			return base, nil
		}
		return base, fmt.Errorf("read game config %q: %w", cleanPath, err)
	}
	var o overrides
	if err := json.Unmarshal(data, &o); err != nil {
		return base, fmt.Errorf("parse game config %q: %w", cleanPath, err)
	}
	return o.apply(base), nil
}

// FromEnv applies INVADERS_* environment overrides to base.
func FromEnv(base Config) (Config, error) {
	var ok bool
	if base.TickRate, ok = envcfg.GetEnvInt("INVADERS_TICK_RATE", base.TickRate); !ok {
		return base, fmt.Errorf("%w: INVADERS_TICK_RATE is not an integer", ErrInvalidConfig)
	}
	if base.Lives, ok = envcfg.GetEnvInt("INVADERS_LIVES", base.Lives); !ok {
		return base, fmt.Errorf("%w: INVADERS_LIVES is not an integer", ErrInvalidConfig)
	}
	if base.BombRate, ok = envcfg.GetEnvFloat("INVADERS_BOMB_RATE", base.BombRate); !ok {
		return base, fmt.Errorf("%w: INVADERS_BOMB_RATE is not a number", ErrInvalidConfig)
	}
	if base.Debug, ok = envcfg.GetEnvBool("INVADERS_DEBUG", base.Debug); !ok {
		return base, fmt.Errorf("%w: INVADERS_DEBUG is not a boolean", ErrInvalidConfig)
	}
	return base, nil
}

// Load resolves the configuration used by the commands: defaults, then the
// optional JSON file, then environment overrides. The result is validated.
func Load(path string) (Config, error) {
	cfg, err := LoadFile(path, Default())
	if err != nil {
		return cfg, err
	}
	if cfg, err = FromEnv(cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}
