// Package config provides YAML/TOML-based tuning configuration for the runner
// and environment-based application settings.
package config

import (
	"errors"
	"fmt"
)

// RunnerConfig contains all tuning for the simulation engine.
type RunnerConfig struct {
	TickMS  int           `yaml:"tick_ms" toml:"tick_ms"`
	World   WorldConfig   `yaml:"world" toml:"world"`
	Physics PhysicsConfig `yaml:"physics" toml:"physics"`
	Player  PlayerConfig  `yaml:"player" toml:"player"`
	Spawn   SpawnConfig   `yaml:"spawn" toml:"spawn"`
	Economy EconomyConfig `yaml:"economy" toml:"economy"`
}

// WorldConfig defines the logical playfield in world units.
type WorldConfig struct {
	Width        float64 `yaml:"width" toml:"width"`
	Height       float64 `yaml:"height" toml:"height"`
	MinWidth     float64 `yaml:"min_width" toml:"min_width"`
	MinHeight    float64 `yaml:"min_height" toml:"min_height"`
	GroundOffset float64 `yaml:"ground_offset" toml:"ground_offset"` // ground line = height - offset
}

// PhysicsConfig defines motion parameters.
type PhysicsConfig struct {
	Gravity      float64 `yaml:"gravity" toml:"gravity"`
	JumpForce    float64 `yaml:"jump_force" toml:"jump_force"`
	StartSpeed   float64 `yaml:"start_speed" toml:"start_speed"`
	SpeedRamp    float64 `yaml:"speed_ramp" toml:"speed_ramp"` // added to speed every tick
	FlyingFactor float64 `yaml:"flying_factor" toml:"flying_factor"`
	CoinFactor   float64 `yaml:"coin_factor" toml:"coin_factor"`
}

// PlayerConfig defines the player body and its collision inset.
type PlayerConfig struct {
	X            float64 `yaml:"x" toml:"x"`
	Width        float64 `yaml:"width" toml:"width"`
	StandHeight  float64 `yaml:"stand_height" toml:"stand_height"`
	CrouchHeight float64 `yaml:"crouch_height" toml:"crouch_height"`
	Hitbox       Inset   `yaml:"hitbox" toml:"hitbox"`
}

// Inset shrinks a rectangle on each side.
type Inset struct {
	Left   float64 `yaml:"left" toml:"left"`
	Top    float64 `yaml:"top" toml:"top"`
	Right  float64 `yaml:"right" toml:"right"`
	Bottom float64 `yaml:"bottom" toml:"bottom"`
}

// Size is a width/height pair in world units.
type Size struct {
	Width  float64 `yaml:"width" toml:"width"`
	Height float64 `yaml:"height" toml:"height"`
}

// SpawnConfig defines obstacle and coin spawning.
type SpawnConfig struct {
	ObstacleMinMS   int       `yaml:"obstacle_min_ms" toml:"obstacle_min_ms"`
	ObstacleMaxMS   int       `yaml:"obstacle_max_ms" toml:"obstacle_max_ms"`
	CoinMinMS       int       `yaml:"coin_min_ms" toml:"coin_min_ms"`
	CoinMaxMS       int       `yaml:"coin_max_ms" toml:"coin_max_ms"`
	CoinChance      float64   `yaml:"coin_chance" toml:"coin_chance"`
	FlyingThreshold int       `yaml:"flying_threshold" toml:"flying_threshold"`
	FlyingChance    float64   `yaml:"flying_chance" toml:"flying_chance"`
	FlyingLevels    []float64 `yaml:"flying_levels" toml:"flying_levels"`
	FlyingSize      Size      `yaml:"flying_size" toml:"flying_size"`
	TallCactus      Size      `yaml:"tall_cactus" toml:"tall_cactus"`
	ShortCactus     Size      `yaml:"short_cactus" toml:"short_cactus"`
	CoinOffsets     []float64 `yaml:"coin_offsets" toml:"coin_offsets"`
	CoinRadius      float64   `yaml:"coin_radius" toml:"coin_radius"`
	GroundLead      float64   `yaml:"ground_lead" toml:"ground_lead"` // spawn x = width + lead
	FlyingLead      float64   `yaml:"flying_lead" toml:"flying_lead"`
	CoinLead        float64   `yaml:"coin_lead" toml:"coin_lead"`
	ObstacleCull    float64   `yaml:"obstacle_cull" toml:"obstacle_cull"` // dropped once right edge <= -cull
	CoinCull        float64   `yaml:"coin_cull" toml:"coin_cull"`
}

// EconomyConfig defines scoring and currency.
type EconomyConfig struct {
	ScoreQuantum    int `yaml:"score_quantum" toml:"score_quantum"`
	ScoreIntervalMS int `yaml:"score_interval_ms" toml:"score_interval_ms"`
	CoinValue       int `yaml:"coin_value" toml:"coin_value"`
	DayNightSpan    int `yaml:"day_night_span" toml:"day_night_span"`
}

// Validate reports every inconsistent setting.
func (c RunnerConfig) Validate() error {
	var errs []error
	if c.TickMS <= 0 {
		errs = append(errs, fmt.Errorf("tick_ms must be positive, got %d", c.TickMS))
	}
	if c.Spawn.ObstacleMinMS > c.Spawn.ObstacleMaxMS {
		errs = append(errs, fmt.Errorf("obstacle_min_ms %d exceeds obstacle_max_ms %d", c.Spawn.ObstacleMinMS, c.Spawn.ObstacleMaxMS))
	}
	if c.Spawn.CoinMinMS > c.Spawn.CoinMaxMS {
		errs = append(errs, fmt.Errorf("coin_min_ms %d exceeds coin_max_ms %d", c.Spawn.CoinMinMS, c.Spawn.CoinMaxMS))
	}
	if len(c.Spawn.FlyingLevels) == 0 {
		errs = append(errs, errors.New("flying_levels must not be empty"))
	}
	if len(c.Spawn.CoinOffsets) == 0 {
		errs = append(errs, errors.New("coin_offsets must not be empty"))
	}
	if c.Economy.ScoreIntervalMS <= 0 {
		errs = append(errs, fmt.Errorf("score_interval_ms must be positive, got %d", c.Economy.ScoreIntervalMS))
	}
	if c.Economy.DayNightSpan <= 0 {
		errs = append(errs, fmt.Errorf("day_night_span must be positive, got %d", c.Economy.DayNightSpan))
	}
	if c.Player.CrouchHeight > c.Player.StandHeight {
		errs = append(errs, errors.New("crouch_height must not exceed stand_height"))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// DefaultRunnerConfig returns the built-in tuning.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		TickMS: 20,
		World: WorldConfig{
			Width:        1248,
			Height:       600,
			MinWidth:     700,
			MinHeight:    420,
			GroundOffset: 170,
		},
		Physics: PhysicsConfig{
			Gravity:      0.6,
			JumpForce:    -11,
			StartSpeed:   8.0,
			SpeedRamp:    0.002,
			FlyingFactor: 1.25,
			CoinFactor:   1.05,
		},
		Player: PlayerConfig{
			X:            100,
			Width:        58,
			StandHeight:  50,
			CrouchHeight: 34,
			Hitbox:       Inset{Left: 6, Top: 4, Right: 6, Bottom: 2},
		},
		Spawn: SpawnConfig{
			ObstacleMinMS:   900,
			ObstacleMaxMS:   1700,
			CoinMinMS:       1200,
			CoinMaxMS:       2200,
			CoinChance:      0.9,
			FlyingThreshold: 500,
			FlyingChance:    0.4,
			FlyingLevels:    []float64{90, 150, 210},
			FlyingSize:      Size{Width: 80, Height: 44},
			TallCactus:      Size{Width: 28, Height: 60},
			ShortCactus:     Size{Width: 42, Height: 40},
			CoinOffsets:     []float64{44, 44, 44, 70, 120},
			CoinRadius:      22,
			GroundLead:      20,
			FlyingLead:      30,
			CoinLead:        30,
			ObstacleCull:    50,
			CoinCull:        40,
		},
		Economy: EconomyConfig{
			ScoreQuantum:    10,
			ScoreIntervalMS: 1000,
			CoinValue:       2,
			DayNightSpan:    750,
		},
	}
}
