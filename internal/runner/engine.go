// Package runner implements the side-scrolling simulation: player physics,
// obstacle and coin spawning, collisions, scoring and the speed ramp.
// All positions are in world units; the platform layer scales them to cells.
package runner

import (
	"slices"

	"github.com/vovakirdan/tui-runner/internal/assets"
	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/core"
)

// StepResult reports what happened during one tick.
type StepResult struct {
	Coins   int  // coins collected this tick
	Reward  int  // currency earned this tick
	Crashed bool // the run ended this tick
	Score   int  // score after the tick
}

// State is a read-only snapshot for renderers.
type State struct {
	Player    Player
	Obstacles []Obstacle
	Coins     []Coin
	Score     int
	Speed     float64
	Running   bool
	Ticks     int
	Width     float64
	Height    float64
	GroundY   float64
	Day       bool
}

// Engine owns one run at a time.
type Engine struct {
	cfg      config.RunnerConfig
	rng      Random
	variants []assets.Variant

	width, height float64
	groundY       float64

	player    Player
	obstacles []Obstacle
	coins     []Coin

	score         int
	clock         ScoreClock
	obstacleTimer int
	coinTimer     int
	speed         float64
	running       bool
	ticks         int
}

// New creates an engine and starts a fresh run.
// A nil rng uses a source seeded with 1.
func New(cfg config.RunnerConfig, rng Random, variants []assets.Variant) *Engine {
	if rng == nil {
		rng = NewRandom(1)
	}
	e := &Engine{
		cfg:       cfg,
		rng:       rng,
		variants:  slices.Clone(variants),
		obstacles: make([]Obstacle, 0, 8),
		coins:     make([]Coin, 0, 8),
	}
	e.setSize(cfg.World.Width, cfg.World.Height)
	e.Reset()
	return e
}

func (e *Engine) setSize(w, h float64) {
	e.width = max(w, e.cfg.World.MinWidth)
	e.height = max(h, e.cfg.World.MinHeight)
	e.groundY = e.height - e.cfg.World.GroundOffset
}

// Reset starts a fresh run at the start speed. Best score lives elsewhere.
func (e *Engine) Reset() {
	p := e.cfg.Player
	e.player = Player{
		X:        p.X,
		W:        p.Width,
		H:        p.StandHeight,
		Y:        e.groundY - p.StandHeight,
		Grounded: true,
	}
	e.obstacles = e.obstacles[:0]
	e.coins = e.coins[:0]
	e.score = 0
	e.clock = NewScoreClock(e.cfg.Economy.ScoreQuantum, e.cfg.Economy.ScoreIntervalMS)
	e.obstacleTimer = e.randint(e.cfg.Spawn.ObstacleMinMS, e.cfg.Spawn.ObstacleMaxMS)
	e.coinTimer = e.randint(e.cfg.Spawn.CoinMinMS, e.cfg.Spawn.CoinMaxMS)
	e.speed = e.cfg.Physics.StartSpeed
	e.running = true
	e.ticks = 0
}

// Resize changes the playfield. Sizes below the configured minimum are
// raised to it. The grounded player and ground obstacles follow the new
// ground line.
func (e *Engine) Resize(w, h float64) {
	e.setSize(w, h)
	if e.player.Grounded {
		e.player.Y = e.groundY - e.player.H
	} else {
		e.player.Y = min(e.player.Y, e.groundY-e.player.H)
	}
	e.anchorGround()
}

func (e *Engine) anchorGround() {
	for i := range e.obstacles {
		if e.obstacles[i].Kind == Ground {
			e.obstacles[i].Y = e.groundY - e.obstacles[i].H
		}
	}
}

// Jump launches the player when grounded during a run.
func (e *Engine) Jump() {
	if !e.running || !e.player.Grounded {
		return
	}
	e.player.VY = e.cfg.Physics.JumpForce
	e.player.Grounded = false
}

// CrouchPress lowers the player to crouch height, snapped to the ground line.
func (e *Engine) CrouchPress() {
	if !e.running || e.player.Crouching {
		return
	}
	e.player.Crouching = true
	e.player.H = e.cfg.Player.CrouchHeight
	e.player.Y = e.groundY - e.player.H
}

// CrouchRelease restores standing height, snapped to the ground line.
func (e *Engine) CrouchRelease() {
	if !e.player.Crouching {
		return
	}
	e.player.Crouching = false
	e.player.H = e.cfg.Player.StandHeight
	e.player.Y = e.groundY - e.player.H
}

// Running reports whether the run is still live.
func (e *Engine) Running() bool {
	return e.running
}

// Score returns the current run score.
func (e *Engine) Score() int {
	return e.score
}

// Step advances one configured tick.
func (e *Engine) Step() StepResult {
	return e.Advance(e.cfg.TickMS)
}

// Advance runs one tick that covered dt milliseconds of play.
// Nothing moves once the run has crashed.
func (e *Engine) Advance(dt int) StepResult {
	if !e.running {
		return StepResult{Score: e.score}
	}
	e.ticks++

	// Gravity and ground clamp
	e.player.VY += e.cfg.Physics.Gravity
	e.player.Y += e.player.VY
	if floor := e.groundY - e.player.H; e.player.Y >= floor {
		e.player.Y = floor
		e.player.VY = 0
		e.player.Grounded = true
	}

	e.score += e.clock.Add(dt)

	e.obstacleTimer -= dt
	if e.obstacleTimer <= 0 {
		e.spawnObstacle()
		e.obstacleTimer = e.randint(e.cfg.Spawn.ObstacleMinMS, e.cfg.Spawn.ObstacleMaxMS)
	}

	e.coinTimer -= dt
	if e.coinTimer <= 0 {
		if e.rng.Float64() < e.cfg.Spawn.CoinChance {
			e.spawnCoin()
		}
		e.coinTimer = e.randint(e.cfg.Spawn.CoinMinMS, e.cfg.Spawn.CoinMaxMS)
	}

	e.speed += e.cfg.Physics.SpeedRamp

	res := StepResult{}
	hitbox := e.hitbox()

	for i := range e.obstacles {
		o := &e.obstacles[i]
		mult := 1.0
		if o.Kind == Flying {
			mult = e.cfg.Physics.FlyingFactor
		}
		o.X -= e.speed * mult
		if o.Kind == Ground {
			o.Y = e.groundY - o.H
		}
		if !res.Crashed && hitbox.Overlaps(o.Box()) {
			res.Crashed = true
			e.running = false
		}
	}

	coinCull := -e.cfg.Spawn.CoinCull
	kept := e.coins[:0]
	for _, c := range e.coins {
		c.X -= e.speed * e.cfg.Physics.CoinFactor
		if c.Circle().IntersectsBox(hitbox) {
			res.Coins++
			res.Reward += e.cfg.Economy.CoinValue
			continue
		}
		if c.X+2*c.R > coinCull {
			kept = append(kept, c)
		}
	}
	e.coins = kept

	obstacleCull := -e.cfg.Spawn.ObstacleCull
	e.obstacles = slices.DeleteFunc(e.obstacles, func(o Obstacle) bool {
		return o.X+o.W <= obstacleCull
	})

	res.Score = e.score
	return res
}

// hitbox is the inset rectangle used for both obstacles and coins.
func (e *Engine) hitbox() core.Box {
	in := e.cfg.Player.Hitbox
	return e.player.Box().Inset(in.Left, in.Top, in.Right, in.Bottom)
}

// IsDay reports the sky phase for the current score.
func (e *Engine) IsDay() bool {
	return IsDay(e.score, e.cfg.Economy.DayNightSpan)
}

// State returns a snapshot safe to hold across ticks.
func (e *Engine) State() State {
	return State{
		Player:    e.player,
		Obstacles: slices.Clone(e.obstacles),
		Coins:     slices.Clone(e.coins),
		Score:     e.score,
		Speed:     e.speed,
		Running:   e.running,
		Ticks:     e.ticks,
		Width:     e.width,
		Height:    e.height,
		GroundY:   e.groundY,
		Day:       e.IsDay(),
	}
}
