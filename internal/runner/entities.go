package runner

import (
	"math/rand"

	"github.com/vovakirdan/tui-runner/internal/core"
)

// Kind distinguishes obstacle types.
type Kind int

const (
	Ground Kind = iota // cactus anchored to the ground line
	Flying             // bird at a fixed altitude band
)

func (k Kind) String() string {
	if k == Flying {
		return "flying"
	}
	return "ground"
}

// Obstacle is a hazard scrolling toward the player.
type Obstacle struct {
	Kind    Kind
	X, Y    float64
	W, H    float64
	Variant int // index into the engine's visual variants, -1 for the geometric fallback
}

// Box returns the obstacle's full collision rectangle.
func (o Obstacle) Box() core.Box {
	return core.NewBox(o.X, o.Y, o.W, o.H)
}

// Coin is a collectible. X and Y are the top-left of its bounding square.
type Coin struct {
	X, Y float64
	R    float64
}

// Circle returns the coin as a circle centered inside its bounding square.
func (c Coin) Circle() core.Circle {
	return core.Circle{CX: c.X + c.R, CY: c.Y + c.R, R: c.R}
}

// Player is the runner's body.
type Player struct {
	X, Y      float64
	VY        float64
	W, H      float64
	Grounded  bool
	Crouching bool
}

// Box returns the player's full body rectangle.
func (p Player) Box() core.Box {
	return core.NewBox(p.X, p.Y, p.W, p.H)
}

// Random is the source of spawn decisions.
// *rand.Rand satisfies it; tests substitute scripted values.
type Random interface {
	Intn(n int) int
	Float64() float64
}

// NewRandom returns a seeded math/rand source.
func NewRandom(seed int64) Random {
	return rand.New(rand.NewSource(seed))
}
