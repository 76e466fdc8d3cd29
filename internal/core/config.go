package core

// RuntimeConfig contains configuration passed to the platform layer at start-up.
type RuntimeConfig struct {
	ScreenW int   // Screen width in characters
	ScreenH int   // Screen height in characters
	TickMS  int   // Fixed simulation tick in milliseconds (default 20)
	Seed    int64 // RNG seed for deterministic runs
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW: 80,
		ScreenH: 24,
		TickMS:  20,
		Seed:    0, // 0 means use current time in platform layer
	}
}
