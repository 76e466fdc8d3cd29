package runner

// ScoreClock converts elapsed play time into score.
// The sub-interval remainder is carried forward, so any sequence of tick
// lengths summing to N intervals yields exactly N quanta.
type ScoreClock struct {
	quantum  int
	interval int
	acc      int
}

// NewScoreClock awards quantum points per interval milliseconds.
func NewScoreClock(quantum, interval int) ScoreClock {
	return ScoreClock{quantum: quantum, interval: interval}
}

// Add accumulates ms and returns the points earned.
func (c *ScoreClock) Add(ms int) int {
	if c.interval <= 0 || ms <= 0 {
		return 0
	}
	c.acc += ms
	points := 0
	for c.acc >= c.interval {
		points += c.quantum
		c.acc -= c.interval
	}
	return points
}

// Reset drops the remainder.
func (c *ScoreClock) Reset() {
	c.acc = 0
}

// IsDay reports whether score falls in a day phase: phases alternate every
// span points, starting with day.
func IsDay(score, span int) bool {
	if span <= 0 {
		return true
	}
	return (score/span)%2 == 0
}
