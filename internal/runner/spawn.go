package runner

// randint draws uniformly from [lo, hi].
func (e *Engine) randint(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + e.rng.Intn(hi-lo+1)
}

// spawnObstacle adds one obstacle just past the right edge.
// Birds are only considered once the score reaches the flying threshold.
func (e *Engine) spawnObstacle() {
	sp := e.cfg.Spawn

	if e.score >= sp.FlyingThreshold && e.rng.Float64() < sp.FlyingChance {
		level := sp.FlyingLevels[e.rng.Intn(len(sp.FlyingLevels))]
		e.obstacles = append(e.obstacles, Obstacle{
			Kind:    Flying,
			X:       e.width + sp.FlyingLead,
			Y:       e.groundY - level,
			W:       sp.FlyingSize.Width,
			H:       sp.FlyingSize.Height,
			Variant: -1,
		})
		return
	}

	o := Obstacle{Kind: Ground, X: e.width + sp.GroundLead, Variant: -1}
	if len(e.variants) > 0 {
		idx := e.rng.Intn(len(e.variants))
		v := e.variants[idx]
		o.W, o.H = float64(v.Width), float64(v.Height)
		o.Variant = idx
	} else if e.rng.Float64() > 0.5 {
		o.W, o.H = sp.TallCactus.Width, sp.TallCactus.Height
	} else {
		o.W, o.H = sp.ShortCactus.Width, sp.ShortCactus.Height
	}
	o.Y = e.groundY - o.H
	e.obstacles = append(e.obstacles, o)
}

// spawnCoin adds a coin at one of the configured heights above ground.
func (e *Engine) spawnCoin() {
	sp := e.cfg.Spawn
	offset := sp.CoinOffsets[e.rng.Intn(len(sp.CoinOffsets))]
	e.coins = append(e.coins, Coin{
		X: e.width + sp.CoinLead,
		Y: e.groundY - offset,
		R: sp.CoinRadius,
	})
}
