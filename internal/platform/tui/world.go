package tui

import (
	"fmt"

	"github.com/vovakirdan/tui-runner/internal/account"
	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/runner"
)

// cellAspect is how many world units tall a cell is per unit of width.
// Terminal cells are roughly twice as tall as they are wide.
const cellAspect = 2.0

// spriteGlyphs fill ground obstacles drawn from sprite variants, one per
// variant index in turn. Plain cacti use a solid block.
var spriteGlyphs = []rune{'▓', '▒', '░', '#'}

func obstacleGlyph(variant int) rune {
	if variant < 0 {
		return '█'
	}
	return spriteGlyphs[variant%len(spriteGlyphs)]
}

// WorldSize returns the world width that fills cols x rows cells at the
// given world height.
func WorldSize(cols, rows int, height float64) float64 {
	if cols <= 0 || rows <= 0 {
		return 0
	}
	return height * float64(cols) / (float64(rows) * cellAspect)
}

// projection maps world units to screen cells.
type projection struct {
	sx, sy float64
}

func newProjection(s *core.Screen, st runner.State) projection {
	return projection{
		sx: float64(s.Width()) / st.Width,
		sy: float64(s.Height()) / st.Height,
	}
}

func (p projection) col(x float64) int { return int(x * p.sx) }
func (p projection) row(y float64) int { return int(y * p.sy) }

// rect converts a world box to cells, never smaller than one cell.
func (p projection) rect(b core.Box) core.Rect {
	x0, y0 := p.col(b.X), p.row(b.Y)
	x1, y1 := p.col(b.Right()), p.row(b.Bottom())
	return core.NewRect(x0, y0, max(1, x1-x0), max(1, y1-y0))
}

// DrawWorld renders a snapshot of the run into s.
func DrawWorld(s *core.Screen, st runner.State, skin account.Skin) {
	s.Clear()
	if st.Width <= 0 || st.Height <= 0 {
		return
	}
	p := newProjection(s, st)

	drawSky(s, st)

	ground := p.row(st.GroundY)
	s.DrawHLine(0, ground, s.Width(), '▔', core.ColorGround)
	for x := 0; x < s.Width(); x += 7 {
		s.SetColor((x+st.Ticks/4)%max(1, s.Width()), ground+1, '.', core.ColorGround)
	}

	for _, o := range st.Obstacles {
		r := p.rect(o.Box())
		if o.Kind == runner.Flying {
			wing := '^'
			if (st.Ticks/10)%2 == 1 {
				wing = 'v'
			}
			s.DrawRect(r, '=', core.ColorBird)
			s.DrawHLine(r.X, r.Y, r.W, wing, core.ColorBird)
			continue
		}
		s.DrawRect(r, obstacleGlyph(o.Variant), core.ColorCactus)
		if o.Variant < 0 && r.W > 2 && r.H > 2 {
			s.SetColor(r.X-1, r.Y+1, '╣', core.ColorCactus)
			s.SetColor(r.Right(), r.Y+1, '╠', core.ColorCactus)
		}
	}

	for _, c := range st.Coins {
		circle := c.Circle()
		s.SetColor(p.col(circle.CX), p.row(circle.CY), '●', core.ColorCoin)
	}

	pr := p.rect(st.Player.Box())
	s.DrawRect(pr, '█', skin.Color)
	if pr.W > 1 && pr.H > 1 {
		eye, color := '▀', core.ColorDefault
		if !st.Running {
			eye, color = 'x', core.ColorError
		}
		s.SetColor(pr.Right()-1, pr.Y, eye, color)
	}

	s.DrawTextColor(s.Width()-len(scoreText(st.Score))-1, 0, scoreText(st.Score), core.ColorScore)

	if !st.Running {
		drawCrashBanner(s, ground/3)
	}
}

const crashText = "C R A S H"

// drawCrashBanner frames crashText centered on row y.
func drawCrashBanner(s *core.Screen, y int) {
	w := len(crashText) + 4
	if w > s.Width() || y < 1 {
		return
	}
	s.DrawBox(core.NewRect((s.Width()-w)/2, y-1, w, 3), core.ColorError)
	s.DrawTextCentered(y, crashText, core.ColorError)
}

func drawSky(s *core.Screen, st runner.State) {
	if st.Day {
		s.SetColor(s.Width()-4, 2, '☼', core.ColorSun)
		return
	}
	s.SetColor(s.Width()-4, 2, '☾', core.ColorMoon)
	for i, x := range []int{5, 17, 31, 46, 62, 77} {
		if x < s.Width() {
			s.SetColor(x, 1+i%3, '·', core.ColorMoon)
		}
	}
}

func scoreText(score int) string {
	return fmt.Sprintf("%05d", score)
}
