package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-runner/internal/account"
	"github.com/vovakirdan/tui-runner/internal/core"
)

// Palette maps core colors to lipgloss styles for one sky phase.
type Palette map[core.Color]lipgloss.Style

func fg(c string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
}

func basePalette() Palette {
	p := Palette{
		core.ColorDefault:  lipgloss.NewStyle(),
		core.ColorCactus:   fg("#16a34a"),
		core.ColorBird:     fg("#64748b"),
		core.ColorCoin:     fg("#facc15"),
		core.ColorScore:    fg("#f8fafc").Bold(true),
		core.ColorBest:     fg("#38bdf8"),
		core.ColorSun:      fg("#fbbf24"),
		core.ColorMoon:     fg("#e2e8f0"),
		core.ColorTitle:    fg("#f97316").Bold(true),
		core.ColorMuted:    fg("245"),
		core.ColorError:    fg("#fca5a5").Bold(true),
		core.ColorSelected: fg("229").Background(lipgloss.Color("57")),
	}
	for _, skin := range account.Skins {
		p[skin.Color] = fg(skin.Body)
	}
	return p
}

// DayPalette and NightPalette differ in ground and accent tones.
var (
	DayPalette   = withOverrides(basePalette(), Palette{core.ColorGround: fg("#a16207")})
	NightPalette = withOverrides(basePalette(), Palette{
		core.ColorGround: fg("#475569"),
		core.ColorCactus: fg("#15803d"),
		core.ColorBird:   fg("#94a3b8"),
	})
)

func withOverrides(p, over Palette) Palette {
	for k, v := range over {
		p[k] = v
	}
	return p
}

// PaletteFor returns the palette for the current sky phase.
func PaletteFor(day bool) Palette {
	if day {
		return DayPalette
	}
	return NightPalette
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Adjacent cells with the same color share one escape sequence.
func RenderScreen(s *core.Screen, p Palette) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := p[startColor]
			if !ok {
				style = p[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
