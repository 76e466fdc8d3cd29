package core

// Color represents a foreground color for a screen cell.
// The platform layer maps each value to a terminal color.
type Color uint8

// Palette used by the runner views.
const (
	ColorDefault Color = iota
	ColorGround        // ground line and grass
	ColorCactus        // ground obstacles
	ColorBird          // flying obstacles
	ColorCoin          // coins and currency readouts
	ColorScore         // current score readout
	ColorBest          // best score readout
	ColorSun           // day sky accents
	ColorMoon          // night sky accents
	ColorTitle         // headings
	ColorMuted         // help lines, borders
	ColorError         // status messages
	ColorSelected      // focused menu entries
	ColorSkinDefault   // default skin body
	ColorSkinInfernal  // infernal skin body
)
