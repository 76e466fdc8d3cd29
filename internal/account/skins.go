package account

import "github.com/vovakirdan/tui-runner/internal/core"

// Skin is a purchasable cosmetic for the player character.
type Skin struct {
	ID     string
	Name   string
	Cost   int
	Body   string // hex color of the body
	Accent string // hex color of the eye/legs
	Color  core.Color
}

// Skins is the fixed catalog in display order.
var Skins = []Skin{
	{ID: DefaultSkin, Name: "Default", Cost: 0, Body: "#a16207", Accent: "#78350f", Color: core.ColorSkinDefault},
	{ID: "infernal", Name: "Infernal Dragon", Cost: 50, Body: "#ef4444", Accent: "#7f1d1d", Color: core.ColorSkinInfernal},
}

// SkinByID looks a skin up in the catalog.
func SkinByID(id string) (Skin, bool) {
	for _, s := range Skins {
		if s.ID == id {
			return s, true
		}
	}
	return Skin{}, false
}
