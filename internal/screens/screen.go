// Package screens holds the screen state machine. The current screen is the
// single source of truth for input routing; renderers read it together with
// Regions to decide what to draw.
package screens

import "slices"

// Screen identifies one state of the application flow.
type Screen int

const (
	ScreenLogin Screen = iota
	ScreenRegister
	ScreenRecover
	ScreenMainMenu
	ScreenShop
	ScreenSkins
	ScreenPlaying
	ScreenPaused
	ScreenGameOver
)

var screenNames = [...]string{
	ScreenLogin:    "login",
	ScreenRegister: "register",
	ScreenRecover:  "recover",
	ScreenMainMenu: "main_menu",
	ScreenShop:     "shop",
	ScreenSkins:    "skins",
	ScreenPlaying:  "playing",
	ScreenPaused:   "paused",
	ScreenGameOver: "game_over",
}

func (s Screen) String() string {
	if s < 0 || int(s) >= len(screenNames) {
		return "unknown"
	}
	return screenNames[s]
}

// Region is a part of the interface a renderer may draw.
type Region int

const (
	RegionStats        Region = iota // currency, best score and current score
	RegionTitle                      // branding banner
	RegionLoginForm                  // username and password fields
	RegionRegisterForm               // username, email, password and confirm fields
	RegionRecoverForm                // email, code and new password fields
	RegionMenu                       // main menu buttons
	RegionShop                       // purchasable skins
	RegionSkins                      // owned skins to equip
	RegionHelp                       // controls line
	RegionPlayfield                  // the running world
	RegionPauseMenu
	RegionGameOverMenu
)

var regionNames = [...]string{
	RegionStats:        "stats",
	RegionTitle:        "title",
	RegionLoginForm:    "login_form",
	RegionRegisterForm: "register_form",
	RegionRecoverForm:  "recover_form",
	RegionMenu:         "menu",
	RegionShop:         "shop",
	RegionSkins:        "skins",
	RegionHelp:         "help",
	RegionPlayfield:    "playfield",
	RegionPauseMenu:    "pause_menu",
	RegionGameOverMenu: "game_over_menu",
}

func (r Region) String() string {
	if r < 0 || int(r) >= len(regionNames) {
		return "unknown"
	}
	return regionNames[r]
}

// Regions returns the visible regions of s in drawing order.
func Regions(s Screen) []Region {
	switch s {
	case ScreenLogin:
		return []Region{RegionStats, RegionLoginForm}
	case ScreenRegister:
		return []Region{RegionStats, RegionRegisterForm}
	case ScreenRecover:
		return []Region{RegionStats, RegionRecoverForm}
	case ScreenMainMenu:
		return []Region{RegionStats, RegionMenu, RegionHelp}
	case ScreenShop:
		return []Region{RegionTitle, RegionShop}
	case ScreenSkins:
		return []Region{RegionStats, RegionSkins}
	case ScreenPlaying:
		return []Region{RegionStats, RegionPlayfield, RegionHelp}
	case ScreenPaused:
		return []Region{RegionStats, RegionPlayfield, RegionPauseMenu}
	case ScreenGameOver:
		return []Region{RegionStats, RegionPlayfield, RegionGameOverMenu}
	}
	return nil
}

// Visible reports whether r is drawn on s.
func Visible(s Screen, r Region) bool {
	return slices.Contains(Regions(s), r)
}
