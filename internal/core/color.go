package core

// Color is the role a screen cell plays. Drivers choose the actual colour;
// ANSI gives the terminal palette entry used by the TUI.
type Color uint8

const (
	ColorDefault   Color = iota
	ColorScore           // HUD numbers
	ColorAutopilot       // autopilot status line
	ColorFrame           // board border and help text
	ColorHint            // secondary overlay text
	ColorFood
	ColorHead
	ColorBody
	ColorNotice // start, pause and new-best banners
	ColorAlert  // game over and sizing errors
)

// ANSI returns the 256-colour palette index for c, or "" for the terminal default.
func (c Color) ANSI() string {
	switch c {
	case ColorScore:
		return "15"
	case ColorAutopilot:
		return "6"
	case ColorFrame:
		return "245"
	case ColorHint:
		return "7"
	case ColorFood:
		return "9"
	case ColorHead:
		return "10"
	case ColorBody:
		return "2"
	case ColorNotice:
		return "11"
	case ColorAlert:
		return "196"
	default:
		return ""
	}
}
