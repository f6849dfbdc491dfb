package display

// Terminal color codes
const (
	Reset   = "\033[0m"
	Red     = "\033[31m"
	Green   = "\033[32m"
	Yellow  = "\033[33m"
	Blue    = "\033[34m"
	Magenta = "\033[35m"
	Cyan    = "\033[36m"
	White   = "\033[37m"
)

// Side and board label colors
const (
	BlackSide = Red
	WhiteSide = Blue
	Label     = Cyan
	GameOver  = Magenta
)

// Paint wraps text in color and a reset
func Paint(color, text string) string {
	return color + text + Reset
}

// SideColor returns the color used for a side name ("black" or "white")
func SideColor(side string) string {
	if side == "white" {
		return WhiteSide
	}
	return BlackSide
}

// ColorForTurn returns a colored, capitalized side name
func ColorForTurn(turn string) string {
	if turn == "white" {
		return Paint(WhiteSide, "White")
	}
	return Paint(BlackSide, "Black")
}

// Prompt returns a colored prompt string
func Prompt(text string) string {
	return Yellow + text + " > " + Reset
}
