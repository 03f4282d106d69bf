package core

// Color is a foreground color for a screen cell.
// Values map to ANSI 256-color codes in the platform renderer.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// rainbow is ordered by hue.
var rainbow = []Color{
	ColorRed,
	ColorOrange,
	ColorYellow,
	ColorBrightGreen,
	ColorGreen,
	ColorCyan,
	ColorBrightBlue,
	ColorBlue,
	ColorMagenta,
	ColorBrightMagenta,
}

// Rainbow returns the i-th of n colors spread across the hue wheel.
func Rainbow(i, n int) Color {
	if n <= 0 {
		return ColorDefault
	}
	idx := (i % n) * len(rainbow) / n
	if idx < 0 {
		idx += len(rainbow)
	}
	return rainbow[idx]
}
