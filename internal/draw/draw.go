package draw

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// Half-block glyphs. Each terminal cell holds two vertical pixels.
const (
	BlockEmpty     = ' '
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
	BlockFull      = '█'
)

// ANSI foreground colors.
const (
	ColorReset         = "\033[0m"
	ColorGreen         = "\033[32m"
	ColorYellow        = "\033[33m"
	ColorMagenta       = "\033[35m"
	ColorGray          = "\033[90m"
	ColorBrightRed     = "\033[91m"
	ColorBrightYellow  = "\033[93m"
	ColorBrightMagenta = "\033[95m"
	ColorBrightCyan    = "\033[96m"
	ColorBrightWhite   = "\033[97m"
)

// Ink is the color a canvas pixel is drawn with. InkNone is an unset pixel.
type Ink uint8

const (
	InkNone Ink = iota
	InkWhite
	InkGray
	InkCyan
	InkRed
	InkOrange
	InkYellow
	InkGreen
	InkMagenta
	InkPink

	inkCount
)

var inkCodes = [inkCount]string{
	InkNone:    ColorReset,
	InkWhite:   ColorBrightWhite,
	InkGray:    ColorGray,
	InkCyan:    ColorBrightCyan,
	InkRed:     ColorBrightRed,
	InkOrange:  ColorYellow,
	InkYellow:  ColorBrightYellow,
	InkGreen:   ColorGreen,
	InkMagenta: ColorMagenta,
	InkPink:    ColorBrightMagenta,
}

// Code returns the escape sequence that selects the ink.
func (i Ink) Code() string {
	if i < inkCount {
		return inkCodes[i]
	}
	return ColorReset
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
