package term

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Theme defines the colors used when primitives are initialized.
type Theme struct {
	PrimitiveBackgroundColor tcell.Color // Main background color for primitives.
	ContrastBackgroundColor  tcell.Color // Background color for the cursor row.
	BorderColor              tcell.Color // Box borders.
	FocusBorderColor         tcell.Color // Box borders while focused.
	TitleColor               tcell.Color // Box titles.
	GraphicsColor            tcell.Color // Graphics such as scroll bars.
	PrimaryTextColor         tcell.Color // Primary text.
	SecondaryTextColor       tcell.Color // Secondary text (e.g. labels).
	DropTargetColor          tcell.Color // Tint of rows under a drop.
}

// Styles defines the theme for applications. The default is for a black
// background and some basic colors: black, white, yellow, green, and blue.
var Styles = Theme{
	PrimitiveBackgroundColor: tcell.ColorBlack,
	ContrastBackgroundColor:  tcell.ColorNavy,
	BorderColor:              tcell.ColorWhite,
	FocusBorderColor:         tcell.ColorGreen,
	TitleColor:               tcell.ColorWhite,
	GraphicsColor:            tcell.ColorWhite,
	PrimaryTextColor:         tcell.ColorWhite,
	SecondaryTextColor:       tcell.ColorYellow,
	DropTargetColor:          tcell.ColorGreen,
}

// Blend mixes from toward to by t in the CIE-L*a*b* space. Colors without an
// RGB value, such as the terminal default, blend to whichever side has one.
func Blend(from, to tcell.Color, t float64) tcell.Color {
	a, aok := toColorful(from)
	b, bok := toColorful(to)
	switch {
	case !aok && !bok:
		return from
	case !aok:
		return to
	case !bok:
		return from
	}
	r, g, bl := a.BlendLab(b, t).Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(bl))
}

// ParseColor reads a color name or a #rrggbb value.
func ParseColor(s string) (tcell.Color, bool) {
	if c, err := colorful.Hex(s); err == nil {
		r, g, b := c.RGB255()
		return tcell.NewRGBColor(int32(r), int32(g), int32(b)), true
	}
	c := tcell.GetColor(s)
	return c, c != tcell.ColorDefault
}

func toColorful(c tcell.Color) (colorful.Color, bool) {
	r, g, b := c.RGB()
	if r < 0 || g < 0 || b < 0 {
		return colorful.Color{}, false
	}
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}, true
}
