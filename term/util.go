package term

import (
	"math"

	"github.com/gdamore/tcell/v2"
)

type Alignment int

const (
	AlignmentLeft Alignment = iota
	AlignmentCenter
	AlignmentRight
)

// setCell writes one grapheme cluster into a cell.
func setCell(screen tcell.Screen, x, y int, cluster string, style tcell.Style) {
	runes := []rune(cluster)
	if len(runes) == 0 {
		runes = []rune{' '}
	}
	screen.SetContent(x, y, runes[0], runes[1:], style)
}

// background returns the background color of a style.
func background(style tcell.Style) tcell.Color {
	_, bg, _ := style.Decompose()
	return bg
}

// Print prints one line of text at (x, y), no wider than maxWidth, keeping the
// background already on screen. It returns the number of bytes of text
// printed and the width they took.
func Print(screen tcell.Screen, text string, x, y, maxWidth int, alignment Alignment, color tcell.Color) (int, int) {
	return printWithStyle(screen, text, x, y, maxWidth, alignment, tcell.StyleDefault.Foreground(color), true)
}

// PrintWithStyle is like [Print] but draws with style, background included.
func PrintWithStyle(screen tcell.Screen, text string, x, y, maxWidth int, alignment Alignment, style tcell.Style) (int, int) {
	return printWithStyle(screen, text, x, y, maxWidth, alignment, style, false)
}

// PrintSimple prints text at (x, y) in the primary text color.
func PrintSimple(screen tcell.Screen, text string, x, y int) {
	Print(screen, text, x, y, math.MaxInt32, AlignmentLeft, Styles.PrimaryTextColor)
}

// printWithStyle prints text into the cells [x, x+maxWidth) of row y. Text that
// does not fit is cut from the end, the start or both ends depending on the
// alignment. Cells left of column 0 are skipped.
func printWithStyle(screen tcell.Screen, text string, x, y, maxWidth int, alignment Alignment, style tcell.Style, keepBackground bool) (printedBytes, printedWidth int) {
	screenWidth, screenHeight := screen.Size()
	if maxWidth <= 0 || text == "" || y < 0 || y >= screenHeight {
		return 0, 0
	}

	gs := graphemes(text)
	textWidth := 0
	for _, g := range gs {
		textWidth += g.width
	}

	switch alignment {
	case AlignmentRight:
		for len(gs) > 0 && textWidth > maxWidth {
			textWidth -= gs[0].width
			gs = gs[1:]
		}
		x, maxWidth = x+maxWidth-textWidth, textWidth
	case AlignmentCenter:
		for cut := (textWidth - maxWidth) / 2; len(gs) > 0 && cut > 0; {
			cut -= gs[0].width
			textWidth -= gs[0].width
			gs = gs[1:]
		}
		if textWidth < maxWidth {
			x, maxWidth = x+maxWidth/2-textWidth/2, textWidth
		}
	}

	right := min(x+maxWidth, screenWidth)
	for _, g := range gs {
		if x+g.width > right {
			break
		}
		if g.width > 0 && x >= 0 {
			cellStyle := style
			if keepBackground {
				_, _, existing, _ := screen.GetContent(x, y)
				cellStyle = style.Background(background(existing))
			}
			// Clear the cells a wide cluster covers before drawing it.
			for offset := g.width - 1; offset > 0; offset-- {
				setCell(screen, x+offset, y, " ", cellStyle)
			}
			setCell(screen, x, y, g.text, cellStyle)
		}
		x += g.width
		printedBytes += len(g.text)
		printedWidth += g.width
	}
	return printedBytes, printedWidth
}
