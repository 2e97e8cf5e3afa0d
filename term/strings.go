package term

import (
	"strings"

	"github.com/rivo/uniseg"
)

// lineBreak is the kind of line break allowed after a grapheme cluster.
type lineBreak int

const (
	breakNone lineBreak = iota
	breakOptional
	breakMandatory
)

// grapheme is one user-perceived character of a string.
type grapheme struct {
	text  string
	width int // In cells.
	brk   lineBreak
}

// graphemes splits text into grapheme clusters.
func graphemes(text string) []grapheme {
	var out []grapheme
	state := -1
	for len(text) > 0 {
		var (
			cluster    string
			boundaries int
		)
		cluster, text, boundaries, state = uniseg.StepString(text, state)
		g := grapheme{text: cluster, width: boundaries >> uniseg.ShiftWidth}
		switch boundaries & uniseg.MaskLine {
		case uniseg.LineCanBreak:
			g.brk = breakOptional
		case uniseg.LineMustBreak:
			g.brk = breakMandatory
		}
		// The end of the text is always a mandatory break for uniseg.
		if text == "" && !uniseg.HasTrailingLineBreakInString(cluster) {
			g.brk = breakNone
		}
		out = append(out, g)
	}
	return out
}

// StringWidth returns the number of cells needed to print text on one line.
func StringWidth(text string) int {
	width := 0
	for _, g := range graphemes(text) {
		width += g.width
	}
	return width
}

// WordWrap splits text into lines no wider than width cells, breaking at the
// last break opportunity that fits. Words longer than width are cut. A space
// falling on the wrap point is dropped and hard line breaks always start a
// new line.
func WordWrap(text string, width int) []string {
	if width <= 0 {
		return nil
	}

	var lines []string
	start, pos, lineWidth := 0, 0, 0
	breakAt, breakWidth := -1, 0
	for _, g := range graphemes(text) {
		if lineWidth+g.width > width {
			switch {
			case g.text == " ":
				lines = append(lines, text[start:pos])
				pos += len(g.text)
				start, lineWidth, breakAt = pos, 0, -1
				continue
			case breakAt < 0:
				lines = append(lines, text[start:pos])
				start, lineWidth = pos, 0
			default:
				lines = append(lines, strings.TrimRight(text[start:breakAt], " "))
				start, lineWidth, breakAt = breakAt, lineWidth-breakWidth, -1
			}
		}

		pos += len(g.text)
		lineWidth += g.width
		switch g.brk {
		case breakOptional:
			breakAt, breakWidth = pos, lineWidth
		case breakMandatory:
			lines = append(lines, strings.TrimRight(text[start:pos], "\r\n"))
			start, lineWidth, breakAt = pos, 0, -1
		}
	}
	return append(lines, text[start:])
}

// SplitLines splits text on hard line breaks only.
func SplitLines(text string) []string {
	return strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
}
