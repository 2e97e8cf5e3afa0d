// Package help draws the key bindings of a KeyMap, either on one line or as
// aligned columns.
package help

import (
	"strings"

	"github.com/ayn2op/listview/keybind"
	"github.com/ayn2op/listview/term"
	"github.com/gdamore/tcell/v2"
)

type KeyMap interface {
	// ShortHelp returns keybinds for single-line help.
	ShortHelp() []keybind.Keybind
	// FullHelp returns keybind groups, where each top-level entry is a column.
	FullHelp() [][]keybind.Keybind
}

// Help is a primitive showing the bindings of a KeyMap.
type Help struct {
	*term.Box
	Styles Styles

	keyMap         KeyMap
	showAll        bool
	shortSeparator string
	fullSeparator  string
	ellipsis       string
}

func New() *Help {
	return &Help{
		Box:            term.NewBox(),
		Styles:         DefaultStyles(),
		shortSeparator: " • ",
		fullSeparator:  "    ",
		ellipsis:       "…",
	}
}

// SetKeyMap sets the key map to describe.
func (h *Help) SetKeyMap(keyMap KeyMap) *Help {
	h.keyMap = keyMap
	return h
}

// SetShowAll switches between the single line and the column layout.
func (h *Help) SetShowAll(showAll bool) *Help {
	h.showAll = showAll
	return h
}

// ShowAll returns whether the column layout is used.
func (h *Help) ShowAll() bool {
	return h.showAll
}

func (h *Help) SetShortSeparator(separator string) *Help {
	h.shortSeparator = separator
	return h
}

func (h *Help) SetFullSeparator(separator string) *Help {
	h.fullSeparator = separator
	return h
}

// SetEllipsis sets the marker shown when bindings are left out.
func (h *Help) SetEllipsis(ellipsis string) *Help {
	h.ellipsis = ellipsis
	return h
}

func (h *Help) SetStyles(styles Styles) *Help {
	h.Styles = styles
	return h
}

// Draw draws this primitive onto the screen.
func (h *Help) Draw(screen tcell.Screen) {
	h.DrawForSubclass(screen)
	x, y, width, height := h.GetInnerRect()
	for row, l := range h.lines(width) {
		if row >= height {
			break
		}
		l.draw(screen, x, y+row, width)
	}
}

// Height returns the number of lines the help needs at width.
func (h *Help) Height(width int) int {
	if h.keyMap == nil {
		return 0
	}
	return max(len(h.lines(width)), 1)
}

func (h *Help) lines(width int) []line {
	switch {
	case h.keyMap == nil:
		return nil
	case h.showAll:
		return h.fullHelpSegments(h.keyMap.FullHelp(), width)
	default:
		return []line{h.shortHelpSegments(h.keyMap.ShortHelp(), width)}
	}
}

// FullHelpLines returns the column layout of groups as plain text.
func (h *Help) FullHelpLines(groups [][]keybind.Keybind, maxWidth int) []string {
	lines := h.fullHelpSegments(groups, maxWidth)
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.String()
	}
	return out
}

type segment struct {
	text  string
	style tcell.Style
}

// line is a run of styled text drawn left to right.
type line []segment

func (l line) width() int {
	w := 0
	for _, s := range l {
		w += term.StringWidth(s.text)
	}
	return w
}

func (l line) String() string {
	var b strings.Builder
	for _, s := range l {
		b.WriteString(s.text)
	}
	return b.String()
}

func (l line) draw(screen tcell.Screen, x, y, width int) {
	for _, s := range l {
		if width <= 0 {
			return
		}
		if s.text == "" {
			continue
		}
		_, printed := term.PrintWithStyle(screen, s.text, x, y, width, term.AlignmentLeft, s.style)
		x += printed
		width -= printed
	}
}

// entry is the help text of one enabled binding.
type entry struct {
	key, desc string
}

func entries(bindings []keybind.Keybind) []entry {
	var out []entry
	for _, kb := range bindings {
		if !kb.Enabled() {
			continue
		}
		if hp := kb.Help(); hp.Key != "" || hp.Desc != "" {
			out = append(out, entry{key: hp.Key, desc: hp.Desc})
		}
	}
	return out
}

// segments returns e as a key and a description. keyWidth pads the key so
// descriptions in a column line up.
func (e entry) segments(keyWidth int, keyStyle, descStyle tcell.Style) line {
	var l line
	if e.key != "" {
		l = append(l, segment{e.key, keyStyle})
	}
	if pad := keyWidth - term.StringWidth(e.key); pad > 0 {
		l = append(l, segment{strings.Repeat(" ", pad), keyStyle})
	}
	if e.key != "" && e.desc != "" {
		l = append(l, segment{" ", descStyle})
	}
	if e.desc != "" {
		l = append(l, segment{e.desc, descStyle})
	}
	return l
}

func (h *Help) shortHelpSegments(bindings []keybind.Keybind, maxWidth int) line {
	es := entries(bindings)
	if len(es) == 0 {
		return nil
	}
	sep := segment{orSpace(h.shortSeparator), h.Styles.ShortSeparatorStyle}

	out := es[0].segments(0, h.Styles.ShortKeyStyle, h.Styles.ShortDescStyle)
	for _, e := range es[1:] {
		next := append(append(append(line{}, out...), sep), e.segments(0, h.Styles.ShortKeyStyle, h.Styles.ShortDescStyle)...)
		if maxWidth > 0 && next.width() > maxWidth {
			return append(out, h.truncationTail(out, maxWidth)...)
		}
		out = next
	}
	if maxWidth > 0 && out.width() > maxWidth {
		return nil
	}
	return out
}

// column is a group of entries sharing a key width.
type column struct {
	entries  []entry
	keyWidth int
	width    int // Widest row, so the separators after it stay aligned.
}

func newColumn(es []entry) column {
	c := column{entries: es}
	for _, e := range es {
		c.keyWidth = max(c.keyWidth, term.StringWidth(e.key))
	}
	for _, e := range es {
		w := c.keyWidth + term.StringWidth(e.desc)
		if e.key != "" && e.desc != "" {
			w++
		}
		c.width = max(c.width, w)
	}
	return c
}

func (h *Help) fullHelpSegments(groups [][]keybind.Keybind, maxWidth int) []line {
	var columns []column
	for _, group := range groups {
		if es := entries(group); len(es) > 0 {
			columns = append(columns, newColumn(es))
		}
	}
	if len(columns) == 0 {
		return nil
	}

	sepText := orSpace(h.fullSeparator)
	sepWidth := term.StringWidth(sepText)

	// Take columns from the left while they fit.
	included, total, rows := 0, 0, 0
	for i, c := range columns {
		w := c.width
		if i > 0 {
			w += sepWidth
		}
		if maxWidth > 0 && total+w > maxWidth {
			break
		}
		included++
		total += w
		rows = max(rows, len(c.entries))
	}
	if included == 0 {
		return []line{{{h.ellipsis, h.Styles.EllipsisStyle}}}
	}

	lines := make([]line, rows)
	for row := range lines {
		var l line
		for i, c := range columns[:included] {
			if i > 0 {
				l = append(l, segment{sepText, h.Styles.FullSeparatorStyle})
			}
			if row >= len(c.entries) {
				l = append(l, segment{strings.Repeat(" ", c.width), h.Styles.FullDescStyle})
				continue
			}
			cell := c.entries[row].segments(c.keyWidth, h.Styles.FullKeyStyle, h.Styles.FullDescStyle)
			if pad := c.width - cell.width(); pad > 0 && i < included-1 {
				cell = append(cell, segment{strings.Repeat(" ", pad), h.Styles.FullDescStyle})
			}
			l = append(l, cell...)
		}
		lines[row] = l
	}

	if included < len(columns) {
		lines[0] = append(lines[0], h.truncationTail(lines[0], maxWidth)...)
	}
	return lines
}

// truncationTail returns the ellipsis to append to current, or nil when it
// would not fit whole.
func (h *Help) truncationTail(current line, maxWidth int) line {
	if maxWidth <= 0 || h.ellipsis == "" {
		return nil
	}
	tail := line{{" ", h.Styles.EllipsisStyle}, {h.ellipsis, h.Styles.EllipsisStyle}}
	if current.width()+tail.width() > maxWidth {
		return nil
	}
	return tail
}

func orSpace(s string) string {
	if s == "" {
		return " "
	}
	return s
}
