package help

import (
	"github.com/ayn2op/listview/term"
	"github.com/gdamore/tcell/v2"
)

type Styles struct {
	ShortKeyStyle       tcell.Style
	ShortDescStyle      tcell.Style
	ShortSeparatorStyle tcell.Style

	FullKeyStyle       tcell.Style
	FullDescStyle      tcell.Style
	FullSeparatorStyle tcell.Style

	EllipsisStyle tcell.Style
}

func DefaultStyles() Styles {
	dim := tcell.StyleDefault.Foreground(term.Styles.SecondaryTextColor).Dim(true)
	normal := tcell.StyleDefault.Foreground(term.Styles.PrimaryTextColor)
	return Styles{
		ShortKeyStyle:       dim,
		ShortDescStyle:      normal,
		ShortSeparatorStyle: dim,
		FullKeyStyle:        dim,
		FullDescStyle:       normal,
		FullSeparatorStyle:  dim,
		EllipsisStyle:       dim,
	}
}
