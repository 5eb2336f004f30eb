package display

import (
	"strings"

	"github.com/pixil98/go-peake/internal/game"
)

// BoxWidth is the width of stat boxes.
const BoxWidth = 40

// Box draws stat sections inside an ASCII frame of the given width. Sections
// are separated by a rule and over-long lines are cut to fit.
func Box(sections []game.StatSection, width int) string {
	b := &box{inner: width - 4}
	b.rule()
	for i, section := range sections {
		if i > 0 {
			b.rule()
		}
		if section.Header != "" {
			b.row(section.Header, false)
		}
		for _, line := range section.Lines {
			b.row(line.Value, line.Center)
		}
	}
	b.rule()
	return strings.TrimSuffix(b.sb.String(), "\n")
}

type box struct {
	sb    strings.Builder
	inner int
}

func (b *box) rule() {
	b.sb.WriteString("+" + strings.Repeat("-", b.inner+2) + "+\n")
}

func (b *box) row(text string, center bool) {
	if len(text) > b.inner {
		text = text[:b.inner]
	}
	left := 0
	if center {
		left = (b.inner - len(text)) / 2
	}
	right := b.inner - left - len(text)

	b.sb.WriteString("| ")
	b.sb.WriteString(strings.Repeat(" ", left))
	b.sb.WriteString(text)
	b.sb.WriteString(strings.Repeat(" ", right))
	b.sb.WriteString(" |\n")
}
