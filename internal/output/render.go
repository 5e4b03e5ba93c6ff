package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme colors (Flexoki Dark)
var (
	colorBorder = lipgloss.Color("#282726")
	colorText   = lipgloss.Color("#FFFCF0")
	colorMuted  = lipgloss.Color("#6F6E69")
	colorAccent = lipgloss.Color("#3AA99F")
	colorGreen  = lipgloss.Color("#879A39")
	colorOrange = lipgloss.Color("#DA702C")
	colorRed    = lipgloss.Color("#D14D41")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorText).
			Align(lipgloss.Center)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	goodStyle = lipgloss.NewStyle().
			Foreground(colorGreen)

	warnStyle = lipgloss.NewStyle().
			Foreground(colorOrange)

	badStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorRed)
)

// table is a bordered text table for console output.
type table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// renderTitle renders a centered title bar in a bordered box.
func renderTitle(title string) string {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Width(60).
		Align(lipgloss.Center).
		Padding(0, 1)

	return border.Render(titleStyle.Render(title))
}

// renderSection renders a section heading with an underline.
func renderSection(title string) string {
	return headerStyle.Render(title) + "\n" + mutedStyle.Render(strings.Repeat("─", len(title)))
}

// renderTable renders a bordered table; the first column is left aligned and
// the rest are right aligned.
func renderTable(t table) string {
	numCols := len(t.Headers)
	if numCols == 0 {
		return ""
	}
	widths := make([]int, numCols)
	for i, h := range t.Headers {
		widths[i] = len(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < numCols && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var b strings.Builder
	if t.Title != "" {
		b.WriteString(headerStyle.Render(t.Title))
		b.WriteString("\n")
	}

	rule := func(left, mid, right string) {
		b.WriteString(mutedStyle.Render(left))
		for i, w := range widths {
			b.WriteString(mutedStyle.Render(strings.Repeat("─", w+2)))
			if i < numCols-1 {
				b.WriteString(mutedStyle.Render(mid))
			}
		}
		b.WriteString(mutedStyle.Render(right))
		b.WriteString("\n")
	}
	line := func(cells []string, style lipgloss.Style) {
		b.WriteString(mutedStyle.Render("│"))
		for i := 0; i < numCols; i++ {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			format := " %*s "
			if i == 0 {
				format = " %-*s "
			}
			b.WriteString(style.Render(fmt.Sprintf(format, widths[i], cell)))
			b.WriteString(mutedStyle.Render("│"))
		}
		b.WriteString("\n")
	}

	rule("╭", "┬", "╮")
	line(t.Headers, headerStyle)
	rule("├", "┼", "┤")
	for _, row := range t.Rows {
		line(row, lipgloss.NewStyle())
	}
	rule("╰", "┴", "╯")
	return b.String()
}
