package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// RenderFormSection draws content inside a rounded box whose top border
// carries the title and an optional (hint):
//
//	╭─ Email (required) ─────╮
//	│ ada@example.com        │
//	╰────────────────────────╯
//
// Lines wider than the box are truncated. width is the outer width and is
// clamped to at least 3.
func RenderFormSection(content []string, title, hint string, width int, focused bool, focusColor lipgloss.TerminalColor) string {
	width = max(width, 3)
	inner := width - 2

	var borderColor lipgloss.TerminalColor = BorderDefaultColor
	if focused {
		borderColor = focusColor
	}
	border := lipgloss.NewStyle().Foreground(borderColor)
	titleStyle := lipgloss.NewStyle().Foreground(TextPrimaryColor)
	if focused {
		titleStyle = titleStyle.Foreground(focusColor).Bold(true)
	}

	var top string
	if title == "" || inner < 4 {
		top = border.Render("╭" + strings.Repeat("─", inner) + "╮")
	} else {
		label := "─ " + title
		if hint != "" {
			label += " (" + hint + ")"
		}
		label += " "
		if ansi.StringWidth(label) > inner {
			label = ansi.Truncate(label, inner, "…")
		}
		fill := inner - ansi.StringWidth(label)
		// Color the leading dash as border, the rest as title text.
		rest := strings.TrimPrefix(label, "─")
		top = border.Render("╭─") + titleStyle.Render(rest) + border.Render(strings.Repeat("─", fill)+"╮")
	}

	var sb strings.Builder
	sb.WriteString(top)
	sb.WriteString("\n")
	for _, line := range content {
		if ansi.StringWidth(line) > inner {
			line = ansi.Truncate(line, inner, "")
		}
		pad := inner - ansi.StringWidth(line)
		sb.WriteString(border.Render("│"))
		sb.WriteString(line)
		sb.WriteString(strings.Repeat(" ", pad))
		sb.WriteString(border.Render("│"))
		sb.WriteString("\n")
	}
	sb.WriteString(border.Render("╰" + strings.Repeat("─", inner) + "╯"))
	return sb.String()
}
