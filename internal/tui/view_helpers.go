package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const pageWidth = 54

var (
	bodyStyle  = lipgloss.NewStyle().PaddingLeft(2)
	ruleStyle  = lipgloss.NewStyle().Faint(true)
	labelStyle = lipgloss.NewStyle().Width(10).Faint(true)
)

// renderPage frames body between two rules under title, with the key hints
// at the bottom. An empty body renders as a single dash.
func renderPage(title, body, hints string) string {
	if strings.TrimSpace(body) == "" {
		body = "-"
	}
	rule := ruleStyle.Render(strings.Repeat("─", pageWidth))

	blocks := []string{
		title,
		bodyStyle.Render(rule),
		"",
		bodyStyle.Render(body),
		"",
		bodyStyle.Render(rule),
	}
	if strings.TrimSpace(hints) != "" {
		blocks = append(blocks, bodyStyle.Render(helpStyle.Render(hints)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, blocks...)
}

// field renders one "label value" row, substituting N/A for blank values.
func field(label, value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		value = "N/A"
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), value)
}
