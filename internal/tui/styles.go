package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/MKhiriev/go-clinic-keeper/models"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	helpStyle  = lipgloss.NewStyle().Faint(true)
	errorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))

	badgeStyle    = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	onlineBadge   = badgeStyle.Background(lipgloss.Color("2")).Foreground(lipgloss.Color("0"))
	offlineBadge  = badgeStyle.Background(lipgloss.Color("1")).Foreground(lipgloss.Color("15"))
	checkingBadge = badgeStyle.Background(lipgloss.Color("3")).Foreground(lipgloss.Color("0"))
)

func connectivityBadge(state models.ConnectivityState) string {
	switch state {
	case models.StateOnline:
		return onlineBadge.Render("ONLINE")
	case models.StateChecking:
		return checkingBadge.Render("CHECKING")
	default:
		return offlineBadge.Render("OFFLINE")
	}
}
