// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/MKhiriev/go-clinic-keeper/models"
)

func renderBuildInfoWindow(info models.AppBuildInfo) string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		field("App", "Clinic Keeper"),
		field("Version", info.BuildVersion()),
		field("Built", info.BuildDate()),
		field("Commit", info.BuildCommit()),
	)

	return renderPage(titleStyle.Render("BUILD INFO"), body, "esc: back")
}
