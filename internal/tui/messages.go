package tui

import (
	"github.com/MKhiriev/go-clinic-keeper/models"
)

// stateChangedMsg signals that the connectivity state or the sync busy flag
// may have changed.
type stateChangedMsg struct{}

type statusLoadedMsg struct {
	queueDepth int
	counts     map[models.EntityType]int
	err        error
}

type syncDoneMsg struct {
	report models.SyncReport
}

type listsRefreshedMsg struct {
	refreshed int
	err       error
}

type refreshTickMsg struct{}
