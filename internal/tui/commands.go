package tui

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-clinic-keeper/models"
)

func waitForChange(changes <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return stateChangedMsg{}
	}
}

func tickRefresh() tea.Cmd {
	return tea.Tick(statusRefreshInterval, func(time.Time) tea.Msg {
		return refreshTickMsg{}
	})
}

// cmdLoadStatus reads the queue depth and the cached collection sizes. A
// depth that cannot be read is reported as -1.
func (m statusModel) cmdLoadStatus() tea.Cmd {
	return func() tea.Msg {
		msg := statusLoadedMsg{counts: make(map[models.EntityType]int, len(models.EntityTypes))}

		depth, err := m.queue.QueueLength(m.ctx)
		if err != nil {
			msg.queueDepth = -1
			msg.err = fmt.Errorf("read queue: %w", err)
		} else {
			msg.queueDepth = depth
		}

		for _, svc := range m.services.Entities() {
			records, cacheErr := svc.Cached(m.ctx)
			if cacheErr != nil {
				msg.err = errors.Join(msg.err, cacheErr)
				continue
			}
			msg.counts[svc.EntityType()] = len(records)
		}

		return msg
	}
}

func (m statusModel) cmdSync() tea.Cmd {
	return func() tea.Msg {
		return syncDoneMsg{report: m.services.SyncEngine.Sync(m.ctx)}
	}
}

// cmdRefreshLists lists every collection without filters, which refreshes the
// cache when the backend is reachable.
func (m statusModel) cmdRefreshLists() tea.Cmd {
	return func() tea.Msg {
		var msg listsRefreshedMsg
		for _, svc := range m.services.Entities() {
			if _, err := svc.List(m.ctx, nil); err != nil {
				msg.err = errors.Join(msg.err, fmt.Errorf("%s: %w", svc.EntityType().CacheKey(), err))
				continue
			}
			msg.refreshed++
		}
		return msg
	}
}
