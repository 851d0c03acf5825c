package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-clinic-keeper/internal/service"
	"github.com/MKhiriev/go-clinic-keeper/models"
)

const statusRefreshInterval = 2 * time.Second

type statusModel struct {
	ctx       context.Context
	services  *service.ClientServices
	queue     QueueCounter
	buildInfo models.AppBuildInfo
	changes   <-chan struct{}

	spinner    spinner.Model
	state      models.ConnectivityState
	busy       bool
	queueDepth int
	counts     map[models.EntityType]int
	lastSync   *models.SyncReport
	status     string
	err        error

	showBuildInfo bool
	quitByUser    bool
}

func newStatusModel(
	ctx context.Context,
	services *service.ClientServices,
	queue QueueCounter,
	buildInfo models.AppBuildInfo,
	changes <-chan struct{},
) statusModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot

	return statusModel{
		ctx:       ctx,
		services:  services,
		queue:     queue,
		buildInfo: buildInfo,
		changes:   changes,
		spinner:   s,
		state:     services.Monitor.State(),
		busy:      services.SyncEngine.Busy(),
		counts:    make(map[models.EntityType]int, len(models.EntityTypes)),
	}
}

func (m statusModel) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.cmdLoadStatus(),
		waitForChange(m.changes),
		tickRefresh(),
	}
	if m.busy {
		cmds = append(cmds, m.spinner.Tick)
	}
	return tea.Batch(cmds...)
}

func (m statusModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case stateChangedMsg:
		wasBusy := m.busy
		m.state = m.services.Monitor.State()
		m.busy = m.services.SyncEngine.Busy()

		cmds := []tea.Cmd{waitForChange(m.changes), m.cmdLoadStatus()}
		if m.busy && !wasBusy {
			cmds = append(cmds, m.spinner.Tick)
		}
		return m, tea.Batch(cmds...)

	case statusLoadedMsg:
		m.err = msg.err
		if msg.queueDepth >= 0 {
			m.queueDepth = msg.queueDepth
		}
		for et, n := range msg.counts {
			m.counts[et] = n
		}
		return m, nil

	case syncDoneMsg:
		report := msg.report
		m.lastSync = &report
		m.status = describeSync(report)
		return m, m.cmdLoadStatus()

	case listsRefreshedMsg:
		m.status = fmt.Sprintf("Refreshed %d of %d collections", msg.refreshed, len(models.EntityTypes))
		if msg.err != nil {
			m.status += ": " + humanizeError(msg.err)
		}
		return m, m.cmdLoadStatus()

	case refreshTickMsg:
		return m, tea.Batch(m.cmdLoadStatus(), tickRefresh())

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m statusModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.quit):
		m.quitByUser = true
		return m, tea.Quit
	case m.showBuildInfo:
		if key.Matches(msg, keys.esc) || key.Matches(msg, keys.buildInfo) {
			m.showBuildInfo = false
		}
		return m, nil
	case key.Matches(msg, keys.buildInfo):
		m.showBuildInfo = true
		return m, nil
	case key.Matches(msg, keys.sync):
		m.status = "Sync requested"
		return m, m.cmdSync()
	case key.Matches(msg, keys.refresh):
		m.status = "Refreshing collections..."
		return m, m.cmdRefreshLists()
	}
	return m, nil
}

func (m statusModel) View() string {
	if m.showBuildInfo {
		return renderBuildInfoWindow(m.buildInfo)
	}

	var b strings.Builder
	b.WriteString("Connection: ")
	b.WriteString(connectivityBadge(m.state))
	b.WriteString("\n")

	if m.busy {
		b.WriteString("Sync:       " + m.spinner.View() + " syncing...\n")
	} else {
		b.WriteString("Sync:       idle\n")
	}
	fmt.Fprintf(&b, "Queued:     %d\n\n", m.queueDepth)

	b.WriteString(titleStyle.Render("Cached records"))
	b.WriteString("\n")
	for _, et := range models.EntityTypes {
		fmt.Fprintf(&b, "  %-16s %d\n", et.CacheKey(), m.counts[et])
	}

	if m.lastSync != nil && !m.lastSync.Skipped {
		fmt.Fprintf(&b, "\nLast sync:  %s\n", m.lastSync.Started.Format(time.TimeOnly))
	}
	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(helpStyle.Render(m.status))
	}
	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(humanizeError(m.err)))
	}

	return renderPage(titleStyle.Render("CLINIC KEEPER"), b.String(), "s: sync now | r: refresh lists | v: build info | q: quit")
}

func describeSync(r models.SyncReport) string {
	switch {
	case r.Skipped:
		return "Sync already running"
	case r.Err != nil:
		return "Sync failed: " + humanizeError(r.Err)
	case r.Replayed == 0 && r.Failed == 0:
		return "Nothing to sync"
	}
	return fmt.Sprintf("Synced %d, failed %d", r.Replayed, r.Failed)
}
