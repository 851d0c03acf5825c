package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-clinic-keeper/internal/logger"
	"github.com/MKhiriev/go-clinic-keeper/internal/service"
	"github.com/MKhiriev/go-clinic-keeper/models"
)

var ErrUserQuit = errors.New("user quit")

// QueueCounter reports the number of queued mutations.
type QueueCounter interface {
	QueueLength(ctx context.Context) (int, error)
}

type TUI struct {
	services  *service.ClientServices
	queue     QueueCounter
	buildInfo models.AppBuildInfo
	logger    *logger.Logger
}

func New(services *service.ClientServices, queue QueueCounter, buildInfo models.AppBuildInfo, logger *logger.Logger) (*TUI, error) {
	if services == nil || queue == nil {
		return nil, errors.New("tui: services and queue counter are required")
	}
	return &TUI{
		services:  services,
		queue:     queue,
		buildInfo: buildInfo,
		logger:    logger.WithComponent("tui"),
	}, nil
}

// Run shows the status screen until the user quits or ctx is cancelled. A
// quit by the user is reported as [ErrUserQuit].
func (t *TUI) Run(ctx context.Context) error {
	changes := make(chan struct{}, 1)
	notify := func() {
		select {
		case changes <- struct{}{}:
		default:
		}
	}

	unsubscribeState := t.services.Monitor.Subscribe(func(models.ConnectivityState) { notify() })
	defer unsubscribeState()
	unsubscribeBusy := t.services.SyncEngine.Subscribe(func(bool) { notify() })
	defer unsubscribeBusy()

	model := newStatusModel(ctx, t.services, t.queue, t.buildInfo, changes)
	finalModel, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		t.logger.Err(err).Str("func", "TUI.Run").Msg("status screen failed")
		return fmt.Errorf("run status screen: %w", err)
	}

	result, ok := finalModel.(statusModel)
	if !ok {
		return tea.ErrProgramKilled
	}
	if result.quitByUser {
		return ErrUserQuit
	}
	return nil
}
