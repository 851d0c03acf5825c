package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-clinic-keeper/internal/logger"
	"github.com/MKhiriev/go-clinic-keeper/internal/tui"
)

type App struct {
	ui      UI
	workers Background
	storage io.Closer
	logger  *logger.Logger
}

func NewApp(ui UI, workers Background, storage io.Closer, logger *logger.Logger) (*App, error) {
	if ui == nil || workers == nil {
		return nil, errors.New("client: ui and workers are required")
	}
	return &App{
		ui:      ui,
		workers: workers,
		storage: storage,
		logger:  logger,
	}, nil
}

// Run starts the workers, shows the UI and waits for both to finish. SIGINT
// and SIGTERM stop the application like a user quit does.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return a.run(ctx)
}

func (a *App) run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	workersDone := make(chan error, 1)
	go func() {
		workersDone <- a.workers.Run(ctx)
	}()
	a.logger.Info().Msg("client workers started")

	uiErr := a.ui.Run(ctx)
	if errors.Is(uiErr, tui.ErrUserQuit) {
		uiErr = nil
	}

	cancel()
	workersErr := <-workersDone
	if workersErr != nil && !errors.Is(workersErr, context.Canceled) {
		a.logger.Err(workersErr).Str("func", "App.run").Msg("client workers stopped with error")
	} else {
		workersErr = nil
	}

	var closeErr error
	if a.storage != nil {
		if err := a.storage.Close(); err != nil {
			closeErr = fmt.Errorf("close local store: %w", err)
		}
	}

	a.logger.Info().Msg("client stopped")
	return errors.Join(uiErr, workersErr, closeErr)
}
