package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-clinic-keeper/internal/config"
	"github.com/MKhiriev/go-clinic-keeper/internal/logger"
)

// ClientStorages groups the client-side storage layer into a single value
// that can be passed around the service layer.
type ClientStorages struct {
	// LocalStore is the SQLite-backed cache and mutation queue.
	LocalStore LocalStore

	closer interface{ Close() error }
}

// NewClientStorages builds the client storage layer and opens it eagerly so
// that an unusable database file is reported at startup rather than on the
// first read or write. The returned error wraps [ErrStorageUnavailable] in
// that case.
func NewClientStorages(ctx context.Context, cfg config.ClientStorage, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Msg("creating new storages...")

	local := newLocalStore(cfg.DB, logger)
	if err := local.Open(ctx); err != nil {
		return nil, fmt.Errorf("local store: %w", err)
	}

	return &ClientStorages{
		LocalStore: local,
		closer:     local,
	}, nil
}

// Close releases the database handle.
func (s *ClientStorages) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}
