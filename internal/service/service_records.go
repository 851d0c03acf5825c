package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-clinic-keeper/internal/logger"
	"github.com/MKhiriev/go-clinic-keeper/internal/store"
	"github.com/MKhiriev/go-clinic-keeper/internal/utils"
	"github.com/MKhiriev/go-clinic-keeper/models"
)

type recordService struct {
	recordRepository store.RecordRepository
	ids              *utils.UUIDGenerator

	logger *logger.Logger
}

func NewRecordService(recordRepository store.RecordRepository, logger *logger.Logger) RecordService {
	return &recordService{
		recordRepository: recordRepository,
		ids:              utils.NewUUIDGenerator(),
		logger:           logger,
	}
}

func (s *recordService) List(ctx context.Context, entityType models.EntityType, params models.ListParams) ([]models.Record, error) {
	records, err := s.recordRepository.List(ctx, entityType, params)
	return records, mapStoreError(err)
}

func (s *recordService) Get(ctx context.Context, entityType models.EntityType, id string) (models.Record, error) {
	if err := checkRecordID(id); err != nil {
		return nil, err
	}
	record, err := s.recordRepository.Get(ctx, entityType, id)
	return record, mapStoreError(err)
}

func (s *recordService) Create(ctx context.Context, entityType models.EntityType, data models.Record) (models.Record, error) {
	record, err := s.recordRepository.Create(ctx, entityType, s.ids.Generate(), data)
	return record, mapStoreError(err)
}

func (s *recordService) Update(ctx context.Context, entityType models.EntityType, id string, data models.Record) (models.Record, error) {
	if err := checkRecordID(id); err != nil {
		return nil, err
	}
	record, err := s.recordRepository.Patch(ctx, entityType, id, data)
	return record, mapStoreError(err)
}

func (s *recordService) Delete(ctx context.Context, entityType models.EntityType, id string) error {
	if err := checkRecordID(id); err != nil {
		return err
	}
	return mapStoreError(s.recordRepository.Delete(ctx, entityType, id))
}

// checkRecordID rejects ids that cannot exist in the uuid column, such as
// provisional ids leaking from a client.
func checkRecordID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %q", ErrRecordNotFound, id)
	}
	return nil
}

func mapStoreError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrRecordNotFound):
		return fmt.Errorf("%w: %w", ErrRecordNotFound, err)
	case errors.Is(err, store.ErrTransient):
		return fmt.Errorf("%w: %w", ErrServiceUnavailable, err)
	default:
		return err
	}
}
