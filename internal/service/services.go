package service

import (
	"github.com/MKhiriev/go-clinic-keeper/internal/logger"
	"github.com/MKhiriev/go-clinic-keeper/internal/store"
	"github.com/MKhiriev/go-clinic-keeper/models"
)

// Services groups the reference backend services.
type Services struct {
	AppInfoService AppInfoService
	RecordService  RecordService
}

func NewServices(storages *store.Storages, info models.AppBuildInfo, logger *logger.Logger) (*Services, error) {
	appInfo, err := NewAppInfoService(info, logger)
	if err != nil {
		return nil, err
	}

	return &Services{
		AppInfoService: appInfo,
		RecordService:  NewRecordValidationService().Wrap(NewRecordService(storages.RecordRepository, logger)),
	}, nil
}
