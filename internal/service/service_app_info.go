package service

import (
	"context"

	"github.com/MKhiriev/go-clinic-keeper/internal/logger"
	"github.com/MKhiriev/go-clinic-keeper/models"
)

// buildInfoService serves the build metadata the backend binary was linked
// with. The value never changes after construction.
type buildInfoService struct {
	info models.AppBuildInfo
}

// NewAppInfoService rejects binaries built without a version, since clients
// and operators rely on /api/version to tell deployments apart.
func NewAppInfoService(info models.AppBuildInfo, log *logger.Logger) (AppInfoService, error) {
	if info.BuildVersion() == "" {
		log.Error().Str("func", "NewAppInfoService").Msg("backend built without a version")
		return nil, ErrVersionIsNotSpecified
	}

	return buildInfoService{info: info}, nil
}

func (s buildInfoService) GetBuildInfo(context.Context) models.AppBuildInfo {
	return s.info
}
