package http

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/MKhiriev/go-clinic-keeper/internal/logger"
	"github.com/MKhiriev/go-clinic-keeper/internal/metrics"
	"github.com/MKhiriev/go-clinic-keeper/internal/service"
)

type Handler struct {
	services *service.Services
	metrics  *metrics.HTTP
	gatherer prometheus.Gatherer

	logger *logger.Logger
}

// NewHandler builds the HTTP handler. Request metrics are registered on reg
// and served on /metrics; a nil reg disables both.
func NewHandler(services *service.Services, reg *prometheus.Registry, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")

	h := &Handler{
		services: services,
		logger:   logger,
	}
	if reg != nil {
		h.metrics = metrics.NewHTTP(reg)
		h.gatherer = reg
	}
	return h
}
