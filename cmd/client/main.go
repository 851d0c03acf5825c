package main

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/MKhiriev/go-clinic-keeper/internal/adapter"
	"github.com/MKhiriev/go-clinic-keeper/internal/client"
	"github.com/MKhiriev/go-clinic-keeper/internal/config"
	"github.com/MKhiriev/go-clinic-keeper/internal/logger"
	"github.com/MKhiriev/go-clinic-keeper/internal/metrics"
	"github.com/MKhiriev/go-clinic-keeper/internal/platform"
	"github.com/MKhiriev/go-clinic-keeper/internal/service"
	"github.com/MKhiriev/go-clinic-keeper/internal/store"
	"github.com/MKhiriev/go-clinic-keeper/internal/tui"
	"github.com/MKhiriev/go-clinic-keeper/internal/workers"
	"github.com/MKhiriev/go-clinic-keeper/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	cfg, err := config.GetClientConfig()
	if err != nil {
		logger.NewLogger("clinic-client").Fatal().Err(err).Msg("error getting configs")
	}

	log := logger.NewClientLogger("clinic-client", cfg.App.LogFile)
	logger.SetLevel(cfg.App.LogLevel)
	log.Debug().Any("config", cfg).Msg("received configs")

	storages, err := store.NewClientStorages(context.Background(), cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create local storage")
	}

	remote, err := adapter.NewHTTPEntityAdapter(cfg.Adapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create entity adapter")
	}
	prober, err := adapter.NewHTTPProber(cfg.Adapter, cfg.Connectivity.HealthPath)
	if err != nil {
		log.Fatal().Err(err).Msg("create health prober")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())

	services, err := service.NewClientServices(service.ClientDeps{
		LocalStore: storages.LocalStore,
		Remote:     remote,
		Prober:     prober,
		Platform:   platform.NewWatcher(cfg.Connectivity.PlatformPollInterval, log),
		Metrics:    metrics.NewSync(reg),
	}, cfg.Connectivity, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create client services")
	}

	info := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	log.Info().Stringer("build", info).Msg("starting clinic client")
	ui, err := tui.New(services, storages.LocalStore, info, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating ui")
	}

	app, err := client.NewApp(ui, workers.NewClientWorkers(services, cfg.Workers, reg, log), storages, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	if err = app.Run(); err != nil {
		log.Fatal().Err(err).Msg("client run error")
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
