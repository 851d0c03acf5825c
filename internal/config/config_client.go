package config

import (
	"fmt"
	"time"
)

// ClientApp holds client process settings.
type ClientApp struct {
	LogLevel string
	LogFile  string
}

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// HTTPAddress is the backend address used by the client.
	HTTPAddress string
	// RequestTimeout bounds every remote entity call.
	RequestTimeout time.Duration
}

// ClientDB contains local database settings for the client.
type ClientDB struct {
	// DSN is the SQLite file path of the local store.
	DSN string
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	DB ClientDB
}

// ClientConnectivity holds monitor settings.
type ClientConnectivity struct {
	ProbeInterval        time.Duration
	ProbeTimeout         time.Duration
	HealthPath           string
	PlatformPollInterval time.Duration
}

// ClientWorkers contains client background worker settings.
type ClientWorkers struct {
	// SyncInterval defines how often the scheduled sync job runs.
	SyncInterval time.Duration
	// MetricsAddress exposes /metrics when non-empty.
	MetricsAddress string
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	App          ClientApp
	Adapter      ClientAdapter
	Storage      ClientStorage
	Connectivity ClientConnectivity
	Workers      ClientWorkers
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := newClientConfig(cfg)

	return clientCfg, clientCfg.validate()
}

func newClientConfig(cfg *StructuredConfig) *ClientConfig {
	clientCfg := &ClientConfig{
		App: ClientApp{
			LogLevel: cfg.App.LogLevel,
			LogFile:  cfg.App.LogFile,
		},
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Storage: ClientStorage{
			DB: ClientDB{
				DSN: cfg.Storage.DB.DSN,
			},
		},
		Connectivity: ClientConnectivity{
			ProbeInterval:        cfg.Connectivity.ProbeInterval,
			ProbeTimeout:         cfg.Connectivity.ProbeTimeout,
			HealthPath:           cfg.Connectivity.HealthPath,
			PlatformPollInterval: cfg.Connectivity.PlatformPollInterval,
		},
		Workers: ClientWorkers{
			SyncInterval:   cfg.Workers.SyncInterval,
			MetricsAddress: cfg.Workers.MetricsAddress,
		},
	}

	clientCfg.applyDefaults()
	return clientCfg
}

func (cfg *ClientConfig) applyDefaults() {
	if cfg.Adapter.RequestTimeout == 0 {
		cfg.Adapter.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.Connectivity.ProbeInterval == 0 {
		cfg.Connectivity.ProbeInterval = DefaultProbeInterval
	}
	if cfg.Connectivity.ProbeTimeout == 0 {
		cfg.Connectivity.ProbeTimeout = DefaultProbeTimeout
	}
	if cfg.Connectivity.HealthPath == "" {
		cfg.Connectivity.HealthPath = DefaultHealthPath
	}
	if cfg.Connectivity.PlatformPollInterval == 0 {
		cfg.Connectivity.PlatformPollInterval = DefaultPlatformPollInterval
	}
	if cfg.Workers.SyncInterval == 0 {
		cfg.Workers.SyncInterval = DefaultSyncInterval
	}
}
