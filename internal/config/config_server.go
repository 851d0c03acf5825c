package config

import (
	"fmt"
	"time"
)

// ServerConfig is the reference backend configuration assembled from
// [StructuredConfig].
type ServerConfig struct {
	App     ClientApp
	Server  Server
	Storage Storage
}

// GetServerConfig builds and validates the backend config view from the
// merged structured configuration.
func GetServerConfig() (*ServerConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	serverCfg := &ServerConfig{
		App:     ClientApp{LogLevel: cfg.App.LogLevel},
		Server:  cfg.Server,
		Storage: cfg.Storage,
	}
	if serverCfg.Server.RequestTimeout == 0 {
		serverCfg.Server.RequestTimeout = 30 * time.Second
	}

	return serverCfg, serverCfg.validate()
}
