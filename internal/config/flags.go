package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses the process command line into a [StructuredConfig].
//
// Flags:
//
//	-a server listen address in format [host]:[port]
//	-s backend address used by the client (URL or host:port)
//	-d database DSN (SQLite path on the client, PostgreSQL DSN on the server)
//	-c/-config json file path with configs
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-probe-interval health probe interval
//	-probe-timeout health probe timeout
//	-health-path backend liveness path
//	-sync-interval scheduled sync interval
//	-metrics-address client metrics listen address
//	-log-level log level
//	-log-file client log file
func ParseFlags(args []string) (*StructuredConfig, error) {
	return parseFlags(args)
}

func parseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("clinic-keeper", flag.ContinueOnError)

	var serverAddress NetAddress
	var backendAddress string
	var databaseDSN string
	var jsonConfigPath string
	var requestTimeout time.Duration
	var probeInterval, probeTimeout time.Duration
	var healthPath string
	var syncInterval time.Duration
	var metricsAddress string
	var logLevel, logFile string

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&backendAddress, "s", "", "Backend address")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.DurationVar(&probeInterval, "probe-interval", 0, "Health probe interval")
	fs.DurationVar(&probeTimeout, "probe-timeout", 0, "Health probe timeout")
	fs.StringVar(&healthPath, "health-path", "", "Backend liveness path")
	fs.DurationVar(&syncInterval, "sync-interval", 0, "Scheduled sync interval")
	fs.StringVar(&metricsAddress, "metrics-address", "", "Client metrics listen address")
	fs.StringVar(&logLevel, "log-level", "", "Log level")
	fs.StringVar(&logFile, "log-file", "", "Client log file")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return &StructuredConfig{
		App: App{
			LogLevel: logLevel,
			LogFile:  logFile,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Adapter: Adapter{
			HTTPAddress:    backendAddress,
			RequestTimeout: requestTimeout,
		},
		Connectivity: Connectivity{
			ProbeInterval: probeInterval,
			ProbeTimeout:  probeTimeout,
			HealthPath:    healthPath,
		},
		Workers: Workers{
			SyncInterval:   syncInterval,
			MetricsAddress: metricsAddress,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" && host != "" {
		ip := net.ParseIP(host)
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
