// Package server runs the reference backend's HTTP transport, including
// signal handling and graceful shutdown.
package server
