// Package http implements the REST transport of the reference backend.
//
// It exposes the five record operations per entity collection, the health
// endpoint probed by clients and the metrics endpoint. Request tracing,
// access logging and request metrics are handled here before requests reach
// the service layer.
package http
