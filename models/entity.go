// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "fmt"

// EntityType names a kind of record handled uniformly by the offline sync
// core. Every record stored in the local cache, every queued mutation and
// every remote call is tagged with exactly one EntityType.
type EntityType string

const (
	// EntityClient is a clinic client (patient) record.
	EntityClient EntityType = "client"

	// EntityHearingReport is a hearing-test report attached to a client.
	EntityHearingReport EntityType = "hearingReport"

	// EntityReminder is a follow-up reminder attached to a client.
	EntityReminder EntityType = "reminder"
)

// EntityTypes lists all supported entity types in a stable order.
var EntityTypes = []EntityType{EntityClient, EntityHearingReport, EntityReminder}

// CacheKey returns the name of the cached collection holding records of
// this type ("clients", "hearingReports", "reminders").
func (e EntityType) CacheKey() string {
	switch e {
	case EntityClient:
		return "clients"
	case EntityHearingReport:
		return "hearingReports"
	case EntityReminder:
		return "reminders"
	}
	return ""
}

// Path returns the REST collection segment used by the backend for this type.
func (e EntityType) Path() string {
	switch e {
	case EntityClient:
		return "clients"
	case EntityHearingReport:
		return "hearing-reports"
	case EntityReminder:
		return "reminders"
	}
	return ""
}

// Valid reports whether e is one of the supported entity types.
func (e EntityType) Valid() bool {
	return e.CacheKey() != ""
}

// ParseEntityPath resolves a REST collection segment back to its EntityType.
func ParseEntityPath(path string) (EntityType, error) {
	for _, e := range EntityTypes {
		if e.Path() == path {
			return e, nil
		}
	}
	return "", fmt.Errorf("unknown entity collection %q", path)
}
