// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators holds the field contracts of the clinic entities and the
// go-playground/validator wiring that enforces them.
//
// Each entity type (client, hearing report, reminder) declares which fields it
// requires and how they are shaped. The same contracts are applied by the
// client facades before anything is cached or queued, and by the reference
// backend before a record reaches Postgres.
//
// Passing field names to Validate restricts checking to those fields. Updates
// use this, so a patch that omits a required field is still accepted.
package validators

import "context"

// Validator checks a value against an entity contract.
type Validator interface {
	Validate(ctx context.Context, value any, fields ...string) error
}
