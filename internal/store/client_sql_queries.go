// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

const (
	putCacheEntry = `
		INSERT INTO cache (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET
			value      = excluded.value,
			updated_at = excluded.updated_at;`

	getCacheEntry = `
		SELECT value
		FROM cache
		WHERE key = ?;`

	insertQueuedMutation = `
		INSERT INTO mutation_queue (
			id,
			kind,
			entity_type,
			entity_id,
			payload,
			provisional_id,
			enqueued_at
		) VALUES (?, ?, ?, ?, ?, ?, ?);`

	listQueuedMutations = `
		SELECT
			id,
			kind,
			entity_type,
			entity_id,
			payload,
			provisional_id,
			enqueued_at
		FROM mutation_queue
		ORDER BY enqueued_at, seq;`

	removeQueuedMutation = `
		DELETE FROM mutation_queue
		WHERE id = ?;`

	clearQueuedMutations = `DELETE FROM mutation_queue;`

	countQueuedMutations = `SELECT COUNT(*) FROM mutation_queue;`

	maxEnqueuedAt = `SELECT COALESCE(MAX(enqueued_at), 0) FROM mutation_queue;`
)
