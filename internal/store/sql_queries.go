package store

import (
	"context"
	"fmt"
	"slices"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-clinic-keeper/models"
)

const recordsTable = "records"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// buildListRecordsQuery selects every record of entityType whose data matches
// params. Each filter compares the text form of a top-level jsonb field.
// Filters are applied in key order so identical params produce identical SQL.
func buildListRecordsQuery(_ context.Context, entityType models.EntityType, params models.ListParams) (string, []any, error) {
	builder := psql.
		Select("id", "data").
		From(recordsTable).
		Where(sq.Eq{"entity_type": string(entityType)})

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, k := range keys {
		builder = builder.Where(sq.Expr("data->>? = ?", k, params[k]))
	}

	query, args, err := builder.OrderBy("created_at", "id").ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

func buildGetRecordQuery(_ context.Context, entityType models.EntityType, id string) (string, []any, error) {
	query, args, err := psql.
		Select("id", "data").
		From(recordsTable).
		Where(sq.Eq{"entity_type": string(entityType), "id": id}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

func buildInsertRecordQuery(_ context.Context, entityType models.EntityType, id string, data []byte) (string, []any, error) {
	query, args, err := psql.
		Insert(recordsTable).
		Columns("id", "entity_type", "data").
		Values(id, string(entityType), string(data)).
		Suffix("RETURNING id, data").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildPatchRecordQuery merges patch into the stored jsonb document. Keys in
// patch overwrite, keys absent from patch are kept.
func buildPatchRecordQuery(_ context.Context, entityType models.EntityType, id string, patch []byte) (string, []any, error) {
	query, args, err := psql.
		Update(recordsTable).
		Set("data", sq.Expr("data || ?::jsonb", string(patch))).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"entity_type": string(entityType), "id": id}).
		Suffix("RETURNING id, data").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

func buildDeleteRecordQuery(_ context.Context, entityType models.EntityType, id string) (string, []any, error) {
	query, args, err := psql.
		Delete(recordsTable).
		Where(sq.Eq{"entity_type": string(entityType), "id": id}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}
