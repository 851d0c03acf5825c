package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"maps"

	"github.com/jackc/pgerrcode"

	"github.com/MKhiriev/go-clinic-keeper/internal/logger"
	"github.com/MKhiriev/go-clinic-keeper/models"
)

// recordRepository is the PostgreSQL-backed implementation of
// [RecordRepository]. Records live in the "records" table as a jsonb
// document keyed by (entity_type, id); the id is kept out of the document and
// re-attached on read.
type recordRepository struct {
	*DB
	logger *logger.Logger
}

// NewRecordRepository constructs a [RecordRepository] backed by db.
func NewRecordRepository(db *DB, logger *logger.Logger) RecordRepository {
	return &recordRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *recordRepository) List(ctx context.Context, entityType models.EntityType, params models.ListParams) ([]models.Record, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListRecordsQuery(ctx, entityType, params)
	if err != nil {
		log.Err(err).Str("func", "recordRepository.List").Msg("failed to create query")
		return nil, err
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "recordRepository.List").
			Str("entity_type", string(entityType)).
			Int("filters", len(params)).
			Msg("failed to execute query for listing records")
		return nil, wrapDriverError(r.errorClassificator, ErrExecutingQuery, err)
	}
	defer rows.Close()

	records := make([]models.Record, 0, 16)
	for rows.Next() {
		rec, scanErr := scanRecord(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "recordRepository.List").Msg("failed to scan record row")
			if errors.Is(scanErr, ErrScanningRow) {
				return nil, scanErr
			}
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		records = append(records, rec)
	}

	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", "recordRepository.List").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return records, nil
}

func (r *recordRepository) Get(ctx context.Context, entityType models.EntityType, id string) (models.Record, error) {
	query, args, err := buildGetRecordQuery(ctx, entityType, id)
	if err != nil {
		return nil, err
	}

	return r.queryOne(ctx, "recordRepository.Get", entityType, id, ErrExecutingQuery, query, args)
}

func (r *recordRepository) Create(ctx context.Context, entityType models.EntityType, id string, data models.Record) (models.Record, error) {
	doc, err := encodeDocument(data)
	if err != nil {
		return nil, err
	}

	query, args, err := buildInsertRecordQuery(ctx, entityType, id, doc)
	if err != nil {
		return nil, err
	}

	rec, err := r.queryOne(ctx, "recordRepository.Create", entityType, id, ErrExecutingStatement, query, args)
	if postgresError(err) == pgerrcode.UniqueViolation {
		return nil, fmt.Errorf("%w: %s %s", ErrRecordAlreadyExists, entityType, id)
	}

	return rec, err
}

func (r *recordRepository) Patch(ctx context.Context, entityType models.EntityType, id string, patch models.Record) (models.Record, error) {
	doc, err := encodeDocument(patch)
	if err != nil {
		return nil, err
	}

	query, args, err := buildPatchRecordQuery(ctx, entityType, id, doc)
	if err != nil {
		return nil, err
	}

	return r.queryOne(ctx, "recordRepository.Patch", entityType, id, ErrExecutingStatement, query, args)
}

func (r *recordRepository) Delete(ctx context.Context, entityType models.EntityType, id string) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteRecordQuery(ctx, entityType, id)
	if err != nil {
		return err
	}

	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "recordRepository.Delete").
			Str("entity_type", string(entityType)).
			Str("entity_id", id).
			Msg("failed to delete record")
		return wrapDriverError(r.errorClassificator, ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s %s", ErrRecordNotFound, entityType, id)
	}

	return nil
}

// queryOne runs a statement returning a single (id, data) row.
func (r *recordRepository) queryOne(ctx context.Context, fn string, entityType models.EntityType, id string, sentinel error, query string, args []any) (models.Record, error) {
	rec, err := scanRecord(r.DB.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s %s", ErrRecordNotFound, entityType, id)
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", fn).
			Str("entity_type", string(entityType)).
			Str("entity_id", id).
			Msg("record query failed")
		if errors.Is(err, ErrScanningRow) {
			return nil, err
		}
		return nil, wrapDriverError(r.errorClassificator, sentinel, err)
	}

	return rec, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (models.Record, error) {
	var (
		id  string
		raw []byte
	)
	if err := row.Scan(&id, &raw); err != nil {
		return nil, err
	}

	rec := models.Record{}
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	rec[models.IDField] = id

	return rec, nil
}

// encodeDocument serialises data without its id field.
func encodeDocument(data models.Record) ([]byte, error) {
	doc := maps.Clone(data)
	if doc == nil {
		doc = models.Record{}
	}
	delete(doc, models.IDField)

	b, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: encode record: %w", ErrBuildingSQLQuery, err)
	}
	return b, nil
}
