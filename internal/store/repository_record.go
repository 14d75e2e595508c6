// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ivan Konovalov

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/ivkonovalov/shopdesk/internal/logger"
	"github.com/ivkonovalov/shopdesk/models"
)

// recordRepository is the PostgreSQL-backed implementation of
// [RecordRepository]. It owns the sparse side of the EAV engine: record
// rows in "records" and their value rows in "record_values".
//
// The write methods apply a full mutation plan inside a single
// transaction, so a record and its values are either all committed or not
// at all; a crash mid-write can never leave a record with a subset of its
// intended values.
type recordRepository struct {
	*DB
	logger *logger.Logger
}

// NewRecordRepository constructs a [RecordRepository] backed by the
// provided database connection and logger.
func NewRecordRepository(db *DB, logger *logger.Logger) RecordRepository {
	return &recordRepository{
		DB:     db,
		logger: logger,
	}
}

// ListRecords returns all record rows of an entity ordered by created_at
// descending. The result carries no values; callers bulk-fetch those with
// [recordRepository.ListValues].
func (r *recordRepository) ListRecords(ctx context.Context, entityID int64) ([]models.Record, error) {
	log := logger.FromContext(ctx)

	rows, err := r.DB.QueryContext(ctx, listRecordsQuery, entityID)
	if err != nil {
		log.Err(err).
			Str("func", "recordRepository.ListRecords").
			Int64("entity_id", entityID).
			Msg("failed to execute query for listing records")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	records := make([]models.Record, 0, 50)

	for rows.Next() {
		var record models.Record

		scanErr := rows.Scan(&record.ID, &record.EntityID, &record.CreatedAt, &record.UpdatedAt)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "recordRepository.ListRecords").
				Int64("entity_id", entityID).
				Msg("failed to scan record row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		records = append(records, record)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "recordRepository.ListRecords").
			Int64("entity_id", entityID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return records, nil
}

// GetRecord retrieves a single record row by id.
// Returns [ErrRecordNotFound] when the id matches no row.
func (r *recordRepository) GetRecord(ctx context.Context, id uuid.UUID) (models.Record, error) {
	log := logger.FromContext(ctx)

	var record models.Record
	err := r.DB.QueryRowContext(ctx, getRecordQuery, id).
		Scan(&record.ID, &record.EntityID, &record.CreatedAt, &record.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return models.Record{}, ErrRecordNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "recordRepository.GetRecord").
			Str("record_id", id.String()).
			Msg("failed to execute query for getting record")
		return models.Record{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return record, nil
}

// ListValues bulk-fetches every value row belonging to the given record
// ids with one IN query. An empty id set short-circuits to an empty slice.
func (r *recordRepository) ListValues(ctx context.Context, recordIDs []uuid.UUID) ([]models.Value, error) {
	log := logger.FromContext(ctx)

	if len(recordIDs) == 0 {
		return []models.Value{}, nil
	}

	query, args, err := buildListValuesQuery(recordIDs)
	if err != nil {
		log.Err(err).
			Str("func", "recordRepository.ListValues").
			Int("record_ids_count", len(recordIDs)).
			Msg("failed to build values query")
		return nil, err
	}

	rows, queryErr := r.DB.QueryContext(ctx, query, args...)
	if queryErr != nil {
		log.Err(queryErr).
			Str("func", "recordRepository.ListValues").
			Int("record_ids_count", len(recordIDs)).
			Msg("failed to execute query for listing values")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, queryErr)
	}
	defer rows.Close()

	values := make([]models.Value, 0, 50)

	for rows.Next() {
		var value models.Value

		scanErr := rows.Scan(
			&value.RecordID,
			&value.FieldID,
			&value.TextValue,
			&value.NumberValue,
			&value.BoolValue,
			&value.DateValue,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "recordRepository.ListValues").
				Msg("failed to scan value row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		values = append(values, value)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "recordRepository.ListValues").
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return values, nil
}

// CreateRecord inserts an empty record row and applies the mutation plan
// to it inside one transaction. The new record id is generated here; the
// returned record carries the server-assigned timestamps.
func (r *recordRepository) CreateRecord(ctx context.Context, entityID int64, mutations []models.ValueMutation) (models.Record, error) {
	log := logger.FromContext(ctx)

	record := models.Record{
		ID:       uuid.New(),
		EntityID: entityID,
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "recordRepository.CreateRecord").
			Int64("entity_id", entityID).
			Msg("failed to begin transaction")
		return models.Record{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	insertErr := tx.QueryRowContext(ctx, createRecordQuery, record.ID, record.EntityID).
		Scan(&record.CreatedAt, &record.UpdatedAt)
	if insertErr != nil {
		log.Err(insertErr).
			Str("func", "recordRepository.CreateRecord").
			Int64("entity_id", entityID).
			Msg("failed to insert record row")
		return models.Record{}, fmt.Errorf("%w: %w", ErrExecutingQuery, insertErr)
	}

	if err := r.applyMutations(ctx, tx, record.ID, mutations); err != nil {
		return models.Record{}, err
	}

	if commitErr := tx.Commit(); commitErr != nil {
		log.Err(commitErr).
			Str("func", "recordRepository.CreateRecord").
			Int64("entity_id", entityID).
			Msg("failed to commit transaction")
		return models.Record{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, commitErr)
	}

	log.Info().
		Str("func", "recordRepository.CreateRecord").
		Int64("entity_id", entityID).
		Str("record_id", record.ID.String()).
		Int("mutations_count", len(mutations)).
		Msg("successfully created record")

	return record, nil
}

// UpdateRecord applies the mutation plan to an existing record inside one
// transaction and bumps its updated_at. Returns [ErrRecordNotFound] when
// the id matches no row.
//
// The plan only ever contains fields the caller actually submitted, so an
// omitted field is never touched.
func (r *recordRepository) UpdateRecord(ctx context.Context, id uuid.UUID, mutations []models.ValueMutation) error {
	log := logger.FromContext(ctx)

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "recordRepository.UpdateRecord").
			Str("record_id", id.String()).
			Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	result, touchErr := tx.ExecContext(ctx, touchRecordQuery, id)
	if touchErr != nil {
		log.Err(touchErr).
			Str("func", "recordRepository.UpdateRecord").
			Str("record_id", id.String()).
			Msg("failed to bump record updated_at")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, touchErr)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		log.Warn().
			Str("func", "recordRepository.UpdateRecord").
			Str("record_id", id.String()).
			Msg("record not found")
		return ErrRecordNotFound
	}

	if err := r.applyMutations(ctx, tx, id, mutations); err != nil {
		return err
	}

	if commitErr := tx.Commit(); commitErr != nil {
		log.Err(commitErr).
			Str("func", "recordRepository.UpdateRecord").
			Str("record_id", id.String()).
			Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, commitErr)
	}

	log.Info().
		Str("func", "recordRepository.UpdateRecord").
		Str("record_id", id.String()).
		Int("mutations_count", len(mutations)).
		Msg("successfully updated record")

	return nil
}

// applyMutations walks the plan in order: a Clear deletes the value row
// for (record_id, field_id) outright, anything else upserts the coerced
// slot. Runs inside the caller's transaction.
func (r *recordRepository) applyMutations(ctx context.Context, tx *sql.Tx, recordID uuid.UUID, mutations []models.ValueMutation) error {
	log := logger.FromContext(ctx)

	for idx, mutation := range mutations {
		log.Debug().
			Str("func", "recordRepository.applyMutations").
			Int("iteration", idx+1).
			Int("total", len(mutations)).
			Str("record_id", recordID.String()).
			Int64("field_id", mutation.FieldID).
			Bool("clear", mutation.Clear).
			Msg("applying value mutation in transaction")

		if mutation.Clear {
			if _, err := tx.ExecContext(ctx, deleteValueQuery, recordID, mutation.FieldID); err != nil {
				log.Err(err).
					Str("func", "recordRepository.applyMutations").
					Int("iteration", idx+1).
					Int64("field_id", mutation.FieldID).
					Msg("failed to delete value row")
				return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
			}
			continue
		}

		_, err := tx.ExecContext(ctx, upsertValueQuery,
			recordID,
			mutation.FieldID,
			mutation.Value.TextValue,
			mutation.Value.NumberValue,
			mutation.Value.BoolValue,
			mutation.Value.DateValue,
		)
		if err != nil {
			log.Err(err).
				Str("func", "recordRepository.applyMutations").
				Int("iteration", idx+1).
				Int64("field_id", mutation.FieldID).
				Msg("failed to upsert value row")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	return nil
}

// DeleteRecord removes a record row; its values go with it through
// ON DELETE CASCADE. Returns [ErrRecordNotFound] when the id matches no row.
func (r *recordRepository) DeleteRecord(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContext(ctx)

	result, err := r.DB.ExecContext(ctx, deleteRecordQuery, id)
	if err != nil {
		log.Err(err).
			Str("func", "recordRepository.DeleteRecord").
			Str("record_id", id.String()).
			Msg("failed to execute delete query")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		log.Warn().
			Str("func", "recordRepository.DeleteRecord").
			Str("record_id", id.String()).
			Msg("record not found")
		return ErrRecordNotFound
	}

	log.Info().
		Str("func", "recordRepository.DeleteRecord").
		Str("record_id", id.String()).
		Msg("successfully deleted record with its values")

	return nil
}

// ValueExists probes for another record of the entity already storing the
// given slot value for a unique-flagged field.
func (r *recordRepository) ValueExists(ctx context.Context, fieldID int64, value models.Value, excludeRecordID uuid.UUID) (bool, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildValueExistsQuery(fieldID, value, excludeRecordID)
	if err != nil {
		log.Err(err).
			Str("func", "recordRepository.ValueExists").
			Int64("field_id", fieldID).
			Msg("failed to build uniqueness query")
		return false, err
	}

	var one int
	queryErr := r.DB.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(queryErr, sql.ErrNoRows) {
		return false, nil
	}
	if queryErr != nil {
		log.Err(queryErr).
			Str("func", "recordRepository.ValueExists").
			Int64("field_id", fieldID).
			Msg("failed to execute uniqueness query")
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, queryErr)
	}

	return true, nil
}
