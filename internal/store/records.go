// ABOUTME: Generic record storage for console resources.
// ABOUTME: Each record is a JSON object keyed by resource slug and uuid.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("record not found")

// Record is one stored resource row.
type Record struct {
	Resource  string
	ID        string
	Data      map[string]any
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Fields flattens the record into the map served over the API. Stored data
// cannot shadow id or the timestamps.
func (r *Record) Fields() map[string]any {
	out := make(map[string]any, len(r.Data)+3)
	for k, v := range r.Data {
		out[k] = v
	}
	out["id"] = r.ID
	out["created_at"] = r.CreatedAt.UTC().Format(time.RFC3339)
	out["updated_at"] = r.UpdatedAt.UTC().Format(time.RFC3339)
	return out
}

type recordRow struct {
	Resource  string `db:"resource"`
	ID        string `db:"id"`
	Data      string `db:"data"`
	CreatedAt string `db:"created_at"`
	UpdatedAt string `db:"updated_at"`
}

func (row recordRow) decode() (*Record, error) {
	rec := &Record{Resource: row.Resource, ID: row.ID, Data: map[string]any{}}
	if err := json.Unmarshal([]byte(row.Data), &rec.Data); err != nil {
		return nil, fmt.Errorf("decode record %s/%s: %w", row.Resource, row.ID, err)
	}
	rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, row.CreatedAt)
	rec.UpdatedAt, _ = time.Parse(time.RFC3339Nano, row.UpdatedAt)
	return rec, nil
}

// reservedKeys are owned by the store and stripped from incoming data.
var reservedKeys = []string{"id", "created_at", "updated_at"}

func cleanData(data map[string]any) map[string]any {
	out := make(map[string]any, len(data))
	for k, v := range data {
		out[k] = v
	}
	for _, k := range reservedKeys {
		delete(out, k)
	}
	return out
}

// ListRecords returns every record of a resource, newest first.
func (s *Store) ListRecords(ctx context.Context, resource string) ([]*Record, error) {
	var rows []recordRow
	err := s.db.SelectContext(ctx, &rows, `
		SELECT resource, id, data, created_at, updated_at
		FROM records
		WHERE resource = ?
		ORDER BY created_at DESC, id
	`, resource)
	if err != nil {
		return nil, err
	}

	records := make([]*Record, 0, len(rows))
	for _, row := range rows {
		rec, err := row.decode()
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// GetRecord returns one record or ErrNotFound.
func (s *Store) GetRecord(ctx context.Context, resource, id string) (*Record, error) {
	var row recordRow
	err := s.db.GetContext(ctx, &row, `
		SELECT resource, id, data, created_at, updated_at
		FROM records
		WHERE resource = ? AND id = ?
	`, resource, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return row.decode()
}

// CreateRecord stores data under a new uuid and returns the stored record.
func (s *Store) CreateRecord(ctx context.Context, resource string, data map[string]any) (*Record, error) {
	now := time.Now().UTC()
	rec := &Record{
		Resource:  resource,
		ID:        uuid.NewString(),
		Data:      cleanData(data),
		CreatedAt: now,
		UpdatedAt: now,
	}

	payload, err := json.Marshal(rec.Data)
	if err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}

	_, err = s.db.NamedExecContext(ctx, `
		INSERT INTO records (resource, id, data, created_at, updated_at)
		VALUES (:resource, :id, :data, :created_at, :updated_at)
	`, recordRow{
		Resource:  rec.Resource,
		ID:        rec.ID,
		Data:      string(payload),
		CreatedAt: now.Format(time.RFC3339Nano),
		UpdatedAt: now.Format(time.RFC3339Nano),
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// UpdateRecord merges data into an existing record. Keys absent from data
// keep their stored values.
func (s *Store) UpdateRecord(ctx context.Context, resource, id string, data map[string]any) (*Record, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var row recordRow
	err = tx.GetContext(ctx, &row, `
		SELECT resource, id, data, created_at, updated_at
		FROM records
		WHERE resource = ? AND id = ?
	`, resource, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	rec, err := row.decode()
	if err != nil {
		return nil, err
	}
	for k, v := range cleanData(data) {
		rec.Data[k] = v
	}
	rec.UpdatedAt = time.Now().UTC()

	payload, err := json.Marshal(rec.Data)
	if err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE records SET data = ?, updated_at = ?
		WHERE resource = ? AND id = ?
	`, string(payload), rec.UpdatedAt.Format(time.RFC3339Nano), resource, id); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return rec, nil
}

// DeleteRecord removes a record, returning ErrNotFound if it did not exist.
func (s *Store) DeleteRecord(ctx context.Context, resource, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM records WHERE resource = ? AND id = ?`, resource, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// CountRecords returns the number of records per resource.
func (s *Store) CountRecords(ctx context.Context) (map[string]int, error) {
	var rows []struct {
		Resource string `db:"resource"`
		Count    int    `db:"count"`
	}
	if err := s.db.SelectContext(ctx, &rows, `
		SELECT resource, COUNT(*) AS count FROM records GROUP BY resource
	`); err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(rows))
	for _, r := range rows {
		counts[r.Resource] = r.Count
	}
	return counts, nil
}
