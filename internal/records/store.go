package records

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/cockroachdb/errors"

	"github.com/ziadkadry99/string-analyzer/internal/analyzer"
	"github.com/ziadkadry99/string-analyzer/internal/db"
)

var (
	// ErrDuplicate is returned when a string with the same hash is already stored.
	ErrDuplicate = errors.New("string already exists in the system")
	// ErrNotFound is returned when no string matches the given id or value.
	ErrNotFound = errors.New("string does not exist in the system")
)

// RecordStore is the persistence contract the Service relies on.
type RecordStore interface {
	Insert(ctx context.Context, rec analyzer.Record) error
	Get(ctx context.Context, key string) (*analyzer.Record, error)
	List(ctx context.Context) ([]analyzer.Record, error)
	Delete(ctx context.Context, key string) error
	Count(ctx context.Context) (int, error)
}

// Store persists records in the strings table.
type Store struct {
	db *db.DB
}

// NewStore creates a new record store.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Insert stores rec unless a record with the same id or value exists, in
// which case it returns ErrDuplicate. The check and the write are a single
// statement.
func (s *Store) Insert(ctx context.Context, rec analyzer.Record) error {
	props, err := json.Marshal(rec.Properties)
	if err != nil {
		return errors.Wrap(err, "encoding properties")
	}

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO strings (id, value, properties, created_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT DO NOTHING`,
		rec.ID, rec.Value, string(props), rec.CreatedAt.UTC(),
	)
	if err != nil {
		return errors.Wrap(err, "inserting string")
	}
	n, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "inserting string")
	}
	if n == 0 {
		return errors.Wrapf(ErrDuplicate, "id %s", rec.ID)
	}
	return nil
}

// Get returns the record whose id or value equals key. An id match is
// preferred over a value match.
func (s *Store) Get(ctx context.Context, key string) (*analyzer.Record, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, value, properties, created_at FROM strings
		 WHERE id = ? OR value = ?
		 ORDER BY id = ? DESC LIMIT 1`, key, key, key,
	)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "getting string")
	}
	return rec, nil
}

// List returns every stored record, newest first.
func (s *Store) List(ctx context.Context) ([]analyzer.Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, value, properties, created_at FROM strings
		 ORDER BY created_at DESC, rowid DESC`,
	)
	if err != nil {
		return nil, errors.Wrap(err, "listing strings")
	}
	defer rows.Close()

	out := []analyzer.Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scanning string")
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

// Delete removes the record whose id or value equals key.
func (s *Store) Delete(ctx context.Context, key string) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM strings WHERE id = (
		     SELECT id FROM strings WHERE id = ? OR value = ?
		     ORDER BY id = ? DESC LIMIT 1
		 )`, key, key, key,
	)
	if err != nil {
		return errors.Wrap(err, "deleting string")
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the number of stored records.
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM strings`).Scan(&count)
	return count, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(sc scanner) (*analyzer.Record, error) {
	var rec analyzer.Record
	var props string
	if err := sc.Scan(&rec.ID, &rec.Value, &props, &rec.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(props), &rec.Properties); err != nil {
		return nil, errors.Wrapf(err, "decoding properties of %s", rec.ID)
	}
	rec.CreatedAt = rec.CreatedAt.UTC()
	return &rec, nil
}
