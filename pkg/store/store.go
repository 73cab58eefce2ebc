// Package store keeps named tables between requests.
//
// Tables are stored as JSON definitions ([tablefile]) inside a [Record] and
// identified by a UUID. Four backends implement [Store]:
//
//   - [Memory] for tests and single-process use
//   - [File], one JSON file per record in a directory
//   - [Redis], one key per record plus a sorted set index
//   - [Mongo], one document per record
//
// [Save] and [Load] convert between tables and records.
package store

import (
	"bytes"
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/gridtable/pkg/errors"
	"github.com/matzehuels/gridtable/pkg/table"
	"github.com/matzehuels/gridtable/pkg/tablefile"
)

// Record is a stored table.
type Record struct {
	ID         string    `json:"id" bson:"_id"`
	Name       string    `json:"name" bson:"name"`
	Definition []byte    `json:"definition" bson:"definition"`
	Version    int       `json:"version" bson:"version"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" bson:"updated_at"`
}

// Store persists records.
type Store interface {
	// Put creates or replaces the record with rec.ID.
	Put(ctx context.Context, rec Record) error
	// Get returns the record with the given id, or a NOT_FOUND error.
	Get(ctx context.Context, id string) (Record, error)
	// List returns all records, oldest first.
	List(ctx context.Context) ([]Record, error)
	// Delete removes a record. Deleting a missing id is a NOT_FOUND error.
	Delete(ctx context.Context, id string) error
	Close() error
}

// NewID returns a fresh record id.
func NewID() string { return uuid.NewString() }

// ValidateID checks that id is a UUID.
func ValidateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return errors.New(errors.ErrCodeInvalidInput, "invalid table id %q", id)
	}
	return nil
}

func notFound(id string) error {
	return errors.New(errors.ErrCodeNotFound, "table %s not found", id)
}

// Save stores t. An empty id creates a new record; otherwise the record
// with that id is replaced (or created) and its version incremented.
func Save(ctx context.Context, s Store, id string, t *table.Table) (Record, error) {
	def, err := tablefile.Marshal(t, tablefile.FormatJSON)
	if err != nil {
		return Record{}, err
	}

	now := time.Now().UTC()
	rec := Record{ID: id, Name: t.Name(), Definition: def, Version: 1, CreatedAt: now, UpdatedAt: now}
	if id == "" {
		rec.ID = NewID()
	} else {
		if err := ValidateID(id); err != nil {
			return Record{}, err
		}
		old, err := s.Get(ctx, id)
		switch {
		case err == nil:
			rec.Version = old.Version + 1
			rec.CreatedAt = old.CreatedAt
		case !errors.Is(err, errors.ErrCodeNotFound):
			return Record{}, err
		}
	}

	if err := s.Put(ctx, rec); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// Load fetches and builds the table with the given id.
func Load(ctx context.Context, s Store, id string) (*table.Table, Record, error) {
	if err := ValidateID(id); err != nil {
		return nil, Record{}, err
	}
	rec, err := s.Get(ctx, id)
	if err != nil {
		return nil, Record{}, err
	}
	t, err := rec.Table()
	if err != nil {
		return nil, Record{}, err
	}
	return t, rec, nil
}

// Table builds the stored table.
func (r Record) Table() (*table.Table, error) {
	t, err := tablefile.Read(bytes.NewReader(r.Definition), tablefile.FormatJSON)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "stored table %s", r.ID)
	}
	return t, nil
}
