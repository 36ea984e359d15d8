package repository

import (
	"context"
	"fmt"

	"github.com/oksasatya/go-finances/internal/domain/entity"
)

// Constraint names shared by the schema and the in-memory store.
const (
	UniqueUsername       = "users_username_key"
	UniqueAccountFavored = "favored_has_account_account_id_key"
)

// UnitOfWork applies a batch of inserts atomically: either every record lands or none does.
type UnitOfWork interface {
	Commit(ctx context.Context, b *Batch) error
}

// Batch is an ordered set of records written by one logical operation.
type Batch struct {
	records []entity.Record
}

func NewBatch(records ...entity.Record) *Batch {
	return &Batch{records: records}
}

func (b *Batch) Add(records ...entity.Record) *Batch {
	b.records = append(b.records, records...)
	return b
}

func (b *Batch) Len() int { return len(b.records) }

// Validate rejects empty batches and dependent records with blank references.
func (b *Batch) Validate() error {
	if len(b.records) == 0 {
		return &StorageError{Kind: ErrConstraint, Err: fmt.Errorf("empty batch")}
	}
	for _, r := range b.records {
		if k, ok := r.(entity.Keyed); ok && k.PrimaryKey() == "" {
			return &StorageError{Kind: ErrConstraint, Table: r.TableName(), Err: fmt.Errorf("missing primary key")}
		}
		d, ok := r.(entity.Dependent)
		if !ok {
			continue
		}
		for _, ref := range d.References() {
			if ref == "" {
				return &StorageError{Kind: ErrConstraint, Table: r.TableName(), Err: fmt.Errorf("missing reference")}
			}
		}
	}
	return nil
}

// Ordered returns the records so that every record comes after the records of the
// same batch it references. Relative insertion order is kept otherwise.
func (b *Batch) Ordered() []entity.Record {
	inBatch := make(map[string]bool, len(b.records))
	for _, r := range b.records {
		if k, ok := r.(entity.Keyed); ok {
			inBatch[k.PrimaryKey()] = true
		}
	}

	written := make(map[string]bool, len(b.records))
	done := make([]bool, len(b.records))
	out := make([]entity.Record, 0, len(b.records))
	for len(out) < len(b.records) {
		progressed := false
		for i, r := range b.records {
			if done[i] || !ready(r, inBatch, written) {
				continue
			}
			done[i] = true
			progressed = true
			out = append(out, r)
			if k, ok := r.(entity.Keyed); ok {
				written[k.PrimaryKey()] = true
			}
		}
		if !progressed {
			// reference cycle: keep the remaining records in insertion order
			for i, r := range b.records {
				if !done[i] {
					out = append(out, r)
				}
			}
			break
		}
	}
	return out
}

func ready(r entity.Record, inBatch, written map[string]bool) bool {
	d, ok := r.(entity.Dependent)
	if !ok {
		return true
	}
	for _, ref := range d.References() {
		if inBatch[ref] && !written[ref] {
			return false
		}
	}
	return true
}
