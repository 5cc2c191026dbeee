package record

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, r *Record) error
	GetByID(ctx context.Context, id uint64) (*Record, error)

	// UpdateFields overwrites every editable column of an active record.
	// Returns false when no active row with id exists.
	UpdateFields(ctx context.Context, id uint64, f Fields, at time.Time) (bool, error)

	// SetState flips is_deleted from -> to in one guarded statement.
	// Returns false when no row with id is currently in state from.
	SetState(ctx context.Context, id uint64, from, to State, at time.Time) (bool, error)

	// Purge deletes the row only while it is trashed.
	Purge(ctx context.Context, id uint64) (bool, error)

	ListByState(ctx context.Context, s State) ([]Record, error)

	CountByStatus(ctx context.Context) (map[Status]int64, error)
	CountRequestedOn(ctx context.Context, day string) (int64, error)
	// CountByOwnerSince buckets active records per owner by created_at lower bounds.
	CountByOwnerSince(ctx context.Context, since []time.Time) (map[uint64][]int64, error)
}
