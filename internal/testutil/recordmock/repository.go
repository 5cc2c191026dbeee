package recordmock

import (
	"context"
	"errors"
	"time"

	domain "preauth-tracker/internal/domain/record"
)

var _ domain.Repository = (*Repo)(nil)

var errUnimplemented = errors.New("recordmock: method not implemented")

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn            func(ctx context.Context, r *domain.Record) error
	GetByIDFn           func(ctx context.Context, id uint64) (*domain.Record, error)
	UpdateFieldsFn      func(ctx context.Context, id uint64, f domain.Fields, at time.Time) (bool, error)
	SetStateFn          func(ctx context.Context, id uint64, from, to domain.State, at time.Time) (bool, error)
	PurgeFn             func(ctx context.Context, id uint64) (bool, error)
	ListByStateFn       func(ctx context.Context, s domain.State) ([]domain.Record, error)
	CountByStatusFn     func(ctx context.Context) (map[domain.Status]int64, error)
	CountRequestedOnFn  func(ctx context.Context, day string) (int64, error)
	CountByOwnerSinceFn func(ctx context.Context, since []time.Time) (map[uint64][]int64, error)
}

func (m *Repo) Create(ctx context.Context, r *domain.Record) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, r)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Record, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, errUnimplemented
}

func (m *Repo) UpdateFields(ctx context.Context, id uint64, f domain.Fields, at time.Time) (bool, error) {
	if m.UpdateFieldsFn != nil {
		return m.UpdateFieldsFn(ctx, id, f, at)
	}
	return false, errUnimplemented
}

func (m *Repo) SetState(ctx context.Context, id uint64, from, to domain.State, at time.Time) (bool, error) {
	if m.SetStateFn != nil {
		return m.SetStateFn(ctx, id, from, to, at)
	}
	return false, errUnimplemented
}

func (m *Repo) Purge(ctx context.Context, id uint64) (bool, error) {
	if m.PurgeFn != nil {
		return m.PurgeFn(ctx, id)
	}
	return false, errUnimplemented
}

func (m *Repo) ListByState(ctx context.Context, s domain.State) ([]domain.Record, error) {
	if m.ListByStateFn != nil {
		return m.ListByStateFn(ctx, s)
	}
	return nil, errUnimplemented
}

func (m *Repo) CountByStatus(ctx context.Context) (map[domain.Status]int64, error) {
	if m.CountByStatusFn != nil {
		return m.CountByStatusFn(ctx)
	}
	return nil, errUnimplemented
}

func (m *Repo) CountRequestedOn(ctx context.Context, day string) (int64, error) {
	if m.CountRequestedOnFn != nil {
		return m.CountRequestedOnFn(ctx, day)
	}
	return 0, errUnimplemented
}

func (m *Repo) CountByOwnerSince(ctx context.Context, since []time.Time) (map[uint64][]int64, error) {
	if m.CountByOwnerSinceFn != nil {
		return m.CountByOwnerSinceFn(ctx, since)
	}
	return nil, errUnimplemented
}
