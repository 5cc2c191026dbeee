package record

import (
	"context"
	"errors"
	"time"

	"preauth-tracker/internal/domain/record"
)

type Usecase struct {
	repo record.Repository
	now  func() time.Time
}

func NewUsecase(r record.Repository) *Usecase {
	return &Usecase{repo: r, now: func() time.Time { return time.Now().UTC() }}
}

// WithClock replaces the timestamp source. Used by tests.
func (u *Usecase) WithClock(now func() time.Time) *Usecase {
	u.now = now
	return u
}

func (u *Usecase) Create(ctx context.Context, f record.Fields, ownerID uint64) (uint64, error) {
	if ownerID == 0 {
		return 0, errors.New("owner is required")
	}
	if f.Status == "" {
		f.Status = record.StatusPending
	}
	if !f.Status.Valid() {
		return 0, ErrInvalidStatus
	}
	now := u.now()
	r := &record.Record{
		Fields:      f,
		IsDeleted:   false,
		OwnerUserID: ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := u.repo.Create(ctx, r); err != nil {
		return 0, err
	}
	return r.ID, nil
}

func (u *Usecase) Get(ctx context.Context, id uint64) (*record.Record, error) {
	return u.repo.GetByID(ctx, id)
}

// Update overwrites every editable field of an active record.
func (u *Usecase) Update(ctx context.Context, id uint64, f record.Fields) error {
	if f.Status == "" {
		f.Status = record.StatusPending
	}
	if !f.Status.Valid() {
		return ErrInvalidStatus
	}
	ok, err := u.repo.UpdateFields(ctx, id, f, u.now())
	if err != nil {
		return err
	}
	if ok {
		return nil
	}
	cur, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	_, err = record.Transition(cur.State(), record.ActionEdit)
	return err
}

func (u *Usecase) SoftDelete(ctx context.Context, id uint64) error {
	return u.apply(ctx, id, record.ActionSoftDelete)
}

func (u *Usecase) Restore(ctx context.Context, id uint64) error {
	return u.apply(ctx, id, record.ActionRestore)
}

// Purge permanently removes a trashed record. Active records are never deleted.
func (u *Usecase) Purge(ctx context.Context, id uint64) error {
	ok, err := u.repo.Purge(ctx, id)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}
	cur, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	_, err = record.Transition(cur.State(), record.ActionPurge)
	return err
}

func (u *Usecase) ListActive(ctx context.Context) ([]record.Record, error) {
	return u.repo.ListByState(ctx, record.StateActive)
}

func (u *Usecase) ListTrashed(ctx context.Context) ([]record.Record, error) {
	return u.repo.ListByState(ctx, record.StateTrashed)
}

// apply runs a soft-delete or restore as a single guarded flip. When the guard misses,
// a record already in the target state is an idempotent no-op.
func (u *Usecase) apply(ctx context.Context, id uint64, action record.Action) error {
	from := action.Source()
	to, err := record.Transition(from, action)
	if err != nil {
		return err
	}
	ok, err := u.repo.SetState(ctx, id, from, to, u.now())
	if err != nil {
		return err
	}
	if ok {
		return nil
	}
	cur, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if cur.State() == to {
		return nil
	}
	return record.ErrInvalidTransition
}
