package usermock

import (
	"context"
	"errors"

	domain "preauth-tracker/internal/domain/user"
)

var _ domain.Repository = (*Repo)(nil)

var errUnimplemented = errors.New("usermock: method not implemented")

// Repo is a function-backed mock that satisfies domain.Repository.
// Unset functions return errUnimplemented (or nil for writes).
type Repo struct {
	CreateFn             func(ctx context.Context, u *domain.User) error
	GetByIDFn            func(ctx context.Context, id uint64) (*domain.User, error)
	GetByUsernameFn      func(ctx context.Context, username string) (*domain.User, error)
	ListFn               func(ctx context.Context) ([]domain.User, error)
	SaveFn               func(ctx context.Context, u *domain.User) error
	UpdatePasswordHashFn func(ctx context.Context, id uint64, hash string) error
	DeleteFn             func(ctx context.Context, id uint64) error
}

func (m *Repo) Create(ctx context.Context, u *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, u)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, errUnimplemented
}

func (m *Repo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.GetByUsernameFn != nil {
		return m.GetByUsernameFn(ctx, username)
	}
	return nil, errUnimplemented
}

func (m *Repo) List(ctx context.Context) ([]domain.User, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return nil, errUnimplemented
}

func (m *Repo) Save(ctx context.Context, u *domain.User) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, u)
	}
	return nil
}

func (m *Repo) UpdatePasswordHash(ctx context.Context, id uint64, hash string) error {
	if m.UpdatePasswordHashFn != nil {
		return m.UpdatePasswordHashFn(ctx, id, hash)
	}
	return nil
}

func (m *Repo) Delete(ctx context.Context, id uint64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}

// InMemory returns a Repo backed by a map keyed on user id. Usernames compare exactly.
func InMemory(users ...domain.User) *Repo {
	byID := map[uint64]*domain.User{}
	var next uint64
	for i := range users {
		u := users[i]
		byID[u.ID] = &u
		if u.ID > next {
			next = u.ID
		}
	}
	find := func(name string) *domain.User {
		for _, u := range byID {
			if u.Username == name {
				return u
			}
		}
		return nil
	}
	return &Repo{
		CreateFn: func(_ context.Context, u *domain.User) error {
			if find(u.Username) != nil {
				return domain.ErrDuplicateUsername
			}
			next++
			u.ID = next
			cp := *u
			byID[u.ID] = &cp
			return nil
		},
		GetByIDFn: func(_ context.Context, id uint64) (*domain.User, error) {
			u, ok := byID[id]
			if !ok {
				return nil, domain.ErrNotFound
			}
			cp := *u
			return &cp, nil
		},
		GetByUsernameFn: func(_ context.Context, name string) (*domain.User, error) {
			u := find(name)
			if u == nil {
				return nil, domain.ErrNotFound
			}
			cp := *u
			return &cp, nil
		},
		ListFn: func(context.Context) ([]domain.User, error) {
			out := make([]domain.User, 0, len(byID))
			for _, u := range byID {
				out = append(out, *u)
			}
			return out, nil
		},
		SaveFn: func(_ context.Context, u *domain.User) error {
			if other := find(u.Username); other != nil && other.ID != u.ID {
				return domain.ErrDuplicateUsername
			}
			cp := *u
			byID[u.ID] = &cp
			return nil
		},
		UpdatePasswordHashFn: func(_ context.Context, id uint64, hash string) error {
			u, ok := byID[id]
			if !ok {
				return domain.ErrNotFound
			}
			u.PasswordHash = hash
			return nil
		},
		DeleteFn: func(_ context.Context, id uint64) error {
			u, ok := byID[id]
			if !ok || u.Username == domain.AdminUsername {
				return domain.ErrNotFound
			}
			delete(byID, id)
			return nil
		},
	}
}
