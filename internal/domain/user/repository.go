package user

import "context"

type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id uint64) (*User, error)
	// Exact, case-sensitive match.
	GetByUsername(ctx context.Context, username string) (*User, error)
	List(ctx context.Context) ([]User, error)
	Save(ctx context.Context, u *User) error
	UpdatePasswordHash(ctx context.Context, id uint64, hash string) error
	// Delete removes a non-protected user; the username guard is repeated in the
	// statement itself.
	Delete(ctx context.Context, id uint64) error
}
