package credential

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"preauth-tracker/internal/domain/user"
)

var (
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrInvalidCurrentPassword = errors.New("current password is incorrect")
	ErrInvalidInput           = errors.New("invalid input")
)

// Store owns the users table. Password hashes never leave this package.
type Store struct {
	repo   user.Repository
	hasher PasswordHasher
	// compared against when the username is unknown so both failure paths cost one hash check
	dummyHash []byte
}

func NewStore(r user.Repository, h PasswordHasher) *Store {
	s := &Store{repo: r, hasher: h}
	if hash, err := h.Hash([]byte("not-a-real-password")); err == nil {
		s.dummyHash = hash
	}
	return s
}

func (s *Store) VerifyPassword(ctx context.Context, username, plaintext string) (*user.Identity, error) {
	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, user.ErrNotFound) {
			return nil, err
		}
		if s.dummyHash != nil {
			_ = s.hasher.Compare(s.dummyHash, []byte(plaintext))
		}
		return nil, ErrInvalidCredentials
	}
	if err := s.hasher.Compare([]byte(u.PasswordHash), []byte(plaintext)); err != nil {
		return nil, ErrInvalidCredentials
	}
	id := u.Identity()
	return &id, nil
}

func (s *Store) SetPassword(ctx context.Context, userID uint64, plaintext string) error {
	if plaintext == "" {
		return ErrInvalidInput
	}
	hash, err := s.hasher.Hash([]byte(plaintext))
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.repo.UpdatePasswordHash(ctx, userID, string(hash))
}

func (s *Store) ChangePassword(ctx context.Context, userID uint64, current, next string) error {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.hasher.Compare([]byte(u.PasswordHash), []byte(current)); err != nil {
		return ErrInvalidCurrentPassword
	}
	return s.SetPassword(ctx, userID, next)
}

func (s *Store) CreateUser(ctx context.Context, in CreateUserInput) (*user.Identity, error) {
	if strings.TrimSpace(in.Username) == "" || in.Password == "" {
		return nil, ErrInvalidInput
	}
	role := in.Role
	if role == "" {
		role = user.RoleEmployee
	}
	if !role.Valid() {
		return nil, ErrInvalidInput
	}

	_, err := s.repo.GetByUsername(ctx, in.Username)
	switch {
	case err == nil:
		return nil, user.ErrDuplicateUsername
	case !errors.Is(err, user.ErrNotFound):
		return nil, err
	}

	hash, err := s.hasher.Hash([]byte(in.Password))
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := &user.User{Username: in.Username, PasswordHash: string(hash), Role: role}
	// the unique index still catches a concurrent insert of the same name
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	id := u.Identity()
	return &id, nil
}

func (s *Store) UpdateUser(ctx context.Context, userID uint64, in UpdateUserInput) (*user.Identity, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if in.Username != nil && *in.Username != u.Username {
		name := *in.Username
		if strings.TrimSpace(name) == "" {
			return nil, ErrInvalidInput
		}
		if u.IsProtected() {
			return nil, user.ErrProtectedAccount
		}
		_, err := s.repo.GetByUsername(ctx, name)
		switch {
		case err == nil:
			return nil, user.ErrDuplicateUsername
		case !errors.Is(err, user.ErrNotFound):
			return nil, err
		}
		u.Username = name
	}
	if in.Role != nil && *in.Role != u.Role {
		if !in.Role.Valid() {
			return nil, ErrInvalidInput
		}
		if u.IsProtected() {
			return nil, user.ErrProtectedAccount
		}
		u.Role = *in.Role
	}
	if in.Password != nil {
		if *in.Password == "" {
			return nil, ErrInvalidInput
		}
		hash, err := s.hasher.Hash([]byte(*in.Password))
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		u.PasswordHash = string(hash)
	}

	if err := s.repo.Save(ctx, u); err != nil {
		return nil, err
	}
	id := u.Identity()
	return &id, nil
}

func (s *Store) DeleteUser(ctx context.Context, userID uint64) error {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if u.IsProtected() {
		return user.ErrProtectedAccount
	}
	return s.repo.Delete(ctx, userID)
}

func (s *Store) GetUser(ctx context.Context, userID uint64) (*user.Identity, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	id := u.Identity()
	return &id, nil
}

func (s *Store) ListUsers(ctx context.Context) ([]user.Identity, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]user.Identity, 0, len(users))
	for i := range users {
		out = append(out, users[i].Identity())
	}
	return out, nil
}

// EnsureAdmin seeds the admin account on first boot. An existing admin keeps its password.
func (s *Store) EnsureAdmin(ctx context.Context, password string) (bool, error) {
	_, err := s.repo.GetByUsername(ctx, user.AdminUsername)
	switch {
	case err == nil:
		return false, nil
	case !errors.Is(err, user.ErrNotFound):
		return false, err
	}
	if _, err := s.CreateUser(ctx, CreateUserInput{
		Username: user.AdminUsername,
		Password: password,
		Role:     user.RoleAdmin,
	}); err != nil {
		return false, fmt.Errorf("seed admin: %w", err)
	}
	return true, nil
}
