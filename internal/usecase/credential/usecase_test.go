package credential

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"preauth-tracker/internal/domain/user"
	"preauth-tracker/internal/testutil/usermock"
)

type stubHasher struct{ compares int }

func (*stubHasher) Hash(p []byte) ([]byte, error) { return []byte("hashed-" + string(p)), nil }

func (h *stubHasher) Compare(hash, p []byte) error {
	h.compares++
	if string(hash) != "hashed-"+string(p) {
		return errors.New("mismatch")
	}
	return nil
}

func newStore(users ...user.User) (*Store, *usermock.Repo, *stubHasher) {
	repo := usermock.InMemory(users...)
	h := &stubHasher{}
	return NewStore(repo, h), repo, h
}

var (
	admin = user.User{ID: 1, Username: user.AdminUsername, PasswordHash: "hashed-admin-pass", Role: user.RoleAdmin}
	jane  = user.User{ID: 2, Username: "jane", PasswordHash: "hashed-jane-pass", Role: user.RoleEmployee}
)

func TestVerifyPassword(t *testing.T) {
	s, _, h := newStore(admin, jane)
	ctx := context.Background()

	id, err := s.VerifyPassword(ctx, "jane", "jane-pass")
	require.NoError(t, err)
	assert.Equal(t, user.Identity{ID: 2, Username: "jane", Role: user.RoleEmployee}, *id)

	h.compares = 0
	_, errWrong := s.VerifyPassword(ctx, "jane", "nope")
	_, errUnknown := s.VerifyPassword(ctx, "ghost", "nope")
	assert.ErrorIs(t, errWrong, ErrInvalidCredentials)
	assert.ErrorIs(t, errUnknown, ErrInvalidCredentials)
	assert.Equal(t, errWrong.Error(), errUnknown.Error())
	// unknown users still pay for one hash comparison
	assert.Equal(t, 2, h.compares)
}

func TestVerifyPassword_StoreErrorIsNotMasked(t *testing.T) {
	boom := errors.New("db down")
	repo := &usermock.Repo{
		GetByUsernameFn: func(context.Context, string) (*user.User, error) { return nil, boom },
	}
	s := NewStore(repo, &stubHasher{})
	_, err := s.VerifyPassword(context.Background(), "jane", "x")
	assert.ErrorIs(t, err, boom)
}

func TestChangePassword(t *testing.T) {
	s, repo, _ := newStore(jane)
	ctx := context.Background()

	err := s.ChangePassword(ctx, 2, "wrong", "new-pass-123")
	assert.ErrorIs(t, err, ErrInvalidCurrentPassword)

	require.NoError(t, s.ChangePassword(ctx, 2, "jane-pass", "new-pass-123"))
	u, err := repo.GetByID(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "hashed-new-pass-123", u.PasswordHash)

	_, err = s.VerifyPassword(ctx, "jane", "jane-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestCreateUser(t *testing.T) {
	s, _, _ := newStore(admin, jane)
	ctx := context.Background()

	id, err := s.CreateUser(ctx, CreateUserInput{Username: "mark", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, user.RoleEmployee, id.Role)
	assert.NotZero(t, id.ID)

	_, err = s.CreateUser(ctx, CreateUserInput{Username: "jane", Password: "pw"})
	assert.ErrorIs(t, err, user.ErrDuplicateUsername)

	_, err = s.CreateUser(ctx, CreateUserInput{Username: " ", Password: "pw"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = s.CreateUser(ctx, CreateUserInput{Username: "x", Password: "pw", Role: "root"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateUser(t *testing.T) {
	ctx := context.Background()
	str := func(s string) *string { return &s }
	role := func(r user.Role) *user.Role { return &r }

	t.Run("admin cannot be renamed or demoted", func(t *testing.T) {
		s, _, _ := newStore(admin, jane)
		_, err := s.UpdateUser(ctx, 1, UpdateUserInput{Username: str("root")})
		assert.ErrorIs(t, err, user.ErrProtectedAccount)
		_, err = s.UpdateUser(ctx, 1, UpdateUserInput{Role: role(user.RoleEmployee)})
		assert.ErrorIs(t, err, user.ErrProtectedAccount)
	})

	t.Run("admin password can change", func(t *testing.T) {
		s, repo, _ := newStore(admin, jane)
		_, err := s.UpdateUser(ctx, 1, UpdateUserInput{Password: str("fresh")})
		require.NoError(t, err)
		u, _ := repo.GetByID(ctx, 1)
		assert.Equal(t, "hashed-fresh", u.PasswordHash)
	})

	t.Run("rename and promote employee", func(t *testing.T) {
		s, _, _ := newStore(admin, jane)
		id, err := s.UpdateUser(ctx, 2, UpdateUserInput{Username: str("janet"), Role: role(user.RoleAdmin)})
		require.NoError(t, err)
		assert.Equal(t, "janet", id.Username)
		assert.Equal(t, user.RoleAdmin, id.Role)
	})

	t.Run("rename to taken name", func(t *testing.T) {
		s, _, _ := newStore(admin, jane)
		_, err := s.UpdateUser(ctx, 2, UpdateUserInput{Username: str(user.AdminUsername)})
		assert.ErrorIs(t, err, user.ErrDuplicateUsername)
	})

	t.Run("missing user", func(t *testing.T) {
		s, _, _ := newStore(admin)
		_, err := s.UpdateUser(ctx, 42, UpdateUserInput{Username: str("x")})
		assert.ErrorIs(t, err, user.ErrNotFound)
	})
}

func TestDeleteUser(t *testing.T) {
	s, repo, _ := newStore(admin, jane)
	ctx := context.Background()

	assert.ErrorIs(t, s.DeleteUser(ctx, 1), user.ErrProtectedAccount)
	require.NoError(t, s.DeleteUser(ctx, 2))
	_, err := repo.GetByID(ctx, 2)
	assert.ErrorIs(t, err, user.ErrNotFound)
	assert.ErrorIs(t, s.DeleteUser(ctx, 2), user.ErrNotFound)
}

func TestEnsureAdmin(t *testing.T) {
	ctx := context.Background()

	s, repo, _ := newStore()
	created, err := s.EnsureAdmin(ctx, "first-boot")
	require.NoError(t, err)
	assert.True(t, created)
	u, err := repo.GetByUsername(ctx, user.AdminUsername)
	require.NoError(t, err)
	assert.Equal(t, user.RoleAdmin, u.Role)

	// second boot keeps the existing password
	created, err = s.EnsureAdmin(ctx, "other")
	require.NoError(t, err)
	assert.False(t, created)
	_, err = s.VerifyPassword(ctx, user.AdminUsername, "first-boot")
	assert.NoError(t, err)
}

func TestBcryptHasher(t *testing.T) {
	h := BcryptHasher{}
	hash, err := h.Hash([]byte("s3cret"))
	require.NoError(t, err)

	cost, err := bcrypt.Cost(hash)
	require.NoError(t, err)
	assert.Equal(t, BcryptCost, cost)
	assert.NoError(t, h.Compare(hash, []byte("s3cret")))
	assert.Error(t, h.Compare(hash, []byte("S3cret")))
}
