package user

import (
	"errors"
	"time"
)

var (
	ErrNotFound          = errors.New("user not found")
	ErrDuplicateUsername = errors.New("username already exists")
	ErrProtectedAccount  = errors.New("account is protected")
)

// AdminUsername is the seeded account that can never be deleted, renamed or demoted.
const AdminUsername = "admin"

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
)

func (r Role) Valid() bool { return r == RoleAdmin || r == RoleEmployee }

// Table: users
type User struct {
	ID           uint64    `gorm:"column:id;primaryKey;autoIncrement"`
	Username     string    `gorm:"column:username;size:191;not null;uniqueIndex:ux_users_username"`
	PasswordHash string    `gorm:"column:password_hash;size:255;not null"`
	Role         Role      `gorm:"column:role;size:16;not null;default:'employee'"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (User) TableName() string { return "users" }

func (u *User) IsProtected() bool { return u.Username == AdminUsername }

// Identity is the hash-free view of a user handed out of the credential store.
type Identity struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

func (u *User) Identity() Identity {
	return Identity{ID: u.ID, Username: u.Username, Role: u.Role}
}
