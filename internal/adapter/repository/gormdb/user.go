package gormdb

import (
	"context"
	"errors"

	userDomain "preauth-tracker/internal/domain/user"

	"gorm.io/gorm"
)

type UserRepository struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) *UserRepository { return &UserRepository{db: db} }

func (r *UserRepository) Create(ctx context.Context, u *userDomain.User) error {
	return mapUserErr(r.db.WithContext(ctx).Create(u).Error)
}

func (r *UserRepository) GetByID(ctx context.Context, id uint64) (*userDomain.User, error) {
	var out userDomain.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&out).Error; err != nil {
		return nil, mapUserErr(err)
	}
	return &out, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*userDomain.User, error) {
	var out userDomain.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&out).Error; err != nil {
		return nil, mapUserErr(err)
	}
	return &out, nil
}

func (r *UserRepository) List(ctx context.Context) ([]userDomain.User, error) {
	var out []userDomain.User
	res := r.db.WithContext(ctx).Order("username ASC").Find(&out)
	return out, res.Error
}

func (r *UserRepository) Save(ctx context.Context, u *userDomain.User) error {
	return mapUserErr(r.db.WithContext(ctx).Save(u).Error)
}

func (r *UserRepository) UpdatePasswordHash(ctx context.Context, id uint64, hash string) error {
	res := r.db.WithContext(ctx).Model(&userDomain.User{}).
		Where("id = ?", id).
		Update("password_hash", hash)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return userDomain.ErrNotFound
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id uint64) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND username <> ?", id, userDomain.AdminUsername).
		Delete(&userDomain.User{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return userDomain.ErrNotFound
	}
	return nil
}

func mapUserErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return userDomain.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return userDomain.ErrDuplicateUsername
	}
	return err
}
