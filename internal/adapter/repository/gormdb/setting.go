package gormdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	settingDomain "preauth-tracker/internal/domain/setting"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SettingRepository struct{ db *gorm.DB }

func NewSettingRepository(db *gorm.DB) *SettingRepository { return &SettingRepository{db: db} }

func (r *SettingRepository) Get(ctx context.Context, name string, out any) error {
	var s settingDomain.Setting
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return settingDomain.ErrNotFound
		}
		return err
	}
	if err := json.Unmarshal(s.Value, out); err != nil {
		return fmt.Errorf("decode setting %q: %w", name, err)
	}
	return nil
}

func (r *SettingRepository) Set(ctx context.Context, name string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode setting %q: %w", name, err)
	}
	s := settingDomain.Setting{Name: name, Value: b}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&s).Error
}
