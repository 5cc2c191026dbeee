package setting

import (
	"context"
	"errors"
	"time"

	"gorm.io/datatypes"
)

var ErrNotFound = errors.New("setting not found")

const KeySessionSecret = "session_secret"

// Table: settings
type Setting struct {
	Name      string         `gorm:"column:name;primaryKey;size:128"`
	Value     datatypes.JSON `gorm:"column:value"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

func (Setting) TableName() string { return "settings" }

type Repository interface {
	// Get decodes the stored JSON value into out.
	Get(ctx context.Context, key string, out any) error
	Set(ctx context.Context, key string, v any) error
}
