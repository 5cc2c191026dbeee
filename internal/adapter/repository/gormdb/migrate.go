package gormdb

import (
	"fmt"

	recordDomain "preauth-tracker/internal/domain/record"
	settingDomain "preauth-tracker/internal/domain/setting"
	userDomain "preauth-tracker/internal/domain/user"

	"gorm.io/gorm"
)

// MySQL's default utf8mb4 collations fold case, which would let "Jane" collide
// with "jane" on the unique index and match it on lookup.
const mysqlBinaryUsername = "ALTER TABLE users MODIFY username VARCHAR(191) NOT NULL COLLATE utf8mb4_bin"

// Migrate creates or updates the users, authorization_records and settings tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&userDomain.User{}, &recordDomain.Record{}, &settingDomain.Setting{}); err != nil {
		return err
	}
	return caseSensitiveUsernames(db)
}

// caseSensitiveUsernames is a no-op on sqlite and postgres, which already
// compare text byte-wise.
func caseSensitiveUsernames(db *gorm.DB) error {
	if db.Dialector.Name() != "mysql" {
		return nil
	}
	if err := db.Exec(mysqlBinaryUsername).Error; err != nil {
		return fmt.Errorf("users.username collation: %w", err)
	}
	return nil
}
