package model

import (
	"gorm.io/gorm"
)

// AutoMigrate 按模型名执行表结构迁移
func AutoMigrate(db *gorm.DB, key string) error {
	switch key {

	case "UserIdentity":
		return db.AutoMigrate(UserIdentity{})

	case "Note":
		return db.AutoMigrate(Note{})

	case "":
		return db.AutoMigrate(UserIdentity{}, Note{})
	}
	return nil
}
