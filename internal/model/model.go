package model

import (
	"gorm.io/gorm"
)

func AutoMigrate(db *gorm.DB, key string) error {
	switch key {

	case "Note":
		return db.AutoMigrate(Note{})

	case "NoteVersion":
		return db.AutoMigrate(NoteVersion{})

	case "User":
		return db.AutoMigrate(User{})
	}
	return nil
}

// AutoMigrateAll 迁移全部表
func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(Note{}, NoteVersion{}, User{})
}
