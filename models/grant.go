package models

import (
	"yatube/db"

	"gorm.io/gorm/clause"
)

type Permission uint8

const (
	PermissionNone            Permission = 0
	PermissionAdmin           Permission = 1 // manage groups and accounts
	PermissionCanCreateGroups Permission = 2
)

type Grant struct {
	ID         uint64     `gorm:"primaryKey"`
	CreatedAt  int64
	UserID     uint64     `gorm:"index:user_permission,unique"`
	User       User       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Permission Permission `gorm:"index:user_permission,unique"`
}

func GrantPermission(userID uint64, permission Permission) error {
	grant := Grant{
		UserID:     userID,
		Permission: permission,
	}
	return db.Instance.Omit(clause.Associations).Clauses(clause.OnConflict{DoNothing: true}).Create(&grant).Error
}
