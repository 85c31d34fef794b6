package models

import (
	"errors"
	"strings"
	"yatube/db"

	"golang.org/x/crypto/bcrypt"
)

type User struct {
	ID        uint64  `gorm:"primaryKey" json:"id"`
	CreatedAt int64   `json:"-"`
	UpdatedAt int64   `json:"-"`
	Username  string  `gorm:"type:varchar(150);index:uniq_username,unique;not null" json:"username"`
	FirstName string  `gorm:"type:varchar(150)" json:"first_name"`
	LastName  string  `gorm:"type:varchar(150)" json:"last_name"`
	Email     string  `gorm:"type:varchar(254)" json:"-"`
	Password  string  `gorm:"type:varchar(128)" json:"-"`
	Grants    []Grant `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

var (
	ErrBadCredentials = errors.New("wrong username or password")

	// PasswordCost is lowered by tests
	PasswordCost = bcrypt.DefaultCost
)

func UserCreate(username, email, plainTextPassword, firstName, lastName string) (u User, err error) {
	u.Username = username
	u.Email = email
	u.FirstName = firstName
	u.LastName = lastName
	if err = u.SetPassword(plainTextPassword); err != nil {
		return
	}
	return u, db.Instance.Create(&u).Error
}

func (u *User) SetPassword(plainTextPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plainTextPassword), PasswordCost)
	if err != nil {
		return err
	}
	u.Password = string(hash)
	return nil
}

func UserLogin(username, plainTextPassword string) (u User, err error) {
	if err = db.Instance.Preload("Grants").First(&u, "username = ?", username).Error; err != nil {
		return User{}, ErrBadCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plainTextPassword)) != nil {
		return User{}, ErrBadCredentials
	}
	return u, nil
}

func UserByUsername(username string) (u User, err error) {
	err = db.Instance.First(&u, "username = ?", username).Error
	return
}

// UserDelete removes the account along with its posts, comments, follows and grants (via foreign keys)
func UserDelete(id uint64) error {
	return db.Instance.Delete(&User{ID: id}).Error
}

// FullName falls back to the username when no name was given
func (u User) FullName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Username
	}
	return name
}

func (u *User) HasPermission(required Permission) bool {
	for _, permission := range u.Grants {
		if permission.Permission == required {
			return true
		}
	}
	return false
}

func (u *User) HasPermissions(required []Permission) bool {
	for _, permission := range required {
		if !u.HasPermission(permission) {
			return false
		}
	}
	return true
}

// EnsureAdmin creates the account if missing and grants it PermissionAdmin
func EnsureAdmin(username, plainTextPassword string) (u User, err error) {
	u, err = UserByUsername(username)
	if err != nil {
		if u, err = UserCreate(username, "", plainTextPassword, "", ""); err != nil {
			return
		}
	}
	if err = GrantPermission(u.ID, PermissionAdmin); err != nil {
		return
	}
	err = db.Instance.Preload("Grants").First(&u).Error
	return
}
