package models

import (
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleFarmer   Role = "farmer"
	RoleCustomer Role = "customer"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleFarmer, RoleCustomer:
		return true
	}
	return false
}

type User struct {
	gorm.Model
	ID           uint   `gorm:"primary_key" autoIncrement:"true"`
	Name         string `gorm:"not null;" json:"name"`
	Email        string `gorm:"index:idx_email;unique;not null;" json:"email"`
	PasswordHash string `gorm:"not null;" json:"-"`
	Role         Role   `gorm:"not null;default:customer" json:"role"`
}

func GetUserByEmail(db *gorm.DB, email string) (User, error) {
	var user User
	if res := db.Where("email = ?", email).First(&user); res.Error != nil {
		return User{}, res.Error
	}
	return user, nil
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	return string(bytes), err
}

func (user *User) ValidatePassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	return err == nil
}
