package models

import (
	"time"
)

type UserRole string

const (
	UserRoleProvider UserRole = "provider"
	UserRoleCustomer UserRole = "customer"
)

func (r UserRole) IsValid() bool {
	return r == UserRoleProvider || r == UserRoleCustomer
}

type User struct {
	ID            uint64    `json:"id" bson:"_id" gorm:"primaryKey;autoIncrement"`
	Username      string    `json:"username" bson:"username" gorm:"uniqueIndex;size:64;not null"`
	Password      string    `json:"-" bson:"password" gorm:"not null"`
	Role          UserRole  `json:"role" bson:"role" gorm:"type:varchar(16);not null"`
	City          string    `json:"city" bson:"city" gorm:"size:128"`
	WalletBalance int64     `json:"wallet_balance" bson:"wallet_balance" gorm:"not null;default:0;check:wallet_balance >= 0"`
	IsVerified    bool      `json:"is_verified" bson:"is_verified" gorm:"not null;default:false"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" bson:"updated_at"`
}

func (u *User) IsProvider() bool {
	return u.Role == UserRoleProvider
}

func (u *User) IsCustomer() bool {
	return u.Role == UserRoleCustomer
}
