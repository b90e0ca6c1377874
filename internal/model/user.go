package model

import (
	"strings"
	"time"
)

// UserStatus represents the status of a user account.
type UserStatus string

const (
	UserStatusActive  UserStatus = "ACTIVE"
	UserStatusBlocked UserStatus = "BLOCKED"
	UserStatusDeleted UserStatus = "DELETED"
)

// Role represents the role of a user in the system.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// User represents a registered user holding cards.
type User struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	Name         string     `json:"name" gorm:"size:50;not null"`
	LastName     string     `json:"last_name" gorm:"size:50;not null"`
	Surname      string     `json:"surname,omitempty" gorm:"size:50"`
	Login        string     `json:"login" gorm:"uniqueIndex;size:50;not null"`
	PasswordHash string     `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Status       UserStatus `json:"status" gorm:"type:varchar(20);not null;default:'ACTIVE';index"`
	Role         Role       `json:"role" gorm:"type:varchar(20);not null;default:'USER'"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	// Relations
	Cards []Card `json:"cards,omitempty" gorm:"foreignKey:OwnerID"`
}

// FullName composes the user's display name.
func (u *User) FullName() string {
	if strings.TrimSpace(u.Surname) == "" {
		return u.Name + " " + u.LastName
	}
	return u.Surname + " " + u.Name + " " + u.LastName
}
