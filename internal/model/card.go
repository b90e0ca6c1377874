package model

import (
	"time"
)

// CardStatus represents the status of a card.
type CardStatus string

const (
	CardStatusActive  CardStatus = "ACTIVE"
	CardStatusBlocked CardStatus = "BLOCKED"
	CardStatusExpired CardStatus = "EXPIRED"
)

// Card represents a bank card. The number is stored only as the ciphertext
// token produced by cardcrypto.Cipher; NumberIndex is its deterministic blind
// index, and the unique constraint on it is the authoritative guard against
// duplicate numbers under concurrent issuance.
type Card struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	Number      string     `json:"-" gorm:"size:255;uniqueIndex;not null"`
	NumberIndex string     `json:"-" gorm:"size:64;uniqueIndex;not null"`
	ExpireDate  time.Time  `json:"expire_date" gorm:"not null"`
	CreatedAt   time.Time  `json:"created_at"`
	Status      CardStatus `json:"status" gorm:"type:varchar(20);not null;default:'ACTIVE';index"`
	OwnerID     uint       `json:"owner_id" gorm:"not null;index"`

	// Relations. The balance shares the card's lifetime.
	Balance CardBalance `json:"balance,omitempty" gorm:"foreignKey:CardID;constraint:OnDelete:CASCADE"`
}
