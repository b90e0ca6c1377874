package model

import (
	"time"
)

// BlockRequestStatus represents the status of a card block request.
type BlockRequestStatus string

const (
	BlockRequestStatusCreated    BlockRequestStatus = "CREATED"
	BlockRequestStatusInProgress BlockRequestStatus = "IN_PROGRESS"
	BlockRequestStatusDone       BlockRequestStatus = "DONE"
)

// BlockRequest tracks a user's request to block one of their cards. UserName
// and CardNumber are point-in-time snapshots captured at creation (CardNumber
// is the masked form, never the raw number) so the history survives later
// edits to the user or card. At most one request exists per (user, card) pair.
type BlockRequest struct {
	ID         uint               `json:"id" gorm:"primaryKey"`
	UserID     uint               `json:"user_id" gorm:"not null;uniqueIndex:uq_user_card"`
	UserName   string             `json:"user_name" gorm:"size:150;not null"`
	CardID     uint               `json:"card_id" gorm:"not null;uniqueIndex:uq_user_card"`
	CardNumber string             `json:"card_number" gorm:"size:19;not null"`
	CreatedAt  time.Time          `json:"created_at"`
	Status     BlockRequestStatus `json:"status" gorm:"type:varchar(20);not null;default:'CREATED';index"`
}
