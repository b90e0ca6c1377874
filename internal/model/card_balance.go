package model

import (
	"github.com/shopspring/decimal"
)

// CardBalance holds the funds of exactly one card. Amount is a fixed-point
// decimal with 2-digit scale and is never negative at any commit point; it is
// mutated only by the transfer engine and initialized to zero at issuance.
type CardBalance struct {
	CardID uint            `json:"card_id" gorm:"primaryKey"`
	Amount decimal.Decimal `json:"amount" gorm:"type:decimal(35,2);not null;default:0"`
}
