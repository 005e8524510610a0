package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProfileID is the primary key of the single village profile row.
const ProfileID = 1

// VillageProfile describes the village itself. There is exactly one row.
type VillageProfile struct {
	ID         uint            `json:"-" gorm:"primaryKey"`
	Name       string          `json:"name" gorm:"size:255;not null" validate:"required"`
	Vision     string          `json:"vision" gorm:"type:text"`
	Mission    string          `json:"mission" gorm:"type:text"`
	History    string          `json:"history" gorm:"type:text"`
	Address    string          `json:"address" gorm:"size:500"`
	Phone      string          `json:"phone" gorm:"size:50"`
	Email      string          `json:"email" gorm:"size:255" validate:"omitempty,email"`
	Population int             `json:"population" validate:"gte=0"`
	AreaKm2    decimal.Decimal `json:"area_km2" gorm:"type:decimal(10,2);not null;default:0"`
	UpdatedAt  time.Time       `json:"updated_at"`
}
