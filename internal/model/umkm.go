package model

import "github.com/shopspring/decimal"

// UMKM is a listing for a local micro, small or medium enterprise.
type UMKM struct {
	ContentBase
	Owner       string          `json:"owner" gorm:"size:255"`
	Category    string          `json:"category" gorm:"size:100;index"`
	Description string          `json:"description" gorm:"type:text"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(14,2);not null;default:0"`
	Phone       string          `json:"phone" gorm:"size:50"`
	Address     string          `json:"address" gorm:"size:500"`
}

// TableName keeps the acronym readable in the schema.
func (UMKM) TableName() string { return "umkms" }

func (*UMKM) EntityType() string { return EntityUMKM }
