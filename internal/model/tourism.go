package model

import "github.com/shopspring/decimal"

// TourPackage is a tourism package offered by the village.
type TourPackage struct {
	ContentBase
	Description string          `json:"description" gorm:"type:text"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(14,2);not null;default:0"`
	Duration    string          `json:"duration" gorm:"size:100"`
	Facilities  string          `json:"facilities" gorm:"type:text"`
	Contact     string          `json:"contact" gorm:"size:100"`
}

func (*TourPackage) EntityType() string { return EntityTourism }
