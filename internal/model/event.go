package model

import "time"

// Event is an agenda item on the village calendar.
type Event struct {
	ContentBase
	Description string     `json:"description" gorm:"type:text"`
	Location    string     `json:"location" gorm:"size:255"`
	StartsAt    time.Time  `json:"starts_at" gorm:"index" validate:"required"`
	EndsAt      *time.Time `json:"ends_at,omitempty"`
}

func (*Event) EntityType() string { return EntityEvent }
