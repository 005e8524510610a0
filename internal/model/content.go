package model

import (
	"time"

	"gorm.io/gorm"
)

// Entity types used to associate media with content.
const (
	EntityNews    = "news"
	EntityEvent   = "event"
	EntityGallery = "gallery"
	EntityTourism = "tourism"
	EntityUMKM    = "umkm"
	EntityProfile = "profile"
)

// ContentBase holds the columns shared by every slug-addressed content type.
// The slug is derived from Title on creation and never changes afterwards.
type ContentBase struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Title     string         `json:"title" gorm:"size:255;not null" validate:"required,max=255"`
	Slug      string         `json:"slug" gorm:"uniqueIndex;size:300;not null"`
	Published bool           `json:"published" gorm:"default:false;index"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// Base gives generic code access to the shared columns.
func (b *ContentBase) Base() *ContentBase { return b }

// Content is implemented by pointers to content models.
type Content interface {
	Base() *ContentBase
	EntityType() string
}

// ContentPtr constrains a type parameter to *T implementing Content.
type ContentPtr[T any] interface {
	*T
	Content
}
