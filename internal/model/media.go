package model

import "time"

// Media is a file stored with a remote provider and attached to a piece of
// content by (EntityType, EntityID).
type Media struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	EntityType  string    `json:"entity_type" gorm:"size:50;not null;index:idx_media_entity"`
	EntityID    uint      `json:"entity_id" gorm:"not null;index:idx_media_entity"`
	Provider    string    `json:"provider" gorm:"size:30;not null"`
	ExternalID  string    `json:"-" gorm:"size:500;not null"`
	URL         string    `json:"url" gorm:"size:1000;not null"`
	FileName    string    `json:"file_name" gorm:"size:255"`
	ContentType string    `json:"content_type" gorm:"size:100"`
	Size        int64     `json:"size"`
	CreatedAt   time.Time `json:"created_at"`
}
