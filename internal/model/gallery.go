package model

// GalleryAlbum groups photos; the photos themselves are Media rows
// attached with entity type "gallery".
type GalleryAlbum struct {
	ContentBase
	Description string `json:"description" gorm:"type:text"`
}

func (*GalleryAlbum) EntityType() string { return EntityGallery }
