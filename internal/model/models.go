package model

// All lists every model for schema migration.
func All() []interface{} {
	return []interface{}{
		&User{},
		&News{},
		&Event{},
		&GalleryAlbum{},
		&TourPackage{},
		&UMKM{},
		&VillageProfile{},
		&Media{},
	}
}
