package repository

import (
	"context"

	"gorm.io/gorm"

	"desaweb/internal/model"
)

// MediaRepository defines media persistence operations.
type MediaRepository interface {
	Create(ctx context.Context, media *model.Media) error
	FindByID(ctx context.Context, id uint) (*model.Media, error)
	ListByEntity(ctx context.Context, entityType string, entityID uint) ([]model.Media, error)
	Delete(ctx context.Context, id uint) error
}

type mediaRepository struct {
	db *gorm.DB
}

// NewMediaRepository creates a new media repository.
func NewMediaRepository(db *gorm.DB) MediaRepository {
	return &mediaRepository{db: db}
}

// Create creates a new media record.
func (r *mediaRepository) Create(ctx context.Context, media *model.Media) error {
	return r.db.WithContext(ctx).Create(media).Error
}

// FindByID finds a media record by ID.
func (r *mediaRepository) FindByID(ctx context.Context, id uint) (*model.Media, error) {
	var media model.Media
	if err := r.db.WithContext(ctx).First(&media, id).Error; err != nil {
		return nil, err
	}
	return &media, nil
}

// ListByEntity lists media attached to one entity, oldest first.
func (r *mediaRepository) ListByEntity(ctx context.Context, entityType string, entityID uint) ([]model.Media, error) {
	var media []model.Media
	if err := r.db.WithContext(ctx).
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Order("id").Find(&media).Error; err != nil {
		return nil, err
	}
	return media, nil
}

// Delete removes a media record.
func (r *mediaRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Media{}, id).Error
}
