package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"desaweb/internal/model"
)

// ProfileRepository stores the single village profile row.
type ProfileRepository interface {
	Get(ctx context.Context) (*model.VillageProfile, error)
	Upsert(ctx context.Context, profile *model.VillageProfile) error
}

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new profile repository.
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Get(ctx context.Context) (*model.VillageProfile, error) {
	var p model.VillageProfile
	if err := r.db.WithContext(ctx).First(&p, model.ProfileID).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *profileRepository) Upsert(ctx context.Context, profile *model.VillageProfile) error {
	profile.ID = model.ProfileID
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(profile).Error
}
