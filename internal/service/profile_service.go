package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"desaweb/internal/cache"
	apperr "desaweb/internal/errors"
	"desaweb/internal/model"
	"desaweb/internal/repository"
)

const (
	profileCacheKey = "profile"
	profileCacheTTL = 10 * time.Minute
)

// ProfileService reads and edits the village profile.
type ProfileService interface {
	Get(ctx context.Context) (*model.VillageProfile, error)
	Update(ctx context.Context, profile *model.VillageProfile) (*model.VillageProfile, error)
	Exists(ctx context.Context, id uint) (bool, error)
}

type profileService struct {
	repo  repository.ProfileRepository
	cache *cache.Client
}

// NewProfileService builds a ProfileService.
func NewProfileService(repo repository.ProfileRepository, cache *cache.Client) ProfileService {
	return &profileService{repo: repo, cache: cache}
}

func (s *profileService) Get(ctx context.Context) (*model.VillageProfile, error) {
	var cached model.VillageProfile
	if s.cache.GetJSON(ctx, profileCacheKey, &cached) {
		return &cached, nil
	}

	profile, err := s.repo.Get(ctx)
	if err != nil {
		return nil, notFound(err)
	}
	s.cache.SetJSON(ctx, profileCacheKey, profile, profileCacheTTL)
	return profile, nil
}

func (s *profileService) Update(ctx context.Context, profile *model.VillageProfile) (*model.VillageProfile, error) {
	if err := s.repo.Upsert(ctx, profile); err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}
	_ = s.cache.Delete(ctx, profileCacheKey)
	return profile, nil
}

// Exists lets media attach to the profile; only the singleton id matches.
func (s *profileService) Exists(ctx context.Context, id uint) (bool, error) {
	if id != model.ProfileID {
		return false, nil
	}
	_, err := s.Get(ctx)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, apperr.ErrNotFound) {
		return false, nil
	}
	return false, err
}
