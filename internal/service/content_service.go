package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"desaweb/internal/cache"
	"desaweb/internal/model"
	"desaweb/internal/repository"
	"desaweb/internal/slug"
)

const (
	contentCacheTTL = 5 * time.Minute
	// maxSlugAttempts bounds retries when a concurrent insert claims the
	// slug between the existence check and our insert.
	maxSlugAttempts = 3
)

// Page is one page of a listing.
type Page[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}

// MediaCleaner removes the media attached to an entity.
type MediaCleaner interface {
	DeleteFor(ctx context.Context, entityType string, entityID uint) error
}

// ContentService manages one slug-addressed content type.
type ContentService[T any] interface {
	EntityType() string
	Create(ctx context.Context, item *T) (*T, error)
	Update(ctx context.Context, id uint, patch *T) (*T, error)
	Delete(ctx context.Context, id uint) error
	Get(ctx context.Context, id uint) (*T, error)
	GetBySlug(ctx context.Context, slug string) (*T, error)
	List(ctx context.Context, q repository.ListQuery) (*Page[T], error)
	Exists(ctx context.Context, id uint) (bool, error)
	Published(ctx context.Context, id uint) (bool, error)
}

type contentService[T any, PT model.ContentPtr[T]] struct {
	repo   repository.ContentRepository[T]
	media  MediaCleaner
	cache  *cache.Client
	log    *zap.Logger
	entity string
}

// NewContentService builds a ContentService for T. media may be nil when
// the content type carries no attachments.
func NewContentService[T any, PT model.ContentPtr[T]](
	repo repository.ContentRepository[T],
	media MediaCleaner,
	cache *cache.Client,
	log *zap.Logger,
) ContentService[T] {
	if log == nil {
		log = zap.NewNop()
	}
	entity := PT(new(T)).EntityType()
	return &contentService[T, PT]{
		repo:   repo,
		media:  media,
		cache:  cache,
		log:    log.With(zap.String("entity", entity)),
		entity: entity,
	}
}

func (s *contentService[T, PT]) EntityType() string { return s.entity }

func (s *contentService[T, PT]) slugKey(slug string) string {
	return fmt.Sprintf("content:%s:slug:%s", s.entity, slug)
}

// Create derives a unique slug from the title and inserts item.
func (s *contentService[T, PT]) Create(ctx context.Context, item *T) (*T, error) {
	base := PT(item).Base()
	base.ID = 0

	var lastErr error
	for attempt := 1; attempt <= maxSlugAttempts; attempt++ {
		candidate, err := slug.GenerateUnique(ctx, base.Title, s.repo.ExistsBySlug)
		if err != nil {
			return nil, err
		}
		base.Slug = candidate

		err = s.repo.Create(ctx, item)
		if err == nil {
			s.log.Info("content created", zap.Uint("id", base.ID), zap.String("slug", base.Slug))
			return item, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("create %s: %w", s.entity, err)
		}
		lastErr = err
		s.log.Warn("slug claimed concurrently, retrying", zap.String("slug", candidate), zap.Int("attempt", attempt))
	}
	return nil, fmt.Errorf("create %s: %w", s.entity, lastErr)
}

// Update replaces the editable fields of record id with patch. The slug and
// creation time are kept from the stored record.
func (s *contentService[T, PT]) Update(ctx context.Context, id uint, patch *T) (*T, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	stored := PT(existing).Base()

	next := PT(patch).Base()
	next.ID = stored.ID
	next.Slug = stored.Slug
	next.CreatedAt = stored.CreatedAt

	if err := s.repo.Update(ctx, patch); err != nil {
		return nil, fmt.Errorf("update %s: %w", s.entity, err)
	}
	_ = s.cache.Delete(ctx, s.slugKey(stored.Slug))
	return patch, nil
}

// Delete soft-deletes record id and removes its media.
func (s *contentService[T, PT]) Delete(ctx context.Context, id uint) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return notFound(err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFound(err)
	}
	_ = s.cache.Delete(ctx, s.slugKey(PT(existing).Base().Slug))

	if s.media != nil {
		if err := s.media.DeleteFor(ctx, s.entity, id); err != nil {
			s.log.Warn("failed to remove media of deleted content", zap.Uint("id", id), zap.Error(err))
		}
	}
	s.log.Info("content deleted", zap.Uint("id", id))
	return nil
}

func (s *contentService[T, PT]) Get(ctx context.Context, id uint) (*T, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return item, nil
}

// GetBySlug returns the published record with slug.
func (s *contentService[T, PT]) GetBySlug(ctx context.Context, slug string) (*T, error) {
	key := s.slugKey(slug)
	var cached T
	if s.cache.GetJSON(ctx, key, &cached) {
		return &cached, nil
	}

	item, err := s.repo.FindBySlug(ctx, slug, true)
	if err != nil {
		return nil, notFound(err)
	}
	s.cache.SetJSON(ctx, key, item, contentCacheTTL)
	return item, nil
}

func (s *contentService[T, PT]) List(ctx context.Context, q repository.ListQuery) (*Page[T], error) {
	q = q.Normalize()
	items, total, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.entity, err)
	}
	if items == nil {
		items = []T{}
	}
	return &Page[T]{Items: items, Total: total, Page: q.Page, Limit: q.Limit}, nil
}

// Published reports whether record id is live and published.
func (s *contentService[T, PT]) Published(ctx context.Context, id uint) (bool, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err == nil {
		return PT(item).Base().Published, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return false, err
}

// Exists reports whether record id is present and not deleted.
func (s *contentService[T, PT]) Exists(ctx context.Context, id uint) (bool, error) {
	_, err := s.repo.FindByID(ctx, id)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return false, err
}
