package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ListQuery filters and paginates content listings. Page is 1-based.
type ListQuery struct {
	Page          int
	Limit         int
	PublishedOnly bool
	Search        string
}

// Normalize clamps Page and Limit into their valid ranges.
func (q ListQuery) Normalize() ListQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit <= 0 {
		q.Limit = defaultPageSize
	}
	if q.Limit > maxPageSize {
		q.Limit = maxPageSize
	}
	return q
}

// Offset returns the row offset of the page.
func (q ListQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

// ContentRepository defines persistence operations for a slug-addressed content type.
type ContentRepository[T any] interface {
	Create(ctx context.Context, item *T) error
	Update(ctx context.Context, item *T) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*T, error)
	FindBySlug(ctx context.Context, slug string, publishedOnly bool) (*T, error)
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
	List(ctx context.Context, q ListQuery) ([]T, int64, error)
}

type contentRepository[T any] struct {
	db *gorm.DB
}

// NewContentRepository builds a GORM-backed repository for T.
func NewContentRepository[T any](db *gorm.DB) ContentRepository[T] {
	return &contentRepository[T]{db: db}
}

// Create inserts a new record.
func (r *contentRepository[T]) Create(ctx context.Context, item *T) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// Update saves all fields of an existing record.
func (r *contentRepository[T]) Update(ctx context.Context, item *T) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// Delete soft-deletes a record by ID.
func (r *contentRepository[T]) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(new(T), id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindByID finds a record by ID.
func (r *contentRepository[T]) FindByID(ctx context.Context, id uint) (*T, error) {
	var item T
	if err := r.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// FindBySlug finds a record by slug, optionally restricted to published ones.
func (r *contentRepository[T]) FindBySlug(ctx context.Context, slug string, publishedOnly bool) (*T, error) {
	var item T
	q := r.db.WithContext(ctx).Where("slug = ?", slug)
	if publishedOnly {
		q = q.Where("published = ?", true)
	}
	if err := q.First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// ExistsBySlug reports whether any record, soft-deleted ones included, holds
// slug. Soft-deleted rows still occupy the unique index.
func (r *contentRepository[T]) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Unscoped().Model(new(T)).
		Where("slug = ?", slug).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// likeEscaper quotes LIKE wildcards with '!'. Backslash is avoided because
// MySQL and Postgres disagree on it inside string literals.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// containsPattern matches s literally anywhere in a column, for use with
// ESCAPE '!'.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

// List returns one page of records, newest first, and the total match count.
func (r *contentRepository[T]) List(ctx context.Context, q ListQuery) ([]T, int64, error) {
	q = q.Normalize()

	base := r.db.WithContext(ctx).Model(new(T))
	if q.PublishedOnly {
		base = base.Where("published = ?", true)
	}
	if q.Search != "" {
		base = base.Where("title LIKE ? ESCAPE '!'", containsPattern(q.Search))
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []T
	if err := base.Session(&gorm.Session{}).
		Order("created_at DESC").Order("id DESC").
		Limit(q.Limit).Offset(q.Offset()).
		Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
