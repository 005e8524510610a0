package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"

	apperr "desaweb/internal/errors"
	"desaweb/internal/model"
	"desaweb/internal/repository"
	"desaweb/internal/storage"
)

const sniffLen = 512

// allowedMediaTypes are the content types accepted for upload.
var allowedMediaTypes = []string{
	"image/jpeg",
	"image/png",
	"image/webp",
	"image/gif",
	"application/pdf",
}

// EntityExistsFunc reports whether an entity of a registered type exists.
type EntityExistsFunc func(ctx context.Context, id uint) (bool, error)

// EntityHooks look up entities of one registered type.
type EntityHooks struct {
	// Exists matches any live entity, drafts included.
	Exists EntityExistsFunc
	// Visible matches entities the public may see. Nil falls back to Exists.
	Visible EntityExistsFunc
}

// Upload is a file received from a client.
type Upload struct {
	FileName string
	Size     int64
	Body     io.Reader
}

// MediaService stores files with the configured provider and links them to
// content by (entity type, entity id).
type MediaService interface {
	RegisterEntity(entityType string, hooks EntityHooks)
	Attach(ctx context.Context, entityType string, entityID uint, file Upload) (*model.Media, error)
	List(ctx context.Context, entityType string, entityID uint, publicOnly bool) ([]model.Media, error)
	Delete(ctx context.Context, id uint) error
	DeleteFor(ctx context.Context, entityType string, entityID uint) error
}

type mediaService struct {
	repo     repository.MediaRepository
	storage  *storage.Registry
	maxBytes int64
	log      *zap.Logger

	mu       sync.RWMutex
	entities map[string]EntityHooks
}

// NewMediaService creates a media service. maxBytes caps upload size.
func NewMediaService(repo repository.MediaRepository, registry *storage.Registry, maxBytes int64, log *zap.Logger) MediaService {
	if log == nil {
		log = zap.NewNop()
	}
	return &mediaService{
		repo:     repo,
		storage:  registry,
		maxBytes: maxBytes,
		log:      log,
		entities: make(map[string]EntityHooks),
	}
}

func (s *mediaService) RegisterEntity(entityType string, hooks EntityHooks) {
	if hooks.Visible == nil {
		hooks.Visible = hooks.Exists
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entities[entityType] = hooks
}

// entityExists returns ErrNotFound for missing entities, and for drafts or
// soft-deleted content when publicOnly is set.
func (s *mediaService) entityExists(ctx context.Context, entityType string, entityID uint, publicOnly bool) error {
	s.mu.RLock()
	hooks, ok := s.entities[entityType]
	s.mu.RUnlock()
	if !ok {
		return apperr.ErrUnknownEntity
	}
	check := hooks.Exists
	if publicOnly {
		check = hooks.Visible
	}
	found, err := check(ctx, entityID)
	if err != nil {
		return fmt.Errorf("check %s %d: %w", entityType, entityID, err)
	}
	if !found {
		return apperr.ErrNotFound
	}
	return nil
}

// Attach validates and uploads file, then records it against the entity.
func (s *mediaService) Attach(ctx context.Context, entityType string, entityID uint, file Upload) (*model.Media, error) {
	if err := s.entityExists(ctx, entityType, entityID, false); err != nil {
		return nil, err
	}
	if s.maxBytes > 0 && file.Size > s.maxBytes {
		return nil, apperr.ErrFileTooLarge
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(file.Body, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	head = head[:n]
	if n == 0 {
		return nil, fmt.Errorf("%w: empty file", apperr.ErrInvalidInput)
	}

	contentType, ok := detectAllowed(head)
	if !ok {
		return nil, apperr.ErrUnsupportedMedia
	}

	uploader := s.storage.Default()
	stored, err := uploader.Upload(ctx, storage.Object{
		Name:        file.FileName,
		ContentType: contentType,
		Size:        file.Size,
		Body:        io.MultiReader(bytes.NewReader(head), file.Body),
		Folder:      fmt.Sprintf("%s/%d", entityType, entityID),
	})
	if err != nil {
		return nil, fmt.Errorf("upload %s: %w", file.FileName, err)
	}

	media := &model.Media{
		EntityType:  entityType,
		EntityID:    entityID,
		Provider:    uploader.Provider(),
		ExternalID:  stored.ExternalID,
		URL:         stored.URL,
		FileName:    file.FileName,
		ContentType: contentType,
		Size:        file.Size,
	}
	if err := s.repo.Create(ctx, media); err != nil {
		if delErr := uploader.Delete(ctx, stored.ExternalID); delErr != nil {
			s.log.Warn("failed to remove orphaned upload", zap.String("external_id", stored.ExternalID), zap.Error(delErr))
		}
		return nil, fmt.Errorf("save media: %w", err)
	}

	s.log.Info("media attached",
		zap.Uint("media_id", media.ID),
		zap.String("entity_type", entityType),
		zap.Uint("entity_id", entityID),
		zap.String("provider", media.Provider),
	)
	return media, nil
}

func detectAllowed(head []byte) (string, bool) {
	mtype := mimetype.Detect(head)
	for _, allowed := range allowedMediaTypes {
		if mtype.Is(allowed) {
			return allowed, true
		}
	}
	return "", false
}

// List returns the media of one entity. With publicOnly, media of drafts
// and deleted content is reported as not found.
func (s *mediaService) List(ctx context.Context, entityType string, entityID uint, publicOnly bool) ([]model.Media, error) {
	if err := s.entityExists(ctx, entityType, entityID, publicOnly); err != nil {
		return nil, err
	}
	media, err := s.repo.ListByEntity(ctx, entityType, entityID)
	if err != nil {
		return nil, err
	}
	if media == nil {
		media = []model.Media{}
	}
	return media, nil
}

// Delete removes the stored object through the provider recorded on the row
// and then the row itself. The row stays when the provider refuses, so the
// delete can be retried.
func (s *mediaService) Delete(ctx context.Context, id uint) error {
	media, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return notFound(err)
	}
	return s.remove(ctx, media)
}

func (s *mediaService) remove(ctx context.Context, media *model.Media) error {
	uploader, err := s.storage.Get(media.Provider)
	if err != nil {
		s.log.Warn("media provider no longer configured, dropping record only",
			zap.Uint("media_id", media.ID), zap.String("provider", media.Provider))
	} else if err := uploader.Delete(ctx, media.ExternalID); err != nil {
		return fmt.Errorf("delete stored object: %w", err)
	}

	if err := s.repo.Delete(ctx, media.ID); err != nil {
		return fmt.Errorf("delete media: %w", err)
	}
	return nil
}

// DeleteFor removes every media item of an entity, continuing past failures.
func (s *mediaService) DeleteFor(ctx context.Context, entityType string, entityID uint) error {
	items, err := s.repo.ListByEntity(ctx, entityType, entityID)
	if err != nil {
		return err
	}
	var errs []error
	for i := range items {
		if err := s.remove(ctx, &items[i]); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
