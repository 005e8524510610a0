// Package app assembles the service graph shared by the server and the
// admin CLI.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"desaweb/internal/auth"
	"desaweb/internal/cache"
	"desaweb/internal/config"
	"desaweb/internal/db"
	"desaweb/internal/handler"
	"desaweb/internal/model"
	"desaweb/internal/repository"
	"desaweb/internal/router"
	"desaweb/internal/service"
	"desaweb/internal/storage"
)

// Options selects the optional parts of the graph.
type Options struct {
	// Media builds the storage backends and the media service. The CLI runs
	// without them so it needs no storage credentials.
	Media bool
}

// App holds the constructed dependencies.
type App struct {
	Config   *config.Config
	Log      *zap.Logger
	DB       *gorm.DB
	Cache    *cache.Client
	Sessions *auth.SessionManager
	Storage  *storage.Registry

	Auth    service.AuthService
	Users   service.UserService
	Profile service.ProfileService
	Media   service.MediaService
	News    service.ContentService[model.News]
	Events  service.ContentService[model.Event]
	Gallery service.ContentService[model.GalleryAlbum]
	Tourism service.ContentService[model.TourPackage]
	UMKM    service.ContentService[model.UMKM]
}

// New connects to the database and redis and builds every service.
func New(ctx context.Context, cfg *config.Config, log *zap.Logger, opts Options) (*App, error) {
	gormDB, err := db.Open(cfg.DBDriver, cfg.DBDSN, cfg.IsDevelopment())
	if err != nil {
		return nil, err
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err := cacheClient.Ping(ctx); err != nil {
		log.Warn("redis unavailable, caching and logout revocation are disabled", zap.Error(err))
	}

	jwtService, err := auth.NewJWTService(cfg.JWTSecret)
	if err != nil {
		return nil, err
	}
	sessions := auth.NewSessionManager(jwtService, auth.NewTokenStore(cacheClient), cfg.SecureCookies(), log)

	a := &App{
		Config:   cfg,
		Log:      log,
		DB:       gormDB,
		Cache:    cacheClient,
		Sessions: sessions,
	}

	userRepo := repository.NewUserRepository(gormDB)
	a.Auth = service.NewAuthService(userRepo, sessions, log)
	a.Users = service.NewUserService(userRepo, log)
	a.Profile = service.NewProfileService(repository.NewProfileRepository(gormDB), cacheClient)

	var cleaner service.MediaCleaner
	if opts.Media {
		registry, err := NewStorage(ctx, cfg.Storage)
		if err != nil {
			return nil, err
		}
		a.Storage = registry
		a.Media = service.NewMediaService(repository.NewMediaRepository(gormDB), registry, cfg.Storage.MaxUploadBytes, log)
		cleaner = a.Media
	}

	a.News = service.NewContentService[model.News](repository.NewContentRepository[model.News](gormDB), cleaner, cacheClient, log)
	a.Events = service.NewContentService[model.Event](repository.NewContentRepository[model.Event](gormDB), cleaner, cacheClient, log)
	a.Gallery = service.NewContentService[model.GalleryAlbum](repository.NewContentRepository[model.GalleryAlbum](gormDB), cleaner, cacheClient, log)
	a.Tourism = service.NewContentService[model.TourPackage](repository.NewContentRepository[model.TourPackage](gormDB), cleaner, cacheClient, log)
	a.UMKM = service.NewContentService[model.UMKM](repository.NewContentRepository[model.UMKM](gormDB), cleaner, cacheClient, log)

	if a.Media != nil {
		registerContentMedia(a.Media, a.News)
		registerContentMedia(a.Media, a.Events)
		registerContentMedia(a.Media, a.Gallery)
		registerContentMedia(a.Media, a.Tourism)
		registerContentMedia(a.Media, a.UMKM)
		a.Media.RegisterEntity(model.EntityProfile, service.EntityHooks{Exists: a.Profile.Exists})
	}

	return a, nil
}

// registerContentMedia lets media attach to any live record of svc's kind
// while the public only sees media of published records.
func registerContentMedia[T any](media service.MediaService, svc service.ContentService[T]) {
	media.RegisterEntity(svc.EntityType(), service.EntityHooks{Exists: svc.Exists, Visible: svc.Published})
}

// Handlers builds the HTTP handlers. It requires Options.Media.
func (a *App) Handlers() router.Handlers {
	return router.Handlers{
		Auth:    handler.NewAuthHandler(a.Auth, a.Sessions, a.Log),
		Pages:   handler.NewPageHandler(a.Auth, a.Sessions, a.Log),
		News:    handler.NewContentHandler(a.News, a.Log),
		Events:  handler.NewContentHandler(a.Events, a.Log),
		Gallery: handler.NewContentHandler(a.Gallery, a.Log),
		Tourism: handler.NewContentHandler(a.Tourism, a.Log),
		UMKM:    handler.NewContentHandler(a.UMKM, a.Log),
		Media:   handler.NewMediaHandler(a.Media, a.Log),
		Profile: handler.NewProfileHandler(a.Profile, a.Log),
		Users:   handler.NewUserHandler(a.Users, a.Log),
	}
}

// Migrate creates or updates the schema.
func (a *App) Migrate() error {
	return db.Migrate(a.DB)
}

// Close releases the database and redis connections.
func (a *App) Close() {
	_ = a.Cache.Close()
	if sqlDB, err := a.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// NewStorage registers every provider whose credentials are configured. The
// provider named by cfg.Provider must be among them.
func NewStorage(ctx context.Context, cfg config.StorageConfig) (*storage.Registry, error) {
	var uploaders []storage.Uploader

	if cfg.CloudinaryCloudName != "" {
		u, err := storage.NewCloudinaryUploader(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, cfg.CloudinaryFolder)
		if err != nil {
			return nil, err
		}
		uploaders = append(uploaders, u)
	}
	if cfg.GDriveCredentialsFile != "" {
		u, err := storage.NewGDriveUploader(ctx, cfg.GDriveCredentialsFile, cfg.GDriveFolderID)
		if err != nil {
			return nil, err
		}
		uploaders = append(uploaders, u)
	}
	if cfg.S3Bucket != "" {
		u, err := storage.NewS3Uploader(ctx, storage.S3Options{
			Bucket:        cfg.S3Bucket,
			Region:        cfg.S3Region,
			Endpoint:      cfg.S3Endpoint,
			PublicBaseURL: cfg.S3PublicBaseURL,
		})
		if err != nil {
			return nil, err
		}
		uploaders = append(uploaders, u)
	}

	registry, err := storage.NewRegistry(cfg.Provider, uploaders...)
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}
	return registry, nil
}
