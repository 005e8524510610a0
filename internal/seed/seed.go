// Package seed loads initial users, the village profile and content from a
// YAML file.
package seed

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	apperr "desaweb/internal/errors"
	"desaweb/internal/model"
	"desaweb/internal/service"
)

// File is the seed document.
type File struct {
	Users   []User       `yaml:"users"`
	Profile *Profile     `yaml:"profile"`
	News    []NewsEntry  `yaml:"news"`
	Events  []EventEntry `yaml:"events"`
	Gallery []AlbumEntry `yaml:"gallery"`
	Tourism []TourEntry  `yaml:"tourism"`
	UMKM    []UMKMEntry  `yaml:"umkm"`
}

type User struct {
	Username string `yaml:"username"`
	Email    string `yaml:"email"`
	Name     string `yaml:"name"`
	Password string `yaml:"password"`
	Role     string `yaml:"role"`
}

type Profile struct {
	Name       string `yaml:"name"`
	Vision     string `yaml:"vision"`
	Mission    string `yaml:"mission"`
	History    string `yaml:"history"`
	Address    string `yaml:"address"`
	Phone      string `yaml:"phone"`
	Email      string `yaml:"email"`
	Population int    `yaml:"population"`
	AreaKm2    string `yaml:"area_km2"`
}

type NewsEntry struct {
	Title     string `yaml:"title"`
	Published bool   `yaml:"published"`
	Summary   string `yaml:"summary"`
	Body      string `yaml:"body"`
	Author    string `yaml:"author"`
}

type EventEntry struct {
	Title       string     `yaml:"title"`
	Published   bool       `yaml:"published"`
	Description string     `yaml:"description"`
	Location    string     `yaml:"location"`
	StartsAt    time.Time  `yaml:"starts_at"`
	EndsAt      *time.Time `yaml:"ends_at"`
}

type AlbumEntry struct {
	Title       string `yaml:"title"`
	Published   bool   `yaml:"published"`
	Description string `yaml:"description"`
}

type TourEntry struct {
	Title       string `yaml:"title"`
	Published   bool   `yaml:"published"`
	Description string `yaml:"description"`
	Price       string `yaml:"price"`
	Duration    string `yaml:"duration"`
	Facilities  string `yaml:"facilities"`
	Contact     string `yaml:"contact"`
}

type UMKMEntry struct {
	Title       string `yaml:"title"`
	Published   bool   `yaml:"published"`
	Owner       string `yaml:"owner"`
	Category    string `yaml:"category"`
	Description string `yaml:"description"`
	Price       string `yaml:"price"`
	Phone       string `yaml:"phone"`
	Address     string `yaml:"address"`
}

// Load reads and strictly decodes a seed file; unknown keys are errors.
func Load(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)

	var file File
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("decode seed file: %w", err)
	}
	return &file, nil
}

// Result counts what a run created.
type Result struct {
	Users    int
	Skipped  int
	Profile  bool
	Contents map[string]int
}

// Services are the write paths the seeder goes through.
type Services struct {
	Users   service.UserService
	Profile service.ProfileService
	News    service.ContentService[model.News]
	Events  service.ContentService[model.Event]
	Gallery service.ContentService[model.GalleryAlbum]
	Tourism service.ContentService[model.TourPackage]
	UMKM    service.ContentService[model.UMKM]
}

// Seeder writes a File through the application services, so content gets
// its slug from the same generator the admin API uses.
type Seeder struct {
	svc Services
	log *zap.Logger
}

// New creates a Seeder.
func New(svc Services, log *zap.Logger) *Seeder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Seeder{svc: svc, log: log}
}

// Run seeds f. Existing users are skipped; content is always created, so
// running twice yields suffixed duplicates.
func (s *Seeder) Run(ctx context.Context, f *File) (*Result, error) {
	res := &Result{Contents: map[string]int{}}

	for _, u := range f.Users {
		_, err := s.svc.Users.Create(ctx, service.CreateUserInput{
			Username: u.Username,
			Email:    u.Email,
			Name:     u.Name,
			Password: u.Password,
			Role:     u.Role,
		})
		if errors.Is(err, apperr.ErrUserAlreadyExists) {
			s.log.Info("user exists, skipping", zap.String("username", u.Username))
			res.Skipped++
			continue
		}
		if err != nil {
			return res, fmt.Errorf("seed user %q: %w", u.Username, err)
		}
		res.Users++
	}

	if f.Profile != nil {
		p, err := f.Profile.model()
		if err != nil {
			return res, err
		}
		if _, err := s.svc.Profile.Update(ctx, p); err != nil {
			return res, fmt.Errorf("seed profile: %w", err)
		}
		res.Profile = true
	}

	var err error
	if res.Contents[model.EntityNews], err = seedContent(ctx, s.svc.News, f.News, NewsEntry.model); err != nil {
		return res, err
	}
	if res.Contents[model.EntityEvent], err = seedContent(ctx, s.svc.Events, f.Events, EventEntry.model); err != nil {
		return res, err
	}
	if res.Contents[model.EntityGallery], err = seedContent(ctx, s.svc.Gallery, f.Gallery, AlbumEntry.model); err != nil {
		return res, err
	}
	if res.Contents[model.EntityTourism], err = seedContent(ctx, s.svc.Tourism, f.Tourism, TourEntry.model); err != nil {
		return res, err
	}
	if res.Contents[model.EntityUMKM], err = seedContent(ctx, s.svc.UMKM, f.UMKM, UMKMEntry.model); err != nil {
		return res, err
	}
	return res, nil
}

func seedContent[T any, E any](ctx context.Context, svc service.ContentService[T], entries []E, build func(E) (*T, error)) (int, error) {
	created := 0
	for i, entry := range entries {
		item, err := build(entry)
		if err != nil {
			return created, fmt.Errorf("seed %s #%d: %w", svc.EntityType(), i+1, err)
		}
		if _, err := svc.Create(ctx, item); err != nil {
			return created, fmt.Errorf("seed %s #%d: %w", svc.EntityType(), i+1, err)
		}
		created++
	}
	return created, nil
}

func parseDecimal(field, v string) (decimal.Decimal, error) {
	if v == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s %q is not a number", apperr.ErrInvalidInput, field, v)
	}
	return d, nil
}

func base(title string, published bool) model.ContentBase {
	return model.ContentBase{Title: title, Published: published}
}

func (p Profile) model() (*model.VillageProfile, error) {
	area, err := parseDecimal("area_km2", p.AreaKm2)
	if err != nil {
		return nil, err
	}
	return &model.VillageProfile{
		Name:       p.Name,
		Vision:     p.Vision,
		Mission:    p.Mission,
		History:    p.History,
		Address:    p.Address,
		Phone:      p.Phone,
		Email:      p.Email,
		Population: p.Population,
		AreaKm2:    area,
	}, nil
}

func (e NewsEntry) model() (*model.News, error) {
	return &model.News{ContentBase: base(e.Title, e.Published), Summary: e.Summary, Body: e.Body, Author: e.Author}, nil
}

func (e EventEntry) model() (*model.Event, error) {
	if e.StartsAt.IsZero() {
		return nil, fmt.Errorf("%w: starts_at is required", apperr.ErrInvalidInput)
	}
	return &model.Event{
		ContentBase: base(e.Title, e.Published),
		Description: e.Description,
		Location:    e.Location,
		StartsAt:    e.StartsAt,
		EndsAt:      e.EndsAt,
	}, nil
}

func (e AlbumEntry) model() (*model.GalleryAlbum, error) {
	return &model.GalleryAlbum{ContentBase: base(e.Title, e.Published), Description: e.Description}, nil
}

func (e TourEntry) model() (*model.TourPackage, error) {
	price, err := parseDecimal("price", e.Price)
	if err != nil {
		return nil, err
	}
	return &model.TourPackage{
		ContentBase: base(e.Title, e.Published),
		Description: e.Description,
		Price:       price,
		Duration:    e.Duration,
		Facilities:  e.Facilities,
		Contact:     e.Contact,
	}, nil
}

func (e UMKMEntry) model() (*model.UMKM, error) {
	price, err := parseDecimal("price", e.Price)
	if err != nil {
		return nil, err
	}
	return &model.UMKM{
		ContentBase: base(e.Title, e.Published),
		Owner:       e.Owner,
		Category:    e.Category,
		Description: e.Description,
		Price:       price,
		Phone:       e.Phone,
		Address:     e.Address,
	}, nil
}
