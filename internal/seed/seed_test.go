package seed

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperr "desaweb/internal/errors"
	"desaweb/internal/model"
	"desaweb/internal/repository"
	"desaweb/internal/service"
)

const sample = `
users:
  - username: kades
    email: kades@desa.id
    name: Kepala Desa
    password: rahasia123
    role: admin
  - username: operator
    email: operator@desa.id
    name: Operator
    password: rahasia123
    role: editor
profile:
  name: Desa Sukamaju
  vision: Desa mandiri
  population: 4210
  area_km2: "12.75"
news:
  - title: Musyawarah Desa 2026
    published: true
    body: Rapat tahunan di balai desa.
events:
  - title: Lomba 17 Agustus
    published: true
    location: Lapangan desa
    starts_at: 2026-08-17T08:00:00Z
gallery:
  - title: Panen Raya
tourism:
  - title: Susur Sungai
    price: "75000"
    duration: 3 jam
umkm:
  - title: Keripik Singkong Bu Sari
    owner: Sari
    category: makanan
    price: "15000.50"
`

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	f, err := Load(writeFile(t, sample))
	require.NoError(t, err)

	require.Len(t, f.Users, 2)
	assert.Equal(t, "kades", f.Users[0].Username)
	require.NotNil(t, f.Profile)
	assert.Equal(t, 4210, f.Profile.Population)
	require.Len(t, f.Events, 1)
	assert.Equal(t, time.Date(2026, 8, 17, 8, 0, 0, 0, time.UTC), f.Events[0].StartsAt.UTC())
	assert.Nil(t, f.Events[0].EndsAt)
	assert.Equal(t, "15000.50", f.UMKM[0].Price)
}

func TestLoad_RejectsUnknownKeys(t *testing.T) {
	_, err := Load(writeFile(t, "news:\n  - title: x\n    headline: y\n"))
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

type fakeUsers struct {
	service.UserService
	existing map[string]bool
	created  []service.CreateUserInput
}

func (f *fakeUsers) Create(_ context.Context, in service.CreateUserInput) (*model.User, error) {
	if f.existing[in.Username] {
		return nil, apperr.ErrUserAlreadyExists
	}
	f.created = append(f.created, in)
	return &model.User{Username: in.Username}, nil
}

type fakeProfile struct {
	service.ProfileService
	saved *model.VillageProfile
}

func (f *fakeProfile) Update(_ context.Context, p *model.VillageProfile) (*model.VillageProfile, error) {
	f.saved = p
	return p, nil
}

type fakeContent[T any] struct {
	entity  string
	created []*T
}

func (f *fakeContent[T]) EntityType() string { return f.entity }

func (f *fakeContent[T]) Create(_ context.Context, item *T) (*T, error) {
	f.created = append(f.created, item)
	return item, nil
}

func (f *fakeContent[T]) Update(context.Context, uint, *T) (*T, error)  { return nil, nil }
func (f *fakeContent[T]) Delete(context.Context, uint) error            { return nil }
func (f *fakeContent[T]) Get(context.Context, uint) (*T, error)         { return nil, nil }
func (f *fakeContent[T]) GetBySlug(context.Context, string) (*T, error) { return nil, nil }
func (f *fakeContent[T]) Exists(context.Context, uint) (bool, error)    { return false, nil }
func (f *fakeContent[T]) Published(context.Context, uint) (bool, error) { return false, nil }

func (f *fakeContent[T]) List(context.Context, repository.ListQuery) (*service.Page[T], error) {
	return &service.Page[T]{}, nil
}

type fakes struct {
	users   *fakeUsers
	profile *fakeProfile
	news    *fakeContent[model.News]
	events  *fakeContent[model.Event]
	gallery *fakeContent[model.GalleryAlbum]
	tourism *fakeContent[model.TourPackage]
	umkm    *fakeContent[model.UMKM]
}

func newFakes(existing ...string) (*fakes, Services) {
	f := &fakes{
		users:   &fakeUsers{existing: map[string]bool{}},
		profile: &fakeProfile{},
		news:    &fakeContent[model.News]{entity: model.EntityNews},
		events:  &fakeContent[model.Event]{entity: model.EntityEvent},
		gallery: &fakeContent[model.GalleryAlbum]{entity: model.EntityGallery},
		tourism: &fakeContent[model.TourPackage]{entity: model.EntityTourism},
		umkm:    &fakeContent[model.UMKM]{entity: model.EntityUMKM},
	}
	for _, u := range existing {
		f.users.existing[u] = true
	}
	return f, Services{
		Users:   f.users,
		Profile: f.profile,
		News:    f.news,
		Events:  f.events,
		Gallery: f.gallery,
		Tourism: f.tourism,
		UMKM:    f.umkm,
	}
}

func TestSeeder_Run(t *testing.T) {
	file, err := Load(writeFile(t, sample))
	require.NoError(t, err)

	f, svc := newFakes("kades")
	res, err := New(svc, nil).Run(context.Background(), file)
	require.NoError(t, err)

	assert.Equal(t, 1, res.Users)
	assert.Equal(t, 1, res.Skipped)
	require.Len(t, f.users.created, 1)
	assert.Equal(t, "operator", f.users.created[0].Username)

	assert.True(t, res.Profile)
	require.NotNil(t, f.profile.saved)
	assert.Equal(t, "Desa Sukamaju", f.profile.saved.Name)
	assert.Equal(t, "12.75", f.profile.saved.AreaKm2.StringFixed(2))

	assert.Equal(t, map[string]int{
		model.EntityNews:    1,
		model.EntityEvent:   1,
		model.EntityGallery: 1,
		model.EntityTourism: 1,
		model.EntityUMKM:    1,
	}, res.Contents)

	news := f.news.created[0]
	assert.Equal(t, "Musyawarah Desa 2026", news.Title)
	assert.True(t, news.Published)
	assert.Empty(t, news.Slug)
	assert.False(t, f.gallery.created[0].Published)
	assert.Equal(t, "75000", f.tourism.created[0].Price.String())
	assert.Equal(t, "15000.5", f.umkm.created[0].Price.String())
}

func TestSeeder_Run_InvalidPrice(t *testing.T) {
	f, svc := newFakes()
	file := &File{UMKM: []UMKMEntry{{Title: "Kopi", Price: "murah"}}}

	res, err := New(svc, nil).Run(context.Background(), file)
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
	assert.Contains(t, err.Error(), "umkm #1")
	assert.Equal(t, 0, res.Contents[model.EntityUMKM])
	assert.Empty(t, f.umkm.created)
}

func TestSeeder_Run_EventNeedsStart(t *testing.T) {
	_, svc := newFakes()
	file := &File{Events: []EventEntry{{Title: "Kerja bakti"}}}

	_, err := New(svc, nil).Run(context.Background(), file)
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}
