package handler

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"desaweb/internal/auth"
	"desaweb/internal/model"
	"desaweb/internal/repository"
	"desaweb/internal/service"
)

type testValidator struct{ v *validator.Validate }

func (tv *testValidator) Validate(i interface{}) error { return tv.v.Struct(i) }

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = &testValidator{v: validator.New()}
	return e
}

func newRequest(e *echo.Echo, method, target string, body io.Reader, contentType string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func newSessions(t *testing.T) *auth.SessionManager {
	t.Helper()
	jwtService, err := auth.NewJWTService("test-secret")
	require.NoError(t, err)
	return auth.NewSessionManager(jwtService, nil, true, zap.NewNop())
}

func findCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

var kades = auth.Principal{ID: 1, Username: "kades", Email: "kades@desa.id", Name: "Kepala Desa", Role: model.RoleAdmin}

// MockAuthService is a mock implementation of AuthService.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, identifier, password string) (*service.LoginResult, error) {
	args := m.Called(ctx, identifier, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.LoginResult), args.Error(1)
}

func loginResult(t *testing.T, sessions *auth.SessionManager) *service.LoginResult {
	t.Helper()
	token, exp, err := sessions.Issue(kades)
	require.NoError(t, err)
	return &service.LoginResult{Token: token, ExpiresAt: exp, Principal: kades}
}

// MockContentService is a mock implementation of ContentService[T].
type MockContentService[T any] struct {
	mock.Mock
	entity string
}

func (m *MockContentService[T]) EntityType() string { return m.entity }

func (m *MockContentService[T]) Create(ctx context.Context, item *T) (*T, error) {
	args := m.Called(ctx, item)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func (m *MockContentService[T]) Update(ctx context.Context, id uint, patch *T) (*T, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func (m *MockContentService[T]) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockContentService[T]) Get(ctx context.Context, id uint) (*T, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func (m *MockContentService[T]) GetBySlug(ctx context.Context, slug string) (*T, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func (m *MockContentService[T]) List(ctx context.Context, q repository.ListQuery) (*service.Page[T], error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Page[T]), args.Error(1)
}

func (m *MockContentService[T]) Exists(ctx context.Context, id uint) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockContentService[T]) Published(ctx context.Context, id uint) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockMediaService is a mock implementation of MediaService.
type MockMediaService struct {
	mock.Mock
}

func (m *MockMediaService) RegisterEntity(entityType string, hooks service.EntityHooks) {
	m.Called(entityType, hooks)
}

func (m *MockMediaService) Attach(ctx context.Context, entityType string, entityID uint, file service.Upload) (*model.Media, error) {
	args := m.Called(ctx, entityType, entityID, file)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Media), args.Error(1)
}

func (m *MockMediaService) List(ctx context.Context, entityType string, entityID uint, publicOnly bool) ([]model.Media, error) {
	args := m.Called(ctx, entityType, entityID, publicOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Media), args.Error(1)
}

func (m *MockMediaService) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockMediaService) DeleteFor(ctx context.Context, entityType string, entityID uint) error {
	args := m.Called(ctx, entityType, entityID)
	return args.Error(0)
}
