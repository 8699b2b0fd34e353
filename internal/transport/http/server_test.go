package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"artfolio/internal/domain/models"
	mediaservice "artfolio/internal/services/media_service"
	"artfolio/internal/storage"
	filestorage "artfolio/internal/storage/filestorage"
	httpapi "artfolio/internal/transport/http"
	"artfolio/internal/transport/http/dto"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockProjectService struct {
	mock.Mock
}

func (m *MockProjectService) GetAll(ctx context.Context) ([]models.Project, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Project), args.Error(1)
}

func (m *MockProjectService) GetBySlug(ctx context.Context, slug string) (*models.Project, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Project), args.Error(1)
}

func (m *MockProjectService) GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Project), args.Error(1)
}

func (m *MockProjectService) Create(ctx context.Context, req dto.CreateProjectRequest) (*models.Project, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Project), args.Error(1)
}

func (m *MockProjectService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateProjectRequest) (*models.Project, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Project), args.Error(1)
}

func (m *MockProjectService) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type MockNavigationService struct {
	mock.Mock
}

func (m *MockNavigationService) GetAll(ctx context.Context) ([]models.NavigationSet, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.NavigationSet), args.Error(1)
}

func (m *MockNavigationService) GetByArea(ctx context.Context, area models.NavigationArea) ([]models.NavigationSet, error) {
	args := m.Called(ctx, area)
	return args.Get(0).([]models.NavigationSet), args.Error(1)
}

func (m *MockNavigationService) GetByID(ctx context.Context, id uuid.UUID) (*models.NavigationSet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.NavigationSet), args.Error(1)
}

func (m *MockNavigationService) CreateSet(ctx context.Context, req dto.CreateNavigationSetRequest) (*models.NavigationSet, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.NavigationSet), args.Error(1)
}

func (m *MockNavigationService) UpdateSet(ctx context.Context, id uuid.UUID, req dto.UpdateNavigationSetRequest) (*models.NavigationSet, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.NavigationSet), args.Error(1)
}

func (m *MockNavigationService) DeleteSet(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockNavigationService) AddLink(ctx context.Context, setID uuid.UUID, req dto.AddLinkRequest) (*models.NavigationSet, error) {
	args := m.Called(ctx, setID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.NavigationSet), args.Error(1)
}

func (m *MockNavigationService) UpdateLink(ctx context.Context, setID, linkID uuid.UUID, req dto.UpdateLinkRequest) (*models.NavigationSet, error) {
	args := m.Called(ctx, setID, linkID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.NavigationSet), args.Error(1)
}

func (m *MockNavigationService) DeleteLink(ctx context.Context, setID, linkID uuid.UUID) (*models.NavigationSet, error) {
	args := m.Called(ctx, setID, linkID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.NavigationSet), args.Error(1)
}

func (m *MockNavigationService) UpdateOrder(ctx context.Context, setID uuid.UUID, req dto.UpdateOrderRequest) (*models.NavigationSet, error) {
	args := m.Called(ctx, setID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.NavigationSet), args.Error(1)
}

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, username, password string) (*models.AdminSession, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AdminSession), args.Error(1)
}

func (m *MockAuthService) Validate(ctx context.Context, token string) (bool, error) {
	args := m.Called(ctx, token)
	return args.Bool(0), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

type requestValidator struct {
	validate *validator.Validate
}

func (v *requestValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

// testHarness поднимает echo с теми же валидатором и сессионным
// middleware, что и боевой сервер, и регистрирует проверяемые маршруты
type testHarness struct {
	e       *echo.Echo
	routers *httpapi.Routers
}

func newTestHarness(
	t *testing.T,
	projects httpapi.ProjectService,
	navigation httpapi.NavigationService,
	media httpapi.MediaService,
	auth httpapi.AuthService,
) *testHarness {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
	routers := httpapi.NewRouter(log, projects, nil, nil, nil, nil, navigation, nil, media, auth)

	e := echo.New()
	e.HideBanner = true
	e.Validator = &requestValidator{validate: validator.New()}
	e.Use(session.Middleware(sessions.NewCookieStore([]byte("test-secret"))))

	e.POST("/api/auth/login", routers.Login)
	e.GET("/api/projects/:slug", routers.GetProjectBySlug)
	e.POST("/api/projects", routers.CreateProject)
	e.PUT("/api/projects/:id", routers.UpdateProject)
	e.DELETE("/api/projects/:id", routers.DeleteProject)
	e.PUT("/api/navigation/:id/links/order", routers.UpdateNavigationOrder)
	e.DELETE("/api/media/delete", routers.DeleteMedia)

	return &testHarness{e: e, routers: routers}
}

func (h *testHarness) doJSON(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	h.e.ServeHTTP(rec, req)

	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return body
}

func TestRouters_Login(t *testing.T) {
	t.Run("wrong password yields 401 without cookie", func(t *testing.T) {
		mockAuth := new(MockAuthService)
		h := newTestHarness(t, nil, nil, nil, mockAuth)

		mockAuth.On("Login", mock.Anything, "admin", "wrong").
			Return(nil, storage.ErrInvalidCredentials).Once()

		rec := h.doJSON(t, http.MethodPost, "/api/auth/login", map[string]string{
			"username": "admin",
			"password": "wrong",
		})

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		body := decodeError(t, rec)
		assert.Equal(t, "authentication_failed", body["error"])
		assert.Empty(t, rec.Result().Cookies())
		mockAuth.AssertExpectations(t)
	})

	t.Run("success sets httpOnly cookie and keeps token out of body", func(t *testing.T) {
		mockAuth := new(MockAuthService)
		h := newTestHarness(t, nil, nil, nil, mockAuth)

		mockAuth.On("Login", mock.Anything, "admin", "correct").
			Return(&models.AdminSession{Username: "admin", Token: "signed-token"}, nil).Once()

		rec := h.doJSON(t, http.MethodPost, "/api/auth/login", map[string]string{
			"username": "admin",
			"password": "correct",
		})

		require.Equal(t, http.StatusOK, rec.Code)
		assert.NotContains(t, rec.Body.String(), "signed-token")

		cookies := rec.Result().Cookies()
		require.NotEmpty(t, cookies)

		var found bool
		for _, c := range cookies {
			if c.Name == httpapi.SessionCookieName {
				found = true
				assert.True(t, c.HttpOnly)
			}
		}
		assert.True(t, found)
		mockAuth.AssertExpectations(t)
	})

	t.Run("missing fields yield 400 before the service", func(t *testing.T) {
		mockAuth := new(MockAuthService)
		h := newTestHarness(t, nil, nil, nil, mockAuth)

		rec := h.doJSON(t, http.MethodPost, "/api/auth/login", map[string]string{
			"username": "admin",
		})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mockAuth.AssertNotCalled(t, "Login")
	})
}

func TestRouters_Projects(t *testing.T) {
	t.Run("duplicate slug yields 400 with the conflicting slug", func(t *testing.T) {
		mockProjects := new(MockProjectService)
		h := newTestHarness(t, mockProjects, nil, nil, nil)

		mockProjects.On("Create", mock.Anything, mock.AnythingOfType("dto.CreateProjectRequest")).
			Return(nil, storage.ErrDuplicateSlug).Once()

		rec := h.doJSON(t, http.MethodPost, "/api/projects", map[string]string{
			"title": "Taken Project",
			"slug":  "taken",
		})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		body := decodeError(t, rec)
		assert.Equal(t, "error", body["status"])
		assert.Equal(t, "duplicate_slug", body["error"])
		assert.Equal(t, "taken", body["slug"])
		mockProjects.AssertExpectations(t)
	})

	t.Run("missing title yields 400 before the service", func(t *testing.T) {
		mockProjects := new(MockProjectService)
		h := newTestHarness(t, mockProjects, nil, nil, nil)

		rec := h.doJSON(t, http.MethodPost, "/api/projects", map[string]string{
			"slug": "no-title",
		})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mockProjects.AssertNotCalled(t, "Create")
	})

	t.Run("malformed id on update yields 400 before the service", func(t *testing.T) {
		mockProjects := new(MockProjectService)
		h := newTestHarness(t, mockProjects, nil, nil, nil)

		rec := h.doJSON(t, http.MethodPut, "/api/projects/not-a-uuid", map[string]string{
			"title": "New Title",
		})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		body := decodeError(t, rec)
		assert.Equal(t, "invalid_request", body["error"])
		mockProjects.AssertNotCalled(t, "Update")
	})

	t.Run("malformed id on delete yields 400 before the service", func(t *testing.T) {
		mockProjects := new(MockProjectService)
		h := newTestHarness(t, mockProjects, nil, nil, nil)

		rec := h.doJSON(t, http.MethodDelete, "/api/projects/42", nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mockProjects.AssertNotCalled(t, "Delete")
	})

	t.Run("absent slug yields 404", func(t *testing.T) {
		mockProjects := new(MockProjectService)
		h := newTestHarness(t, mockProjects, nil, nil, nil)

		mockProjects.On("GetBySlug", mock.Anything, "missing").Return(nil, nil).Once()

		rec := h.doJSON(t, http.MethodGet, "/api/projects/missing", nil)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		body := decodeError(t, rec)
		assert.Equal(t, "not_found", body["error"])
		mockProjects.AssertExpectations(t)
	})
}

func TestRouters_UpdateNavigationOrder(t *testing.T) {
	t.Run("empty sequence clears the set", func(t *testing.T) {
		mockNav := new(MockNavigationService)
		h := newTestHarness(t, nil, mockNav, nil, nil)

		setID := uuid.New()
		cleared := &models.NavigationSet{
			ID:    setID,
			Title: "Main menu",
			Area:  models.NavigationAreaHeader,
			Links: models.NavLinks{},
		}

		mockNav.On("UpdateOrder", mock.Anything, setID,
			dto.UpdateOrderRequest{Links: models.NavLinks{}}).
			Return(cleared, nil).Once()

		rec := h.doJSON(t, http.MethodPut, "/api/navigation/"+setID.String()+"/links/order",
			map[string]interface{}{"links": []interface{}{}})

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"links":[]`)
		mockNav.AssertExpectations(t)
	})

	t.Run("malformed set id yields 400", func(t *testing.T) {
		mockNav := new(MockNavigationService)
		h := newTestHarness(t, nil, mockNav, nil, nil)

		rec := h.doJSON(t, http.MethodPut, "/api/navigation/xyz/links/order",
			map[string]interface{}{"links": []interface{}{}})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mockNav.AssertNotCalled(t, "UpdateOrder")
	})
}

// Медиа-маршруты проверяются поверх настоящего файлового хранилища:
// важен не только код ответа, но и то, что файлы на диске не тронуты
func TestRouters_DeleteMedia(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

	setup := func(t *testing.T) (*testHarness, string, string) {
		t.Helper()

		root := t.TempDir()
		baseDir := filepath.Join(root, "uploads")
		require.NoError(t, os.MkdirAll(baseDir, 0o755))

		outsideFile := filepath.Join(root, "secret.txt")
		require.NoError(t, os.WriteFile(outsideFile, []byte("do not touch"), 0o644))

		insideFile := filepath.Join(baseDir, "photo.jpg")
		require.NoError(t, os.WriteFile(insideFile, []byte("jpeg"), 0o644))

		fs, err := filestorage.NewLocalFileStorage(log, baseDir, "/uploads")
		require.NoError(t, err)

		media := mediaservice.NewMediaService(log, fs, time.Minute)
		h := newTestHarness(t, nil, nil, media, nil)

		return h, outsideFile, insideFile
	}

	t.Run("path outside uploads root yields 403 and mutates nothing", func(t *testing.T) {
		h, outsideFile, insideFile := setup(t)

		rec := h.doJSON(t, http.MethodDelete, "/api/media/delete", map[string]string{
			"filePath": "../secret.txt",
		})

		assert.Equal(t, http.StatusForbidden, rec.Code)
		body := decodeError(t, rec)
		assert.Equal(t, "path_violation", body["error"])

		content, err := os.ReadFile(outsideFile)
		require.NoError(t, err)
		assert.Equal(t, "do not touch", string(content))
		assert.FileExists(t, insideFile)
	})

	t.Run("missing file yields 404", func(t *testing.T) {
		h, _, _ := setup(t)

		rec := h.doJSON(t, http.MethodDelete, "/api/media/delete", map[string]string{
			"filePath": "nope.jpg",
		})

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("existing file is removed", func(t *testing.T) {
		h, _, insideFile := setup(t)

		rec := h.doJSON(t, http.MethodDelete, "/api/media/delete", map[string]string{
			"filePath": "photo.jpg",
		})

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.NoFileExists(t, insideFile)
	})
}
