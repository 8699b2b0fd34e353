package services_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"artfolio/internal/domain/models"
	services "artfolio/internal/services/project_service"
	"artfolio/internal/storage"
	"artfolio/internal/transport/http/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProjectRepository реализация мок-репозитория
type MockProjectRepository struct {
	mock.Mock
}

func (m *MockProjectRepository) GetAll(ctx context.Context) ([]models.Project, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Project), args.Error(1)
}

func (m *MockProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Project), args.Error(1)
}

func (m *MockProjectRepository) GetBySlug(ctx context.Context, slug string) (*models.Project, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Project), args.Error(1)
}

func (m *MockProjectRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	args := m.Called(ctx, slug)
	return args.Bool(0), args.Error(1)
}

func (m *MockProjectRepository) Create(ctx context.Context, project models.Project) (uuid.UUID, error) {
	args := m.Called(ctx, project)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockProjectRepository) UpdateFields(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	args := m.Called(ctx, id, updates)
	return args.Error(0)
}

func (m *MockProjectRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func newTestService(t *testing.T) (*services.ProjectService, *MockProjectRepository) {
	t.Helper()

	mockRepo := new(MockProjectRepository)
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{}))

	return services.NewProjectService(log, mockRepo), mockRepo
}

func TestProjectService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("derives slug from title when absent", func(t *testing.T) {
		service, mockRepo := newTestService(t)

		id := uuid.New()
		mockRepo.On("SlugExists", ctx, "villa-in-krasnaya-polyana").
			Return(false, nil).Once()
		mockRepo.On("Create", ctx, mock.MatchedBy(func(p models.Project) bool {
			return p.Slug == "villa-in-krasnaya-polyana" && p.Title == "Villa in Krasnaya Polyana"
		})).Return(id, nil).Once()
		mockRepo.On("GetByID", ctx, id).
			Return(&models.Project{ID: id, Slug: "villa-in-krasnaya-polyana"}, nil).Once()

		project, err := service.Create(ctx, dto.CreateProjectRequest{
			Title: "Villa in Krasnaya Polyana",
		})

		require.NoError(t, err)
		assert.Equal(t, "villa-in-krasnaya-polyana", project.Slug)
		mockRepo.AssertExpectations(t)
	})

	t.Run("explicit slug wins over title", func(t *testing.T) {
		service, mockRepo := newTestService(t)

		id := uuid.New()
		mockRepo.On("SlugExists", ctx, "custom-slug").Return(false, nil).Once()
		mockRepo.On("Create", ctx, mock.MatchedBy(func(p models.Project) bool {
			return p.Slug == "custom-slug"
		})).Return(id, nil).Once()
		mockRepo.On("GetByID", ctx, id).
			Return(&models.Project{ID: id, Slug: "custom-slug"}, nil).Once()

		project, err := service.Create(ctx, dto.CreateProjectRequest{
			Title: "Some Title",
			Slug:  "custom-slug",
		})

		require.NoError(t, err)
		assert.Equal(t, "custom-slug", project.Slug)
		mockRepo.AssertExpectations(t)
	})

	t.Run("duplicate slug does not touch storage", func(t *testing.T) {
		service, mockRepo := newTestService(t)

		mockRepo.On("SlugExists", ctx, "taken").Return(true, nil).Once()

		project, err := service.Create(ctx, dto.CreateProjectRequest{
			Title: "Whatever",
			Slug:  "taken",
		})

		assert.Nil(t, project)
		assert.ErrorIs(t, err, storage.ErrDuplicateSlug)
		mockRepo.AssertNotCalled(t, "Create")
		mockRepo.AssertExpectations(t)
	})

	t.Run("insert race surfaces duplicate slug", func(t *testing.T) {
		service, mockRepo := newTestService(t)

		mockRepo.On("SlugExists", ctx, "raced").Return(false, nil).Once()
		mockRepo.On("Create", ctx, mock.AnythingOfType("models.Project")).
			Return(uuid.Nil, storage.ErrDuplicateSlug).Once()

		_, err := service.Create(ctx, dto.CreateProjectRequest{
			Title: "Raced",
			Slug:  "raced",
		})

		assert.ErrorIs(t, err, storage.ErrDuplicateSlug)
		mockRepo.AssertExpectations(t)
	})
}

func TestProjectService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("only set fields reach the repository", func(t *testing.T) {
		service, mockRepo := newTestService(t)

		id := uuid.New()
		title := "New Title"

		mockRepo.On("UpdateFields", ctx, id, map[string]interface{}{
			"title": title,
		}).Return(nil).Once()
		mockRepo.On("GetByID", ctx, id).
			Return(&models.Project{ID: id, Title: title}, nil).Once()

		project, err := service.Update(ctx, id, dto.UpdateProjectRequest{Title: &title})

		require.NoError(t, err)
		assert.Equal(t, title, project.Title)
		mockRepo.AssertExpectations(t)
	})

	t.Run("unknown id yields nil without error", func(t *testing.T) {
		service, mockRepo := newTestService(t)

		id := uuid.New()
		title := "New Title"

		mockRepo.On("UpdateFields", ctx, id, mock.Anything).
			Return(storage.ErrNotFound).Once()

		project, err := service.Update(ctx, id, dto.UpdateProjectRequest{Title: &title})

		require.NoError(t, err)
		assert.Nil(t, project)
		mockRepo.AssertExpectations(t)
	})

	t.Run("empty slug regenerates from new title", func(t *testing.T) {
		service, mockRepo := newTestService(t)

		id := uuid.New()
		title := "Renovated Loft"
		emptySlug := ""

		mockRepo.On("UpdateFields", ctx, id, map[string]interface{}{
			"title": title,
			"slug":  "renovated-loft",
		}).Return(nil).Once()
		mockRepo.On("GetByID", ctx, id).
			Return(&models.Project{ID: id, Title: title, Slug: "renovated-loft"}, nil).Once()

		project, err := service.Update(ctx, id, dto.UpdateProjectRequest{
			Title: &title,
			Slug:  &emptySlug,
		})

		require.NoError(t, err)
		assert.Equal(t, "renovated-loft", project.Slug)
		mockRepo.AssertExpectations(t)
	})

	t.Run("empty slug without title falls back to stored title", func(t *testing.T) {
		service, mockRepo := newTestService(t)

		id := uuid.New()
		emptySlug := ""

		mockRepo.On("GetByID", ctx, id).
			Return(&models.Project{ID: id, Title: "Stored Title", Slug: "old-slug"}, nil).Once()
		mockRepo.On("UpdateFields", ctx, id, map[string]interface{}{
			"slug": "stored-title",
		}).Return(nil).Once()
		mockRepo.On("GetByID", ctx, id).
			Return(&models.Project{ID: id, Title: "Stored Title", Slug: "stored-title"}, nil).Once()

		project, err := service.Update(ctx, id, dto.UpdateProjectRequest{Slug: &emptySlug})

		require.NoError(t, err)
		assert.Equal(t, "stored-title", project.Slug)
		mockRepo.AssertExpectations(t)
	})

	t.Run("empty update returns current row", func(t *testing.T) {
		service, mockRepo := newTestService(t)

		id := uuid.New()
		mockRepo.On("GetByID", ctx, id).
			Return(&models.Project{ID: id, Title: "Unchanged"}, nil).Once()

		project, err := service.Update(ctx, id, dto.UpdateProjectRequest{})

		require.NoError(t, err)
		assert.Equal(t, "Unchanged", project.Title)
		mockRepo.AssertNotCalled(t, "UpdateFields")
		mockRepo.AssertExpectations(t)
	})
}

func TestProjectService_GetBySlug(t *testing.T) {
	ctx := context.Background()

	t.Run("absent slug is nil, not an error", func(t *testing.T) {
		service, mockRepo := newTestService(t)

		mockRepo.On("GetBySlug", ctx, "missing").
			Return(nil, storage.ErrNotFound).Once()

		project, err := service.GetBySlug(ctx, "missing")

		require.NoError(t, err)
		assert.Nil(t, project)
		mockRepo.AssertExpectations(t)
	})

	t.Run("storage failure propagates", func(t *testing.T) {
		service, mockRepo := newTestService(t)

		mockRepo.On("GetBySlug", ctx, "any").
			Return(nil, errors.New("connection reset")).Once()

		_, err := service.GetBySlug(ctx, "any")

		assert.Error(t, err)
		mockRepo.AssertExpectations(t)
	})
}

func TestProjectService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("second delete reports nothing matched", func(t *testing.T) {
		service, mockRepo := newTestService(t)

		id := uuid.New()
		mockRepo.On("Delete", ctx, id).Return(true, nil).Once()
		mockRepo.On("Delete", ctx, id).Return(false, nil).Once()

		deleted, err := service.Delete(ctx, id)
		require.NoError(t, err)
		assert.True(t, deleted)

		deleted, err = service.Delete(ctx, id)
		require.NoError(t, err)
		assert.False(t, deleted)

		mockRepo.AssertExpectations(t)
	})
}
