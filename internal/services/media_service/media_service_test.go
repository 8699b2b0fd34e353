package services_test

import (
	"bytes"
	"context"
	"log/slog"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"artfolio/internal/domain/models"
	services "artfolio/internal/services/media_service"
	apperrors "artfolio/internal/storage"
	"artfolio/internal/transport/http/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockFileStorage struct {
	mock.Mock
}

func (m *MockFileStorage) Save(ctx context.Context, file *multipart.FileHeader, subPath string) (string, int64, error) {
	args := m.Called(ctx, file, subPath)
	return args.String(0), args.Get(1).(int64), args.Error(2)
}

func (m *MockFileStorage) Delete(ctx context.Context, filePath string) error {
	args := m.Called(ctx, filePath)
	return args.Error(0)
}

func (m *MockFileStorage) Move(ctx context.Context, sourcePath, targetPath string) error {
	args := m.Called(ctx, sourcePath, targetPath)
	return args.Error(0)
}

func (m *MockFileStorage) Scan(ctx context.Context) (*models.MediaTree, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MediaTree), args.Error(1)
}

func (m *MockFileStorage) GetFullPath(relativePath string) (string, error) {
	args := m.Called(relativePath)
	return args.String(0), args.Error(1)
}

func (m *MockFileStorage) BaseURL() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockFileStorage) GetBaseDir() string {
	args := m.Called()
	return args.String(0)
}

func createTestFile(t *testing.T, filename, content string) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)

	_, err = part.Write([]byte(content))
	require.NoError(t, err)

	err = writer.Close()
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	file, header, err := req.FormFile("file")
	require.NoError(t, err)
	file.Close()

	return header
}

func newTestService(t *testing.T) (*services.MediaService, *MockFileStorage) {
	t.Helper()

	mockStorage := new(MockFileStorage)
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{}))

	return services.NewMediaService(log, mockStorage, time.Minute), mockStorage
}

func TestMediaService_GetTree(t *testing.T) {
	ctx := context.Background()

	t.Run("second call is served from cache", func(t *testing.T) {
		service, mockStorage := newTestService(t)

		tree := &models.MediaTree{
			Root: &models.MediaFolder{
				Name:  "uploads",
				Files: []models.MediaFile{{Name: "a.png", Path: "a.png", Type: models.MediaEntryTypeImage}},
			},
		}
		mockStorage.On("Scan", ctx).Return(tree, nil).Once()

		first, err := service.GetTree(ctx)
		require.NoError(t, err)

		second, err := service.GetTree(ctx)
		require.NoError(t, err)

		assert.Same(t, first, second)
		mockStorage.AssertNumberOfCalls(t, "Scan", 1)
	})

	t.Run("delete invalidates cached tree", func(t *testing.T) {
		service, mockStorage := newTestService(t)

		mockStorage.On("Scan", ctx).Return(&models.MediaTree{}, nil).Twice()
		mockStorage.On("Delete", ctx, "old.png").Return(nil).Once()

		_, err := service.GetTree(ctx)
		require.NoError(t, err)

		require.NoError(t, service.Delete(ctx, "old.png"))

		_, err = service.GetTree(ctx)
		require.NoError(t, err)

		mockStorage.AssertNumberOfCalls(t, "Scan", 2)
	})
}

func TestMediaService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("path violation propagates", func(t *testing.T) {
		service, mockStorage := newTestService(t)

		mockStorage.On("Delete", ctx, "../outside.txt").
			Return(apperrors.ErrPathViolation).Once()

		err := service.Delete(ctx, "../outside.txt")

		assert.ErrorIs(t, err, apperrors.ErrPathViolation)
		mockStorage.AssertExpectations(t)
	})
}

func TestMediaService_Migrate(t *testing.T) {
	ctx := context.Background()

	t.Run("missing source propagates", func(t *testing.T) {
		service, mockStorage := newTestService(t)

		mockStorage.On("Move", ctx, "gone.png", "archive/gone.png").
			Return(apperrors.ErrFileNotFound).Once()

		err := service.Migrate(ctx, "gone.png", "archive/gone.png")

		assert.ErrorIs(t, err, apperrors.ErrFileNotFound)
		mockStorage.AssertExpectations(t)
	})
}

func TestMediaService_Upload(t *testing.T) {
	ctx := context.Background()

	service, mockStorage := newTestService(t)
	testFile := createTestFile(t, "photo.jpg", "jpeg bytes")

	mockStorage.On("Save", ctx, testFile, "gallery").
		Return("gallery/photo.jpg", int64(10), nil).Once()
	mockStorage.On("BaseURL").Return("/uploads").Once()

	result, err := service.Upload(ctx, dto.MediaUploadInput{File: testFile, SubPath: "gallery"})

	require.NoError(t, err)
	assert.Equal(t, "gallery/photo.jpg", result.Path)
	assert.Equal(t, int64(10), result.Size)
	assert.Equal(t, "/uploads/gallery/photo.jpg", result.URL)
	mockStorage.AssertExpectations(t)
}
