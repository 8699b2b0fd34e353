package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"artfolio/internal/domain/models"
	"artfolio/internal/lib/logger/sl"
	"artfolio/internal/metrics"
	storage "artfolio/internal/storage/filestorage"
	"artfolio/internal/transport/http/dto"

	gocache "github.com/patrickmn/go-cache"
)

const treeCacheKey = "media_tree"

// MediaService отдаёт дерево загрузок и выполняет над ним операции
// удаления/переноса. Скан кешируется на короткое время; любая запись
// в дерево сбрасывает кеш.
type MediaService struct {
	log         *slog.Logger
	fileStorage storage.FileStorage
	cache       *gocache.Cache
}

func NewMediaService(log *slog.Logger, fileStorage storage.FileStorage, cacheTTL time.Duration) *MediaService {
	return &MediaService{
		log:         log,
		fileStorage: fileStorage,
		cache:       gocache.New(cacheTTL, 2*cacheTTL),
	}
}

// GetTree перестраивает дерево по файловой системе. Конкурентный скан
// во время изменения каталога может увидеть его в промежуточном
// состоянии — для низкотрафикового админского инструмента это принято.
func (s *MediaService) GetTree(ctx context.Context) (*models.MediaTree, error) {
	const op = "media_service.GetTree"

	if cached, ok := s.cache.Get(treeCacheKey); ok {
		return cached.(*models.MediaTree), nil
	}

	tree, err := s.fileStorage.Scan(ctx)
	if err != nil {
		s.log.Error("failed to scan uploads tree", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	metrics.MediaScansTotal.Inc()
	s.cache.SetDefault(treeCacheKey, tree)

	return tree, nil
}

// Delete удаляет файл, ограниченный корнем загрузок; путь наружу
// отклоняется до какого-либо изменения файловой системы
func (s *MediaService) Delete(ctx context.Context, filePath string) error {
	const op = "media_service.Delete"

	log := s.log.With(
		slog.String("op", op),
		slog.String("file_path", filePath),
	)

	if err := s.fileStorage.Delete(ctx, filePath); err != nil {
		log.Warn("failed to delete media", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	s.cache.Delete(treeCacheKey)
	log.Info("media deleted")

	return nil
}

// Migrate переносит файл или каталог внутри корня загрузок
func (s *MediaService) Migrate(ctx context.Context, sourcePath, targetPath string) error {
	const op = "media_service.Migrate"

	log := s.log.With(
		slog.String("op", op),
		slog.String("source", sourcePath),
		slog.String("target", targetPath),
	)

	if err := s.fileStorage.Move(ctx, sourcePath, targetPath); err != nil {
		log.Warn("failed to migrate media", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	s.cache.Delete(treeCacheKey)
	log.Info("media migrated")

	return nil
}

func (s *MediaService) Upload(ctx context.Context, input dto.MediaUploadInput) (*dto.MediaUploadResult, error) {
	const op = "media_service.Upload"

	log := s.log.With(
		slog.String("op", op),
		slog.String("filename", input.File.Filename),
	)

	relPath, size, err := s.fileStorage.Save(ctx, input.File, input.SubPath)
	if err != nil {
		log.Error("failed to save file", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.cache.Delete(treeCacheKey)
	log.Info("media uploaded", slog.Int64("size", size))

	return &dto.MediaUploadResult{
		Path: relPath,
		Size: size,
		URL:  s.fileStorage.BaseURL() + "/" + relPath,
	}, nil
}
