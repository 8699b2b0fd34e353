package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"artfolio/internal/domain/models"
	"artfolio/internal/lib/logger/sl"
	"artfolio/internal/metrics"
	"artfolio/internal/repository"
	"artfolio/internal/storage"
	"artfolio/internal/transport/http/dto"

	"github.com/google/uuid"
)

// CategoryService обслуживает один вид категорий; приложение держит
// два экземпляра — для проектов и для новостей
type CategoryService struct {
	log  *slog.Logger
	kind models.CategoryKind
	repo repository.CategoryRepository
}

func NewCategoryService(log *slog.Logger, kind models.CategoryKind, repo repository.CategoryRepository) *CategoryService {
	return &CategoryService{log: log, kind: kind, repo: repo}
}

func (s *CategoryService) GetAll(ctx context.Context) ([]models.Category, error) {
	const op = "category_service.GetAll"

	categories, err := s.repo.GetAll(ctx)
	if err != nil {
		s.log.Error("failed to list categories", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return categories, nil
}

func (s *CategoryService) Create(ctx context.Context, req dto.CreateCategoryRequest) (*models.Category, error) {
	const op = "category_service.Create"

	log := s.log.With(
		slog.String("op", op),
		slog.String("kind", string(s.kind)),
		slog.String("name", req.Name),
	)

	now := time.Now().UTC()
	category := models.Category{
		ID:        uuid.New(),
		Name:      req.Name,
		Count:     0,
		CreatedAt: now,
		UpdatedAt: now,
	}

	id, err := s.repo.Create(ctx, category)
	if err != nil {
		if errors.Is(err, storage.ErrDuplicateSlug) {
			log.Warn("category name already exists")
			return nil, fmt.Errorf("%s: %w", op, storage.ErrDuplicateSlug)
		}
		log.Error("failed to create category", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("category created", slog.String("category_id", id.String()))

	return s.repo.GetByID(ctx, id)
}

func (s *CategoryService) Rename(ctx context.Context, id uuid.UUID, req dto.UpdateCategoryRequest) (*models.Category, error) {
	const op = "category_service.Rename"

	if err := s.repo.UpdateName(ctx, id, req.Name); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}
		if errors.Is(err, storage.ErrDuplicateSlug) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrDuplicateSlug)
		}
		s.log.Error("failed to rename category", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s.repo.GetByID(ctx, id)
}

func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	const op = "category_service.Delete"

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.log.Error("failed to delete category", slog.String("op", op), sl.Err(err))
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return deleted, nil
}

// UpdateCounts пересчитывает кешированные счётчики. Счётчик — подсказка
// для отображения, не источник истины: между пересчётами он может
// расходиться с фактическим числом записей, это ожидаемо.
func (s *CategoryService) UpdateCounts(ctx context.Context) error {
	const op = "category_service.UpdateCounts"

	log := s.log.With(
		slog.String("op", op),
		slog.String("kind", string(s.kind)),
	)

	if err := s.repo.UpdateCounts(ctx); err != nil {
		log.Error("failed to recompute counts", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	metrics.CategoryRecountsTotal.Inc()
	log.Info("category counts recomputed")

	return nil
}
