package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"artfolio/internal/domain/models"
	"artfolio/internal/lib/logger/sl"
	"artfolio/internal/lib/slugify"
	"artfolio/internal/repository"
	"artfolio/internal/storage"
	"artfolio/internal/transport/http/dto"

	"github.com/google/uuid"
)

type ProjectService struct {
	log  *slog.Logger
	repo repository.ProjectRepository
}

func NewProjectService(log *slog.Logger, repo repository.ProjectRepository) *ProjectService {
	return &ProjectService{log: log, repo: repo}
}

// GetAll возвращает все проекты, свежие первыми, без пагинации
func (s *ProjectService) GetAll(ctx context.Context) ([]models.Project, error) {
	const op = "project_service.GetAll"

	projects, err := s.repo.GetAll(ctx)
	if err != nil {
		s.log.Error("failed to list projects", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return projects, nil
}

// GetBySlug возвращает nil без ошибки, когда проект не найден
func (s *ProjectService) GetBySlug(ctx context.Context, slug string) (*models.Project, error) {
	const op = "project_service.GetBySlug"

	project, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}
		s.log.Error("failed to get project", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return project, nil
}

func (s *ProjectService) GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	const op = "project_service.GetByID"

	project, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}
		s.log.Error("failed to get project", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return project, nil
}

// Create сохраняет проект, выводя слаг из заголовка, если он не задан.
// Проверка занятости слага до вставки — быстрый путь для админки;
// гонку двух создателей закрывает уникальное ограничение в БД.
func (s *ProjectService) Create(ctx context.Context, req dto.CreateProjectRequest) (*models.Project, error) {
	const op = "project_service.Create"

	log := s.log.With(
		slog.String("op", op),
		slog.String("title", req.Title),
	)

	slug := req.Slug
	if slug == "" {
		slug = slugify.Make(req.Title)
		log.Debug("generated slug", slog.String("slug", slug))
	}

	exists, err := s.repo.SlugExists(ctx, slug)
	if err != nil {
		log.Error("failed to check slug", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if exists {
		log.Warn("slug already taken", slog.String("slug", slug))
		return nil, fmt.Errorf("%s: %w", op, storage.ErrDuplicateSlug)
	}

	now := time.Now().UTC()
	project := models.Project{
		ID:          uuid.New(),
		Slug:        slug,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Year:        req.Year,
		Metadata:    req.Metadata,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	id, err := s.repo.Create(ctx, project)
	if err != nil {
		if errors.Is(err, storage.ErrDuplicateSlug) {
			log.Warn("slug conflict on insert", slog.String("slug", slug))
			return nil, fmt.Errorf("%s: %w", op, storage.ErrDuplicateSlug)
		}
		log.Error("failed to create project", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("project created", slog.String("project_id", id.String()))

	return s.repo.GetByID(ctx, id)
}

// Update применяет частичное обновление: незаданные поля сохраняют
// прежние значения. Возвращает nil, когда id не найден, ничего не создавая.
func (s *ProjectService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateProjectRequest) (*models.Project, error) {
	const op = "project_service.Update"

	log := s.log.With(
		slog.String("op", op),
		slog.String("project_id", id.String()),
	)

	updates := make(map[string]interface{})

	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Slug != nil {
		slug := *req.Slug
		if slug == "" {
			// пустой слаг перегенерируем из заголовка, чтобы запись
			// не осталась без адреса
			title, err := s.titleForSlug(ctx, id, req.Title)
			if err != nil {
				if errors.Is(err, storage.ErrNotFound) {
					log.Warn("project not found")
					return nil, nil
				}
				log.Error("failed to load project for slug", sl.Err(err))
				return nil, fmt.Errorf("%s: %w", op, err)
			}
			slug = slugify.Make(title)
		}
		updates["slug"] = slug
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Year != nil {
		updates["year"] = *req.Year
	}
	if req.Metadata != nil {
		updates["metadata"] = req.Metadata
	}

	if len(updates) == 0 {
		project, err := s.repo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil, nil
			}
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		return project, nil
	}

	if err := s.repo.UpdateFields(ctx, id, updates); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Warn("project not found")
			return nil, nil
		}
		if errors.Is(err, storage.ErrDuplicateSlug) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrDuplicateSlug)
		}
		log.Error("failed to update project", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("project updated")

	return s.repo.GetByID(ctx, id)
}

// titleForSlug отдаёт заголовок из запроса, а когда тот не задан —
// из сохранённой записи
func (s *ProjectService) titleForSlug(ctx context.Context, id uuid.UUID, reqTitle *string) (string, error) {
	if reqTitle != nil {
		return *reqTitle, nil
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}

	return existing.Title, nil
}

// Delete возвращает false, когда ничего не совпало; повторный вызов
// по тому же id — не ошибка
func (s *ProjectService) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	const op = "project_service.Delete"

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.log.Error("failed to delete project", slog.String("op", op), sl.Err(err))
		return false, fmt.Errorf("%s: %w", op, err)
	}

	if deleted {
		s.log.Info("project deleted", slog.String("op", op), slog.String("project_id", id.String()))
	}

	return deleted, nil
}
