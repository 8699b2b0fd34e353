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

type NewsService struct {
	log  *slog.Logger
	repo repository.NewsRepository
}

func NewNewsService(log *slog.Logger, repo repository.NewsRepository) *NewsService {
	return &NewsService{log: log, repo: repo}
}

func (s *NewsService) GetAll(ctx context.Context) ([]models.NewsItem, error) {
	const op = "news_service.GetAll"

	items, err := s.repo.GetAll(ctx)
	if err != nil {
		s.log.Error("failed to list news", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return items, nil
}

func (s *NewsService) GetBySlug(ctx context.Context, slug string) (*models.NewsItem, error) {
	const op = "news_service.GetBySlug"

	item, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}
		s.log.Error("failed to get news item", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return item, nil
}

func (s *NewsService) GetByID(ctx context.Context, id uuid.UUID) (*models.NewsItem, error) {
	const op = "news_service.GetByID"

	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}
		s.log.Error("failed to get news item", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return item, nil
}

func (s *NewsService) Create(ctx context.Context, req dto.CreateNewsRequest) (*models.NewsItem, error) {
	const op = "news_service.Create"

	log := s.log.With(
		slog.String("op", op),
		slog.String("title", req.Title),
	)

	slug := req.Slug
	if slug == "" {
		slug = slugify.Make(req.Title)
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

	// анонс выводится из контента, если явное описание не задано
	description := req.Description
	if description == "" && req.Content != "" {
		description = slugify.Excerpt(req.Content, slugify.DefaultExcerptLength)
	}

	now := time.Now().UTC()
	publishedAt := req.PublishedAt
	if publishedAt == nil {
		publishedAt = &now
	}

	item := models.NewsItem{
		ID:          uuid.New(),
		Slug:        slug,
		Title:       req.Title,
		Description: description,
		Content:     req.Content,
		Category:    req.Category,
		PublishedAt: publishedAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	id, err := s.repo.Create(ctx, item)
	if err != nil {
		if errors.Is(err, storage.ErrDuplicateSlug) {
			log.Warn("slug conflict on insert", slog.String("slug", slug))
			return nil, fmt.Errorf("%s: %w", op, storage.ErrDuplicateSlug)
		}
		log.Error("failed to create news item", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("news item created", slog.String("news_id", id.String()))

	return s.repo.GetByID(ctx, id)
}

func (s *NewsService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateNewsRequest) (*models.NewsItem, error) {
	const op = "news_service.Update"

	log := s.log.With(
		slog.String("op", op),
		slog.String("news_id", id.String()),
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
					log.Warn("news item not found")
					return nil, nil
				}
				log.Error("failed to load news item for slug", sl.Err(err))
				return nil, fmt.Errorf("%s: %w", op, err)
			}
			slug = slugify.Make(title)
		}
		updates["slug"] = slug
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Content != nil {
		updates["content"] = *req.Content
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.PublishedAt != nil {
		updates["published_at"] = *req.PublishedAt
	}

	if len(updates) == 0 {
		return s.GetByID(ctx, id)
	}

	if err := s.repo.UpdateFields(ctx, id, updates); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Warn("news item not found")
			return nil, nil
		}
		if errors.Is(err, storage.ErrDuplicateSlug) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrDuplicateSlug)
		}
		log.Error("failed to update news item", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("news item updated")

	return s.repo.GetByID(ctx, id)
}

// titleForSlug отдаёт заголовок из запроса, а когда тот не задан —
// из сохранённой записи
func (s *NewsService) titleForSlug(ctx context.Context, id uuid.UUID, reqTitle *string) (string, error) {
	if reqTitle != nil {
		return *reqTitle, nil
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}

	return existing.Title, nil
}

func (s *NewsService) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	const op = "news_service.Delete"

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.log.Error("failed to delete news item", slog.String("op", op), sl.Err(err))
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return deleted, nil
}
