package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"artfolio/internal/domain/models"
	"artfolio/internal/lib/logger/sl"
	"artfolio/internal/repository"
	"artfolio/internal/storage"
	"artfolio/internal/transport/http/dto"

	"github.com/google/uuid"
)

type PublicationService struct {
	log  *slog.Logger
	repo repository.PublicationRepository
}

func NewPublicationService(log *slog.Logger, repo repository.PublicationRepository) *PublicationService {
	return &PublicationService{log: log, repo: repo}
}

// GetAll отдаёт только опубликованные записи — публичный список
func (s *PublicationService) GetAll(ctx context.Context) ([]models.Publication, error) {
	const op = "publication_service.GetAll"

	publications, err := s.repo.GetAll(ctx, false)
	if err != nil {
		s.log.Error("failed to list publications", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return publications, nil
}

// GetAllIncludingDrafts — единственный путь, показывающий черновики
func (s *PublicationService) GetAllIncludingDrafts(ctx context.Context) ([]models.Publication, error) {
	const op = "publication_service.GetAllIncludingDrafts"

	publications, err := s.repo.GetAll(ctx, true)
	if err != nil {
		s.log.Error("failed to list publications", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return publications, nil
}

func (s *PublicationService) GetByID(ctx context.Context, id uuid.UUID) (*models.Publication, error) {
	const op = "publication_service.GetByID"

	publication, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}
		s.log.Error("failed to get publication", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return publication, nil
}

func (s *PublicationService) Create(ctx context.Context, req dto.CreatePublicationRequest) (*models.Publication, error) {
	const op = "publication_service.Create"

	log := s.log.With(
		slog.String("op", op),
		slog.String("title", req.Title),
	)

	status := models.PublicationStatus(req.Status)
	if status == "" {
		status = models.PublicationStatusDraft
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%s: invalid status %q", op, req.Status)
	}

	now := time.Now().UTC()
	publishedAt := req.PublishedAt
	if status == models.PublicationStatusPublished && publishedAt == nil {
		publishedAt = &now
	}

	publication := models.Publication{
		ID:           uuid.New(),
		Title:        req.Title,
		Description:  req.Description,
		Thumbnail:    req.Thumbnail,
		DownloadLink: req.DownloadLink,
		Status:       status,
		PublishedAt:  publishedAt,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	id, err := s.repo.Create(ctx, publication)
	if err != nil {
		log.Error("failed to create publication", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("publication created", slog.String("publication_id", id.String()))

	return s.repo.GetByID(ctx, id)
}

func (s *PublicationService) Update(ctx context.Context, id uuid.UUID, req dto.UpdatePublicationRequest) (*models.Publication, error) {
	const op = "publication_service.Update"

	log := s.log.With(
		slog.String("op", op),
		slog.String("publication_id", id.String()),
	)

	updates := make(map[string]interface{})

	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Thumbnail != nil {
		updates["thumbnail"] = *req.Thumbnail
	}
	if req.DownloadLink != nil {
		updates["download_link"] = *req.DownloadLink
	}
	if req.PublishedAt != nil {
		updates["published_at"] = *req.PublishedAt
	}
	if req.Status != nil {
		status := models.PublicationStatus(*req.Status)
		if !status.Valid() {
			return nil, fmt.Errorf("%s: invalid status %q", op, *req.Status)
		}
		updates["status"] = status

		// первый переход в published фиксирует время публикации
		if status == models.PublicationStatusPublished && req.PublishedAt == nil {
			existing, err := s.repo.GetByID(ctx, id)
			if err != nil {
				if errors.Is(err, storage.ErrNotFound) {
					return nil, nil
				}
				return nil, fmt.Errorf("%s: %w", op, err)
			}
			if existing.PublishedAt == nil {
				now := time.Now().UTC()
				updates["published_at"] = &now
			}
		}
	}

	if len(updates) == 0 {
		return s.GetByID(ctx, id)
	}

	if err := s.repo.UpdateFields(ctx, id, updates); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Warn("publication not found")
			return nil, nil
		}
		log.Error("failed to update publication", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("publication updated")

	return s.repo.GetByID(ctx, id)
}

func (s *PublicationService) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	const op = "publication_service.Delete"

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.log.Error("failed to delete publication", slog.String("op", op), sl.Err(err))
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return deleted, nil
}
