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
)

// ContentService обслуживает одиночные страницы (about/contact),
// идентифицируемые фиксированными id
type ContentService struct {
	log  *slog.Logger
	repo repository.ContentRepository
}

func NewContentService(log *slog.Logger, repo repository.ContentRepository) *ContentService {
	return &ContentService{log: log, repo: repo}
}

// Get возвращает nil без ошибки, если страница ещё ни разу не сохранялась
func (s *ContentService) Get(ctx context.Context, id string) (*models.PageContent, error) {
	const op = "content_service.Get"

	content, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}
		s.log.Error("failed to get page content", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return content, nil
}

// Save создаёт или перезаписывает страницу; last_updated обновляется
// при каждой записи
func (s *ContentService) Save(ctx context.Context, id string, req dto.SaveContentRequest) (*models.PageContent, error) {
	const op = "content_service.Save"

	log := s.log.With(
		slog.String("op", op),
		slog.String("content_id", id),
	)

	content := models.PageContent{
		ID:          id,
		Title:       req.Title,
		Body:        req.Body,
		LastUpdated: time.Now().UTC(),
	}

	if err := s.repo.Upsert(ctx, content); err != nil {
		log.Error("failed to save page content", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("page content saved")

	return s.repo.Get(ctx, id)
}
