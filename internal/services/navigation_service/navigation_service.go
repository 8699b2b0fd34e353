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

// NavigationService редактирует наборы ссылок. Каждая операция над
// ссылками — read-modify-write всей строки: использование рассчитано
// на одного администратора, последняя запись побеждает.
type NavigationService struct {
	log  *slog.Logger
	repo repository.NavigationRepository
}

func NewNavigationService(log *slog.Logger, repo repository.NavigationRepository) *NavigationService {
	return &NavigationService{log: log, repo: repo}
}

func (s *NavigationService) GetAll(ctx context.Context) ([]models.NavigationSet, error) {
	const op = "navigation_service.GetAll"

	sets, err := s.repo.GetAll(ctx)
	if err != nil {
		s.log.Error("failed to list navigation sets", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return sets, nil
}

func (s *NavigationService) GetByArea(ctx context.Context, area models.NavigationArea) ([]models.NavigationSet, error) {
	const op = "navigation_service.GetByArea"

	if !area.Valid() {
		return nil, fmt.Errorf("%s: invalid area %q", op, area)
	}

	sets, err := s.repo.GetByArea(ctx, area)
	if err != nil {
		s.log.Error("failed to list navigation sets", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return sets, nil
}

func (s *NavigationService) GetByID(ctx context.Context, id uuid.UUID) (*models.NavigationSet, error) {
	const op = "navigation_service.GetByID"

	set, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}
		s.log.Error("failed to get navigation set", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return set, nil
}

func (s *NavigationService) CreateSet(ctx context.Context, req dto.CreateNavigationSetRequest) (*models.NavigationSet, error) {
	const op = "navigation_service.CreateSet"

	log := s.log.With(
		slog.String("op", op),
		slog.String("area", req.Area),
	)

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	now := time.Now().UTC()
	set := models.NavigationSet{
		ID:        uuid.New(),
		Title:     req.Title,
		Area:      models.NavigationArea(req.Area),
		IsActive:  isActive,
		Links:     models.NavLinks{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	id, err := s.repo.Create(ctx, set)
	if err != nil {
		log.Error("failed to create navigation set", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("navigation set created", slog.String("set_id", id.String()))

	return s.repo.GetByID(ctx, id)
}

func (s *NavigationService) UpdateSet(ctx context.Context, id uuid.UUID, req dto.UpdateNavigationSetRequest) (*models.NavigationSet, error) {
	const op = "navigation_service.UpdateSet"

	updates := make(map[string]interface{})

	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Area != nil {
		updates["area"] = *req.Area
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) == 0 {
		return s.GetByID(ctx, id)
	}

	if err := s.repo.UpdateFields(ctx, id, updates); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}
		s.log.Error("failed to update navigation set", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s.repo.GetByID(ctx, id)
}

func (s *NavigationService) DeleteSet(ctx context.Context, id uuid.UUID) (bool, error) {
	const op = "navigation_service.DeleteSet"

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.log.Error("failed to delete navigation set", slog.String("op", op), sl.Err(err))
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return deleted, nil
}

// AddLink дописывает ссылку со свежим id и order = 0: порядок
// выставляется отдельным вызовом UpdateOrder
func (s *NavigationService) AddLink(ctx context.Context, setID uuid.UUID, req dto.AddLinkRequest) (*models.NavigationSet, error) {
	const op = "navigation_service.AddLink"

	set, err := s.loadSet(ctx, op, setID)
	if err != nil || set == nil {
		return set, err
	}

	link := models.NavLink{
		ID:           uuid.New(),
		Label:        req.Label,
		URL:          req.URL,
		OpenInNewTab: req.OpenInNewTab,
		Order:        0,
	}

	links := append(models.NavLinks{}, set.Links...)
	links = append(links, link)

	return s.saveLinks(ctx, op, setID, links)
}

func (s *NavigationService) UpdateLink(ctx context.Context, setID, linkID uuid.UUID, req dto.UpdateLinkRequest) (*models.NavigationSet, error) {
	const op = "navigation_service.UpdateLink"

	set, err := s.loadSet(ctx, op, setID)
	if err != nil || set == nil {
		return set, err
	}

	links := append(models.NavLinks{}, set.Links...)

	found := false
	for i := range links {
		if links[i].ID != linkID {
			continue
		}
		found = true

		if req.Label != nil {
			links[i].Label = *req.Label
		}
		if req.URL != nil {
			links[i].URL = *req.URL
		}
		if req.OpenInNewTab != nil {
			links[i].OpenInNewTab = *req.OpenInNewTab
		}
		if req.Order != nil {
			links[i].Order = *req.Order
		}
		break
	}

	if !found {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrLinkNotFound)
	}

	return s.saveLinks(ctx, op, setID, links)
}

func (s *NavigationService) DeleteLink(ctx context.Context, setID, linkID uuid.UUID) (*models.NavigationSet, error) {
	const op = "navigation_service.DeleteLink"

	set, err := s.loadSet(ctx, op, setID)
	if err != nil || set == nil {
		return set, err
	}

	links := make(models.NavLinks, 0, len(set.Links))
	found := false
	for _, link := range set.Links {
		if link.ID == linkID {
			found = true
			continue
		}
		links = append(links, link)
	}

	if !found {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrLinkNotFound)
	}

	return s.saveLinks(ctx, op, setID, links)
}

// UpdateOrder заменяет последовательность целиком: чтобы не терять
// правки при конкурентном редактировании, вызывающая сторона передаёт
// полный желаемый порядок
func (s *NavigationService) UpdateOrder(ctx context.Context, setID uuid.UUID, req dto.UpdateOrderRequest) (*models.NavigationSet, error) {
	const op = "navigation_service.UpdateOrder"

	set, err := s.loadSet(ctx, op, setID)
	if err != nil || set == nil {
		return set, err
	}

	return s.saveLinks(ctx, op, setID, req.Links)
}

func (s *NavigationService) loadSet(ctx context.Context, op string, id uuid.UUID) (*models.NavigationSet, error) {
	set, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}
		s.log.Error("failed to get navigation set", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return set, nil
}

func (s *NavigationService) saveLinks(ctx context.Context, op string, id uuid.UUID, links models.NavLinks) (*models.NavigationSet, error) {
	if err := s.repo.UpdateLinks(ctx, id, links); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}
		s.log.Error("failed to save links", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s.repo.GetByID(ctx, id)
}
