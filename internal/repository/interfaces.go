package repository

import (
	"context"
	"time"

	"artfolio/internal/domain/models"

	"github.com/google/uuid"
)

type ProjectRepository interface {
	GetAll(ctx context.Context) ([]models.Project, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error)
	GetBySlug(ctx context.Context, slug string) (*models.Project, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	Create(ctx context.Context, project models.Project) (uuid.UUID, error)
	UpdateFields(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type NewsRepository interface {
	GetAll(ctx context.Context) ([]models.NewsItem, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.NewsItem, error)
	GetBySlug(ctx context.Context, slug string) (*models.NewsItem, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	Create(ctx context.Context, item models.NewsItem) (uuid.UUID, error)
	UpdateFields(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type CategoryRepository interface {
	GetAll(ctx context.Context) ([]models.Category, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	Create(ctx context.Context, category models.Category) (uuid.UUID, error)
	UpdateName(ctx context.Context, id uuid.UUID, name string) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	UpdateCounts(ctx context.Context) error
}

type PublicationRepository interface {
	GetAll(ctx context.Context, includeDrafts bool) ([]models.Publication, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Publication, error)
	Create(ctx context.Context, publication models.Publication) (uuid.UUID, error)
	UpdateFields(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type NavigationRepository interface {
	GetAll(ctx context.Context) ([]models.NavigationSet, error)
	GetByArea(ctx context.Context, area models.NavigationArea) ([]models.NavigationSet, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.NavigationSet, error)
	Create(ctx context.Context, set models.NavigationSet) (uuid.UUID, error)
	UpdateFields(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	UpdateLinks(ctx context.Context, id uuid.UUID, links models.NavLinks) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type ContentRepository interface {
	Get(ctx context.Context, id string) (*models.PageContent, error)
	Upsert(ctx context.Context, content models.PageContent) error
}

type SessionRepository interface {
	SaveSession(ctx context.Context, token, username string, ttl time.Duration) error
	SessionExists(ctx context.Context, token string) (bool, error)
	DeleteSession(ctx context.Context, token string) error
}
