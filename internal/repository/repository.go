package repository

import (
	"github.com/jackc/pgx/v4/pgxpool"

	"artfolio/internal/domain/models"
)

type Repository struct {
	Project         ProjectRepository
	News            NewsRepository
	ProjectCategory CategoryRepository
	NewsCategory    CategoryRepository
	Publication     PublicationRepository
	Navigation      NavigationRepository
	Content         ContentRepository
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{
		Project:         NewProjectRepository(db),
		News:            NewNewsRepository(db),
		ProjectCategory: NewCategoryRepository(db, models.CategoryKindProject),
		NewsCategory:    NewCategoryRepository(db, models.CategoryKindNews),
		Publication:     NewPublicationRepository(db),
		Navigation:      NewNavigationRepository(db),
		Content:         NewContentRepository(db),
	}
}
