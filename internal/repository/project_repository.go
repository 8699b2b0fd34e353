package repository

import (
	"context"
	"errors"
	"fmt"

	"artfolio/internal/domain/models"
	"artfolio/internal/storage"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

const pgUniqueViolation = "23505"

type ProjectRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewProjectRepository(db *pgxpool.Pool) *ProjectRepo {
	return &ProjectRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

var projectColumns = []string{
	"id", "slug", "title", "description", "category", "year",
	"metadata", "created_at", "updated_at",
}

func (r *ProjectRepo) GetAll(ctx context.Context) ([]models.Project, error) {
	const op = "repository.project_repository.GetAll"

	query, args, err := r.sb.Select(projectColumns...).
		From("projects").
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		var p models.Project
		if err := rows.Scan(
			&p.ID, &p.Slug, &p.Title, &p.Description, &p.Category, &p.Year,
			&p.Metadata, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		projects = append(projects, p)
	}

	return projects, nil
}

func (r *ProjectRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	const op = "repository.project_repository.GetByID"
	return r.getOne(ctx, op, sq.Eq{"id": id})
}

func (r *ProjectRepo) GetBySlug(ctx context.Context, slug string) (*models.Project, error) {
	const op = "repository.project_repository.GetBySlug"
	return r.getOne(ctx, op, sq.Eq{"slug": slug})
}

func (r *ProjectRepo) getOne(ctx context.Context, op string, where sq.Eq) (*models.Project, error) {
	query, args, err := r.sb.Select(projectColumns...).
		From("projects").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var p models.Project
	err = r.db.QueryRow(ctx, query, args...).Scan(
		&p.ID, &p.Slug, &p.Title, &p.Description, &p.Category, &p.Year,
		&p.Metadata, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &p, nil
}

func (r *ProjectRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	const op = "repository.project_repository.SlugExists"

	query, args, err := r.sb.Select("1").
		From("projects").
		Where(sq.Eq{"slug": slug}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	var one int
	err = r.db.QueryRow(ctx, query, args...).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return true, nil
}

func (r *ProjectRepo) Create(ctx context.Context, project models.Project) (uuid.UUID, error) {
	const op = "repository.project_repository.Create"

	query, args, err := r.sb.Insert("projects").
		Columns("id", "slug", "title", "description", "category", "year", "metadata", "created_at", "updated_at").
		Values(
			project.ID,
			project.Slug,
			project.Title,
			project.Description,
			project.Category,
			project.Year,
			project.Metadata,
			project.CreatedAt,
			project.UpdatedAt,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	var id uuid.UUID
	err = r.db.QueryRow(ctx, query, args...).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return uuid.Nil, fmt.Errorf("%s: %w", op, storage.ErrDuplicateSlug)
		}
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

func (r *ProjectRepo) UpdateFields(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	const op = "repository.project_repository.UpdateFields"

	allowedFields := map[string]bool{
		"slug":        true,
		"title":       true,
		"description": true,
		"category":    true,
		"year":        true,
		"metadata":    true,
		"updated_at":  true,
	}

	return updateFields(ctx, r.db, r.sb, op, "projects", id, updates, allowedFields)
}

func (r *ProjectRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	const op = "repository.project_repository.Delete"
	return deleteByID(ctx, r.db, r.sb, op, "projects", id)
}

// isUniqueViolation распознаёт нарушение уникального ограничения:
// гонка двух создателей одного слага закрывается на уровне БД
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
