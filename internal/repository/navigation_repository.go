package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"artfolio/internal/domain/models"
	"artfolio/internal/storage"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

type NavigationRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewNavigationRepository(db *pgxpool.Pool) *NavigationRepo {
	return &NavigationRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

var navigationColumns = []string{
	"id", "title", "area", "is_active", "links", "created_at", "updated_at",
}

func (r *NavigationRepo) scanSet(row pgx.Row) (*models.NavigationSet, error) {
	var s models.NavigationSet
	err := row.Scan(&s.ID, &s.Title, &s.Area, &s.IsActive, &s.Links, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *NavigationRepo) GetAll(ctx context.Context) ([]models.NavigationSet, error) {
	const op = "repository.navigation_repository.GetAll"
	return r.list(ctx, op, nil)
}

func (r *NavigationRepo) GetByArea(ctx context.Context, area models.NavigationArea) ([]models.NavigationSet, error) {
	const op = "repository.navigation_repository.GetByArea"
	return r.list(ctx, op, sq.Eq{"area": area})
}

func (r *NavigationRepo) list(ctx context.Context, op string, where sq.Eq) ([]models.NavigationSet, error) {
	builder := r.sb.Select(navigationColumns...).
		From("navigation_sets").
		OrderBy("created_at DESC")

	if where != nil {
		builder = builder.Where(where)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var sets []models.NavigationSet
	for rows.Next() {
		set, err := r.scanSet(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		sets = append(sets, *set)
	}

	return sets, nil
}

func (r *NavigationRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.NavigationSet, error) {
	const op = "repository.navigation_repository.GetByID"

	query, args, err := r.sb.Select(navigationColumns...).
		From("navigation_sets").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	set, err := r.scanSet(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return set, nil
}

func (r *NavigationRepo) Create(ctx context.Context, set models.NavigationSet) (uuid.UUID, error) {
	const op = "repository.navigation_repository.Create"

	query, args, err := r.sb.Insert("navigation_sets").
		Columns("id", "title", "area", "is_active", "links", "created_at", "updated_at").
		Values(set.ID, set.Title, set.Area, set.IsActive, set.Links, set.CreatedAt, set.UpdatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	var id uuid.UUID
	if err := r.db.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

func (r *NavigationRepo) UpdateFields(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	const op = "repository.navigation_repository.UpdateFields"

	allowedFields := map[string]bool{
		"title":      true,
		"area":       true,
		"is_active":  true,
		"links":      true,
		"updated_at": true,
	}

	return updateFields(ctx, r.db, r.sb, op, "navigation_sets", id, updates, allowedFields)
}

// UpdateLinks перезаписывает всю последовательность ссылок целиком —
// каждая операция редактора выполняет read-modify-write строки
func (r *NavigationRepo) UpdateLinks(ctx context.Context, id uuid.UUID, links models.NavLinks) error {
	const op = "repository.navigation_repository.UpdateLinks"

	query, args, err := r.sb.Update("navigation_sets").
		Set("links", links).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	result, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

func (r *NavigationRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	const op = "repository.navigation_repository.Delete"
	return deleteByID(ctx, r.db, r.sb, op, "navigation_sets", id)
}
