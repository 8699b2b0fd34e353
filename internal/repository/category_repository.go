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

// CategoryRepo обслуживает обе таблицы категорий: они различаются
// только именем таблицы и таблицей, на которую ссылаются записи
type CategoryRepo struct {
	db       *pgxpool.Pool
	sb       sq.StatementBuilderType
	table    string
	refTable string
}

func NewCategoryRepository(db *pgxpool.Pool, kind models.CategoryKind) *CategoryRepo {
	table, refTable := "project_categories", "projects"
	if kind == models.CategoryKindNews {
		table, refTable = "news_categories", "news_items"
	}

	return &CategoryRepo{
		db:       db,
		sb:       sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
		table:    table,
		refTable: refTable,
	}
}

func (r *CategoryRepo) GetAll(ctx context.Context) ([]models.Category, error) {
	const op = "repository.category_repository.GetAll"

	query, args, err := r.sb.Select("id", "name", "count", "created_at", "updated_at").
		From(r.table).
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Count, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		categories = append(categories, c)
	}

	return categories, nil
}

func (r *CategoryRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	const op = "repository.category_repository.GetByID"

	query, args, err := r.sb.Select("id", "name", "count", "created_at", "updated_at").
		From(r.table).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var c models.Category
	err = r.db.QueryRow(ctx, query, args...).Scan(&c.ID, &c.Name, &c.Count, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &c, nil
}

func (r *CategoryRepo) Create(ctx context.Context, category models.Category) (uuid.UUID, error) {
	const op = "repository.category_repository.Create"

	query, args, err := r.sb.Insert(r.table).
		Columns("id", "name", "count", "created_at", "updated_at").
		Values(category.ID, category.Name, category.Count, category.CreatedAt, category.UpdatedAt).
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

func (r *CategoryRepo) UpdateName(ctx context.Context, id uuid.UUID, name string) error {
	const op = "repository.category_repository.UpdateName"

	query, args, err := r.sb.Update(r.table).
		Set("name", name).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	result, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%s: %w", op, storage.ErrDuplicateSlug)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

func (r *CategoryRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	const op = "repository.category_repository.Delete"
	return deleteByID(ctx, r.db, r.sb, op, r.table, id)
}

// UpdateCounts пересчитывает кешированные счётчики одной командой:
// count каждой категории становится равным числу записей, ссылающихся
// на неё по имени. Повторный запуск даёт тот же результат.
func (r *CategoryRepo) UpdateCounts(ctx context.Context) error {
	const op = "repository.category_repository.UpdateCounts"

	query := fmt.Sprintf(`
		UPDATE %s AS c
		SET count = (
			SELECT COUNT(*) FROM %s AS e WHERE e.category = c.name
		), updated_at = NOW()`, r.table, r.refTable)

	if _, err := r.db.Exec(ctx, query); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
