package repository

import (
	"context"
	"errors"
	"fmt"

	"artfolio/internal/domain/models"
	"artfolio/internal/storage"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

type NewsRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewNewsRepository(db *pgxpool.Pool) *NewsRepo {
	return &NewsRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

var newsColumns = []string{
	"id", "slug", "title", "description", "content", "category",
	"published_at", "created_at", "updated_at",
}

func (r *NewsRepo) scanItem(row pgx.Row) (*models.NewsItem, error) {
	var n models.NewsItem
	err := row.Scan(
		&n.ID, &n.Slug, &n.Title, &n.Description, &n.Content, &n.Category,
		&n.PublishedAt, &n.CreatedAt, &n.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *NewsRepo) GetAll(ctx context.Context) ([]models.NewsItem, error) {
	const op = "repository.news_repository.GetAll"

	// сортировка по времени публикации, свежие первыми;
	// неопубликованные (published_at IS NULL) уходят в конец
	query, args, err := r.sb.Select(newsColumns...).
		From("news_items").
		OrderBy("published_at DESC NULLS LAST", "created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var items []models.NewsItem
	for rows.Next() {
		item, err := r.scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		items = append(items, *item)
	}

	return items, nil
}

func (r *NewsRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.NewsItem, error) {
	const op = "repository.news_repository.GetByID"
	return r.getOne(ctx, op, sq.Eq{"id": id})
}

func (r *NewsRepo) GetBySlug(ctx context.Context, slug string) (*models.NewsItem, error) {
	const op = "repository.news_repository.GetBySlug"
	return r.getOne(ctx, op, sq.Eq{"slug": slug})
}

func (r *NewsRepo) getOne(ctx context.Context, op string, where sq.Eq) (*models.NewsItem, error) {
	query, args, err := r.sb.Select(newsColumns...).
		From("news_items").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	item, err := r.scanItem(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return item, nil
}

func (r *NewsRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	const op = "repository.news_repository.SlugExists"

	query, args, err := r.sb.Select("1").
		From("news_items").
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

func (r *NewsRepo) Create(ctx context.Context, item models.NewsItem) (uuid.UUID, error) {
	const op = "repository.news_repository.Create"

	query, args, err := r.sb.Insert("news_items").
		Columns("id", "slug", "title", "description", "content", "category", "published_at", "created_at", "updated_at").
		Values(
			item.ID,
			item.Slug,
			item.Title,
			item.Description,
			item.Content,
			item.Category,
			item.PublishedAt,
			item.CreatedAt,
			item.UpdatedAt,
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

func (r *NewsRepo) UpdateFields(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	const op = "repository.news_repository.UpdateFields"

	allowedFields := map[string]bool{
		"slug":         true,
		"title":        true,
		"description":  true,
		"content":      true,
		"category":     true,
		"published_at": true,
		"updated_at":   true,
	}

	return updateFields(ctx, r.db, r.sb, op, "news_items", id, updates, allowedFields)
}

func (r *NewsRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	const op = "repository.news_repository.Delete"
	return deleteByID(ctx, r.db, r.sb, op, "news_items", id)
}
