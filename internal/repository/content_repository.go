package repository

import (
	"context"
	"errors"
	"fmt"

	"artfolio/internal/domain/models"
	"artfolio/internal/storage"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

type ContentRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewContentRepository(db *pgxpool.Pool) *ContentRepo {
	return &ContentRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *ContentRepo) Get(ctx context.Context, id string) (*models.PageContent, error) {
	const op = "repository.content_repository.Get"

	query, args, err := r.sb.Select("id", "title", "body", "last_updated").
		From("page_contents").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var c models.PageContent
	err = r.db.QueryRow(ctx, query, args...).Scan(&c.ID, &c.Title, &c.Body, &c.LastUpdated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &c, nil
}

// Upsert создаёт или перезаписывает одиночную запись страницы;
// last_updated обновляется при каждой записи
func (r *ContentRepo) Upsert(ctx context.Context, content models.PageContent) error {
	const op = "repository.content_repository.Upsert"

	query, args, err := r.sb.Insert("page_contents").
		Columns("id", "title", "body", "last_updated").
		Values(content.ID, content.Title, content.Body, content.LastUpdated).
		Suffix("ON CONFLICT (id) DO UPDATE SET title = EXCLUDED.title, body = EXCLUDED.body, last_updated = EXCLUDED.last_updated").
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
