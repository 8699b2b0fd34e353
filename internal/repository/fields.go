package repository

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4/pgxpool"

	"artfolio/internal/storage"
)

// updateFields — частичное обновление строки: неуказанные поля
// сохраняют прежние значения. Поля вне allowedFields отклоняются.
func updateFields(
	ctx context.Context,
	db *pgxpool.Pool,
	sb sq.StatementBuilderType,
	op, table string,
	id uuid.UUID,
	updates map[string]interface{},
	allowedFields map[string]bool,
) error {
	if len(updates) == 0 {
		return fmt.Errorf("%s: no fields to update", op)
	}

	builder := sb.Update(table).Set("updated_at", time.Now().UTC())

	for field, value := range updates {
		if !allowedFields[field] {
			return fmt.Errorf("%s: field '%s' is not allowed for update", op, field)
		}
		builder = builder.Set(field, value)
	}

	query, args, err := builder.Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	result, err := db.Exec(ctx, query, args...)
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

// deleteByID возвращает false, когда ничего не совпало — это не ошибка
func deleteByID(
	ctx context.Context,
	db *pgxpool.Pool,
	sb sq.StatementBuilderType,
	op, table string,
	id uuid.UUID,
) (bool, error) {
	query, args, err := sb.Delete(table).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	result, err := db.Exec(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return result.RowsAffected() > 0, nil
}
