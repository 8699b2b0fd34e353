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

type PublicationRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewPublicationRepository(db *pgxpool.Pool) *PublicationRepo {
	return &PublicationRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

var publicationColumns = []string{
	"id", "title", "description", "thumbnail", "download_link",
	"status", "published_at", "created_at", "updated_at",
}

// GetAll по умолчанию отдаёт только опубликованные записи;
// includeDrafts — единственный путь, показывающий черновики
func (r *PublicationRepo) GetAll(ctx context.Context, includeDrafts bool) ([]models.Publication, error) {
	const op = "repository.publication_repository.GetAll"

	builder := r.sb.Select(publicationColumns...).
		From("publications").
		OrderBy("published_at DESC NULLS LAST", "created_at DESC")

	if !includeDrafts {
		builder = builder.Where(sq.Eq{"status": models.PublicationStatusPublished})
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

	var publications []models.Publication
	for rows.Next() {
		var p models.Publication
		if err := rows.Scan(
			&p.ID, &p.Title, &p.Description, &p.Thumbnail, &p.DownloadLink,
			&p.Status, &p.PublishedAt, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		publications = append(publications, p)
	}

	return publications, nil
}

func (r *PublicationRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Publication, error) {
	const op = "repository.publication_repository.GetByID"

	query, args, err := r.sb.Select(publicationColumns...).
		From("publications").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var p models.Publication
	err = r.db.QueryRow(ctx, query, args...).Scan(
		&p.ID, &p.Title, &p.Description, &p.Thumbnail, &p.DownloadLink,
		&p.Status, &p.PublishedAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &p, nil
}

func (r *PublicationRepo) Create(ctx context.Context, publication models.Publication) (uuid.UUID, error) {
	const op = "repository.publication_repository.Create"

	query, args, err := r.sb.Insert("publications").
		Columns("id", "title", "description", "thumbnail", "download_link", "status", "published_at", "created_at", "updated_at").
		Values(
			publication.ID,
			publication.Title,
			publication.Description,
			publication.Thumbnail,
			publication.DownloadLink,
			publication.Status,
			publication.PublishedAt,
			publication.CreatedAt,
			publication.UpdatedAt,
		).
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

func (r *PublicationRepo) UpdateFields(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	const op = "repository.publication_repository.UpdateFields"

	allowedFields := map[string]bool{
		"title":         true,
		"description":   true,
		"thumbnail":     true,
		"download_link": true,
		"status":        true,
		"published_at":  true,
		"updated_at":    true,
	}

	return updateFields(ctx, r.db, r.sb, op, "publications", id, updates, allowedFields)
}

func (r *PublicationRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	const op = "repository.publication_repository.Delete"
	return deleteByID(ctx, r.db, r.sb, op, "publications", id)
}
