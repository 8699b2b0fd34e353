package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"
)

type Storage struct {
	db *pgxpool.Pool
}

func New(ctx context.Context, dsn string) (*Storage, error) {
	const op = "storage.postgresql.New"

	db, err := pgxpool.Connect(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{db: db}, nil
}

func (s *Storage) Pool() *pgxpool.Pool {
	return s.db
}

func (s *Storage) Stop() {
	s.db.Close()
}

// Bootstrap применяет схему один раз при старте, до приёма трафика.
// Уникальность слагов обеспечивается ограничениями на уровне БД;
// предварительная проверка в сервисах остаётся только быстрым путём.
func (s *Storage) Bootstrap(ctx context.Context) error {
	const op = "storage.postgresql.Bootstrap"

	_, err := s.db.Exec(ctx, schema)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

const schema = `
CREATE TABLE IF NOT EXISTS projects (
	id UUID PRIMARY KEY,
	slug VARCHAR(255) UNIQUE NOT NULL,
	title VARCHAR(255) NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	category VARCHAR(255) NOT NULL DEFAULT '',
	year INT NOT NULL DEFAULT 0,
	metadata JSONB,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS news_items (
	id UUID PRIMARY KEY,
	slug VARCHAR(255) UNIQUE NOT NULL,
	title VARCHAR(255) NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	content TEXT NOT NULL DEFAULT '',
	category VARCHAR(255) NOT NULL DEFAULT '',
	published_at TIMESTAMPTZ,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS project_categories (
	id UUID PRIMARY KEY,
	name VARCHAR(255) UNIQUE NOT NULL,
	count INT NOT NULL DEFAULT 0,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS news_categories (
	id UUID PRIMARY KEY,
	name VARCHAR(255) UNIQUE NOT NULL,
	count INT NOT NULL DEFAULT 0,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS publications (
	id UUID PRIMARY KEY,
	title VARCHAR(255) NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	thumbnail TEXT NOT NULL DEFAULT '',
	download_link TEXT NOT NULL DEFAULT '',
	status VARCHAR(32) NOT NULL DEFAULT 'draft',
	published_at TIMESTAMPTZ,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS navigation_sets (
	id UUID PRIMARY KEY,
	title VARCHAR(255) NOT NULL,
	area VARCHAR(32) NOT NULL,
	is_active BOOLEAN NOT NULL DEFAULT true,
	links JSONB NOT NULL DEFAULT '[]',
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS page_contents (
	id VARCHAR(32) PRIMARY KEY,
	title VARCHAR(255) NOT NULL DEFAULT '',
	body TEXT NOT NULL DEFAULT '',
	last_updated TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`
