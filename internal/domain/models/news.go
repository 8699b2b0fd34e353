package models

import (
	"time"

	"github.com/google/uuid"
)

// NewsItem представляет новость на публичной странице
type NewsItem struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	Slug        string     `json:"slug" db:"slug"`
	Title       string     `json:"title" db:"title"`
	Description string     `json:"description" db:"description"`
	Content     string     `json:"content,omitempty" db:"content"`
	Category    string     `json:"category" db:"category"`
	PublishedAt *time.Time `json:"published_at,omitempty" db:"published_at"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}
