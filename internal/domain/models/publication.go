package models

import (
	"time"

	"github.com/google/uuid"
)

type PublicationStatus string

const (
	PublicationStatusDraft     PublicationStatus = "draft"
	PublicationStatusPublished PublicationStatus = "published"
)

// Publication представляет издание/каталог с файлом для скачивания.
// На публичных списках видны только опубликованные записи.
type Publication struct {
	ID           uuid.UUID         `json:"id" db:"id"`
	Title        string            `json:"title" db:"title"`
	Description  string            `json:"description" db:"description"`
	Thumbnail    string            `json:"thumbnail,omitempty" db:"thumbnail"`
	DownloadLink string            `json:"download_link,omitempty" db:"download_link"`
	Status       PublicationStatus `json:"status" db:"status"`
	PublishedAt  *time.Time        `json:"published_at,omitempty" db:"published_at"`
	CreatedAt    time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at" db:"updated_at"`
}

func (s PublicationStatus) Valid() bool {
	return s == PublicationStatusDraft || s == PublicationStatusPublished
}
