package dto

import "time"

type CreatePublicationRequest struct {
	Title        string     `json:"title" validate:"required"`
	Description  string     `json:"description,omitempty"`
	Thumbnail    string     `json:"thumbnail,omitempty"`
	DownloadLink string     `json:"download_link,omitempty"`
	Status       string     `json:"status,omitempty" validate:"omitempty,oneof=draft published"`
	PublishedAt  *time.Time `json:"published_at,omitempty"`
}

type UpdatePublicationRequest struct {
	Title        *string    `json:"title,omitempty"`
	Description  *string    `json:"description,omitempty"`
	Thumbnail    *string    `json:"thumbnail,omitempty"`
	DownloadLink *string    `json:"download_link,omitempty"`
	Status       *string    `json:"status,omitempty" validate:"omitempty,oneof=draft published"`
	PublishedAt  *time.Time `json:"published_at,omitempty"`
}
