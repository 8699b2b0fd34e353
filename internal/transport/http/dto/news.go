package dto

import "time"

type CreateNewsRequest struct {
	Title       string     `json:"title" validate:"required"`
	Slug        string     `json:"slug,omitempty"`
	Description string     `json:"description,omitempty"`
	Content     string     `json:"content,omitempty"`
	Category    string     `json:"category,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
}

type UpdateNewsRequest struct {
	Title       *string    `json:"title,omitempty"`
	Slug        *string    `json:"slug,omitempty"`
	Description *string    `json:"description,omitempty"`
	Content     *string    `json:"content,omitempty"`
	Category    *string    `json:"category,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
}
