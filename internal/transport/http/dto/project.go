package dto

import "artfolio/internal/domain/models"

type CreateProjectRequest struct {
	Title       string          `json:"title" validate:"required"`
	Slug        string          `json:"slug,omitempty"`
	Description string          `json:"description,omitempty"`
	Category    string          `json:"category,omitempty"`
	Year        int             `json:"year,omitempty"`
	Metadata    models.Metadata `json:"metadata,omitempty"`
}

type UpdateProjectRequest struct {
	Title       *string         `json:"title,omitempty"`
	Slug        *string         `json:"slug,omitempty"`
	Description *string         `json:"description,omitempty"`
	Category    *string         `json:"category,omitempty"`
	Year        *int            `json:"year,omitempty"`
	Metadata    models.Metadata `json:"metadata,omitempty"`
}
