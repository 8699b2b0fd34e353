package dto

import "artfolio/internal/domain/models"

type CreateNavigationSetRequest struct {
	Title    string `json:"title" validate:"required"`
	Area     string `json:"area" validate:"required,oneof=header footer sidebar"`
	IsActive *bool  `json:"is_active,omitempty"`
}

type UpdateNavigationSetRequest struct {
	Title    *string `json:"title,omitempty"`
	Area     *string `json:"area,omitempty" validate:"omitempty,oneof=header footer sidebar"`
	IsActive *bool   `json:"is_active,omitempty"`
}

type AddLinkRequest struct {
	Label        string `json:"label" validate:"required"`
	URL          string `json:"url" validate:"required"`
	OpenInNewTab bool   `json:"open_in_new_tab,omitempty"`
}

type UpdateLinkRequest struct {
	Label        *string `json:"label,omitempty"`
	URL          *string `json:"url,omitempty"`
	OpenInNewTab *bool   `json:"open_in_new_tab,omitempty"`
	Order        *int    `json:"order,omitempty"`
}

// UpdateOrderRequest заменяет последовательность ссылок целиком:
// вызывающая сторона передаёт полный желаемый порядок, пустой
// список очищает набор
type UpdateOrderRequest struct {
	Links models.NavLinks `json:"links"`
}
