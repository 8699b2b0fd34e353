package dto

type SaveContentRequest struct {
	Title string `json:"title,omitempty"`
	Body  string `json:"body" validate:"required"`
}
