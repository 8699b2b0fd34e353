package models

import "time"

// Фиксированные идентификаторы одиночных страниц
const (
	ContentIDAbout   = "about"
	ContentIDContact = "contact"
)

// PageContent — одиночная запись со свободным текстом страницы
// (about/contact). LastUpdated обновляется при каждой записи.
type PageContent struct {
	ID          string    `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Body        string    `json:"body" db:"body"`
	LastUpdated time.Time `json:"last_updated" db:"last_updated"`
}
