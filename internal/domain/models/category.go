package models

import (
	"time"

	"github.com/google/uuid"
)

// CategoryKind различает категории проектов и новостей:
// обе таблицы имеют одинаковую форму строки
type CategoryKind string

const (
	CategoryKindProject CategoryKind = "project"
	CategoryKindNews    CategoryKind = "news"
)

// Category представляет категорию с денормализованным счётчиком.
// Count — производное значение: пересчитывается по запросу,
// между пересчётами может расходиться с фактическим числом записей.
type Category struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Count     int       `json:"count" db:"count"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
