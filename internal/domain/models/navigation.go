package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type NavigationArea string

const (
	NavigationAreaHeader  NavigationArea = "header"
	NavigationAreaFooter  NavigationArea = "footer"
	NavigationAreaSidebar NavigationArea = "sidebar"
)

func (a NavigationArea) Valid() bool {
	return a == NavigationAreaHeader || a == NavigationAreaFooter || a == NavigationAreaSidebar
}

// NavLink — один пункт навигации внутри набора.
// Order задаёт порядок отображения; ID генерируется при добавлении
// и уникален в пределах набора.
type NavLink struct {
	ID           uuid.UUID `json:"id"`
	Label        string    `json:"label"`
	URL          string    `json:"url"`
	OpenInNewTab bool      `json:"open_in_new_tab"`
	Order        int       `json:"order"`
}

// NavLinks хранится одной JSONB-колонкой, порядок элементов значим
type NavLinks []NavLink

// NavigationSet представляет именованный набор ссылок для области страницы
type NavigationSet struct {
	ID        uuid.UUID      `json:"id" db:"id"`
	Title     string         `json:"title" db:"title"`
	Area      NavigationArea `json:"area" db:"area"`
	IsActive  bool           `json:"is_active" db:"is_active"`
	Links     NavLinks       `json:"links" db:"links"`
	CreatedAt time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt time.Time      `json:"updated_at" db:"updated_at"`
}

func (l NavLinks) Value() (driver.Value, error) {
	if l == nil {
		return json.Marshal(NavLinks{})
	}
	return json.Marshal(l)
}

func (l *NavLinks) Scan(value interface{}) error {
	if value == nil {
		*l = NavLinks{}
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		s, sok := value.(string)
		if !sok {
			*l = NavLinks{}
			return nil
		}
		b = []byte(s)
	}
	return json.Unmarshal(b, l)
}
