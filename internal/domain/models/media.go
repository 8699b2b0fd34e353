package models

import "time"

type MediaEntryType string

const (
	MediaEntryTypeImage    MediaEntryType = "image"
	MediaEntryTypeDocument MediaEntryType = "document"
)

// MediaFile — файл внутри дерева загрузок. Не персистентная модель:
// дерево строится заново при каждом запросе.
type MediaFile struct {
	Name     string         `json:"name"`
	Path     string         `json:"path"`
	Type     MediaEntryType `json:"type"`
	Size     string         `json:"size"`
	Modified time.Time      `json:"modified"`
}

// MediaFolder — папка с файлами и вложенными папками,
// отсортированными лексикографически по имени
type MediaFolder struct {
	Name    string         `json:"name"`
	Path    string         `json:"path"`
	Files   []MediaFile    `json:"files"`
	Folders []*MediaFolder `json:"folders"`
}

// MediaTree — корень ответа сканера. Message заполняется, когда
// корневой каталог отсутствует и возвращается пустое дерево.
type MediaTree struct {
	Root    *MediaFolder `json:"root"`
	Message string       `json:"message,omitempty"`
}
