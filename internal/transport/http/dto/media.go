package dto

import "mime/multipart"

// Имена полей медиа-эндпоинтов повторяют формат админской панели
type DeleteMediaRequest struct {
	FilePath string `json:"filePath" validate:"required"`
}

type MigrateMediaRequest struct {
	SourcePath string `json:"sourcePath" validate:"required"`
	TargetPath string `json:"targetPath" validate:"required"`
}

type MediaUploadInput struct {
	File    *multipart.FileHeader
	SubPath string
}

type MediaUploadResult struct {
	Path string `json:"path"`
	Size int64  `json:"size"`
	URL  string `json:"url"`
}
