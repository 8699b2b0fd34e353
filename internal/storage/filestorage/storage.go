package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"artfolio/internal/domain/models"
	apperrors "artfolio/internal/storage"

	"github.com/dustin/go-humanize"
)

// FileStorage — операции над деревом загрузок. Все относительные пути
// разрешаются внутри базового каталога; выход за его пределы — ошибка.
type FileStorage interface {
	Save(ctx context.Context, file *multipart.FileHeader, subPath string) (filePath string, fileSize int64, err error)
	Delete(ctx context.Context, filePath string) error
	Move(ctx context.Context, sourcePath, targetPath string) error
	Scan(ctx context.Context) (*models.MediaTree, error)
	GetFullPath(relativePath string) (string, error)
	BaseURL() string
	GetBaseDir() string
}

// Расширения, которые админский браузер показывает как изображения
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
	".svg":  true,
}

const skipDirName = "node_modules"

// LocalFileStorage реализация для локальной файловой системы
type LocalFileStorage struct {
	log     *slog.Logger
	baseDir string
	baseURL string
}

func NewLocalFileStorage(log *slog.Logger, baseDir, baseURL string) (*LocalFileStorage, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, err
	}

	return &LocalFileStorage{
		log:     log,
		baseDir: abs,
		baseURL: baseURL,
	}, nil
}

// GetFullPath разрешает относительный путь внутри базового каталога.
// Пути вида "../../etc" отклоняются с ErrPathViolation.
func (s *LocalFileStorage) GetFullPath(relativePath string) (string, error) {
	full := filepath.Clean(filepath.Join(s.baseDir, relativePath))

	if full != s.baseDir && !strings.HasPrefix(full, s.baseDir+string(filepath.Separator)) {
		return "", apperrors.ErrPathViolation
	}

	return full, nil
}

func (s *LocalFileStorage) Save(ctx context.Context, file *multipart.FileHeader, subPath string) (string, int64, error) {
	if err := ctx.Err(); err != nil {
		return "", 0, err
	}

	relPath := filepath.Join(subPath, filepath.Base(file.Filename))
	fullPath, err := s.GetFullPath(relPath)
	if err != nil {
		return "", 0, err
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", 0, fmt.Errorf("failed to create directories: %w", err)
	}

	src, err := file.Open()
	if err != nil {
		return "", 0, fmt.Errorf("failed to open source file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(fullPath)
	if err != nil {
		return "", 0, fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	size, err := io.Copy(dst, src)
	if err != nil {
		_ = os.Remove(fullPath)
		return "", 0, fmt.Errorf("failed to copy file: %w", err)
	}

	return relPath, size, nil
}

// Delete удаляет файл или каталог внутри базового каталога
func (s *LocalFileStorage) Delete(ctx context.Context, filePath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	fullPath, err := s.GetFullPath(filePath)
	if err != nil {
		return err
	}

	info, err := os.Stat(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return apperrors.ErrFileNotFound
		}
		return err
	}

	if info.IsDir() {
		return os.RemoveAll(fullPath)
	}

	return os.Remove(fullPath)
}

// Move переносит файл или каталог; оба конца пути проверяются
func (s *LocalFileStorage) Move(ctx context.Context, sourcePath, targetPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	src, err := s.GetFullPath(sourcePath)
	if err != nil {
		return err
	}

	dst, err := s.GetFullPath(targetPath)
	if err != nil {
		return err
	}

	if _, err := os.Stat(src); err != nil {
		if os.IsNotExist(err) {
			return apperrors.ErrFileNotFound
		}
		return err
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("failed to create target directories: %w", err)
	}

	return os.Rename(src, dst)
}

// Scan строит дерево каталога загрузок. Отсутствующий корень — не
// ошибка: возвращается пустое дерево с пояснением. Нечитаемые записи
// логируются и пропускаются.
func (s *LocalFileStorage) Scan(ctx context.Context) (*models.MediaTree, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if _, err := os.Stat(s.baseDir); os.IsNotExist(err) {
		return &models.MediaTree{
			Root:    &models.MediaFolder{Name: filepath.Base(s.baseDir), Path: "", Files: []models.MediaFile{}, Folders: []*models.MediaFolder{}},
			Message: "uploads directory does not exist yet",
		}, nil
	}

	root := s.scanFolder(s.baseDir, "")

	return &models.MediaTree{Root: root}, nil
}

func (s *LocalFileStorage) scanFolder(dir, relPath string) *models.MediaFolder {
	folder := &models.MediaFolder{
		Name:    filepath.Base(dir),
		Path:    relPath,
		Files:   []models.MediaFile{},
		Folders: []*models.MediaFolder{},
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		s.log.Warn("skipping unreadable directory",
			slog.String("path", dir),
			slog.String("error", err.Error()))
		return folder
	}

	// os.ReadDir возвращает записи, отсортированные по имени
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") || name == skipDirName {
			continue
		}

		entryRel := filepath.Join(relPath, name)

		if entry.IsDir() {
			folder.Folders = append(folder.Folders, s.scanFolder(filepath.Join(dir, name), entryRel))
			continue
		}

		info, err := entry.Info()
		if err != nil {
			s.log.Warn("skipping unreadable entry",
				slog.String("path", entryRel),
				slog.String("error", err.Error()))
			continue
		}

		folder.Files = append(folder.Files, models.MediaFile{
			Name:     name,
			Path:     entryRel,
			Type:     classifyFile(name),
			Size:     humanize.Bytes(uint64(info.Size())),
			Modified: info.ModTime(),
		})
	}

	return folder
}

func classifyFile(name string) models.MediaEntryType {
	if imageExtensions[strings.ToLower(filepath.Ext(name))] {
		return models.MediaEntryTypeImage
	}
	return models.MediaEntryTypeDocument
}

// BaseURL возвращает базовый URL для доступа к файлам
func (s *LocalFileStorage) BaseURL() string {
	return s.baseURL
}

func (s *LocalFileStorage) GetBaseDir() string {
	return s.baseDir
}

var _ FileStorage = (*LocalFileStorage)(nil)
