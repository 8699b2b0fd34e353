package app

import (
	"context"
	"fmt"
	"log/slog"

	httpapp "artfolio/internal/app/http"
	"artfolio/internal/config"
	"artfolio/internal/domain/models"
	"artfolio/internal/repository"
	authservice "artfolio/internal/services/auth_service"
	categoryservice "artfolio/internal/services/category_service"
	contentservice "artfolio/internal/services/content_service"
	mediaservice "artfolio/internal/services/media_service"
	navigationservice "artfolio/internal/services/navigation_service"
	newsservice "artfolio/internal/services/news_service"
	projectservice "artfolio/internal/services/project_service"
	publicationservice "artfolio/internal/services/publication_service"
	filestorage "artfolio/internal/storage/filestorage"
	"artfolio/internal/storage/postgresql"
	redisapp "artfolio/internal/storage/redis"
	httprouters "artfolio/internal/transport/http"
)

type App struct {
	HTTPServer *httpapp.Server

	db    *postgresql.Storage
	redis *redisapp.Client
}

// New собирает приложение целиком: схема БД применяется здесь, до
// старта HTTP-сервера, а не лениво на первом запросе
func New(ctx context.Context, log *slog.Logger, cfg *config.Config) (*App, error) {
	const op = "app.New"

	db, err := postgresql.New(ctx, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := db.Bootstrap(ctx); err != nil {
		db.Stop()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	redisClient := redisapp.NewClient(cfg.Redis.RedisAddr, cfg.Redis.RedisPassword, cfg.Redis.RedisDB)
	if err := redisClient.HealthCheck(ctx); err != nil {
		db.Stop()
		return nil, fmt.Errorf("%s: redis is not reachable: %w", op, err)
	}

	repo := repository.NewRepository(db.Pool())

	fileStorage, err := filestorage.NewLocalFileStorage(log, cfg.FileStorage.BaseDir, cfg.FileStorage.BaseURL)
	if err != nil {
		db.Stop()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	sessionRepo := repository.NewRedisSessionRepo(redisClient)

	routers := httprouters.NewRouter(
		log,
		projectservice.NewProjectService(log, repo.Project),
		newsservice.NewNewsService(log, repo.News),
		categoryservice.NewCategoryService(log, models.CategoryKindProject, repo.ProjectCategory),
		categoryservice.NewCategoryService(log, models.CategoryKindNews, repo.NewsCategory),
		publicationservice.NewPublicationService(log, repo.Publication),
		navigationservice.NewNavigationService(log, repo.Navigation),
		contentservice.NewContentService(log, repo.Content),
		mediaservice.NewMediaService(log, fileStorage, cfg.MediaCache.TTL),
		authservice.NewAuthService(log, sessionRepo, cfg.Admin.Username, cfg.Admin.PasswordHash, cfg.Session.Secret),
	)

	server := httpapp.New(
		log,
		cfg.Session.Secret,
		cfg.HTTP.Host,
		cfg.HTTP.Port,
		cfg.HTTP.AdminDir,
		cfg.FileStorage.BaseURL,
		cfg.FileStorage.BaseDir,
		routers,
	)

	return &App{
		HTTPServer: server,
		db:         db,
		redis:      redisClient,
	}, nil
}

func (a *App) Stop(log *slog.Logger) {
	if err := a.HTTPServer.Stop(); err != nil {
		log.Error("failed to stop http server", slog.String("error", err.Error()))
	}

	a.db.Stop()

	if err := a.redis.Close(); err != nil {
		log.Error("failed to close redis client", slog.String("error", err.Error()))
	}
}
