package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"artfolio/internal/domain/models"
	"artfolio/internal/lib/logger/sl"
	"artfolio/internal/lib/slugify"
	"artfolio/internal/storage"
	"artfolio/internal/transport/http/dto"
	"artfolio/internal/transport/http/dto/request"
	"artfolio/internal/transport/http/dto/response"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
)

const SessionCookieName = "admin_session"

type ProjectService interface {
	GetAll(ctx context.Context) ([]models.Project, error)
	GetBySlug(ctx context.Context, slug string) (*models.Project, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error)
	Create(ctx context.Context, req dto.CreateProjectRequest) (*models.Project, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateProjectRequest) (*models.Project, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type NewsService interface {
	GetAll(ctx context.Context) ([]models.NewsItem, error)
	GetBySlug(ctx context.Context, slug string) (*models.NewsItem, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.NewsItem, error)
	Create(ctx context.Context, req dto.CreateNewsRequest) (*models.NewsItem, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateNewsRequest) (*models.NewsItem, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type CategoryService interface {
	GetAll(ctx context.Context) ([]models.Category, error)
	Create(ctx context.Context, req dto.CreateCategoryRequest) (*models.Category, error)
	Rename(ctx context.Context, id uuid.UUID, req dto.UpdateCategoryRequest) (*models.Category, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	UpdateCounts(ctx context.Context) error
}

type PublicationService interface {
	GetAll(ctx context.Context) ([]models.Publication, error)
	GetAllIncludingDrafts(ctx context.Context) ([]models.Publication, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Publication, error)
	Create(ctx context.Context, req dto.CreatePublicationRequest) (*models.Publication, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdatePublicationRequest) (*models.Publication, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type NavigationService interface {
	GetAll(ctx context.Context) ([]models.NavigationSet, error)
	GetByArea(ctx context.Context, area models.NavigationArea) ([]models.NavigationSet, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.NavigationSet, error)
	CreateSet(ctx context.Context, req dto.CreateNavigationSetRequest) (*models.NavigationSet, error)
	UpdateSet(ctx context.Context, id uuid.UUID, req dto.UpdateNavigationSetRequest) (*models.NavigationSet, error)
	DeleteSet(ctx context.Context, id uuid.UUID) (bool, error)
	AddLink(ctx context.Context, setID uuid.UUID, req dto.AddLinkRequest) (*models.NavigationSet, error)
	UpdateLink(ctx context.Context, setID, linkID uuid.UUID, req dto.UpdateLinkRequest) (*models.NavigationSet, error)
	DeleteLink(ctx context.Context, setID, linkID uuid.UUID) (*models.NavigationSet, error)
	UpdateOrder(ctx context.Context, setID uuid.UUID, req dto.UpdateOrderRequest) (*models.NavigationSet, error)
}

type ContentService interface {
	Get(ctx context.Context, id string) (*models.PageContent, error)
	Save(ctx context.Context, id string, req dto.SaveContentRequest) (*models.PageContent, error)
}

type MediaService interface {
	GetTree(ctx context.Context) (*models.MediaTree, error)
	Delete(ctx context.Context, filePath string) error
	Migrate(ctx context.Context, sourcePath, targetPath string) error
	Upload(ctx context.Context, input dto.MediaUploadInput) (*dto.MediaUploadResult, error)
}

type AuthService interface {
	Login(ctx context.Context, username, password string) (*models.AdminSession, error)
	Validate(ctx context.Context, token string) (bool, error)
	Logout(ctx context.Context, token string) error
}

type Routers struct {
	log                *slog.Logger
	ProjectService     ProjectService
	NewsService        NewsService
	ProjectCategories  CategoryService
	NewsCategories     CategoryService
	PublicationService PublicationService
	NavigationService  NavigationService
	ContentService     ContentService
	MediaService       MediaService
	AuthService        AuthService
}

func NewRouter(
	log *slog.Logger,
	projectService ProjectService,
	newsService NewsService,
	projectCategories CategoryService,
	newsCategories CategoryService,
	publicationService PublicationService,
	navigationService NavigationService,
	contentService ContentService,
	mediaService MediaService,
	authService AuthService,
) *Routers {
	return &Routers{
		log:                log,
		ProjectService:     projectService,
		NewsService:        newsService,
		ProjectCategories:  projectCategories,
		NewsCategories:     newsCategories,
		PublicationService: publicationService,
		NavigationService:  navigationService,
		ContentService:     contentService,
		MediaService:       mediaService,
		AuthService:        authService,
	}
}

// ----------------------------------------------------------------------------
// Auth

// Login проверяет учётные данные и кладёт подписанный токен в httpOnly cookie
func (r *Routers) Login(c echo.Context) error {
	const op = "http.routers.Login"

	log := r.log.With(
		slog.String("op", op),
	)

	var req request.LoginRequest

	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		log.Warn("invalid format request", slog.String("username", req.Username))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	adminSession, err := r.AuthService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidCredentials) {
			return c.JSON(http.StatusUnauthorized, response.ErrAuthenticationFailed)
		}

		log.Error("login failed", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	sess, _ := session.Get(SessionCookieName, c)
	sess.Options.HttpOnly = true
	sess.Options.Path = "/"
	sess.Options.SameSite = http.SameSiteLaxMode
	sess.Options.MaxAge = int((7 * 24 * time.Hour).Seconds())
	sess.Values["token"] = adminSession.Token

	if err := sess.Save(c.Request(), c.Response()); err != nil {
		log.Error("failed to save session cookie", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	// токен живёт только в httpOnly cookie, в тело он не попадает
	return c.JSON(http.StatusOK, response.SuccessResponse(map[string]string{
		"username": adminSession.Username,
	}))
}

// Logout отзывает серверную сессию и гасит cookie
func (r *Routers) Logout(c echo.Context) error {
	const op = "http.routers.Logout"

	log := r.log.With(
		slog.String("op", op),
	)

	sess, _ := session.Get(SessionCookieName, c)

	if token, ok := sess.Values["token"].(string); ok && token != "" {
		if err := r.AuthService.Logout(c.Request().Context(), token); err != nil {
			log.Error("failed to revoke session", sl.Err(err))
			return c.JSON(http.StatusInternalServerError, response.ErrInternal)
		}
	}

	sess.Values["token"] = ""
	sess.Options.MaxAge = -1
	sess.Options.Path = "/"

	if err := sess.Save(c.Request(), c.Response()); err != nil {
		log.Error("failed to expire session cookie", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(nil))
}

// ----------------------------------------------------------------------------
// Projects

func (r *Routers) ListProjects(c echo.Context) error {
	const op = "http.routers.ListProjects"

	projects, err := r.ProjectService.GetAll(c.Request().Context())
	if err != nil {
		r.log.Error("failed to list projects", slog.String("op", op), sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(projects))
}

func (r *Routers) GetProjectBySlug(c echo.Context) error {
	const op = "http.routers.GetProjectBySlug"

	project, err := r.ProjectService.GetBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		r.log.Error("failed to get project", slog.String("op", op), sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	if project == nil {
		return c.JSON(http.StatusNotFound, response.ErrRecordNotFound)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(project))
}

func (r *Routers) CreateProject(c echo.Context) error {
	const op = "http.routers.CreateProject"

	log := r.log.With(
		slog.String("op", op),
	)

	var req dto.CreateProjectRequest

	if err := c.Bind(&req); err != nil {
		log.Error("failed to bind request", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	project, err := r.ProjectService.Create(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, storage.ErrDuplicateSlug) {
			slug := req.Slug
			if slug == "" {
				slug = slugify.Make(req.Title)
			}
			log.Warn("duplicate project slug", slog.String("slug", slug))
			return c.JSON(http.StatusBadRequest, response.DuplicateSlugResponse(slug))
		}

		log.Error("failed to create project", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	return c.JSON(http.StatusCreated, response.SuccessResponse(project))
}

func (r *Routers) UpdateProject(c echo.Context) error {
	const op = "http.routers.UpdateProject"

	log := r.log.With(
		slog.String("op", op),
	)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "invalid id format"))
	}

	var req dto.UpdateProjectRequest

	if err := c.Bind(&req); err != nil {
		log.Error("failed to bind request", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	project, err := r.ProjectService.Update(c.Request().Context(), id, req)
	if err != nil {
		if errors.Is(err, storage.ErrDuplicateSlug) && req.Slug != nil {
			return c.JSON(http.StatusBadRequest, response.DuplicateSlugResponse(*req.Slug))
		}

		log.Error("failed to update project", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	if project == nil {
		return c.JSON(http.StatusNotFound, response.ErrRecordNotFound)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(project))
}

func (r *Routers) DeleteProject(c echo.Context) error {
	const op = "http.routers.DeleteProject"

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "invalid id format"))
	}

	deleted, err := r.ProjectService.Delete(c.Request().Context(), id)
	if err != nil {
		r.log.Error("failed to delete project", slog.String("op", op), sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	if !deleted {
		return c.JSON(http.StatusNotFound, response.ErrRecordNotFound)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(nil))
}

// ----------------------------------------------------------------------------
// News

func (r *Routers) ListNews(c echo.Context) error {
	const op = "http.routers.ListNews"

	items, err := r.NewsService.GetAll(c.Request().Context())
	if err != nil {
		r.log.Error("failed to list news", slog.String("op", op), sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(items))
}

func (r *Routers) GetNewsBySlug(c echo.Context) error {
	const op = "http.routers.GetNewsBySlug"

	item, err := r.NewsService.GetBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		r.log.Error("failed to get news item", slog.String("op", op), sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	if item == nil {
		return c.JSON(http.StatusNotFound, response.ErrRecordNotFound)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(item))
}

func (r *Routers) CreateNews(c echo.Context) error {
	const op = "http.routers.CreateNews"

	log := r.log.With(
		slog.String("op", op),
	)

	var req dto.CreateNewsRequest

	if err := c.Bind(&req); err != nil {
		log.Error("failed to bind request", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	item, err := r.NewsService.Create(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, storage.ErrDuplicateSlug) {
			slug := req.Slug
			if slug == "" {
				slug = slugify.Make(req.Title)
			}
			log.Warn("duplicate news slug", slog.String("slug", slug))
			return c.JSON(http.StatusBadRequest, response.DuplicateSlugResponse(slug))
		}

		log.Error("failed to create news item", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	return c.JSON(http.StatusCreated, response.SuccessResponse(item))
}

func (r *Routers) UpdateNews(c echo.Context) error {
	const op = "http.routers.UpdateNews"

	log := r.log.With(
		slog.String("op", op),
	)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "invalid id format"))
	}

	var req dto.UpdateNewsRequest

	if err := c.Bind(&req); err != nil {
		log.Error("failed to bind request", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	item, err := r.NewsService.Update(c.Request().Context(), id, req)
	if err != nil {
		if errors.Is(err, storage.ErrDuplicateSlug) && req.Slug != nil {
			return c.JSON(http.StatusBadRequest, response.DuplicateSlugResponse(*req.Slug))
		}

		log.Error("failed to update news item", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	if item == nil {
		return c.JSON(http.StatusNotFound, response.ErrRecordNotFound)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(item))
}

func (r *Routers) DeleteNews(c echo.Context) error {
	const op = "http.routers.DeleteNews"

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "invalid id format"))
	}

	deleted, err := r.NewsService.Delete(c.Request().Context(), id)
	if err != nil {
		r.log.Error("failed to delete news item", slog.String("op", op), sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	if !deleted {
		return c.JSON(http.StatusNotFound, response.ErrRecordNotFound)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(nil))
}

// ----------------------------------------------------------------------------
// Categories
//
// Один набор обработчиков на оба вида: сервис выбирается при регистрации
// маршрутов

func (r *Routers) ListCategories(svc CategoryService) echo.HandlerFunc {
	return func(c echo.Context) error {
		const op = "http.routers.ListCategories"

		categories, err := svc.GetAll(c.Request().Context())
		if err != nil {
			r.log.Error("failed to list categories", slog.String("op", op), sl.Err(err))
			return c.JSON(http.StatusInternalServerError, response.ErrInternal)
		}

		return c.JSON(http.StatusOK, response.SuccessResponse(categories))
	}
}

func (r *Routers) CreateCategory(svc CategoryService) echo.HandlerFunc {
	return func(c echo.Context) error {
		const op = "http.routers.CreateCategory"

		log := r.log.With(
			slog.String("op", op),
		)

		var req dto.CreateCategoryRequest

		if err := c.Bind(&req); err != nil {
			log.Error("failed to bind request", sl.Err(err))
			return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
		}

		if err := c.Validate(req); err != nil {
			return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
		}

		category, err := svc.Create(c.Request().Context(), req)
		if err != nil {
			if errors.Is(err, storage.ErrDuplicateSlug) {
				log.Warn("duplicate category name", slog.String("name", req.Name))
				return c.JSON(http.StatusBadRequest, response.DuplicateSlugResponse(req.Name))
			}

			log.Error("failed to create category", sl.Err(err))
			return c.JSON(http.StatusInternalServerError, response.ErrInternal)
		}

		return c.JSON(http.StatusCreated, response.SuccessResponse(category))
	}
}

func (r *Routers) UpdateCategory(svc CategoryService) echo.HandlerFunc {
	return func(c echo.Context) error {
		const op = "http.routers.UpdateCategory"

		log := r.log.With(
			slog.String("op", op),
		)

		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "invalid id format"))
		}

		var req dto.UpdateCategoryRequest

		if err := c.Bind(&req); err != nil {
			log.Error("failed to bind request", sl.Err(err))
			return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
		}

		if err := c.Validate(req); err != nil {
			return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
		}

		category, err := svc.Rename(c.Request().Context(), id, req)
		if err != nil {
			if errors.Is(err, storage.ErrDuplicateSlug) {
				return c.JSON(http.StatusBadRequest, response.DuplicateSlugResponse(req.Name))
			}

			log.Error("failed to rename category", sl.Err(err))
			return c.JSON(http.StatusInternalServerError, response.ErrInternal)
		}

		if category == nil {
			return c.JSON(http.StatusNotFound, response.ErrRecordNotFound)
		}

		return c.JSON(http.StatusOK, response.SuccessResponse(category))
	}
}

func (r *Routers) DeleteCategory(svc CategoryService) echo.HandlerFunc {
	return func(c echo.Context) error {
		const op = "http.routers.DeleteCategory"

		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "invalid id format"))
		}

		deleted, err := svc.Delete(c.Request().Context(), id)
		if err != nil {
			r.log.Error("failed to delete category", slog.String("op", op), sl.Err(err))
			return c.JSON(http.StatusInternalServerError, response.ErrInternal)
		}

		if !deleted {
			return c.JSON(http.StatusNotFound, response.ErrRecordNotFound)
		}

		return c.JSON(http.StatusOK, response.SuccessResponse(nil))
	}
}

func (r *Routers) UpdateCategoryCounts(svc CategoryService) echo.HandlerFunc {
	return func(c echo.Context) error {
		const op = "http.routers.UpdateCategoryCounts"

		if err := svc.UpdateCounts(c.Request().Context()); err != nil {
			r.log.Error("failed to update category counts", slog.String("op", op), sl.Err(err))
			return c.JSON(http.StatusInternalServerError, response.ErrInternal)
		}

		categories, err := svc.GetAll(c.Request().Context())
		if err != nil {
			r.log.Error("failed to list categories", slog.String("op", op), sl.Err(err))
			return c.JSON(http.StatusInternalServerError, response.ErrInternal)
		}

		return c.JSON(http.StatusOK, response.SuccessResponse(categories))
	}
}

// ----------------------------------------------------------------------------
// Publications

func (r *Routers) ListPublications(c echo.Context) error {
	const op = "http.routers.ListPublications"

	publications, err := r.PublicationService.GetAll(c.Request().Context())
	if err != nil {
		r.log.Error("failed to list publications", slog.String("op", op), sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(publications))
}

// ListAllPublications отдаёт и черновики; маршрут закрыт админским гейтом
func (r *Routers) ListAllPublications(c echo.Context) error {
	const op = "http.routers.ListAllPublications"

	publications, err := r.PublicationService.GetAllIncludingDrafts(c.Request().Context())
	if err != nil {
		r.log.Error("failed to list publications", slog.String("op", op), sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(publications))
}

func (r *Routers) CreatePublication(c echo.Context) error {
	const op = "http.routers.CreatePublication"

	log := r.log.With(
		slog.String("op", op),
	)

	var req dto.CreatePublicationRequest

	if err := c.Bind(&req); err != nil {
		log.Error("failed to bind request", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	publication, err := r.PublicationService.Create(c.Request().Context(), req)
	if err != nil {
		log.Error("failed to create publication", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	return c.JSON(http.StatusCreated, response.SuccessResponse(publication))
}

func (r *Routers) UpdatePublication(c echo.Context) error {
	const op = "http.routers.UpdatePublication"

	log := r.log.With(
		slog.String("op", op),
	)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "invalid id format"))
	}

	var req dto.UpdatePublicationRequest

	if err := c.Bind(&req); err != nil {
		log.Error("failed to bind request", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	publication, err := r.PublicationService.Update(c.Request().Context(), id, req)
	if err != nil {
		log.Error("failed to update publication", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	if publication == nil {
		return c.JSON(http.StatusNotFound, response.ErrRecordNotFound)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(publication))
}

func (r *Routers) DeletePublication(c echo.Context) error {
	const op = "http.routers.DeletePublication"

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "invalid id format"))
	}

	deleted, err := r.PublicationService.Delete(c.Request().Context(), id)
	if err != nil {
		r.log.Error("failed to delete publication", slog.String("op", op), sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	if !deleted {
		return c.JSON(http.StatusNotFound, response.ErrRecordNotFound)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(nil))
}

// ----------------------------------------------------------------------------
// Navigation

// ListNavigation отдаёт все наборы либо фильтрует по ?area=
func (r *Routers) ListNavigation(c echo.Context) error {
	const op = "http.routers.ListNavigation"

	ctx := c.Request().Context()

	if areaParam := c.QueryParam("area"); areaParam != "" {
		area := models.NavigationArea(areaParam)
		if !area.Valid() {
			return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "unknown navigation area"))
		}

		sets, err := r.NavigationService.GetByArea(ctx, area)
		if err != nil {
			r.log.Error("failed to list navigation sets", slog.String("op", op), sl.Err(err))
			return c.JSON(http.StatusInternalServerError, response.ErrInternal)
		}

		return c.JSON(http.StatusOK, response.SuccessResponse(sets))
	}

	sets, err := r.NavigationService.GetAll(ctx)
	if err != nil {
		r.log.Error("failed to list navigation sets", slog.String("op", op), sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(sets))
}

func (r *Routers) CreateNavigationSet(c echo.Context) error {
	const op = "http.routers.CreateNavigationSet"

	log := r.log.With(
		slog.String("op", op),
	)

	var req dto.CreateNavigationSetRequest

	if err := c.Bind(&req); err != nil {
		log.Error("failed to bind request", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	set, err := r.NavigationService.CreateSet(c.Request().Context(), req)
	if err != nil {
		log.Error("failed to create navigation set", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	return c.JSON(http.StatusCreated, response.SuccessResponse(set))
}

func (r *Routers) UpdateNavigationSet(c echo.Context) error {
	const op = "http.routers.UpdateNavigationSet"

	log := r.log.With(
		slog.String("op", op),
	)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "invalid id format"))
	}

	var req dto.UpdateNavigationSetRequest

	if err := c.Bind(&req); err != nil {
		log.Error("failed to bind request", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	set, err := r.NavigationService.UpdateSet(c.Request().Context(), id, req)
	if err != nil {
		log.Error("failed to update navigation set", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	if set == nil {
		return c.JSON(http.StatusNotFound, response.ErrRecordNotFound)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(set))
}

func (r *Routers) DeleteNavigationSet(c echo.Context) error {
	const op = "http.routers.DeleteNavigationSet"

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "invalid id format"))
	}

	deleted, err := r.NavigationService.DeleteSet(c.Request().Context(), id)
	if err != nil {
		r.log.Error("failed to delete navigation set", slog.String("op", op), sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	if !deleted {
		return c.JSON(http.StatusNotFound, response.ErrRecordNotFound)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(nil))
}

func (r *Routers) AddNavigationLink(c echo.Context) error {
	const op = "http.routers.AddNavigationLink"

	log := r.log.With(
		slog.String("op", op),
	)

	setID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "invalid id format"))
	}

	var req dto.AddLinkRequest

	if err := c.Bind(&req); err != nil {
		log.Error("failed to bind request", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	set, err := r.NavigationService.AddLink(c.Request().Context(), setID, req)
	if err != nil {
		log.Error("failed to add navigation link", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	if set == nil {
		return c.JSON(http.StatusNotFound, response.ErrRecordNotFound)
	}

	return c.JSON(http.StatusCreated, response.SuccessResponse(set))
}

func (r *Routers) UpdateNavigationLink(c echo.Context) error {
	const op = "http.routers.UpdateNavigationLink"

	log := r.log.With(
		slog.String("op", op),
	)

	setID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "invalid id format"))
	}

	linkID, err := uuid.Parse(c.Param("linkId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "invalid link id format"))
	}

	var req dto.UpdateLinkRequest

	if err := c.Bind(&req); err != nil {
		log.Error("failed to bind request", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	set, err := r.NavigationService.UpdateLink(c.Request().Context(), setID, linkID, req)
	if err != nil {
		if errors.Is(err, storage.ErrLinkNotFound) {
			return c.JSON(http.StatusNotFound, response.ErrRecordNotFound)
		}

		log.Error("failed to update navigation link", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	if set == nil {
		return c.JSON(http.StatusNotFound, response.ErrRecordNotFound)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(set))
}

func (r *Routers) DeleteNavigationLink(c echo.Context) error {
	const op = "http.routers.DeleteNavigationLink"

	setID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "invalid id format"))
	}

	linkID, err := uuid.Parse(c.Param("linkId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "invalid link id format"))
	}

	set, err := r.NavigationService.DeleteLink(c.Request().Context(), setID, linkID)
	if err != nil {
		if errors.Is(err, storage.ErrLinkNotFound) {
			return c.JSON(http.StatusNotFound, response.ErrRecordNotFound)
		}

		r.log.Error("failed to delete navigation link", slog.String("op", op), sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	if set == nil {
		return c.JSON(http.StatusNotFound, response.ErrRecordNotFound)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(set))
}

func (r *Routers) UpdateNavigationOrder(c echo.Context) error {
	const op = "http.routers.UpdateNavigationOrder"

	log := r.log.With(
		slog.String("op", op),
	)

	setID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "invalid id format"))
	}

	var req dto.UpdateOrderRequest

	if err := c.Bind(&req); err != nil {
		log.Error("failed to bind request", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	set, err := r.NavigationService.UpdateOrder(c.Request().Context(), setID, req)
	if err != nil {
		log.Error("failed to reorder navigation links", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	if set == nil {
		return c.JSON(http.StatusNotFound, response.ErrRecordNotFound)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(set))
}

// ----------------------------------------------------------------------------
// Page content (about / contact)

// GetContent и SaveContent параметризованы фиксированным id страницы
func (r *Routers) GetContent(contentID string) echo.HandlerFunc {
	return func(c echo.Context) error {
		const op = "http.routers.GetContent"

		content, err := r.ContentService.Get(c.Request().Context(), contentID)
		if err != nil {
			r.log.Error("failed to get page content", slog.String("op", op), sl.Err(err))
			return c.JSON(http.StatusInternalServerError, response.ErrInternal)
		}

		if content == nil {
			return c.JSON(http.StatusNotFound, response.ErrRecordNotFound)
		}

		return c.JSON(http.StatusOK, response.SuccessResponse(content))
	}
}

func (r *Routers) SaveContent(contentID string) echo.HandlerFunc {
	return func(c echo.Context) error {
		const op = "http.routers.SaveContent"

		log := r.log.With(
			slog.String("op", op),
			slog.String("content_id", contentID),
		)

		var req dto.SaveContentRequest

		if err := c.Bind(&req); err != nil {
			log.Error("failed to bind request", sl.Err(err))
			return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
		}

		if err := c.Validate(req); err != nil {
			return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
		}

		content, err := r.ContentService.Save(c.Request().Context(), contentID, req)
		if err != nil {
			log.Error("failed to save page content", sl.Err(err))
			return c.JSON(http.StatusInternalServerError, response.ErrInternal)
		}

		return c.JSON(http.StatusOK, response.SuccessResponse(content))
	}
}

// ----------------------------------------------------------------------------
// Media

func (r *Routers) GetMediaTree(c echo.Context) error {
	const op = "http.routers.GetMediaTree"

	tree, err := r.MediaService.GetTree(c.Request().Context())
	if err != nil {
		r.log.Error("failed to scan media tree", slog.String("op", op), sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(tree))
}

func (r *Routers) DeleteMedia(c echo.Context) error {
	const op = "http.routers.DeleteMedia"

	log := r.log.With(
		slog.String("op", op),
	)

	var req dto.DeleteMediaRequest

	if err := c.Bind(&req); err != nil {
		log.Error("failed to bind request", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	if err := r.MediaService.Delete(c.Request().Context(), req.FilePath); err != nil {
		switch {
		case errors.Is(err, storage.ErrPathViolation):
			log.Warn("path escapes uploads root", slog.String("file_path", req.FilePath))
			return c.JSON(http.StatusForbidden, response.ErrPathOutsideUploads)
		case errors.Is(err, storage.ErrFileNotFound):
			return c.JSON(http.StatusNotFound, response.ErrRecordNotFound)
		}

		log.Error("failed to delete media file", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(nil))
}

func (r *Routers) MigrateMedia(c echo.Context) error {
	const op = "http.routers.MigrateMedia"

	log := r.log.With(
		slog.String("op", op),
	)

	var req dto.MigrateMediaRequest

	if err := c.Bind(&req); err != nil {
		log.Error("failed to bind request", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	if err := r.MediaService.Migrate(c.Request().Context(), req.SourcePath, req.TargetPath); err != nil {
		switch {
		case errors.Is(err, storage.ErrPathViolation):
			log.Warn("path escapes uploads root",
				slog.String("source_path", req.SourcePath),
				slog.String("target_path", req.TargetPath),
			)
			return c.JSON(http.StatusForbidden, response.ErrPathOutsideUploads)
		case errors.Is(err, storage.ErrFileNotFound):
			return c.JSON(http.StatusNotFound, response.ErrRecordNotFound)
		}

		log.Error("failed to migrate media file", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(nil))
}

func (r *Routers) UploadMedia(c echo.Context) error {
	const op = "http.routers.UploadMedia"

	log := r.log.With(
		slog.String("op", op),
	)

	startTime := time.Now()

	file, err := c.FormFile("file")
	if err != nil {
		log.Warn("empty file in request", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "file is required"))
	}

	input := dto.MediaUploadInput{
		File:    file,
		SubPath: c.FormValue("path"),
	}

	result, err := r.MediaService.Upload(c.Request().Context(), input)
	if err != nil {
		if errors.Is(err, storage.ErrPathViolation) {
			log.Warn("path escapes uploads root", slog.String("sub_path", input.SubPath))
			return c.JSON(http.StatusForbidden, response.ErrPathOutsideUploads)
		}

		log.Error("failed to upload media file", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	log.Info("upload successfull",
		slog.String("path", result.Path),
		slog.Int64("size", result.Size),
		slog.Duration("duration", time.Since(startTime)),
	)

	return c.JSON(http.StatusCreated, response.SuccessResponse(result))
}
