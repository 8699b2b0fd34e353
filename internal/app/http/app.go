package httpapp

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"artfolio/internal/domain/models"
	appmw "artfolio/internal/middleware"
	httprouters "artfolio/internal/transport/http"
	"artfolio/internal/transport/http/dto/response"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

type Server struct {
	log        *slog.Logger
	e          *echo.Echo
	routers    *httprouters.Routers
	host       string
	port       string
	adminDir   string
	uploadsURL string
	uploadsDir string
}

func New(log *slog.Logger, sessionSecret, host, port, adminDir, uploadsURL, uploadsDir string, routers *httprouters.Routers) *Server {
	e := echo.New()
	e.HideBanner = true

	validate := validator.New()
	e.Validator = &CustomValidator{validator: validate}

	e.Use(session.Middleware(sessions.NewCookieStore([]byte(sessionSecret))))

	e.Use(middleware.CORS())
	e.Use(middleware.Recover())

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogStatus:   true,
		LogRemoteIP: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Info("request",
				slog.String("URI", v.URI),
				slog.Int("status", v.Status),
				slog.String("remote ip", v.RemoteIP),
			)

			return nil
		},
	}))

	e.Use(appmw.PrometheusMetrics)

	return &Server{
		log:        log,
		e:          e,
		routers:    routers,
		host:       host,
		port:       port,
		adminDir:   adminDir,
		uploadsURL: uploadsURL,
		uploadsDir: uploadsDir,
	}
}

func (s *Server) MustRun() {
	const op = "http.Server.MustRun"

	s.log.Info(op, slog.String("Start", "server"))

	if err := s.Start(); err != nil {
		panic(err)
	}
}

func (s *Server) Start() error {
	const op = "http.Server.Start"

	if err := s.e.Start(fmt.Sprintf(":%s", s.port)); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("%s server stopped: %w", op, err)
	}

	return nil
}

func (s *Server) Stop() error {
	const op = "http.Server.Stop"

	optCtx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	s.log.Info("stopping", op, "http server")

	if err := s.e.Shutdown(optCtx); err != nil {
		return fmt.Errorf("%s could not shutdown server gracefuly: %w", op, err)
	}

	return nil
}

// adminOnlyMiddleware закрывает мутирующие маршруты: токен берётся из
// cookie, подпись и серверная запись проверяются на каждый запрос
func (s *Server) adminOnlyMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		sess, err := session.Get(httprouters.SessionCookieName, c)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, response.ErrAuthenticationFailed)
		}

		token, ok := sess.Values["token"].(string)
		if !ok || token == "" {
			return c.JSON(http.StatusUnauthorized, response.ErrAuthenticationFailed)
		}

		valid, err := s.routers.AuthService.Validate(c.Request().Context(), token)
		if err != nil || !valid {
			return c.JSON(http.StatusUnauthorized, response.ErrAuthenticationFailed)
		}

		return next(c)
	}
}

// adminPageMiddleware управляет страницами админки: без живой сессии
// всё уводит на /admin/login, а залогиненного со страницы входа — назад
// в админку
func (s *Server) adminPageMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		valid := false
		if sess, err := session.Get(httprouters.SessionCookieName, c); err == nil {
			if token, ok := sess.Values["token"].(string); ok && token != "" {
				valid, _ = s.routers.AuthService.Validate(c.Request().Context(), token)
			}
		}

		onLoginPage := strings.HasPrefix(c.Request().URL.Path, "/admin/login")

		if valid && onLoginPage {
			return c.Redirect(http.StatusFound, "/admin")
		}
		if !valid && !onLoginPage {
			return c.Redirect(http.StatusFound, "/admin/login")
		}

		return next(c)
	}
}

func (s *Server) BuildRouters() {
	s.e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	s.e.Static(s.uploadsURL, s.uploadsDir)

	admin := s.e.Group("/admin", s.adminPageMiddleware)
	admin.Static("", s.adminDir)

	api := s.e.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/login", s.routers.Login)
			auth.POST("/logout", s.routers.Logout)
		}

		projects := api.Group("/projects")
		{
			projects.GET("", s.routers.ListProjects)
			projects.GET("/:slug", s.routers.GetProjectBySlug)
			projects.POST("", s.routers.CreateProject, s.adminOnlyMiddleware)
			projects.PUT("/:id", s.routers.UpdateProject, s.adminOnlyMiddleware)
			projects.DELETE("/:id", s.routers.DeleteProject, s.adminOnlyMiddleware)
		}

		news := api.Group("/news")
		{
			news.GET("", s.routers.ListNews)
			news.GET("/:slug", s.routers.GetNewsBySlug)
			news.POST("", s.routers.CreateNews, s.adminOnlyMiddleware)
			news.PUT("/:id", s.routers.UpdateNews, s.adminOnlyMiddleware)
			news.DELETE("/:id", s.routers.DeleteNews, s.adminOnlyMiddleware)
		}

		s.buildCategoryRoutes(api.Group("/categories"), s.routers.ProjectCategories)
		s.buildCategoryRoutes(api.Group("/news-categories"), s.routers.NewsCategories)

		publications := api.Group("/publications")
		{
			publications.GET("", s.routers.ListPublications)
			publications.GET("/all", s.routers.ListAllPublications, s.adminOnlyMiddleware)
			publications.POST("", s.routers.CreatePublication, s.adminOnlyMiddleware)
			publications.PUT("/:id", s.routers.UpdatePublication, s.adminOnlyMiddleware)
			publications.DELETE("/:id", s.routers.DeletePublication, s.adminOnlyMiddleware)
		}

		navigation := api.Group("/navigation")
		{
			navigation.GET("", s.routers.ListNavigation)
			navigation.POST("", s.routers.CreateNavigationSet, s.adminOnlyMiddleware)
			navigation.PUT("/:id", s.routers.UpdateNavigationSet, s.adminOnlyMiddleware)
			navigation.DELETE("/:id", s.routers.DeleteNavigationSet, s.adminOnlyMiddleware)
			navigation.POST("/:id/links", s.routers.AddNavigationLink, s.adminOnlyMiddleware)
			// порядок регистрации важен: echo сопоставляет
			// /links/order раньше /links/:linkId
			navigation.PUT("/:id/links/order", s.routers.UpdateNavigationOrder, s.adminOnlyMiddleware)
			navigation.PUT("/:id/links/:linkId", s.routers.UpdateNavigationLink, s.adminOnlyMiddleware)
			navigation.DELETE("/:id/links/:linkId", s.routers.DeleteNavigationLink, s.adminOnlyMiddleware)
		}

		api.GET("/about", s.routers.GetContent(models.ContentIDAbout))
		api.POST("/about", s.routers.SaveContent(models.ContentIDAbout), s.adminOnlyMiddleware)
		api.PUT("/about", s.routers.SaveContent(models.ContentIDAbout), s.adminOnlyMiddleware)

		api.GET("/contact", s.routers.GetContent(models.ContentIDContact))
		api.POST("/contact", s.routers.SaveContent(models.ContentIDContact), s.adminOnlyMiddleware)
		api.PUT("/contact", s.routers.SaveContent(models.ContentIDContact), s.adminOnlyMiddleware)

		media := api.Group("/media", s.adminOnlyMiddleware)
		{
			media.GET("", s.routers.GetMediaTree)
			media.DELETE("/delete", s.routers.DeleteMedia)
			media.POST("/migrate", s.routers.MigrateMedia)
			media.POST("/upload", s.routers.UploadMedia)
		}
	}
}

func (s *Server) buildCategoryRoutes(g *echo.Group, svc httprouters.CategoryService) {
	g.GET("", s.routers.ListCategories(svc))
	g.POST("", s.routers.CreateCategory(svc), s.adminOnlyMiddleware)
	g.PUT("/:id", s.routers.UpdateCategory(svc), s.adminOnlyMiddleware)
	g.DELETE("/:id", s.routers.DeleteCategory(svc), s.adminOnlyMiddleware)
	g.POST("/update-counts", s.routers.UpdateCategoryCounts(svc), s.adminOnlyMiddleware)
}
