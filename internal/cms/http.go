// HTTP API редактора контента: конвертация, предпросмотр, операции над документом, черновики и статьи.
package cms

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fardilk/fardil-cms-site/internal/cms/articles"
	"github.com/fardilk/fardil-cms-site/internal/cms/config"
	"github.com/fardilk/fardil-cms-site/internal/cms/cronmanager"
	"github.com/fardilk/fardil-cms-site/internal/cms/draft"
	"github.com/fardilk/fardil-cms-site/internal/cms/editor"
	"github.com/fardilk/fardil-cms-site/internal/cms/policy"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

type Services struct {
	cfg      *config.Config
	version  string
	drafts   *draft.Service
	articles *articles.Client

	registerer prometheus.Registerer
}

func NewServices(cfg *config.Config, drafts *draft.Service, articlesClient *articles.Client, version string) *Services {
	return &Services{
		cfg:        cfg,
		version:    version,
		drafts:     drafts,
		articles:   articlesClient,
		registerer: prometheus.DefaultRegisterer,
	}
}

func ServerHeader(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Set(echo.HeaderServer, "CMS")
		return next(c)
	}
}

// sanitizer возвращает функцию очистки сырого HTML для предпросмотра или nil, если очистка выключена.
func (s *Services) sanitizer() editor.Sanitizer {
	if !s.cfg.PreviewSanitize {
		return nil
	}
	return policy.SanitizePreview
}

// NewEcho собирает HTTP сервер со всеми маршрутами API.
func (s *Services) NewEcho() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		code := http.StatusInternalServerError
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
		}

		if code == http.StatusNotFound {
			c.NoContent(http.StatusNotFound)
			return
		}
		slog.Error("Unhandled error in endpoint", "url", c.Request().URL, "err", err)
		EErrorMsgStatus(c, nil, code)
	}

	e.Use(ServerHeader)
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowCredentials: true,
	}))
	e.Use(middleware.BodyLimitWithConfig(middleware.BodyLimitConfig{
		Limit: s.cfg.BodyLimit,
	}))
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Level:     9,
		MinLength: 2048,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/api/drafts/assets/:key/"
		},
	}))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "cms",
		Registerer: s.registerer,
	}))
	e.Pre(middleware.AddTrailingSlash())

	e.Validator = NewRequestValidator()

	apiGroup := e.Group("/api/")

	s.AddConvertServices(apiGroup)
	s.AddDocumentServices(apiGroup)
	s.AddDraftServices(apiGroup)
	s.AddArticleServices(apiGroup)

	apiGroup.GET("version/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"version":          s.version,
			"articles":         s.articles != nil,
			"preview_sanitize": s.cfg.PreviewSanitize,
			"list_collapse":    s.cfg.ListCollapsePolicy,
		})
	})

	apiGroup.GET("_health/", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	return e
}

// Server поднимает API, сервер метрик и cron-задачи. Завершается по SIGINT/SIGTERM.
func Server(db *gorm.DB, blobs draft.BlobStore, cfg *config.Config, version string) {
	repo := draft.NewRepository(db)
	if err := repo.Migrate(); err != nil {
		slog.Error("Migrate drafts", "err", err)
		os.Exit(1)
	}
	drafts := draft.NewService(repo, blobs, draft.NewStaging(draft.DefaultStagingTTL))

	var articlesClient *articles.Client
	if cfg.ArticlesAPIURL != "" {
		articlesClient = articles.NewClient(cfg.ArticlesAPIURL, 3)
	}

	s := NewServices(cfg, drafts, articlesClient, version)

	cronManager := cronmanager.NewCronManager(cronmanager.JobRegistry{
		draft.CleanupJobName: draft.CleanupJob(drafts, cfg.DraftTTL()),
	})
	if err := cronManager.LoadJobs(); err != nil {
		slog.Error("Failed to load cron jobs", "err", err)
		os.Exit(1)
	}
	cronManager.Start()

	e := s.NewEcho()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		slog.Info("Shutting down gracefully, press Ctrl+C again to force")
		cronManager.Stop()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown", "err", err)
		}
	}()

	go func() {
		bootTimeGauge := prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "cms",
			Name:      "boot_time",
			Help:      "Server startup time",
		})
		bootTimeGauge.Set(float64(time.Now().UnixMilli()))

		if err := prometheus.Register(bootTimeGauge); err != nil {
			slog.Error("Register boot time gauge", "err", err)
			os.Exit(1)
		}

		metrics := echo.New()
		metrics.HideBanner = true
		metrics.GET("/metrics", echoprometheus.NewHandler())
		if err := metrics.Start(cfg.MetricsAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Metrics server fail", "err", err)
		}
	}()

	slog.Info("Start server", "addr", cfg.ListenAddr, "version", version)
	if err := e.Start(cfg.ListenAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server fail", "err", err)
	}
}
