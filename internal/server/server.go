// Пакет server — HTTP-сервер Admin Dashboard с graceful shutdown.
// Без TLS — TLS termination на ingress.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	apierrors "github.com/ahmad115kobane-wq/adminapp/internal/api/errors"
	"github.com/ahmad115kobane-wq/adminapp/internal/api/handlers"
	"github.com/ahmad115kobane-wq/adminapp/internal/api/middleware"
	"github.com/ahmad115kobane-wq/adminapp/internal/config"
	uihandlers "github.com/ahmad115kobane-wq/adminapp/internal/ui/handlers"
	"github.com/ahmad115kobane-wq/adminapp/internal/ui/i18n"
	uimiddleware "github.com/ahmad115kobane-wq/adminapp/internal/ui/middleware"
	"github.com/ahmad115kobane-wq/adminapp/internal/ui/static"
)

// UIComponents — обработчики и middleware страниц панели.
type UIComponents struct {
	AuthHandler      *uihandlers.AuthHandler
	AuthMiddleware   *uimiddleware.UIAuth
	DashboardHandler *uihandlers.DashboardHandler
	// Pages — разделы панели, монтируются под своими префиксами /admin/...
	Pages []uihandlers.Page
}

// Server — HTTP-сервер Admin Dashboard.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
	cfg        *config.Config
}

// New создаёт новый HTTP-сервер с настроенными routes и middleware.
func New(cfg *config.Config, logger *slog.Logger, health *handlers.HealthHandler, ui *UIComponents) *Server {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      NewRouter(cfg, logger, health, ui),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return &Server{
		httpServer: srv,
		logger:     logger,
		cfg:        cfg,
	}
}

// NewRouter собирает маршруты:
//
//	/health/live, /health/ready, /metrics  — публичные, JSON
//	/static/*                              — встроенные стили
//	/admin/login, /admin/set-language      — без сессии
//	/admin/, /admin/logout, /admin/<раздел> — только с сессией
func NewRouter(cfg *config.Config, logger *slog.Logger, health *handlers.HealthHandler, ui *UIComponents) chi.Router {
	router := chi.NewRouter()

	// Глобальные middleware (применяются ко ВСЕМ маршрутам)
	router.Use(middleware.RequestID())
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.RequestLogger(logger))
	router.Use(chimiddleware.Recoverer)

	router.NotFound(apierrors.NotFound)
	router.MethodNotAllowed(apierrors.MethodNotAllowed)

	// Health и metrics проверяются Kubernetes напрямую.
	router.Get("/health/live", health.HealthLive)
	router.Get("/health/ready", health.HealthReady)
	router.Get("/metrics", health.GetMetrics)

	router.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(static.FileSystem())))

	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/admin/", http.StatusFound)
	})

	router.Route("/admin", func(r chi.Router) {
		r.Use(i18n.Middleware(cfg.DefaultLang))

		// Публичные страницы
		r.Get("/login", ui.AuthHandler.HandleLoginPage)
		r.Post("/login", ui.AuthHandler.HandleLogin)
		r.Post("/set-language", uihandlers.HandleSetLanguage)

		// Страницы с сессией
		r.Group(func(r chi.Router) {
			r.Use(ui.AuthMiddleware.Middleware())

			r.Get("/", ui.DashboardHandler.HandleDashboard)
			r.Post("/logout", ui.AuthHandler.HandleLogout)
			for _, p := range ui.Pages {
				r.Route(strings.TrimPrefix(p.Path(), "/admin"), p.Routes)
			}
		})
	})

	return router
}

// Run запускает сервер и ожидает сигнала завершения (SIGINT, SIGTERM).
// При получении сигнала выполняется graceful shutdown.
func (s *Server) Run() error {
	// Канал для ошибок сервера
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info("HTTP-сервер запущен",
			slog.String("addr", s.httpServer.Addr),
		)

		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Ожидание сигнала завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case sig := <-quit:
		s.logger.Info("Получен сигнал завершения", slog.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("ошибка HTTP-сервера: %w", err)
		}
	}

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	s.logger.Info("Выполняется graceful shutdown...")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("ошибка при graceful shutdown: %w", err)
	}

	s.logger.Info("HTTP-сервер остановлен")
	return nil
}
