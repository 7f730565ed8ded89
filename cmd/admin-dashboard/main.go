// Точка входа Admin Dashboard — панель администратора спортивной платформы.
// Загружает конфигурацию, создаёт клиент backend API, загрузчик файлов,
// проверку токенов и сессии, обработчики страниц, мониторинг зависимостей
// (topologymetrics) и HTTP-сервер с graceful shutdown.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/ahmad115kobane-wq/adminapp/internal/api/handlers"
	"github.com/ahmad115kobane-wq/adminapp/internal/apiclient"
	"github.com/ahmad115kobane-wq/adminapp/internal/config"
	"github.com/ahmad115kobane-wq/adminapp/internal/server"
	"github.com/ahmad115kobane-wq/adminapp/internal/service"
	"github.com/ahmad115kobane-wq/adminapp/internal/ui/auth"
	uihandlers "github.com/ahmad115kobane-wq/adminapp/internal/ui/handlers"
	"github.com/ahmad115kobane-wq/adminapp/internal/ui/i18n"
	uimiddleware "github.com/ahmad115kobane-wq/adminapp/internal/ui/middleware"
	"github.com/ahmad115kobane-wq/adminapp/internal/ui/state"
	"github.com/ahmad115kobane-wq/adminapp/internal/upload"
)

// jwksRefreshInterval — период фонового обновления ключей JWKS.
const jwksRefreshInterval = time.Hour

func main() {
	// 1. Файл .env (если есть) и конфигурация из переменных окружения
	dotEnvLoaded, err := config.LoadDotEnv(config.DotEnvFile)
	if err != nil {
		slog.Error("Ошибка чтения .env", slog.String("error", err.Error()))
		os.Exit(1)
	}
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Ошибка загрузки конфигурации", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 2. Настройка логирования
	logger := config.SetupLogger(cfg)
	logger.Info("Admin Dashboard запускается",
		slog.String("version", config.Version),
		slog.Int("port", cfg.Port),
		slog.String("api_url", cfg.APIURL),
		slog.String("timezone", cfg.Timezone),
		slog.Bool("dotenv", dotEnvLoaded),
	)

	if os.Getenv("AD_DEPHEALTH_GROUP") == "" {
		logger.Warn("AD_DEPHEALTH_GROUP не задана, используется значение по умолчанию",
			slog.String("default", cfg.DephealthGroup),
		)
	}

	// 3. Каталоги переводов
	bundle := i18n.Init(logger)
	if err := i18n.LoadFromEmbedFS(bundle, logger); err != nil {
		logger.Error("Ошибка загрузки переводов", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 4. Клиент backend API (без токена; токен сессии подставляется на запрос)
	api, err := apiclient.New(cfg.APIURL, cfg.APICACertPath, cfg.APITimeout, logger)
	if err != nil {
		logger.Error("Ошибка создания клиента API", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()

	// 5. Загрузка файлов: через backend или напрямую в S3
	var uploads upload.Factory = upload.BackendFactory
	if cfg.UploadBackend == config.UploadBackendS3 {
		s3Uploader, s3Err := upload.NewS3(ctx, upload.S3Config{
			Endpoint:        cfg.S3Endpoint,
			Region:          cfg.S3Region,
			Bucket:          cfg.S3Bucket,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			PublicBaseURL:   cfg.S3PublicURL,
			Prefix:          cfg.S3Prefix,
		}, logger)
		if s3Err != nil {
			logger.Error("Ошибка создания загрузчика S3", slog.String("error", s3Err.Error()))
			os.Exit(1)
		}
		uploads = upload.Shared(s3Uploader)
		logger.Info("Файлы загружаются в S3",
			slog.String("bucket", cfg.S3Bucket),
			slog.String("endpoint", cfg.S3Endpoint),
		)
	}

	// 6. Проверка токена backend (JWKS, общий секрет или без проверки)
	var verifier *auth.TokenVerifier
	switch {
	case cfg.JWTJWKSURL != "":
		verifier, err = auth.NewJWKSVerifier(cfg.JWTJWKSURL, cfg.JWTIssuer, api.HTTPClient(), jwksRefreshInterval, logger)
		if err != nil {
			logger.Error("Ошибка создания проверки JWKS", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("Токены backend проверяются по JWKS", slog.String("jwks_url", cfg.JWTJWKSURL))
	case cfg.JWTSecret != "":
		verifier = auth.NewHMACVerifier(cfg.JWTSecret, cfg.JWTIssuer)
		logger.Info("Токены backend проверяются общим секретом")
	default:
		logger.Warn("Подпись токенов backend не проверяется (AD_JWT_JWKS_URL и AD_JWT_SECRET не заданы)")
	}

	// 7. Сессии операторов
	sessionMgr, err := auth.NewSessionManager(cfg.SessionSecret, cfg.SecureCookie, cfg.SessionTTL, nil)
	if err != nil {
		logger.Error("Ошибка создания Session Manager", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if cfg.SessionSecret == "" {
		logger.Warn("AD_SESSION_SECRET не задан, сессии не сохраняются между рестартами")
	}
	authenticator := auth.NewAuthenticator(api, verifier, sessionMgr, cfg.AllowedRoles, logger)

	// 8. Состояние страниц и обработчики
	pageStore := state.New(cfg.PageStateSize, cfg.PageStateTTL)
	pageDeps := &uihandlers.PageDeps{
		API:            api,
		Uploads:        uploads,
		Store:          pageStore,
		Location:       cfg.Location,
		EventLimit:     cfg.EventLogLimit,
		MaxUploadBytes: cfg.MaxUploadBytes,
	}
	ui := &server.UIComponents{
		AuthHandler:      uihandlers.NewAuthHandler(authenticator, sessionMgr, pageStore, logger),
		AuthMiddleware:   uimiddleware.NewUIAuth(sessionMgr, logger),
		DashboardHandler: uihandlers.NewDashboardHandler(pageDeps, logger),
		Pages:            uihandlers.Pages(pageDeps, logger),
	}

	// 9. topologymetrics — мониторинг backend API и JWKS
	dephealthSvc, dephealthErr := service.NewDephealthService(service.DephealthConfig{
		ServiceID:     "admin-dashboard",
		Group:         cfg.DephealthGroup,
		APIURL:        cfg.APIURL,
		APIHealthPath: cfg.DephealthHealthPath,
		JWKSURL:       cfg.JWTJWKSURL,
		CheckInterval: cfg.DephealthCheckInterval,
	}, logger)
	var health handlers.DependencyHealth
	if dephealthErr != nil {
		logger.Warn("topologymetrics недоступен, запуск без мониторинга зависимостей",
			slog.String("error", dephealthErr.Error()),
		)
	} else if startErr := dephealthSvc.Start(ctx); startErr != nil {
		logger.Warn("Ошибка запуска topologymetrics",
			slog.String("error", startErr.Error()),
		)
	} else {
		health = dephealthSvc
		logger.Info("topologymetrics запущен",
			slog.String("group", cfg.DephealthGroup),
			slog.String("check_interval", cfg.DephealthCheckInterval.String()),
		)
	}

	// 10. Создание и запуск HTTP-сервера
	srv := server.New(cfg, logger, handlers.NewHealthHandler(health), ui)
	if err := srv.Run(); err != nil {
		logger.Error("Ошибка сервера", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 11. Остановка фоновых задач
	if health != nil {
		dephealthSvc.Stop()
	}

	logger.Info("Admin Dashboard остановлен")
}
