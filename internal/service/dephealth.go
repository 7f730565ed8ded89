// dephealth.go — интеграция с topologymetrics SDK для мониторинга зависимостей.
//
// Admin Dashboard мониторит:
//   - backend API платформы — HTTP checker (critical)
//   - JWKS endpoint — HTTP checker, если включена проверка подписи токенов (critical)
//
// Метрики доступны на /metrics вместе с остальными Prometheus-метриками:
//   - app_dependency_health — состояние зависимости (1 = ok, 0 = fail)
//   - app_dependency_latency_seconds — задержка проверки
//   - app_dependency_status — категория статуса
//   - app_dependency_status_detail — детальный статус
package service

import (
	"context"
	"log/slog"
	"net/url"
	"time"

	"github.com/BigKAA/topologymetrics/sdk-go/dephealth"
	_ "github.com/BigKAA/topologymetrics/sdk-go/dephealth/checks/httpcheck" // HTTP checker
	"github.com/prometheus/client_golang/prometheus"
)

// DephealthConfig — параметры мониторинга зависимостей.
type DephealthConfig struct {
	// ServiceID — имя вершины графа текущего приложения.
	ServiceID string
	// Group — имя группы в метриках (AD_DEPHEALTH_GROUP).
	Group string
	// APIURL — адрес backend API.
	APIURL string
	// APIHealthPath — путь health check backend.
	APIHealthPath string
	// JWKSURL — адрес JWKS (пустой — зависимость не регистрируется).
	JWKSURL string
	// CheckInterval — интервал проверки (AD_DEPHEALTH_CHECK_INTERVAL).
	CheckInterval time.Duration
}

// DephealthService — сервис мониторинга зависимостей через topologymetrics.
type DephealthService struct {
	dh     *dephealth.DepHealth
	logger *slog.Logger
}

// NewDephealthService создаёт сервис мониторинга зависимостей.
// Метрики регистрируются в глобальном Prometheus registry.
func NewDephealthService(cfg DephealthConfig, logger *slog.Logger) (*DephealthService, error) {
	return newDephealthService(cfg, logger)
}

// NewDephealthServiceWithRegisterer создаёт сервис с указанным Prometheus registerer.
// Используется в тестах для изоляции метрик.
func NewDephealthServiceWithRegisterer(cfg DephealthConfig, logger *slog.Logger, registerer prometheus.Registerer) (*DephealthService, error) {
	return newDephealthService(cfg, logger, dephealth.WithRegisterer(registerer))
}

func newDephealthService(cfg DephealthConfig, logger *slog.Logger, extraOpts ...dephealth.Option) (*DephealthService, error) {
	opts := []dephealth.Option{
		dephealth.WithLogger(logger),
		dephealth.HTTP("sports-api",
			dephealth.FromURL(cfg.APIURL),
			dephealth.WithHTTPHealthPath(apiHealthPath(cfg.APIURL, cfg.APIHealthPath)),
			dephealth.CheckInterval(cfg.CheckInterval),
			dephealth.Critical(true),
		),
	}
	// Проверяем путь самого JWKS URL: это подтверждает доступность ключей.
	if cfg.JWKSURL != "" {
		opts = append(opts, dephealth.HTTP("jwks",
			dephealth.FromURL(cfg.JWKSURL),
			dephealth.WithHTTPHealthPath(urlPath(cfg.JWKSURL, "/")),
			dephealth.CheckInterval(cfg.CheckInterval),
			dephealth.Critical(true),
		))
	}
	opts = append(opts, extraOpts...)

	dh, err := dephealth.New(cfg.ServiceID, cfg.Group, opts...)
	if err != nil {
		return nil, err
	}

	return &DephealthService{
		dh:     dh,
		logger: logger.With(slog.String("component", "dephealth")),
	}, nil
}

// apiHealthPath возвращает путь health check backend: явно заданный
// абсолютный путь используется как есть, относительный добавляется к пути API.
func apiHealthPath(apiURL, healthPath string) string {
	if healthPath == "" {
		healthPath = "health"
	}
	if healthPath[0] == '/' {
		return healthPath
	}
	base := urlPath(apiURL, "")
	for len(base) > 0 && base[len(base)-1] == '/' {
		base = base[:len(base)-1]
	}
	return base + "/" + healthPath
}

// urlPath извлекает path из URL или возвращает fallback.
func urlPath(raw, fallback string) string {
	if parsed, err := url.Parse(raw); err == nil && parsed.Path != "" {
		return parsed.Path
	}
	return fallback
}

// Start запускает периодическую проверку зависимостей.
func (ds *DephealthService) Start(ctx context.Context) error {
	ds.logger.Info("Мониторинг зависимостей запущен")
	return ds.dh.Start(ctx)
}

// Stop останавливает мониторинг зависимостей.
func (ds *DephealthService) Stop() {
	ds.dh.Stop()
	ds.logger.Info("Мониторинг зависимостей остановлен")
}

// Health возвращает текущее состояние зависимостей.
// Ключ — имя зависимости, значение — true если ok.
func (ds *DephealthService) Health() map[string]bool {
	return ds.dh.Health()
}
