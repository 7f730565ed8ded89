// Пакет config — загрузка и валидация конфигурации Admin Dashboard
// из переменных окружения (префикс AD_) и необязательного файла .env.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // AD_TIMEZONE без системной базы часовых поясов

	"github.com/joho/godotenv"
)

// Версия приложения, задаётся при сборке через -ldflags.
var Version = "dev"

// DotEnvFile — файл переменных окружения, читаемый при наличии.
const DotEnvFile = ".env"

// Режимы загрузки файлов.
const (
	UploadBackendAPI = "api"
	UploadBackendS3  = "s3"
)

// Config содержит все параметры конфигурации Admin Dashboard.
type Config struct {
	// --- Сервер ---

	// Порт HTTP-сервера
	Port int
	// Уровень логирования (debug, info, warn, error)
	LogLevel slog.Level
	// Формат логов (json, text)
	LogFormat string

	// --- Backend API ---

	// Базовый адрес REST API платформы
	APIURL string
	// Таймаут HTTP-запросов к backend
	APITimeout time.Duration
	// Путь к CA-сертификату backend (опционально)
	APICACertPath string

	// --- Сессия ---

	// Ключ шифрования session cookie (пустой — случайный)
	SessionSecret string
	// Время жизни сессии
	SessionTTL time.Duration
	// Флаг Secure у cookie
	SecureCookie bool
	// Роли backend, допущенные в панель (пустой список — любая роль)
	AllowedRoles []string

	// --- Проверка токена backend (опционально) ---

	// URL JWKS endpoint
	JWTJWKSURL string
	// HMAC-секрет подписи токена
	JWTSecret string
	// Ожидаемый issuer
	JWTIssuer string

	// --- Страницы ---

	// Размер хранилища состояния страниц
	PageStateSize int
	// Время жизни неиспользуемого состояния страницы
	PageStateTTL time.Duration
	// Часовой пояс расписания матчей
	Timezone string
	// Location — загруженный часовой пояс Timezone
	Location *time.Location
	// Размер журнала событий
	EventLogLimit int
	// Ограничение размера формы с файлами
	MaxUploadBytes int64
	// Язык интерфейса по умолчанию
	DefaultLang string

	// --- Загрузка файлов ---

	// Режим загрузки: api (POST /store/upload) или s3
	UploadBackend string
	// Параметры S3-совместимого хранилища (режим s3)
	S3Endpoint        string
	S3Region          string
	S3Bucket          string
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3PublicURL       string
	S3Prefix          string

	// --- Мониторинг зависимостей ---

	// Группа в метриках topologymetrics
	DephealthGroup string
	// Интервал проверки зависимостей
	DephealthCheckInterval time.Duration
	// Путь health check backend
	DephealthHealthPath string

	// --- Graceful shutdown ---

	// Таймаут graceful shutdown HTTP-сервера
	ShutdownTimeout time.Duration
}

// supportedLangs — языки интерфейса.
var supportedLangs = map[string]bool{"ar": true, "en": true, "ku": true}

// LoadDotEnv читает файл path в окружение процесса, не перезаписывая уже
// заданные переменные. Отсутствие файла не ошибка. Возвращает true, если файл прочитан.
func LoadDotEnv(path string) (bool, error) {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("%s: %w", path, err)
	}
	return true, nil
}

// Load загружает конфигурацию из переменных окружения, валидирует
// значения и возвращает Config или ошибку.
func Load() (*Config, error) {
	cfg := &Config{}
	var err error

	// --- Сервер ---

	// AD_PORT — порт HTTP-сервера (по умолчанию 3001)
	cfg.Port, err = getEnvInt("AD_PORT", 3001)
	if err != nil {
		return nil, fmt.Errorf("AD_PORT: %w", err)
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return nil, fmt.Errorf("AD_PORT: значение %d вне допустимого диапазона 1-65535", cfg.Port)
	}

	// AD_LOG_LEVEL — уровень логирования (по умолчанию info)
	cfg.LogLevel, err = parseLogLevel(getEnvDefault("AD_LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("AD_LOG_LEVEL: %w", err)
	}

	// AD_LOG_FORMAT — формат логов (по умолчанию json)
	cfg.LogFormat = getEnvDefault("AD_LOG_FORMAT", "json")
	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		return nil, fmt.Errorf("AD_LOG_FORMAT: недопустимое значение %q, допустимые: json, text", cfg.LogFormat)
	}

	// --- Backend API ---

	// AD_API_URL — базовый адрес API
	cfg.APIURL = strings.TrimRight(getEnvDefault("AD_API_URL", "https://sports-live.up.railway.app/api"), "/")
	u, err := url.Parse(cfg.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("AD_API_URL: ожидается http(s) URL, получено %q", cfg.APIURL)
	}

	// AD_API_TIMEOUT — таймаут запросов к backend (по умолчанию 30s)
	cfg.APITimeout, err = getEnvDuration("AD_API_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, fmt.Errorf("AD_API_TIMEOUT: %w", err)
	}

	// AD_API_CA_CERT_PATH — CA-сертификат backend (опционально)
	cfg.APICACertPath = getEnvDefault("AD_API_CA_CERT_PATH", "")

	// --- Сессия ---

	// AD_SESSION_SECRET — ключ cookie (пустой — случайный, сессии не переживают рестарт)
	cfg.SessionSecret = getEnvDefault("AD_SESSION_SECRET", "")

	// AD_SESSION_TTL — время жизни сессии (по умолчанию 24h)
	cfg.SessionTTL, err = getEnvDuration("AD_SESSION_TTL", 24*time.Hour)
	if err != nil {
		return nil, fmt.Errorf("AD_SESSION_TTL: %w", err)
	}

	// AD_SECURE_COOKIE — Secure cookie (по умолчанию — если API по https)
	cfg.SecureCookie, err = getEnvBool("AD_SECURE_COOKIE", u.Scheme == "https")
	if err != nil {
		return nil, fmt.Errorf("AD_SECURE_COOKIE: %w", err)
	}

	// AD_ALLOWED_ROLES — допущенные роли (по умолчанию admin; пустое значение — любая роль)
	if v, ok := os.LookupEnv("AD_ALLOWED_ROLES"); ok {
		cfg.AllowedRoles = parseCSV(v)
	} else {
		cfg.AllowedRoles = []string{"admin"}
	}

	// --- Проверка токена ---

	cfg.JWTJWKSURL = getEnvDefault("AD_JWT_JWKS_URL", "")
	cfg.JWTSecret = getEnvDefault("AD_JWT_SECRET", "")
	cfg.JWTIssuer = getEnvDefault("AD_JWT_ISSUER", "")
	if cfg.JWTJWKSURL != "" && cfg.JWTSecret != "" {
		return nil, errors.New("AD_JWT_JWKS_URL и AD_JWT_SECRET взаимоисключающие")
	}

	// --- Страницы ---

	// AD_PAGE_STATE_SIZE — размер хранилища состояния страниц (по умолчанию 512)
	cfg.PageStateSize, err = getEnvInt("AD_PAGE_STATE_SIZE", 512)
	if err != nil {
		return nil, fmt.Errorf("AD_PAGE_STATE_SIZE: %w", err)
	}
	if cfg.PageStateSize < 1 {
		return nil, fmt.Errorf("AD_PAGE_STATE_SIZE: значение %d должно быть положительным", cfg.PageStateSize)
	}

	// AD_PAGE_STATE_TTL — время жизни состояния страницы (по умолчанию 30m)
	cfg.PageStateTTL, err = getEnvDuration("AD_PAGE_STATE_TTL", 30*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("AD_PAGE_STATE_TTL: %w", err)
	}

	// AD_TIMEZONE — часовой пояс расписания (по умолчанию Asia/Baghdad)
	cfg.Timezone = getEnvDefault("AD_TIMEZONE", "Asia/Baghdad")
	cfg.Location, err = time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("AD_TIMEZONE: %w", err)
	}

	// AD_EVENT_LOG_LIMIT — размер журнала событий (по умолчанию 100)
	cfg.EventLogLimit, err = getEnvInt("AD_EVENT_LOG_LIMIT", 100)
	if err != nil {
		return nil, fmt.Errorf("AD_EVENT_LOG_LIMIT: %w", err)
	}
	if cfg.EventLogLimit < 1 || cfg.EventLogLimit > 1000 {
		return nil, fmt.Errorf("AD_EVENT_LOG_LIMIT: значение %d вне допустимого диапазона 1-1000", cfg.EventLogLimit)
	}

	// AD_MAX_UPLOAD_BYTES — ограничение формы с файлами (по умолчанию 50 MiB)
	maxUpload, err := getEnvInt("AD_MAX_UPLOAD_BYTES", 50<<20)
	if err != nil {
		return nil, fmt.Errorf("AD_MAX_UPLOAD_BYTES: %w", err)
	}
	if maxUpload < 1<<10 {
		return nil, fmt.Errorf("AD_MAX_UPLOAD_BYTES: значение %d меньше 1024", maxUpload)
	}
	cfg.MaxUploadBytes = int64(maxUpload)

	// AD_DEFAULT_LANG — язык по умолчанию (ar, en, ku)
	cfg.DefaultLang = getEnvDefault("AD_DEFAULT_LANG", "ar")
	if !supportedLangs[cfg.DefaultLang] {
		return nil, fmt.Errorf("AD_DEFAULT_LANG: недопустимое значение %q, допустимые: ar, en, ku", cfg.DefaultLang)
	}

	// --- Загрузка файлов ---

	cfg.UploadBackend = getEnvDefault("AD_UPLOAD_BACKEND", UploadBackendAPI)
	switch cfg.UploadBackend {
	case UploadBackendAPI:
	case UploadBackendS3:
		cfg.S3Endpoint = getEnvDefault("AD_S3_ENDPOINT", "")
		cfg.S3Region = getEnvDefault("AD_S3_REGION", "us-east-1")
		cfg.S3AccessKeyID = getEnvDefault("AD_S3_ACCESS_KEY_ID", "")
		cfg.S3SecretAccessKey = getEnvDefault("AD_S3_SECRET_ACCESS_KEY", "")
		cfg.S3Prefix = getEnvDefault("AD_S3_PREFIX", "")
		if cfg.S3Bucket, err = getEnvRequired("AD_S3_BUCKET"); err != nil {
			return nil, err
		}
		if cfg.S3PublicURL, err = getEnvRequired("AD_S3_PUBLIC_URL"); err != nil {
			return nil, err
		}
		cfg.S3PublicURL = strings.TrimRight(cfg.S3PublicURL, "/")
	default:
		return nil, fmt.Errorf("AD_UPLOAD_BACKEND: недопустимое значение %q, допустимые: api, s3", cfg.UploadBackend)
	}

	// --- Мониторинг зависимостей ---

	cfg.DephealthGroup = getEnvDefault("AD_DEPHEALTH_GROUP", "admin-dashboard")

	// AD_DEPHEALTH_CHECK_INTERVAL — интервал проверки зависимостей (по умолчанию 15s)
	cfg.DephealthCheckInterval, err = getEnvDuration("AD_DEPHEALTH_CHECK_INTERVAL", 15*time.Second)
	if err != nil {
		return nil, fmt.Errorf("AD_DEPHEALTH_CHECK_INTERVAL: %w", err)
	}

	cfg.DephealthHealthPath = getEnvDefault("AD_DEPHEALTH_HEALTH_PATH", "/health")

	// --- Graceful shutdown ---

	// AD_SHUTDOWN_TIMEOUT — таймаут graceful shutdown (по умолчанию 5s)
	cfg.ShutdownTimeout, err = getEnvDuration("AD_SHUTDOWN_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("AD_SHUTDOWN_TIMEOUT: %w", err)
	}

	return cfg, nil
}

// SetupLogger настраивает глобальный slog-логгер на основе конфигурации.
func SetupLogger(cfg *Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}

	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// --- Вспомогательные функции ---

// getEnvRequired возвращает значение переменной окружения или ошибку, если она не задана.
func getEnvRequired(key string) (string, error) {
	val := os.Getenv(key)
	if val == "" {
		return "", fmt.Errorf("%s: обязательная переменная окружения не задана", key)
	}
	return val, nil
}

// getEnvDefault возвращает значение переменной окружения или значение по умолчанию.
func getEnvDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

// getEnvInt возвращает целочисленное значение переменной окружения или значение по умолчанию.
func getEnvInt(key string, defaultVal int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("некорректное целое число: %q", val)
	}
	return n, nil
}

// getEnvBool возвращает логическое значение переменной окружения или значение по умолчанию.
func getEnvBool(key string, defaultVal bool) (bool, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return false, fmt.Errorf("некорректное логическое значение: %q", val)
	}
	return b, nil
}

// getEnvDuration возвращает time.Duration из переменной окружения или значение по умолчанию.
func getEnvDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("некорректная длительность: %q (используйте формат Go: 30s, 1h, 15m)", val)
	}
	return d, nil
}

// parseLogLevel преобразует строку уровня логирования в slog.Level.
func parseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("недопустимый уровень %q, допустимые: debug, info, warn, error", level)
	}
}

// parseCSV разбирает строку, разделённую запятыми, на срез строк.
// Пробелы вокруг элементов убираются, пустые элементы игнорируются.
func parseCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
