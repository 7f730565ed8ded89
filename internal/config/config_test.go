package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// setEnvs устанавливает переменные окружения на время теста.
func setEnvs(t *testing.T, envs map[string]string) {
	t.Helper()
	for k, v := range envs {
		t.Setenv(k, v)
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() вернул ошибку: %v", err)
	}

	if cfg.Port != 3001 {
		t.Errorf("Port = %d, ожидается 3001", cfg.Port)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v, ожидается Info", cfg.LogLevel)
	}
	if cfg.LogFormat != "json" {
		t.Errorf("LogFormat = %q, ожидается json", cfg.LogFormat)
	}
	if cfg.APIURL != "https://sports-live.up.railway.app/api" {
		t.Errorf("APIURL = %q", cfg.APIURL)
	}
	if cfg.APITimeout != 30*time.Second {
		t.Errorf("APITimeout = %v, ожидается 30s", cfg.APITimeout)
	}
	if !cfg.SecureCookie {
		t.Error("SecureCookie = false, ожидается true для https API")
	}
	if len(cfg.AllowedRoles) != 1 || cfg.AllowedRoles[0] != "admin" {
		t.Errorf("AllowedRoles = %v, ожидается [admin]", cfg.AllowedRoles)
	}
	if cfg.Timezone != "Asia/Baghdad" || cfg.Location == nil || cfg.Location.String() != "Asia/Baghdad" {
		t.Errorf("Timezone = %q, Location = %v", cfg.Timezone, cfg.Location)
	}
	if cfg.PageStateSize != 512 || cfg.PageStateTTL != 30*time.Minute {
		t.Errorf("PageState = %d/%v, ожидается 512/30m", cfg.PageStateSize, cfg.PageStateTTL)
	}
	if cfg.EventLogLimit != 100 {
		t.Errorf("EventLogLimit = %d, ожидается 100", cfg.EventLogLimit)
	}
	if cfg.MaxUploadBytes != 50<<20 {
		t.Errorf("MaxUploadBytes = %d, ожидается 50 MiB", cfg.MaxUploadBytes)
	}
	if cfg.DefaultLang != "ar" {
		t.Errorf("DefaultLang = %q, ожидается ar", cfg.DefaultLang)
	}
	if cfg.UploadBackend != UploadBackendAPI {
		t.Errorf("UploadBackend = %q, ожидается api", cfg.UploadBackend)
	}
	if cfg.DephealthGroup != "admin-dashboard" || cfg.DephealthCheckInterval != 15*time.Second {
		t.Errorf("Dephealth = %q/%v", cfg.DephealthGroup, cfg.DephealthCheckInterval)
	}
	if cfg.ShutdownTimeout != 5*time.Second {
		t.Errorf("ShutdownTimeout = %v, ожидается 5s", cfg.ShutdownTimeout)
	}
}

func TestLoad_CustomValues(t *testing.T) {
	setEnvs(t, map[string]string{
		"AD_PORT":            "8080",
		"AD_LOG_LEVEL":       "debug",
		"AD_LOG_FORMAT":      "text",
		"AD_API_URL":         "http://api.local:3000/api/",
		"AD_ALLOWED_ROLES":   "admin, operator ,",
		"AD_TIMEZONE":        "UTC",
		"AD_DEFAULT_LANG":    "ku",
		"AD_SESSION_TTL":     "8h",
		"AD_SECURE_COOKIE":   "true",
		"AD_JWT_JWKS_URL":    "http://api.local:3000/.well-known/jwks.json",
		"AD_EVENT_LOG_LIMIT": "50",
	})

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() вернул ошибку: %v", err)
	}
	if cfg.Port != 8080 || cfg.LogLevel != slog.LevelDebug || cfg.LogFormat != "text" {
		t.Errorf("сервер: %d %v %s", cfg.Port, cfg.LogLevel, cfg.LogFormat)
	}
	if cfg.APIURL != "http://api.local:3000/api" {
		t.Errorf("APIURL = %q, ожидается без завершающего /", cfg.APIURL)
	}
	if len(cfg.AllowedRoles) != 2 || cfg.AllowedRoles[1] != "operator" {
		t.Errorf("AllowedRoles = %v", cfg.AllowedRoles)
	}
	if cfg.Location != time.UTC {
		t.Errorf("Location = %v, ожидается UTC", cfg.Location)
	}
	if !cfg.SecureCookie || cfg.SessionTTL != 8*time.Hour {
		t.Errorf("сессия: secure=%v ttl=%v", cfg.SecureCookie, cfg.SessionTTL)
	}
	if cfg.DefaultLang != "ku" || cfg.EventLogLimit != 50 {
		t.Errorf("DefaultLang = %q, EventLogLimit = %d", cfg.DefaultLang, cfg.EventLogLimit)
	}
}

func TestLoad_HTTPAPIInsecureCookie(t *testing.T) {
	setEnvs(t, map[string]string{"AD_API_URL": "http://localhost:3000/api"})

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() вернул ошибку: %v", err)
	}
	if cfg.SecureCookie {
		t.Error("SecureCookie = true, ожидается false для http API")
	}
}

func TestLoad_EmptyAllowedRoles(t *testing.T) {
	setEnvs(t, map[string]string{"AD_ALLOWED_ROLES": ""})

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() вернул ошибку: %v", err)
	}
	if len(cfg.AllowedRoles) != 0 {
		t.Errorf("AllowedRoles = %v, ожидается пустой список", cfg.AllowedRoles)
	}
}

func TestLoad_S3(t *testing.T) {
	setEnvs(t, map[string]string{
		"AD_UPLOAD_BACKEND": "s3",
		"AD_S3_BUCKET":      "media",
		"AD_S3_PUBLIC_URL":  "https://cdn.example.com/media/",
		"AD_S3_ENDPOINT":    "http://minio:9000",
	})

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() вернул ошибку: %v", err)
	}
	if cfg.S3Bucket != "media" || cfg.S3PublicURL != "https://cdn.example.com/media" || cfg.S3Region != "us-east-1" {
		t.Errorf("S3: bucket=%q public=%q region=%q", cfg.S3Bucket, cfg.S3PublicURL, cfg.S3Region)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		envs map[string]string
	}{
		{"порт вне диапазона", map[string]string{"AD_PORT": "70000"}},
		{"порт не число", map[string]string{"AD_PORT": "abc"}},
		{"уровень логов", map[string]string{"AD_LOG_LEVEL": "verbose"}},
		{"формат логов", map[string]string{"AD_LOG_FORMAT": "xml"}},
		{"API без схемы", map[string]string{"AD_API_URL": "api.local"}},
		{"таймаут", map[string]string{"AD_API_TIMEOUT": "30"}},
		{"secure cookie", map[string]string{"AD_SECURE_COOKIE": "maybe"}},
		{"JWKS и секрет", map[string]string{"AD_JWT_JWKS_URL": "http://x/jwks", "AD_JWT_SECRET": "s"}},
		{"часовой пояс", map[string]string{"AD_TIMEZONE": "Mars/Olympus"}},
		{"журнал событий", map[string]string{"AD_EVENT_LOG_LIMIT": "0"}},
		{"размер формы", map[string]string{"AD_MAX_UPLOAD_BYTES": "100"}},
		{"язык", map[string]string{"AD_DEFAULT_LANG": "fr"}},
		{"режим загрузки", map[string]string{"AD_UPLOAD_BACKEND": "ftp"}},
		{"s3 без бакета", map[string]string{"AD_UPLOAD_BACKEND": "s3", "AD_S3_PUBLIC_URL": "https://cdn"}},
		{"s3 без адреса", map[string]string{"AD_UPLOAD_BACKEND": "s3", "AD_S3_BUCKET": "media"}},
		{"состояние страниц", map[string]string{"AD_PAGE_STATE_SIZE": "0"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setEnvs(t, tt.envs)
			if _, err := Load(); err == nil {
				t.Error("Load() должен вернуть ошибку")
			}
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("AD_PORT=4000\nAD_LOG_FORMAT=text\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	// Уже заданная переменная не перезаписывается.
	t.Setenv("AD_LOG_FORMAT", "json")
	t.Setenv("AD_PORT", "")
	os.Unsetenv("AD_PORT")

	loaded, err := LoadDotEnv(path)
	if err != nil || !loaded {
		t.Fatalf("LoadDotEnv = %v, %v", loaded, err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() вернул ошибку: %v", err)
	}
	if cfg.Port != 4000 || cfg.LogFormat != "json" {
		t.Errorf("Port = %d, LogFormat = %q", cfg.Port, cfg.LogFormat)
	}
}

func TestLoadDotEnv_Missing(t *testing.T) {
	loaded, err := LoadDotEnv(filepath.Join(t.TempDir(), ".env"))
	if err != nil || loaded {
		t.Errorf("LoadDotEnv = %v, %v; ожидается false, nil", loaded, err)
	}
}

func TestParseCSV(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"admin", 1},
		{" admin , ,operator", 2},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := parseCSV(tt.in); len(got) != tt.want {
				t.Errorf("parseCSV(%q) = %v, ожидается %d элементов", tt.in, got, tt.want)
			}
		})
	}
}
