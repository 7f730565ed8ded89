package i18n

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestCatalogs_SameKeys(t *testing.T) {
	catalogs := make(map[string]map[string]string)
	for _, lang := range Languages {
		data, err := LocaleFS.ReadFile("locales/" + lang + ".json")
		if err != nil {
			t.Fatalf("чтение каталога %s: %v", lang, err)
		}
		var m map[string]string
		if err := json.Unmarshal(data, &m); err != nil {
			t.Fatalf("разбор каталога %s: %v", lang, err)
		}
		catalogs[lang] = m
	}

	base := catalogs[DefaultLang]
	for _, lang := range Languages {
		for key := range base {
			if _, ok := catalogs[lang][key]; !ok {
				t.Errorf("каталог %s: нет ключа %q", lang, key)
			}
		}
		for key, v := range catalogs[lang] {
			if _, ok := base[key]; !ok {
				t.Errorf("каталог %s: лишний ключ %q", lang, key)
			}
			if strings.TrimSpace(v) == "" {
				t.Errorf("каталог %s: пустой перевод %q", lang, key)
			}
			if strings.Count(v, "%d") != strings.Count(base[key], "%d") {
				t.Errorf("каталог %s: ключ %q расходится по %%d с %s", lang, key, DefaultLang)
			}
		}
	}
}

func TestTranslate_Fallback(t *testing.T) {
	b := NewBundle(testLogger())
	if err := b.LoadMessages("ar", []byte(`{"a":"أ","b":"ب"}`)); err != nil {
		t.Fatalf("LoadMessages: %v", err)
	}
	if err := b.LoadMessages("en", []byte(`{"a":"A"}`)); err != nil {
		t.Fatalf("LoadMessages: %v", err)
	}

	tests := []struct {
		name string
		lang string
		key  string
		want string
	}{
		{"ключ есть", "en", "a", "A"},
		{"из арабского каталога", "en", "b", "ب"},
		{"нет нигде", "en", "c", "c"},
		{"нет каталога языка", "ku", "a", "أ"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.Translate(tt.lang, tt.key); got != tt.want {
				t.Errorf("Translate(%s, %s) = %q, ожидается %q", tt.lang, tt.key, got, tt.want)
			}
		})
	}
}

func TestLoadMessages_InvalidJSON(t *testing.T) {
	b := NewBundle(testLogger())
	if err := b.LoadMessages("ar", []byte(`{"a":`)); err == nil {
		t.Error("ожидается ошибка разбора")
	}
}

func TestTranslatef(t *testing.T) {
	b := NewBundle(testLogger())
	_ = b.LoadMessages("en", []byte(`{"teams.count":"%d teams"}`))
	if got := b.Translatef("en", "teams.count", 3); got != "3 teams" {
		t.Errorf("Translatef = %q, ожидается %q", got, "3 teams")
	}
}

func TestMatchLanguage(t *testing.T) {
	tests := []struct {
		accept string
		want   string
	}{
		{"en-US,en;q=0.9", "en"},
		{"ar-IQ", "ar"},
		{"ku", "ku"},
		{"fr-FR", "ar"},
	}
	for _, tt := range tests {
		t.Run(tt.accept, func(t *testing.T) {
			if got := MatchLanguage(tt.accept, "ar"); got != tt.want {
				t.Errorf("MatchLanguage(%q) = %q, ожидается %q", tt.accept, got, tt.want)
			}
		})
	}
}

func TestDir(t *testing.T) {
	if Dir("en") != "ltr" || Dir("ar") != "rtl" || Dir("ku") != "rtl" {
		t.Errorf("Dir: en=%s ar=%s ku=%s", Dir("en"), Dir("ar"), Dir("ku"))
	}
}

func TestMiddleware(t *testing.T) {
	var got string
	h := Middleware("ar")(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got = LangFromContext(r.Context())
	}))

	tests := []struct {
		name   string
		cookie string
		accept string
		want   string
	}{
		{"по умолчанию", "", "", "ar"},
		{"cookie", "ku", "en", "ku"},
		{"неизвестный cookie", "ru", "en", "en"},
		{"Accept-Language", "", "en-GB", "en"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin/", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: LangCookieName, Value: tt.cookie})
			}
			if tt.accept != "" {
				req.Header.Set("Accept-Language", tt.accept)
			}
			h.ServeHTTP(httptest.NewRecorder(), req)
			if got != tt.want {
				t.Errorf("язык = %q, ожидается %q", got, tt.want)
			}
		})
	}
}

func TestLangFromContext_Default(t *testing.T) {
	if got := LangFromContext(context.Background()); got != DefaultLang {
		t.Errorf("LangFromContext = %q, ожидается %q", got, DefaultLang)
	}
}
