// language.go — обработчик переключения языка UI.
package handlers

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ahmad115kobane-wq/adminapp/internal/ui/i18n"
)

// HandleSetLanguage обрабатывает POST /admin/set-language.
// Устанавливает cookie "lang" и перенаправляет обратно.
// Параметр lang: "ar", "en" или "ku" (из формы или query).
func HandleSetLanguage(w http.ResponseWriter, r *http.Request) {
	lang := r.FormValue("lang")
	if !i18n.Supported(lang) {
		lang = i18n.DefaultLang
	}

	// Устанавливаем cookie "lang" на 1 год
	http.SetCookie(w, &http.Cookie{
		Name:     i18n.LangCookieName,
		Value:    lang,
		Path:     "/",
		MaxAge:   365 * 24 * 60 * 60,
		HttpOnly: false, // JS может читать для направления письма
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(365 * 24 * time.Hour),
	})

	http.Redirect(w, r, backTarget(r), http.StatusSeeOther)
}

// backTarget — путь из Referer, если он ведёт на страницу панели этого же хоста,
// иначе /admin/.
func backTarget(r *http.Request) string {
	referer := r.Header.Get("Referer")
	if referer == "" {
		return "/admin/"
	}
	u, err := url.Parse(referer)
	if err != nil || (u.Host != "" && u.Host != r.Host) || !strings.HasPrefix(u.Path, "/admin") {
		return "/admin/"
	}
	target := u.Path
	if u.RawQuery != "" {
		target += "?" + u.RawQuery
	}
	return target
}
