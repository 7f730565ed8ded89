// auth.go — вход оператора по email и паролю и выход.
package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/ahmad115kobane-wq/adminapp/internal/apiclient"
	"github.com/ahmad115kobane-wq/adminapp/internal/resource"
	"github.com/ahmad115kobane-wq/adminapp/internal/ui/auth"
	uimiddleware "github.com/ahmad115kobane-wq/adminapp/internal/ui/middleware"
	"github.com/ahmad115kobane-wq/adminapp/internal/ui/pages"
	"github.com/ahmad115kobane-wq/adminapp/internal/ui/state"
)

// Ключи уведомлений страницы входа.
const (
	KeyLoginInvalid   = "login.invalid"
	KeyLoginForbidden = "login.forbidden"
	KeyLoginFailed    = "login.failed"
)

// AuthHandler — обработчики входа и выхода.
type AuthHandler struct {
	authenticator  *auth.Authenticator
	sessionManager *auth.SessionManager
	store          *state.Store
	logger         *slog.Logger
}

// NewAuthHandler создаёт новый AuthHandler.
func NewAuthHandler(
	authenticator *auth.Authenticator,
	sessionManager *auth.SessionManager,
	store *state.Store,
	logger *slog.Logger,
) *AuthHandler {
	return &AuthHandler{
		authenticator:  authenticator,
		sessionManager: sessionManager,
		store:          store,
		logger:         logger.With(slog.String("component", "ui_auth")),
	}
}

// HandleLoginPage — GET /admin/login
// Действующая сессия сразу перенаправляется на главную.
func (h *AuthHandler) HandleLoginPage(w http.ResponseWriter, r *http.Request) {
	if session, err := h.sessionManager.GetSessionFromRequest(r); err == nil && session != nil &&
		!session.IsExpired(h.sessionManager.Now()) {
		http.Redirect(w, r, "/admin/", http.StatusFound)
		return
	}
	h.render(w, r, http.StatusOK, pages.LoginData{})
}

// HandleLogin — POST /admin/login
// Обменивает email и пароль на токен backend, создаёт session cookie,
// redirect на /admin/. При ошибке форма показывается снова (401/403).
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")

	if email == "" || password == "" {
		h.render(w, r, http.StatusUnauthorized, pages.LoginData{
			Email: email,
			Error: &resource.Notice{Kind: resource.NoticeError, Key: KeyLoginInvalid},
		})
		return
	}

	session, err := h.authenticator.Login(r.Context(), email, password)
	if err != nil {
		status, notice := loginFailure(err)
		h.logger.Warn("Вход не выполнен",
			slog.String("email", email),
			slog.String("error", err.Error()),
		)
		h.render(w, r, status, pages.LoginData{Email: email, Error: &notice})
		return
	}

	if err := h.sessionManager.SetSessionCookie(w, session); err != nil {
		h.logger.Error("Ошибка установки session cookie",
			slog.String("error", err.Error()),
		)
		http.Error(w, "Ошибка создания сессии", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/admin/", http.StatusSeeOther)
}

// loginFailure выбирает код ответа и уведомление по ошибке входа.
// Сообщение backend показывается дословно.
func loginFailure(err error) (int, resource.Notice) {
	notice := resource.Notice{Kind: resource.NoticeError}
	var apiErr *apiclient.APIError
	switch {
	case errors.Is(err, auth.ErrRoleNotAllowed):
		notice.Key = KeyLoginForbidden
		return http.StatusForbidden, notice
	case errors.As(err, &apiErr) && apiErr.StatusCode < http.StatusInternalServerError:
		notice.Key = KeyLoginInvalid
		notice.Text = apiErr.Message
		return http.StatusUnauthorized, notice
	default:
		notice.Key = KeyLoginFailed
		notice.Text = apiclient.Message(err)
		return http.StatusBadGateway, notice
	}
}

// HandleLogout — POST /admin/logout
// Удаляет состояние страниц сессии, очищает cookie, redirect на вход.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if session := uimiddleware.SessionFromContext(r.Context()); session != nil {
		n := h.store.Evict(session.ID)
		h.logger.Info("Оператор вышел",
			slog.String("user_id", session.UserID),
			slog.Int("page_states", n),
		)
	}
	h.sessionManager.ClearSessionCookie(w)
	http.Redirect(w, r, uimiddleware.LoginPath, http.StatusSeeOther)
}

func (h *AuthHandler) render(w http.ResponseWriter, r *http.Request, status int, data pages.LoginData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pages.Login(data).Render(r.Context(), w); err != nil {
		h.logger.Error("Ошибка рендеринга страницы входа",
			slog.String("error", err.Error()),
		)
	}
}
