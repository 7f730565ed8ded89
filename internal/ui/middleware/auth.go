// Пакет middleware — HTTP middleware для Admin Dashboard.
// auth.go — проверка сессии оператора (cookie-based).
package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/ahmad115kobane-wq/adminapp/internal/ui/auth"
)

// contextKey — тип для ключей контекста UI (избегаем коллизий с API middleware).
type contextKey string

const (
	// ContextKeyUISession — данные сессии в контексте запроса.
	ContextKeyUISession contextKey = "ui_session"
)

// LoginPath — страница входа, на которую перенаправляются запросы без сессии.
const LoginPath = "/admin/login"

// UIAuth — middleware для проверки аутентификации операторов.
// Извлекает сессию из зашифрованного cookie, отклоняет истёкшие,
// redirect на /admin/login при отсутствии сессии.
type UIAuth struct {
	sessionManager *auth.SessionManager
	logger         *slog.Logger
}

// NewUIAuth создаёт новый UIAuth middleware.
func NewUIAuth(sessionManager *auth.SessionManager, logger *slog.Logger) *UIAuth {
	return &UIAuth{
		sessionManager: sessionManager,
		logger:         logger.With(slog.String("component", "ui_auth_middleware")),
	}
}

// Middleware возвращает HTTP middleware для проверки сессии.
// Применяется к маршрутам /admin/*, кроме /admin/login.
func (ua *UIAuth) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// 1. Извлекаем сессию из cookie
			session, err := ua.sessionManager.GetSessionFromRequest(r)
			if err != nil {
				ua.logger.Debug("Ошибка чтения сессии",
					slog.String("error", err.Error()),
					slog.String("remote_addr", r.RemoteAddr),
				)
				ua.sessionManager.ClearSessionCookie(w)
				http.Redirect(w, r, LoginPath, http.StatusFound)
				return
			}

			// 2. Если сессия отсутствует — redirect на login
			if session == nil {
				http.Redirect(w, r, LoginPath, http.StatusFound)
				return
			}

			// 3. Токен backend не обновляется: истёкшая сессия требует нового входа
			if session.IsExpired(ua.sessionManager.Now()) {
				ua.logger.Info("Сессия истекла, redirect на login",
					slog.String("user_id", session.UserID),
				)
				ua.sessionManager.ClearSessionCookie(w)
				http.Redirect(w, r, LoginPath, http.StatusFound)
				return
			}

			// 4. Помещаем сессию в контекст
			ctx := context.WithValue(r.Context(), ContextKeyUISession, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFromContext извлекает SessionData из контекста запроса.
// Возвращает nil если сессия не найдена (не прошёл через UIAuth middleware).
func SessionFromContext(ctx context.Context) *auth.SessionData {
	session, ok := ctx.Value(ContextKeyUISession).(*auth.SessionData)
	if !ok {
		return nil
	}
	return session
}
