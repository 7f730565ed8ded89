// dashboard.go — главная страница со счётчиками разделов.
package handlers

import (
	"log/slog"
	"net/http"

	"github.com/ahmad115kobane-wq/adminapp/internal/service"
	"github.com/ahmad115kobane-wq/adminapp/internal/ui/pages"
)

// DashboardHandler — обработчик страницы Dashboard.
type DashboardHandler struct {
	*PageDeps
	logger *slog.Logger
}

// NewDashboardHandler создаёт новый DashboardHandler.
func NewDashboardHandler(deps *PageDeps, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{
		PageDeps: deps,
		logger:   logger.With(slog.String("component", "ui.dashboard")),
	}
}

// HandleDashboard обрабатывает GET /admin/ — отображает страницу Dashboard.
// Счётчики запрашиваются при каждом открытии.
func (h *DashboardHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	session := requireSession(w, r)
	if session == nil {
		return
	}

	data := pages.DashboardData{Chrome: h.chrome(session, "dashboard")}
	stats, err := service.LoadStats(r.Context(), h.API.WithToken(session.Token))
	if err != nil {
		h.logger.Warn("Ошибка загрузки счётчиков",
			slog.String("error", err.Error()),
			slog.String("user_id", session.UserID),
		)
		data.Failed = true
	}
	data.Stats = stats

	renderPage(w, r, h.logger, pages.Dashboard(data))
}
