// media.go — обработчики слайдера, супервайзеров и видеорекламы.
package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ahmad115kobane-wq/adminapp/internal/domain/model"
	"github.com/ahmad115kobane-wq/adminapp/internal/service"
	"github.com/ahmad115kobane-wq/adminapp/internal/ui/auth"
	"github.com/ahmad115kobane-wq/adminapp/internal/ui/pages"
	"github.com/ahmad115kobane-wq/adminapp/internal/ui/state"
)

// --- Слайдер ---

// SlidersHandler — страница слайдера главного экрана.
type SlidersHandler struct {
	*PageDeps
	logger *slog.Logger
	crud   *crud[model.Slider, model.SliderDraft, *service.Sliders]
}

// NewSlidersHandler создаёт обработчик страницы слайдера.
func NewSlidersHandler(deps *PageDeps, logger *slog.Logger) *SlidersHandler {
	h := &SlidersHandler{
		PageDeps: deps,
		logger:   logger.With(slog.String("component", "ui.sliders")),
	}
	h.crud = &crud[model.Slider, model.SliderDraft, *service.Sliders]{
		deps:   deps,
		logger: h.logger,
		back:   "/admin/sliders",
		ops:    opAll,
		get:    h.controller,
		decode: decodeSlider,
		show:   h.show,
	}
	return h
}

// Path — префикс маршрутов страницы.
func (h *SlidersHandler) Path() string { return "/admin/sliders" }

// Routes регистрирует маршруты страницы.
func (h *SlidersHandler) Routes(r chi.Router) { h.crud.Routes(r) }

func (h *SlidersHandler) controller(_ *http.Request, s *auth.SessionData) *service.Sliders {
	return state.Get(h.Store, s.ID, "sliders", func() *service.Sliders {
		return service.NewSliders(h.service(s, h.logger))
	})
}

func (h *SlidersHandler) show(w http.ResponseWriter, r *http.Request, s *auth.SessionData, confirmID string) {
	ctl := h.controller(r, s)
	ctl.LoadIfStale(r.Context(), freshness)
	data := listData(h.PageDeps, s, "sliders", ctl.View(), r, nil, confirmID)
	renderPage(w, r, h.logger, pages.Sliders(data))
}

func decodeSlider(r *http.Request, d model.SliderDraft) model.SliderDraft {
	d.Title = formString(r, "title")
	d.LinkURL = formString(r, "linkUrl")
	d.SortOrder = formInt(r, "sortOrder", 0)
	d.IsActive = formBool(r, "isActive")
	d.Image = formFile(r, "image", d.Image)
	return d
}

// --- Супервайзеры ---

// SupervisorsHandler — страница супервайзеров.
type SupervisorsHandler struct {
	*PageDeps
	logger *slog.Logger
	crud   *crud[model.Supervisor, model.SupervisorDraft, *service.Supervisors]
}

// NewSupervisorsHandler создаёт обработчик страницы супервайзеров.
func NewSupervisorsHandler(deps *PageDeps, logger *slog.Logger) *SupervisorsHandler {
	h := &SupervisorsHandler{
		PageDeps: deps,
		logger:   logger.With(slog.String("component", "ui.supervisors")),
	}
	h.crud = &crud[model.Supervisor, model.SupervisorDraft, *service.Supervisors]{
		deps:   deps,
		logger: h.logger,
		back:   "/admin/supervisors",
		ops:    opAll,
		get:    h.controller,
		decode: decodeSupervisor,
		show:   h.show,
	}
	return h
}

// Path — префикс маршрутов страницы.
func (h *SupervisorsHandler) Path() string { return "/admin/supervisors" }

// Routes регистрирует маршруты страницы.
func (h *SupervisorsHandler) Routes(r chi.Router) { h.crud.Routes(r) }

func (h *SupervisorsHandler) controller(_ *http.Request, s *auth.SessionData) *service.Supervisors {
	return state.Get(h.Store, s.ID, "supervisors", func() *service.Supervisors {
		return service.NewSupervisors(h.service(s, h.logger))
	})
}

func (h *SupervisorsHandler) show(w http.ResponseWriter, r *http.Request, s *auth.SessionData, confirmID string) {
	ctl := h.controller(r, s)
	ctl.LoadIfStale(r.Context(), freshness)
	data := listData(h.PageDeps, s, "supervisors", ctl.View(), r, service.SearchSupervisors, confirmID)
	renderPage(w, r, h.logger, pages.Supervisors(data))
}

func decodeSupervisor(r *http.Request, d model.SupervisorDraft) model.SupervisorDraft {
	d.Name = formString(r, "name")
	d.Nationality = formString(r, "nationality")
	d.IsActive = formBool(r, "isActive")
	d.Image = formFile(r, "image", d.Image)
	return d
}

// --- Видеореклама ---

// VideoAdsHandler — страница видеорекламы.
type VideoAdsHandler struct {
	*PageDeps
	logger *slog.Logger
	crud   *crud[model.VideoAd, model.VideoAdDraft, *service.VideoAds]
}

// NewVideoAdsHandler создаёт обработчик страницы видеорекламы.
func NewVideoAdsHandler(deps *PageDeps, logger *slog.Logger) *VideoAdsHandler {
	h := &VideoAdsHandler{
		PageDeps: deps,
		logger:   logger.With(slog.String("component", "ui.videoads")),
	}
	h.crud = &crud[model.VideoAd, model.VideoAdDraft, *service.VideoAds]{
		deps:   deps,
		logger: h.logger,
		back:   "/admin/video-ads",
		ops:    opAll,
		get:    h.controller,
		decode: decodeVideoAd,
		show:   h.show,
	}
	return h
}

// Path — префикс маршрутов страницы.
func (h *VideoAdsHandler) Path() string { return "/admin/video-ads" }

// Routes регистрирует маршруты страницы и переключение активности.
func (h *VideoAdsHandler) Routes(r chi.Router) {
	h.crud.Routes(r)
	r.Post("/{id}/toggle", h.handleToggle)
}

func (h *VideoAdsHandler) controller(_ *http.Request, s *auth.SessionData) *service.VideoAds {
	return state.Get(h.Store, s.ID, "videoads", func() *service.VideoAds {
		return service.NewVideoAds(h.service(s, h.logger))
	})
}

func (h *VideoAdsHandler) show(w http.ResponseWriter, r *http.Request, s *auth.SessionData, confirmID string) {
	ctl := h.controller(r, s)
	ctl.LoadIfStale(r.Context(), freshness)
	data := listData(h.PageDeps, s, "videoads", ctl.View(), r, nil, confirmID)
	renderPage(w, r, h.logger, pages.VideoAds(data))
}

func (h *VideoAdsHandler) handleToggle(w http.ResponseWriter, r *http.Request) {
	session := requireSession(w, r)
	if session == nil {
		return
	}
	ctl := h.controller(r, session)
	ctl.LoadIfStale(r.Context(), freshness)
	ctl.ToggleActive(r.Context(), chi.URLParam(r, "id"))
	seeOther(w, r, "/admin/video-ads")
}

func decodeVideoAd(r *http.Request, d model.VideoAdDraft) model.VideoAdDraft {
	d.Title = formString(r, "title")
	d.MandatorySeconds = formString(r, "mandatorySeconds")
	d.ClickURL = formString(r, "clickUrl")
	d.IsActive = formBool(r, "isActive")
	d.Video = formFile(r, "video", d.Video)
	d.Thumbnail = formFile(r, "thumbnail", d.Thumbnail)
	return d
}
