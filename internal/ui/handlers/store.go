// store.go — обработчики товаров, баннеров и заказов магазина.
package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ahmad115kobane-wq/adminapp/internal/domain/model"
	"github.com/ahmad115kobane-wq/adminapp/internal/resource"
	"github.com/ahmad115kobane-wq/adminapp/internal/service"
	"github.com/ahmad115kobane-wq/adminapp/internal/ui/auth"
	"github.com/ahmad115kobane-wq/adminapp/internal/ui/pages"
	"github.com/ahmad115kobane-wq/adminapp/internal/ui/state"
)

// --- Товары ---

// ProductsHandler — страница товаров.
type ProductsHandler struct {
	*PageDeps
	logger *slog.Logger
	crud   *crud[model.Product, model.ProductDraft, *service.Products]
}

// NewProductsHandler создаёт обработчик страницы товаров.
func NewProductsHandler(deps *PageDeps, logger *slog.Logger) *ProductsHandler {
	h := &ProductsHandler{
		PageDeps: deps,
		logger:   logger.With(slog.String("component", "ui.products")),
	}
	h.crud = &crud[model.Product, model.ProductDraft, *service.Products]{
		deps:   deps,
		logger: h.logger,
		back:   "/admin/products",
		ops:    opAll,
		get:    h.controller,
		decode: decodeProduct,
		show:   h.show,
	}
	return h
}

// Path — префикс маршрутов страницы.
func (h *ProductsHandler) Path() string { return "/admin/products" }

// Routes регистрирует маршруты страницы.
func (h *ProductsHandler) Routes(r chi.Router) { h.crud.Routes(r) }

func (h *ProductsHandler) controller(_ *http.Request, s *auth.SessionData) *service.Products {
	return state.Get(h.Store, s.ID, "products", func() *service.Products {
		return service.NewProducts(h.service(s, h.logger))
	})
}

func (h *ProductsHandler) show(w http.ResponseWriter, r *http.Request, s *auth.SessionData, confirmID string) {
	ctl := h.controller(r, s)
	ctl.LoadIfStale(r.Context(), freshness)
	data := pages.ProductsData{
		List:       listData(h.PageDeps, s, "products", ctl.View(), r, service.SearchProducts, confirmID),
		Categories: ctl.Categories.Items(),
	}
	renderPage(w, r, h.logger, pages.Products(data))
}

func decodeProduct(r *http.Request, d model.ProductDraft) model.ProductDraft {
	d.CategoryID = formString(r, "categoryId")
	d.Name = formString(r, "name")
	d.NameAr = formString(r, "nameAr")
	d.NameKu = formString(r, "nameKu")
	d.Description = formString(r, "description")
	d.DescriptionAr = formString(r, "descriptionAr")
	d.DescriptionKu = formString(r, "descriptionKu")
	d.Price = formFloat(r, "price")
	d.OriginalPrice = formFloat(r, "originalPrice")
	d.Discount = formString(r, "discount")
	if b, err := model.ParseBadge(formString(r, "badge")); err == nil {
		d.Badge = b
	}
	if e := formString(r, "emoji"); e != "" {
		d.Emoji = e
	}
	d.Colors = formStrings(r, "colors")
	d.Sizes = formStrings(r, "sizes")
	d.InStock = formBool(r, "inStock")
	d.IsFeatured = formBool(r, "isFeatured")
	d.IsActive = formBool(r, "isActive")
	d.SortOrder = formInt(r, "sortOrder", 0)
	d.Image = formFile(r, "image", d.Image)
	return d
}

// --- Баннеры ---

// BannersHandler — страница баннеров.
type BannersHandler struct {
	*PageDeps
	logger *slog.Logger
	crud   *crud[model.Banner, model.BannerDraft, *service.Banners]
}

// NewBannersHandler создаёт обработчик страницы баннеров.
func NewBannersHandler(deps *PageDeps, logger *slog.Logger) *BannersHandler {
	h := &BannersHandler{
		PageDeps: deps,
		logger:   logger.With(slog.String("component", "ui.banners")),
	}
	h.crud = &crud[model.Banner, model.BannerDraft, *service.Banners]{
		deps:   deps,
		logger: h.logger,
		back:   "/admin/banners",
		ops:    opAll,
		get:    h.controller,
		decode: decodeBanner,
		show:   h.show,
	}
	return h
}

// Path — префикс маршрутов страницы.
func (h *BannersHandler) Path() string { return "/admin/banners" }

// Routes регистрирует маршруты страницы.
func (h *BannersHandler) Routes(r chi.Router) { h.crud.Routes(r) }

func (h *BannersHandler) controller(_ *http.Request, s *auth.SessionData) *service.Banners {
	return state.Get(h.Store, s.ID, "banners", func() *service.Banners {
		return service.NewBanners(h.service(s, h.logger))
	})
}

func (h *BannersHandler) show(w http.ResponseWriter, r *http.Request, s *auth.SessionData, confirmID string) {
	ctl := h.controller(r, s)
	ctl.LoadIfStale(r.Context(), freshness)
	data := listData(h.PageDeps, s, "banners", ctl.View(), r, nil, confirmID)
	renderPage(w, r, h.logger, pages.Banners(data))
}

func decodeBanner(r *http.Request, d model.BannerDraft) model.BannerDraft {
	d.Title = formString(r, "title")
	d.TitleAr = formString(r, "titleAr")
	d.TitleKu = formString(r, "titleKu")
	d.Subtitle = formString(r, "subtitle")
	d.SubtitleAr = formString(r, "subtitleAr")
	d.SubtitleKu = formString(r, "subtitleKu")
	if v := formString(r, "gradientStart"); v != "" {
		d.GradientStart = v
	}
	if v := formString(r, "gradientEnd"); v != "" {
		d.GradientEnd = v
	}
	d.Discount = formString(r, "discount")
	d.SortOrder = formInt(r, "sortOrder", 0)
	d.IsActive = formBool(r, "isActive")
	d.Image = formFile(r, "image", d.Image)
	return d
}

// --- Заказы ---

// KeyOrderInvalidFilter — неизвестный статус в фильтре списка заказов.
const KeyOrderInvalidFilter = "orders.invalid_filter"

// OrdersHandler — страница заказов: фильтр, карточка и переходы статуса.
//
//	GET  /admin/orders?status=X   список (status=all — все; без параметра — прежний фильтр)
//	GET  /admin/orders/{id}       открыть карточку заказа
//	POST /admin/orders/close      закрыть карточку
//	POST /admin/orders/{id}/status перевести заказ в status
type OrdersHandler struct {
	*PageDeps
	logger *slog.Logger
}

// NewOrdersHandler создаёт обработчик страницы заказов.
func NewOrdersHandler(deps *PageDeps, logger *slog.Logger) *OrdersHandler {
	return &OrdersHandler{
		PageDeps: deps,
		logger:   logger.With(slog.String("component", "ui.orders")),
	}
}

// Path — префикс маршрутов страницы.
func (h *OrdersHandler) Path() string { return "/admin/orders" }

// Routes регистрирует маршруты страницы.
func (h *OrdersHandler) Routes(r chi.Router) {
	r.Get("/", h.handleList)
	r.Post("/close", h.handleClose)
	r.Get("/{id}", h.handleOpen)
	r.Post("/{id}/status", h.handleStatus)
}

func (h *OrdersHandler) controller(s *auth.SessionData) *service.Orders {
	return state.Get(h.Store, s.ID, "orders", func() *service.Orders {
		return service.NewOrders(h.service(s, h.logger))
	})
}

func (h *OrdersHandler) handleList(w http.ResponseWriter, r *http.Request) {
	session := requireSession(w, r)
	if session == nil {
		return
	}
	ctl := h.controller(session)

	if r.URL.Query().Has("status") {
		if err := ctl.SetStatusFilter(r.URL.Query().Get("status")); err != nil {
			ctl.Notify(resource.Notice{Kind: resource.NoticeError, Key: KeyOrderInvalidFilter})
		}
	}
	ctl.LoadIfStale(r.Context(), freshness)

	view := ctl.View()
	data := pages.OrdersData{
		List:   listData(h.PageDeps, session, "orders", view, r, nil, ""),
		Status: view.Filter,
	}
	if view.Modal == resource.ModalEditing {
		if o, ok := view.Find(ctl.RecordID, view.EditingID); ok {
			data.Open = &o
		}
	}
	renderPage(w, r, h.logger, pages.Orders(data))
}

func (h *OrdersHandler) handleOpen(w http.ResponseWriter, r *http.Request) {
	session := requireSession(w, r)
	if session == nil {
		return
	}
	ctl := h.controller(session)
	ctl.LoadIfStale(r.Context(), freshness)
	ctl.OpenEdit(chi.URLParam(r, "id"))
	http.Redirect(w, r, "/admin/orders", http.StatusFound)
}

func (h *OrdersHandler) handleClose(w http.ResponseWriter, r *http.Request) {
	session := requireSession(w, r)
	if session == nil {
		return
	}
	h.controller(session).CloseModal()
	seeOther(w, r, "/admin/orders")
}

// handleStatus переносит заметку и срок доставки в черновик открытой
// карточки и выполняет переход.
func (h *OrdersHandler) handleStatus(w http.ResponseWriter, r *http.Request) {
	session := requireSession(w, r)
	if session == nil {
		return
	}
	ctl := h.controller(session)
	if err := parseForm(w, r, h.maxUpload()); err != nil {
		ctl.Notify(resource.Notice{Kind: resource.NoticeError, Key: KeyFormInvalid})
		seeOther(w, r, "/admin/orders")
		return
	}

	ctl.SetDraft(model.OrderDraft{
		AdminNote:         formString(r, "adminNote"),
		EstimatedDelivery: formString(r, "estimatedDelivery"),
	})
	status, err := model.ParseOrderStatus(formString(r, "status"))
	if err != nil {
		ctl.Notify(resource.Notice{Kind: resource.NoticeError, Key: service.KeyOrderInvalidTransition})
		seeOther(w, r, "/admin/orders")
		return
	}
	ctl.SetStatus(r.Context(), chi.URLParam(r, "id"), status)
	seeOther(w, r, "/admin/orders")
}
