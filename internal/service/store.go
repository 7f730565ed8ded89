package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/ahmad115kobane-wq/adminapp/internal/apiclient"
	"github.com/ahmad115kobane-wq/adminapp/internal/domain/model"
	"github.com/ahmad115kobane-wq/adminapp/internal/resource"
)

// --- Товары ---

// Products — страница товаров со справочником категорий.
type Products struct {
	*resource.Controller[model.Product, model.ProductDraft]
	Categories *resource.LookupOf[model.Category]
}

// NewProducts создаёт контроллер товаров.
func NewProducts(d Deps) *Products {
	api := d.API.Store()
	p := &Products{
		Categories: resource.NewLookup("categories", api.Categories),
	}
	p.Controller = resource.New(resource.Schema[model.Product, model.ProductDraft]{
		Name:  "products",
		ID:    func(pr model.Product) string { return pr.ID },
		New:   func(string) model.ProductDraft { return model.NewProductDraft() },
		Draft: model.Product.Draft,
		Uploads: []resource.Upload[model.ProductDraft]{{
			Name:  "image",
			File:  func(pd *model.ProductDraft) *model.File { return pd.Image },
			Apply: func(pd *model.ProductDraft, stored string) { pd.ImageURL, pd.Image = stored, nil },
		}},
		Messages: resource.Messages{
			Created:      "products.created",
			Updated:      "products.updated",
			SaveFailed:   "toast.failed",
			DeleteFailed: "toast.failed",
		},
	}, resource.Funcs[model.Product, model.ProductDraft]{
		ListFn: func(ctx context.Context, _ string) ([]model.Product, error) {
			return api.Products(ctx)
		},
		CreateFn: func(ctx context.Context, pd model.ProductDraft) error {
			return api.CreateProduct(ctx, pd.Payload())
		},
		UpdateFn: func(ctx context.Context, id string, pd model.ProductDraft) error {
			return api.UpdateProduct(ctx, id, pd.Payload())
		},
		DeleteFn: api.DeleteProduct,
	}, d.options(resource.WithLookups(p.Categories))...)
	return p
}

// CategoryName возвращает отображаемое имя категории id или "".
func (p *Products) CategoryName(id string) string {
	for _, c := range p.Categories.Items() {
		if c.ID == id {
			return c.DisplayName()
		}
	}
	return ""
}

// SearchProducts — клиентский поиск по трём названиям.
func SearchProducts(items []model.Product, q string) []model.Product {
	return resource.Search(items, strings.TrimSpace(q), model.Product.Matches)
}

// --- Баннеры ---

// Banners — страница баннеров магазина.
type Banners = resource.Controller[model.Banner, model.BannerDraft]

// NewBanners создаёт контроллер баннеров.
func NewBanners(d Deps) *Banners {
	api := d.API.Store()
	return resource.New(resource.Schema[model.Banner, model.BannerDraft]{
		Name:  "banners",
		ID:    func(b model.Banner) string { return b.ID },
		New:   func(string) model.BannerDraft { return model.NewBannerDraft() },
		Draft: model.Banner.Draft,
		Uploads: []resource.Upload[model.BannerDraft]{{
			Name:  "image",
			File:  func(bd *model.BannerDraft) *model.File { return bd.Image },
			Apply: func(bd *model.BannerDraft, stored string) { bd.ImageURL, bd.Image = stored, nil },
		}},
		Messages: resource.Messages{
			Created:      "banners.created",
			Updated:      "banners.updated",
			SaveFailed:   "toast.failed",
			DeleteFailed: "toast.failed",
		},
	}, resource.Funcs[model.Banner, model.BannerDraft]{
		ListFn: func(ctx context.Context, _ string) ([]model.Banner, error) {
			return api.Banners(ctx)
		},
		CreateFn: func(ctx context.Context, bd model.BannerDraft) error {
			return api.CreateBanner(ctx, bd.Payload())
		},
		UpdateFn: func(ctx context.Context, id string, bd model.BannerDraft) error {
			return api.UpdateBanner(ctx, id, bd.Payload())
		},
		DeleteFn: api.DeleteBanner,
	}, d.options()...)
}

// --- Заказы ---

// Orders — страница заказов: фильтр по статусу, карточка заказа, переходы статуса.
// Создание и редактирование заказов не поддерживаются.
type Orders struct {
	*resource.Controller[model.Order, model.OrderDraft]
	api *apiclient.OrderAPI
}

// NewOrders создаёт контроллер заказов.
func NewOrders(d Deps) *Orders {
	api := d.API.Orders()
	o := &Orders{api: api}
	o.Controller = resource.New(resource.Schema[model.Order, model.OrderDraft]{
		Name: "orders",
		ID:   func(or model.Order) string { return or.ID },
		New:  func(string) model.OrderDraft { return model.OrderDraft{} },
		// Карточка открывается с пустыми заметкой и сроком доставки.
		Draft: func(model.Order) model.OrderDraft { return model.OrderDraft{} },
		Messages: resource.Messages{
			LoadFailed:       "orders.load_failed",
			TransitionFailed: "toast.failed",
		},
	}, resource.Funcs[model.Order, model.OrderDraft]{
		ListFn: func(ctx context.Context, status string) ([]model.Order, error) {
			return api.List(ctx, model.OrderStatus(status))
		},
	}, d.options()...)
	return o
}

// SetStatusFilter задаёт фильтр списка: "" или "all" — все заказы.
func (o *Orders) SetStatusFilter(v string) error {
	if v == "" || v == "all" {
		o.SetFilter("")
		return nil
	}
	status, err := model.ParseOrderStatus(v)
	if err != nil {
		return err
	}
	o.SetFilter(string(status))
	return nil
}

// SetStatus выполняет переход заказа id в status с заметкой и сроком
// доставки из открытой карточки. Недопустимый переход до backend не доходит.
func (o *Orders) SetStatus(ctx context.Context, id string, status model.OrderStatus) bool {
	var (
		order model.Order
		found bool
	)
	for _, it := range o.Items() {
		if it.ID == id {
			order, found = it, true
			break
		}
	}
	if !found {
		o.Notify(resource.Notice{Kind: resource.NoticeError, Key: resource.DefaultMessages().NotFound})
		return false
	}
	if !order.CanMoveTo(status) {
		o.Notify(resource.Notice{Kind: resource.NoticeError, Key: KeyOrderInvalidTransition})
		return false
	}
	return o.Transition(ctx, id, "orders."+string(status), func(ctx context.Context, od model.OrderDraft) error {
		if err := o.api.UpdateStatus(ctx, id, od.StatusPayload(status)); err != nil {
			return fmt.Errorf("заказ %s → %s: %w", id, status, err)
		}
		return nil
	})
}
