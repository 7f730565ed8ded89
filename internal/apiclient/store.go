package apiclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/ahmad115kobane-wq/adminapp/internal/domain/model"
)

// ErrEmptyImageURL — backend принял файл, но не вернул imageUrl.
var ErrEmptyImageURL = errors.New("apiclient: backend не вернул imageUrl")

// StoreAPI — магазин: товары, категории, баннеры, загрузка изображений.
type StoreAPI struct{ c *Client }

// Store возвращает аксессор магазина.
func (c *Client) Store() *StoreAPI { return &StoreAPI{c: c} }

// Products возвращает все товары.
func (s *StoreAPI) Products(ctx context.Context) ([]model.Product, error) {
	return list[model.Product](ctx, s.c, "products.list", "/store/products", nil)
}

// Categories возвращает категории товаров.
func (s *StoreAPI) Categories(ctx context.Context) ([]model.Category, error) {
	return list[model.Category](ctx, s.c, "categories.list", "/store/categories", nil)
}

// CreateProduct создаёт товар.
func (s *StoreAPI) CreateProduct(ctx context.Context, p model.ProductPayload) error {
	return s.c.do(ctx, request{op: "products.create", method: http.MethodPost, path: "/store/products", body: p}, nil)
}

// UpdateProduct обновляет товар id.
func (s *StoreAPI) UpdateProduct(ctx context.Context, id string, p model.ProductPayload) error {
	return s.c.do(ctx, request{op: "products.update", method: http.MethodPut, path: "/store/products/" + escape(id), body: p}, nil)
}

// DeleteProduct удаляет товар id.
func (s *StoreAPI) DeleteProduct(ctx context.Context, id string) error {
	return s.c.do(ctx, request{op: "products.delete", method: http.MethodDelete, path: "/store/products/" + escape(id)}, nil)
}

// Banners возвращает все баннеры.
func (s *StoreAPI) Banners(ctx context.Context) ([]model.Banner, error) {
	return list[model.Banner](ctx, s.c, "banners.list", "/store/banners", nil)
}

// CreateBanner создаёт баннер.
func (s *StoreAPI) CreateBanner(ctx context.Context, p model.BannerPayload) error {
	return s.c.do(ctx, request{op: "banners.create", method: http.MethodPost, path: "/store/banners", body: p}, nil)
}

// UpdateBanner обновляет баннер id.
func (s *StoreAPI) UpdateBanner(ctx context.Context, id string, p model.BannerPayload) error {
	return s.c.do(ctx, request{op: "banners.update", method: http.MethodPut, path: "/store/banners/" + escape(id), body: p}, nil)
}

// DeleteBanner удаляет баннер id.
func (s *StoreAPI) DeleteBanner(ctx context.Context, id string) error {
	return s.c.do(ctx, request{op: "banners.delete", method: http.MethodDelete, path: "/store/banners/" + escape(id)}, nil)
}

type uploadResult struct {
	ImageURL string `json:"imageUrl"`
}

// UploadImage загружает изображение (поле image) и возвращает сохранённый путь.
func (s *StoreAPI) UploadImage(ctx context.Context, f *model.File) (string, error) {
	var form model.Form
	form.Attach("image", f)
	if len(form.Files) == 0 {
		return "", fmt.Errorf("store.upload: пустой файл")
	}
	res, err := single[uploadResult](ctx, s.c, request{op: "store.upload", method: http.MethodPost, path: "/store/upload", form: &form})
	if err != nil {
		return "", err
	}
	if res.ImageURL == "" {
		return "", ErrEmptyImageURL
	}
	return res.ImageURL, nil
}

// OrderAPI — заказы.
type OrderAPI struct{ c *Client }

// Orders возвращает аксессор заказов.
func (c *Client) Orders() *OrderAPI { return &OrderAPI{c: c} }

// List возвращает заказы; пустой status — все.
func (o *OrderAPI) List(ctx context.Context, status model.OrderStatus) ([]model.Order, error) {
	var q url.Values
	if status != "" {
		q = url.Values{"status": {string(status)}}
	}
	return list[model.Order](ctx, o.c, "orders.list", "/orders", q)
}

// UpdateStatus выполняет переход заказа id.
func (o *OrderAPI) UpdateStatus(ctx context.Context, id string, p model.OrderStatusPayload) error {
	return o.c.do(ctx, request{
		op:     "orders.status",
		method: http.MethodPatch,
		path:   "/orders/" + escape(id) + "/status",
		body:   p,
	}, nil)
}
