package pages

import (
	"context"

	"github.com/ahmad115kobane-wq/adminapp/internal/domain/model"
)

const (
	productsPath = "/admin/products"
	bannersPath  = "/admin/banners"
	ordersPath   = "/admin/orders"
)

// ProductsData — данные страницы товаров.
type ProductsData struct {
	List[model.Product, model.ProductDraft]
	Categories []model.Category
}

// categoryName возвращает имя категории товара.
func (d ProductsData) categoryName(p model.Product) string {
	if p.Category != nil {
		return p.Category.DisplayName()
	}
	for _, c := range d.Categories {
		if c.ID == p.CategoryID {
			return c.DisplayName()
		}
	}
	return "-"
}

func (d ProductsData) categoryOptions() []model.Option {
	opts := make([]model.Option, len(d.Categories))
	for i, c := range d.Categories {
		opts[i] = model.Option{Value: c.ID, Label: c.DisplayName()}
	}
	return opts
}

// BannersData — данные страницы баннеров.
type BannersData = List[model.Banner, model.BannerDraft]

func bannerGradient(b model.Banner) string {
	return "background:linear-gradient(135deg," + b.GradientStart + "," + b.GradientEnd + ")"
}

// OrdersData — данные страницы заказов.
type OrdersData struct {
	List[model.Order, model.OrderDraft]
	// Status — фильтр списка ("" — все).
	Status string
	// Open — заказ, открытый в карточке (nil — карточка закрыта).
	Open *model.Order
}

var orderBadge = map[model.OrderStatus]string{
	model.OrderPending:   "badge-yellow",
	model.OrderApproved:  "badge-blue",
	model.OrderRejected:  "badge-red",
	model.OrderDelivered: "badge-green",
}

// orderTabs — вкладки фильтра: все и каждый статус.
func orderTabs(ctx context.Context) []model.Option {
	return append([]model.Option{{Value: "", Label: t(ctx, "orders.all")}}, model.OrderStatusOptions()...)
}

func tabHref(status string) string {
	if status == "" {
		status = "all"
	}
	return ordersPath + "?status=" + status
}

func statusButtonClass(s model.OrderStatus) string {
	if s == model.OrderRejected {
		return "btn-danger"
	}
	return "btn-primary"
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[len(id)-8:]
	}
	return id
}
