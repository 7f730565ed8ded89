// store.go — сущности магазина: категории, товары, баннеры, заказы.
package model

import (
	"strings"
	"time"
)

// DefaultProductEmoji — эмодзи нового товара.
const DefaultProductEmoji = "📦"

// Category — категория товаров (только чтение: используется в селекторе).
type Category struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	NameAr string `json:"nameAr"`
	NameKu string `json:"nameKu"`
}

// DisplayName — арабское имя категории, иначе основное.
func (c Category) DisplayName() string {
	if c.NameAr != "" {
		return c.NameAr
	}
	return c.Name
}

// Product — товар магазина. Названия и описания на трёх языках (en/ar/ku).
type Product struct {
	ID            string      `json:"id"`
	CategoryID    string      `json:"categoryId"`
	Name          string      `json:"name"`
	NameAr        string      `json:"nameAr"`
	NameKu        string      `json:"nameKu"`
	Description   string      `json:"description"`
	DescriptionAr string      `json:"descriptionAr"`
	DescriptionKu string      `json:"descriptionKu"`
	Price         float64     `json:"price"`
	OriginalPrice float64     `json:"originalPrice"`
	Discount      LooseString `json:"discount"`
	ImageURL      string      `json:"imageUrl"`
	Emoji         string      `json:"emoji"`
	Badge         Badge       `json:"badge"`
	Colors        StringList  `json:"colors"`
	Sizes         StringList  `json:"sizes"`
	InStock       *bool       `json:"inStock"`
	IsFeatured    bool        `json:"isFeatured"`
	IsActive      *bool       `json:"isActive"`
	SortOrder     int         `json:"sortOrder"`
	Category      *Category   `json:"category,omitempty"`
}

// Available — товар в наличии (отсутствующее поле трактуется как true).
func (p Product) Available() bool { return boolOr(p.InStock, true) }

// Active — товар показывается в магазине (отсутствующее поле трактуется как true).
func (p Product) Active() bool { return boolOr(p.IsActive, true) }

// Matches — клиентский поиск: name без учёта регистра, nameAr, nameKu.
func (p Product) Matches(q string) bool {
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name), strings.ToLower(q)) ||
		strings.Contains(p.NameAr, q) ||
		strings.Contains(p.NameKu, q)
}

// ProductDraft — редактируемая копия товара.
type ProductDraft struct {
	CategoryID    string
	Name          string
	NameAr        string
	NameKu        string
	Description   string
	DescriptionAr string
	DescriptionKu string
	Price         float64
	OriginalPrice float64
	Discount      string
	ImageURL      string
	Emoji         string
	Badge         Badge
	Colors        []string
	Sizes         []string
	InStock       bool
	IsFeatured    bool
	IsActive      bool
	SortOrder     int
	Image         *File
}

// ProductPayload — тело create/update товара. Пустые списки цветов и размеров не отправляются.
type ProductPayload struct {
	CategoryID    string   `json:"categoryId"`
	Name          string   `json:"name"`
	NameAr        string   `json:"nameAr"`
	NameKu        string   `json:"nameKu"`
	Description   string   `json:"description"`
	DescriptionAr string   `json:"descriptionAr"`
	DescriptionKu string   `json:"descriptionKu"`
	Price         float64  `json:"price"`
	OriginalPrice float64  `json:"originalPrice"`
	Discount      string   `json:"discount"`
	ImageURL      string   `json:"imageUrl"`
	Emoji         string   `json:"emoji"`
	Badge         Badge    `json:"badge"`
	Colors        []string `json:"colors,omitempty"`
	Sizes         []string `json:"sizes,omitempty"`
	InStock       bool     `json:"inStock"`
	IsFeatured    bool     `json:"isFeatured"`
	IsActive      bool     `json:"isActive"`
	SortOrder     int      `json:"sortOrder"`
}

// NewProductDraft — значения формы создания.
func NewProductDraft() ProductDraft {
	return ProductDraft{Emoji: DefaultProductEmoji, InStock: true, IsActive: true}
}

// Draft копирует редактируемые поля в черновик.
func (p Product) Draft() ProductDraft {
	d := ProductDraft{
		CategoryID:    p.CategoryID,
		Name:          p.Name,
		NameAr:        p.NameAr,
		NameKu:        p.NameKu,
		Description:   p.Description,
		DescriptionAr: p.DescriptionAr,
		DescriptionKu: p.DescriptionKu,
		Price:         p.Price,
		OriginalPrice: p.OriginalPrice,
		Discount:      p.Discount.String(),
		ImageURL:      p.ImageURL,
		Emoji:         p.Emoji,
		Badge:         p.Badge,
		Colors:        append([]string(nil), p.Colors...),
		Sizes:         append([]string(nil), p.Sizes...),
		InStock:       p.Available(),
		IsFeatured:    p.IsFeatured,
		IsActive:      p.Active(),
		SortOrder:     p.SortOrder,
	}
	if d.Emoji == "" {
		d.Emoji = DefaultProductEmoji
	}
	return d
}

// Payload формирует тело запроса.
func (d ProductDraft) Payload() ProductPayload {
	p := ProductPayload{
		CategoryID:    d.CategoryID,
		Name:          d.Name,
		NameAr:        d.NameAr,
		NameKu:        d.NameKu,
		Description:   d.Description,
		DescriptionAr: d.DescriptionAr,
		DescriptionKu: d.DescriptionKu,
		Price:         d.Price,
		OriginalPrice: d.OriginalPrice,
		Discount:      d.Discount,
		ImageURL:      d.ImageURL,
		Emoji:         d.Emoji,
		Badge:         d.Badge,
		InStock:       d.InStock,
		IsFeatured:    d.IsFeatured,
		IsActive:      d.IsActive,
		SortOrder:     d.SortOrder,
	}
	if len(d.Colors) > 0 {
		p.Colors = d.Colors
	}
	if len(d.Sizes) > 0 {
		p.Sizes = d.Sizes
	}
	return p
}

// --- Баннер ---

// Цвета градиента нового баннера.
const (
	DefaultGradientStart = "#3b82f6"
	DefaultGradientEnd   = "#8b5cf6"
)

// Banner — рекламный баннер магазина.
type Banner struct {
	ID            string      `json:"id"`
	Title         string      `json:"title"`
	TitleAr       string      `json:"titleAr"`
	TitleKu       string      `json:"titleKu"`
	Subtitle      string      `json:"subtitle"`
	SubtitleAr    string      `json:"subtitleAr"`
	SubtitleKu    string      `json:"subtitleKu"`
	ImageURL      string      `json:"imageUrl"`
	GradientStart string      `json:"gradientStart"`
	GradientEnd   string      `json:"gradientEnd"`
	Discount      LooseString `json:"discount"`
	IsActive      *bool       `json:"isActive"`
	SortOrder     int         `json:"sortOrder"`
}

// Active — баннер показывается (отсутствующее поле трактуется как true).
func (b Banner) Active() bool { return boolOr(b.IsActive, true) }

// BannerDraft — редактируемая копия баннера.
type BannerDraft struct {
	Title         string
	TitleAr       string
	TitleKu       string
	Subtitle      string
	SubtitleAr    string
	SubtitleKu    string
	ImageURL      string
	GradientStart string
	GradientEnd   string
	Discount      string
	IsActive      bool
	SortOrder     int
	Image         *File
}

// BannerPayload — тело create/update баннера.
type BannerPayload struct {
	Title         string `json:"title"`
	TitleAr       string `json:"titleAr"`
	TitleKu       string `json:"titleKu"`
	Subtitle      string `json:"subtitle"`
	SubtitleAr    string `json:"subtitleAr"`
	SubtitleKu    string `json:"subtitleKu"`
	ImageURL      string `json:"imageUrl"`
	GradientStart string `json:"gradientStart"`
	GradientEnd   string `json:"gradientEnd"`
	Discount      string `json:"discount"`
	IsActive      bool   `json:"isActive"`
	SortOrder     int    `json:"sortOrder"`
}

// NewBannerDraft — значения формы создания.
func NewBannerDraft() BannerDraft {
	return BannerDraft{GradientStart: DefaultGradientStart, GradientEnd: DefaultGradientEnd, IsActive: true}
}

// Draft копирует редактируемые поля в черновик.
func (b Banner) Draft() BannerDraft {
	d := BannerDraft{
		Title:         b.Title,
		TitleAr:       b.TitleAr,
		TitleKu:       b.TitleKu,
		Subtitle:      b.Subtitle,
		SubtitleAr:    b.SubtitleAr,
		SubtitleKu:    b.SubtitleKu,
		ImageURL:      b.ImageURL,
		GradientStart: b.GradientStart,
		GradientEnd:   b.GradientEnd,
		Discount:      b.Discount.String(),
		IsActive:      b.Active(),
		SortOrder:     b.SortOrder,
	}
	if d.GradientStart == "" {
		d.GradientStart = DefaultGradientStart
	}
	if d.GradientEnd == "" {
		d.GradientEnd = DefaultGradientEnd
	}
	return d
}

// Payload формирует тело запроса.
func (d BannerDraft) Payload() BannerPayload {
	return BannerPayload{
		Title:         d.Title,
		TitleAr:       d.TitleAr,
		TitleKu:       d.TitleKu,
		Subtitle:      d.Subtitle,
		SubtitleAr:    d.SubtitleAr,
		SubtitleKu:    d.SubtitleKu,
		ImageURL:      d.ImageURL,
		GradientStart: d.GradientStart,
		GradientEnd:   d.GradientEnd,
		Discount:      d.Discount,
		IsActive:      d.IsActive,
		SortOrder:     d.SortOrder,
	}
}

// --- Заказ ---

// Order — заказ покупателя.
type Order struct {
	ID                string      `json:"id"`
	CustomerName      string      `json:"customerName"`
	CustomerPhone     string      `json:"customerPhone"`
	CustomerAddress   string      `json:"customerAddress"`
	Items             []OrderItem `json:"items"`
	TotalAmount       float64     `json:"totalAmount"`
	DeliveryFee       float64     `json:"deliveryFee"`
	Status            OrderStatus `json:"status"`
	AdminNote         string      `json:"adminNote"`
	EstimatedDelivery string      `json:"estimatedDelivery"`
	CreatedAt         *time.Time  `json:"createdAt"`
}

// OrderItem — позиция заказа.
type OrderItem struct {
	ProductName   string  `json:"productName"`
	Quantity      int     `json:"quantity"`
	Price         float64 `json:"price"`
	SelectedSize  string  `json:"selectedSize"`
	SelectedColor string  `json:"selectedColor"`
}

// NextStatuses — допустимые переходы: pending → approved/rejected, approved → delivered.
func (o Order) NextStatuses() []OrderStatus {
	switch o.Status {
	case OrderPending:
		return []OrderStatus{OrderApproved, OrderRejected}
	case OrderApproved:
		return []OrderStatus{OrderDelivered}
	}
	return nil
}

// CanMoveTo сообщает, разрешён ли переход в status.
func (o Order) CanMoveTo(status OrderStatus) bool {
	for _, s := range o.NextStatuses() {
		if s == status {
			return true
		}
	}
	return false
}

// OrderDraft — поля модального окна заказа (заметка и срок доставки).
type OrderDraft struct {
	AdminNote         string
	EstimatedDelivery string
}

// OrderStatusPayload — тело updateStatus заказа. Пустые поля не отправляются.
type OrderStatusPayload struct {
	Status            OrderStatus `json:"status"`
	AdminNote         string      `json:"adminNote,omitempty"`
	EstimatedDelivery string      `json:"estimatedDelivery,omitempty"`
}

// StatusPayload формирует тело перехода в status.
func (d OrderDraft) StatusPayload(status OrderStatus) OrderStatusPayload {
	return OrderStatusPayload{
		Status:            status,
		AdminNote:         strings.TrimSpace(d.AdminNote),
		EstimatedDelivery: strings.TrimSpace(d.EstimatedDelivery),
	}
}
