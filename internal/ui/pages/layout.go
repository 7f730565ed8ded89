// Пакет pages — страницы Admin Dashboard. Разметка описана в *.templ,
// *_templ.go получены командой templ generate (из корня модуля)
// и вручную не редактируются.
package pages

import (
	"context"
	"strconv"
	"time"

	"github.com/ahmad115kobane-wq/adminapp/internal/apiclient"
	"github.com/ahmad115kobane-wq/adminapp/internal/resource"
	"github.com/ahmad115kobane-wq/adminapp/internal/ui/i18n"
)

// Chrome — данные каркаса, общие для всех страниц.
type Chrome struct {
	// Name и Email — оператор из сессии.
	Name  string
	Email string
	// Active — идентификатор активного пункта меню.
	Active string
	// Notices — уведомления, накопленные контроллером страницы.
	Notices []resource.Notice
	// MediaBase — адрес API для разрешения путей загруженных файлов.
	MediaBase string
	// Location — часовой пояс отображения времени.
	Location *time.Location
}

// Media возвращает адрес для отображения сохранённого пути файла.
func (c Chrome) Media(stored string) string {
	return apiclient.ResolveMediaURL(c.MediaBase, stored)
}

type navItem struct {
	id   string
	href string
	key  string
	icon string
}

// navGroups — разделы меню: спорт, магазин, медиа.
var navGroups = [][]navItem{
	{
		{"dashboard", "/admin/", "nav.dashboard", "🏠"},
		{"matches", matchesPath, "nav.matches", "⚽"},
		{"teams", teamsPath, "nav.teams", "👥"},
		{"competitions", competitionsPath, "nav.competitions", "🏆"},
		{"operators", operatorsPath, "nav.operators", "🎙"},
		{"supervisors", supervisorsPath, "nav.supervisors", "🧑‍⚖️"},
	},
	{
		{"products", productsPath, "nav.products", "🛍"},
		{"banners", bannersPath, "nav.banners", "🖼"},
		{"orders", ordersPath, "nav.orders", "📦"},
	},
	{
		{"sliders", slidersPath, "nav.sliders", "🎞"},
		{"videoads", videoAdsPath, "nav.videoads", "🎬"},
		{"events", "/admin/events", "nav.events", "📋"},
	},
}

// NoticeText возвращает текст уведомления на языке запроса.
// Дословный текст backend имеет приоритет над ключом.
func NoticeText(ctx context.Context, n resource.Notice) string {
	if n.Text != "" {
		return n.Text
	}
	return t(ctx, n.Key)
}

// LoginData — данные страницы входа.
type LoginData struct {
	Email string
	// Error — уведомление об ошибке входа (nil — нет ошибки).
	Error *resource.Notice
}

func pageTitle(ctx context.Context, titleKey string) string {
	return t(ctx, titleKey) + " | " + t(ctx, "app.title")
}

func t(ctx context.Context, key string) string { return i18n.T(ctx, key) }

func itoa(n int) string { return strconv.Itoa(n) }
