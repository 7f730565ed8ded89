package pages

import "github.com/ahmad115kobane-wq/adminapp/internal/service"

// DashboardData — данные главной страницы.
type DashboardData struct {
	Chrome
	Stats service.Stats
	// Failed — счётчики не загрузились.
	Failed bool
}

type statCard struct {
	key   string
	href  string
	icon  string
	value int
}

func dashboardCards(s service.Stats) []statCard {
	return []statCard{
		{"nav.matches", matchesPath, "⚽", s.Matches},
		{"dashboard.live", matchesPath, "🔴", s.LiveMatches},
		{"nav.teams", teamsPath, "👥", s.Teams},
		{"nav.competitions", competitionsPath, "🏆", s.Competitions},
		{"nav.operators", operatorsPath, "🎙", s.Operators},
		{"nav.products", productsPath, "🛍", s.Products},
		{"dashboard.pending_orders", ordersPath + "?status=pending", "📦", s.PendingOrders},
		{"nav.sliders", slidersPath, "🎞", s.Sliders},
		{"nav.videoads", videoAdsPath, "🎬", s.VideoAds},
	}
}
