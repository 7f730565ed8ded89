package pages

import "github.com/ahmad115kobane-wq/adminapp/internal/domain/model"

const (
	slidersPath     = "/admin/sliders"
	supervisorsPath = "/admin/supervisors"
	videoAdsPath    = "/admin/video-ads"
)

// SlidersData — данные страницы слайдера.
type SlidersData = List[model.Slider, model.SliderDraft]

// SupervisorsData — данные страницы супервайзеров.
type SupervisorsData = List[model.Supervisor, model.SupervisorDraft]

// VideoAdsData — данные страницы видеорекламы.
type VideoAdsData = List[model.VideoAd, model.VideoAdDraft]
