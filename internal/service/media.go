package service

import (
	"context"
	"strings"

	"github.com/ahmad115kobane-wq/adminapp/internal/domain/model"
	"github.com/ahmad115kobane-wq/adminapp/internal/resource"
)

// Файлы слайдов, супервайзеров и роликов уходят в той же multipart-форме,
// что и остальные поля, поэтому загрузчик здесь не используется.

// Sliders — страница слайдов.
type Sliders = resource.Controller[model.Slider, model.SliderDraft]

// NewSliders создаёт контроллер слайдов.
func NewSliders(d Deps) *Sliders {
	api := d.API.Sliders()
	return resource.New(resource.Schema[model.Slider, model.SliderDraft]{
		Name:  "sliders",
		ID:    func(s model.Slider) string { return s.ID },
		New:   func(string) model.SliderDraft { return model.NewSliderDraft() },
		Draft: model.Slider.Draft,
		Validate: func(sd model.SliderDraft, creating bool) string {
			if creating && sd.Image.Empty() {
				return KeySliderImageRequired
			}
			return ""
		},
		Messages: resource.Messages{
			Created:      "sliders.created",
			Updated:      "sliders.updated",
			SaveFailed:   "toast.failed",
			DeleteFailed: "toast.failed",
		},
	}, resource.Funcs[model.Slider, model.SliderDraft]{
		ListFn: func(ctx context.Context, _ string) ([]model.Slider, error) {
			return api.List(ctx)
		},
		CreateFn: func(ctx context.Context, sd model.SliderDraft) error {
			return api.Create(ctx, sd.Form())
		},
		UpdateFn: func(ctx context.Context, id string, sd model.SliderDraft) error {
			return api.Update(ctx, id, sd.Form())
		},
		DeleteFn: api.Delete,
	}, d.options()...)
}

// Supervisors — страница супервайзеров.
type Supervisors = resource.Controller[model.Supervisor, model.SupervisorDraft]

// NewSupervisors создаёт контроллер супервайзеров.
func NewSupervisors(d Deps) *Supervisors {
	api := d.API.Supervisors()
	return resource.New(resource.Schema[model.Supervisor, model.SupervisorDraft]{
		Name:  "supervisors",
		ID:    func(s model.Supervisor) string { return s.ID },
		New:   func(string) model.SupervisorDraft { return model.NewSupervisorDraft() },
		Draft: model.Supervisor.Draft,
		Validate: func(sd model.SupervisorDraft, _ bool) string {
			if strings.TrimSpace(sd.Name) == "" {
				return KeySupervisorNameRequired
			}
			return ""
		},
		Messages: resource.Messages{
			Created:    "supervisors.created",
			Updated:    "supervisors.updated",
			LoadFailed: "supervisors.load_failed",
		},
	}, resource.Funcs[model.Supervisor, model.SupervisorDraft]{
		ListFn: func(ctx context.Context, _ string) ([]model.Supervisor, error) {
			return api.List(ctx)
		},
		CreateFn: func(ctx context.Context, sd model.SupervisorDraft) error {
			return api.Create(ctx, sd.Form())
		},
		UpdateFn: func(ctx context.Context, id string, sd model.SupervisorDraft) error {
			return api.Update(ctx, id, sd.Form())
		},
		DeleteFn: api.Delete,
	}, d.options()...)
}

// SearchSupervisors — клиентский поиск по имени.
func SearchSupervisors(items []model.Supervisor, q string) []model.Supervisor {
	return resource.Search(items, strings.TrimSpace(q), model.Supervisor.Matches)
}

// VideoAds — страница видеорекламы.
type VideoAds struct {
	*resource.Controller[model.VideoAd, model.VideoAdDraft]
	setActive func(ctx context.Context, id string, active bool) error
}

// NewVideoAds создаёт контроллер видеорекламы.
func NewVideoAds(d Deps) *VideoAds {
	api := d.API.VideoAds()
	v := &VideoAds{setActive: api.SetActive}
	v.Controller = resource.New(resource.Schema[model.VideoAd, model.VideoAdDraft]{
		Name:  "video_ads",
		ID:    func(a model.VideoAd) string { return a.ID },
		New:   func(string) model.VideoAdDraft { return model.NewVideoAdDraft() },
		Draft: model.VideoAd.Draft,
		Validate: func(vd model.VideoAdDraft, creating bool) string {
			if creating && vd.Video.Empty() {
				return KeyVideoAdVideoRequired
			}
			return ""
		},
		Messages: resource.Messages{
			Created:          "videoads.created",
			Updated:          "videoads.updated",
			LoadFailed:       "videoads.load_failed",
			TransitionFailed: "toast.update_failed",
		},
	}, resource.Funcs[model.VideoAd, model.VideoAdDraft]{
		ListFn: func(ctx context.Context, _ string) ([]model.VideoAd, error) {
			return api.List(ctx)
		},
		CreateFn: func(ctx context.Context, vd model.VideoAdDraft) error {
			return api.Create(ctx, vd.Form())
		},
		UpdateFn: func(ctx context.Context, id string, vd model.VideoAdDraft) error {
			return api.Update(ctx, id, vd.Form())
		},
		DeleteFn: api.Delete,
	}, d.options()...)
	return v
}

// ToggleActive включает или выключает ролик id формой только с isActive.
func (v *VideoAds) ToggleActive(ctx context.Context, id string) bool {
	var (
		ad    model.VideoAd
		found bool
	)
	for _, it := range v.Items() {
		if it.ID == id {
			ad, found = it, true
			break
		}
	}
	if !found {
		v.Notify(resource.Notice{Kind: resource.NoticeError, Key: resource.DefaultMessages().NotFound})
		return false
	}
	key := "videoads.activated"
	if ad.IsActive {
		key = "videoads.deactivated"
	}
	return v.Transition(ctx, id, key, func(ctx context.Context, _ model.VideoAdDraft) error {
		return v.setActive(ctx, id, !ad.IsActive)
	})
}
