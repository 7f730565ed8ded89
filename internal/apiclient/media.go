package apiclient

import (
	"context"
	"net/http"

	"github.com/ahmad115kobane-wq/adminapp/internal/domain/model"
)

// multipartResource — общий аксессор ресурсов, принимающих multipart-формы.
type multipartResource[T any] struct {
	c    *Client
	name string
	path string
}

func (r multipartResource[T]) list(ctx context.Context) ([]T, error) {
	return list[T](ctx, r.c, r.name+".list", r.path, nil)
}

func (r multipartResource[T]) create(ctx context.Context, form model.Form) error {
	return r.c.do(ctx, request{op: r.name + ".create", method: http.MethodPost, path: r.path, form: &form}, nil)
}

func (r multipartResource[T]) update(ctx context.Context, id string, form model.Form) error {
	return r.c.do(ctx, request{op: r.name + ".update", method: http.MethodPut, path: r.path + "/" + escape(id), form: &form}, nil)
}

func (r multipartResource[T]) delete(ctx context.Context, id string) error {
	return r.c.do(ctx, request{op: r.name + ".delete", method: http.MethodDelete, path: r.path + "/" + escape(id)}, nil)
}

// SliderAPI — слайды главного экрана.
type SliderAPI struct{ r multipartResource[model.Slider] }

// Sliders возвращает аксессор слайдов.
func (c *Client) Sliders() *SliderAPI {
	return &SliderAPI{r: multipartResource[model.Slider]{c: c, name: "sliders", path: "/sliders"}}
}

// List возвращает все слайды.
func (s *SliderAPI) List(ctx context.Context) ([]model.Slider, error) { return s.r.list(ctx) }

// Create создаёт слайд.
func (s *SliderAPI) Create(ctx context.Context, form model.Form) error { return s.r.create(ctx, form) }

// Update обновляет слайд id.
func (s *SliderAPI) Update(ctx context.Context, id string, form model.Form) error {
	return s.r.update(ctx, id, form)
}

// Delete удаляет слайд id.
func (s *SliderAPI) Delete(ctx context.Context, id string) error { return s.r.delete(ctx, id) }

// SupervisorAPI — супервайзеры.
type SupervisorAPI struct{ r multipartResource[model.Supervisor] }

// Supervisors возвращает аксессор супервайзеров.
func (c *Client) Supervisors() *SupervisorAPI {
	return &SupervisorAPI{r: multipartResource[model.Supervisor]{c: c, name: "supervisors", path: "/supervisors"}}
}

// List возвращает всех супервайзеров.
func (s *SupervisorAPI) List(ctx context.Context) ([]model.Supervisor, error) { return s.r.list(ctx) }

// Create создаёт супервайзера.
func (s *SupervisorAPI) Create(ctx context.Context, form model.Form) error { return s.r.create(ctx, form) }

// Update обновляет супервайзера id.
func (s *SupervisorAPI) Update(ctx context.Context, id string, form model.Form) error {
	return s.r.update(ctx, id, form)
}

// Delete удаляет супервайзера id.
func (s *SupervisorAPI) Delete(ctx context.Context, id string) error { return s.r.delete(ctx, id) }

// VideoAdAPI — видеореклама.
type VideoAdAPI struct{ r multipartResource[model.VideoAd] }

// VideoAds возвращает аксессор видеорекламы.
func (c *Client) VideoAds() *VideoAdAPI {
	return &VideoAdAPI{r: multipartResource[model.VideoAd]{c: c, name: "video_ads", path: "/video-ads"}}
}

// List возвращает все ролики.
func (v *VideoAdAPI) List(ctx context.Context) ([]model.VideoAd, error) { return v.r.list(ctx) }

// Create создаёт ролик.
func (v *VideoAdAPI) Create(ctx context.Context, form model.Form) error { return v.r.create(ctx, form) }

// Update обновляет ролик id.
func (v *VideoAdAPI) Update(ctx context.Context, id string, form model.Form) error {
	return v.r.update(ctx, id, form)
}

// SetActive переключает активность ролика id (форма только с isActive).
func (v *VideoAdAPI) SetActive(ctx context.Context, id string, active bool) error {
	return v.r.update(ctx, id, model.ActiveForm(active))
}

// Delete удаляет ролик id.
func (v *VideoAdAPI) Delete(ctx context.Context, id string) error { return v.r.delete(ctx, id) }
