// crud.go — обобщённые маршруты страницы-списка с модальной формой.
package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ahmad115kobane-wq/adminapp/internal/resource"
	"github.com/ahmad115kobane-wq/adminapp/internal/ui/auth"
	"github.com/ahmad115kobane-wq/adminapp/internal/ui/pages"
)

// KeyFormInvalid — форма не разобрана (слишком большая или повреждённая).
const KeyFormInvalid = "toast.form_invalid"

// controller — операции контроллера ресурса, которые вызывают маршруты.
type controller[T, D any] interface {
	View() resource.View[T, D]
	LoadIfStale(ctx context.Context, maxAge time.Duration) bool
	OpenCreate()
	OpenEdit(id string) bool
	CloseModal()
	Draft() D
	SetDraft(d D) bool
	Save(ctx context.Context) bool
	Delete(ctx context.Context, id string, confirmed bool) bool
	Notify(n resource.Notice)
}

// ops — набор разрешённых страницей операций.
type ops uint8

const (
	opCreate ops = 1 << iota
	opEdit
	opDelete

	opAll = opCreate | opEdit | opDelete
)

// crud — маршруты list/new/edit/save/close/delete поверх контроллера C.
//
//	GET  /             список (show)
//	GET  /new          открыть форму создания
//	GET  /{id}/edit    открыть форму редактирования
//	POST /             сохранить форму
//	POST /close        закрыть форму без сохранения
//	GET  /{id}/delete  показать подтверждение удаления
//	POST /{id}/delete  удалить (confirm=yes) или отказаться
type crud[T, D any, C controller[T, D]] struct {
	deps   *PageDeps
	logger *slog.Logger
	// back — куда перенаправлять после действий.
	back string
	ops  ops
	// get возвращает контроллер страницы сессии.
	get func(r *http.Request, s *auth.SessionData) C
	// decode переносит значения формы в текущий черновик.
	decode func(r *http.Request, current D) D
	// show загружает и отрисовывает страницу; confirmID — подтверждение удаления.
	show func(w http.ResponseWriter, r *http.Request, s *auth.SessionData, confirmID string)
}

// Routes регистрирует маршруты на роутере раздела.
func (c *crud[T, D, C]) Routes(r chi.Router) {
	r.Get("/", c.handleList)
	if c.ops&opCreate != 0 {
		r.Get("/new", c.handleNew)
	}
	if c.ops&opEdit != 0 {
		r.Get("/{id}/edit", c.handleEdit)
	}
	if c.ops&(opCreate|opEdit) != 0 {
		r.Post("/", c.handleSave)
		r.Post("/close", c.handleClose)
	}
	if c.ops&opDelete != 0 {
		r.Get("/{id}/delete", c.handleConfirm)
		r.Post("/{id}/delete", c.handleDelete)
	}
}

func (c *crud[T, D, C]) handleList(w http.ResponseWriter, r *http.Request) {
	session := requireSession(w, r)
	if session == nil {
		return
	}
	c.show(w, r, session, "")
}

func (c *crud[T, D, C]) handleNew(w http.ResponseWriter, r *http.Request) {
	session := requireSession(w, r)
	if session == nil {
		return
	}
	ctl := c.get(r, session)
	ctl.LoadIfStale(r.Context(), freshness)
	ctl.OpenCreate()
	http.Redirect(w, r, c.back, http.StatusFound)
}

func (c *crud[T, D, C]) handleEdit(w http.ResponseWriter, r *http.Request) {
	session := requireSession(w, r)
	if session == nil {
		return
	}
	ctl := c.get(r, session)
	ctl.LoadIfStale(r.Context(), freshness)
	ctl.OpenEdit(chi.URLParam(r, "id"))
	http.Redirect(w, r, c.back, http.StatusFound)
}

func (c *crud[T, D, C]) handleSave(w http.ResponseWriter, r *http.Request) {
	session := requireSession(w, r)
	if session == nil {
		return
	}
	ctl := c.get(r, session)

	if err := parseForm(w, r, c.deps.maxUpload()); err != nil {
		c.logger.Warn("Ошибка разбора формы",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
		ctl.Notify(resource.Notice{Kind: resource.NoticeError, Key: KeyFormInvalid})
		seeOther(w, r, c.back)
		return
	}

	// Закрытое окно: черновик не принимается, Save сам ничего не отправит.
	if ctl.SetDraft(c.decode(r, ctl.Draft())) {
		ctl.Save(r.Context())
	}
	seeOther(w, r, c.back)
}

func (c *crud[T, D, C]) handleClose(w http.ResponseWriter, r *http.Request) {
	session := requireSession(w, r)
	if session == nil {
		return
	}
	c.get(r, session).CloseModal()
	seeOther(w, r, c.back)
}

func (c *crud[T, D, C]) handleConfirm(w http.ResponseWriter, r *http.Request) {
	session := requireSession(w, r)
	if session == nil {
		return
	}
	c.show(w, r, session, chi.URLParam(r, "id"))
}

func (c *crud[T, D, C]) handleDelete(w http.ResponseWriter, r *http.Request) {
	session := requireSession(w, r)
	if session == nil {
		return
	}
	confirmed := r.FormValue("confirm") == "yes"
	c.get(r, session).Delete(r.Context(), chi.URLParam(r, "id"), confirmed)
	seeOther(w, r, c.back)
}

// --- Общие части страниц ---

// listData собирает данные страницы-списка из снимка контроллера.
func listData[T, D any](
	deps *PageDeps, s *auth.SessionData, active string,
	view resource.View[T, D], r *http.Request,
	search func(items []T, q string) []T, confirmID string,
) pages.List[T, D] {
	chrome := deps.chrome(s, active)
	chrome.Notices = view.Notices

	q := strings.TrimSpace(r.URL.Query().Get("q"))
	items := view.Items
	if q != "" && search != nil {
		items = search(items, q)
	}
	return pages.List[T, D]{
		Chrome:    chrome,
		View:      view,
		Items:     items,
		Query:     q,
		ConfirmID: confirmID,
	}
}

// containsFold — поиск подстроки без учёта регистра; q уже в нижнем регистре.
func containsFold(q string, values ...string) bool {
	for _, v := range values {
		if strings.Contains(strings.ToLower(v), q) {
			return true
		}
	}
	return false
}

// searchBy строит функцию клиентского поиска по текстовым полям записи.
func searchBy[T any](fields func(T) []string) func(items []T, q string) []T {
	return func(items []T, q string) []T {
		q = strings.ToLower(q)
		return resource.Search(items, q, func(it T, q string) bool {
			return containsFold(q, fields(it)...)
		})
	}
}
