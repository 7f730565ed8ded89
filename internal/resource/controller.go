// Пакет resource — обобщённый контроллер CRUD-страницы.
// Состояние страницы: список записей, флаги загрузки и сохранения,
// модальное окно (закрыто, создание, редактирование) с черновиком и очередь
// уведомлений. После каждой успешной мутации список перезагружается целиком.
package resource

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"

	"github.com/ahmad115kobane-wq/adminapp/internal/apiclient"
	"github.com/ahmad115kobane-wq/adminapp/internal/domain/model"
	"github.com/ahmad115kobane-wq/adminapp/internal/upload"
)

// Modal — состояние модального окна.
type Modal uint8

const (
	ModalClosed Modal = iota
	ModalCreating
	ModalEditing
)

// Upload — файловое поле черновика. File возвращает выбранный файл
// (nil — не выбран), Apply записывает сохранённый путь и сбрасывает файл.
type Upload[D any] struct {
	Name  string
	File  func(d *D) *model.File
	Apply func(d *D, stored string)
}

// Schema описывает ресурс для контроллера.
type Schema[T, D any] struct {
	// Name — имя ресурса в метриках и логах (competitions, matches, ...).
	Name string
	// ID возвращает идентификатор записи.
	ID func(T) string
	// New — черновик формы создания; filter — текущий фильтр списка.
	New func(filter string) D
	// Draft — черновик формы редактирования существующей записи.
	Draft func(T) D
	// Validate возвращает ключ уведомления, если черновик нельзя отправлять.
	Validate func(d D, creating bool) string
	// Uploads — файловые поля, загружаемые перед записью.
	Uploads []Upload[D]
	// Messages — ключи уведомлений; пустые заменяются общими.
	Messages Messages
}

// View — снимок состояния для отрисовки.
type View[T, D any] struct {
	Items     []T
	Loading   bool
	Loaded    bool
	Modal     Modal
	EditingID string
	Draft     D
	Saving    bool
	Filter    string
	Notices   []Notice
}

// Find ищет запись по идентификатору в снимке.
func (v View[T, D]) Find(id func(T) string, want string) (T, bool) {
	for _, it := range v.Items {
		if id(it) == want {
			return it, true
		}
	}
	var zero T
	return zero, false
}

// options — необязательные зависимости контроллера.
type options struct {
	uploader upload.Uploader
	lookups  []Lookup
	reload   func(ctx context.Context)
	logger   *slog.Logger
	clock    clockwork.Clock
	filter   string
}

// Option настраивает контроллер.
type Option func(*options)

// WithUploader задаёт загрузчик файловых полей.
func WithUploader(u upload.Uploader) Option {
	return func(o *options) { o.uploader = u }
}

// WithLookups добавляет справочники, загружаемые вместе со списком.
func WithLookups(l ...Lookup) Option {
	return func(o *options) { o.lookups = append(o.lookups, l...) }
}

// WithReload заменяет перезагрузку после мутации (вложенный ресурс
// перезагружает владельца).
func WithReload(fn func(ctx context.Context)) Option {
	return func(o *options) { o.reload = fn }
}

// WithLogger задаёт logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithClock задаёт часы (тесты).
func WithClock(c clockwork.Clock) Option {
	return func(o *options) { o.clock = c }
}

// WithFilter задаёт начальный фильтр списка.
func WithFilter(f string) Option {
	return func(o *options) { o.filter = f }
}

// Controller — состояние одной CRUD-страницы одного оператора.
type Controller[T, D any] struct {
	schema   Schema[T, D]
	acc      Accessor[T, D]
	uploader upload.Uploader
	lookups  []Lookup
	reload   func(ctx context.Context)
	logger   *slog.Logger
	clock    clockwork.Clock

	mu        sync.Mutex
	items     []T
	loading   bool
	loaded    bool
	loadedAt  time.Time
	modal     Modal
	editingID string
	draft     D
	saving    bool
	filter    string
	notices   []Notice
}

// New создаёт контроллер ресурса.
func New[T, D any](schema Schema[T, D], acc Accessor[T, D], opts ...Option) *Controller[T, D] {
	o := options{
		logger: slog.Default(),
		clock:  clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	schema.Messages = schema.Messages.withDefaults()

	c := &Controller[T, D]{
		schema:   schema,
		acc:      acc,
		uploader: o.uploader,
		lookups:  o.lookups,
		logger:   o.logger.With(slog.String("component", "resource"), slog.String("resource", schema.Name)),
		clock:    o.clock,
		filter:   o.filter,
	}
	c.reload = o.reload
	if c.reload == nil {
		c.reload = func(ctx context.Context) { c.Load(ctx) }
	}
	return c
}

// Name возвращает имя ресурса.
func (c *Controller[T, D]) Name() string { return c.schema.Name }

// RecordID возвращает идентификатор записи.
func (c *Controller[T, D]) RecordID(rec T) string { return c.schema.ID(rec) }

// View возвращает снимок состояния и забирает накопленные уведомления.
func (c *Controller[T, D]) View() View[T, D] {
	c.mu.Lock()
	defer c.mu.Unlock()
	v := View[T, D]{
		Items:     c.items,
		Loading:   c.loading,
		Loaded:    c.loaded,
		Modal:     c.modal,
		EditingID: c.editingID,
		Draft:     c.draft,
		Saving:    c.saving,
		Filter:    c.filter,
		Notices:   c.notices,
	}
	c.notices = nil
	return v
}

// Items возвращает текущий список.
func (c *Controller[T, D]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.items
}

// Draft возвращает текущий черновик.
func (c *Controller[T, D]) Draft() D {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// Filter возвращает текущий фильтр списка.
func (c *Controller[T, D]) Filter() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filter
}

// SetFilter меняет фильтр; список нужно перезагрузить.
func (c *Controller[T, D]) SetFilter(f string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.filter != f {
		c.filter = f
		c.loadedAt = time.Time{}
	}
}

// Notify добавляет уведомление в очередь.
func (c *Controller[T, D]) Notify(n Notice) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notices = append(c.notices, n)
}

func (c *Controller[T, D]) failure(key string, err error) {
	c.Notify(Notice{Kind: NoticeError, Key: key, Text: apiclient.Message(err)})
}

func (c *Controller[T, D]) success(key string) {
	c.Notify(Notice{Kind: NoticeSuccess, Key: key})
}

// Load загружает список с текущим фильтром и все справочники параллельно.
// Результат фиксируется только если успешны все запросы; при ошибке
// прежний список сохраняется. Флаг загрузки сбрасывается всегда.
func (c *Controller[T, D]) Load(ctx context.Context) bool {
	start := time.Now()

	c.mu.Lock()
	c.loading = true
	filter := c.filter
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.loading = false
		c.mu.Unlock()
	}()

	var items []T
	commits := make([]func(), len(c.lookups))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = c.acc.List(gctx, filter)
		return err
	})
	for i, l := range c.lookups {
		g.Go(func() error {
			commit, err := l.fetch(gctx)
			if err != nil {
				c.logger.Debug("Справочник не загружен", slog.String("lookup", l.Name()), slog.String("error", err.Error()))
				return err
			}
			commits[i] = commit
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		c.logger.Warn("Ошибка загрузки списка", slog.String("error", err.Error()))
		c.failure(c.schema.Messages.LoadFailed, err)
		observe(c.schema.Name, "load", resultError, start)
		return false
	}

	if items == nil {
		items = []T{}
	}
	for _, commit := range commits {
		commit()
	}

	c.mu.Lock()
	c.items = items
	c.loaded = true
	c.loadedAt = c.clock.Now()
	c.mu.Unlock()

	observe(c.schema.Name, "load", resultSuccess, start)
	return true
}

// LoadIfStale загружает список, если он не загружался дольше maxAge.
// Исключает повторный запрос сразу после перезагрузки по мутации.
func (c *Controller[T, D]) LoadIfStale(ctx context.Context, maxAge time.Duration) bool {
	c.mu.Lock()
	fresh := c.loaded && !c.loadedAt.IsZero() && c.clock.Since(c.loadedAt) < maxAge
	c.mu.Unlock()
	if fresh {
		return true
	}
	return c.Load(ctx)
}

// OpenCreate открывает форму создания со значениями по умолчанию.
func (c *Controller[T, D]) OpenCreate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.modal = ModalCreating
	c.editingID = ""
	c.draft = c.schema.New(c.filter)
}

// OpenEdit открывает форму редактирования записи id из текущего списка.
func (c *Controller[T, D]) OpenEdit(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, it := range c.items {
		if c.schema.ID(it) == id {
			c.modal = ModalEditing
			c.editingID = id
			c.draft = c.schema.Draft(it)
			return true
		}
	}
	c.notices = append(c.notices, Notice{Kind: NoticeError, Key: c.schema.Messages.NotFound})
	return false
}

// CloseModal закрывает модальное окно без сохранения.
func (c *Controller[T, D]) CloseModal() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closeLocked()
}

func (c *Controller[T, D]) closeLocked() {
	var zero D
	c.modal = ModalClosed
	c.editingID = ""
	c.draft = zero
}

// SetDraft заменяет черновик значениями формы. Игнорируется, если окно закрыто.
func (c *Controller[T, D]) SetDraft(d D) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.modal == ModalClosed {
		return false
	}
	c.draft = d
	return true
}

// Save отправляет черновик: проверка полей, загрузка выбранных файлов
// в копию черновика, затем create или update. При ошибке окно остаётся
// открытым, черновик не меняется. Повторный вызов во время сохранения
// игнорируется.
func (c *Controller[T, D]) Save(ctx context.Context) bool {
	start := time.Now()

	c.mu.Lock()
	if c.saving || c.modal == ModalClosed {
		c.mu.Unlock()
		return false
	}
	c.saving = true
	draft := c.draft
	creating := c.modal == ModalCreating
	id := c.editingID
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.saving = false
		c.mu.Unlock()
	}()

	op := "update"
	if creating {
		op = "create"
	}

	if c.schema.Validate != nil {
		if key := c.schema.Validate(draft, creating); key != "" {
			c.Notify(Notice{Kind: NoticeError, Key: key})
			observe(c.schema.Name, op, resultRejected, start)
			return false
		}
	}

	work := draft
	uploaded, err := c.uploadFiles(ctx, &work)
	if err != nil {
		c.logger.Warn("Ошибка загрузки файла", slog.String("operation", op), slog.String("error", err.Error()))
		c.discardOrphans(ctx, uploaded)
		c.failure(c.schema.Messages.SaveFailed, err)
		observe(c.schema.Name, op, resultError, start)
		return false
	}

	if creating {
		err = c.acc.Create(ctx, work)
	} else {
		err = c.acc.Update(ctx, id, work)
	}
	if err != nil {
		c.logger.Warn("Ошибка сохранения", slog.String("operation", op), slog.String("id", id), slog.String("error", err.Error()))
		c.discardOrphans(ctx, uploaded)
		c.failure(c.schema.Messages.SaveFailed, err)
		observe(c.schema.Name, op, resultError, start)
		return false
	}

	c.mu.Lock()
	c.closeLocked()
	c.mu.Unlock()
	if creating {
		c.success(c.schema.Messages.Created)
	} else {
		c.success(c.schema.Messages.Updated)
	}
	c.logger.Info("Запись сохранена", slog.String("operation", op), slog.String("id", id))

	c.reload(ctx)
	observe(c.schema.Name, op, resultSuccess, start)
	return true
}

// uploadFiles загружает выбранные файлы и подставляет пути в черновик.
// Возвращает уже загруженные пути даже при ошибке.
func (c *Controller[T, D]) uploadFiles(ctx context.Context, d *D) ([]string, error) {
	var uploaded []string
	for _, slot := range c.schema.Uploads {
		f := slot.File(d)
		if f.Empty() {
			continue
		}
		if c.uploader == nil {
			return uploaded, upload.ErrNoUploader
		}
		stored, err := c.uploader.Upload(ctx, f)
		if err != nil {
			return uploaded, err
		}
		slot.Apply(d, stored)
		uploaded = append(uploaded, stored)
	}
	return uploaded, nil
}

// discardOrphans применяет политику к файлам, загруженным для несохранённой
// записи: удаляет их, если загрузчик умеет удалять, иначе фиксирует в логе и метрике.
func (c *Controller[T, D]) discardOrphans(ctx context.Context, stored []string) {
	if len(stored) == 0 {
		return
	}
	d, canDiscard := c.uploader.(upload.Discarder)
	for _, s := range stored {
		if !canDiscard {
			c.logger.Warn("Загруженный файл остался без записи", slog.String("file", s))
			orphanedUploads.WithLabelValues(c.schema.Name).Inc()
			continue
		}
		if err := d.Discard(ctx, s); err != nil {
			c.logger.Warn("Не удалось удалить загруженный файл", slog.String("file", s), slog.String("error", err.Error()))
			orphanedUploads.WithLabelValues(c.schema.Name).Inc()
		}
	}
}

// Delete удаляет запись после подтверждения. Отказ от подтверждения
// не обращается к backend и не считается ошибкой.
func (c *Controller[T, D]) Delete(ctx context.Context, id string, confirmed bool) bool {
	if !confirmed {
		return false
	}
	start := time.Now()

	if err := c.acc.Delete(ctx, id); err != nil {
		c.logger.Warn("Ошибка удаления", slog.String("id", id), slog.String("error", err.Error()))
		c.failure(c.schema.Messages.DeleteFailed, err)
		observe(c.schema.Name, "delete", resultError, start)
		return false
	}

	c.mu.Lock()
	if c.editingID == id {
		c.closeLocked()
	}
	c.mu.Unlock()
	c.success(c.schema.Messages.Deleted)
	c.logger.Info("Запись удалена", slog.String("id", id))

	c.reload(ctx)
	observe(c.schema.Name, "delete", resultSuccess, start)
	return true
}

// Transition выполняет отдельный запрос смены статуса записи id.
// successKey переопределяет уведомление об успехе (пустой — общее).
// При успехе окно закрывается и список перезагружается; при ошибке
// перезагрузки нет.
func (c *Controller[T, D]) Transition(ctx context.Context, id, successKey string, do func(ctx context.Context, draft D) error) bool {
	start := time.Now()

	c.mu.Lock()
	draft := c.draft
	if c.editingID != id {
		var zero D
		draft = zero
	}
	c.mu.Unlock()

	if err := do(ctx, draft); err != nil {
		c.logger.Warn("Ошибка смены статуса", slog.String("id", id), slog.String("error", err.Error()))
		c.failure(c.schema.Messages.TransitionFailed, err)
		observe(c.schema.Name, "transition", resultError, start)
		return false
	}

	c.mu.Lock()
	if c.modal != ModalClosed {
		c.closeLocked()
	}
	c.mu.Unlock()
	if successKey == "" {
		successKey = c.schema.Messages.Transitioned
	}
	c.success(successKey)
	c.logger.Info("Статус изменён", slog.String("id", id))

	c.reload(ctx)
	observe(c.schema.Name, "transition", resultSuccess, start)
	return true
}
