package resource

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/ahmad115kobane-wq/adminapp/internal/apiclient"
	"github.com/ahmad115kobane-wq/adminapp/internal/domain/model"
)

// testLogger создаёт logger для тестов.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

type item struct {
	ID   string
	Name string
	Logo string
}

type draft struct {
	Name string
	Logo string
	File *model.File
	Tags []string
}

// fakeAccessor — in-memory backend с подсчётом вызовов.
type fakeAccessor struct {
	mu        sync.Mutex
	items     []item
	listErr   error
	writeErr  error
	deleteErr error
	lists     int
	creates   []draft
	updates   map[string]draft
	deletes   []string
	filters   []string
}

func newFakeAccessor(items ...item) *fakeAccessor {
	return &fakeAccessor{items: items, updates: map[string]draft{}}
}

func (f *fakeAccessor) List(_ context.Context, filter string) ([]item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists++
	f.filters = append(f.filters, filter)
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]item(nil), f.items...), nil
}

func (f *fakeAccessor) Create(_ context.Context, d draft) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return f.writeErr
	}
	f.creates = append(f.creates, d)
	f.items = append(f.items, item{ID: "new", Name: d.Name, Logo: d.Logo})
	return nil
}

func (f *fakeAccessor) Update(_ context.Context, id string, d draft) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return f.writeErr
	}
	f.updates[id] = d
	return nil
}

func (f *fakeAccessor) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletes = append(f.deletes, id)
	return nil
}

// fakeUploader — загрузчик с необязательным удалением.
type fakeUploader struct {
	uploaded []string
	err      error
}

func (u *fakeUploader) Upload(_ context.Context, f *model.File) (string, error) {
	if u.err != nil {
		return "", u.err
	}
	path := "/uploads/" + f.Name
	u.uploaded = append(u.uploaded, path)
	return path, nil
}

type discardingUploader struct {
	fakeUploader
	discarded []string
}

func (u *discardingUploader) Discard(_ context.Context, stored string) error {
	u.discarded = append(u.discarded, stored)
	return nil
}

func testSchema() Schema[item, draft] {
	return Schema[item, draft]{
		Name:  "items",
		ID:    func(i item) string { return i.ID },
		New:   func(string) draft { return draft{Name: "default"} },
		Draft: func(i item) draft { return draft{Name: i.Name, Logo: i.Logo} },
		Uploads: []Upload[draft]{{
			Name:  "logo",
			File:  func(d *draft) *model.File { return d.File },
			Apply: func(d *draft, stored string) { d.Logo, d.File = stored, nil },
		}},
	}
}

func newTestController(acc *fakeAccessor, opts ...Option) *Controller[item, draft] {
	opts = append([]Option{WithLogger(testLogger())}, opts...)
	return New(testSchema(), Accessor[item, draft](acc), opts...)
}

func backendError(msg string) error {
	return &apiclient.APIError{Op: "test", StatusCode: 400, Message: msg}
}

// TestLoad_FailureKeepsItems проверяет, что неудачная загрузка не очищает
// прежний список и сбрасывает флаг загрузки.
func TestLoad_FailureKeepsItems(t *testing.T) {
	acc := newFakeAccessor(item{ID: "1"}, item{ID: "2"}, item{ID: "3"})
	c := newTestController(acc)

	if !c.Load(context.Background()) {
		t.Fatal("первая загрузка должна быть успешной")
	}
	acc.listErr = errors.New("network down")
	if c.Load(context.Background()) {
		t.Fatal("ожидалась ошибка загрузки")
	}

	v := c.View()
	if len(v.Items) != 3 {
		t.Errorf("Items = %d, ожидается 3", len(v.Items))
	}
	if v.Loading {
		t.Error("Loading должен быть сброшен")
	}
	if len(v.Notices) != 1 || v.Notices[0].Kind != NoticeError || v.Notices[0].Key != "toast.load_failed" {
		t.Errorf("Notices = %+v", v.Notices)
	}
	if len(c.View().Notices) != 0 {
		t.Error("уведомления должны забираться один раз")
	}
}

// TestLoad_LookupFailureIsAllOrNothing проверяет, что ошибка справочника
// отменяет фиксацию и списка, и остальных справочников.
func TestLoad_LookupFailureIsAllOrNothing(t *testing.T) {
	acc := newFakeAccessor(item{ID: "1"})
	okLookup := NewLookup("names", func(context.Context) ([]string, error) { return []string{"a"}, nil })
	badLookup := NewLookup("broken", func(context.Context) ([]int, error) { return nil, errors.New("boom") })
	c := newTestController(acc, WithLookups(okLookup, badLookup))

	if c.Load(context.Background()) {
		t.Fatal("ожидалась ошибка загрузки")
	}
	if len(c.Items()) != 0 || okLookup.Items() != nil {
		t.Error("ничего не должно фиксироваться при частичной ошибке")
	}
}

// TestLoad_Filter проверяет передачу фильтра в List.
func TestLoad_Filter(t *testing.T) {
	acc := newFakeAccessor()
	c := newTestController(acc, WithFilter("pending"))
	c.Load(context.Background())
	c.SetFilter("approved")
	c.Load(context.Background())

	if !reflect.DeepEqual(acc.filters, []string{"pending", "approved"}) {
		t.Errorf("filters = %v", acc.filters)
	}
}

// TestLoadIfStale проверяет пропуск повторной загрузки свежего списка.
func TestLoadIfStale(t *testing.T) {
	clock := clockwork.NewFakeClock()
	acc := newFakeAccessor()
	c := newTestController(acc, WithClock(clock))

	c.LoadIfStale(context.Background(), time.Second)
	c.LoadIfStale(context.Background(), time.Second)
	if acc.lists != 1 {
		t.Errorf("lists = %d, ожидается 1", acc.lists)
	}
	clock.Advance(2 * time.Second)
	c.LoadIfStale(context.Background(), time.Second)
	if acc.lists != 2 {
		t.Errorf("lists = %d, ожидается 2", acc.lists)
	}
	c.SetFilter("x")
	c.LoadIfStale(context.Background(), time.Second)
	if acc.lists != 3 {
		t.Errorf("смена фильтра должна устаревать список, lists = %d", acc.lists)
	}
}

// TestOpenCreateAndEdit проверяет заполнение черновика.
func TestOpenCreateAndEdit(t *testing.T) {
	acc := newFakeAccessor(item{ID: "1", Name: "Zakho", Logo: "/l.png"})
	c := newTestController(acc)
	c.Load(context.Background())

	c.OpenCreate()
	if v := c.View(); v.Modal != ModalCreating || v.Draft.Name != "default" || v.EditingID != "" {
		t.Errorf("после OpenCreate: %+v", v)
	}

	if !c.OpenEdit("1") {
		t.Fatal("OpenEdit(1) = false")
	}
	if v := c.View(); v.Modal != ModalEditing || v.EditingID != "1" || v.Draft.Logo != "/l.png" {
		t.Errorf("после OpenEdit: %+v", v)
	}

	if c.OpenEdit("missing") {
		t.Error("OpenEdit(missing) = true")
	}
	if v := c.View(); len(v.Notices) != 1 || v.Notices[0].Key != "toast.not_found" {
		t.Errorf("Notices = %+v", v.Notices)
	}

	c.CloseModal()
	if v := c.View(); v.Modal != ModalClosed || v.EditingID != "" {
		t.Errorf("после CloseModal: %+v", v)
	}
	if c.SetDraft(draft{Name: "x"}) {
		t.Error("SetDraft при закрытом окне должен игнорироваться")
	}
}

// TestSave_CreateSuccess проверяет загрузку файла, создание, закрытие окна и перезагрузку.
func TestSave_CreateSuccess(t *testing.T) {
	acc := newFakeAccessor()
	up := &fakeUploader{}
	c := newTestController(acc, WithUploader(up))
	c.Load(context.Background())

	c.OpenCreate()
	c.SetDraft(draft{Name: "Gulf Cup", File: &model.File{Name: "cup.png", Data: []byte{1}}})
	if !c.Save(context.Background()) {
		t.Fatal("Save = false")
	}

	if len(acc.creates) != 1 {
		t.Fatalf("creates = %d, ожидается 1", len(acc.creates))
	}
	if got := acc.creates[0]; got.Logo != "/uploads/cup.png" || got.File != nil {
		t.Errorf("отправленный черновик = %+v", got)
	}
	if acc.lists != 2 {
		t.Errorf("lists = %d, ожидается перезагрузка", acc.lists)
	}
	v := c.View()
	if v.Modal != ModalClosed {
		t.Error("окно должно закрыться")
	}
	if len(v.Items) != 1 {
		t.Errorf("Items = %d после перезагрузки", len(v.Items))
	}
	if len(v.Notices) != 1 || v.Notices[0].Kind != NoticeSuccess || v.Notices[0].Key != "toast.created" {
		t.Errorf("Notices = %+v", v.Notices)
	}
}

// TestSave_FailureKeepsDraft проверяет, что неудачное сохранение не меняет
// черновик и оставляет окно открытым с сообщением backend.
func TestSave_FailureKeepsDraft(t *testing.T) {
	acc := newFakeAccessor(item{ID: "1", Name: "A"})
	acc.writeErr = backendError("الاسم مستخدم")
	up := &fakeUploader{}
	c := newTestController(acc, WithUploader(up))
	c.Load(context.Background())
	c.OpenEdit("1")

	before := draft{Name: "B", File: &model.File{Name: "b.png", Data: []byte{2}}, Tags: []string{"x"}}
	c.SetDraft(before)
	if c.Save(context.Background()) {
		t.Fatal("Save = true при ошибке backend")
	}

	v := c.View()
	if !reflect.DeepEqual(v.Draft, before) {
		t.Errorf("черновик изменён: %+v, ожидается %+v", v.Draft, before)
	}
	if v.Modal != ModalEditing || v.EditingID != "1" {
		t.Errorf("окно должно остаться открытым: %+v", v)
	}
	if v.Saving {
		t.Error("Saving должен быть сброшен")
	}
	if acc.lists != 1 {
		t.Errorf("при ошибке перезагрузки быть не должно, lists = %d", acc.lists)
	}
	if len(v.Notices) != 1 || v.Notices[0].Text != "الاسم مستخدم" || v.Notices[0].Key != "toast.save_failed" {
		t.Errorf("Notices = %+v", v.Notices)
	}
}

// TestSave_UploadFailureAbortsWrite проверяет, что ошибка загрузки отменяет запись.
func TestSave_UploadFailureAbortsWrite(t *testing.T) {
	acc := newFakeAccessor()
	c := newTestController(acc, WithUploader(&fakeUploader{err: errors.New("too large")}))
	c.OpenCreate()
	c.SetDraft(draft{Name: "X", File: &model.File{Name: "x.png", Data: []byte{1}}})

	if c.Save(context.Background()) {
		t.Fatal("Save = true при ошибке загрузки")
	}
	if len(acc.creates) != 0 {
		t.Error("запись не должна отправляться")
	}
	if v := c.View(); v.Modal != ModalCreating || len(v.Notices) != 1 || v.Notices[0].Text != "" {
		t.Errorf("состояние после ошибки: %+v", v)
	}
}

// TestSave_NoUploader проверяет выбранный файл без загрузчика.
func TestSave_NoUploader(t *testing.T) {
	acc := newFakeAccessor()
	c := newTestController(acc)
	c.OpenCreate()
	c.SetDraft(draft{File: &model.File{Name: "x.png", Data: []byte{1}}})

	if c.Save(context.Background()) || len(acc.creates) != 0 {
		t.Error("без загрузчика сохранение должно прерываться")
	}
}

// TestSave_OrphanDiscard проверяет удаление загруженного файла при
// неудачной записи, если загрузчик умеет удалять.
func TestSave_OrphanDiscard(t *testing.T) {
	acc := newFakeAccessor()
	acc.writeErr = errors.New("500")
	up := &discardingUploader{}
	c := newTestController(acc, WithUploader(up))
	c.OpenCreate()
	c.SetDraft(draft{File: &model.File{Name: "x.png", Data: []byte{1}}})

	c.Save(context.Background())
	if !reflect.DeepEqual(up.discarded, []string{"/uploads/x.png"}) {
		t.Errorf("discarded = %v", up.discarded)
	}
}

// TestSave_Validation проверяет блокировку сохранения без сетевого вызова.
func TestSave_Validation(t *testing.T) {
	acc := newFakeAccessor()
	schema := testSchema()
	schema.Validate = func(d draft, creating bool) string {
		if d.Name == "" {
			return "required"
		}
		return ""
	}
	c := New(schema, Accessor[item, draft](acc), WithLogger(testLogger()))
	c.OpenCreate()
	c.SetDraft(draft{})

	if c.Save(context.Background()) {
		t.Fatal("Save = true при невалидном черновике")
	}
	if len(acc.creates) != 0 || acc.lists != 0 {
		t.Error("сетевых вызовов быть не должно")
	}
	if v := c.View(); len(v.Notices) != 1 || v.Notices[0].Key != "required" || v.Modal != ModalCreating {
		t.Errorf("состояние: %+v", v)
	}
}

// TestSave_ClosedModal проверяет, что Save без открытого окна ничего не делает.
func TestSave_ClosedModal(t *testing.T) {
	acc := newFakeAccessor()
	c := newTestController(acc)
	if c.Save(context.Background()) || len(acc.creates) != 0 {
		t.Error("Save при закрытом окне должен игнорироваться")
	}
}

// TestSave_Update проверяет update по editingID.
func TestSave_Update(t *testing.T) {
	acc := newFakeAccessor(item{ID: "7", Name: "A"})
	c := newTestController(acc)
	c.Load(context.Background())
	c.OpenEdit("7")
	c.SetDraft(draft{Name: "B"})

	if !c.Save(context.Background()) {
		t.Fatal("Save = false")
	}
	if acc.updates["7"].Name != "B" {
		t.Errorf("updates = %+v", acc.updates)
	}
	if v := c.View(); v.Notices[0].Key != "toast.updated" {
		t.Errorf("Notices = %+v", v.Notices)
	}
}

// TestDelete_Declined проверяет отказ от подтверждения.
func TestDelete_Declined(t *testing.T) {
	acc := newFakeAccessor(item{ID: "1"})
	c := newTestController(acc)
	c.Load(context.Background())

	if c.Delete(context.Background(), "1", false) {
		t.Error("Delete без подтверждения = true")
	}
	if len(acc.deletes) != 0 || acc.lists != 1 {
		t.Error("без подтверждения вызовов быть не должно")
	}
	if len(c.View().Notices) != 0 {
		t.Error("отказ не является ошибкой")
	}
}

// TestDelete проверяет успех и ошибку удаления.
func TestDelete(t *testing.T) {
	acc := newFakeAccessor(item{ID: "1"}, item{ID: "2"})
	c := newTestController(acc)
	c.Load(context.Background())

	if !c.Delete(context.Background(), "1", true) {
		t.Fatal("Delete = false")
	}
	if acc.lists != 2 {
		t.Errorf("после удаления ожидается перезагрузка, lists = %d", acc.lists)
	}
	if v := c.View(); v.Notices[0].Key != "toast.deleted" {
		t.Errorf("Notices = %+v", v.Notices)
	}

	acc.deleteErr = backendError("مرتبط بمباريات")
	if c.Delete(context.Background(), "2", true) {
		t.Fatal("Delete = true при ошибке")
	}
	v := c.View()
	if acc.lists != 2 || len(v.Items) != 2 {
		t.Error("при ошибке удаления список не меняется")
	}
	if v.Notices[0].Key != "toast.delete_failed" || v.Notices[0].Text != "مرتبط بمباريات" {
		t.Errorf("Notices = %+v", v.Notices)
	}
}

// TestTransition проверяет перезагрузку только при успехе и передачу черновика.
func TestTransition(t *testing.T) {
	acc := newFakeAccessor(item{ID: "o7", Name: "order"})
	c := newTestController(acc)
	c.Load(context.Background())

	var got []draft
	ok := c.Transition(context.Background(), "o7", "orders.approved", func(_ context.Context, d draft) error {
		got = append(got, d)
		return nil
	})
	if !ok || acc.lists != 2 {
		t.Errorf("успех: ok=%v lists=%d", ok, acc.lists)
	}
	if v := c.View(); v.Notices[0].Key != "orders.approved" {
		t.Errorf("Notices = %+v", v.Notices)
	}

	c.OpenEdit("o7")
	c.SetDraft(draft{Name: "note"})
	ok = c.Transition(context.Background(), "o7", "", func(_ context.Context, d draft) error {
		got = append(got, d)
		return backendError("حالة غير صالحة")
	})
	if ok || acc.lists != 2 {
		t.Errorf("ошибка: ok=%v lists=%d", ok, acc.lists)
	}
	if len(got) != 2 || got[0].Name != "" || got[1].Name != "note" {
		t.Errorf("черновики = %+v", got)
	}
	v := c.View()
	if v.Modal != ModalEditing {
		t.Error("при ошибке окно остаётся открытым")
	}
	last := v.Notices[0]
	if last.Key != "toast.status_failed" || last.Text != "حالة غير صالحة" {
		t.Errorf("Notice = %+v", last)
	}
}

// TestWithReload проверяет перезагрузку владельца вложенным ресурсом.
func TestWithReload(t *testing.T) {
	acc := newFakeAccessor()
	reloaded := 0
	c := newTestController(acc, WithReload(func(context.Context) { reloaded++ }))
	c.OpenCreate()
	c.Save(context.Background())
	c.Delete(context.Background(), "x", true)

	if reloaded != 2 || acc.lists != 0 {
		t.Errorf("reloaded = %d, lists = %d", reloaded, acc.lists)
	}
}

// TestFuncs_Unsupported проверяет отсутствующие операции.
func TestFuncs_Unsupported(t *testing.T) {
	var f Funcs[item, draft]
	if err := f.Create(context.Background(), draft{}); !errors.Is(err, ErrUnsupported) {
		t.Errorf("Create: %v", err)
	}
	if _, err := f.List(context.Background(), ""); !errors.Is(err, ErrUnsupported) {
		t.Errorf("List: %v", err)
	}
}

// TestMessages_Defaults проверяет подстановку общих ключей.
func TestMessages_Defaults(t *testing.T) {
	m := Messages{Created: "matches.created"}.withDefaults()
	if m.Created != "matches.created" || m.Deleted != "toast.deleted" {
		t.Errorf("Messages = %+v", m)
	}
}
