package service

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ahmad115kobane-wq/adminapp/internal/apiclient"
	"github.com/ahmad115kobane-wq/adminapp/internal/domain/model"
	"github.com/ahmad115kobane-wq/adminapp/internal/resource"
	"github.com/ahmad115kobane-wq/adminapp/internal/schedule"
)

// testLogger создаёт logger для тестов.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// call — запрос, полученный mock-backend.
type call struct {
	Method string
	Path   string
	Query  string
	Body   map[string]any
}

// mockBackend — mock-backend с фиксированными ответами по "METHOD /path".
type mockBackend struct {
	mu        sync.Mutex
	calls     []call
	responses map[string]string
	failures  map[string]int
}

func newMockBackend(t *testing.T) (*mockBackend, *apiclient.Client) {
	t.Helper()
	mb := &mockBackend{responses: map[string]string{}, failures: map[string]int{}}
	server := httptest.NewServer(http.HandlerFunc(mb.serve))
	t.Cleanup(server.Close)

	api, err := apiclient.New(server.URL, "", 5*time.Second, testLogger())
	if err != nil {
		t.Fatal(err)
	}
	return mb, api.WithToken("tok")
}

func (mb *mockBackend) serve(w http.ResponseWriter, r *http.Request) {
	c := call{Method: r.Method, Path: r.URL.Path, Query: r.URL.RawQuery}
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &c.Body)
	}

	key := r.Method + " " + r.URL.Path
	mb.mu.Lock()
	mb.calls = append(mb.calls, c)
	status, failing := mb.failures[key]
	body, ok := mb.responses[key]
	mb.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if failing {
		w.WriteHeader(status)
		io.WriteString(w, `{"message":"مرفوض"}`)
		return
	}
	if !ok {
		if r.Method == http.MethodGet {
			body = `{"data":[]}`
		} else {
			body = `{"data":{}}`
		}
	}
	io.WriteString(w, body)
}

func (mb *mockBackend) respond(key, body string) {
	mb.mu.Lock()
	defer mb.mu.Unlock()
	mb.responses[key] = body
}

func (mb *mockBackend) fail(key string, status int) {
	mb.mu.Lock()
	defer mb.mu.Unlock()
	mb.failures[key] = status
}

// count возвращает количество запросов "METHOD /path".
func (mb *mockBackend) count(key string) int {
	mb.mu.Lock()
	defer mb.mu.Unlock()
	n := 0
	for _, c := range mb.calls {
		if c.Method+" "+c.Path == key {
			n++
		}
	}
	return n
}

// last возвращает последний запрос "METHOD /path".
func (mb *mockBackend) last(t *testing.T, key string) call {
	t.Helper()
	mb.mu.Lock()
	defer mb.mu.Unlock()
	for i := len(mb.calls) - 1; i >= 0; i-- {
		if mb.calls[i].Method+" "+mb.calls[i].Path == key {
			return mb.calls[i]
		}
	}
	t.Fatalf("запрос %s не найден", key)
	return call{}
}

func testDeps(api *apiclient.Client) Deps {
	return Deps{API: api, Location: time.UTC, Logger: testLogger()}
}

// TestCompetitions_Create проверяет сценарий создания соревнования:
// один запрос create с введёнными полями и пустым logoUrl, затем перезагрузка.
func TestCompetitions_Create(t *testing.T) {
	mb, api := newMockBackend(t)
	c := NewCompetitions(testDeps(api))
	ctx := context.Background()

	c.Load(ctx)
	c.OpenCreate()
	d := c.Draft()
	d.Name, d.Country, d.Season, d.Type = "Gulf Cup", "Iraq", "2025", model.CompetitionFootball
	c.SetDraft(d)

	if !c.Save(ctx) {
		t.Fatal("Save = false")
	}
	if n := mb.count("POST /admin/competitions"); n != 1 {
		t.Fatalf("create вызван %d раз, ожидается 1", n)
	}
	want := map[string]any{"name": "Gulf Cup", "country": "Iraq", "season": "2025", "type": "football", "logoUrl": ""}
	if got := mb.last(t, "POST /admin/competitions").Body; !reflect.DeepEqual(got, want) {
		t.Errorf("тело = %v, ожидается %v", got, want)
	}
	if n := mb.count("GET /admin/competitions"); n != 2 {
		t.Errorf("список запрошен %d раз, ожидается 2", n)
	}
	if v := c.View(); v.Modal != resource.ModalClosed {
		t.Error("окно должно закрыться")
	}
}

// TestMatches_SetStatus проверяет сценарий смены статуса матча.
func TestMatches_SetStatus(t *testing.T) {
	mb, api := newMockBackend(t)
	mb.respond("GET /matches", `{"data":[{"id":"m1","status":"scheduled"}]}`)
	m := NewMatches(testDeps(api))
	ctx := context.Background()
	m.Load(ctx)

	if !m.SetStatus(ctx, "m1", model.MatchLive) {
		t.Fatal("SetStatus = false")
	}
	if n := mb.count("PATCH /matches/m1/status"); n != 1 {
		t.Fatalf("updateStatus вызван %d раз", n)
	}
	if got := mb.last(t, "PATCH /matches/m1/status").Body; !reflect.DeepEqual(got, map[string]any{"status": "live"}) {
		t.Errorf("тело = %v", got)
	}
	if n := mb.count("GET /matches"); n != 2 {
		t.Errorf("после успеха ожидается перезагрузка, GET /matches = %d", n)
	}

	mb.fail("PATCH /matches/m1/status", http.StatusBadRequest)
	if m.SetStatus(ctx, "m1", model.MatchFinished) {
		t.Fatal("SetStatus = true при ошибке backend")
	}
	if n := mb.count("GET /matches"); n != 2 {
		t.Errorf("при ошибке перезагрузки быть не должно, GET /matches = %d", n)
	}
	v := m.View()
	last := v.Notices[len(v.Notices)-1]
	if last.Kind != resource.NoticeError || last.Key != "toast.status_failed" || last.Text != "مرفوض" {
		t.Errorf("Notice = %+v", last)
	}

	if m.SetStatus(ctx, "m1", model.MatchStatus("postponed")) {
		t.Error("неизвестный статус не должен отправляться")
	}
	if n := mb.count("PATCH /matches/m1/status"); n != 2 {
		t.Errorf("PATCH = %d, ожидается 2", n)
	}
}

// TestMatches_Guards проверяет обязательные поля и дату без сетевых вызовов.
func TestMatches_Guards(t *testing.T) {
	mb, api := newMockBackend(t)
	m := NewMatches(testDeps(api))
	ctx := context.Background()

	m.OpenCreate()
	d := m.Draft()
	d.CompetitionID, d.HomeTeamID = "c1", "t1"
	m.SetDraft(d)
	m.Save(ctx)
	if v := m.View(); len(v.Notices) != 1 || v.Notices[0].Key != KeyMatchRequired {
		t.Errorf("Notices = %+v", v.Notices)
	}

	d.AwayTeamID = "t2"
	d.Slot = schedule.Slot{Date: "2025-02-30", Hour: 6, Minute: "00", Meridiem: schedule.PM}
	m.SetDraft(d)
	m.Save(ctx)
	if v := m.View(); len(v.Notices) != 1 || v.Notices[0].Key != KeyMatchNoDate {
		t.Errorf("Notices = %+v", v.Notices)
	}

	d.Slot = schedule.Slot{Date: "2025-03-10", Hour: 13, Minute: "00", Meridiem: schedule.PM}
	m.SetDraft(d)
	m.Save(ctx)
	if v := m.View(); len(v.Notices) != 1 || v.Notices[0].Key != KeyMatchInvalidTime {
		t.Errorf("Notices = %+v", v.Notices)
	}

	if n := mb.count("POST /matches"); n != 0 {
		t.Errorf("create вызван %d раз, ожидается 0", n)
	}
}

// TestMatches_CreatePayload проверяет тело create и загрузку справочников.
func TestMatches_CreatePayload(t *testing.T) {
	mb, api := newMockBackend(t)
	mb.respond("GET /admin/operators", `{"data":[{"id":"op1","name":"Op","operatorMatches":[{"id":"x"}]}]}`)
	loc := time.FixedZone("AST", 3*60*60)
	m := NewMatches(Deps{API: api, Location: loc, Logger: testLogger()})
	ctx := context.Background()

	if !m.Load(ctx) {
		t.Fatal("Load = false")
	}
	if ops := m.Operators.Items(); len(ops) != 1 || ops[0].MatchCount() != 1 {
		t.Errorf("Operators = %+v", ops)
	}
	if mb.last(t, "GET /teams").Query != "" {
		t.Error("справочник команд не должен запрашивать игроков")
	}

	m.OpenCreate()
	d := m.Draft()
	d.CompetitionID, d.HomeTeamID, d.AwayTeamID, d.OperatorID = "c1", "t1", "t2", "op1"
	d.Slot = schedule.Slot{Date: "2025-03-10", Hour: 12, Minute: "00", Meridiem: schedule.AM}
	m.SetDraft(d)
	if !m.Save(ctx) {
		t.Fatal("Save = false")
	}

	body := mb.last(t, "POST /matches").Body
	if body["startTime"] != "2025-03-09T21:00:00.000Z" {
		t.Errorf("startTime = %v", body["startTime"])
	}
	if body["operatorId"] != "op1" {
		t.Errorf("operatorId = %v", body["operatorId"])
	}
	if _, ok := body["venue"]; ok {
		t.Error("пустой venue не должен отправляться")
	}
}

// TestOrders_Approve проверяет сценарий одобрения заказа из фильтра pending:
// пустые заметки не отправляются, карточка закрывается, список
// перезагружается с тем же фильтром.
func TestOrders_Approve(t *testing.T) {
	mb, api := newMockBackend(t)
	mb.respond("GET /orders", `{"data":[{"id":"o7","status":"pending","totalAmount":25000}]}`)
	o := NewOrders(testDeps(api))
	ctx := context.Background()

	if err := o.SetStatusFilter("pending"); err != nil {
		t.Fatal(err)
	}
	o.Load(ctx)
	if !o.OpenEdit("o7") {
		t.Fatal("OpenEdit = false")
	}

	if !o.SetStatus(ctx, "o7", model.OrderApproved) {
		t.Fatal("SetStatus = false")
	}
	if got := mb.last(t, "PATCH /orders/o7/status").Body; !reflect.DeepEqual(got, map[string]any{"status": "approved"}) {
		t.Errorf("тело = %v, ожидается только status", got)
	}
	if q := mb.last(t, "GET /orders").Query; q != "status=pending" {
		t.Errorf("перезагрузка с query %q, ожидается status=pending", q)
	}
	if n := mb.count("GET /orders"); n != 2 {
		t.Errorf("GET /orders = %d, ожидается 2", n)
	}
	v := o.View()
	if v.Modal != resource.ModalClosed {
		t.Error("карточка должна закрыться")
	}
	if v.Notices[0].Key != "orders.approved" {
		t.Errorf("Notices = %+v", v.Notices)
	}
}

// TestOrders_NoteAndInvalidTransition проверяет передачу заметки и
// блокировку недопустимого перехода.
func TestOrders_NoteAndInvalidTransition(t *testing.T) {
	mb, api := newMockBackend(t)
	mb.respond("GET /orders", `{"data":[{"id":"o1","status":"approved"},{"id":"o2","status":"delivered"}]}`)
	o := NewOrders(testDeps(api))
	ctx := context.Background()
	o.Load(ctx)

	o.OpenEdit("o1")
	o.SetDraft(model.OrderDraft{AdminNote: " تم ", EstimatedDelivery: "غداً"})
	o.SetStatus(ctx, "o1", model.OrderDelivered)
	want := map[string]any{"status": "delivered", "adminNote": "تم", "estimatedDelivery": "غداً"}
	if got := mb.last(t, "PATCH /orders/o1/status").Body; !reflect.DeepEqual(got, want) {
		t.Errorf("тело = %v, ожидается %v", got, want)
	}

	if o.SetStatus(ctx, "o2", model.OrderApproved) {
		t.Error("delivered → approved не должен быть разрешён")
	}
	if n := mb.count("PATCH /orders/o2/status"); n != 0 {
		t.Errorf("недопустимый переход отправлен %d раз", n)
	}

	if err := o.SetStatusFilter("lost"); err == nil {
		t.Error("ожидалась ошибка неизвестного фильтра")
	}
	if err := o.SetStatusFilter("all"); err != nil || o.Filter() != "" {
		t.Errorf("all: err=%v filter=%q", err, o.Filter())
	}
}

// TestTeams_Players проверяет вложенный редактор игроков.
func TestTeams_Players(t *testing.T) {
	mb, api := newMockBackend(t)
	mb.respond("GET /teams", `{"data":[{"id":"t1","name":"Zakho","players":[{"id":"p1","name":"Ali","shirtNumber":9}]}]}`)
	teams := NewTeams(testDeps(api))
	ctx := context.Background()

	teams.Load(ctx)
	if q := mb.last(t, "GET /teams").Query; q != "includePlayers=true" {
		t.Errorf("query = %q", q)
	}

	teams.SelectTeam(ctx, "t1")
	players := teams.Players.Items()
	if len(players) != 1 || players[0].TeamID != "t1" {
		t.Fatalf("Players = %+v", players)
	}
	if tm, ok := teams.SelectedTeam(); !ok || tm.Name != "Zakho" {
		t.Errorf("SelectedTeam = %+v, %v", tm, ok)
	}

	teams.Players.OpenCreate()
	d := teams.Players.Draft()
	if d.TeamID != "t1" || d.Position != model.PositionForward {
		t.Errorf("черновик игрока = %+v", d)
	}
	d.Name, d.ShirtNumber = "Omar", 10
	teams.Players.SetDraft(d)
	if !teams.Players.Save(ctx) {
		t.Fatal("Save игрока = false")
	}
	if n := mb.count("POST /teams/t1/players"); n != 1 {
		t.Errorf("addPlayer = %d", n)
	}
	if n := mb.count("GET /teams"); n != 2 {
		t.Errorf("после сохранения игрока команды должны перезагрузиться, GET /teams = %d", n)
	}

	if !teams.Players.Delete(ctx, "p1", true) {
		t.Fatal("Delete игрока = false")
	}
	if n := mb.count("DELETE /teams/t1/players/p1"); n != 1 {
		t.Errorf("deletePlayer = %d", n)
	}
}

// TestMediaGuards проверяет проверки слайдов, супервайзеров и роликов.
func TestMediaGuards(t *testing.T) {
	mb, api := newMockBackend(t)
	ctx := context.Background()
	d := testDeps(api)

	sliders := NewSliders(d)
	sliders.OpenCreate()
	sliders.Save(ctx)
	if v := sliders.View(); len(v.Notices) != 1 || v.Notices[0].Key != KeySliderImageRequired {
		t.Errorf("sliders: %+v", v.Notices)
	}

	supervisors := NewSupervisors(d)
	supervisors.OpenCreate()
	supervisors.SetDraft(model.SupervisorDraft{Name: "  "})
	supervisors.Save(ctx)
	if v := supervisors.View(); len(v.Notices) != 1 || v.Notices[0].Key != KeySupervisorNameRequired {
		t.Errorf("supervisors: %+v", v.Notices)
	}

	ads := NewVideoAds(d)
	ads.OpenCreate()
	ads.Save(ctx)
	if v := ads.View(); len(v.Notices) != 1 || v.Notices[0].Key != KeyVideoAdVideoRequired {
		t.Errorf("video ads: %+v", v.Notices)
	}

	for _, key := range []string{"POST /sliders", "POST /supervisors", "POST /video-ads"} {
		if n := mb.count(key); n != 0 {
			t.Errorf("%s вызван %d раз", key, n)
		}
	}
}

// TestTeams_RemoveLogo проверяет очистку логотипа при обновлении команды.
func TestTeams_RemoveLogo(t *testing.T) {
	mb, api := newMockBackend(t)
	mb.respond("GET /teams", `{"data":[{"id":"t1","name":"Zakho","logoUrl":"/uploads/zakho.png"}]}`)
	teams := NewTeams(testDeps(api))
	ctx := context.Background()
	teams.Load(ctx)

	if !teams.OpenEdit("t1") {
		t.Fatal("OpenEdit = false")
	}
	d := teams.Draft()
	if d.LogoURL != "/uploads/zakho.png" {
		t.Fatalf("LogoURL = %q", d.LogoURL)
	}
	d.RemoveLogo = true
	teams.SetDraft(d)
	if !teams.Save(ctx) {
		t.Fatal("Save = false")
	}

	body := mb.last(t, "PUT /teams/t1").Body
	logo, ok := body["logoUrl"]
	if !ok || logo != "" {
		t.Errorf(`logoUrl = %#v, ожидается ""`, logo)
	}
	if body["name"] != "Zakho" {
		t.Errorf("name = %#v", body["name"])
	}
}

// TestTeams_KeepLogo проверяет, что без флажка логотип сохраняется.
func TestTeams_KeepLogo(t *testing.T) {
	mb, api := newMockBackend(t)
	mb.respond("GET /teams", `{"data":[{"id":"t1","name":"Zakho","logoUrl":"/uploads/zakho.png"}]}`)
	teams := NewTeams(testDeps(api))
	ctx := context.Background()
	teams.Load(ctx)

	teams.OpenEdit("t1")
	if !teams.Save(ctx) {
		t.Fatal("Save = false")
	}
	if logo := mb.last(t, "PUT /teams/t1").Body["logoUrl"]; logo != "/uploads/zakho.png" {
		t.Errorf("logoUrl = %#v", logo)
	}
}

// TestVideoAds_Toggle проверяет переключение активности.
func TestVideoAds_Toggle(t *testing.T) {
	mb, api := newMockBackend(t)
	mb.respond("GET /video-ads", `{"data":[{"id":"v1","isActive":true}]}`)
	ads := NewVideoAds(testDeps(api))
	ctx := context.Background()
	ads.Load(ctx)

	if !ads.ToggleActive(ctx, "v1") {
		t.Fatal("ToggleActive = false")
	}
	if n := mb.count("PUT /video-ads/v1"); n != 1 {
		t.Errorf("PUT = %d", n)
	}
	if v := ads.View(); v.Notices[0].Key != "videoads.deactivated" {
		t.Errorf("Notices = %+v", v.Notices)
	}
	if ads.ToggleActive(ctx, "missing") {
		t.Error("ToggleActive(missing) = true")
	}
}

// TestLoadStats проверяет счётчики главной страницы.
func TestLoadStats(t *testing.T) {
	mb, api := newMockBackend(t)
	mb.respond("GET /matches", `{"data":[{"id":"1","status":"live"},{"id":"2","status":"finished"},{"id":"3","status":"halftime"}]}`)
	mb.respond("GET /orders", `{"data":[{"id":"o1"}]}`)

	s, err := LoadStats(context.Background(), api)
	if err != nil {
		t.Fatalf("Ошибка LoadStats: %v", err)
	}
	if s.Matches != 3 || s.LiveMatches != 2 || s.PendingOrders != 1 {
		t.Errorf("Stats = %+v", s)
	}
	if q := mb.last(t, "GET /orders").Query; q != "status=pending" {
		t.Errorf("query = %q", q)
	}

	mb.fail("GET /store/products", http.StatusInternalServerError)
	if _, err := LoadStats(context.Background(), api); err == nil {
		t.Error("ожидалась ошибка")
	}
}

// TestSearch проверяет клиентские фильтры.
func TestSearch(t *testing.T) {
	matches := []model.Match{
		{ID: "1", HomeTeam: &model.TeamRef{Name: "Zakho"}, AwayTeam: &model.TeamRef{Name: "Duhok"}},
		{ID: "2", HomeTeam: &model.TeamRef{Name: "Erbil"}},
	}
	if got := SearchMatches(matches, "duh"); len(got) != 1 || got[0].ID != "1" {
		t.Errorf("SearchMatches = %+v", got)
	}
	if got := SearchMatches(matches, ""); len(got) != 2 {
		t.Errorf("пустой запрос = %d", len(got))
	}

	sups := []model.Supervisor{{Name: "Omar"}, {Name: "Ali"}}
	if got := SearchSupervisors(sups, "OM"); len(got) != 1 {
		t.Errorf("SearchSupervisors = %+v", got)
	}
}
