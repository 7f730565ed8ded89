package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ahmad115kobane-wq/adminapp/internal/apiclient"
	"github.com/ahmad115kobane-wq/adminapp/internal/domain/model"
	"github.com/ahmad115kobane-wq/adminapp/internal/ui/auth"
	"github.com/ahmad115kobane-wq/adminapp/internal/ui/i18n"
	uimiddleware "github.com/ahmad115kobane-wq/adminapp/internal/ui/middleware"
	"github.com/ahmad115kobane-wq/adminapp/internal/ui/state"
	"github.com/ahmad115kobane-wq/adminapp/internal/upload"
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
	return mb, api
}

func (mb *mockBackend) serve(w http.ResponseWriter, r *http.Request) {
	c := call{Method: r.Method, Path: r.URL.Path, Query: r.URL.RawQuery}
	switch ct := r.Header.Get("Content-Type"); {
	case strings.HasPrefix(ct, "application/json"):
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &c.Body)
	case strings.HasPrefix(ct, "multipart/form-data"):
		if err := r.ParseMultipartForm(1 << 20); err == nil {
			c.Body = map[string]any{}
			for k, v := range r.MultipartForm.Value {
				c.Body[k] = v[0]
			}
		}
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

func (mb *mockBackend) last(t *testing.T, key string) call {
	t.Helper()
	mb.mu.Lock()
	defer mb.mu.Unlock()
	for i := len(mb.calls) - 1; i >= 0; i-- {
		if mb.calls[i].Method+" "+mb.calls[i].Path == key {
			return mb.calls[i]
		}
	}
	t.Fatalf("запрос %s не выполнялся", key)
	return call{}
}

// fakeUploader запоминает загруженные файлы и выдаёт путь uploads/<имя>.
type fakeUploader struct {
	mu    sync.Mutex
	files []*model.File
}

func (u *fakeUploader) Upload(_ context.Context, f *model.File) (string, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.files = append(u.files, f)
	return "uploads/" + f.Name, nil
}

// testSession — сессия оператора, подставляемая в контекст запроса.
var testSession = &auth.SessionData{
	ID:        "sess-1",
	Token:     "tok",
	ExpiresAt: time.Now().Add(time.Hour).Unix(),
	UserID:    "u1",
	Name:      "Admin",
	Email:     "admin@example.com",
	Role:      "admin",
}

// testPanel — роутер разделов панели с сессией testSession.
type testPanel struct {
	mb       *mockBackend
	uploader *fakeUploader
	router   chi.Router
}

func newTestPanel(t *testing.T) *testPanel {
	t.Helper()
	mb, api := newMockBackend(t)
	uploader := &fakeUploader{}
	deps := &PageDeps{
		API:      api,
		Uploads:  upload.Shared(uploader),
		Store:    state.New(100, time.Hour),
		Location: time.UTC,
	}

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := context.WithValue(req.Context(), uimiddleware.ContextKeyUISession, testSession)
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
	for _, p := range Pages(deps, testLogger()) {
		r.Route(p.Path(), p.Routes)
	}
	return &testPanel{mb: mb, uploader: uploader, router: r}
}

func (p *testPanel) get(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	p.router.ServeHTTP(rec, req)
	return rec
}

func (p *testPanel) post(t *testing.T, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	p.router.ServeHTTP(rec, req)
	return rec
}

func expectRedirect(t *testing.T, rec *httptest.ResponseRecorder, code int, location string) {
	t.Helper()
	if rec.Code != code {
		t.Fatalf("код ответа = %d, ожидается %d", rec.Code, code)
	}
	if got := rec.Header().Get("Location"); got != location {
		t.Errorf("Location = %q, ожидается %q", got, location)
	}
}

const competitionsJSON = `{"data":[
	{"id":"c1","name":"Premier League","country":"Iraq","season":2025,"type":"football"},
	{"id":"c2","name":"Super Cup","country":"Iraq","season":"2025/26","type":"football"}
]}`

func TestList_Renders(t *testing.T) {
	p := newTestPanel(t)
	p.mb.respond("GET /admin/competitions", competitionsJSON)

	rec := p.get(t, "/admin/competitions/")
	if rec.Code != http.StatusOK {
		t.Fatalf("код ответа = %d, ожидается %d", rec.Code, http.StatusOK)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Premier League") || !strings.Contains(body, "Super Cup") {
		t.Error("список соревнований не отрисован")
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}
}

func TestList_Search(t *testing.T) {
	p := newTestPanel(t)
	p.mb.respond("GET /admin/competitions", competitionsJSON)

	body := p.get(t, "/admin/competitions/?q=super").Body.String()
	if !strings.Contains(body, "Super Cup") {
		t.Error("найденная запись не отрисована")
	}
	if strings.Contains(body, "Premier League") {
		t.Error("запись не подходит под поиск, но отрисована")
	}
}

func TestList_Fresh(t *testing.T) {
	p := newTestPanel(t)
	p.get(t, "/admin/competitions/")
	p.get(t, "/admin/competitions/")
	if n := p.mb.count("GET /admin/competitions"); n != 1 {
		t.Errorf("загрузок списка = %d, ожидается 1", n)
	}
}

func TestList_NoSession(t *testing.T) {
	_, api := newMockBackend(t)
	deps := &PageDeps{API: api, Store: state.New(10, time.Hour), Location: time.UTC}
	h := NewCompetitionsHandler(deps, testLogger())

	r := chi.NewRouter()
	r.Route(h.Path(), h.Routes)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/competitions/", nil))

	expectRedirect(t, rec, http.StatusFound, uimiddleware.LoginPath)
}

func TestCompetitions_Create(t *testing.T) {
	p := newTestPanel(t)

	expectRedirect(t, p.get(t, "/admin/competitions/new"), http.StatusFound, "/admin/competitions")

	rec := p.post(t, "/admin/competitions/", url.Values{
		"name":    {" Iraqi Cup "},
		"country": {"Iraq"},
		"season":  {"2025"},
		"type":    {"football"},
	})
	expectRedirect(t, rec, http.StatusSeeOther, "/admin/competitions")

	if n := p.mb.count("POST /admin/competitions"); n != 1 {
		t.Fatalf("POST /admin/competitions = %d, ожидается 1", n)
	}
	body := p.mb.last(t, "POST /admin/competitions").Body
	if body["name"] != "Iraqi Cup" || body["season"] != "2025" {
		t.Errorf("тело запроса = %v", body)
	}
	// После сохранения окно закрыто: повторная отправка ничего не создаёт.
	p.post(t, "/admin/competitions/", url.Values{"name": {"Again"}})
	if n := p.mb.count("POST /admin/competitions"); n != 1 {
		t.Errorf("POST после закрытия окна = %d, ожидается 1", n)
	}
}

func TestCompetitions_Edit(t *testing.T) {
	p := newTestPanel(t)
	p.mb.respond("GET /admin/competitions", competitionsJSON)

	p.get(t, "/admin/competitions/c1/edit")
	p.post(t, "/admin/competitions/", url.Values{
		"name":    {"Premier League"},
		"country": {"Iraq"},
		"season":  {"2026"},
		"type":    {"football"},
	})

	if n := p.mb.count("PUT /admin/competitions/c1"); n != 1 {
		t.Fatalf("PUT /admin/competitions/c1 = %d, ожидается 1", n)
	}
	if got := p.mb.last(t, "PUT /admin/competitions/c1").Body["season"]; got != "2026" {
		t.Errorf("season = %v, ожидается 2026", got)
	}
}

func TestCompetitions_CloseDiscards(t *testing.T) {
	p := newTestPanel(t)

	p.get(t, "/admin/competitions/new")
	expectRedirect(t, p.post(t, "/admin/competitions/close", nil), http.StatusSeeOther, "/admin/competitions")
	p.post(t, "/admin/competitions/", url.Values{"name": {"X"}})

	if n := p.mb.count("POST /admin/competitions"); n != 0 {
		t.Errorf("POST после закрытия = %d, ожидается 0", n)
	}
}

func TestCompetitions_Delete(t *testing.T) {
	tests := []struct {
		name    string
		confirm string
		want    int
	}{
		{"подтверждено", "yes", 1},
		{"отказ", "no", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestPanel(t)
			p.mb.respond("GET /admin/competitions", competitionsJSON)

			rec := p.get(t, "/admin/competitions/c1/delete")
			if rec.Code != http.StatusOK {
				t.Fatalf("код подтверждения = %d, ожидается %d", rec.Code, http.StatusOK)
			}

			rec = p.post(t, "/admin/competitions/c1/delete", url.Values{"confirm": {tt.confirm}})
			expectRedirect(t, rec, http.StatusSeeOther, "/admin/competitions")
			if n := p.mb.count("DELETE /admin/competitions/c1"); n != tt.want {
				t.Errorf("DELETE = %d, ожидается %d", n, tt.want)
			}
		})
	}
}

func TestOperators_CreateOnly(t *testing.T) {
	p := newTestPanel(t)

	if rec := p.get(t, "/admin/operators/o1/edit"); rec.Code == http.StatusFound {
		t.Error("редактирование операторов не должно быть доступно")
	}
	if rec := p.get(t, "/admin/operators/o1/delete"); rec.Code == http.StatusOK {
		t.Error("удаление операторов не должно быть доступно")
	}
}

func TestMatches_SetStatus(t *testing.T) {
	p := newTestPanel(t)
	p.mb.respond("GET /matches", `{"data":[{"id":"m1","status":"scheduled"}]}`)

	rec := p.post(t, "/admin/matches/m1/status", url.Values{"status": {"live"}})
	expectRedirect(t, rec, http.StatusSeeOther, "/admin/matches")

	if got := p.mb.last(t, "PATCH /matches/m1/status").Body["status"]; got != "live" {
		t.Errorf("status = %v, ожидается live", got)
	}

	p.post(t, "/admin/matches/m1/status", url.Values{"status": {"bogus"}})
	if n := p.mb.count("PATCH /matches/m1/status"); n != 1 {
		t.Errorf("PATCH после неизвестного статуса = %d, ожидается 1", n)
	}
}

const ordersJSON = `{"data":[
	{"id":"o1","customerName":"Ali","status":"pending","totalAmount":25000},
	{"id":"o2","customerName":"Sara","status":"delivered","totalAmount":12000}
]}`

func TestOrders_Filter(t *testing.T) {
	p := newTestPanel(t)
	p.mb.respond("GET /orders", ordersJSON)

	p.get(t, "/admin/orders/?status=pending")
	if q := p.mb.last(t, "GET /orders").Query; q != "status=pending" {
		t.Errorf("query = %q, ожидается status=pending", q)
	}

	// Без параметра фильтр сохраняется, all сбрасывает его.
	p.get(t, "/admin/orders/")
	p.get(t, "/admin/orders/?status=all")
	if q := p.mb.last(t, "GET /orders").Query; q != "" {
		t.Errorf("query после all = %q, ожидается пустой", q)
	}
}

func TestOrders_InvalidFilter(t *testing.T) {
	p := newTestPanel(t)

	rec := p.get(t, "/admin/orders/?status=lost")
	if rec.Code != http.StatusOK {
		t.Fatalf("код ответа = %d, ожидается %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), KeyOrderInvalidFilter) {
		t.Error("нет уведомления о неизвестном статусе")
	}
}

func TestOrders_StatusWithNote(t *testing.T) {
	p := newTestPanel(t)
	p.mb.respond("GET /orders", ordersJSON)

	expectRedirect(t, p.get(t, "/admin/orders/o1"), http.StatusFound, "/admin/orders")
	if body := p.get(t, "/admin/orders/").Body.String(); !strings.Contains(body, "Ali") {
		t.Error("карточка заказа не отрисована")
	}

	rec := p.post(t, "/admin/orders/o1/status", url.Values{
		"status":            {"approved"},
		"adminNote":         {" call first "},
		"estimatedDelivery": {"2 days"},
	})
	expectRedirect(t, rec, http.StatusSeeOther, "/admin/orders")

	body := p.mb.last(t, "PATCH /orders/o1/status").Body
	if body["status"] != "approved" || body["adminNote"] != "call first" || body["estimatedDelivery"] != "2 days" {
		t.Errorf("тело перехода = %v", body)
	}
}

func TestOrders_ForbiddenTransition(t *testing.T) {
	p := newTestPanel(t)
	p.mb.respond("GET /orders", ordersJSON)
	p.get(t, "/admin/orders/")

	p.post(t, "/admin/orders/o2/status", url.Values{"status": {"approved"}})
	if n := p.mb.count("PATCH /orders/o2/status"); n != 0 {
		t.Errorf("PATCH недопустимого перехода = %d, ожидается 0", n)
	}
}

func TestVideoAds_Toggle(t *testing.T) {
	p := newTestPanel(t)
	p.mb.respond("GET /video-ads", `{"data":[{"id":"v1","title":"Promo","isActive":true}]}`)

	expectRedirect(t, p.post(t, "/admin/video-ads/v1/toggle", nil), http.StatusSeeOther, "/admin/video-ads")
	if got := p.mb.last(t, "PUT /video-ads/v1").Body["isActive"]; got != "false" {
		t.Errorf("isActive = %v, ожидается false", got)
	}
}

func TestProducts_Multipart(t *testing.T) {
	p := newTestPanel(t)
	p.get(t, "/admin/products/new")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fields := map[string][]string{
		"name":       {"Jersey"},
		"categoryId": {"cat1"},
		"price":      {"15000"},
		"colors":     {"red", " ", "blue"},
		"inStock":    {"false", "true"},
		"isActive":   {"false"},
	}
	for name, values := range fields {
		for _, v := range values {
			_ = mw.WriteField(name, v)
		}
	}
	fw, err := mw.CreateFormFile("image", "shirt.png")
	if err != nil {
		t.Fatal(err)
	}
	fw.Write([]byte("\x89PNG\r\n\x1a\nимитация"))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/admin/products/", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	p.router.ServeHTTP(rec, req)
	expectRedirect(t, rec, http.StatusSeeOther, "/admin/products")

	if len(p.uploader.files) != 1 || p.uploader.files[0].Name != "shirt.png" {
		t.Fatalf("загруженные файлы = %v", p.uploader.files)
	}
	body := p.mb.last(t, "POST /store/products").Body
	if body["imageUrl"] != "uploads/shirt.png" {
		t.Errorf("imageUrl = %v, ожидается uploads/shirt.png", body["imageUrl"])
	}
	if body["inStock"] != true || body["isActive"] != false {
		t.Errorf("флажки: inStock=%v isActive=%v", body["inStock"], body["isActive"])
	}
	colors, _ := body["colors"].([]any)
	if len(colors) != 2 {
		t.Errorf("colors = %v, ожидается [red blue]", body["colors"])
	}
}

func TestParseForm_TooLarge(t *testing.T) {
	var mp bytes.Buffer
	mw := multipart.NewWriter(&mp)
	_ = mw.WriteField("name", "Gulf")
	_ = mw.WriteField("pad", strings.Repeat("x", 4096))
	_ = mw.Close()

	tests := []struct {
		name        string
		body        string
		contentType string
	}{
		{"urlencoded", "name=Gulf&pad=" + strings.Repeat("x", 4096), "application/x-www-form-urlencoded"},
		{"urlencoded с charset", "name=Gulf&pad=" + strings.Repeat("x", 4096), "application/x-www-form-urlencoded; charset=utf-8"},
		{"multipart", mp.String(), mw.FormDataContentType()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", tt.contentType)

			if err := parseForm(rec, req, 512); err != errFormTooLarge {
				t.Errorf("parseForm = %v, ожидается errFormTooLarge", err)
			}
		})
	}
}

func TestParseForm_WithinLimit(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("name=Gulf&city=Erbil"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	if err := parseForm(rec, req, 512); err != nil {
		t.Fatalf("parseForm: %v", err)
	}
	if got := formString(req, "name"); got != "Gulf" {
		t.Errorf("name = %q, ожидается Gulf", got)
	}
}

func TestFormValues(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(
		"a=false&a=true&b=false&n=x&f=2.5&s=+one+&s=&s=two"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if err := req.ParseForm(); err != nil {
		t.Fatal(err)
	}

	if !formBool(req, "a") || formBool(req, "b") || formBool(req, "missing") {
		t.Error("formBool: ожидается a=true, b=false, missing=false")
	}
	if got := formInt(req, "n", 7); got != 7 {
		t.Errorf("formInt = %d, ожидается 7", got)
	}
	if got := formFloat(req, "f"); got != 2.5 {
		t.Errorf("formFloat = %v, ожидается 2.5", got)
	}
	if got := formStrings(req, "s"); len(got) != 2 || got[0] != "one" || got[1] != "two" {
		t.Errorf("formStrings = %v, ожидается [one two]", got)
	}
}

func TestHandleSetLanguage(t *testing.T) {
	tests := []struct {
		name     string
		lang     string
		referer  string
		wantLang string
		wantTo   string
	}{
		{"английский", "en", "http://panel.local/admin/teams?q=x", "en", "/admin/teams?q=x"},
		{"курдский", "ku", "", "ku", "/admin/"},
		{"неизвестный язык", "fr", "", i18n.DefaultLang, "/admin/"},
		{"чужой хост", "ar", "http://evil.example/admin/teams", "ar", "/admin/"},
		{"не панель", "ar", "http://panel.local/metrics", "ar", "/admin/"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "http://panel.local/admin/set-language",
				strings.NewReader("lang="+tt.lang))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			if tt.referer != "" {
				req.Header.Set("Referer", tt.referer)
			}
			rec := httptest.NewRecorder()
			HandleSetLanguage(rec, req)

			expectRedirect(t, rec, http.StatusSeeOther, tt.wantTo)
			var got string
			for _, c := range rec.Result().Cookies() {
				if c.Name == i18n.LangCookieName {
					got = c.Value
				}
			}
			if got != tt.wantLang {
				t.Errorf("cookie lang = %q, ожидается %q", got, tt.wantLang)
			}
		})
	}
}

// --- Вход ---

func newTestAuth(t *testing.T, role string) (*AuthHandler, *mockBackend, *auth.SessionManager) {
	t.Helper()
	mb, api := newMockBackend(t)
	mb.respond("POST /auth/login",
		`{"data":{"token":"opaque-token","user":{"id":"u1","name":"Admin","email":"admin@example.com","role":"`+role+`"}}}`)

	sm, err := auth.NewSessionManager("test-key", false, time.Hour, nil)
	if err != nil {
		t.Fatal(err)
	}
	authenticator := auth.NewAuthenticator(api, nil, sm, []string{"admin"}, testLogger())
	return NewAuthHandler(authenticator, sm, state.New(10, time.Hour), testLogger()), mb, sm
}

func postLogin(h *AuthHandler, email, password string) *httptest.ResponseRecorder {
	form := url.Values{"email": {email}, "password": {password}}
	req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.HandleLogin(rec, req)
	return rec
}

func TestHandleLogin_Success(t *testing.T) {
	h, _, sm := newTestAuth(t, "admin")

	rec := postLogin(h, "admin@example.com", "secret")
	expectRedirect(t, rec, http.StatusSeeOther, "/admin/")

	req := httptest.NewRequest(http.MethodGet, "/admin/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	session, err := sm.GetSessionFromRequest(req)
	if err != nil {
		t.Fatalf("GetSessionFromRequest: %v", err)
	}
	if session.Token != "opaque-token" || session.Role != "admin" {
		t.Errorf("сессия = %+v", session)
	}
}

func TestHandleLogin_Failures(t *testing.T) {
	tests := []struct {
		name     string
		role     string
		email    string
		fail     int
		wantCode int
		wantText string
	}{
		{"пустые поля", "admin", "", 0, http.StatusUnauthorized, KeyLoginInvalid},
		{"неверный пароль", "admin", "admin@example.com", http.StatusUnauthorized, http.StatusUnauthorized, "مرفوض"},
		{"роль не допущена", "user", "user@example.com", 0, http.StatusForbidden, KeyLoginForbidden},
		{"backend недоступен", "admin", "admin@example.com", http.StatusBadGateway, http.StatusBadGateway, "مرفوض"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, mb, _ := newTestAuth(t, tt.role)
			if tt.fail != 0 {
				mb.fail("POST /auth/login", tt.fail)
			}

			rec := postLogin(h, tt.email, "secret")
			if rec.Code != tt.wantCode {
				t.Fatalf("код ответа = %d, ожидается %d", rec.Code, tt.wantCode)
			}
			if !strings.Contains(rec.Body.String(), tt.wantText) {
				t.Errorf("ответ не содержит %q", tt.wantText)
			}
			if len(rec.Result().Cookies()) != 0 {
				t.Error("cookie сессии не должен устанавливаться")
			}
		})
	}
}

func TestHandleLogout(t *testing.T) {
	h, _, _ := newTestAuth(t, "admin")
	state.Get(h.store, testSession.ID, "teams", func() int { return 1 })

	req := httptest.NewRequest(http.MethodPost, "/admin/logout", nil)
	req = req.WithContext(context.WithValue(req.Context(), uimiddleware.ContextKeyUISession, testSession))
	rec := httptest.NewRecorder()
	h.HandleLogout(rec, req)

	expectRedirect(t, rec, http.StatusSeeOther, uimiddleware.LoginPath)
	if n := h.store.Len(); n != 0 {
		t.Errorf("состояний после выхода = %d, ожидается 0", n)
	}
}
